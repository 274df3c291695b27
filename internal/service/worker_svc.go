package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== WorkerService 员工服务 ====================

// WorkerService 员工服务，仅店主可调用
type WorkerService struct {
	workerRepo repository.WorkerRepository
	adminRepo  repository.AdminRepository
	shopRepo   repository.ShopRepository
}

// NewWorkerService 创建员工服务
func NewWorkerService(workerRepo repository.WorkerRepository, adminRepo repository.AdminRepository, shopRepo repository.ShopRepository) *WorkerService {
	return &WorkerService{workerRepo: workerRepo, adminRepo: adminRepo, shopRepo: shopRepo}
}

// CreateWorker 店主为某家店铺创建员工账号
func (s *WorkerService) CreateWorker(ctx context.Context, adminID, shopID int64, req *dto.CreateWorkerRequest) (*dto.WorkerInfo, error) {
	// 目标店铺必须归属当前店主
	shop, err := s.shopRepo.GetByIDAndAdmin(ctx, shopID, adminID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if !exists {
		exists, err = s.workerRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	worker := &model.Worker{
		AdminID:  adminID,
		ShopID:   shopID,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
	}
	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, err
	}
	return workerInfo(worker), nil
}

// ListWorkers 列出某家店铺的员工
func (s *WorkerService) ListWorkers(ctx context.Context, adminID, shopID int64) ([]dto.WorkerInfo, error) {
	workers, err := s.workerRepo.ListByShop(ctx, shopID, adminID)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.WorkerInfo, 0, len(workers))
	for i := range workers {
		infos = append(infos, *workerInfo(&workers[i]))
	}
	return infos, nil
}

// ReassignWorker 把员工改派到店主名下另一家店铺
// 改派后员工已签发的令牌继续有效，下一次请求即按新店铺解析范围
func (s *WorkerService) ReassignWorker(ctx context.Context, adminID, workerID, shopID int64) error {
	shop, err := s.shopRepo.GetByIDAndAdmin(ctx, shopID, adminID)
	if err != nil {
		return err
	}
	if shop == nil {
		return ErrShopNotFound
	}

	scope, err := s.workerRepo.GetScope(ctx, workerID)
	if err != nil {
		return err
	}
	if scope == nil || scope.AdminID != adminID {
		return ErrWorkerNotFound
	}
	return s.workerRepo.UpdateShop(ctx, workerID, shopID)
}

// DeleteWorker 删除员工
// 删除后其令牌虽未过期，但范围解析失败，下一次请求即被拒绝
func (s *WorkerService) DeleteWorker(ctx context.Context, adminID, workerID int64) error {
	affected, err := s.workerRepo.DeleteByAdmin(ctx, workerID, adminID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWorkerNotFound
	}
	return nil
}

func workerInfo(w *model.Worker) *dto.WorkerInfo {
	return &dto.WorkerInfo{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Phone:     w.Phone,
		ShopID:    w.ShopID,
		CreatedAt: w.CreatedAt,
	}
}
