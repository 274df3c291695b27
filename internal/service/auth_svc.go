package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 认证服务
// 店主与员工共用登录入口；邮箱在两张表之间全局唯一
type AuthService struct {
	adminRepo  repository.AdminRepository
	workerRepo repository.WorkerRepository
}

// NewAuthService 创建认证服务
func NewAuthService(adminRepo repository.AdminRepository, workerRepo repository.WorkerRepository) *AuthService {
	return &AuthService{adminRepo: adminRepo, workerRepo: workerRepo}
}

// ==================== 注册 / 登录 ====================

// Register 店主注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// 邮箱唯一性跨店主和员工两张表检查
	exists, err := s.emailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	token, err := middleware.GenerateToken(admin.ID, model.RoleAdmin, admin.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: "注册成功",
		Token:   token,
		Role:    model.RoleAdmin,
		User: &dto.Profile{
			ID:        admin.ID,
			Name:      admin.Name,
			Email:     admin.Email,
			Phone:     admin.Phone,
			Role:      model.RoleAdmin,
			CreatedAt: admin.CreatedAt,
		},
	}, nil
}

// Login 登录，先查店主表再查员工表
// 账号不存在与密码错误返回同一个错误，不向调用方泄露邮箱是否注册
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		token, err := middleware.GenerateToken(admin.ID, model.RoleAdmin, admin.Email)
		if err != nil {
			return nil, err
		}
		return &dto.AuthResponse{
			Message: "登录成功",
			Token:   token,
			Role:    model.RoleAdmin,
			User: &dto.Profile{
				ID:        admin.ID,
				Name:      admin.Name,
				Email:     admin.Email,
				Phone:     admin.Phone,
				Role:      model.RoleAdmin,
				CreatedAt: admin.CreatedAt,
			},
		}, nil
	}

	worker, err := s.workerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if worker != nil {
		if bcrypt.CompareHashAndPassword([]byte(worker.Password), []byte(req.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		token, err := middleware.GenerateToken(worker.ID, model.RoleWorker, worker.Email)
		if err != nil {
			return nil, err
		}
		shopID := worker.ShopID
		return &dto.AuthResponse{
			Message: "登录成功",
			Token:   token,
			Role:    model.RoleWorker,
			User: &dto.Profile{
				ID:        worker.ID,
				Name:      worker.Name,
				Email:     worker.Email,
				Phone:     worker.Phone,
				Role:      model.RoleWorker,
				ShopID:    &shopID,
				CreatedAt: worker.CreatedAt,
			},
		}, nil
	}

	return nil, ErrInvalidCredentials
}

// GetProfile 获取当前登录主体信息
func (s *AuthService) GetProfile(ctx context.Context, userID int64, role string) (*dto.Profile, error) {
	if role == model.RoleWorker {
		worker, err := s.workerRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if worker == nil {
			return nil, ErrWorkerNotFound
		}
		shopID := worker.ShopID
		return &dto.Profile{
			ID:        worker.ID,
			Name:      worker.Name,
			Email:     worker.Email,
			Phone:     worker.Phone,
			Role:      model.RoleWorker,
			ShopID:    &shopID,
			CreatedAt: worker.CreatedAt,
		}, nil
	}

	admin, err := s.adminRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return &dto.Profile{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		Phone:     admin.Phone,
		Role:      model.RoleAdmin,
		CreatedAt: admin.CreatedAt,
	}, nil
}

// emailExists 跨店主/员工两张表的邮箱占用检查
func (s *AuthService) emailExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil || exists {
		return exists, err
	}
	return s.workerRepo.ExistsByEmail(ctx, email)
}

// ==================== 错误定义 ====================

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAdminNotFound      = errors.New("店主不存在")
	ErrWorkerNotFound     = errors.New("员工不存在")
)
