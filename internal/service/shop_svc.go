package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== ShopService 店铺服务 ====================

// ShopService 店铺服务
// 负责店铺生命周期、顾客入口二维码和集成密钥的签发与轮换
type ShopService struct {
	shopRepo        repository.ShopRepository
	customerBaseURL string
}

// NewShopService 创建店铺服务
// customerBaseURL 为顾客端入口地址前缀，例如 https://shop.example.com
func NewShopService(shopRepo repository.ShopRepository, customerBaseURL string) *ShopService {
	return &ShopService{
		shopRepo:        shopRepo,
		customerBaseURL: strings.TrimRight(customerBaseURL, "/"),
	}
}

// ==================== 店铺 CRUD ====================

// CreateShop 创建店铺，同时签发首个集成密钥
func (s *ShopService) CreateShop(ctx context.Context, adminID int64, req *dto.CreateShopRequest) (*model.Shop, error) {
	shop := &model.Shop{
		AdminID:   adminID,
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		Phone:     req.Phone,
		OpenHours: req.OpenHours,
		APIKey:    generateAPIKey(),
	}
	if shop.Type == "" {
		shop.Type = "general"
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ListShops 列出当前主体可见的店铺
// 店主看到名下全部店铺；员工只看到被指派的那一家
func (s *ShopService) ListShops(ctx context.Context, adminID int64, workerShopID *int64) ([]dto.ShopInfo, error) {
	var shops []model.Shop
	if workerShopID != nil {
		shop, err := s.shopRepo.GetByID(ctx, *workerShopID)
		if err != nil {
			return nil, err
		}
		if shop != nil {
			shops = []model.Shop{*shop}
		}
	} else {
		var err error
		shops, err = s.shopRepo.ListByAdmin(ctx, adminID)
		if err != nil {
			return nil, err
		}
	}

	ids := make([]int64, 0, len(shops))
	for _, sh := range shops {
		ids = append(ids, sh.ID)
	}
	counts, err := s.shopRepo.GetCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.ShopInfo, 0, len(shops))
	for _, sh := range shops {
		c := counts[sh.ID]
		infos = append(infos, dto.ShopInfo{
			Shop:         sh,
			ZoneCount:    c.ZoneCount,
			ProductCount: c.ProductCount,
			OfferCount:   c.OfferCount,
		})
	}
	return infos, nil
}

// GetShop 店主视角获取单个店铺
func (s *ShopService) GetShop(ctx context.Context, id, adminID int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByIDAndAdmin(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// UpdateShop 更新店铺，nil 字段保持原值
func (s *ShopService) UpdateShop(ctx context.Context, id, adminID int64, req *dto.UpdateShopRequest) (*model.Shop, error) {
	shop, err := s.GetShop(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Type != nil {
		shop.Type = *req.Type
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.OpenHours != nil {
		shop.OpenHours = *req.OpenHours
	}
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop 删除店铺
func (s *ShopService) DeleteShop(ctx context.Context, id, adminID int64) error {
	affected, err := s.shopRepo.DeleteByAdmin(ctx, id, adminID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrShopNotFound
	}
	return nil
}

// ==================== 二维码 / 集成密钥 ====================

// GetQRPayload 返回顾客入口地址，二维码图片由前端生成
func (s *ShopService) GetQRPayload(ctx context.Context, id, adminID int64) (*dto.QRResponse, error) {
	shop, err := s.GetShop(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	return &dto.QRResponse{
		URL:  fmt.Sprintf("%s/store/%d", s.customerBaseURL, shop.ID),
		Shop: shop,
	}, nil
}

// RotateAPIKey 轮换集成密钥
// 单条 UPDATE 原子替换，旧密钥在提交后立即失效
func (s *ShopService) RotateAPIKey(ctx context.Context, id, adminID int64) (*dto.RotateKeyResponse, error) {
	key := generateAPIKey()
	affected, err := s.shopRepo.UpdateAPIKey(ctx, id, adminID, key)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrShopNotFound
	}
	return &dto.RotateKeyResponse{APIKey: key}, nil
}

// generateAPIKey 生成集成密钥，snk_ 前缀 + 去连字符的 UUID
func generateAPIKey() string {
	return "snk_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ==================== 错误定义 ====================

var ErrShopNotFound = errors.New("店铺不存在")
