package service

import (
	"context"
	"time"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== CustomerService 顾客端服务 ====================

// CustomerService 顾客端只读服务，无需登录
type CustomerService struct {
	shopRepo     repository.ShopRepository
	zoneRepo     repository.ZoneRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	offerRepo    repository.OfferRepository
}

// NewCustomerService 创建顾客端服务
func NewCustomerService(
	shopRepo repository.ShopRepository,
	zoneRepo repository.ZoneRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	offerRepo repository.OfferRepository,
) *CustomerService {
	return &CustomerService{
		shopRepo:     shopRepo,
		zoneRepo:     zoneRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		offerRepo:    offerRepo,
	}
}

// GetShopView 扫码后的店铺全量视图
// 只含在售商品与有效期内的活动；不向顾客暴露集成密钥
func (s *CustomerService) GetShopView(ctx context.Context, shopID int64) (*dto.CustomerShopView, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	shop.APIKey = ""

	zones, err := s.zoneRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	zoneCounts, err := s.productRepo.CountByZone(ctx, shopID)
	if err != nil {
		return nil, err
	}
	zoneInfos := make([]dto.ZoneInfo, 0, len(zones))
	for _, z := range zones {
		zoneInfos = append(zoneInfos, dto.ZoneInfo{Zone: z, ProductCount: zoneCounts[z.ID]})
	}

	categories, err := s.categoryRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListInStock(ctx, shopID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offerRepo.ListActive(ctx, shopID, time.Now())
	if err != nil {
		return nil, err
	}

	return &dto.CustomerShopView{
		Shop:       shop,
		Zones:      zoneInfos,
		Categories: categories,
		Products:   products,
		Offers:     offers,
	}, nil
}

// SearchProducts 顾客端商品搜索，keyword 为空时返回全部在售商品
func (s *CustomerService) SearchProducts(ctx context.Context, shopID int64, keyword string) ([]model.Product, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	if keyword == "" {
		return s.productRepo.ListInStock(ctx, shopID)
	}
	return s.productRepo.Search(ctx, shopID, keyword)
}
