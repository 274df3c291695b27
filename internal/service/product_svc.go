package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
	"shopnav_dev_v1_202608/pkg/logger"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	zoneRepo     repository.ZoneRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, zoneRepo repository.ZoneRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, zoneRepo: zoneRepo, categoryRepo: categoryRepo}
}

// ==================== 商品 CRUD ====================

// CreateProduct 创建商品
// 分区/分类引用必须与商品同店铺，跨店铺引用在写入前拒绝
func (s *ProductService) CreateProduct(ctx context.Context, shopID int64, req *dto.CreateProductRequest) (*model.Product, error) {
	if err := s.validateRefs(ctx, shopID, req.ZoneID, req.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		ShopID:      shopID,
		ZoneID:      req.ZoneID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		Price:       req.Price,
		InStock:     true,
	}
	if product.Icon == "" {
		product.Icon = model.DefaultProductIcon
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts 列出店铺商品（含分区/分类关联）
func (s *ProductService) ListProducts(ctx context.Context, shopID int64) ([]model.Product, error) {
	return s.productRepo.ListByShop(ctx, shopID)
}

// UpdateProduct 更新商品，nil 字段保持原值
func (s *ProductService) UpdateProduct(ctx context.Context, shopID, productID int64, req *dto.UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.GetByIDAndShop(ctx, productID, shopID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateRefs(ctx, shopID, req.ZoneID, req.CategoryID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.ZoneID != nil {
		fields["zone_id"] = *req.ZoneID
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.InStock != nil {
		fields["in_stock"] = *req.InStock
	}
	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, product.ID, fields); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, shopID, productID int64) error {
	product, err := s.productRepo.GetByIDAndShop(ctx, productID, shopID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// validateRefs 校验分区/分类引用归属当前店铺
func (s *ProductService) validateRefs(ctx context.Context, shopID int64, zoneID, categoryID *int64) error {
	if zoneID != nil {
		zone, err := s.zoneRepo.GetByIDAndShop(ctx, *zoneID, shopID)
		if err != nil {
			return err
		}
		if zone == nil {
			return ErrCrossShopRef
		}
	}
	if categoryID != nil {
		category, err := s.categoryRepo.GetByIDAndShop(ctx, *categoryID, shopID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCrossShopRef
		}
	}
	return nil
}

// ==================== CSV 批量导入 ====================

// ImportCSV 从 CSV 批量导入商品
// 列顺序：name, zone, category, price, description；首行视为表头跳过。
// 逐行导入，单行失败不影响其余行。
func (s *ProductService) ImportCSV(ctx context.Context, shopID int64, r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, ErrInvalidCSV
	}
	if len(records) > 0 {
		records = records[1:] // 表头
	}

	result := &dto.ImportResult{Total: len(records)}
	for i, record := range records {
		if err := s.importRow(ctx, shopID, record); err != nil {
			result.Errors++
			logger.GetLogger().Warn("CSV 行导入失败",
				zap.Int64("shop_id", shopID),
				zap.Int("row", i+2),
				zap.Error(err))
			continue
		}
		result.Imported++
	}
	result.Message = "导入完成"
	return result, nil
}

func (s *ProductService) importRow(ctx context.Context, shopID int64, record []string) error {
	if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
		return ErrEmptyProductName
	}

	product := &model.Product{
		ShopID:  shopID,
		Name:    strings.TrimSpace(record[0]),
		Icon:    model.DefaultProductIcon,
		InStock: true,
	}

	if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
		zone, err := s.zoneRepo.FindByNameContains(ctx, shopID, strings.TrimSpace(record[1]))
		if err != nil {
			return err
		}
		if zone != nil {
			product.ZoneID = &zone.ID
		}
	}
	if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
		category, err := s.categoryRepo.FindByNameContains(ctx, shopID, strings.TrimSpace(record[2]))
		if err != nil {
			return err
		}
		if category != nil {
			product.CategoryID = &category.ID
		}
	}
	if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return ErrInvalidPrice
		}
		product.Price = &price
	}
	if len(record) > 4 {
		product.Description = strings.TrimSpace(record[4])
	}

	return s.productRepo.Create(ctx, product)
}

// ==================== 错误定义 ====================

var (
	ErrProductNotFound  = errors.New("商品不存在")
	ErrCrossShopRef     = errors.New("分区或分类不属于当前店铺")
	ErrInvalidCSV       = errors.New("CSV 文件格式错误")
	ErrEmptyProductName = errors.New("商品名称不能为空")
	ErrInvalidPrice     = errors.New("价格格式错误")
)
