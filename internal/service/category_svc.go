package service

import (
	"context"
	"errors"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== CategoryService 分类服务 ====================

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// CreateCategory 创建分类，未提供的图标/颜色使用默认值
func (s *CategoryService) CreateCategory(ctx context.Context, shopID int64, req *dto.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ShopID:    shopID,
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	}
	if category.Icon == "" {
		category.Icon = model.DefaultCategoryIcon
	}
	if category.Color == "" {
		category.Color = model.DefaultCategoryColor
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories 列出店铺分类（含商品数）
func (s *CategoryService) ListCategories(ctx context.Context, shopID int64) ([]dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	counts, err := s.productRepo.CountByCategory(ctx, shopID)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.CategoryInfo, 0, len(categories))
	for _, c := range categories {
		infos = append(infos, dto.CategoryInfo{Category: c, ProductCount: counts[c.ID]})
	}
	return infos, nil
}

// UpdateCategory 更新分类，nil 字段保持原值
func (s *CategoryService) UpdateCategory(ctx context.Context, shopID, categoryID int64, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.GetByIDAndShop(ctx, categoryID, shopID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if len(fields) > 0 {
		if err := s.categoryRepo.UpdateFields(ctx, category.ID, fields); err != nil {
			return nil, err
		}
	}
	return s.categoryRepo.GetByID(ctx, category.ID)
}

// DeleteCategory 删除分类，引用它的商品 category_id 置空
func (s *CategoryService) DeleteCategory(ctx context.Context, shopID, categoryID int64) error {
	category, err := s.categoryRepo.GetByIDAndShop(ctx, categoryID, shopID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if err := s.productRepo.ClearCategoryRefs(ctx, category.ID); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}

// ==================== 错误定义 ====================

var ErrCategoryNotFound = errors.New("分类不存在")
