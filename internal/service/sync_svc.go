package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
	"shopnav_dev_v1_202608/pkg/logger"
)

// ==================== SyncService 外部同步服务 ====================

// SyncService 外部系统（收银/库存软件）的目录同步服务
//
// 同步语义：
//   - 逐条处理，条目之间互不影响；单条失败只累加 errors 计数
//   - 匹配键是店铺内的商品/分区名称（精确匹配）
//   - 缺省 (nil) 字段表示外部系统"不知道"，更新时保持库内原值
//   - 新建时为缺省字段填默认值
//   - 每次批量调用结束写一条调用日志，无论成败
type SyncService struct {
	productRepo  repository.ProductRepository
	zoneRepo     repository.ZoneRepository
	categoryRepo repository.CategoryRepository
	logRepo      repository.APICallLogRepository
}

// NewSyncService 创建外部同步服务
func NewSyncService(
	productRepo repository.ProductRepository,
	zoneRepo repository.ZoneRepository,
	categoryRepo repository.CategoryRepository,
	logRepo repository.APICallLogRepository,
) *SyncService {
	return &SyncService{
		productRepo:  productRepo,
		zoneRepo:     zoneRepo,
		categoryRepo: categoryRepo,
		logRepo:      logRepo,
	}
}

// ==================== 商品同步 ====================

// SyncProducts 批量同步商品（按名称 upsert）
func (s *SyncService) SyncProducts(ctx context.Context, shopID int64, req *dto.SyncProductsRequest) (*dto.SyncResult, error) {
	result := &dto.SyncResult{Total: len(req.Products)}

	for i := range req.Products {
		item := &req.Products[i]
		if err := s.syncProduct(ctx, shopID, item); err != nil {
			result.Errors++
			middleware.SyncItemsTotal.WithLabelValues("product", "error").Inc()
			logger.GetLogger().Warn("商品同步条目失败",
				zap.Int64("shop_id", shopID),
				zap.String("name", item.Name),
				zap.Error(err))
			continue
		}
		result.Synced++
		middleware.SyncItemsTotal.WithLabelValues("product", "synced").Inc()
	}

	result.Message = fmt.Sprintf("同步完成：%d/%d", result.Synced, result.Total)
	s.writeCallLog(ctx, shopID, "/integration/products/sync", result)
	return result, nil
}

// syncProduct 处理单个商品条目
func (s *SyncService) syncProduct(ctx context.Context, shopID int64, item *dto.ProductSyncItem) error {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return ErrEmptyProductName
	}

	// 引用解析：分区/分类名模糊匹配到店铺内已有记录，匹配不到则留空
	var zoneID, categoryID *int64
	if item.ZoneName != nil && strings.TrimSpace(*item.ZoneName) != "" {
		zone, err := s.zoneRepo.FindByNameContains(ctx, shopID, strings.TrimSpace(*item.ZoneName))
		if err != nil {
			return err
		}
		if zone != nil {
			zoneID = &zone.ID
		}
	}
	if item.CategoryName != nil && strings.TrimSpace(*item.CategoryName) != "" {
		category, err := s.categoryRepo.FindByNameContains(ctx, shopID, strings.TrimSpace(*item.CategoryName))
		if err != nil {
			return err
		}
		if category != nil {
			categoryID = &category.ID
		}
	}

	existing, err := s.productRepo.FindByName(ctx, shopID, name)
	if err != nil {
		return err
	}

	if existing == nil {
		// 新建：缺省字段填默认值
		product := &model.Product{
			ShopID:     shopID,
			ZoneID:     zoneID,
			CategoryID: categoryID,
			Name:       name,
			Icon:       model.DefaultProductIcon,
			Price:      item.Price,
			InStock:    true,
		}
		if item.Icon != nil && *item.Icon != "" {
			product.Icon = *item.Icon
		}
		if item.Description != nil {
			product.Description = *item.Description
		}
		if item.InStock != nil {
			product.InStock = *item.InStock
		}
		return s.productRepo.Create(ctx, product)
	}

	// 更新：只覆盖调用方提供的字段，其余保持库内原值
	fields := map[string]interface{}{}
	if zoneID != nil {
		fields["zone_id"] = *zoneID
	}
	if categoryID != nil {
		fields["category_id"] = *categoryID
	}
	if item.Icon != nil {
		fields["icon"] = *item.Icon
	}
	if item.Description != nil {
		fields["description"] = *item.Description
	}
	if item.Price != nil {
		fields["price"] = *item.Price
	}
	if item.InStock != nil {
		fields["in_stock"] = *item.InStock
	}
	if len(fields) == 0 {
		return nil
	}
	return s.productRepo.UpdateFields(ctx, existing.ID, fields)
}

// ==================== 分区同步 ====================

// SyncZones 批量同步分区（按名称 upsert）
func (s *SyncService) SyncZones(ctx context.Context, shopID int64, req *dto.SyncZonesRequest) (*dto.SyncResult, error) {
	result := &dto.SyncResult{Total: len(req.Zones)}

	for i := range req.Zones {
		item := &req.Zones[i]
		if err := s.syncZone(ctx, shopID, item); err != nil {
			result.Errors++
			middleware.SyncItemsTotal.WithLabelValues("zone", "error").Inc()
			logger.GetLogger().Warn("分区同步条目失败",
				zap.Int64("shop_id", shopID),
				zap.String("name", item.Name),
				zap.Error(err))
			continue
		}
		result.Synced++
		middleware.SyncItemsTotal.WithLabelValues("zone", "synced").Inc()
	}

	result.Message = fmt.Sprintf("同步完成：%d/%d", result.Synced, result.Total)
	s.writeCallLog(ctx, shopID, "/integration/zones/sync", result)
	return result, nil
}

// syncZone 处理单个分区条目
func (s *SyncService) syncZone(ctx context.Context, shopID int64, item *dto.ZoneSyncItem) error {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return ErrEmptyZoneName
	}

	existing, err := s.zoneRepo.FindByName(ctx, shopID, name)
	if err != nil {
		return err
	}

	if existing == nil {
		zone := &model.Zone{
			ShopID: shopID,
			Name:   name,
			Icon:   model.DefaultZoneIcon,
			Color:  model.DefaultZoneColor,
		}
		if item.Icon != nil && *item.Icon != "" {
			zone.Icon = *item.Icon
		}
		if item.Color != nil && *item.Color != "" {
			zone.Color = *item.Color
		}
		if item.Description != nil {
			zone.Description = *item.Description
		}
		return s.zoneRepo.Create(ctx, zone)
	}

	fields := map[string]interface{}{}
	if item.Icon != nil {
		fields["icon"] = *item.Icon
	}
	if item.Color != nil {
		fields["color"] = *item.Color
	}
	if item.Description != nil {
		fields["description"] = *item.Description
	}
	if len(fields) == 0 {
		return nil
	}
	return s.zoneRepo.UpdateFields(ctx, existing.ID, fields)
}

// ==================== 集成侧读取 ====================

// ListProducts 外部系统读取当前目录
func (s *SyncService) ListProducts(ctx context.Context, shopID int64) ([]model.Product, error) {
	return s.productRepo.ListByShop(ctx, shopID)
}

// ListZones 外部系统读取当前分区
func (s *SyncService) ListZones(ctx context.Context, shopID int64) ([]model.Zone, error) {
	return s.zoneRepo.ListByShop(ctx, shopID)
}

// ListCallLogs 店主查看集成调用历史
func (s *SyncService) ListCallLogs(ctx context.Context, shopID int64, limit int) ([]model.APICallLog, error) {
	return s.logRepo.ListByShop(ctx, shopID, limit)
}

// GetCallStats 店主查看集成调用统计
func (s *SyncService) GetCallStats(ctx context.Context, shopID int64) (*repository.APICallStats, error) {
	return s.logRepo.GetStats(ctx, shopID)
}

// writeCallLog 记录一次批量调用
// 日志失败不影响同步结果，只打一条错误日志
func (s *SyncService) writeCallLog(ctx context.Context, shopID int64, endpoint string, result *dto.SyncResult) {
	body := datatypes.JSON(fmt.Sprintf(`{"total":%d,"synced":%d,"errors":%d}`,
		result.Total, result.Synced, result.Errors))
	entry := &model.APICallLog{
		ShopID:      shopID,
		Endpoint:    endpoint,
		Method:      "POST",
		StatusCode:  200,
		RequestBody: body,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		logger.GetLogger().Error("写入集成调用日志失败",
			zap.Int64("shop_id", shopID),
			zap.String("endpoint", endpoint),
			zap.Error(err))
	}
}

// ==================== 错误定义 ====================

var ErrEmptyZoneName = errors.New("分区名称不能为空")
