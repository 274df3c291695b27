package service

import (
	"context"
	"errors"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== ZoneService 分区服务 ====================

// ZoneService 分区服务
type ZoneService struct {
	zoneRepo    repository.ZoneRepository
	productRepo repository.ProductRepository
}

// NewZoneService 创建分区服务
func NewZoneService(zoneRepo repository.ZoneRepository, productRepo repository.ProductRepository) *ZoneService {
	return &ZoneService{zoneRepo: zoneRepo, productRepo: productRepo}
}

// CreateZone 创建分区，未提供的图标/颜色使用默认值
func (s *ZoneService) CreateZone(ctx context.Context, shopID int64, req *dto.CreateZoneRequest) (*model.Zone, error) {
	zone := &model.Zone{
		ShopID:      shopID,
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		PositionRow: req.PositionRow,
		PositionCol: req.PositionCol,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if zone.Icon == "" {
		zone.Icon = model.DefaultZoneIcon
	}
	if zone.Color == "" {
		zone.Color = model.DefaultZoneColor
	}
	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// ListZones 列出店铺分区（含商品数）
func (s *ZoneService) ListZones(ctx context.Context, shopID int64) ([]dto.ZoneInfo, error) {
	zones, err := s.zoneRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	counts, err := s.productRepo.CountByZone(ctx, shopID)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.ZoneInfo, 0, len(zones))
	for _, z := range zones {
		infos = append(infos, dto.ZoneInfo{Zone: z, ProductCount: counts[z.ID]})
	}
	return infos, nil
}

// UpdateZone 更新分区，nil 字段保持原值
func (s *ZoneService) UpdateZone(ctx context.Context, shopID, zoneID int64, req *dto.UpdateZoneRequest) (*model.Zone, error) {
	zone, err := s.zoneRepo.GetByIDAndShop(ctx, zoneID, shopID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, ErrZoneNotFound
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
	if req.PositionRow != nil {
		fields["position_row"] = *req.PositionRow
	}
	if req.PositionCol != nil {
		fields["position_col"] = *req.PositionCol
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if len(fields) > 0 {
		if err := s.zoneRepo.UpdateFields(ctx, zone.ID, fields); err != nil {
			return nil, err
		}
	}
	return s.zoneRepo.GetByID(ctx, zone.ID)
}

// DeleteZone 删除分区，引用它的商品 zone_id 置空
func (s *ZoneService) DeleteZone(ctx context.Context, shopID, zoneID int64) error {
	zone, err := s.zoneRepo.GetByIDAndShop(ctx, zoneID, shopID)
	if err != nil {
		return err
	}
	if zone == nil {
		return ErrZoneNotFound
	}
	if err := s.productRepo.ClearZoneRefs(ctx, zone.ID); err != nil {
		return err
	}
	return s.zoneRepo.Delete(ctx, zone.ID)
}

// ==================== 错误定义 ====================

var ErrZoneNotFound = errors.New("分区不存在")
