package service

import (
	"context"
	"errors"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== OfferService 优惠活动服务 ====================

// OfferService 优惠活动服务
type OfferService struct {
	offerRepo repository.OfferRepository
}

// NewOfferService 创建优惠活动服务
func NewOfferService(offerRepo repository.OfferRepository) *OfferService {
	return &OfferService{offerRepo: offerRepo}
}

// CreateOffer 创建活动
func (s *OfferService) CreateOffer(ctx context.Context, shopID int64, req *dto.CreateOfferRequest) (*model.Offer, error) {
	offer := &model.Offer{
		ShopID:          shopID,
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsActive:        true,
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// ListOffers 店铺侧列出全部活动（含停用的）
func (s *OfferService) ListOffers(ctx context.Context, shopID int64) ([]model.Offer, error) {
	return s.offerRepo.ListByShop(ctx, shopID)
}

// UpdateOffer 更新活动，nil 字段保持原值
func (s *OfferService) UpdateOffer(ctx context.Context, shopID, offerID int64, req *dto.UpdateOfferRequest) (*model.Offer, error) {
	offer, err := s.offerRepo.GetByIDAndShop(ctx, offerID, shopID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.DiscountPercent != nil {
		offer.DiscountPercent = req.DiscountPercent
	}
	if req.StartDate != nil {
		offer.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		offer.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// DeleteOffer 删除活动
func (s *OfferService) DeleteOffer(ctx context.Context, shopID, offerID int64) error {
	offer, err := s.offerRepo.GetByIDAndShop(ctx, offerID, shopID)
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	return s.offerRepo.Delete(ctx, offer.ID)
}

// ==================== 错误定义 ====================

var ErrOfferNotFound = errors.New("活动不存在")
