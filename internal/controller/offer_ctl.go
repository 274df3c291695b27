package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type OfferController struct {
	offerSvc *service.OfferService
}

func NewOfferController(offerSvc *service.OfferService) *OfferController {
	return &OfferController{offerSvc: offerSvc}
}

// CreateOffer 创建活动
// @Summary 创建优惠活动
// @Tags Offer (优惠活动)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param body body dto.CreateOfferRequest true "活动信息"
// @Success 200 {object} model.Offer "活动"
// @Router /api/shops/{id}/offers [post]
func (ctrl *OfferController) CreateOffer(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	offer, err := ctrl.offerSvc.CreateOffer(c.Request.Context(), shopID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// ListOffers 活动列表
// @Summary 活动列表（含停用的）
// @Tags Offer (优惠活动)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {array} model.Offer "活动列表"
// @Router /api/shops/{id}/offers [get]
func (ctrl *OfferController) ListOffers(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offers, err := ctrl.offerSvc.ListOffers(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// UpdateOffer 更新活动
// @Summary 更新活动
// @Description 未提供的字段保持原值
// @Tags Offer (优惠活动)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param offerId path int true "活动ID"
// @Param body body dto.UpdateOfferRequest true "更新字段"
// @Success 200 {object} model.Offer "活动"
// @Failure 404 {object} map[string]string "活动不存在"
// @Router /api/shops/{id}/offers/{offerId} [put]
func (ctrl *OfferController) UpdateOffer(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offerID, ok := parseIDParam(c, "offerId")
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	offer, err := ctrl.offerSvc.UpdateOffer(c.Request.Context(), shopID, offerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// DeleteOffer 删除活动
// @Summary 删除活动
// @Tags Offer (优惠活动)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param offerId path int true "活动ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 404 {object} map[string]string "活动不存在"
// @Router /api/shops/{id}/offers/{offerId} [delete]
func (ctrl *OfferController) DeleteOffer(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offerID, ok := parseIDParam(c, "offerId")
	if !ok {
		return
	}

	if err := ctrl.offerSvc.DeleteOffer(c.Request.Context(), shopID, offerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
