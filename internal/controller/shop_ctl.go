package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type ShopController struct {
	shopSvc *service.ShopService
}

func NewShopController(shopSvc *service.ShopService) *ShopController {
	return &ShopController{shopSvc: shopSvc}
}

// CreateShop 创建店铺
// @Summary 创建店铺
// @Description 创建店铺并签发首个集成密钥（仅店主）
// @Tags Shop (店铺管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateShopRequest true "店铺信息"
// @Success 200 {object} model.Shop "店铺"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/shops [post]
func (ctrl *ShopController) CreateShop(c *gin.Context) {
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	shop, err := ctrl.shopSvc.CreateShop(c.Request.Context(), middleware.GetAdminID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// ListShops 店铺列表
// @Summary 店铺列表
// @Description 店主看到名下全部店铺；员工只看到被指派的那一家
// @Tags Shop (店铺管理)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ShopInfo "店铺列表"
// @Router /api/shops [get]
func (ctrl *ShopController) ListShops(c *gin.Context) {
	var workerShopID *int64
	if middleware.GetUserRole(c) == model.RoleWorker {
		id := middleware.GetWorkerShopID(c)
		workerShopID = &id
	}

	shops, err := ctrl.shopSvc.ListShops(c.Request.Context(), middleware.GetAdminID(c), workerShopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shops)
}

// GetShop 店铺详情
// @Summary 店铺详情
// @Tags Shop (店铺管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} model.Shop "店铺"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{id} [get]
func (ctrl *ShopController) GetShop(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := ctrl.shopSvc.GetShop(c.Request.Context(), id, middleware.GetAdminID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// UpdateShop 更新店铺
// @Summary 更新店铺
// @Description 未提供的字段保持原值
// @Tags Shop (店铺管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param body body dto.UpdateShopRequest true "更新字段"
// @Success 200 {object} model.Shop "店铺"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{id} [put]
func (ctrl *ShopController) UpdateShop(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	shop, err := ctrl.shopSvc.UpdateShop(c.Request.Context(), id, middleware.GetAdminID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// DeleteShop 删除店铺
// @Summary 删除店铺
// @Tags Shop (店铺管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{id} [delete]
func (ctrl *ShopController) DeleteShop(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.shopSvc.DeleteShop(c.Request.Context(), id, middleware.GetAdminID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// GetQR 顾客入口二维码
// @Summary 顾客入口二维码
// @Description 返回扫码目标 URL，二维码图片由前端生成
// @Tags Shop (店铺管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.QRResponse "二维码信息"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{id}/qr [get]
func (ctrl *ShopController) GetQR(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.shopSvc.GetQRPayload(c.Request.Context(), id, middleware.GetAdminID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RotateAPIKey 轮换集成密钥
// @Summary 轮换集成密钥
// @Description 生成新密钥并原子替换，旧密钥立即失效
// @Tags Shop (店铺管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.RotateKeyResponse "新密钥"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{id}/rotate-key [post]
func (ctrl *ShopController) RotateAPIKey(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.shopSvc.RotateAPIKey(c.Request.Context(), id, middleware.GetAdminID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
