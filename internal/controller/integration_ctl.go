package controller

import (
	"net/http"
	"strconv"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// IntegrationController 外部集成接口（API Key 鉴权）
// 店铺身份由密钥解析，不出现在路径或请求体中
type IntegrationController struct {
	syncSvc *service.SyncService
}

func NewIntegrationController(syncSvc *service.SyncService) *IntegrationController {
	return &IntegrationController{syncSvc: syncSvc}
}

// SyncProducts 批量同步商品
// @Summary 批量同步商品
// @Description 按名称 upsert；逐条处理，单条失败只累加 errors，HTTP 仍返回 200
// @Tags Integration (外部集成)
// @Accept json
// @Produce json
// @Param x-api-key header string true "集成密钥"
// @Param body body dto.SyncProductsRequest true "商品清单"
// @Success 200 {object} dto.SyncResult "同步结果"
// @Failure 401 {object} map[string]string "密钥无效"
// @Router /api/integration/products/sync [post]
func (ctrl *IntegrationController) SyncProducts(c *gin.Context) {
	var req dto.SyncProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	result, err := ctrl.syncSvc.SyncProducts(c.Request.Context(), middleware.GetShopID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncZones 批量同步分区
// @Summary 批量同步分区
// @Description 按名称 upsert，语义与商品同步一致
// @Tags Integration (外部集成)
// @Accept json
// @Produce json
// @Param x-api-key header string true "集成密钥"
// @Param body body dto.SyncZonesRequest true "分区清单"
// @Success 200 {object} dto.SyncResult "同步结果"
// @Failure 401 {object} map[string]string "密钥无效"
// @Router /api/integration/zones/sync [post]
func (ctrl *IntegrationController) SyncZones(c *gin.Context) {
	var req dto.SyncZonesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	result, err := ctrl.syncSvc.SyncZones(c.Request.Context(), middleware.GetShopID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListProducts 外部系统读取当前商品
// @Summary 读取当前商品目录
// @Tags Integration (外部集成)
// @Produce json
// @Param x-api-key header string true "集成密钥"
// @Success 200 {array} model.Product "商品列表"
// @Router /api/integration/products [get]
func (ctrl *IntegrationController) ListProducts(c *gin.Context) {
	products, err := ctrl.syncSvc.ListProducts(c.Request.Context(), middleware.GetShopID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListZones 外部系统读取当前分区
// @Summary 读取当前分区
// @Tags Integration (外部集成)
// @Produce json
// @Param x-api-key header string true "集成密钥"
// @Success 200 {array} model.Zone "分区列表"
// @Router /api/integration/zones [get]
func (ctrl *IntegrationController) ListZones(c *gin.Context) {
	zones, err := ctrl.syncSvc.ListZones(c.Request.Context(), middleware.GetShopID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// ==================== 店主侧调用日志 ====================

// ListCallLogs 集成调用历史（JWT 路由）
// @Summary 集成调用历史
// @Tags Integration (外部集成)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param limit query int false "条数上限" default(50)
// @Success 200 {array} model.APICallLog "调用日志"
// @Router /api/shops/{id}/integration/logs [get]
func (ctrl *IntegrationController) ListCallLogs(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := ctrl.syncSvc.ListCallLogs(c.Request.Context(), shopID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetCallStats 集成调用统计（JWT 路由）
// @Summary 集成调用统计
// @Tags Integration (外部集成)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} repository.APICallStats "调用统计"
// @Router /api/shops/{id}/integration/stats [get]
func (ctrl *IntegrationController) GetCallStats(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := ctrl.syncSvc.GetCallStats(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
