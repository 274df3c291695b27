package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type ZoneController struct {
	zoneSvc *service.ZoneService
}

func NewZoneController(zoneSvc *service.ZoneService) *ZoneController {
	return &ZoneController{zoneSvc: zoneSvc}
}

// CreateZone 创建分区
// @Summary 创建分区
// @Tags Zone (分区管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param body body dto.CreateZoneRequest true "分区信息"
// @Success 200 {object} model.Zone "分区"
// @Router /api/shops/{id}/zones [post]
func (ctrl *ZoneController) CreateZone(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	zone, err := ctrl.zoneSvc.CreateZone(c.Request.Context(), shopID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// ListZones 分区列表
// @Summary 分区列表（含商品数）
// @Tags Zone (分区管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {array} dto.ZoneInfo "分区列表"
// @Router /api/shops/{id}/zones [get]
func (ctrl *ZoneController) ListZones(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	zones, err := ctrl.zoneSvc.ListZones(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// UpdateZone 更新分区
// @Summary 更新分区
// @Description 未提供的字段保持原值
// @Tags Zone (分区管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param zoneId path int true "分区ID"
// @Param body body dto.UpdateZoneRequest true "更新字段"
// @Success 200 {object} model.Zone "分区"
// @Failure 404 {object} map[string]string "分区不存在"
// @Router /api/shops/{id}/zones/{zoneId} [put]
func (ctrl *ZoneController) UpdateZone(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	zoneID, ok := parseIDParam(c, "zoneId")
	if !ok {
		return
	}

	var req dto.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	zone, err := ctrl.zoneSvc.UpdateZone(c.Request.Context(), shopID, zoneID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DeleteZone 删除分区
// @Summary 删除分区
// @Description 引用该分区的商品 zone_id 置空，不级联删除商品
// @Tags Zone (分区管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param zoneId path int true "分区ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 404 {object} map[string]string "分区不存在"
// @Router /api/shops/{id}/zones/{zoneId} [delete]
func (ctrl *ZoneController) DeleteZone(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	zoneID, ok := parseIDParam(c, "zoneId")
	if !ok {
		return
	}

	if err := ctrl.zoneSvc.DeleteZone(c.Request.Context(), shopID, zoneID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
