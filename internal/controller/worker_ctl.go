package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkerController struct {
	workerSvc *service.WorkerService
}

func NewWorkerController(workerSvc *service.WorkerService) *WorkerController {
	return &WorkerController{workerSvc: workerSvc}
}

// CreateWorker 创建员工
// @Summary 创建员工
// @Description 店主为某家店铺创建员工账号
// @Tags Worker (员工管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param body body dto.CreateWorkerRequest true "员工信息"
// @Success 200 {object} dto.WorkerInfo "员工"
// @Failure 409 {object} map[string]string "邮箱已被注册"
// @Router /api/shops/{id}/workers [post]
func (ctrl *WorkerController) CreateWorker(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	worker, err := ctrl.workerSvc.CreateWorker(c.Request.Context(), middleware.GetAdminID(c), shopID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

// ListWorkers 员工列表
// @Summary 员工列表
// @Tags Worker (员工管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {array} dto.WorkerInfo "员工列表"
// @Router /api/shops/{id}/workers [get]
func (ctrl *WorkerController) ListWorkers(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workers, err := ctrl.workerSvc.ListWorkers(c.Request.Context(), middleware.GetAdminID(c), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

// ReassignWorker 改派员工
// @Summary 改派员工
// @Description 把员工改派到店主名下另一家店铺；下一次请求即按新店铺鉴权
// @Tags Worker (员工管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "员工ID"
// @Param body body map[string]int64 true "{\"shop_id\": 目标店铺ID}"
// @Success 200 {object} map[string]string "改派成功"
// @Failure 404 {object} map[string]string "员工或店铺不存在"
// @Router /api/workers/{id}/shop [put]
func (ctrl *WorkerController) ReassignWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ShopID int64 `json:"shop_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.workerSvc.ReassignWorker(c.Request.Context(), middleware.GetAdminID(c), workerID, req.ShopID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "改派成功"})
}

// DeleteWorker 删除员工
// @Summary 删除员工
// @Description 删除后其令牌在下一次请求即失效
// @Tags Worker (员工管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "员工ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 404 {object} map[string]string "员工不存在"
// @Router /api/workers/{id} [delete]
func (ctrl *WorkerController) DeleteWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.workerSvc.DeleteWorker(c.Request.Context(), middleware.GetAdminID(c), workerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
