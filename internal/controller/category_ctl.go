package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param body body dto.CreateCategoryRequest true "分类信息"
// @Success 200 {object} model.Category "分类"
// @Router /api/shops/{id}/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	category, err := ctrl.categorySvc.CreateCategory(c.Request.Context(), shopID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListCategories 分类列表
// @Summary 分类列表（含商品数）
// @Tags Category (分类管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {array} dto.CategoryInfo "分类列表"
// @Router /api/shops/{id}/categories [get]
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	categories, err := ctrl.categorySvc.ListCategories(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Description 未提供的字段保持原值
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param categoryId path int true "分类ID"
// @Param body body dto.UpdateCategoryRequest true "更新字段"
// @Success 200 {object} model.Category "分类"
// @Failure 404 {object} map[string]string "分类不存在"
// @Router /api/shops/{id}/categories/{categoryId} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	category, err := ctrl.categorySvc.UpdateCategory(c.Request.Context(), shopID, categoryID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Description 引用该分类的商品 category_id 置空
// @Tags Category (分类管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param categoryId path int true "分类ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 404 {object} map[string]string "分类不存在"
// @Router /api/shops/{id}/categories/{categoryId} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	if err := ctrl.categorySvc.DeleteCategory(c.Request.Context(), shopID, categoryID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
