package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productSvc *service.ProductService
}

func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// CreateProduct 创建商品
// @Summary 创建商品
// @Description 分区/分类引用必须与商品同店铺
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param body body dto.CreateProductRequest true "商品信息"
// @Success 200 {object} model.Product "商品"
// @Failure 400 {object} map[string]string "跨店铺引用"
// @Router /api/shops/{id}/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productSvc.CreateProduct(c.Request.Context(), shopID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProducts 商品列表
// @Summary 商品列表（含分区/分类关联）
// @Tags Product (商品管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {array} model.Product "商品列表"
// @Router /api/shops/{id}/products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	products, err := ctrl.productSvc.ListProducts(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Description 未提供的字段保持原值
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param productId path int true "商品ID"
// @Param body body dto.UpdateProductRequest true "更新字段"
// @Success 200 {object} model.Product "商品"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/shops/{id}/products/{productId} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productSvc.UpdateProduct(c.Request.Context(), shopID, productID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product (商品管理)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param productId path int true "商品ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/shops/{id}/products/{productId} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := ctrl.productSvc.DeleteProduct(c.Request.Context(), shopID, productID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ImportCSV CSV 批量导入
// @Summary CSV 批量导入商品
// @Description 列顺序 name,zone,category,price,description；首行为表头；逐行导入，单行失败不影响其余行
// @Tags Product (商品管理)
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param file formData file true "CSV 文件"
// @Success 200 {object} dto.ImportResult "导入结果"
// @Failure 400 {object} map[string]string "文件缺失或格式错误"
// @Router /api/shops/{id}/products-import [post]
func (ctrl *ProductController) ImportCSV(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 CSV 文件"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取文件"})
		return
	}
	defer file.Close()

	result, err := ctrl.productSvc.ImportCSV(c.Request.Context(), shopID, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
