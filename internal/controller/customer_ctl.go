package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	customerSvc *service.CustomerService
}

func NewCustomerController(customerSvc *service.CustomerService) *CustomerController {
	return &CustomerController{customerSvc: customerSvc}
}

// GetShopView 顾客端店铺视图（公开）
// @Summary 扫码后的店铺全量视图
// @Description 公开路由，无需登录；只含在售商品与有效期内的活动
// @Tags Customer (顾客端)
// @Produce json
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.CustomerShopView "店铺视图"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/customer/shops/{id} [get]
func (ctrl *CustomerController) GetShopView(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := ctrl.customerSvc.GetShopView(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SearchProducts 顾客端商品搜索（公开）
// @Summary 顾客端商品搜索
// @Description 公开路由；keyword 为空时返回全部在售商品
// @Tags Customer (顾客端)
// @Produce json
// @Param id path int true "店铺ID"
// @Param keyword query string false "搜索关键词"
// @Success 200 {array} model.Product "商品列表"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/customer/shops/{id}/search [get]
func (ctrl *CustomerController) SearchProducts(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	products, err := ctrl.customerSvc.SearchProducts(c.Request.Context(), shopID, c.Query("keyword"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
