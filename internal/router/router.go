package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopnav_dev_v1_202608/internal/controller"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/repository"

	_ "shopnav_dev_v1_202608/docs"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth        *controller.AuthController
	Shop        *controller.ShopController
	Worker      *controller.WorkerController
	Zone        *controller.ZoneController
	Category    *controller.CategoryController
	Product     *controller.ProductController
	Offer       *controller.OfferController
	Customer    *controller.CustomerController
	Integration *controller.IntegrationController
	Upload      *controller.UploadController
}

// InitRoutes 注册所有路由
//
// 鉴权分三条路径：
//   - JWT（店主/员工）：/api/auth/me、/api/shops/**、/api/workers/**、/api/uploads
//   - API Key（外部软件）：/api/integration/**，店铺身份由密钥解析
//   - 公开（顾客扫码）：/api/customer/**
func InitRoutes(r *gin.Engine,
	ctls *Controllers,
	workerRepo repository.WorkerRepository,
	shopRepo repository.ShopRepository) {

	r.Use(middleware.RequestLog(), middleware.Metrics())

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 运维端点
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/login", ctls.Auth.Login)
			auth.GET("/me", middleware.JWTAuth(), ctls.Auth.Me)
		}

		// customer 顾客端（公开，无需登录）
		customer := api.Group("/customer")
		{
			customer.GET("/shops/:id", ctls.Customer.GetShopView)
			customer.GET("/shops/:id/search", ctls.Customer.SearchProducts)
		}

		// integration 外部集成（API Key 鉴权）
		integration := api.Group("/integration", middleware.APIKeyAuth(shopRepo))
		{
			integration.POST("/products/sync", ctls.Integration.SyncProducts)
			integration.POST("/zones/sync", ctls.Integration.SyncZones)
			integration.GET("/products", ctls.Integration.ListProducts)
			integration.GET("/zones", ctls.Integration.ListZones)
		}

		// 以下全部 JWT + 员工范围解析
		authed := api.Group("", middleware.JWTAuth(), middleware.ResolveWorkerContext(workerRepo))

		authed.POST("/uploads", ctls.Upload.Upload)

		// shops 店铺管理
		shops := authed.Group("/shops")
		{
			shops.POST("", middleware.AdminOnly(), ctls.Shop.CreateShop)
			shops.GET("", ctls.Shop.ListShops)

			// 单店铺路由：范围守卫在前，角色守卫按需叠加
			shop := shops.Group("/:id", middleware.ShopScopeGuard(shopRepo, "id"))
			{
				shop.GET("", ctls.Shop.GetShop)
				shop.PUT("", middleware.AdminOnly(), ctls.Shop.UpdateShop)
				shop.DELETE("", middleware.AdminOnly(), ctls.Shop.DeleteShop)
				shop.GET("/qr", middleware.AdminOnly(), ctls.Shop.GetQR)
				shop.POST("/rotate-key", middleware.AdminOnly(), ctls.Shop.RotateAPIKey)

				// 员工管理（仅店主）
				shop.POST("/workers", middleware.AdminOnly(), ctls.Worker.CreateWorker)
				shop.GET("/workers", middleware.AdminOnly(), ctls.Worker.ListWorkers)

				// 分区
				shop.POST("/zones", ctls.Zone.CreateZone)
				shop.GET("/zones", ctls.Zone.ListZones)
				shop.PUT("/zones/:zoneId", ctls.Zone.UpdateZone)
				shop.DELETE("/zones/:zoneId", middleware.AdminOnly(), ctls.Zone.DeleteZone)

				// 分类
				shop.POST("/categories", ctls.Category.CreateCategory)
				shop.GET("/categories", ctls.Category.ListCategories)
				shop.PUT("/categories/:categoryId", ctls.Category.UpdateCategory)
				shop.DELETE("/categories/:categoryId", middleware.AdminOnly(), ctls.Category.DeleteCategory)

				// 商品
				shop.POST("/products", ctls.Product.CreateProduct)
				shop.GET("/products", ctls.Product.ListProducts)
				shop.PUT("/products/:productId", ctls.Product.UpdateProduct)
				shop.DELETE("/products/:productId", middleware.AdminOnly(), ctls.Product.DeleteProduct)
				shop.POST("/products-import", ctls.Product.ImportCSV)

				// 优惠活动
				shop.POST("/offers", ctls.Offer.CreateOffer)
				shop.GET("/offers", ctls.Offer.ListOffers)
				shop.PUT("/offers/:offerId", ctls.Offer.UpdateOffer)
				shop.DELETE("/offers/:offerId", middleware.AdminOnly(), ctls.Offer.DeleteOffer)

				// 集成调用日志（仅店主）
				shop.GET("/integration/logs", middleware.AdminOnly(), ctls.Integration.ListCallLogs)
				shop.GET("/integration/stats", middleware.AdminOnly(), ctls.Integration.GetCallStats)
			}
		}

		// workers 员工个体操作（仅店主）
		workers := authed.Group("/workers", middleware.AdminOnly())
		{
			workers.PUT("/:id/shop", ctls.Worker.ReassignWorker)
			workers.DELETE("/:id", ctls.Worker.DeleteWorker)
		}
	}
}
