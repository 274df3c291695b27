package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/controller"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
	"shopnav_dev_v1_202608/internal/router"
	"shopnav_dev_v1_202608/internal/service"
	"shopnav_dev_v1_202608/internal/task"
	"shopnav_dev_v1_202608/pkg/database"
)

// @title 店铺导航服务 API
// @version 1.0
// @description 多租户店铺导航后端：店主发布店铺地图，员工维护目录，外部收银软件通过 API Key 同步商品
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env 不存在时静默跳过，环境变量直接生效
	_ = godotenv.Load()

	// 1. JWT 配置
	initJWT()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由（访问日志走 zap，不再叠加 gin 默认 Logger）
	r := gin.New()
	r.Use(gin.Recovery())
	router.InitRoutes(r, deps.Controllers, deps.Repos.Worker, deps.Repos.Shop)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Admin    repository.AdminRepository
	Worker   repository.WorkerRepository
	Shop     repository.ShopRepository
	Zone     repository.ZoneRepository
	Category repository.CategoryRepository
	Product  repository.ProductRepository
	Offer    repository.OfferRepository
	APILog   repository.APICallLogRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Shop     *service.ShopService
	Worker   *service.WorkerService
	Zone     *service.ZoneService
	Category *service.CategoryService
	Product  *service.ProductService
	Offer    *service.OfferService
	Sync     *service.SyncService
	Customer *service.CustomerService
	Storage  service.ImageStore
}

// ==================== 初始化函数 ====================

// initJWT 从环境变量加载 JWT 配置
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.SecretKey = secret
	}
	middleware.SetJWTConfig(cfg)
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN", fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "shopnav"),
		getEnv("DB_PORT", "5432"),
	))

	db, err := database.Open(dsn,
		// 主体
		&model.Admin{}, &model.Worker{},
		// 店铺
		&model.Shop{},
		// 目录
		&model.Zone{}, &model.Category{}, &model.Product{}, &model.Offer{},
		// 集成日志
		&model.APICallLog{},
	)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Admin:    repository.NewAdminRepository(db),
		Worker:   repository.NewWorkerRepository(db),
		Shop:     repository.NewShopRepository(db),
		Zone:     repository.NewZoneRepository(db),
		Category: repository.NewCategoryRepository(db),
		Product:  repository.NewProductRepository(db),
		Offer:    repository.NewOfferRepository(db),
		APILog:   repository.NewAPICallLogRepository(db),
	}

	// -------- 存储 --------
	storage := initStorage()

	// -------- 业务服务 --------
	services := &Services{
		Auth:     service.NewAuthService(repos.Admin, repos.Worker),
		Shop:     service.NewShopService(repos.Shop, getEnv("CUSTOMER_BASE_URL", "http://localhost:3000")),
		Worker:   service.NewWorkerService(repos.Worker, repos.Admin, repos.Shop),
		Zone:     service.NewZoneService(repos.Zone, repos.Product),
		Category: service.NewCategoryService(repos.Category, repos.Product),
		Product:  service.NewProductService(repos.Product, repos.Zone, repos.Category),
		Offer:    service.NewOfferService(repos.Offer),
		Sync:     service.NewSyncService(repos.Product, repos.Zone, repos.Category, repos.APILog),
		Customer: service.NewCustomerService(repos.Shop, repos.Zone, repos.Category, repos.Product, repos.Offer),
		Storage:  storage,
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:        controller.NewAuthController(services.Auth),
		Shop:        controller.NewShopController(services.Shop),
		Worker:      controller.NewWorkerController(services.Worker),
		Zone:        controller.NewZoneController(services.Zone),
		Category:    controller.NewCategoryController(services.Category),
		Product:     controller.NewProductController(services.Product),
		Offer:       controller.NewOfferController(services.Offer),
		Customer:    controller.NewCustomerController(services.Customer),
		Integration: controller.NewIntegrationController(services.Sync),
		Upload:      controller.NewUploadController(services.Storage),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化存储
func initStorage() service.ImageStore {
	storage, err := service.NewImageStore(&service.ImageStoreConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		KeyPrefix: getEnv("STORAGE_KEY_PREFIX", ""),
		BaseDir:   getEnv("STORAGE_BASE_DIR", ""),
		BaseURL:   getEnv("STORAGE_BASE_URL", ""),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	offerTask := task.NewOfferTask(deps.Repos.Offer)
	offerTask.Start()

	logTask := task.NewAPILogTask(deps.Repos.APILog)
	logTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
