package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupTenantTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Admin{}, &model.Worker{}, &model.Shop{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

// newTenantRouter 挂载与生产一致的中间件链
func newTenantRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	workerRepo := repository.NewWorkerRepository(db)
	shopRepo := repository.NewShopRepository(db)

	r := gin.New()
	authed := r.Group("/api", JWTAuth(), ResolveWorkerContext(workerRepo))
	shop := authed.Group("/shops/:id", ShopScopeGuard(shopRepo, "id"))
	shop.GET("/zones", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": GetAdminID(c)})
	})
	shop.DELETE("", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 员工范围 ====================

func TestWorkerScopeDenied(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, AdminID: 1, Name: "店2", APIKey: "snk_2"})
	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	r := newTenantRouter(db)
	token, _ := GenerateToken(10, model.RoleWorker, "w@example.com")

	// 被指派的店铺放行
	if w := doRequest(r, http.MethodGet, "/api/shops/1/zones", token); w.Code != http.StatusOK {
		t.Fatalf("员工访问被指派店铺应放行, got %d", w.Code)
	}
	// 同店主的其他店铺也拒绝
	if w := doRequest(r, http.MethodGet, "/api/shops/2/zones", token); w.Code != http.StatusForbidden {
		t.Fatalf("员工越店访问应 403, got %d", w.Code)
	}
}

func TestWorkerReassignmentTakesEffectNextRequest(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, AdminID: 1, Name: "店2", APIKey: "snk_2"})
	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	r := newTenantRouter(db)
	// 改派前签发的 Token
	token, _ := GenerateToken(10, model.RoleWorker, "w@example.com")

	if w := doRequest(r, http.MethodGet, "/api/shops/2/zones", token); w.Code != http.StatusForbidden {
		t.Fatalf("改派前访问店2应 403, got %d", w.Code)
	}

	// 改派到店2，旧 Token 不变
	db.Model(&model.Worker{}).Where("id = ?", 10).Update("shop_id", 2)

	if w := doRequest(r, http.MethodGet, "/api/shops/2/zones", token); w.Code != http.StatusOK {
		t.Fatalf("改派后下一次请求即按新店铺放行, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/shops/1/zones", token); w.Code != http.StatusForbidden {
		t.Fatalf("改派后旧店铺应拒绝, got %d", w.Code)
	}
}

func TestDeletedWorkerRejected(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	r := newTenantRouter(db)
	token, _ := GenerateToken(10, model.RoleWorker, "w@example.com")

	if w := doRequest(r, http.MethodGet, "/api/shops/1/zones", token); w.Code != http.StatusOK {
		t.Fatalf("删除前应放行, got %d", w.Code)
	}

	db.Delete(&model.Worker{}, 10)

	// Token 密码学上仍有效，但范围解析失败
	if w := doRequest(r, http.MethodGet, "/api/shops/1/zones", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("员工被删除后下一次请求应 401, got %d", w.Code)
	}
}

// ==================== 角色守卫 ====================

func TestAdminOnlyDeniesWorker(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	r := newTenantRouter(db)

	workerToken, _ := GenerateToken(10, model.RoleWorker, "w@example.com")
	if w := doRequest(r, http.MethodDelete, "/api/shops/1", workerToken); w.Code != http.StatusForbidden {
		t.Fatalf("员工执行店主操作应 403, got %d", w.Code)
	}

	adminToken, _ := GenerateToken(1, model.RoleAdmin, "a@example.com")
	if w := doRequest(r, http.MethodDelete, "/api/shops/1", adminToken); w.Code != http.StatusOK {
		t.Fatalf("店主执行应放行, got %d", w.Code)
	}
}

// 范围守卫在角色守卫之前：员工越店删除先看到 403 范围拒绝
func TestScopeCheckedBeforeRole(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, AdminID: 1, Name: "店2", APIKey: "snk_2"})
	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	r := newTenantRouter(db)
	token, _ := GenerateToken(10, model.RoleWorker, "w@example.com")

	w := doRequest(r, http.MethodDelete, "/api/shops/2", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("应 403, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "无权访问该店铺") {
		t.Errorf("应返回范围拒绝而非角色拒绝: %s", body)
	}
}

// ==================== 店主归属 ====================

func TestAdminCannotReachOthersShop(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, AdminID: 99, Name: "别人的店", APIKey: "snk_2"})

	r := newTenantRouter(db)
	token, _ := GenerateToken(1, model.RoleAdmin, "a@example.com")

	if w := doRequest(r, http.MethodGet, "/api/shops/2/zones", token); w.Code != http.StatusNotFound {
		t.Fatalf("店主访问非名下店铺应 404, got %d", w.Code)
	}
}

// ==================== API Key 认证 ====================

func TestAPIKeyAuth(t *testing.T) {
	db := setupTenantTestDB(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 7, Name: "店1", APIKey: "snk_livekey"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/integration/ping", APIKeyAuth(repository.NewShopRepository(db)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"shop_id": GetShopID(c), "admin_id": GetAdminID(c)})
	})

	// 缺少密钥
	req := httptest.NewRequest(http.MethodPost, "/api/integration/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("缺少密钥应 401, got %d", w.Code)
	}

	// 有效密钥（请求头）
	req = httptest.NewRequest(http.MethodPost, "/api/integration/ping", nil)
	req.Header.Set("x-api-key", "snk_livekey")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("有效密钥应放行, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"shop_id":1`) {
		t.Errorf("应注入店铺范围: %s", w.Body.String())
	}

	// 有效密钥（查询参数）
	req = httptest.NewRequest(http.MethodPost, "/api/integration/ping?api_key=snk_livekey", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("查询参数密钥应等价, got %d", w.Code)
	}

	// 轮换后旧密钥立即失效
	db.Model(&model.Shop{}).Where("id = ?", 1).Update("api_key", "snk_rotated")
	req = httptest.NewRequest(http.MethodPost, "/api/integration/ping", nil)
	req.Header.Set("x-api-key", "snk_livekey")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("轮换后旧密钥应 401, got %d", w.Code)
	}
}

