package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
	"shopnav_dev_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func setupIntegrationRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Shop{}, &model.Zone{}, &model.Category{},
		&model.Product{}, &model.APICallLog{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	shopRepo := repository.NewShopRepository(db)
	syncSvc := service.NewSyncService(
		repository.NewProductRepository(db),
		repository.NewZoneRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewAPICallLogRepository(db),
	)
	ctl := NewIntegrationController(syncSvc)

	r := gin.New()
	integration := r.Group("/api/integration", middleware.APIKeyAuth(shopRepo))
	integration.POST("/products/sync", ctl.SyncProducts)
	integration.GET("/products", ctl.ListProducts)
	return r, db
}

func performRequest(r http.Handler, method, path, apiKey string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 集成同步流程 ====================

func TestIntegrationSync_EndToEnd(t *testing.T) {
	r, db := setupIntegrationRouter(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "集成店", APIKey: "snk_test"})

	price := 3.5
	body := dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{
			{Name: "牛奶", Price: &price},
			{Name: ""}, // 单条失败
		},
	}

	w := performRequest(r, http.MethodPost, "/api/integration/products/sync", "snk_test", body)
	assert.Equal(t, http.StatusOK, w.Code, "含失败条目的批量调用仍应 200")

	var result dto.SyncResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, result.Errors)

	// 回读确认写入的是密钥对应的店铺
	w = performRequest(r, http.MethodGet, "/api/integration/products", "snk_test", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var products []model.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ShopID)

	// 调用日志已写入
	var logCount int64
	db.Model(&model.APICallLog{}).Where("shop_id = ?", 1).Count(&logCount)
	assert.Equal(t, int64(1), logCount)
}

func TestIntegrationSync_BadKey(t *testing.T) {
	r, db := setupIntegrationRouter(t)
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "集成店", APIKey: "snk_test"})

	w := performRequest(r, http.MethodPost, "/api/integration/products/sync", "snk_wrong",
		dto.SyncProductsRequest{Products: []dto.ProductSyncItem{{Name: "x"}}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/api/integration/products/sync", "",
		dto.SyncProductsRequest{Products: []dto.ProductSyncItem{{Name: "x"}}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
