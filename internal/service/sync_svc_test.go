package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupSyncTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newSyncService(db *gorm.DB) *SyncService {
	return NewSyncService(
		repository.NewProductRepository(db),
		repository.NewZoneRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewAPICallLogRepository(db),
	)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

// ==================== 商品同步 ====================

func TestSyncProducts_InsertWithDefaults(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	result, err := svc.SyncProducts(ctx, 1, &dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{
			{Name: "有机牛奶", Price: floatPtr(3.5)},
		},
	})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	if result.Synced != 1 || result.Errors != 0 || result.Total != 1 {
		t.Fatalf("计数错误: %+v", result)
	}

	var product model.Product
	if err := db.Where("shop_id = ? AND name = ?", 1, "有机牛奶").First(&product).Error; err != nil {
		t.Fatalf("商品未写入: %v", err)
	}
	if product.Icon != model.DefaultProductIcon {
		t.Errorf("新建商品应使用默认图标, got %q", product.Icon)
	}
	if !product.InStock {
		t.Error("新建商品默认在售")
	}
	if product.Price == nil || *product.Price != 3.5 {
		t.Errorf("价格错误: %v", product.Price)
	}
}

func TestSyncProducts_Idempotent(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	req := &dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{
			{Name: "全麦面包", Price: floatPtr(2.0), Description: strPtr("500g")},
		},
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.SyncProducts(ctx, 1, req); err != nil {
			t.Fatalf("第 %d 次同步失败: %v", i+1, err)
		}
	}

	var count int64
	db.Model(&model.Product{}).Where("shop_id = ? AND name = ?", 1, "全麦面包").Count(&count)
	if count != 1 {
		t.Fatalf("重复同步不应创建副本, count=%d", count)
	}
}

func TestSyncProducts_PartialFieldsPreserved(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	// 店主手工维护的字段
	db.Create(&model.Product{
		ShopID:      1,
		Name:        "苹果",
		Icon:        "🍎",
		Description: "本地红富士",
		Price:       floatPtr(5.0),
		InStock:     true,
	})

	// 外部系统只知道价格和库存
	_, err := svc.SyncProducts(ctx, 1, &dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{
			{Name: "苹果", Price: floatPtr(4.5), InStock: boolPtr(false)},
		},
	})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	var product model.Product
	db.Where("shop_id = ? AND name = ?", 1, "苹果").First(&product)
	if product.Icon != "🍎" {
		t.Errorf("未提供的图标不应被覆盖, got %q", product.Icon)
	}
	if product.Description != "本地红富士" {
		t.Errorf("未提供的描述不应被覆盖, got %q", product.Description)
	}
	if product.Price == nil || *product.Price != 4.5 {
		t.Errorf("提供的价格应被更新: %v", product.Price)
	}
	if product.InStock {
		t.Error("提供的库存状态应被更新")
	}
}

func TestSyncProducts_ItemErrorsIsolated(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	result, err := svc.SyncProducts(ctx, 1, &dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{
			{Name: "前面的商品"},
			{Name: "   "}, // 名称为空，单条失败
			{Name: "后面的商品"},
		},
	})
	if err != nil {
		t.Fatalf("批量调用不应整体失败: %v", err)
	}
	if result.Synced != 2 || result.Errors != 1 || result.Total != 3 {
		t.Fatalf("计数错误: %+v", result)
	}

	var count int64
	db.Model(&model.Product{}).Where("shop_id = ?", 1).Count(&count)
	if count != 2 {
		t.Fatalf("失败条目之后的条目仍应处理, count=%d", count)
	}
}

func TestSyncProducts_ZoneNameResolution(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	db.Create(&model.Zone{ShopID: 1, Name: "生鲜冷柜区", Icon: "📍", Color: "#2196f3"})
	// 其他店铺的同名分区不可被引用
	db.Create(&model.Zone{ShopID: 2, Name: "冷柜", Icon: "📍", Color: "#2196f3"})

	_, err := svc.SyncProducts(ctx, 1, &dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{
			{Name: "酸奶", ZoneName: strPtr("冷柜")},     // 模糊匹配到"生鲜冷柜区"
			{Name: "牙刷", ZoneName: strPtr("不存在的分区")}, // 匹配不到则留空，不报错
		},
	})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	var yogurt, brush model.Product
	db.Where("shop_id = ? AND name = ?", 1, "酸奶").First(&yogurt)
	db.Where("shop_id = ? AND name = ?", 1, "牙刷").First(&brush)

	var zone model.Zone
	db.Where("shop_id = ? AND name = ?", 1, "生鲜冷柜区").First(&zone)
	if yogurt.ZoneID == nil || *yogurt.ZoneID != zone.ID {
		t.Errorf("分区名应模糊匹配到本店分区: %v", yogurt.ZoneID)
	}
	if brush.ZoneID != nil {
		t.Errorf("匹配不到的分区引用应留空: %v", brush.ZoneID)
	}
}

// ==================== 分区同步 ====================

func TestSyncZones_Upsert(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	result, err := svc.SyncZones(ctx, 1, &dto.SyncZonesRequest{
		Zones: []dto.ZoneSyncItem{{Name: "乳制品区"}},
	})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	if result.Synced != 1 {
		t.Fatalf("计数错误: %+v", result)
	}

	var zone model.Zone
	db.Where("shop_id = ? AND name = ?", 1, "乳制品区").First(&zone)
	if zone.Icon != model.DefaultZoneIcon || zone.Color != model.DefaultZoneColor {
		t.Errorf("新建分区应使用默认图标/颜色: %q %q", zone.Icon, zone.Color)
	}

	// 更新路径：只覆盖提供的字段
	_, err = svc.SyncZones(ctx, 1, &dto.SyncZonesRequest{
		Zones: []dto.ZoneSyncItem{{Name: "乳制品区", Color: strPtr("#ff0000")}},
	})
	if err != nil {
		t.Fatalf("第二次同步失败: %v", err)
	}

	var count int64
	db.Model(&model.Zone{}).Where("shop_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("按名称匹配不应创建副本, count=%d", count)
	}
	db.Where("shop_id = ? AND name = ?", 1, "乳制品区").First(&zone)
	if zone.Color != "#ff0000" {
		t.Errorf("颜色应被更新: %q", zone.Color)
	}
	if zone.Icon != model.DefaultZoneIcon {
		t.Errorf("未提供的图标不应被覆盖: %q", zone.Icon)
	}
}

// ==================== 调用日志 ====================

func TestSync_WritesCallLog(t *testing.T) {
	db := setupSyncTestDB(t)
	svc := newSyncService(db)
	ctx := context.Background()

	svc.SyncProducts(ctx, 1, &dto.SyncProductsRequest{
		Products: []dto.ProductSyncItem{{Name: "商品A"}, {Name: ""}},
	})
	svc.SyncZones(ctx, 1, &dto.SyncZonesRequest{
		Zones: []dto.ZoneSyncItem{{Name: "分区A"}},
	})

	var logs []model.APICallLog
	db.Where("shop_id = ?", 1).Order("id").Find(&logs)
	if len(logs) != 2 {
		t.Fatalf("商品和分区同步各应写一条调用日志, got %d", len(logs))
	}
	if logs[0].Endpoint != "/integration/products/sync" || logs[1].Endpoint != "/integration/zones/sync" {
		t.Errorf("端点记录错误: %q %q", logs[0].Endpoint, logs[1].Endpoint)
	}
	// 条目级失败不影响调用级成功
	if logs[0].StatusCode != 200 {
		t.Errorf("含失败条目的批量调用仍应记录 200, got %d", logs[0].StatusCode)
	}
	if string(logs[0].RequestBody) != `{"total":2,"synced":1,"errors":1}` {
		t.Errorf("请求摘要错误: %s", logs[0].RequestBody)
	}
}
