package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Shop{}, &model.Zone{}, &model.Category{},
		&model.Product{}, &model.Offer{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

func newCustomerService(db *gorm.DB) *CustomerService {
	return NewCustomerService(
		repository.NewShopRepository(db),
		repository.NewZoneRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
		repository.NewOfferRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestCustomerService_ShopView(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	shop := model.Shop{AdminID: 1, Name: "视图店", APIKey: "snk_secret"}
	db.Create(&shop)
	db.Create(&model.Zone{ShopID: shop.ID, Name: "区1"})
	db.Create(&model.Product{ShopID: shop.ID, Name: "在售", InStock: true})
	db.Create(&model.Product{ShopID: shop.ID, Name: "缺货", InStock: false})

	past := time.Now().Add(-48 * time.Hour)
	db.Create(&model.Offer{ShopID: shop.ID, Title: "进行中", IsActive: true})
	db.Create(&model.Offer{ShopID: shop.ID, Title: "已过期", IsActive: true, EndDate: &past})
	db.Create(&model.Offer{ShopID: shop.ID, Title: "已停用", IsActive: false})

	view, err := svc.GetShopView(ctx, shop.ID)
	if err != nil {
		t.Fatalf("获取视图失败: %v", err)
	}

	if view.Shop.APIKey != "" {
		t.Fatal("顾客视图不能暴露集成密钥")
	}
	if len(view.Products) != 1 || view.Products[0].Name != "在售" {
		t.Fatalf("只应返回在售商品: %+v", view.Products)
	}
	if len(view.Offers) != 1 || view.Offers[0].Title != "进行中" {
		t.Fatalf("只应返回有效期内的活动: %+v", view.Offers)
	}
	if len(view.Zones) != 1 {
		t.Fatalf("分区数错误: %d", len(view.Zones))
	}
}

func TestCustomerService_ShopNotFound(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(db)

	if _, err := svc.GetShopView(context.Background(), 404); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("不存在的店铺应报错, got %v", err)
	}
}

func TestCustomerService_Search(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	shop := model.Shop{AdminID: 1, Name: "搜索店", APIKey: "snk_x"}
	db.Create(&shop)
	db.Create(&model.Product{ShopID: shop.ID, Name: "有机牛奶", InStock: true})
	db.Create(&model.Product{ShopID: shop.ID, Name: "面包", Description: "含牛奶成分", InStock: true})
	db.Create(&model.Product{ShopID: shop.ID, Name: "缺货牛奶", InStock: false})

	results, err := svc.SearchProducts(ctx, shop.ID, "牛奶")
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	// 名称或描述命中，且只含在售
	if len(results) != 2 {
		t.Fatalf("搜索结果数错误: %d", len(results))
	}

	// 关键词为空返回全部在售
	all, err := svc.SearchProducts(ctx, shop.ID, "")
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("空关键词应返回全部在售商品: %d", len(all))
	}
}
