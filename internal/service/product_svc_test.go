package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Zone{}, &model.Category{}, &model.Product{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewZoneRepository(db),
		repository.NewCategoryRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestProductService_CrossShopRefRejected(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	// 分区属于店铺 2
	zone := model.Zone{ShopID: 2, Name: "别店的分区"}
	db.Create(&zone)

	_, err := svc.CreateProduct(ctx, 1, &dto.CreateProductRequest{
		Name:   "越界商品",
		ZoneID: &zone.ID,
	})
	if !errors.Is(err, ErrCrossShopRef) {
		t.Fatalf("跨店铺引用应在写入前拒绝, got %v", err)
	}

	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count != 0 {
		t.Fatal("被拒绝的商品不应落库")
	}
}

func TestProductService_CreateDefaults(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &dto.CreateProductRequest{Name: "纯名称商品"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if product.Icon != model.DefaultProductIcon {
		t.Errorf("应使用默认图标: %q", product.Icon)
	}
	if !product.InStock {
		t.Error("默认在售")
	}
}

func TestProductService_DeleteZoneClearsRefs(t *testing.T) {
	db := setupProductTestDB(t)
	productSvc := newProductService(db)
	zoneSvc := NewZoneService(repository.NewZoneRepository(db), repository.NewProductRepository(db))
	ctx := context.Background()

	zone, err := zoneSvc.CreateZone(ctx, 1, &dto.CreateZoneRequest{Name: "待删分区"})
	if err != nil {
		t.Fatalf("创建分区失败: %v", err)
	}
	product, err := productSvc.CreateProduct(ctx, 1, &dto.CreateProductRequest{
		Name:   "挂在分区下的商品",
		ZoneID: &zone.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if err := zoneSvc.DeleteZone(ctx, 1, zone.ID); err != nil {
		t.Fatalf("删除分区失败: %v", err)
	}

	var found model.Product
	db.First(&found, product.ID)
	if found.ZoneID != nil {
		t.Fatalf("删除分区后商品引用应置空: %v", found.ZoneID)
	}
}

// ==================== CSV 导入 ====================

func TestProductService_ImportCSV(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	db.Create(&model.Zone{ShopID: 1, Name: "零食区"})

	csvData := strings.Join([]string{
		"name,zone,category,price,description",
		"薯片,零食,,3.5,原味",
		",,,,",            // 名称为空，该行失败
		"饼干,零食,,abc,",    // 价格非法，该行失败
		"可乐,不存在的区,,2.5,", // 分区匹配不到则留空
	}, "\n")

	result, err := svc.ImportCSV(ctx, 1, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("导入不应整体失败: %v", err)
	}
	if result.Total != 4 || result.Imported != 2 || result.Errors != 2 {
		t.Fatalf("导入计数错误: %+v", result)
	}

	var chips model.Product
	if err := db.Where("shop_id = ? AND name = ?", 1, "薯片").First(&chips).Error; err != nil {
		t.Fatalf("薯片未导入: %v", err)
	}
	if chips.ZoneID == nil {
		t.Error("薯片应解析到零食区")
	}
	if chips.Price == nil || *chips.Price != 3.5 {
		t.Errorf("价格错误: %v", chips.Price)
	}

	var cola model.Product
	if err := db.Where("shop_id = ? AND name = ?", 1, "可乐").First(&cola).Error; err != nil {
		t.Fatalf("可乐未导入: %v", err)
	}
	if cola.ZoneID != nil {
		t.Error("匹配不到的分区应留空")
	}
}
