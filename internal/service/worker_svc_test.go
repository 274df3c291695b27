package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupWorkerTestDB(t *testing.T) *gorm.DB {
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

func newWorkerService(db *gorm.DB) *WorkerService {
	return NewWorkerService(
		repository.NewWorkerRepository(db),
		repository.NewAdminRepository(db),
		repository.NewShopRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestWorkerService_CreateRequiresOwnShop(t *testing.T) {
	db := setupWorkerTestDB(t)
	svc := newWorkerService(db)
	ctx := context.Background()

	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "我的店", APIKey: "snk_1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, AdminID: 99, Name: "别人的店", APIKey: "snk_2"})

	req := &dto.CreateWorkerRequest{Name: "小王", Email: "w@example.com", Password: "pw123456"}

	// 给别人的店铺创建员工
	if _, err := svc.CreateWorker(ctx, 1, 2, req); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("跨店主创建员工应被拒绝, got %v", err)
	}

	worker, err := svc.CreateWorker(ctx, 1, 1, req)
	if err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	if worker.ShopID != 1 {
		t.Errorf("员工店铺错误: %d", worker.ShopID)
	}

	// 密码不落明文
	var stored model.Worker
	db.First(&stored, worker.ID)
	if stored.Password == "pw123456" {
		t.Fatal("密码不能明文存储")
	}
}

func TestWorkerService_ReassignWithinOwner(t *testing.T) {
	db := setupWorkerTestDB(t)
	svc := newWorkerService(db)
	ctx := context.Background()

	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, AdminID: 1, Name: "店1", APIKey: "snk_1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, AdminID: 1, Name: "店2", APIKey: "snk_2"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 3}, AdminID: 99, Name: "别人的店", APIKey: "snk_3"})
	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	// 改派到别人的店铺
	if err := svc.ReassignWorker(ctx, 1, 10, 3); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("不能改派到非名下店铺, got %v", err)
	}

	// 别的店主动不了我的员工
	if err := svc.ReassignWorker(ctx, 99, 10, 3); !errors.Is(err, ErrWorkerNotFound) {
		t.Fatalf("跨店主改派应被拒绝, got %v", err)
	}

	if err := svc.ReassignWorker(ctx, 1, 10, 2); err != nil {
		t.Fatalf("改派失败: %v", err)
	}
	scope, _ := repository.NewWorkerRepository(db).GetScope(ctx, 10)
	if scope == nil || scope.ShopID != 2 {
		t.Fatalf("改派后范围应指向新店铺: %+v", scope)
	}
}

func TestWorkerService_Delete(t *testing.T) {
	db := setupWorkerTestDB(t)
	svc := newWorkerService(db)
	ctx := context.Background()

	db.Create(&model.Worker{BaseModel: model.BaseModel{ID: 10}, AdminID: 1, ShopID: 1, Name: "小王", Email: "w@example.com", Password: "x"})

	if err := svc.DeleteWorker(ctx, 99, 10); !errors.Is(err, ErrWorkerNotFound) {
		t.Fatalf("跨店主删除应被拒绝, got %v", err)
	}
	if err := svc.DeleteWorker(ctx, 1, 10); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	scope, err := repository.NewWorkerRepository(db).GetScope(ctx, 10)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if scope != nil {
		t.Fatal("删除后范围解析应为空")
	}
}
