package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupAuthTestDB(t *testing.T) *gorm.DB {
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

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewAdminRepository(db),
		repository.NewWorkerRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "张老板",
		Email:    "owner@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if resp.Token == "" || resp.Role != model.RoleAdmin {
		t.Fatalf("注册响应错误: %+v", resp)
	}

	// 密码必须以 bcrypt 哈希落库
	var admin model.Admin
	db.Where("email = ?", "owner@example.com").First(&admin)
	if admin.Password == "secret123" {
		t.Fatal("密码不能明文存储")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("secret123")) != nil {
		t.Fatal("密码哈希校验失败")
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "owner@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	claims, err := middleware.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != admin.ID || claims.Role != model.RoleAdmin {
		t.Errorf("令牌声明错误: %+v", claims)
	}
}

func TestAuthService_EmailUniqueAcrossKinds(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	// 员工先占用了邮箱
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	db.Create(&model.Worker{AdminID: 1, ShopID: 1, Name: "小王", Email: "taken@example.com", Password: string(hashed)})

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "李老板",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("店主注册应被员工占用的邮箱拒绝, got %v", err)
	}
}

func TestAuthService_WorkerLogin(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	db.Create(&model.Worker{AdminID: 7, ShopID: 3, Name: "小刘", Email: "worker@example.com", Password: string(hashed)})

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "worker@example.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("员工登录失败: %v", err)
	}
	if resp.Role != model.RoleWorker {
		t.Errorf("角色应为员工, got %q", resp.Role)
	}
	if resp.User.ShopID == nil || *resp.User.ShopID != 3 {
		t.Errorf("员工信息应带店铺: %+v", resp.User)
	}
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "王老板", Email: "w@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 密码错误与账号不存在返回同一个错误
	_, errWrongPw := svc.Login(ctx, &dto.LoginRequest{Email: "w@example.com", Password: "wrong"})
	_, errNoUser := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	if !errors.Is(errWrongPw, ErrInvalidCredentials) || !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Fatalf("登录失败应统一返回凭证错误: %v / %v", errWrongPw, errNoUser)
	}
}
