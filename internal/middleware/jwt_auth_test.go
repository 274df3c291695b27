package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopnav_dev_v1_202608/internal/model"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, model.RoleWorker, "worker@example.com")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.RoleWorker || claims.Email != "worker@example.com" {
		t.Errorf("声明不匹配: %+v", claims)
	}
}

func TestParseToken_Tampered(t *testing.T) {
	token, _ := GenerateToken(1, model.RoleAdmin, "a@example.com")

	// 篡改最后几个字符（签名部分）
	tampered := token[:len(token)-4] + "xxxx"
	if _, err := ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("篡改的 Token 应返回统一错误, got %v", err)
	}

	// 其他密钥签发的 Token
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &AuthClaims{UserID: 1})
	foreignStr, _ := foreign.SignedString([]byte("other-secret"))
	if _, err := ParseToken(foreignStr); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("异源 Token 应返回统一错误, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now()
	claims := &AuthClaims{
		UserID: 1,
		Role:   model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(GetJWTConfig().SecretKey))

	if _, err := ParseToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("过期 Token 应返回统一错误, got %v", err)
	}
}

func TestParseToken_LegacyRoleDefaultsToAdmin(t *testing.T) {
	// 早期签发的 Token 没有 role 字段
	now := time.Now()
	claims := &AuthClaims{
		UserID: 7,
		Email:  "legacy@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(GetJWTConfig().SecretKey))

	parsed, err := ParseToken(signed)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if parsed.Role != model.RoleAdmin {
		t.Errorf("缺失的 role 应按店主处理, got %q", parsed.Role)
	}
}
