package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
// 进程启动时加载一次，之后不再变更
type JWTConfig struct {
	SecretKey string        // 签名密钥
	TokenTTL  time.Duration // Token 有效期，固定 7 天，没有 refresh 机制
	Issuer    string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey: "shopnav-secret-key-change-in-production",
		TokenTTL:  7 * 24 * time.Hour,
		Issuer:    "shopnav",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ErrInvalidToken 统一的 Token 校验失败错误
// 签名错误 / 载荷损坏 / 已过期一律返回它，不向调用方泄露具体原因
var ErrInvalidToken = errors.New("token 无效")

// ==================== Claims 定义 ====================

// AuthClaims 登录主体声明
type AuthClaims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role,omitempty"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 / 解析 ====================

// GenerateToken 签发登录 Token，有效期 7 天
func GenerateToken(userID int64, role, email string) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID: userID,
		Role:   role,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ParseToken 解析并校验 Token
// 兼容旧版 Token：早期签发的 Token 没有 role 字段，按 admin 处理
// （role 标签上线前只有店主账号存在）
func ParseToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role == "" {
		claims.Role = model.RoleAdmin
	}
	return claims, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"

	// 租户范围，由 ResolveWorkerContext / APIKeyAuth 写入
	ContextKeyAdminID      = "admin_id"
	ContextKeyWorkerShopID = "worker_shop_id"
	ContextKeyShopID       = "shop_id"
)

// JWTAuth Bearer Token 认证中间件（Path A：人工登录）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未提供认证信息",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "认证格式错误，应为 Bearer {token}",
			})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 无效或已过期",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Set(ContextKeyUserEmail, claims.Email)

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取登录主体 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetUserRole 从 Context 获取角色
func GetUserRole(c *gin.Context) string {
	if role, exists := c.Get(ContextKeyUserRole); exists {
		return role.(string)
	}
	return ""
}

// GetUserEmail 从 Context 获取邮箱
func GetUserEmail(c *gin.Context) string {
	if email, exists := c.Get(ContextKeyUserEmail); exists {
		return email.(string)
	}
	return ""
}

// GetAdminID 从 Context 获取归属店主 ID
func GetAdminID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyAdminID); exists {
		return id.(int64)
	}
	return 0
}

// GetWorkerShopID 从 Context 获取员工的有效店铺范围，店主返回 0
func GetWorkerShopID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyWorkerShopID); exists {
		return id.(int64)
	}
	return 0
}

// GetShopID 从 Context 获取 API Key 解析出的店铺 ID（Path B）
func GetShopID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyShopID); exists {
		return id.(int64)
	}
	return 0
}
