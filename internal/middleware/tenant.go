package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopnav_dev_v1_202608/internal/model"
	"shopnav_dev_v1_202608/internal/repository"
)

// 租户范围与角色是两条独立的授权轴：
// 范围回答"哪家店"，角色回答"哪些操作"。
// 二者拆成可组合的中间件，路由按需叠加，避免在每个 handler 里重复租户过滤。

// ==================== 员工范围解析 ====================

// ResolveWorkerContext 解析员工的有效租户范围（JWTAuth 之后使用）
// 员工的 admin_id / shop_id 每次都从存储现查，绝不取自 Token：
// 员工被删除或改派后，旧 Token 在密码学上仍有效，但范围立即失效。
// 店主的范围是"名下所有店铺"，按资源懒校验，这里只透传 admin_id。
func ResolveWorkerContext(workerRepo repository.WorkerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		role := GetUserRole(c)

		if role == model.RoleWorker {
			scope, err := workerRepo.GetScope(c.Request.Context(), userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"code":    500,
					"message": "解析员工信息失败",
				})
				c.Abort()
				return
			}
			if scope == nil {
				// Token 未过期但员工已被删除
				c.JSON(http.StatusUnauthorized, gin.H{
					"code":    401,
					"message": "员工不存在",
				})
				c.Abort()
				return
			}
			c.Set(ContextKeyAdminID, scope.AdminID)
			c.Set(ContextKeyWorkerShopID, scope.ShopID)
		} else {
			c.Set(ContextKeyAdminID, userID)
		}

		c.Next()
	}
}

// ==================== 角色守卫 ====================

// AdminOnly 店主专用操作守卫
// 用于：店铺增删、员工管理、密钥轮换、目录条目删除
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) == model.RoleWorker {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "需要店主权限",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ==================== 范围守卫 ====================

// ShopScopeGuard 店铺范围守卫（ResolveWorkerContext 之后使用）
// 员工访问非分配店铺一律 403；店主访问非名下店铺 404。
// 范围守卫排在角色守卫之前：员工越店访问先看到范围拒绝。
func ShopScopeGuard(shopRepo repository.ShopRepository, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested, err := strconv.ParseInt(c.Param(paramName), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的店铺 ID",
			})
			c.Abort()
			return
		}

		if GetUserRole(c) == model.RoleWorker {
			if requested != GetWorkerShopID(c) {
				c.JSON(http.StatusForbidden, gin.H{
					"code":    403,
					"message": "无权访问该店铺",
				})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		shop, err := shopRepo.GetByIDAndAdmin(c.Request.Context(), requested, GetAdminID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "校验店铺归属失败",
			})
			c.Abort()
			return
		}
		if shop == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "店铺不存在",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ==================== API Key 认证 ====================

// APIKeyAuth API Key 认证中间件（Path B：外部软件集成）
// 密钥从 x-api-key 请求头或 api_key 查询参数取，两者等价。
// 范围单位是"那一家店铺"，比店主 Token 的多店范围刻意收窄；
// admin_id 附带注入，供下游做所有权核对。
func APIKeyAuth(shopRepo repository.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "缺少 API Key",
			})
			c.Abort()
			return
		}

		shop, err := shopRepo.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "鉴权失败",
			})
			c.Abort()
			return
		}
		if shop == nil {
			// 密钥不存在与密钥已轮换对调用方不可区分
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "API Key 无效",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyShopID, shop.ID)
		c.Set(ContextKeyAdminID, shop.AdminID)

		c.Next()
	}
}
