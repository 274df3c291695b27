package controller

import (
	"net/http"

	"shopnav_dev_v1_202608/internal/api/dto"
	"shopnav_dev_v1_202608/internal/middleware"
	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Register 店主注册
// @Summary 店主注册
// @Description 创建店主账号并返回 JWT；邮箱在店主和员工之间全局唯一
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 200 {object} dto.AuthResponse "注册成功"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "邮箱已被注册"
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login 登录（店主/员工共用）
// @Summary 登录
// @Description 店主与员工共用入口，按邮箱自动识别身份；返回 JWT
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.AuthResponse "登录成功"
// @Failure 401 {object} map[string]string "邮箱或密码错误"
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me 当前登录主体信息
// @Summary 当前登录主体
// @Tags Auth (认证模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Profile "主体信息"
// @Failure 401 {object} map[string]string "未登录"
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	profile, err := ctrl.authSvc.GetProfile(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
