package controller

import (
	"edutech_backend/internal/service"
	"edutech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 用户名唯一，密码至少 4 位
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.Credentials true "用户注册信息"
// @Success 201 {object} util.Response "注册成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名已存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.Credentials
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidInput.Error())
		return
	}

	if err := c.AuthService.Register(ctx.Request.Context(), req); err != nil {
		respondError(ctx, err, "Registration failed")
		return
	}

	util.Created(ctx, gin.H{"ok": true, "message": "Registered successfully"})
}

// Login godoc
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.Credentials true "登录凭证"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.Credentials
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidInput.Error())
		return
	}

	resp, err := c.AuthService.Login(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "Login failed")
		return
	}
	util.Success(ctx, resp)
}

// AdminRegister godoc
// @Summary 注册管理员
// @Description 配置了 ADMIN_SECRET 时必须提供正确的 adminSecret
// @Tags 管理员
// @Accept  json
// @Produce  json
// @Param   body body service.AdminRegistration true "管理员注册信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "管理员密钥错误"
// @Failure 409 {object} util.Response "用户名已存在"
// @Router /admin/register [post]
func (c *AuthController) AdminRegister(ctx *gin.Context) {
	var req service.AdminRegistration
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidInput.Error())
		return
	}

	if err := c.AuthService.RegisterAdmin(ctx.Request.Context(), req); err != nil {
		respondError(ctx, err, "Admin registration failed")
		return
	}

	util.Created(ctx, gin.H{"ok": true, "message": "Admin registered successfully"})
}

// AdminLogin godoc
// @Summary 管理员登录
// @Tags 管理员
// @Accept  json
// @Produce  json
// @Param   body body service.Credentials true "登录凭证"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req service.Credentials
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidInput.Error())
		return
	}

	resp, err := c.AuthService.AdminLogin(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "Login failed")
		return
	}
	util.Success(ctx, resp)
}
