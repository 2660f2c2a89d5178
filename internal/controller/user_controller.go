package controller

import (
	"edutech_backend/internal/model"
	"edutech_backend/internal/service"
	"edutech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Me godoc
// @Summary 当前登录身份
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /me [get]
func (c *UserController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Missing token")
		return
	}
	util.Success(ctx, gin.H{"username": user.Username, "role": user.Role})
}

// GetProfile godoc
// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Missing token")
		return
	}

	profile, err := c.UserService.GetProfile(ctx.Request.Context(), user.Username)
	if err != nil {
		respondError(ctx, err, "Failed to load profile")
		return
	}
	util.Success(ctx, profile)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 只允许修改 fullName, email, branchYear, college, phone, interests, location, bio
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.ProfileUpdate true "要修改的字段"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 409 {object} util.Response "邮箱已被使用"
// @Router /profile [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Missing token")
		return
	}

	var req model.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidInput.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(ctx.Request.Context(), user.Username, req)
	if err != nil {
		respondError(ctx, err, "Failed to update profile")
		return
	}
	util.Success(ctx, profile)
}

// ListUsers godoc
// @Summary 用户列表（管理员）
// @Tags 管理员
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 403 {object} util.Response
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Failed to fetch users")
		return
	}
	util.Success(ctx, util.ListResponse{List: users, Total: len(users)})
}
