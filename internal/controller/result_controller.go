package controller

import (
	"edutech_backend/internal/service"
	"edutech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// MyResults godoc
// @Summary 我的测验历史
// @Description 按提交时间倒序
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /my-results [get]
func (c *ResultController) MyResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Missing token")
		return
	}

	results, err := c.ResultService.History(ctx.Request.Context(), user.Username)
	if err != nil {
		respondError(ctx, err, "Failed to fetch results")
		return
	}
	util.Success(ctx, util.ListResponse{List: results, Total: len(results)})
}
