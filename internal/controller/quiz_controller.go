package controller

import (
	"errors"

	"edutech_backend/internal/scoring"
	"edutech_backend/internal/service"
	"edutech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Status godoc
// @Summary 测验接口连通性检查
// @Tags 测验
// @Produce json
// @Success 200 {object} util.Response
// @Router /quiz [get]
func (c *QuizController) Status(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status":  "ok",
		"message": "Quiz API is reachable. Use POST for quiz submission.",
	})
}

// Submit godoc
// @Summary 提交测验答案
// @Description 识别答卷格式并计分，返回方向得分、推荐课程和技能熟练度，同时保存结果
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmission true "测验答案"
// @Success 200 {object} util.Response{data=service.QuizResponse}
// @Failure 400 {object} util.Response "answers 缺失或不是对象"
// @Failure 401 {object} util.Response
// @Failure 500 {object} util.Response "保存失败"
// @Router /quiz [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req service.QuizSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidAnswers.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Missing token")
		return
	}

	resp, err := c.QuizService.Submit(ctx.Request.Context(), user.Username, req)
	if err != nil {
		if errors.Is(err, util.ErrResultNotSaved) {
			util.LogInternalError(ctx, util.ErrResultNotSaved.Error(), err)
			return
		}
		if errors.Is(err, util.ErrInvalidAnswers) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, "Failed to score quiz", err)
		return
	}

	util.Success(ctx, resp)
}

// Skills godoc
// @Summary 方向列表
// @Tags 测验
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /skills [get]
func (c *QuizController) Skills(ctx *gin.Context) {
	util.Success(ctx, trackNames())
}

// Ping godoc
// @Summary 存活检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /ping [get]
func Ping(ctx *gin.Context) {
	util.Success(ctx, gin.H{"ok": true})
}

func trackNames() []string {
	names := make([]string, len(scoring.Tracks))
	for i, t := range scoring.Tracks {
		names[i] = string(t)
	}
	return names
}
