package controller

import (
	"errors"
	"net/http"
	"strings"

	"edutech_backend/internal/service"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AIController struct {
	AIService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{AIService: aiService}
}

type AskRequest struct {
	Question string `json:"question" example:"What is a JOIN?"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

// Health godoc
// @Summary AI 配置检查
// @Tags AI
// @Produce json
// @Success 200 {object} util.Response{data=service.AIHealth}
// @Router /ai-health [get]
func (c *AIController) Health(ctx *gin.Context) {
	util.Success(ctx, c.AIService.Health())
}

// Ask godoc
// @Summary 向 AI 导师提问
// @Description 主模型不可用时自动切换备用模型
// @Tags AI
// @Accept json
// @Produce json
// @Param body body AskRequest true "问题"
// @Success 200 {object} util.Response{data=AskResponse}
// @Failure 400 {object} util.Response{data=AskResponse}
// @Failure 500 {object} util.Response{data=AskResponse} "未配置 API Key"
// @Router /ai-response [post]
func (c *AIController) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		util.ErrorWithData(ctx, http.StatusBadRequest, "Invalid payload", AskResponse{Answer: service.AskForQuestion})
		return
	}

	answer, err := c.AIService.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, util.ErrAINotConfigured) {
			util.ErrorWithData(ctx, http.StatusInternalServerError, "Missing OPENAI_API_KEY", AskResponse{Answer: service.AINotConfiguredMsg})
			return
		}
		status := http.StatusInternalServerError
		var aiErr *service.AIError
		if errors.As(err, &aiErr) && aiErr.Status >= 400 {
			status = aiErr.Status
		}
		logger.Log.Error("OpenAI error", zap.Int("status", status), zap.Error(err))
		util.ErrorWithData(ctx, status, err.Error(), AskResponse{Answer: service.AnswerUnavailable})
		return
	}

	util.Success(ctx, AskResponse{Answer: answer})
}
