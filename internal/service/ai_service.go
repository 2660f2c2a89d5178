package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"edutech_backend/internal/config"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	mentorPrompt       = "You are a concise mentor for students. Answer clearly and helpfully."
	mentorTemperature  = 0.7
	NoAnswerReceived   = "No answer received."
	AnswerUnavailable  = "Sorry, unable to get answer."
	AskForQuestion     = "Please provide a question."
	AINotConfiguredMsg = "AI is not configured. Please set OPENAI_API_KEY on the server."
)

var modelErrorPattern = regexp.MustCompile(`(?i)model`)

type AIHealth struct {
	OK      bool   `json:"ok"`
	Model   string `json:"model"`
	Message string `json:"message"`
}

// AIError 上游返回的错误，携带应透传的 HTTP 状态码
type AIError struct {
	Status int
	Err    error
}

func (e *AIError) Error() string { return e.Err.Error() }
func (e *AIError) Unwrap() error { return e.Err }

type AIService struct {
	config config.AIConfig
	client *openai.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	s := &AIService{config: cfg}
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		s.client = openai.NewClientWithConfig(clientCfg)
	}
	return s
}

func (s *AIService) Health() AIHealth {
	if s.client == nil {
		return AIHealth{OK: false, Model: s.config.Model, Message: "Missing OPENAI_API_KEY in backend .env"}
	}
	return AIHealth{OK: true, Model: s.config.Model, Message: "AI configured"}
}

// Ask 先用主模型，主模型不可用（404 或模型相关错误）时改用备用模型
func (s *AIService) Ask(ctx context.Context, question string) (string, error) {
	if s.client == nil {
		return "", util.ErrAINotConfigured
	}

	answer, err := s.complete(ctx, s.config.Model, question)
	if err != nil && s.config.FallbackModel != "" && isModelError(err) {
		logger.Log.Warn("Primary model unavailable, falling back",
			zap.String("model", s.config.Model),
			zap.String("fallback", s.config.FallbackModel),
			zap.Error(err))
		answer, err = s.complete(ctx, s.config.FallbackModel, question)
	}
	if err != nil {
		return "", &AIError{Status: statusOf(err), Err: err}
	}
	if strings.TrimSpace(answer) == "" {
		return NoAnswerReceived, nil
	}
	return answer, nil
}

func (s *AIService) complete(ctx context.Context, model, question string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mentorPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Temperature: mentorTemperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode
	}
	return http.StatusInternalServerError
}

func isModelError(err error) bool {
	return statusOf(err) == http.StatusNotFound || modelErrorPattern.MatchString(err.Error())
}
