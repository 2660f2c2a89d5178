package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"edutech_backend/internal/event"
	"edutech_backend/internal/model"
	"edutech_backend/internal/repository"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/logger"
	"edutech_backend/pkg/monitoring"
	"edutech_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuizSubmission POST /quiz 请求体，两个字段都宽松解码
type QuizSubmission struct {
	Answers           json.RawMessage `json:"answers" swaggertype:"object"`
	SelectedInterests json.RawMessage `json:"selectedInterests" swaggertype:"array,string"`
}

// QuizResponse 评分结果
type QuizResponse struct {
	Scores          scoring.TrackScores   `json:"scores"`
	Recommendations []string              `json:"recommendations"`
	Message         string                `json:"message"`
	MaxPerTrack     int                   `json:"maxPerTrack"`
	Skills          []scoring.Proficiency `json:"skills"`
}

type QuizService struct {
	ResultRepo  repository.ResultRepository
	UserRepo    repository.UserRepository
	Publisher   event.Publisher
	maxPerTrack atomic.Int64
}

func NewQuizService(resultRepo repository.ResultRepository, userRepo repository.UserRepository, publisher event.Publisher, maxPerTrack int) *QuizService {
	s := &QuizService{
		ResultRepo: resultRepo,
		UserRepo:   userRepo,
		Publisher:  publisher,
	}
	s.SetMaxPerTrack(maxPerTrack)
	return s
}

// SetMaxPerTrack 配置热更新时调用
func (s *QuizService) SetMaxPerTrack(n int) {
	if n <= 0 {
		n = util.DefaultMaxPerTrack
	}
	s.maxPerTrack.Store(int64(n))
}

func (s *QuizService) MaxPerTrack() int {
	return int(s.maxPerTrack.Load())
}

// decode 校验 answers 必须是 JSON 对象；selectedInterests 只有数组才生效
func (q QuizSubmission) decode() (scoring.AnswerSet, []string, *string, error) {
	var raw any
	if len(q.Answers) == 0 || json.Unmarshal(q.Answers, &raw) != nil {
		return nil, nil, nil, util.ErrInvalidAnswers
	}
	answers, err := scoring.NewAnswerSet(raw)
	if err != nil {
		return nil, nil, nil, err
	}

	var list []any
	if len(q.SelectedInterests) == 0 || json.Unmarshal(q.SelectedInterests, &list) != nil || list == nil {
		return answers, nil, nil, nil
	}
	interests := make([]string, 0, len(list))
	parts := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			interests = append(interests, s)
			parts = append(parts, s)
			continue
		}
		if v != nil {
			parts = append(parts, fmt.Sprint(v))
		} else {
			parts = append(parts, "")
		}
	}
	focus := strings.Join(parts, ", ")
	return answers, interests, &focus, nil
}

// Submit 评分、保存结果，并尽力更新用户技能快照和发布事件
func (s *QuizService) Submit(ctx context.Context, username string, req QuizSubmission) (*QuizResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.Submit", attribute.String("quiz.username", username))
	defer span.End()

	answers, interests, focus, err := req.decode()
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	outcome := scoring.Evaluate(answers, interests)
	span.SetAttributes(attribute.String("quiz.dialect", string(outcome.Dialect)))

	result := &model.Result{
		Username:        username,
		Timestamp:       time.Now(),
		SubjectFocus:    focus,
		Answers:         map[string]any(answers),
		Scores:          outcome.Scores,
		Message:         outcome.Message,
		Recommendations: outcome.Recommendations,
	}
	if err := s.ResultRepo.Create(ctx, result); err != nil {
		logger.Log.Error("Failed to save quiz result",
			zap.String("username", username), zap.Error(err))
		tracing.Fail(span, err)
		return nil, fmt.Errorf("%w: %v", util.ErrResultNotSaved, err)
	}

	monitoring.QuizSubmissions.WithLabelValues(string(outcome.Dialect)).Inc()
	if len(outcome.Ranking) > 0 {
		monitoring.QuizTopTrack.WithLabelValues(string(outcome.Ranking[0].Track)).Inc()
	}

	s.updateSkills(ctx, username, outcome.Skills)
	s.publish(ctx, result, outcome)

	return &QuizResponse{
		Scores:          outcome.Scores,
		Recommendations: outcome.Recommendations,
		Message:         outcome.Message,
		MaxPerTrack:     s.MaxPerTrack(),
		Skills:          outcome.Skills,
	}, nil
}

func (s *QuizService) updateSkills(ctx context.Context, username string, skills []scoring.Proficiency) {
	err := s.UserRepo.UpdateSkills(ctx, username, skills)
	switch {
	case err == nil:
		logger.Log.Info("Updated user skills",
			zap.String("username", username), zap.Int("count", len(skills)))
	case errors.Is(err, util.ErrUserNotFound):
		logger.Log.Debug("No user for skill snapshot", zap.String("username", username))
	default:
		monitoring.QuizSideEffectFailures.WithLabelValues("skills").Inc()
		logger.Log.Error("Failed to update user skills",
			zap.String("username", username), zap.Error(err))
	}
}

func (s *QuizService) publish(ctx context.Context, result *model.Result, outcome scoring.Outcome) {
	if s.Publisher == nil {
		return
	}
	evt := &event.QuizSubmitted{
		ResultID:  result.ID,
		Username:  result.Username,
		Scores:    outcome.Scores,
		Timestamp: result.Timestamp,
	}
	if len(outcome.Ranking) > 0 {
		evt.TopTrack = outcome.Ranking[0].Track
	}
	if err := s.Publisher.PublishQuizSubmitted(ctx, evt); err != nil {
		monitoring.QuizSideEffectFailures.WithLabelValues("event").Inc()
		logger.Log.Warn("Failed to publish quiz event",
			zap.String("result_id", result.ID), zap.Error(err))
	}
}
