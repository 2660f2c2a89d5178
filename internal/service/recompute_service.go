package service

import (
	"context"
	"encoding/json"
	"errors"

	"edutech_backend/internal/model"
	"edutech_backend/internal/repository"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/logger"

	"go.uber.org/zap"
)

// RecomputeReport 一次重算的统计
type RecomputeReport struct {
	Users    int `json:"users"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Failures int `json:"failures"`
}

// RecomputeService 用当前计分规则重算每个用户最近一次测验的技能快照
type RecomputeService struct {
	UserRepo   repository.UserRepository
	ResultRepo repository.ResultRepository
}

func NewRecomputeService(userRepo repository.UserRepository, resultRepo repository.ResultRepository) *RecomputeService {
	return &RecomputeService{UserRepo: userRepo, ResultRepo: resultRepo}
}

// Run 单个用户失败不会中断整体任务，只记入 Failures
func (s *RecomputeService) Run(ctx context.Context) (*RecomputeReport, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &RecomputeReport{Users: len(users)}
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		latest, err := s.ResultRepo.FindLatestByUsername(ctx, u.Username)
		if errors.Is(err, repository.ErrResultNotFound) {
			report.Skipped++
			continue
		}
		if err != nil {
			logger.Log.Warn("Failed to load latest result", zap.String("username", u.Username), zap.Error(err))
			report.Failures++
			continue
		}

		answers, err := normalizeAnswers(latest)
		if err != nil {
			logger.Log.Warn("Stored answers are not an object", zap.String("username", u.Username), zap.String("result_id", latest.ID))
			report.Failures++
			continue
		}

		outcome := scoring.Evaluate(answers, nil)
		if err := s.UserRepo.UpdateSkills(ctx, u.Username, outcome.Skills); err != nil {
			if errors.Is(err, util.ErrUserNotFound) {
				report.Skipped++
				continue
			}
			logger.Log.Warn("Failed to update skills", zap.String("username", u.Username), zap.Error(err))
			report.Failures++
			continue
		}
		report.Updated++
	}

	logger.Log.Info("Skill recompute finished",
		zap.Int("users", report.Users),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failures", report.Failures))
	return report, nil
}

// normalizeAnswers 经 JSON 往返把驱动解码出的类型（如 bson 数组）还原为提交时的形态
func normalizeAnswers(result *model.Result) (scoring.AnswerSet, error) {
	data, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return scoring.NewAnswerSet(raw)
}
