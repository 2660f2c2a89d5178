package service

import (
	"context"

	"edutech_backend/internal/model"
	"edutech_backend/internal/repository"
)

type ResultService struct {
	ResultRepo repository.ResultRepository
}

func NewResultService(resultRepo repository.ResultRepository) *ResultService {
	return &ResultService{ResultRepo: resultRepo}
}

// History 按时间倒序返回用户的全部测验结果
func (s *ResultService) History(ctx context.Context, username string) ([]model.Result, error) {
	return s.ResultRepo.FindByUsername(ctx, username)
}
