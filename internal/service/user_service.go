package service

import (
	"context"

	"edutech_backend/internal/model"
	"edutech_backend/internal/repository"
)

type UserService struct {
	UserRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*model.User, error) {
	return s.UserRepo.FindByUsername(ctx, username)
}

// UpdateProfile 只合并允许修改的字段
func (s *UserService) UpdateProfile(ctx context.Context, username string, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	update.Apply(user)
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.UserRepo.List(ctx)
}
