package repository

import (
	"context"

	"edutech_backend/internal/model"
	"edutech_backend/internal/scoring"
)

// UserRepository 用户存储。未找到时返回 util.ErrUserNotFound
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByUsernameAndRole(ctx context.Context, username string, role model.UserRole) (*model.User, error)
	ExistsByRole(ctx context.Context, role model.UserRole) (bool, error)
	Update(ctx context.Context, user *model.User) error
	// UpdateSkills 整体替换技能快照
	UpdateSkills(ctx context.Context, username string, skills []scoring.Proficiency) error
	List(ctx context.Context) ([]model.User, error)
}

// ResultRepository 测验结果存储，只追加
type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	FindByUsername(ctx context.Context, username string) ([]model.Result, error)
	FindLatestByUsername(ctx context.Context, username string) (*model.Result, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
