package repository

import (
	"context"
	"errors"

	"edutech_backend/internal/model"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"

	"gorm.io/gorm"
)

// GormUserRepository MySQL 存储，需要 gorm.Config{TranslateError: true}
type GormUserRepository struct {
	DB *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{DB: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Interests == nil {
		user.Interests = []string{}
	}
	if user.Skills == nil {
		user.Skills = []scoring.Proficiency{}
	}
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrUsernameTaken
	}
	return err
}

func (r *GormUserRepository) first(ctx context.Context, query *gorm.DB) (*model.User, error) {
	var user model.User
	err := query.WithContext(ctx).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, r.DB.Where("username = ?", username))
}

func (r *GormUserRepository) FindByUsernameAndRole(ctx context.Context, username string, role model.UserRole) (*model.User, error) {
	return r.first(ctx, r.DB.Where("username = ? AND role = ?", username, role))
}

func (r *GormUserRepository) ExistsByRole(ctx context.Context, role model.UserRole) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) Update(ctx context.Context, user *model.User) error {
	res := r.DB.WithContext(ctx).Save(user)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return util.ErrEmailInUse
	}
	return res.Error
}

func (r *GormUserRepository) UpdateSkills(ctx context.Context, username string, skills []scoring.Proficiency) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Select("Skills", "UpdatedAt").
		Updates(&model.User{Skills: skills})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.WithContext(ctx).Omit("password").Order("created_at DESC").Find(&users).Error
	return users, err
}
