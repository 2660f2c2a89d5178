package repository

import (
	"context"
	"errors"

	"edutech_backend/internal/model"

	"gorm.io/gorm"
)

type GormResultRepository struct {
	DB *gorm.DB
}

func NewGormResultRepository(db *gorm.DB) *GormResultRepository {
	return &GormResultRepository{DB: db}
}

func (r *GormResultRepository) Create(ctx context.Context, result *model.Result) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *GormResultRepository) FindByUsername(ctx context.Context, username string) ([]model.Result, error) {
	results := []model.Result{}
	err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("timestamp DESC").
		Find(&results).Error
	return results, err
}

func (r *GormResultRepository) FindLatestByUsername(ctx context.Context, username string) (*model.Result, error) {
	var res model.Result
	err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("timestamp DESC").
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type GormPinger struct {
	DB *gorm.DB
}

func (p GormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
