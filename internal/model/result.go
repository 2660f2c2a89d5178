package model

import (
	"time"

	"edutech_backend/internal/scoring"

	"gorm.io/gorm"
)

// Result 一次测验提交的记录，只追加不修改
type Result struct {
	ID              string              `gorm:"primaryKey;type:varchar(36)" json:"id" bson:"_id"`
	Username        string              `gorm:"size:100;index;not null" json:"username" bson:"username"`
	Timestamp       time.Time           `gorm:"index" json:"timestamp" bson:"timestamp"`
	SubjectFocus    *string             `gorm:"size:255" json:"subjectFocus" bson:"subjectFocus"`
	Answers         map[string]any      `gorm:"serializer:json;not null" json:"answers" bson:"answers"`
	Scores          scoring.TrackScores `gorm:"serializer:json;not null" json:"scores" bson:"scores"`
	Message         string              `gorm:"type:text" json:"message" bson:"message"`
	Recommendations []string            `gorm:"serializer:json" json:"recommendations" bson:"recommendations"`
}

func (Result) TableName() string {
	return "results"
}

func (r *Result) BeforeCreate(tx *gorm.DB) (err error) {
	r.EnsureID()
	return
}

func (r *Result) EnsureID() {
	if r.ID == "" {
		r.ID = GenerateUUID()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
}
