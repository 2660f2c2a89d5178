package model

import "edutech_backend/internal/scoring"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase   `bson:",inline"`
	Username   string                `gorm:"size:100;uniqueIndex;not null" json:"username" bson:"username"`
	Password   string                `gorm:"size:100;not null" json:"-" bson:"password"`
	Role       UserRole              `gorm:"size:10;default:'user';index" json:"role" bson:"role"`
	FullName   string                `gorm:"size:100" json:"fullName,omitempty" bson:"fullName,omitempty"`
	Email      *string               `gorm:"size:100;uniqueIndex" json:"email,omitempty" bson:"email,omitempty"`
	BranchYear string                `gorm:"size:100" json:"branchYear,omitempty" bson:"branchYear,omitempty"` // 例如 "CSE 2nd Year"
	College    string                `gorm:"size:255" json:"college,omitempty" bson:"college,omitempty"`
	Phone      string                `gorm:"size:30" json:"phone,omitempty" bson:"phone,omitempty"`
	Interests  []string              `gorm:"serializer:json" json:"interests" bson:"interests"`
	Location   string                `gorm:"size:255" json:"location,omitempty" bson:"location,omitempty"`
	Bio        string                `gorm:"type:text" json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarURL  string                `gorm:"size:255" json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Skills     []scoring.Proficiency `gorm:"serializer:json" json:"skills" bson:"skills"`
}

func (User) TableName() string {
	return "users"
}

// ProfileUpdate PATCH /profile 允许修改的字段，nil 表示不修改
type ProfileUpdate struct {
	FullName   *string   `json:"fullName"`
	Email      *string   `json:"email"`
	BranchYear *string   `json:"branchYear"`
	College    *string   `json:"college"`
	Phone      *string   `json:"phone"`
	Interests  *[]string `json:"interests"`
	Location   *string   `json:"location"`
	Bio        *string   `json:"bio"`
}

// Apply 将修改合并到用户对象上
func (u ProfileUpdate) Apply(user *User) {
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.Email != nil {
		if *u.Email == "" {
			user.Email = nil
		} else {
			email := *u.Email
			user.Email = &email
		}
	}
	if u.BranchYear != nil {
		user.BranchYear = *u.BranchYear
	}
	if u.College != nil {
		user.College = *u.College
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.Interests != nil {
		user.Interests = *u.Interests
	}
	if u.Location != nil {
		user.Location = *u.Location
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
}
