package model

import (
	"time"
)

// swagger:model User
type User struct {
	UUIDBase
	Email           string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	FirstName       string     `gorm:"size:100" json:"firstName"`
	LastName        string     `gorm:"size:100" json:"lastName"`
	ProfileImageURL string     `gorm:"size:255" json:"profileImageUrl"`
	PasswordHash    string     `gorm:"size:100" json:"-"`
	XP              int        `gorm:"not null;default:0" json:"xp"`     // 累计经验值，只增不减
	Streak          int        `gorm:"not null;default:0" json:"streak"` // 连续学习天数
	LastActiveDate  *time.Time `json:"lastActiveDate"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName 返回用于展示的用户名
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
