package model

import "time"

// UserProgress 每个 (用户, 课程) 至多一行
type UserProgress struct {
	BaseModel
	UserID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID    string     `gorm:"size:64;not null;uniqueIndex:idx_user_lesson;index" json:"lessonId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

type UserFavorite struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_language" json:"userId"`
	LanguageID string `gorm:"size:64;not null;uniqueIndex:idx_user_language" json:"languageId"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}

// XPAward 经验发放流水，(user, source, source_id) 唯一，保证同一来源只发放一次
type XPAward struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_xp_award" json:"userId"`
	Source    string    `gorm:"size:20;not null;uniqueIndex:idx_xp_award" json:"source"`
	SourceID  string    `gorm:"size:64;not null;uniqueIndex:idx_xp_award" json:"sourceId"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

func (XPAward) TableName() string {
	return "xp_awards"
}

const (
	XPSourceLesson    = "lesson"
	XPSourceQuiz      = "quiz"
	XPSourceChallenge = "challenge"
)
