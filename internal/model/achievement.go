package model

import "time"

type AchievementType string

const (
	AchievementXP         AchievementType = "xp"
	AchievementStreak     AchievementType = "streak"
	AchievementLessons    AchievementType = "lessons"
	AchievementQuizzes    AchievementType = "quizzes"
	AchievementChallenges AchievementType = "challenges"
	AchievementLanguage   AchievementType = "language" // 完成 LanguageID 下全部课程
)

// swagger:model Achievement
type Achievement struct {
	CatalogBase
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Icon        string          `gorm:"size:64" json:"icon"`
	XPRequired  int             `gorm:"not null;default:0" json:"xpRequired"`
	Type        AchievementType `gorm:"size:20;not null" json:"type"`
	Requirement int             `gorm:"not null" json:"requirement"`
	LanguageID  string          `gorm:"size:64" json:"languageId,omitempty"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 解锁记录，只增不删
type UserAchievement struct {
	BaseModel
	UserID        string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID string      `gorm:"size:64;not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	UnlockedAt    time.Time   `gorm:"not null" json:"unlockedAt"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
