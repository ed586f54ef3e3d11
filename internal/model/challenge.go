package model

import (
	"time"

	"gorm.io/datatypes"
)

type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// swagger:model Challenge
type Challenge struct {
	CatalogBase
	Title       string                        `gorm:"size:200;not null" json:"title"`
	Description string                        `gorm:"type:text" json:"description"`
	Difficulty  string                        `gorm:"size:20;not null" json:"difficulty"`
	Category    string                        `gorm:"size:50" json:"category"`
	StarterCode string                        `gorm:"type:text" json:"starterCode"`
	TestCases   datatypes.JSONSlice[TestCase] `json:"testCases"`
	XPReward    int                           `gorm:"not null;default:150" json:"xpReward"`
}

func (Challenge) TableName() string {
	return "challenges"
}

type UserChallengeSubmission struct {
	BaseModel
	UserID      string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	ChallengeID string    `gorm:"size:64;not null;index" json:"challengeId"`
	Code        string    `gorm:"type:text;not null" json:"code"`
	Language    string    `gorm:"size:32;not null" json:"language"`
	Passed      bool      `gorm:"not null;default:false" json:"passed"`
	XPEarned    int       `gorm:"not null;default:0" json:"xpEarned"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (UserChallengeSubmission) TableName() string {
	return "user_challenge_submissions"
}
