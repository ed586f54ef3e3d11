package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMCQ        QuestionType = "mcq"
	QuestionCodeOutput QuestionType = "code-output"
	QuestionDebugging  QuestionType = "debugging"
)

// swagger:model Quiz
type Quiz struct {
	CatalogBase
	LessonID    *string        `gorm:"size:64;index" json:"lessonId"`
	LanguageID  string         `gorm:"size:64;not null;index" json:"languageId"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	TimeLimit   int            `gorm:"not null;default:300" json:"timeLimit"` // 秒
	XPReward    int            `gorm:"not null;default:100" json:"xpReward"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	CatalogBase
	QuizID        string                      `gorm:"size:64;not null;index" json:"quizId"`
	Type          QuestionType                `gorm:"size:20;not null" json:"type"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Code          string                      `gorm:"type:text" json:"code,omitempty"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer string                      `gorm:"type:text;not null" json:"correctAnswer"`
	Explanation   string                      `gorm:"type:text" json:"explanation"`
	Order         int                         `gorm:"column:sort_order;not null" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// UserQuizAttempt 只追加，允许重复作答
type UserQuizAttempt struct {
	BaseModel
	UserID         string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	QuizID         string    `gorm:"size:64;not null;index" json:"quizId"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	TimeTaken      int       `gorm:"not null;default:0" json:"timeTaken"`
	XPEarned       int       `gorm:"not null;default:0" json:"xpEarned"`
	CompletedAt    time.Time `gorm:"not null" json:"completedAt"`
}

func (UserQuizAttempt) TableName() string {
	return "user_quiz_attempts"
}
