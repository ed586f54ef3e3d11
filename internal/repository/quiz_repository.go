package repository

import (
	"codequest_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// FindByID 连同按顺序排列的题目一起加载
func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByLanguage(ctx context.Context, languageID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).
		Where("language_id = ?", languageID).
		Order("id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt *model.UserQuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *QuizRepository) FindAttemptsByUser(ctx context.Context, userID string) ([]model.UserQuizAttempt, error) {
	var attempts []model.UserQuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizRepository) CountAttempts(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.UserQuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
