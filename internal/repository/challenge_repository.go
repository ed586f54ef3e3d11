package repository

import (
	"codequest_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) FindAll(ctx context.Context) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) CreateSubmission(ctx context.Context, submission *model.UserChallengeSubmission) error {
	return r.DB.WithContext(ctx).Create(submission).Error
}

func (r *ChallengeRepository) FindSubmissionsByUser(ctx context.Context, userID string) ([]model.UserChallengeSubmission, error) {
	var submissions []model.UserChallengeSubmission
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC, id DESC").
		Find(&submissions).Error
	return submissions, err
}

// CountSolved 统计通过过的不同挑战数量
func (r *ChallengeRepository) CountSolved(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.UserChallengeSubmission{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Distinct("challenge_id").
		Count(&count).Error
	return count, err
}
