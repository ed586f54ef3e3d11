package repository

import (
	"codequest_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAll(ctx context.Context) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.WithContext(ctx).Order("requirement ASC, id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByUser(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	var unlocked []model.UserAchievement
	err := r.DB.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at ASC, id ASC").
		Find(&unlocked).Error
	return unlocked, err
}

func (r *AchievementRepository) UnlockedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&model.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Unlock 依赖 (user, achievement) 唯一索引，返回本次是否新解锁
func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
	record := &model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}
	result := r.DB.WithContext(ctx).
		Omit("Achievement").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *AchievementRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.UserAchievement{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
