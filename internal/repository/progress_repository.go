package repository

import (
	"codequest_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&progress).Error
	return progress, err
}

func (r *ProgressRepository) FindByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// MarkComplete 按 (user, lesson) 唯一键 upsert，重复完成只更新不新增
func (r *ProgressRepository) MarkComplete(ctx context.Context, userID, lessonID string, at time.Time) (*model.UserProgress, error) {
	progress := &model.UserProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &at,
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserAndLesson(ctx, userID, lessonID)
}

func (r *ProgressRepository) CountCompleted(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// CountCompletedInLanguage 统计用户在某语言下已完成的课程数
func (r *ProgressRepository) CountCompletedInLanguage(ctx context.Context, userID, languageID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.UserProgress{}).
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ? AND lessons.language_id = ?", userID, true, languageID).
		Count(&count).Error
	return count, err
}
