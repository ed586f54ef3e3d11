package repository

import (
	"codequest_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type XPRepository struct {
	DB *gorm.DB
}

func NewXPRepository(db *gorm.DB) *XPRepository {
	return &XPRepository{DB: db}
}

// Award 写入流水并累加用户经验；流水已存在时返回 false 且不加经验
// 需在事务中调用以保证流水与经验一致
func (r *XPRepository) Award(ctx context.Context, award *model.XPAward) (bool, error) {
	db := r.DB.WithContext(ctx)

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(award)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := NewUserRepository(r.DB).IncrementXP(ctx, award.UserID, award.Amount); err != nil {
		return false, err
	}

	return true, nil
}

func (r *XPRepository) Exists(ctx context.Context, userID, source, sourceID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.XPAward{}).
		Where("user_id = ? AND source = ? AND source_id = ?", userID, source, sourceID).
		Count(&count).Error
	return count > 0, err
}

func (r *XPRepository) FindByUser(ctx context.Context, userID string, limit int) ([]model.XPAward, error) {
	var awards []model.XPAward
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&awards).Error
	return awards, err
}
