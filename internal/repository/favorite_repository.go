package repository

import (
	"codequest_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

func (r *FavoriteRepository) FindByUser(ctx context.Context, userID string) ([]model.UserFavorite, error) {
	var favorites []model.UserFavorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	return favorites, err
}

// Add 重复收藏不报错
func (r *FavoriteRepository) Add(ctx context.Context, userID, languageID string) (*model.UserFavorite, error) {
	favorite := &model.UserFavorite{UserID: userID, LanguageID: languageID}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(favorite).Error
	if err != nil {
		return nil, err
	}

	var stored model.UserFavorite
	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND language_id = ?", userID, languageID).
		First(&stored).Error
	return &stored, err
}

// Remove 物理删除，保证再次收藏不会撞唯一索引
func (r *FavoriteRepository) Remove(ctx context.Context, userID, languageID string) error {
	return r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ? AND language_id = ?", userID, languageID).
		Delete(&model.UserFavorite{}).Error
}
