package repository

import (
	"codequest_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

// FindRecent 取最近 limit 条并按时间正序返回
func (r *ChatRepository) FindRecent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ChatRepository) Clear(ctx context.Context, userID string) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ChatMessage{})
	return result.RowsAffected, result.Error
}
