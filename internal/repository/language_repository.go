package repository

import (
	"codequest_backend/internal/model"
	"codequest_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogLanguagesKey = "catalog:languages"
	catalogLessonsKey   = "catalog:language:%s:lessons"
)

// LanguageRepository 语言与课程目录，Redis 可用时做读穿缓存
type LanguageRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewLanguageRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *LanguageRepository {
	return &LanguageRepository{DB: db, Redis: rdb, CacheTTL: ttl}
}

func (r *LanguageRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.Redis == nil {
		return false
	}
	data, err := r.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (r *LanguageRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.Redis.Set(ctx, key, data, r.CacheTTL).Err(); err != nil {
		logger.Log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *LanguageRepository) FindAll(ctx context.Context) ([]model.Language, error) {
	var languages []model.Language
	if r.cacheGet(ctx, catalogLanguagesKey, &languages) {
		return languages, nil
	}

	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&languages).Error; err != nil {
		return nil, err
	}
	// 种子数据写入前不缓存空目录
	if len(languages) > 0 {
		r.cacheSet(ctx, catalogLanguagesKey, languages)
	}
	return languages, nil
}

func (r *LanguageRepository) FindByID(ctx context.Context, id string) (*model.Language, error) {
	var language model.Language
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&language).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *LanguageRepository) FindLessons(ctx context.Context, languageID string) ([]model.Lesson, error) {
	key := fmt.Sprintf(catalogLessonsKey, languageID)

	var lessons []model.Lesson
	if r.cacheGet(ctx, key, &lessons) {
		return lessons, nil
	}

	err := r.DB.WithContext(ctx).
		Where("language_id = ?", languageID).
		Order("sort_order ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	if len(lessons) > 0 {
		r.cacheSet(ctx, key, lessons)
	}
	return lessons, nil
}

func (r *LanguageRepository) FindLessonByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LanguageRepository) CountLessons(ctx context.Context, languageID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Lesson{}).
		Where("language_id = ?", languageID).
		Count(&count).Error
	return count, err
}

// InvalidateCatalog 种子数据或目录变更后清除缓存
func (r *LanguageRepository) InvalidateCatalog(ctx context.Context) error {
	if r.Redis == nil {
		return nil
	}

	keys := []string{catalogLanguagesKey}
	iter := r.Redis.Scan(ctx, 0, "catalog:language:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return r.Redis.Del(ctx, keys...).Err()
}
