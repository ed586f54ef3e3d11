package repository

import (
	"codequest_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert 以邮箱为键创建或更新资料字段，返回库中的最新记录
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, user.Email)
}

func (r *UserRepository) UpdateProfileImage(ctx context.Context, id, url string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("profile_image_url", url).
		Error
}

// IncrementXP 原子累加，避免读改写丢失并发增量
func (r *UserRepository) IncrementXP(ctx context.Context, id string, delta int) error {
	if delta <= 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", delta)).
		Error
}

func (r *UserRepository) UpdateStreak(ctx context.Context, id string, streak int, activeAt time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"streak":           streak,
			"last_active_date": activeAt,
		}).Error
}

// ResetLapsedStreaks 将最后活跃时间早于 cutoff 的连续天数清零
func (r *UserRepository) ResetLapsedStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("streak > 0 AND (last_active_date IS NULL OR last_active_date < ?)", cutoff).
		Update("streak", 0)
	return result.RowsAffected, result.Error
}

func (r *UserRepository) FindTopByXP(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Order("xp DESC, created_at ASC").Limit(limit).Find(&users).Error
	return users, err
}
