package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor 在同一事务内组合多个仓库调用
type Transactor struct {
	DB *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{DB: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error {
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, tx)
	})
}
