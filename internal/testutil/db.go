// Package testutil 测试用内存数据库与数据构造
package testutil

import (
	"codequest_backend/internal/model"
	"codequest_backend/pkg/database"
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 返回已迁移的内存 SQLite；单连接保证所有查询看到同一个库
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewSeededDB 在 NewDB 基础上写入内置目录
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, database.SeedCatalog(context.Background(), db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string, xp int) *model.User {
	t.Helper()
	user := &model.User{Email: email, FirstName: "Test", XP: xp}
	require.NoError(t, db.Create(user).Error)
	return user
}
