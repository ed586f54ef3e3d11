package service

import (
	"bytes"
	"codequest_backend/internal/config"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/testutil"
	"codequest_backend/internal/util"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAvatarLocalStorage(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})
	users := NewUserService(repository.NewUserRepository(db), repository.NewXPRepository(db), storage, 1)
	user := testutil.CreateUser(t, db, "avatar@example.com", 0)
	ctx := context.Background()

	content := []byte("\x89PNG\r\n\x1a\nfake")
	updated, err := users.UpdateAvatar(ctx, user.ID, "me.PNG", bytes.NewReader(content), int64(len(content)), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ProfileImageURL, "/uploads/avatars/"+user.ID+"/"))
	assert.True(t, strings.HasSuffix(updated.ProfileImageURL, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(updated.ProfileImageURL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	reloaded, err := users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ProfileImageURL, reloaded.ProfileImageURL)
}

func TestUpdateAvatarRemovesPreviousObject(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})
	users := NewUserService(repository.NewUserRepository(db), repository.NewXPRepository(db), storage, 1)
	user := testutil.CreateUser(t, db, "swap@example.com", 0)
	ctx := context.Background()

	content := []byte("\x89PNG\r\n\x1a\nfake")
	first, err := users.UpdateAvatar(ctx, user.ID, "one.png", bytes.NewReader(content), int64(len(content)), "image/png")
	require.NoError(t, err)
	firstPath := filepath.Join(dir, strings.TrimPrefix(first.ProfileImageURL, "/uploads/"))
	require.FileExists(t, firstPath)

	second, err := users.UpdateAvatar(ctx, user.ID, "two.png", bytes.NewReader(content), int64(len(content)), "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfileImageURL, second.ProfileImageURL)
	assert.NoFileExists(t, firstPath)
	assert.FileExists(t, filepath.Join(dir, strings.TrimPrefix(second.ProfileImageURL, "/uploads/")))
}

func TestStorageKeyFromURL(t *testing.T) {
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()}})

	key, ok := storage.KeyFromURL("/uploads/avatars/u1/a.png")
	assert.True(t, ok)
	assert.Equal(t, "avatars/u1/a.png", key)

	_, ok = storage.KeyFromURL("https://lh3.googleusercontent.com/a/photo.jpg")
	assert.False(t, ok)
	_, ok = storage.KeyFromURL("/uploads/")
	assert.False(t, ok)

	// 外部地址与缺失的对象都不报错
	assert.NoError(t, storage.DeleteByURL(context.Background(), "https://example.com/a.png"))
	assert.NoError(t, storage.DeleteByURL(context.Background(), "/uploads/avatars/none.png"))
}

func TestUpdateAvatarValidation(t *testing.T) {
	db := testutil.NewDB(t)
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()}})
	users := NewUserService(repository.NewUserRepository(db), repository.NewXPRepository(db), storage, 1)
	user := testutil.CreateUser(t, db, "strict@example.com", 0)
	ctx := context.Background()

	_, err := users.UpdateAvatar(ctx, user.ID, "a.png", bytes.NewReader(nil), 0, "image/png")
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = users.UpdateAvatar(ctx, user.ID, "a.png", bytes.NewReader(nil), 2<<20, "image/png")
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = users.UpdateAvatar(ctx, user.ID, "a.exe", bytes.NewReader([]byte("x")), 1, "image/png")
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = users.UpdateAvatar(ctx, user.ID, "a.png", bytes.NewReader([]byte("x")), 1, "text/plain")
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = users.UpdateAvatar(ctx, "ghost", "a.png", bytes.NewReader([]byte("x")), 1, "image/png")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestXPHistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "history@example.com", 0)
	users := NewUserService(repository.NewUserRepository(f.db), repository.NewXPRepository(f.db), nil, 0)

	empty, err := users.XPHistory(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)

	_, err = f.gamification.CompleteLesson(ctx, user.ID, "py-1")
	require.NoError(t, err)
	_, err = f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-2", Code: "x", Language: "python", Passed: true})
	require.NoError(t, err)

	awards, err := users.XPHistory(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, awards, 2)
	assert.Equal(t, "challenge", awards[0].Source)
	assert.Equal(t, 100, awards[0].Amount)
	assert.Equal(t, "lesson", awards[1].Source)
}
