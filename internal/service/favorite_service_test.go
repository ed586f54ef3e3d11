package service

import (
	"codequest_backend/internal/repository"
	"codequest_backend/internal/testutil"
	"codequest_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	db := testutil.NewSeededDB(t)
	favorites := NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewLanguageRepository(db, nil, 0))
	ctx := context.Background()

	list, err := favorites.List(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first, err := favorites.Add(ctx, "u1", "python")
	require.NoError(t, err)
	again, err := favorites.Add(ctx, "u1", "python")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = favorites.Add(ctx, "u1", "javascript")
	require.NoError(t, err)

	list, err = favorites.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, favorites.Remove(ctx, "u1", "python"))
	require.NoError(t, favorites.Remove(ctx, "u1", "python"))

	list, err = favorites.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "javascript", list[0].LanguageID)

	// 取消后可以再次收藏
	_, err = favorites.Add(ctx, "u1", "python")
	require.NoError(t, err)
}

func TestFavoriteUnknownLanguage(t *testing.T) {
	db := testutil.NewSeededDB(t)
	favorites := NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewLanguageRepository(db, nil, 0))

	_, err := favorites.Add(context.Background(), "u1", "cobol")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = favorites.Add(context.Background(), "u1", "")
	assert.ErrorIs(t, err, util.ErrValidation)
}
