package repository

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/testutil"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRecentReturnsOldestFirst(t *testing.T) {
	chat := NewChatRepository(testutil.NewDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, chat.Create(ctx, &model.ChatMessage{UserID: "u1", Role: model.ChatRoleUser, Content: fmt.Sprintf("m%d", i)}))
	}

	recent, err := chat.FindRecent(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "m2", recent[0].Content)
	assert.Equal(t, "m4", recent[2].Content)

	n, err := chat.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
