package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/testutil"
	"codequest_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 记录收到的消息并返回预设结果
type fakeProvider struct {
	configured bool
	reply      string
	err        error
	calls      [][]AIChatMessage
}

func (p *fakeProvider) Configured() bool { return p.configured }

func (p *fakeProvider) Complete(ctx context.Context, messages []AIChatMessage, maxTokens int) (string, error) {
	p.calls = append(p.calls, messages)
	return p.reply, p.err
}

func newTutor(t *testing.T, provider CompletionProvider) (*TutorService, *repository.ChatRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewChatRepository(db)
	return NewTutorService(repo, provider, 10, 256), repo
}

func TestChatStoresBothMessages(t *testing.T) {
	provider := &fakeProvider{configured: true, reply: "Use a for loop."}
	tutor, _ := newTutor(t, provider)
	ctx := context.Background()

	reply, err := tutor.Chat(ctx, "u1", "How do I iterate a list?")
	require.NoError(t, err)
	assert.Equal(t, "Use a for loop.", reply)

	history, err := tutor.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.ChatRoleUser, history[0].Role)
	assert.Equal(t, "How do I iterate a list?", history[0].Content)
	assert.Equal(t, model.ChatRoleAssistant, history[1].Role)
	assert.Equal(t, "Use a for loop.", history[1].Content)

	require.Len(t, provider.calls, 1)
	assert.Equal(t, "system", provider.calls[0][0].Role)
	assert.Equal(t, tutorSystemPrompt, provider.calls[0][0].Content)
}

func TestChatSendsRecentHistoryOldestFirst(t *testing.T) {
	provider := &fakeProvider{configured: true, reply: "ok"}
	tutor, repo := newTutor(t, provider)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, &model.ChatMessage{UserID: "u1", Role: model.ChatRoleUser, Content: fmt.Sprintf("m%d", i)}))
	}
	// 其他用户的消息不应混入
	require.NoError(t, repo.Create(ctx, &model.ChatMessage{UserID: "u2", Role: model.ChatRoleUser, Content: "other"}))

	_, err := tutor.Chat(ctx, "u1", "latest")
	require.NoError(t, err)

	require.Len(t, provider.calls, 1)
	sent := provider.calls[0]
	require.Len(t, sent, 11, "system prompt + 10 history entries")
	assert.Equal(t, "m3", sent[1].Content)
	assert.Equal(t, "latest", sent[10].Content)
	for _, m := range sent[1:] {
		assert.NotEqual(t, "other", m.Content)
	}
}

func TestChatFallsBackWhenProviderFails(t *testing.T) {
	provider := &fakeProvider{configured: true, err: errors.New("upstream timeout")}
	tutor, _ := newTutor(t, provider)
	ctx := context.Background()

	reply, err := tutor.Chat(ctx, "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, tutorFallbackReply, reply)

	history, err := tutor.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, tutorFallbackReply, history[1].Content)
}

func TestChatWithoutProvider(t *testing.T) {
	tutor, _ := newTutor(t, &fakeProvider{configured: false})

	reply, err := tutor.Chat(context.Background(), "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, tutorUnconfiguredReply, reply)
}

func TestChatEmptyReply(t *testing.T) {
	tutor, _ := newTutor(t, &fakeProvider{configured: true, reply: "   "})

	reply, err := tutor.Chat(context.Background(), "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, tutorEmptyReply, reply)
}

func TestChatRequiresMessage(t *testing.T) {
	provider := &fakeProvider{configured: true}
	tutor, _ := newTutor(t, provider)

	_, err := tutor.Chat(context.Background(), "u1", "  ")
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.Empty(t, provider.calls)

	history, err := tutor.History(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestClearHistory(t *testing.T) {
	tutor, _ := newTutor(t, &fakeProvider{configured: true, reply: "hi"})
	ctx := context.Background()

	_, err := tutor.Chat(ctx, "u1", "hello")
	require.NoError(t, err)
	require.NoError(t, tutor.ClearHistory(ctx, "u1"))

	history, err := tutor.History(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCodeAssistants(t *testing.T) {
	ctx := context.Background()

	t.Run("未配置时返回提示", func(t *testing.T) {
		tutor, _ := newTutor(t, &fakeProvider{configured: false})
		reply, err := tutor.ExplainCode(ctx, "print(1)", "python")
		require.NoError(t, err)
		assert.Equal(t, toolsUnavailableReply, reply)
	})

	t.Run("调试附带错误信息", func(t *testing.T) {
		provider := &fakeProvider{configured: true, reply: "missing colon"}
		tutor, _ := newTutor(t, provider)
		reply, err := tutor.DebugCode(ctx, "if x\n  pass", "python", "SyntaxError")
		require.NoError(t, err)
		assert.Equal(t, "missing colon", reply)
		require.Len(t, provider.calls, 1)
		assert.Contains(t, provider.calls[0][1].Content, "Error message: SyntaxError")
	})

	t.Run("空回复使用默认提示", func(t *testing.T) {
		tutor, _ := newTutor(t, &fakeProvider{configured: true})
		reply, err := tutor.Hint(ctx, "reverse a string", "")
		require.NoError(t, err)
		assert.Equal(t, "Try breaking down the problem into smaller steps.", reply)
	})

	t.Run("上游错误返回错误", func(t *testing.T) {
		tutor, _ := newTutor(t, &fakeProvider{configured: true, err: errors.New("boom")})
		_, err := tutor.ExplainCode(ctx, "x = 1", "python")
		assert.Error(t, err)
	})

	t.Run("缺少代码", func(t *testing.T) {
		tutor, _ := newTutor(t, &fakeProvider{configured: true})
		_, err := tutor.ExplainCode(ctx, "", "python")
		assert.ErrorIs(t, err, util.ErrValidation)
	})
}
