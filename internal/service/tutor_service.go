package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"codequest_backend/pkg/monitoring"
	"codequest_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	tutorUnconfiguredReply = "I apologize, but the AI tutor is not configured yet. Please add your OpenAI API key to enable this feature."
	tutorFallbackReply     = "I apologize, but I'm having trouble generating a response right now. Please try again in a moment."
	tutorEmptyReply        = "I'm sorry, I couldn't generate a response."
	toolsUnavailableReply  = "AI features are not available. Please configure your OpenAI API key."
)

const tutorSystemPrompt = `You are CodeQuest AI Tutor, a friendly and knowledgeable programming assistant. You help users learn programming concepts, debug code, and answer questions about various programming languages.

Your key traits:
- Patient and encouraging with beginners
- Provide clear, concise explanations
- Use code examples when helpful
- Break down complex concepts into simple steps
- Offer practical tips and best practices

When providing code examples, always wrap them in markdown code blocks with the language specified.`

type TutorService struct {
	ChatRepo     *repository.ChatRepository
	Provider     CompletionProvider
	HistoryLimit int
	MaxTokens    int
}

func NewTutorService(chatRepo *repository.ChatRepository, provider CompletionProvider, historyLimit, maxTokens int) *TutorService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &TutorService{
		ChatRepo:     chatRepo,
		Provider:     provider,
		HistoryLimit: historyLimit,
		MaxTokens:    maxTokens,
	}
}

// Chat 保存用户消息，结合最近对话生成回复；补全失败时返回固定提示而不是报错
func (s *TutorService) Chat(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: Message is required", util.ErrValidation)
	}

	if err := s.ChatRepo.Create(ctx, &model.ChatMessage{
		UserID:  userID,
		Role:    model.ChatRoleUser,
		Content: message,
	}); err != nil {
		return "", err
	}

	history, err := s.ChatRepo.FindRecent(ctx, userID, s.HistoryLimit)
	if err != nil {
		return "", err
	}

	reply, outcome := s.reply(ctx, userID, history)
	monitoring.TutorReplies.WithLabelValues(outcome).Inc()

	if err := s.ChatRepo.Create(ctx, &model.ChatMessage{
		UserID:  userID,
		Role:    model.ChatRoleAssistant,
		Content: reply,
	}); err != nil {
		return "", err
	}
	return reply, nil
}

func (s *TutorService) reply(ctx context.Context, userID string, history []model.ChatMessage) (string, string) {
	if s.Provider == nil || !s.Provider.Configured() {
		return tutorUnconfiguredReply, "unconfigured"
	}

	messages := make([]AIChatMessage, 0, len(history)+1)
	messages = append(messages, AIChatMessage{Role: "system", Content: tutorSystemPrompt})
	for _, m := range history {
		messages = append(messages, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	ctx, span := tracing.StartSpan(ctx, "tutor.Complete", attribute.Int("tutor.history", len(history)))
	reply, err := s.Provider.Complete(ctx, messages, s.MaxTokens)
	tracing.EndSpan(span, err)
	if err != nil {
		logger.Log.Warn("AI tutor completion failed", zap.String("userID", userID), zap.Error(err))
		return tutorFallbackReply, "fallback"
	}
	if strings.TrimSpace(reply) == "" {
		return tutorEmptyReply, "ok"
	}
	return reply, "ok"
}

func (s *TutorService) History(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = util.DefaultHistoryLimit
	}
	messages, err := s.ChatRepo.FindRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return messages, nil
}

func (s *TutorService) ClearHistory(ctx context.Context, userID string) error {
	n, err := s.ChatRepo.Clear(ctx, userID)
	if err != nil {
		return err
	}
	logger.Log.Info("chat history cleared", zap.String("userID", userID), zap.Int64("messages", n))
	return nil
}

// 以下为单次调用的代码辅助，不写入对话记录

func (s *TutorService) ExplainCode(ctx context.Context, code, language string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code is required", util.ErrValidation)
	}
	return s.oneShot(ctx,
		"You are a programming tutor. Explain the given code in a clear, beginner-friendly way. Break down what each part does and why it's important.",
		fmt.Sprintf("Please explain this %s code:\n\n```%s\n%s\n```", language, language, code),
		1024, "I couldn't explain this code.")
}

func (s *TutorService) DebugCode(ctx context.Context, code, language, errMsg string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code is required", util.ErrValidation)
	}
	prompt := fmt.Sprintf("Help me debug this %s code:\n\n```%s\n%s\n```", language, language, code)
	if errMsg != "" {
		prompt += "\n\nError message: " + errMsg
	}
	return s.oneShot(ctx,
		"You are a debugging expert. Help identify issues in the code and provide fixes with explanations.",
		prompt, 1024, "I couldn't analyze this code.")
}

func (s *TutorService) Hint(ctx context.Context, problem, currentCode string) (string, error) {
	if strings.TrimSpace(problem) == "" {
		return "", fmt.Errorf("%w: problem is required", util.ErrValidation)
	}
	prompt := "Problem: " + problem
	if currentCode != "" {
		prompt += "\n\nMy current code:\n```\n" + currentCode + "\n```"
	}
	prompt += "\n\nCan you give me a hint?"
	return s.oneShot(ctx,
		"You are a helpful tutor. Provide a hint without giving away the complete solution. Guide the student towards figuring it out themselves.",
		prompt, 512, "Try breaking down the problem into smaller steps.")
}

func (s *TutorService) oneShot(ctx context.Context, system, prompt string, maxTokens int, empty string) (string, error) {
	if s.Provider == nil || !s.Provider.Configured() {
		return toolsUnavailableReply, nil
	}

	reply, err := s.Provider.Complete(ctx, []AIChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}, maxTokens)
	if err != nil {
		if errors.Is(err, ErrAINotConfigured) {
			return toolsUnavailableReply, nil
		}
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return empty, nil
	}
	return reply, nil
}
