package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/pkg/database"
	"codequest_backend/pkg/logger"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService 只读目录：语言、课程、测验、挑战
type CatalogService struct {
	DB            *gorm.DB
	LanguageRepo  *repository.LanguageRepository
	QuizRepo      *repository.QuizRepository
	ChallengeRepo *repository.ChallengeRepository
}

func NewCatalogService(db *gorm.DB, languageRepo *repository.LanguageRepository, quizRepo *repository.QuizRepository, challengeRepo *repository.ChallengeRepository) *CatalogService {
	return &CatalogService{
		DB:            db,
		LanguageRepo:  languageRepo,
		QuizRepo:      quizRepo,
		ChallengeRepo: challengeRepo,
	}
}

func (s *CatalogService) GetLanguages(ctx context.Context) ([]model.Language, error) {
	languages, err := s.LanguageRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if languages == nil {
		languages = []model.Language{}
	}
	return languages, nil
}

func (s *CatalogService) GetLanguage(ctx context.Context, id string) (*model.Language, error) {
	language, err := s.LanguageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "language", id)
	}
	return language, nil
}

func (s *CatalogService) GetLessons(ctx context.Context, languageID string) ([]model.Lesson, error) {
	if _, err := s.GetLanguage(ctx, languageID); err != nil {
		return nil, err
	}
	lessons, err := s.LanguageRepo.FindLessons(ctx, languageID)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	return lessons, nil
}

func (s *CatalogService) GetLesson(ctx context.Context, id string) (*model.Lesson, error) {
	lesson, err := s.LanguageRepo.FindLessonByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "lesson", id)
	}
	return lesson, nil
}

func (s *CatalogService) GetQuizzes(ctx context.Context, languageID string) ([]model.Quiz, error) {
	if _, err := s.GetLanguage(ctx, languageID); err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.FindByLanguage(ctx, languageID)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, nil
}

func (s *CatalogService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "quiz", id)
	}
	return quiz, nil
}

func (s *CatalogService) GetChallenges(ctx context.Context) ([]model.Challenge, error) {
	challenges, err := s.ChallengeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	return challenges, nil
}

func (s *CatalogService) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "challenge", id)
	}
	return challenge, nil
}

// Seed 幂等写入内置目录并清空目录缓存
func (s *CatalogService) Seed(ctx context.Context) error {
	if err := database.SeedCatalog(ctx, s.DB); err != nil {
		return err
	}
	if err := s.LanguageRepo.InvalidateCatalog(ctx); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
	logger.Log.Info("catalog seeded")
	return nil
}
