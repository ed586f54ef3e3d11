package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/pkg/logger"
	"codequest_backend/pkg/monitoring"
	"context"
	"time"

	"go.uber.org/zap"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
	LanguageRepo    *repository.LanguageRepository
	ProgressRepo    *repository.ProgressRepository
	QuizRepo        *repository.QuizRepository
	ChallengeRepo   *repository.ChallengeRepository
	now             func() time.Time
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	languageRepo *repository.LanguageRepository,
	progressRepo *repository.ProgressRepository,
	quizRepo *repository.QuizRepository,
	challengeRepo *repository.ChallengeRepository,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		LanguageRepo:    languageRepo,
		ProgressRepo:    progressRepo,
		QuizRepo:        quizRepo,
		ChallengeRepo:   challengeRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

func (s *AchievementService) GetAll(ctx context.Context) ([]model.Achievement, error) {
	achievements, err := s.AchievementRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	return achievements, nil
}

func (s *AchievementService) GetUserAchievements(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	unlocked, err := s.AchievementRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if unlocked == nil {
		unlocked = []model.UserAchievement{}
	}
	return unlocked, nil
}

func (s *AchievementService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:   i + 1,
			UserID: user.ID,
			User:   user.DisplayName(),
			XP:     user.XP,
			Avatar: user.ProfileImageURL,
		}
	}

	return leaderboard, nil
}

// userSnapshot 一次评估内复用的聚合数据
type userSnapshot struct {
	user             *model.User
	lessonsCompleted int64
	quizAttempts     int64
	challengesSolved int64
	languageDone     map[string]bool
}

func (s *AchievementService) snapshot(ctx context.Context, userID string) (*userSnapshot, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}

	snap := &userSnapshot{user: user, languageDone: map[string]bool{}}
	if snap.lessonsCompleted, err = s.ProgressRepo.CountCompleted(ctx, userID); err != nil {
		return nil, err
	}
	if snap.quizAttempts, err = s.QuizRepo.CountAttempts(ctx, userID); err != nil {
		return nil, err
	}
	if snap.challengesSolved, err = s.ChallengeRepo.CountSolved(ctx, userID); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *AchievementService) languageCompleted(ctx context.Context, snap *userSnapshot, languageID string) (bool, error) {
	if done, ok := snap.languageDone[languageID]; ok {
		return done, nil
	}

	total, err := s.LanguageRepo.CountLessons(ctx, languageID)
	if err != nil {
		return false, err
	}
	completed, err := s.ProgressRepo.CountCompletedInLanguage(ctx, snap.user.ID, languageID)
	if err != nil {
		return false, err
	}

	done := total > 0 && completed >= total
	snap.languageDone[languageID] = done
	return done, nil
}

func (s *AchievementService) eligible(ctx context.Context, a model.Achievement, snap *userSnapshot) (bool, error) {
	req := int64(a.Requirement)
	switch a.Type {
	case model.AchievementXP:
		return int64(snap.user.XP) >= req, nil
	case model.AchievementStreak:
		return int64(snap.user.Streak) >= req, nil
	case model.AchievementLessons:
		return snap.lessonsCompleted >= req, nil
	case model.AchievementQuizzes:
		return snap.quizAttempts >= req, nil
	case model.AchievementChallenges:
		return snap.challengesSolved >= req, nil
	case model.AchievementLanguage:
		if a.LanguageID == "" {
			return false, nil
		}
		return s.languageCompleted(ctx, snap, a.LanguageID)
	default:
		logger.Log.Warn("unknown achievement type", zap.String("achievement", a.ID), zap.String("type", string(a.Type)))
		return false, nil
	}
}

// Evaluate 幂等地检查全部成就，返回本次新解锁的成就
func (s *AchievementService) Evaluate(ctx context.Context, userID string) ([]model.Achievement, error) {
	achievements, err := s.AchievementRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.AchievementRepo.UnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var snap *userSnapshot
	newlyUnlocked := []model.Achievement{}
	for _, a := range achievements {
		if unlocked[a.ID] {
			continue
		}

		if snap == nil {
			if snap, err = s.snapshot(ctx, userID); err != nil {
				return nil, err
			}
		}

		ok, err := s.eligible(ctx, a, snap)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		created, err := s.AchievementRepo.Unlock(ctx, userID, a.ID, s.now())
		if err != nil {
			return nil, err
		}
		if created {
			newlyUnlocked = append(newlyUnlocked, a)
			monitoring.AchievementsUnlocked.WithLabelValues(string(a.Type)).Inc()
			logger.Log.Info("achievement unlocked", zap.String("userId", userID), zap.String("achievement", a.ID))
		}
	}

	return newlyUnlocked, nil
}
