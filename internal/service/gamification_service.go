package service

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"codequest_backend/pkg/monitoring"
	"codequest_backend/pkg/tracing"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GamificationService 将学习事件转换为经验、连续天数与成就状态
type GamificationService struct {
	Tx             *repository.Transactor
	UserRepo       *repository.UserRepository
	LanguageRepo   *repository.LanguageRepository
	ProgressRepo   *repository.ProgressRepository
	QuizRepo       *repository.QuizRepository
	ChallengeRepo  *repository.ChallengeRepository
	AchievementSvc *AchievementService
	Location       *time.Location
	XPPerLevel     int
	now            func() time.Time
}

func NewGamificationService(
	tx *repository.Transactor,
	userRepo *repository.UserRepository,
	languageRepo *repository.LanguageRepository,
	progressRepo *repository.ProgressRepository,
	quizRepo *repository.QuizRepository,
	challengeRepo *repository.ChallengeRepository,
	achievementSvc *AchievementService,
	cfg config.GamificationConfig,
) *GamificationService {
	return &GamificationService{
		Tx:             tx,
		UserRepo:       userRepo,
		LanguageRepo:   languageRepo,
		ProgressRepo:   progressRepo,
		QuizRepo:       quizRepo,
		ChallengeRepo:  challengeRepo,
		AchievementSvc: achievementSvc,
		Location:       cfg.Location(),
		XPPerLevel:     cfg.XPPerLevel,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// EventResult 每次学习事件后的用户状态
type EventResult struct {
	XPEarned        int                 `json:"xpEarned"`
	TotalXP         int                 `json:"totalXp"`
	Streak          int                 `json:"streak"`
	NewAchievements []model.Achievement `json:"newAchievements"`
}

type LessonCompletion struct {
	EventResult
	Progress        *model.UserProgress `json:"progress"`
	FirstCompletion bool                `json:"firstCompletion"`
}

type QuizSubmission struct {
	QuizID         string
	Score          int
	TotalQuestions int
	TimeTaken      int
}

type QuizResult struct {
	EventResult
	Attempt *model.UserQuizAttempt `json:"attempt"`
}

type ChallengeSubmission struct {
	ChallengeID string
	Code        string
	Language    string
	Passed      bool
}

type ChallengeResult struct {
	EventResult
	Submission  *model.UserChallengeSubmission `json:"submission"`
	FirstSolved bool                           `json:"firstSolved"`
}

type CourseProgress struct {
	LanguageID       string  `json:"languageId"`
	CompletedLessons int64   `json:"completedLessons"`
	TotalLessons     int64   `json:"totalLessons"`
	Percent          float64 `json:"percent"`
}

type UserStats struct {
	XP               int   `json:"xp"`
	Streak           int   `json:"streak"`
	LessonsCompleted int64 `json:"lessonsCompleted"`
	BadgesEarned     int64 `json:"badgesEarned"`
	QuizzesCompleted int64 `json:"quizzesCompleted"`
	ChallengesSolved int64 `json:"challengesSolved"`
	Level            int   `json:"level"`
	NextLevelXP      int   `json:"nextLevelXp"`
}

func (s *GamificationService) requireUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	return user, nil
}

// CompleteLesson 记录课程完成；经验按课程配置发放且每个 (用户, 课程) 只发放一次
func (s *GamificationService) CompleteLesson(ctx context.Context, userID, lessonID string) (*LessonCompletion, error) {
	ctx, span := tracing.StartSpan(ctx, "gamification.CompleteLesson", attribute.String("lesson.id", lessonID))
	result, err := s.completeLesson(ctx, userID, lessonID)
	tracing.EndSpan(span, err)
	return result, err
}

func (s *GamificationService) completeLesson(ctx context.Context, userID, lessonID string) (*LessonCompletion, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	lesson, err := s.LanguageRepo.FindLessonByID(ctx, lessonID)
	if err != nil {
		return nil, notFound(err, "lesson", lessonID)
	}

	now := s.now()
	result := &LessonCompletion{}
	err = s.Tx.WithinTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		progress, err := repository.NewProgressRepository(tx).MarkComplete(ctx, userID, lesson.ID, now)
		if err != nil {
			return err
		}
		result.Progress = progress

		awarded, err := repository.NewXPRepository(tx).Award(ctx, &model.XPAward{
			UserID:   userID,
			Source:   model.XPSourceLesson,
			SourceID: lesson.ID,
			Amount:   lesson.XPReward,
		})
		if err != nil {
			return err
		}
		result.FirstCompletion = awarded
		if awarded {
			result.XPEarned = lesson.XPReward
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordXP(model.XPSourceLesson, result.XPEarned)
	if err := s.afterEvent(ctx, userID, &result.EventResult); err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitQuiz 追加一次作答记录，每次作答按得分比例发放经验
func (s *GamificationService) SubmitQuiz(ctx context.Context, userID string, in QuizSubmission) (*QuizResult, error) {
	ctx, span := tracing.StartSpan(ctx, "gamification.SubmitQuiz", attribute.String("quiz.id", in.QuizID))
	result, err := s.submitQuiz(ctx, userID, in)
	tracing.EndSpan(span, err)
	return result, err
}

func (s *GamificationService) submitQuiz(ctx context.Context, userID string, in QuizSubmission) (*QuizResult, error) {
	if in.TimeTaken < 0 {
		return nil, fmt.Errorf("%w: timeTaken must not be negative", util.ErrValidation)
	}
	if _, err := QuizXP(in.Score, in.TotalQuestions, 0); err != nil {
		return nil, err
	}
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByID(ctx, in.QuizID)
	if err != nil {
		return nil, notFound(err, "quiz", in.QuizID)
	}

	xp, err := QuizXP(in.Score, in.TotalQuestions, quiz.XPReward)
	if err != nil {
		return nil, err
	}

	attempt := &model.UserQuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		TimeTaken:      in.TimeTaken,
		XPEarned:       xp,
		CompletedAt:    s.now(),
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := repository.NewQuizRepository(tx).CreateAttempt(ctx, attempt); err != nil {
			return err
		}
		_, err := repository.NewXPRepository(tx).Award(ctx, &model.XPAward{
			UserID:   userID,
			Source:   model.XPSourceQuiz,
			SourceID: strconv.FormatUint(uint64(attempt.ID), 10),
			Amount:   xp,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &QuizResult{Attempt: attempt}
	result.XPEarned = xp
	s.recordXP(model.XPSourceQuiz, xp)
	if err := s.afterEvent(ctx, userID, &result.EventResult); err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitChallenge 追加提交记录；通过时每个 (用户, 挑战) 只发放一次经验
func (s *GamificationService) SubmitChallenge(ctx context.Context, userID string, in ChallengeSubmission) (*ChallengeResult, error) {
	ctx, span := tracing.StartSpan(ctx, "gamification.SubmitChallenge",
		attribute.String("challenge.id", in.ChallengeID),
		attribute.Bool("challenge.passed", in.Passed),
	)
	result, err := s.submitChallenge(ctx, userID, in)
	tracing.EndSpan(span, err)
	return result, err
}

func (s *GamificationService) submitChallenge(ctx context.Context, userID string, in ChallengeSubmission) (*ChallengeResult, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", util.ErrValidation)
	}
	if strings.TrimSpace(in.Language) == "" {
		return nil, fmt.Errorf("%w: language is required", util.ErrValidation)
	}
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	challenge, err := s.ChallengeRepo.FindByID(ctx, in.ChallengeID)
	if err != nil {
		return nil, notFound(err, "challenge", in.ChallengeID)
	}

	submission := &model.UserChallengeSubmission{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Code:        in.Code,
		Language:    in.Language,
		Passed:      in.Passed,
		SubmittedAt: s.now(),
	}
	result := &ChallengeResult{Submission: submission}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if in.Passed {
			awarded, err := repository.NewXPRepository(tx).Award(ctx, &model.XPAward{
				UserID:   userID,
				Source:   model.XPSourceChallenge,
				SourceID: challenge.ID,
				Amount:   challenge.XPReward,
			})
			if err != nil {
				return err
			}
			if awarded {
				result.FirstSolved = true
				submission.XPEarned = challenge.XPReward
			}
		}
		return repository.NewChallengeRepository(tx).CreateSubmission(ctx, submission)
	})
	if err != nil {
		return nil, err
	}

	result.XPEarned = submission.XPEarned
	s.recordXP(model.XPSourceChallenge, result.XPEarned)
	if err := s.afterEvent(ctx, userID, &result.EventResult); err != nil {
		return nil, err
	}
	return result, nil
}

// RecordActivity 服务端计算连续天数，返回最新用户状态
func (s *GamificationService) RecordActivity(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	streak, changed := NextStreak(user.Streak, user.LastActiveDate, now, s.Location)
	if !changed {
		return user, nil
	}

	if err := s.UserRepo.UpdateStreak(ctx, userID, streak, now); err != nil {
		return nil, err
	}
	user.Streak = streak
	user.LastActiveDate = &now
	return user, nil
}

// CheckIn 仅记录活跃（不发放经验），随后检查成就
func (s *GamificationService) CheckIn(ctx context.Context, userID string) (*EventResult, error) {
	result := &EventResult{}
	if err := s.afterEvent(ctx, userID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *GamificationService) afterEvent(ctx context.Context, userID string, result *EventResult) error {
	user, err := s.RecordActivity(ctx, userID)
	if err != nil {
		return err
	}

	unlocked, err := s.AchievementSvc.Evaluate(ctx, userID)
	if err != nil {
		return err
	}

	// 重新读取以包含本次发放的经验
	if fresh, err := s.UserRepo.FindByID(ctx, userID); err == nil {
		user = fresh
	}

	result.TotalXP = user.XP
	result.Streak = user.Streak
	result.NewAchievements = unlocked
	return nil
}

func (s *GamificationService) recordXP(source string, amount int) {
	if amount > 0 {
		monitoring.XPAwarded.WithLabelValues(source).Add(float64(amount))
	}
}

func (s *GamificationService) GetProgress(ctx context.Context, userID string) ([]model.UserProgress, error) {
	return s.ProgressRepo.FindByUser(ctx, userID)
}

func (s *GamificationService) CourseProgress(ctx context.Context, userID, languageID string) (*CourseProgress, error) {
	if _, err := s.LanguageRepo.FindByID(ctx, languageID); err != nil {
		return nil, notFound(err, "language", languageID)
	}

	total, err := s.LanguageRepo.CountLessons(ctx, languageID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompletedInLanguage(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}

	return &CourseProgress{
		LanguageID:       languageID,
		CompletedLessons: completed,
		TotalLessons:     total,
		Percent:          ProgressPercent(completed, total),
	}, nil
}

func (s *GamificationService) Stats(ctx context.Context, userID string) (*UserStats, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		XP:     user.XP,
		Streak: EffectiveStreak(user.Streak, user.LastActiveDate, s.now(), s.Location),
	}
	if stats.LessonsCompleted, err = s.ProgressRepo.CountCompleted(ctx, userID); err != nil {
		return nil, err
	}
	if stats.BadgesEarned, err = s.AchievementSvc.AchievementRepo.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if stats.QuizzesCompleted, err = s.QuizRepo.CountAttempts(ctx, userID); err != nil {
		return nil, err
	}
	if stats.ChallengesSolved, err = s.ChallengeRepo.CountSolved(ctx, userID); err != nil {
		return nil, err
	}
	stats.Level, stats.NextLevelXP = CalculateLevel(user.XP, s.XPPerLevel)

	return stats, nil
}

// ResetLapsedStreaks 定时任务：昨天之前最后活跃的用户连续天数清零
func (s *GamificationService) ResetLapsedStreaks(ctx context.Context) (int64, error) {
	cutoff := StartOfYesterday(s.now(), s.Location).UTC()
	n, err := s.UserRepo.ResetLapsedStreaks(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		monitoring.StreaksReset.Add(float64(n))
		logger.Log.Info("lapsed streaks reset", zap.Int64("users", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}

func (s *GamificationService) QuizAttempts(ctx context.Context, userID string) ([]model.UserQuizAttempt, error) {
	attempts, err := s.QuizRepo.FindAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.UserQuizAttempt{}
	}
	return attempts, nil
}

func (s *GamificationService) ChallengeSubmissions(ctx context.Context, userID string) ([]model.UserChallengeSubmission, error) {
	submissions, err := s.ChallengeRepo.FindSubmissionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []model.UserChallengeSubmission{}
	}
	return submissions, nil
}
