package service

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/testutil"
	"codequest_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	gamification *GamificationService
	achievement  *AchievementService
	clock        time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSeededDB(t)

	userRepo := repository.NewUserRepository(db)
	languageRepo := repository.NewLanguageRepository(db, nil, 0)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)

	f := &fixture{db: db, clock: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	f.achievement = NewAchievementService(repository.NewAchievementRepository(db), userRepo, languageRepo, progressRepo, quizRepo, challengeRepo)
	f.gamification = NewGamificationService(repository.NewTransactor(db), userRepo, languageRepo, progressRepo, quizRepo, challengeRepo, f.achievement,
		config.GamificationConfig{Timezone: "UTC", XPPerLevel: 200})
	f.gamification.now = func() time.Time { return f.clock }
	f.achievement.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advanceDays(n int) {
	f.clock = f.clock.AddDate(0, 0, n)
}

func achievementIDs(list []model.Achievement) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestCompleteLessonAwardsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "learner@example.com", 0)

	first, err := f.gamification.CompleteLesson(ctx, user.ID, "py-2")
	require.NoError(t, err)
	assert.True(t, first.FirstCompletion)
	assert.Equal(t, 60, first.XPEarned)
	assert.Equal(t, 60, first.TotalXP)
	assert.Equal(t, 1, first.Streak)
	assert.Contains(t, achievementIDs(first.NewAchievements), "first-lesson")
	assert.True(t, first.Progress.Completed)

	again, err := f.gamification.CompleteLesson(ctx, user.ID, "py-2")
	require.NoError(t, err)
	assert.False(t, again.FirstCompletion)
	assert.Equal(t, 0, again.XPEarned)
	assert.Equal(t, 60, again.TotalXP)
	assert.Empty(t, again.NewAchievements)

	progress, err := f.gamification.GetProgress(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, progress, 1)
}

func TestCompleteLessonCrossesXPThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "almost@example.com", 450)

	result, err := f.gamification.CompleteLesson(ctx, user.ID, "py-2")
	require.NoError(t, err)
	assert.Equal(t, 510, result.TotalXP)
	assert.ElementsMatch(t, []string{"first-lesson", "xp-500"}, achievementIDs(result.NewAchievements))
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "lost@example.com", 0)

	_, err := f.gamification.CompleteLesson(context.Background(), user.ID, "nope-1")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = f.gamification.CompleteLesson(context.Background(), "missing-user", "py-1")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCompletingAllLessonsUnlocksLanguageAchievement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "pythonista@example.com", 0)

	var unlocked []string
	for _, id := range []string{"py-1", "py-2", "py-3", "py-4", "py-5"} {
		result, err := f.gamification.CompleteLesson(ctx, user.ID, id)
		require.NoError(t, err)
		unlocked = append(unlocked, achievementIDs(result.NewAchievements)...)
	}

	assert.Contains(t, unlocked, "python-pro")
	assert.Contains(t, unlocked, "first-lesson")

	course, err := f.gamification.CourseProgress(ctx, user.ID, "python")
	require.NoError(t, err)
	assert.Equal(t, int64(5), course.CompletedLessons)
	assert.Equal(t, 100.0, course.Percent)
}

func TestCourseProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "course@example.com", 0)

	for _, id := range []string{"py-1", "py-3", "js-1"} {
		_, err := f.gamification.CompleteLesson(ctx, user.ID, id)
		require.NoError(t, err)
	}

	course, err := f.gamification.CourseProgress(ctx, user.ID, "python")
	require.NoError(t, err)
	assert.Equal(t, int64(2), course.CompletedLessons)
	assert.Equal(t, int64(5), course.TotalLessons)
	assert.Equal(t, 40.0, course.Percent)

	_, err = f.gamification.CourseProgress(ctx, user.ID, "cobol")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestSubmitQuiz(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "quiz@example.com", 0)

	result, err := f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-py-basics", Score: 3, TotalQuestions: 4, TimeTaken: 120})
	require.NoError(t, err)
	assert.Equal(t, 75, result.XPEarned)
	assert.Equal(t, 75, result.Attempt.XPEarned)
	assert.Equal(t, 75, result.TotalXP)

	// 每次作答独立计分
	result, err = f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-py-basics", Score: 4, TotalQuestions: 4})
	require.NoError(t, err)
	assert.Equal(t, 100, result.XPEarned)
	assert.Equal(t, 175, result.TotalXP)

	attempts, err := f.gamification.QuizAttempts(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestSubmitQuizValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "badquiz@example.com", 0)

	_, err := f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-py-basics", Score: 1, TotalQuestions: 0})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-py-basics", Score: 5, TotalQuestions: 4})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-py-basics", Score: 1, TotalQuestions: 4, TimeTaken: -1})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-missing", Score: 1, TotalQuestions: 4})
	assert.ErrorIs(t, err, util.ErrNotFound)

	attempts, err := f.gamification.QuizAttempts(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, attempts)
	assert.NotNil(t, attempts)
}

func TestSubmitChallengeAwardsOncePerChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "coder@example.com", 0)

	failed, err := f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-1", Code: "print(1)", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, 0, failed.XPEarned)
	assert.False(t, failed.FirstSolved)

	solved, err := f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-1", Code: "print(2)", Language: "python", Passed: true})
	require.NoError(t, err)
	assert.True(t, solved.FirstSolved)
	assert.Equal(t, 150, solved.XPEarned)
	assert.Equal(t, 150, solved.TotalXP)

	again, err := f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-1", Code: "print(3)", Language: "python", Passed: true})
	require.NoError(t, err)
	assert.False(t, again.FirstSolved)
	assert.Equal(t, 0, again.XPEarned)
	assert.Equal(t, 150, again.TotalXP)

	submissions, err := f.gamification.ChallengeSubmissions(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, submissions, 3)

	stats, err := f.gamification.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ChallengesSolved)
}

func TestSubmitChallengeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "empty@example.com", 0)

	_, err := f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-1", Code: "  ", Language: "python"})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-1", Code: "x", Language: ""})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = f.gamification.SubmitChallenge(ctx, user.ID, ChallengeSubmission{ChallengeID: "ch-404", Code: "x", Language: "go"})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestStreakProgression(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "streak@example.com", 0)

	result, err := f.gamification.CheckIn(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 0, result.XPEarned)

	f.advanceDays(1)
	result, err = f.gamification.CheckIn(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)

	// 同一天重复活跃不变
	result, err = f.gamification.CheckIn(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)

	f.advanceDays(1)
	result, err = f.gamification.CheckIn(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Streak)
	assert.Contains(t, achievementIDs(result.NewAchievements), "streak-3")

	f.advanceDays(3)
	result, err = f.gamification.CheckIn(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestResetLapsedStreaks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lapsed := testutil.CreateUser(t, f.db, "lapsed@example.com", 0)
	active := testutil.CreateUser(t, f.db, "active@example.com", 0)
	users := repository.NewUserRepository(f.db)
	require.NoError(t, users.UpdateStreak(ctx, lapsed.ID, 5, f.clock.AddDate(0, 0, -3)))
	require.NoError(t, users.UpdateStreak(ctx, active.ID, 2, f.clock.AddDate(0, 0, -1)))

	n, err := f.gamification.ResetLapsedStreaks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := users.FindByID(ctx, lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Streak)

	got, err = users.FindByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Streak)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "stats@example.com", 0)

	_, err := f.gamification.CompleteLesson(ctx, user.ID, "py-1")
	require.NoError(t, err)
	_, err = f.gamification.CompleteLesson(ctx, user.ID, "py-4")
	require.NoError(t, err)
	_, err = f.gamification.SubmitQuiz(ctx, user.ID, QuizSubmission{QuizID: "quiz-js-fundamentals", Score: 3, TotalQuestions: 3})
	require.NoError(t, err)

	stats, err := f.gamification.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 230, stats.XP)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, int64(2), stats.LessonsCompleted)
	assert.Equal(t, int64(1), stats.QuizzesCompleted)
	assert.Equal(t, int64(1), stats.BadgesEarned)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 400, stats.NextLevelXP)

	// 两天未活跃后展示为 0
	f.advanceDays(2)
	stats, err = f.gamification.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Streak)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "rich@example.com", 1200)

	first, err := f.achievement.Evaluate(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"xp-500", "xp-1000"}, achievementIDs(first))

	second, err := f.achievement.Evaluate(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, second)

	unlocked, err := f.achievement.GetUserAchievements(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, unlocked, 2)
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "low@example.com", 10)
	top := testutil.CreateUser(t, f.db, "top@example.com", 900)
	testutil.CreateUser(t, f.db, "mid@example.com", 300)

	board, err := f.achievement.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, top.ID, board[0].UserID)
	assert.Equal(t, 900, board[0].XP)
	assert.Equal(t, 300, board[1].XP)
}
