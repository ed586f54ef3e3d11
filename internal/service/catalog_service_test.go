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

func newCatalog(t *testing.T) *CatalogService {
	t.Helper()
	db := testutil.NewSeededDB(t)
	return NewCatalogService(db, repository.NewLanguageRepository(db, nil, 0), repository.NewQuizRepository(db), repository.NewChallengeRepository(db))
}

func TestCatalogLessonsOrdered(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	languages, err := catalog.GetLanguages(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, languages)

	lessons, err := catalog.GetLessons(ctx, "python")
	require.NoError(t, err)
	require.Len(t, lessons, 5)
	for i, lesson := range lessons {
		assert.Equal(t, i+1, lesson.Order)
		assert.Equal(t, "python", lesson.LanguageID)
	}

	_, err = catalog.GetLessons(ctx, "cobol")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCatalogQuizIncludesQuestions(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	quiz, err := catalog.GetQuiz(ctx, "quiz-py-basics")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 4)
	assert.Equal(t, 100, quiz.XPReward)
	assert.Equal(t, []string{"list", "dict", "tuple", "set"}, []string(quiz.Questions[0].Options))

	quizzes, err := catalog.GetQuizzes(ctx, "javascript")
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "quiz-js-fundamentals", quizzes[0].ID)

	_, err = catalog.GetQuiz(ctx, "quiz-none")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCatalogChallenges(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	challenges, err := catalog.GetChallenges(ctx)
	require.NoError(t, err)
	assert.Len(t, challenges, 3)

	challenge, err := catalog.GetChallenge(ctx, "ch-3")
	require.NoError(t, err)
	assert.Equal(t, 200, challenge.XPReward)

	_, err = catalog.GetLesson(ctx, "py-99")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCatalogSeedIsIdempotent(t *testing.T) {
	catalog := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Seed(ctx))
	require.NoError(t, catalog.Seed(ctx))

	lessons, err := catalog.GetLessons(ctx, "javascript")
	require.NoError(t, err)
	assert.Len(t, lessons, 4)
}
