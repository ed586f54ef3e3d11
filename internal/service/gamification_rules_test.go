package service

import (
	"codequest_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day int, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	day1 := at(1, 10)
	cases := []struct {
		name        string
		current     int
		lastActive  *time.Time
		now         time.Time
		wantStreak  int
		wantChanged bool
	}{
		{"首次活跃", 0, nil, at(1, 9), 1, true},
		{"同一天不变", 3, &day1, at(1, 23), 3, false},
		{"同一天但计数为零", 0, &day1, at(1, 23), 1, true},
		{"隔一天加一", 3, &day1, at(2, 0), 4, true},
		{"隔两天重置", 3, &day1, at(3, 12), 1, true},
		{"时钟回拨视为同一天", 2, &day1, at(1, 1), 2, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			streak, changed := NextStreak(tc.current, tc.lastActive, tc.now, time.UTC)
			assert.Equal(t, tc.wantStreak, streak)
			assert.Equal(t, tc.wantChanged, changed)
		})
	}
}

func TestNextStreakUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// UTC 3月1日 20:00 已是东八区 3月2日
	last := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 1, 20, 0, 0, 0, time.UTC)

	streak, changed := NextStreak(5, &last, now, loc)
	assert.Equal(t, 6, streak)
	assert.True(t, changed)

	streak, changed = NextStreak(5, &last, now, time.UTC)
	assert.Equal(t, 5, streak)
	assert.False(t, changed)
}

func TestEffectiveStreak(t *testing.T) {
	last := at(1, 10)
	assert.Equal(t, 0, EffectiveStreak(4, nil, at(1, 12), time.UTC))
	assert.Equal(t, 4, EffectiveStreak(4, &last, at(1, 12), time.UTC))
	assert.Equal(t, 4, EffectiveStreak(4, &last, at(2, 23), time.UTC))
	assert.Equal(t, 0, EffectiveStreak(4, &last, at(3, 0), time.UTC))
}

func TestStartOfYesterday(t *testing.T) {
	got := StartOfYesterday(at(10, 15), time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestQuizXP(t *testing.T) {
	xp, err := QuizXP(7, 10, 100)
	assert.NoError(t, err)
	assert.Equal(t, 70, xp)

	xp, err = QuizXP(1, 3, 100)
	assert.NoError(t, err)
	assert.Equal(t, 33, xp, "向下取整")

	xp, err = QuizXP(0, 4, 100)
	assert.NoError(t, err)
	assert.Equal(t, 0, xp)

	_, err = QuizXP(1, 0, 100)
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = QuizXP(5, 4, 100)
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = QuizXP(-1, 4, 100)
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, ProgressPercent(0, 0))
	assert.Equal(t, 40.0, ProgressPercent(2, 5))
	assert.Equal(t, 100.0, ProgressPercent(7, 5))
}

func TestCalculateLevel(t *testing.T) {
	level, next := CalculateLevel(0, 200)
	assert.Equal(t, 1, level)
	assert.Equal(t, 200, next)

	level, next = CalculateLevel(450, 200)
	assert.Equal(t, 3, level)
	assert.Equal(t, 600, next)

	level, next = CalculateLevel(200, 0)
	assert.Equal(t, 2, level)
	assert.Equal(t, 400, next)
}
