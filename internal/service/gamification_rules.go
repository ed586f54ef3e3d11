package service

import (
	"codequest_backend/internal/util"
	"fmt"
	"time"
)

// dayIndex 将时间折算为 loc 时区下的自然日序号
func dayIndex(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// NextStreak 计算一次学习活动后的连续天数
// 同一天不变；恰好隔一天加一；间隔更久或从未活跃则重置为 1
func NextStreak(current int, lastActive *time.Time, now time.Time, loc *time.Location) (int, bool) {
	if lastActive == nil {
		return 1, true
	}

	gap := dayIndex(now, loc) - dayIndex(*lastActive, loc)
	switch {
	case gap <= 0:
		if current < 1 {
			return 1, true
		}
		return current, false
	case gap == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

// EffectiveStreak 展示用连续天数：昨天之前就已中断的按 0 计
func EffectiveStreak(streak int, lastActive *time.Time, now time.Time, loc *time.Location) int {
	if lastActive == nil {
		return 0
	}
	if dayIndex(now, loc)-dayIndex(*lastActive, loc) > 1 {
		return 0
	}
	return streak
}

// StartOfYesterday 返回 loc 时区下昨天零点
func StartOfYesterday(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
}

// QuizXP 按得分比例向下取整计算测验经验
func QuizXP(score, totalQuestions, xpReward int) (int, error) {
	if totalQuestions <= 0 {
		return 0, fmt.Errorf("%w: totalQuestions must be greater than 0", util.ErrValidation)
	}
	if score < 0 || score > totalQuestions {
		return 0, fmt.Errorf("%w: score must be between 0 and totalQuestions", util.ErrValidation)
	}
	if xpReward < 0 {
		return 0, fmt.Errorf("%w: xpReward must not be negative", util.ErrValidation)
	}
	return int(int64(score) * int64(xpReward) / int64(totalQuestions)), nil
}

// ProgressPercent 课程完成百分比，课程数为 0 时为 0
func ProgressPercent(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return float64(completed) * 100 / float64(total)
}

// CalculateLevel 每 xpPerLevel 经验升一级，从 1 级开始
func CalculateLevel(xp, xpPerLevel int) (int, int) {
	if xpPerLevel <= 0 {
		xpPerLevel = 200
	}
	level := xp/xpPerLevel + 1
	nextLevelXP := level * xpPerLevel
	return level, nextLevelXP
}
