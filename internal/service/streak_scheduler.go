package service

import (
	"codequest_backend/pkg/logger"
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartStreakSweeper 按配置的 cron 表达式定时清零中断的连续天数，ctx 取消后停止
func StartStreakSweeper(ctx context.Context, gamification *GamificationService, spec string) error {
	if spec == "" {
		spec = "5 0 * * *"
	}

	c := cron.New(cron.WithLocation(gamification.Location))
	_, err := c.AddFunc(spec, func() {
		if _, err := gamification.ResetLapsedStreaks(ctx); err != nil {
			logger.Log.Error("failed to reset lapsed streaks", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	logger.Log.Info("streak sweeper started", zap.String("spec", spec), zap.String("timezone", gamification.Location.String()))

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		logger.Log.Info("streak sweeper stopped")
	}()
	return nil
}
