package app

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/controller"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/configwatcher"
	"codequest_backend/pkg/database"
	"codequest_backend/pkg/logger"
	"codequest_backend/pkg/monitoring"
	"codequest_backend/pkg/security"
	"codequest_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Sessions        *util.SessionManager
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	xp          *repository.XPRepository
	language    *repository.LanguageRepository
	progress    *repository.ProgressRepository
	favorite    *repository.FavoriteRepository
	achievement *repository.AchievementRepository
	quiz        *repository.QuizRepository
	challenge   *repository.ChallengeRepository
	chat        *repository.ChatRepository
	tx          *repository.Transactor
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	user         *service.UserService
	catalog      *service.CatalogService
	favorite     *service.FavoriteService
	achievement  *service.AchievementService
	gamification *service.GamificationService
	ai           *service.AIService
	tutor        *service.TutorService
}

type controllers struct {
	auth        *controller.AuthController
	catalog     *controller.CatalogController
	progress    *controller.ProgressController
	favorite    *controller.FavoriteController
	achievement *controller.AchievementController
	quiz        *controller.QuizController
	challenge   *controller.ChallengeController
	chat        *controller.ChatController
	user        *controller.UserController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	ttl := time.Duration(cfg.Redis.CatalogTTLMinutes) * time.Minute
	return &repositories{
		user:        repository.NewUserRepository(db),
		xp:          repository.NewXPRepository(db),
		language:    repository.NewLanguageRepository(db, rdb, ttl),
		progress:    repository.NewProgressRepository(db),
		favorite:    repository.NewFavoriteRepository(db),
		achievement: repository.NewAchievementRepository(db),
		quiz:        repository.NewQuizRepository(db),
		challenge:   repository.NewChallengeRepository(db),
		chat:        repository.NewChatRepository(db),
		tx:          repository.NewTransactor(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.storage = service.NewStorageService(cfg)
	s.user = service.NewUserService(repos.user, repos.xp, s.storage, cfg.Storage.MaxAvatarMB)
	s.catalog = service.NewCatalogService(db, repos.language, repos.quiz, repos.challenge)
	s.favorite = service.NewFavoriteService(repos.favorite, repos.language)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user, repos.language, repos.progress, repos.quiz, repos.challenge)
	s.gamification = service.NewGamificationService(repos.tx, repos.user, repos.language, repos.progress, repos.quiz, repos.challenge, s.achievement, cfg.Gamification)
	s.ai = service.NewAIService(cfg.AI)
	s.tutor = service.NewTutorService(repos.chat, s.ai, cfg.AI.HistoryLimit, cfg.AI.MaxTokens)

	// 配置热更新：AI 密钥/模型与日志级别
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
		logger.SetLevel(newCfg)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, a.Sessions, cfg.Server.FrontendURL),
		catalog:     controller.NewCatalogController(s.catalog),
		progress:    controller.NewProgressController(s.gamification),
		favorite:    controller.NewFavoriteController(s.favorite),
		achievement: controller.NewAchievementController(s.achievement),
		quiz:        controller.NewQuizController(s.gamification),
		challenge:   controller.NewChallengeController(s.gamification),
		chat:        controller.NewChatController(s.tutor),
		user:        controller.NewUserController(s.user, s.gamification),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 目录种子数据在后台写入，启动期间的早期读取可能看到空目录
func (a *App) startBackgroundTasks(ctx context.Context) {
	if a.Config.SeedOnStart {
		go func() {
			seedCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if err := a.services.catalog.Seed(seedCtx); err != nil {
				logger.Log.Error("catalog seeding failed", zap.Error(err))
			}
		}()
	}

	if err := service.StartStreakSweeper(ctx, a.services.gamification, a.Config.Gamification.StreakResetCron); err != nil {
		logger.Log.Error("failed to start streak sweeper", zap.Error(err))
	}

	go func() {
		configPath := filepath.Join(a.Config.ConfigDir, "config.yaml")
		err := configwatcher.WatchConfig(ctx, configPath, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("config watcher disabled", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	// release 模式默认不自动迁移，需显式 -migrate
	migrate := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Sessions: util.NewSessionManager(cfg.Session),
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb, cfg)
	app.services = app.initServices(repos, cfg, db)
	controllers := app.initControllers(app.services, db, rdb, cfg)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	a.startBackgroundTasks(ctx)

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// 停止定时任务与配置监听
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
