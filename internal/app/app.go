package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edutech_backend/internal/config"
	"edutech_backend/internal/controller"
	"edutech_backend/internal/event"
	"edutech_backend/internal/repository"
	"edutech_backend/internal/service"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/configwatcher"
	"edutech_backend/pkg/database"
	"edutech_backend/pkg/logger"
	"edutech_backend/pkg/monitoring"
	"edutech_backend/pkg/security"
	"edutech_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Mongo           *mongo.Client
	DB              *gorm.DB
	Redis           *redis.Client
	Publisher       event.Publisher
	tracer          *sdktrace.TracerProvider
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user   repository.UserRepository
	result repository.ResultRepository
	pinger repository.Pinger
}

type services struct {
	auth   *service.AuthService
	user   *service.UserService
	quiz   *service.QuizService
	result *service.ResultService
	ai     *service.AIService
}

type controllers struct {
	auth   *controller.AuthController
	user   *controller.UserController
	quiz   *controller.QuizController
	result *controller.ResultController
	ai     *controller.AIController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initRepositories 按 database.driver 建立连接并选择存储实现
func (a *App) initRepositories(cfg *config.Config) (*repositories, error) {
	var repos *repositories

	switch cfg.Database.Driver {
	case util.DriverMongo:
		client, db, err := database.InitMongo(&cfg.Database.Mongo)
		if err != nil {
			return nil, err
		}
		a.Mongo = client
		repos = &repositories{
			user:   repository.NewMongoUserRepository(db),
			result: repository.NewMongoResultRepository(db),
			pinger: repository.MongoPinger{Client: client},
		}
	case util.DriverMySQL:
		db, err := database.InitMySQL(&cfg.Database.MySQL, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			return nil, err
		}
		a.DB = db
		repos = &repositories{
			user:   repository.NewGormUserRepository(db),
			result: repository.NewGormResultRepository(db),
			pinger: repository.GormPinger{DB: db},
		}
	case util.DriverMemory:
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		repos = &repositories{
			user:   repository.NewMemoryUserRepository(),
			result: repository.NewMemoryResultRepository(),
			pinger: repository.NopPinger{},
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			// 缓存不可用时不影响启动
			logger.Log.Warn("Failed to initialize redis, result cache disabled", zap.Error(err))
		} else {
			a.Redis = rdb
			repos.result = repository.NewCachedResultRepository(repos.result, rdb, cfg.Redis.CacheTTL)
		}
	}

	return repos, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	quiz := service.NewQuizService(repos.result, repos.user, a.Publisher, cfg.Quiz.MaxPerTrack)
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		if newCfg.Quiz.MaxPerTrack != quiz.MaxPerTrack() {
			logger.Log.Info("maxPerTrack updated", zap.Int("value", newCfg.Quiz.MaxPerTrack))
		}
		quiz.SetMaxPerTrack(newCfg.Quiz.MaxPerTrack)
	})

	return &services{
		auth:   service.NewAuthService(repos.user, cfg),
		user:   service.NewUserService(repos.user),
		quiz:   quiz,
		result: service.NewResultService(repos.result),
		ai:     service.NewAIService(cfg.AI),
	}
}

func (a *App) initControllers(s *services, repos *repositories, cfg *config.Config) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		user:   controller.NewUserController(s.user),
		quiz:   controller.NewQuizController(s.quiz),
		result: controller.NewResultController(s.result),
		ai:     controller.NewAIController(s.ai),
		health: controller.NewHealthController(repos.pinger, cfg.Database.Driver),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	app := &App{Config: cfg}

	publisher, err := event.NewEventPublisher(cfg.Events.URI, cfg.Events.Exchange)
	if err != nil {
		// 事件是尽力而为的，连接失败时关闭发布
		logger.Log.Warn("Failed to initialize event publisher, events disabled", zap.Error(err))
		publisher, _ = event.NewEventPublisher("", cfg.Events.Exchange)
	}
	app.Publisher = publisher

	repos, err := app.initRepositories(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos, cfg)

	if err := services.auth.EnsureDefaultAdmin(context.Background()); err != nil {
		logger.Log.Error("Failed to ensure default admin", zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.Config.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放外部连接
func (a *App) Close(ctx context.Context) {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			logger.Log.Error("Failed to close event publisher", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			logger.Log.Error("Failed to disconnect mongo", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}
