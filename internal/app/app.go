package app

import (
	"context"
	"exam_integrity_backend/internal/config"
	"exam_integrity_backend/internal/controller"
	"exam_integrity_backend/internal/repository"
	"exam_integrity_backend/internal/service"
	"exam_integrity_backend/pkg/configwatcher"
	"exam_integrity_backend/pkg/database"
	"exam_integrity_backend/pkg/logger"
	"exam_integrity_backend/pkg/monitoring"
	"exam_integrity_backend/pkg/security"
	"exam_integrity_backend/pkg/tracing"
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
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	services        *services
	configCallbacks []func(*config.Config)
	stopWatch       chan struct{}
}

type repositories struct {
	attempt       *repository.ExamAttemptRepository
	proctorEvent  *repository.ProctorEventRepository
	answerSegment *repository.AnswerSegmentRepository
}

type services struct {
	storage   *service.StorageService
	integrity *service.IntegrityService
}

type controllers struct {
	integrity *controller.IntegrityController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		attempt:       repository.NewExamAttemptRepository(db),
		proctorEvent:  repository.NewProctorEventRepository(db),
		answerSegment: repository.NewAnswerSegmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)

	// Redis 不可用时不缓存，分析照常进行
	var cache service.ReportCache
	if rdb != nil {
		cache = service.NewRedisReportCache(rdb)
	}

	s.integrity = service.NewIntegrityService(
		repos.attempt,
		repos.proctorEvent,
		repos.answerSegment,
		cache,
		s.storage,
		cfg.Integrity,
	)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.integrity.UpdateConfig(newCfg.Integrity)
	})

	return s
}

func (a *App) initControllers(s *services) *controllers {
	var redisPinger controller.Pinger
	if a.Redis != nil {
		redisPinger = controller.PingerFunc(func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		})
	}

	dbPinger := controller.PingerFunc(func(ctx context.Context) error {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	return &controllers{
		integrity: controller.NewIntegrityController(s.integrity),
		health:    controller.NewHealthController(dbPinger, redisPinger),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startConfigWatcher 配置文件变更后依次通知已注册的回调
func (a *App) startConfigWatcher() {
	a.stopWatch = make(chan struct{})
	configFile := filepath.Join(a.ConfigDir, "config.yaml")

	go func() {
		err := configwatcher.WatchConfig(configFile, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		}, a.stopWatch)
		if err != nil {
			logger.Log.Error("配置监听启动失败", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}

	if cfg.MigrateOnly {
		return app
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	cancel()
	if err != nil {
		logger.Log.Warn("Redis 不可用，完整性报告不做缓存", zap.Error(err))
	} else {
		app.Redis = rdb
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, app.Redis)
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services.storage, cfg)

	app.startConfigWatcher()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopWatch != nil {
		close(a.stopWatch)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
