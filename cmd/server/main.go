package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	camerareviewapp "github.com/transitops/backend/internal/application/camerareview"
	maintenanceapp "github.com/transitops/backend/internal/application/maintenance"
	monitoringapp "github.com/transitops/backend/internal/application/monitoring"
	occurrenceapp "github.com/transitops/backend/internal/application/occurrence"
	referenceapp "github.com/transitops/backend/internal/application/reference"
	sacapp "github.com/transitops/backend/internal/application/sac"
	"github.com/transitops/backend/internal/infrastructure/auth"
	"github.com/transitops/backend/internal/infrastructure/cache"
	"github.com/transitops/backend/internal/infrastructure/config"
	"github.com/transitops/backend/internal/infrastructure/logger"
	"github.com/transitops/backend/internal/infrastructure/persistence"
	"github.com/transitops/backend/internal/interfaces/http/handler"
	"github.com/transitops/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting operations portal backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	var referenceCache cache.ReferenceCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisReferenceCacheFromAddr(
			cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB,
			cache.WithKeyPrefix(cfg.Cache.KeyPrefix),
			cache.WithRedisLogger(log),
		)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		referenceCache = redisCache
		log.Info("Redis reference cache connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		referenceCache = cache.NewInMemoryReferenceCache()
		log.Info("Using in-memory reference cache")
	}
	defer func() {
		if err := referenceCache.Close(); err != nil {
			log.Error("Error closing reference cache", zap.Error(err))
		}
	}()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpiration)

	// Repositories
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	monitoringRepo := persistence.NewGormMonitoringRepository(db.DB)
	cameraReviewRepo := persistence.NewGormCameraReviewRepository(db.DB)
	sacRepo := persistence.NewGormSacRepository(db.DB)
	occurrenceRepo := persistence.NewGormOccurrenceRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	referenceSource := persistence.NewGormReferenceSource(db.DB)

	// Application services
	referenceService := referenceapp.NewService(referenceSource, referenceCache, log)
	maintenanceService := maintenanceapp.NewService(maintenanceRepo, auditRepo, log)
	monitoringService := monitoringapp.NewService(monitoringRepo, auditRepo, log)
	cameraReviewService := camerareviewapp.NewService(cameraReviewRepo, auditRepo, referenceService, log)
	sacService := sacapp.NewService(sacRepo, auditRepo, log)
	occurrenceService := occurrenceapp.NewService(occurrenceRepo, auditRepo, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.NewEngine(jwtService, log)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db, version))
	r.Register(handler.NewMaintenanceHandler(maintenanceService))
	r.Register(handler.NewMonitoringHandler(monitoringService))
	r.Register(handler.NewCameraReviewHandler(cameraReviewService))
	r.Register(handler.NewSacHandler(sacService))
	r.Register(handler.NewOccurrenceHandler(occurrenceService))
	r.Register(handler.NewReferenceHandler(referenceService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
