package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lifetrail/internal/app/di"
	"lifetrail/internal/app/router"
	"lifetrail/internal/config"
	"lifetrail/internal/platform/db"
	"lifetrail/internal/platform/logger"
	platformredis "lifetrail/internal/platform/redis"
	"lifetrail/internal/platform/validation"
	"lifetrail/internal/web"
)

const (
	shutdownTimeout    = 10 * time.Second
	sessionPurgePeriod = time.Hour
)

func main() {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil {
		logrus.Info(".env not found; using system environment variables")
	}

	cfg := config.Load()
	log := logger.Init(cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	// JWT_SECRET and SESSION_SECRET check
	filled, err := cfg.ApplySecretDefaults()
	if err != nil {
		log.WithError(err).Fatal("refusing to start without secrets")
	}
	for _, name := range filled {
		log.Warnf("%s is not set. Using a development secret; set a strong secret in production.", name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb, di.Models()...); err != nil {
			log.WithError(err).Fatal("failed to migrate database")
		}
	}

	// Redis
	rdb, err := platformredis.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		log.Warn("Redis unavailable. Running with database sessions and without cache.")
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Error("failed to close Redis client")
			}
		}()
	}

	media, err := di.NewMediaStorage(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize media storage")
	}

	tmpl, err := web.Templates(cfg.Location())
	if err != nil {
		log.WithError(err).Fatal("failed to parse templates")
	}

	app := di.Build(cfg, gdb, rdb, media)

	r := router.NewRouter(router.Handlers{
		Auth:      app.Auth,
		Profile:   app.Profile,
		Dashboard: app.Dashboard,
		Location:  app.Location,
		CheckIn:   app.CheckIn,
		Activity:  app.Activity,
		Music:     app.Music,
		Media:     app.Media,
		Health:    app.Health,
	}, router.Options{
		Templates:    tmpl,
		JWTSecret:    cfg.JWTSecret,
		Sessions:     app.Sessions,
		Cookie:       app.Cookie,
		CORSOrigins:  cfg.CORSOrigins(),
		MaxBodyBytes: int64(cfg.MaxUploadMB) << 20,
		Logger:       log,
	})

	go purgeSessions(ctx, app.Sessions, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// purgeSessions removes expired sessions every hour until ctx is done.
func purgeSessions(ctx context.Context, sessions di.SessionKeeper, log logrus.FieldLogger) {
	ticker := time.NewTicker(sessionPurgePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.PurgeExpiredSessions(ctx)
			if err != nil {
				log.WithError(err).Warn("failed to purge expired sessions")
				continue
			}
			if n > 0 {
				log.WithField("count", n).Info("purged expired sessions")
			}
		}
	}
}
