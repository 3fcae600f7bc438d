package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lifetrail/internal/config"
	accountsadapters "lifetrail/internal/feature/accounts/adapters"
	accountsentity "lifetrail/internal/feature/accounts/domain/entity"
	accountshandler "lifetrail/internal/feature/accounts/transport/handler"
	accountsusecase "lifetrail/internal/feature/accounts/usecase"
	activityadapters "lifetrail/internal/feature/activity/adapters"
	activityentity "lifetrail/internal/feature/activity/domain/entity"
	activityhandler "lifetrail/internal/feature/activity/transport/handler"
	activityusecase "lifetrail/internal/feature/activity/usecase"
	checkinadapters "lifetrail/internal/feature/checkin/adapters"
	checkinentity "lifetrail/internal/feature/checkin/domain/entity"
	checkinhandler "lifetrail/internal/feature/checkin/transport/handler"
	checkinusecase "lifetrail/internal/feature/checkin/usecase"
	dashboardhandler "lifetrail/internal/feature/dashboard/transport/handler"
	dashboardusecase "lifetrail/internal/feature/dashboard/usecase"
	locationadapters "lifetrail/internal/feature/location/adapters"
	locationentity "lifetrail/internal/feature/location/domain/entity"
	locationhandler "lifetrail/internal/feature/location/transport/handler"
	locationusecase "lifetrail/internal/feature/location/usecase"
	musicadapters "lifetrail/internal/feature/music/adapters"
	musicentity "lifetrail/internal/feature/music/domain/entity"
	musichandler "lifetrail/internal/feature/music/transport/handler"
	musicusecase "lifetrail/internal/feature/music/usecase"
	"lifetrail/internal/platform/cache"
	"lifetrail/internal/platform/flash"
	platformhandler "lifetrail/internal/platform/http/handler"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/platform/storage"
	"lifetrail/internal/shared/ratelimiter"
)

// Models returns every persisted model in migration order.
func Models() []any {
	return []any{
		&accountsentity.User{},
		&accountsentity.Profile{},
		&accountsadapters.SessionRecord{},
		&locationentity.Location{},
		&checkinentity.CheckIn{},
		&activityentity.Activity{},
		&musicentity.Music{},
	}
}

// SessionKeeper validates auth cookies and purges expired sessions.
type SessionKeeper interface {
	ValidateSession(ctx context.Context, sessionID string, userID uint) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Container holds the fully wired page handlers.
type Container struct {
	Auth      *accountshandler.AuthHandler
	Profile   *accountshandler.ProfileHandler
	Dashboard *dashboardhandler.DashboardHandler
	Location  *locationhandler.LocationHandler
	CheckIn   *checkinhandler.CheckInHandler
	Activity  *activityhandler.ActivityHandler
	Music     *musichandler.MusicHandler
	Media     *platformhandler.MediaHandler
	Health    *platformhandler.HealthHandler

	Sessions SessionKeeper
	Cookie   jwtmw.CookieOptions
}

// Build wires repositories, usecases and handlers. rdb may be nil.
func Build(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, media storage.Storage) *Container {
	loc := cfg.Location()
	flashes := flash.NewStore(cfg.SessionSecret, cfg.CookieSecure)
	cookie := jwtmw.CookieOptions{MaxAge: int(cfg.SessionTTL.Seconds()), Secure: cfg.CookieSecure}

	// Repository
	sessionRepo := NewSessionRepository(rdb, gdb)
	userRepo := accountsadapters.NewUserGorm(gdb,
		&musicentity.Music{},
		&activityentity.Activity{},
		&checkinentity.CheckIn{},
		&locationentity.Location{},
		&accountsadapters.SessionRecord{},
	)
	locationRepo := locationadapters.NewLocationGorm(gdb, &checkinentity.CheckIn{}, &activityentity.Activity{})
	checkinRepo := checkinadapters.NewCheckInGorm(gdb)
	musicRepo := musicadapters.NewMusicGorm(gdb)

	// Wrap with the Redis cache
	activityRepo := cache.NewCachingActivityRepository(rdb, cfg.CacheTTL, activityadapters.NewActivityGorm(gdb), "activities")

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.SessionTTL)
	authUC := accountsusecase.NewAuthUsecase(userRepo, sessionRepo, tokens, cfg.SessionTTL)
	locationUC := locationusecase.NewLocationUsecase(locationRepo).WithListeners(activityRepo)
	checkinUC := checkinusecase.NewCheckInUsecase(checkinRepo, locationUC, loc)
	activityUC := activityusecase.NewActivityUsecase(activityRepo, locationUC)
	musicUC := musicusecase.NewMusicUsecase(musicRepo, media)
	profileUC := accountsusecase.NewProfileUsecase(userRepo, sessionRepo, media).
		WithMediaOwners(musicUC).
		WithAccountListeners(activityRepo)
	dashboardUC := dashboardusecase.NewDashboardUsecase(profileUC, checkinUC, locationUC, activityUC)

	// Handler
	limiter := ratelimiter.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	checks := []platformhandler.Check{{Name: "db", Ping: func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return fmt.Errorf("db handle: %w", err)
		}
		return sqlDB.PingContext(ctx)
	}}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	return &Container{
		Auth:      accountshandler.NewAuthHandler(authUC, flashes, limiter, cfg.JWTSecret, cookie),
		Profile:   accountshandler.NewProfileHandler(profileUC, flashes, cookie),
		Dashboard: dashboardhandler.NewDashboardHandler(dashboardUC, flashes),
		Location:  locationhandler.NewLocationHandler(locationUC, flashes),
		CheckIn:   checkinhandler.NewCheckInHandler(checkinUC, locationUC, flashes),
		Activity:  activityhandler.NewActivityHandler(activityUC, locationUC, flashes, loc),
		Music:     musichandler.NewMusicHandler(musicUC, flashes),
		Media:     platformhandler.NewMediaHandler(media, profileUC, musicUC),
		Health:    platformhandler.NewHealthHandler(checks...),

		Sessions: authUC,
		Cookie:   cookie,
	}
}
