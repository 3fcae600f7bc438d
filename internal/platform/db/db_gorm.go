// Package db opens the gorm connection used by every feature adapter.
package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lifetrail/internal/config"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// OpenDB connects to the configured database, retrying for up to a minute
// while the server (postgres in docker-compose, typically) comes up.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var gdb *gorm.DB
	deadline := time.Now().Add(connectTimeout)
	for {
		gdb, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", connectTimeout, err)
		}
		logrus.WithError(err).Warn("db connect failed, retrying")
		time.Sleep(retryInterval)
	}

	logrus.WithFields(logrus.Fields{"driver": cfg.DBDriver}).Info("database connected")
	return gdb, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for the postgres driver")
		}
		return postgres.Open(cfg.DBDSN), nil
	case "sqlite", "":
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}

// Migrate runs AutoMigrate for the given models.
func Migrate(gdb *gorm.DB, models ...any) error {
	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
