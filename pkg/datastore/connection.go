package datastore

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/retry"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// gormWriter routes gorm's slow query and error logs to the service logger
type gormWriter struct {
	logger logging.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warnf(format, args...)
}

// Connect opens the pool and pings it, retrying while the database comes up
func Connect(ctx context.Context, config *Config, logger logging.Logger) (*gorm.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dbLogger := gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
		SlowThreshold:             config.SlowThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(postgres.Open(config.DSN), &gorm.Config{
		Logger:                 dbLogger,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	err = retry.RetryFunc(ctx, func() error {
		return ping(ctx, db, config)
	}, config.RetryConfig, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database")
	return db, nil
}

func ping(ctx context.Context, db *gorm.DB, config *Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, config.PingTimeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// AutoMigrate creates or updates the bounties, requests and reputation_events tables
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&types.Bounty{}, &types.Request{}, &types.ReputationEvent{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
