package datastore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// DatastoreService is the main service interface for database operations
type DatastoreService interface {
	Bounty() BountyRepository
	Request() RequestRepository
	Outbox() OutboxRepository

	HealthCheck(ctx context.Context) error
	Close()
}

type datastoreService struct {
	db       *gorm.DB
	bounties BountyRepository
	requests RequestRepository
	outbox   OutboxRepository
	logger   logging.Logger
}

// NewService connects to the database and builds the repositories
func NewService(ctx context.Context, config *Config, logger logging.Logger) (DatastoreService, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	db, err := Connect(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	return NewServiceFromDB(db, logger), nil
}

func NewServiceFromDB(db *gorm.DB, logger logging.Logger) DatastoreService {
	return &datastoreService{
		db:       db,
		bounties: NewBountyRepository(db),
		requests: NewRequestRepository(db),
		outbox:   NewOutboxRepository(db),
		logger:   logger,
	}
}

func (ds *datastoreService) Bounty() BountyRepository   { return ds.bounties }
func (ds *datastoreService) Request() RequestRepository { return ds.requests }
func (ds *datastoreService) Outbox() OutboxRepository   { return ds.outbox }

func (ds *datastoreService) HealthCheck(ctx context.Context) error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (ds *datastoreService) Close() {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		ds.logger.Warnf("Failed to close database: %v", err)
	}
}
