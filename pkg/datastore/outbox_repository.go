package datastore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Create(ctx context.Context, event *types.ReputationEvent) (err error) {
	trackDBOp := TrackDBOperation("create", "reputation_events")
	defer func() { trackDBOp(err) }()

	if err = r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create reputation event: %w", err)
	}
	return nil
}

func (r *outboxRepository) pending(ctx context.Context, maxAttempts int) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&types.ReputationEvent{}).
		Where("delivered_at IS NULL AND attempts < ?", maxAttempts)
}

// ListPending returns undelivered events oldest first
func (r *outboxRepository) ListPending(ctx context.Context, limit int, maxAttempts int) (_ []types.ReputationEvent, err error) {
	trackDBOp := TrackDBOperation("list", "reputation_events")
	defer func() { trackDBOp(err) }()

	var events []types.ReputationEvent
	if err = r.pending(ctx, maxAttempts).Order("created_at ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending reputation events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) CountPending(ctx context.Context, maxAttempts int) (count int64, err error) {
	trackDBOp := TrackDBOperation("count", "reputation_events")
	defer func() { trackDBOp(err) }()

	if err = r.pending(ctx, maxAttempts).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending reputation events: %w", err)
	}
	return count, nil
}

func (r *outboxRepository) MarkDelivered(ctx context.Context, id string, txHash string) (err error) {
	trackDBOp := TrackDBOperation("update", "reputation_events")
	defer func() { trackDBOp(err) }()

	now := time.Now().UTC()
	err = r.db.WithContext(ctx).
		Model(&types.ReputationEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivered_at": now,
			"tx_hash":      txHash,
			"attempts":     gorm.Expr("attempts + 1"),
			"last_error":   "",
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark reputation event %s delivered: %w", id, err)
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) (err error) {
	trackDBOp := TrackDBOperation("update", "reputation_events")
	defer func() { trackDBOp(err) }()

	err = r.db.WithContext(ctx).
		Model(&types.ReputationEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record failure of reputation event %s: %w", id, err)
	}
	return nil
}
