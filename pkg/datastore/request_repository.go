package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Bounty")
}

// Create always inserts the request as pending
func (r *requestRepository) Create(ctx context.Context, request *types.Request) (err error) {
	trackDBOp := TrackDBOperation("create", "requests")
	defer func() { trackDBOp(err) }()

	request.Status = types.RequestStatusPending
	request.FulfilledCID = nil
	if err = r.db.WithContext(ctx).Omit("Bounty").Create(request).Error; err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetByID treats an id that is not a UUID as a missing row
func (r *requestRepository) GetByID(ctx context.Context, id string) (_ *types.Request, err error) {
	if _, parseErr := uuid.Parse(id); parseErr != nil {
		return nil, nil
	}

	trackDBOp := TrackDBOperation("read", "requests")
	defer func() { trackDBOp(err) }()

	var request types.Request
	err = r.joined(ctx).First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", id, err)
	}
	return &request, nil
}

func (r *requestRepository) List(ctx context.Context) ([]types.Request, error) {
	return r.list(ctx, r.joined(ctx))
}

func (r *requestRepository) ListByBounty(ctx context.Context, bountyID int64) ([]types.Request, error) {
	return r.list(ctx, r.joined(ctx).Where("requests.bounty_id = ?", bountyID))
}

func (r *requestRepository) ListBySupporter(ctx context.Context, supporter string) ([]types.Request, error) {
	return r.list(ctx, r.joined(ctx).Where("requests.supporter_address = ?", supporter))
}

func (r *requestRepository) ListByCreator(ctx context.Context, creator string) ([]types.Request, error) {
	query := r.joined(ctx).
		Joins("JOIN bounties ON bounties.id = requests.bounty_id").
		Where("bounties.creator_address = ?", creator)
	return r.list(ctx, query)
}

func (r *requestRepository) list(_ context.Context, query *gorm.DB) (_ []types.Request, err error) {
	trackDBOp := TrackDBOperation("list", "requests")
	defer func() { trackDBOp(err) }()

	var requests []types.Request
	if err = query.Order("requests.created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

func (r *requestRepository) Transition(ctx context.Context, id string, from, to types.RequestStatus, fields TransitionFields) (_ *types.Request, err error) {
	trackDBOp := TrackDBOperation("update", "requests")
	defer func() { trackDBOp(err) }()

	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("transition %s -> %s is not allowed", from, to)
	}
	if _, parseErr := uuid.Parse(id); parseErr != nil {
		return nil, ErrTransitionConflict
	}

	updates := map[string]interface{}{"status": string(to)}
	if fields.FulfilledCID != nil {
		updates["fulfilled_cid"] = *fields.FulfilledCID
	}
	if fields.TxHash != nil {
		updates["tx_hash"] = *fields.TxHash
	}

	result := r.db.WithContext(ctx).
		Model(&types.Request{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update request %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransitionConflict
	}

	request, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("request %s disappeared after update", id)
	}
	return request, nil
}
