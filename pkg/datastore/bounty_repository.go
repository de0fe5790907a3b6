package datastore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type bountyRepository struct {
	db *gorm.DB
}

func NewBountyRepository(db *gorm.DB) BountyRepository {
	return &bountyRepository{db: db}
}

func (r *bountyRepository) Create(ctx context.Context, bounty *types.Bounty) (err error) {
	trackDBOp := TrackDBOperation("create", "bounties")
	defer func() { trackDBOp(err) }()

	if err = r.db.WithContext(ctx).Create(bounty).Error; err != nil {
		return fmt.Errorf("failed to create bounty: %w", err)
	}
	return nil
}

func (r *bountyRepository) GetByID(ctx context.Context, id int64) (_ *types.Bounty, err error) {
	trackDBOp := TrackDBOperation("read", "bounties")
	defer func() { trackDBOp(err) }()

	var bounty types.Bounty
	err = r.db.WithContext(ctx).First(&bounty, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bounty %d: %w", id, err)
	}
	return &bounty, nil
}

func (r *bountyRepository) List(ctx context.Context) (_ []types.Bounty, err error) {
	trackDBOp := TrackDBOperation("list", "bounties")
	defer func() { trackDBOp(err) }()

	var bounties []types.Bounty
	if err = r.db.WithContext(ctx).Order("created_at DESC").Find(&bounties).Error; err != nil {
		return nil, fmt.Errorf("failed to list bounties: %w", err)
	}
	return bounties, nil
}

func (r *bountyRepository) ListByCreator(ctx context.Context, creator string) (_ []types.Bounty, err error) {
	trackDBOp := TrackDBOperation("list", "bounties")
	defer func() { trackDBOp(err) }()

	var bounties []types.Bounty
	err = r.db.WithContext(ctx).
		Where("creator_address = ?", creator).
		Order("created_at DESC").
		Find(&bounties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bounties of %s: %w", creator, err)
	}
	return bounties, nil
}
