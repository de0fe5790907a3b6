package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/bountyboard/bountyboard-backend/pkg/chain"
	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/ipfs"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
	"github.com/bountyboard/bountyboard-backend/pkg/validator"
)

// Coordinator owns the bounty and request lifecycle. It holds no state of its own:
// every decision is made on a fresh store read.
type Coordinator struct {
	store    datastore.DatastoreService
	chain    chain.Service
	content  ipfs.ContentStore
	notifier ReputationNotifier
	policy   *bluemonday.Policy
	logger   logging.Logger
}

// NewCoordinator builds a Coordinator; content may be nil when pinning is not configured
func NewCoordinator(store datastore.DatastoreService, chainService chain.Service, content ipfs.ContentStore, notifier ReputationNotifier, logger logging.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		chain:    chainService,
		content:  content,
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

func (c *Coordinator) sanitize(s string) string {
	return strings.TrimSpace(c.policy.Sanitize(strings.TrimSpace(s)))
}

func normalizeAddress(address string) (string, error) {
	normalized, err := validator.NormalizeAddress(address)
	if err != nil {
		return "", NewError(ErrValidation, pkgerrors.ErrInvalidAddress)
	}
	return normalized, nil
}

func (c *Coordinator) CreateBounty(ctx context.Context, creator string, input *types.CreateBountyRequest) (*types.Bounty, error) {
	creatorAddress, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}
	contractAddress, err := normalizeAddress(input.ContractAddress)
	if err != nil {
		return nil, err
	}

	name := c.sanitize(input.Name)
	if name == "" {
		return nil, NewError(ErrValidation, "Bounty name is required")
	}
	if input.BasePriceETH.IsNegative() {
		return nil, NewError(ErrValidation, "Base price must not be negative")
	}
	if input.MinimumTokensRequired.IsNegative() {
		return nil, NewError(ErrValidation, "Minimum tokens required must not be negative")
	}

	bounty := &types.Bounty{
		ContractAddress:       contractAddress,
		CreatorAddress:        creatorAddress,
		Name:                  name,
		Description:           c.sanitize(input.Description),
		BasePriceETH:          input.BasePriceETH,
		MinimumTokensRequired: input.MinimumTokensRequired,
	}

	if input.PinMetadata && c.content != nil {
		cid, err := ipfs.PinBountyMetadata(ctx, c.content, bounty.Name, bounty.Description, input.ImageURL)
		if err != nil {
			return nil, wrapError(ErrUpstream, pkgerrors.ErrPinFailed, err)
		}
		bounty.MetadataCID = cid
	}

	if err := c.store.Bounty().Create(ctx, bounty); err != nil {
		return nil, err
	}

	c.logger.Info("Bounty created", "bounty_id", bounty.ID, "creator", creatorAddress, "contract", contractAddress)
	return bounty, nil
}

// SubmitRequest inserts a pending request. Token eligibility is checked by the caller through CheckEligibility.
func (c *Coordinator) SubmitRequest(ctx context.Context, supporter string, input *types.CreateRequestRequest) (*types.Request, error) {
	supporterAddress, err := normalizeAddress(supporter)
	if err != nil {
		return nil, err
	}
	prompt := c.sanitize(input.Prompt)
	if prompt == "" {
		return nil, NewError(ErrValidation, "Prompt is required")
	}

	var txHash *string
	if hash := strings.TrimSpace(input.TxHash); hash != "" {
		if !validator.IsValidTxHash(hash) {
			return nil, NewError(ErrValidation, pkgerrors.ErrInvalidTxHash)
		}
		txHash = &hash
	}

	bounty, err := c.store.Bounty().GetByID(ctx, input.BountyID)
	if err != nil {
		return nil, err
	}
	if bounty == nil {
		return nil, NewError(ErrNotFound, pkgerrors.ErrBountyNotFound)
	}

	request := &types.Request{
		BountyID:         bounty.ID,
		SupporterAddress: supporterAddress,
		Prompt:           prompt,
		TxHash:           txHash,
	}

	if input.PinMetadata && c.content != nil {
		cid, err := ipfs.PinRequestMetadata(ctx, c.content, prompt, bounty.Name, supporterAddress)
		if err != nil {
			return nil, wrapError(ErrUpstream, pkgerrors.ErrPinFailed, err)
		}
		request.MetadataCID = &cid
	}

	if err := c.store.Request().Create(ctx, request); err != nil {
		return nil, err
	}
	request.Bounty = bounty

	c.logger.Info("Request submitted", "request_id", request.ID, "bounty_id", bounty.ID, "supporter", supporterAddress)
	return request, nil
}

func (c *Coordinator) tokenDecimals(ctx context.Context, token string) uint8 {
	decimals, err := c.chain.Decimals(ctx, token)
	if err != nil {
		c.logger.Warn("Failed to read token decimals, assuming 18", "token", token, "error", err)
		return chain.EtherDecimals
	}
	return decimals
}

// CheckEligibility compares the supporter's token balance with the bounty minimum.
// An unreadable balance counts as zero.
func (c *Coordinator) CheckEligibility(ctx context.Context, bountyID int64, supporter string) (*types.EligibilityResponse, error) {
	supporterAddress, err := normalizeAddress(supporter)
	if err != nil {
		return nil, err
	}
	bounty, err := c.GetBounty(ctx, bountyID)
	if err != nil {
		return nil, err
	}

	balance, err := c.chain.BalanceOf(ctx, bounty.ContractAddress, supporterAddress)
	if err != nil {
		c.logger.Warn("Failed to read token balance, treating as zero",
			"token", bounty.ContractAddress, "holder", supporterAddress, "error", err)
		balance = new(big.Int)
	}

	required, err := chain.ToBaseUnits(bounty.MinimumTokensRequired, c.tokenDecimals(ctx, bounty.ContractAddress))
	if err != nil {
		return nil, fmt.Errorf("invalid minimum tokens on bounty %d: %w", bounty.ID, err)
	}

	return &types.EligibilityResponse{
		BountyID:         bounty.ID,
		SupporterAddress: supporterAddress,
		Balance:          types.NewBigInt(balance),
		Required:         types.NewBigInt(required),
		Eligible:         balance.Cmp(required) >= 0,
	}, nil
}

// loadOwnedRequest reads the request and checks that creator owns its bounty
func (c *Coordinator) loadOwnedRequest(ctx context.Context, requestID string, creator string) (*types.Request, error) {
	request, err := c.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Bounty == nil || !validator.SameAddress(request.Bounty.CreatorAddress, creator) {
		return nil, NewError(ErrForbidden, pkgerrors.ErrForbidden)
	}
	return request, nil
}

func (c *Coordinator) transition(ctx context.Context, request *types.Request, to types.RequestStatus, fields datastore.TransitionFields) (*types.Request, error) {
	if !request.Status.CanTransitionTo(to) {
		RequestTransitionsTotal.WithLabelValues(string(to), "rejected").Inc()
		return nil, NewError(ErrPrecondition, fmt.Sprintf("Request is %s and cannot become %s", request.Status, to))
	}

	updated, err := c.store.Request().Transition(ctx, request.ID, request.Status, to, fields)
	if errors.Is(err, datastore.ErrTransitionConflict) {
		RequestTransitionsTotal.WithLabelValues(string(to), "conflict").Inc()
		return nil, wrapError(ErrConflict, pkgerrors.ErrTransitionConflict, err)
	}
	if err != nil {
		RequestTransitionsTotal.WithLabelValues(string(to), "error").Inc()
		return nil, err
	}
	RequestTransitionsTotal.WithLabelValues(string(to), "success").Inc()
	return updated, nil
}

// FulfillRequest completes a pending request with the delivered content CID and credits the creator
func (c *Coordinator) FulfillRequest(ctx context.Context, creator string, requestID string, cid string) (*types.Request, error) {
	cid = strings.TrimSpace(cid)
	if !ipfs.IsValidCID(cid) {
		return nil, NewError(ErrValidation, pkgerrors.ErrInvalidCID)
	}
	creatorAddress, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}

	request, err := c.loadOwnedRequest(ctx, requestID, creatorAddress)
	if err != nil {
		return nil, err
	}

	updated, err := c.transition(ctx, request, types.RequestStatusCompleted, datastore.TransitionFields{FulfilledCID: &cid})
	if err != nil {
		return nil, err
	}
	c.logger.Info("Request fulfilled", "request_id", requestID, "creator", creatorAddress, "cid", cid)

	c.notifier.Notify(context.WithoutCancel(ctx), creatorAddress, requestID, true)
	return updated, nil
}

// RejectRequest rejects a pending request and records a dispute against the creator
func (c *Coordinator) RejectRequest(ctx context.Context, creator string, requestID string) (*types.Request, error) {
	creatorAddress, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}

	request, err := c.loadOwnedRequest(ctx, requestID, creatorAddress)
	if err != nil {
		return nil, err
	}

	updated, err := c.transition(ctx, request, types.RequestStatusRejected, datastore.TransitionFields{})
	if err != nil {
		return nil, err
	}
	c.logger.Info("Request rejected", "request_id", requestID, "creator", creatorAddress)

	c.notifier.Notify(context.WithoutCancel(ctx), creatorAddress, requestID, false)
	return updated, nil
}

// ReleasePayment marks a completed request paid with the supporter's transfer hash.
// The transfer itself is not verified on chain.
func (c *Coordinator) ReleasePayment(ctx context.Context, supporter string, requestID string, txHash string) (*types.Request, error) {
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return nil, NewError(ErrValidation, pkgerrors.ErrMissingFields)
	}
	if !validator.IsValidTxHash(txHash) {
		return nil, NewError(ErrValidation, pkgerrors.ErrInvalidTxHash)
	}
	supporterAddress, err := normalizeAddress(supporter)
	if err != nil {
		return nil, err
	}

	request, err := c.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !validator.SameAddress(request.SupporterAddress, supporterAddress) {
		return nil, NewError(ErrForbidden, pkgerrors.ErrForbidden)
	}
	if request.Status != types.RequestStatusCompleted {
		return nil, NewError(ErrPrecondition, pkgerrors.ErrNotCompleted)
	}

	updated, err := c.transition(ctx, request, types.RequestStatusPaid, datastore.TransitionFields{TxHash: &txHash})
	if err != nil {
		return nil, err
	}
	c.logger.Info("Payment released", "request_id", requestID, "supporter", supporterAddress, "tx_hash", txHash)
	return updated, nil
}

// SubmitRating relays a supporter's rating of a creator to the reputation contract
func (c *Coordinator) SubmitRating(ctx context.Context, supporter string, input *types.SubmitRatingRequest) (*types.TransactionResponse, error) {
	supporterAddress, err := normalizeAddress(supporter)
	if err != nil {
		return nil, err
	}
	creatorAddress, err := normalizeAddress(input.CreatorAddress)
	if err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, NewError(ErrValidation, "Rating must be between 1 and 5")
	}
	comment := c.sanitize(input.Comment)
	if comment == "" {
		return nil, NewError(ErrValidation, "Comment is required")
	}

	txHash, err := c.chain.SubmitRating(ctx, creatorAddress, supporterAddress, input.Rating, comment)
	if err != nil {
		return nil, wrapError(ErrUpstream, pkgerrors.ErrChainCallFailed, err)
	}

	c.logger.Info("Rating submitted", "creator", creatorAddress, "supporter", supporterAddress, "rating", input.Rating, "tx_hash", txHash)
	return &types.TransactionResponse{Success: true, TxHash: txHash, Message: "Rating submitted"}, nil
}

// GetReputation falls back to the default reputation when the contract cannot be read
func (c *Coordinator) GetReputation(ctx context.Context, creator string) (*types.ReputationResponse, error) {
	creatorAddress, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}

	fallback := false
	reputation, err := c.chain.GetReputation(ctx, creatorAddress)
	if err != nil {
		c.logger.Warn("Failed to read reputation, using default", "creator", creatorAddress, "error", err)
		reputation = types.DefaultReputation(creatorAddress)
		fallback = true
	}

	return &types.ReputationResponse{
		Reputation:     reputation,
		Level:          reputation.Level(),
		CompletionRate: reputation.CompletionRate(),
		Fallback:       fallback,
	}, nil
}

// TransferPlan describes the token transfer the supporter signs before calling ReleasePayment
func (c *Coordinator) TransferPlan(ctx context.Context, requestID string) (*types.TransferPlan, error) {
	request, err := c.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	bounty := request.Bounty
	if bounty == nil {
		return nil, fmt.Errorf("request %s has no bounty", requestID)
	}

	// base_price_eth is always priced in 18-decimals units regardless of the token's decimals()
	amount, err := chain.ToBaseUnits(bounty.BasePriceETH, chain.EtherDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid base price on bounty %d: %w", bounty.ID, err)
	}

	return &types.TransferPlan{
		RequestID:     request.ID,
		TokenContract: bounty.ContractAddress,
		From:          request.SupporterAddress,
		To:            bounty.CreatorAddress,
		AmountETH:     bounty.BasePriceETH.String(),
		Amount:        types.NewBigInt(amount),
		Decimals:      chain.EtherDecimals,
	}, nil
}

func (c *Coordinator) TransactionStatus(ctx context.Context, txHash string) (*types.TransactionStatusResponse, error) {
	if !validator.IsValidTxHash(txHash) {
		return nil, NewError(ErrValidation, pkgerrors.ErrInvalidTxHash)
	}
	status, err := c.chain.TransactionStatus(ctx, txHash)
	if err != nil {
		return nil, wrapError(ErrUpstream, pkgerrors.ErrChainCallFailed, err)
	}
	return status, nil
}
