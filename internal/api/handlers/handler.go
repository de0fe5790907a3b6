package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	"github.com/bountyboard/bountyboard-backend/internal/lifecycle"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/ipfs"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
	"github.com/bountyboard/bountyboard-backend/pkg/validator"
)

// Lifecycle is implemented by *lifecycle.Coordinator
type Lifecycle interface {
	CreateBounty(ctx context.Context, creator string, input *types.CreateBountyRequest) (*types.Bounty, error)
	SubmitRequest(ctx context.Context, supporter string, input *types.CreateRequestRequest) (*types.Request, error)
	CheckEligibility(ctx context.Context, bountyID int64, supporter string) (*types.EligibilityResponse, error)
	FulfillRequest(ctx context.Context, creator string, requestID string, cid string) (*types.Request, error)
	RejectRequest(ctx context.Context, creator string, requestID string) (*types.Request, error)
	ReleasePayment(ctx context.Context, supporter string, requestID string, txHash string) (*types.Request, error)
	SubmitRating(ctx context.Context, supporter string, input *types.SubmitRatingRequest) (*types.TransactionResponse, error)
	GetReputation(ctx context.Context, creator string) (*types.ReputationResponse, error)
	TransferPlan(ctx context.Context, requestID string) (*types.TransferPlan, error)
	TransactionStatus(ctx context.Context, txHash string) (*types.TransactionStatusResponse, error)

	GetBounty(ctx context.Context, id int64) (*types.Bounty, error)
	GetRequest(ctx context.Context, id string) (*types.Request, error)
	ListBounties(ctx context.Context) ([]types.Bounty, error)
	ListBountiesByCreator(ctx context.Context, creator string) ([]types.Bounty, error)
	ListRequestsByBounty(ctx context.Context, bountyID int64) ([]types.Request, error)
	ListRequestsByCreator(ctx context.Context, creator string) ([]types.Request, error)
	ListRequestsBySupporter(ctx context.Context, supporter string) ([]types.Request, error)
}

var _ Lifecycle = (*lifecycle.Coordinator)(nil)

// Authenticator is implemented by *auth.Service
type Authenticator interface {
	Challenge(ctx context.Context, address string) (*types.NonceResponse, error)
	Login(ctx context.Context, address string, signature string) (*types.VerifyResponse, error)
}

type Dispenser interface {
	Dispense(ctx context.Context, contract, to, amount string) (string, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Dependencies struct {
	Lifecycle Lifecycle
	Auth      Authenticator
	Content   ipfs.ContentStore
	Faucet    Dispenser
	Health    HealthChecker
	// AuthDisabled trusts the wallet address sent in request bodies
	AuthDisabled bool
	Version      string
}

type Handler struct {
	lifecycle    Lifecycle
	auth         Authenticator
	content      ipfs.ContentStore
	faucet       Dispenser
	health       HealthChecker
	authDisabled bool
	version      string
	logger       logging.Logger
}

func NewHandler(deps Dependencies, logger logging.Logger) *Handler {
	return &Handler{
		lifecycle:    deps.Lifecycle,
		auth:         deps.Auth,
		content:      deps.Content,
		faucet:       deps.Faucet,
		health:       deps.Health,
		authDisabled: deps.AuthDisabled,
		version:      deps.Version,
		logger:       logger,
	}
}

// respondError maps lifecycle error kinds onto status codes; anything unclassified is a 500 with fallback as the message
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLogger(c)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, lifecycle.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lifecycle.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, lifecycle.ErrPrecondition), errors.Is(err, lifecycle.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, lifecycle.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	} else {
		logger.Warnf("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": lifecycle.UserMessage(err, fallback)})
}

// caller resolves the acting wallet. A signed-in wallet wins and must agree with any address
// claimed in the body; with auth disabled the claimed address is trusted.
func (h *Handler) caller(c *gin.Context, claimed string) (string, bool) {
	if address, ok := middleware.GetCaller(c); ok {
		if claimed != "" && !validator.SameAddress(claimed, address) {
			c.JSON(http.StatusForbidden, gin.H{"error": pkgerrors.ErrForbidden})
			return "", false
		}
		return address, true
	}

	if !h.authDisabled {
		c.JSON(http.StatusUnauthorized, gin.H{"error": pkgerrors.ErrUnauthorized})
		return "", false
	}
	if claimed == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrMissingFields})
		return "", false
	}
	return claimed, true
}

// bindErrorMessage names the failed custom tag, anything else is a malformed body
func bindErrorMessage(err error) string {
	var fieldErrors govalidator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			switch fieldError.Tag() {
			case "cid":
				return pkgerrors.ErrInvalidCID
			case "tx_hash":
				return pkgerrors.ErrInvalidTxHash
			}
		}
	}
	return pkgerrors.ErrInvalidRequestBody
}
