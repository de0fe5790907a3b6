package errors

// User facing error messages returned in {"error": ...} bodies.
const (
	ErrInvalidRequestBody = "Invalid request body"
	ErrMissingFields      = "Missing required fields"
	ErrDBOperationFailed  = "Database operation failed"
	ErrDBRecordNotFound   = "Database record not found"
	ErrUnauthorized       = "Unauthorized"
	ErrForbidden          = "Caller is not allowed to perform this action"
	ErrInternal           = "Internal server error"

	ErrInvalidAddress     = "Invalid wallet address"
	ErrInvalidBountyID    = "Invalid bounty ID"
	ErrBountyNotFound     = "Bounty not found"
	ErrRequestNotFound    = "Request not found"
	ErrInvalidFulfillment = `Invalid status. Must be "completed" or "rejected"`
	ErrInvalidCID         = "Valid IPFS CID required for completed requests"
	ErrInvalidTxHash      = "Invalid transaction hash"
	ErrNotCompleted       = "Request must be completed before payment can be released"
	ErrTransitionConflict = "Request status changed concurrently, reload and retry"
	ErrFulfillFailed      = "Failed to update request status"
	ErrReleaseFailed      = "Failed to release payment"

	ErrChainCallFailed = "Chain call failed"
	ErrPinFailed       = "Failed to pin to IPFS"
	ErrFaucetFailed    = "Faucet error"
	ErrRateLimited     = "Rate limit exceeded"

	ErrInvalidSignature   = "Signature verification failed"
	ErrMissingParameters  = "Missing parameters"
	ErrDataRequired       = "Data is required"
	ErrFileRequired       = "File is required"
	ErrPinNotConfigured   = "IPFS pinning is not configured"
	ErrFaucetNotAvailable = "Faucet is not configured"
	ErrEventFailed        = "Failed to process event"
)
