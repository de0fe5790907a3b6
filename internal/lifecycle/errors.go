package lifecycle

import "errors"

// Kinds of failure callers branch on with errors.Is
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrPrecondition = errors.New("precondition failed")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream call failed")
)

// Error carries a user facing message and unwraps to its kind
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Message omits the cause, which may hold internal detail
func (e *Error) Message() string {
	return e.message
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// NewError builds an Error of kind whose message is safe to show to callers
func NewError(kind error, message string) error {
	return &Error{kind: kind, message: message}
}

func wrapError(kind error, message string, cause error) error {
	return &Error{kind: kind, message: message, cause: cause}
}

// UserMessage returns the message of a lifecycle Error, or fallback for anything else
func UserMessage(err error, fallback string) string {
	var lifecycleErr *Error
	if errors.As(err, &lifecycleErr) {
		return lifecycleErr.Message()
	}
	return fallback
}
