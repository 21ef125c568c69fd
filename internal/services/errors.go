package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the registry. Handlers map these onto HTTP
// status codes; none of them leaves the registry in an inconsistent state.
var (
	ErrLotteryNotFound = errors.New("Lottery not found")
	ErrLotteryInactive = errors.New("Lottery is not active")
	ErrLotteryEnded    = errors.New("Lottery is already ended")
	ErrNotAdmin        = errors.New("Only the lottery admin can pick a winner")
	ErrNoParticipants  = errors.New("No participants in lottery")
	ErrNoTicketsSold   = errors.New("No tickets sold")
	ErrOverflow        = errors.New("Prize pool arithmetic overflow")
)

// ValidationError reports malformed caller input. The operation that returns
// it has made no state change and is safe to retry with corrected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
