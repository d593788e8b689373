package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest is returned when an operation request is malformed
	ErrInvalidRequest = errors.New("invalid operation request")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timed out")

	// ErrDropped is returned when a submitted transaction vanished from the
	// network before mining. The outcome is ambiguous: callers should
	// re-check ledger state before resubmitting.
	ErrDropped = errors.New("transaction dropped")

	// ErrCancelled is returned when the caller cancelled tracking. The
	// submitted transaction, if any, is unaffected.
	ErrCancelled = errors.New("operation tracking cancelled")
)

// AuthReason classifies why a challenge could not be obtained.
type AuthReason string

const (
	AuthWrongSecret   AuthReason = "wrong_secret"
	AuthFactorExpired AuthReason = "factor_expired"
	AuthFactorLocked  AuthReason = "factor_locked"
	AuthNoFactor      AuthReason = "no_factor"
)

// AuthError reports a failed challenge issuance. Fatal for the run; the
// caller must re-authorize explicitly, never the tracker.
type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authorization failed (%s): %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("authorization failed (%s)", e.Reason)
}

// RejectionError reports that the gateway refused the submission before
// accepting it onto the ledger. No transaction exists; retrying the same
// request will fail the same way.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("gateway rejected submission (%s): %s", e.Code, e.Message)
}

// TransportError reports that a request never reached the gateway or the
// response was lost. Unlike a rejection, the whole run is safe to retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RevertError reports a transaction that was mined but reverted on-chain.
type RevertError struct {
	Reason   string
	BlockRef string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return "transaction reverted"
	}
	return fmt.Sprintf("transaction reverted: %s", e.Reason)
}

// Stage names the tracking phase a timeout occurred in.
type Stage string

const (
	StageMining   Stage = "mining"
	StageIndexing Stage = "indexing"
)

// TimeoutError reports deadline expiry at a specific stage. A mining timeout
// means finality is unknown; an indexing timeout means the ledger-side effect
// succeeded but is not yet queryable.
type TimeoutError struct {
	Stage Stage
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out", e.Stage)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
