package waittx

import (
	"context"
	"time"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// StatusQuerier fetches mining status for a transaction handle.
type StatusQuerier interface {
	TransactionStatus(ctx context.Context, handle types.TransactionHandle) (types.TxStatus, error)
}

// Probe reports whether the indexer reflects the expected post-state yet.
// Errors are treated as transient and polled through.
type Probe func(ctx context.Context) (bool, error)

// Backoff controls polling cadence.
type Backoff interface {
	Next(attempt int) time.Duration
}
