package types

// FinalState is the terminal classification of a tracked operation.
type FinalState string

const (
	StateIndexed         FinalState = "indexed"
	StateFailed          FinalState = "failed"
	StateDropped         FinalState = "dropped"
	StateMiningTimeout   FinalState = "mining_timeout"
	StateIndexingTimeout FinalState = "indexing_timeout"
	StateCancelled       FinalState = "cancelled"
)

// Outcome contains the terminal result of a tracked operation.
//
// TxHash and BlockRef are populated as far as the run progressed: an
// indexing timeout still carries both, since the on-ledger mutation
// succeeded even though it is not yet queryable.
type Outcome struct {
	OperationID string
	State       FinalState
	TxHash      TransactionHandle
	BlockRef    string

	// Err classifies every non-Indexed outcome; nil only for StateIndexed.
	Err error
}

// Succeeded reports whether the operation completed and is queryable.
func (o *Outcome) Succeeded() bool { return o.State == StateIndexed }

// LedgerEffectKnown reports whether the on-ledger effect of the operation is
// settled. False for mining timeouts and drops, where the caller should
// re-check ledger state before resubmitting.
func (o *Outcome) LedgerEffectKnown() bool {
	switch o.State {
	case StateIndexed, StateFailed, StateIndexingTimeout:
		return true
	default:
		return false
	}
}
