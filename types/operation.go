package types

import (
	"fmt"

	"github.com/google/uuid"
)

// OperationKind identifies the state-changing operation being tracked.
type OperationKind string

// Operation kinds understood by the platform gateway.
const (
	KindMint             OperationKind = "mint"
	KindBurn             OperationKind = "burn"
	KindTransfer         OperationKind = "transfer"
	KindApprove          OperationKind = "approve"
	KindFreeze           OperationKind = "freeze"
	KindPause            OperationKind = "pause"
	KindRedeem           OperationKind = "redeem"
	KindRecover          OperationKind = "recover"
	KindSetCap           OperationKind = "setCap"
	KindSetYield         OperationKind = "setYield"
	KindGrantRole        OperationKind = "grantRole"
	KindRevokeRole       OperationKind = "revokeRole"
	KindCreateToken      OperationKind = "createToken"
	KindIssueClaim       OperationKind = "issueClaim"
	KindDeleteIssuer     OperationKind = "deleteIssuer"
	KindMatureBond       OperationKind = "matureBond"
	KindClaimCollateral  OperationKind = "claimCollateral"
	KindAddTrustedIssuer OperationKind = "addTrustedIssuer"
)

var knownKinds = map[OperationKind]struct{}{
	KindMint: {}, KindBurn: {}, KindTransfer: {}, KindApprove: {},
	KindFreeze: {}, KindPause: {}, KindRedeem: {}, KindRecover: {},
	KindSetCap: {}, KindSetYield: {}, KindGrantRole: {}, KindRevokeRole: {},
	KindCreateToken: {}, KindIssueClaim: {}, KindDeleteIssuer: {},
	KindMatureBond: {}, KindClaimCollateral: {}, KindAddTrustedIssuer: {},
}

// Valid reports whether the kind is one the gateway accepts.
func (k OperationKind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

func (k OperationKind) String() string { return string(k) }

// OperationRequest captures caller intent for a single tracked operation.
// Treated as immutable once handed to the tracker.
type OperationRequest struct {
	// ID correlates all events emitted for this run. Populated by
	// NewOperationRequest; callers constructing the struct directly may
	// leave it empty and the tracker will assign one.
	ID string

	Kind    OperationKind
	Target  string         // contract / resource address the operation acts on
	Payload map[string]any // kind-specific parameters, passed through opaquely

	// ActingUser identifies who authorizes and signs the operation.
	ActingUser string
}

// NewOperationRequest builds a request with a fresh correlation ID.
func NewOperationRequest(kind OperationKind, target, actingUser string, payload map[string]any) OperationRequest {
	return OperationRequest{
		ID:         uuid.NewString(),
		Kind:       kind,
		Target:     target,
		Payload:    payload,
		ActingUser: actingUser,
	}
}

// Validate checks the request is well-formed before submission.
func (r OperationRequest) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: unknown operation kind %q", ErrInvalidRequest, string(r.Kind))
	}
	if r.Target == "" {
		return fmt.Errorf("%w: target is required", ErrInvalidRequest)
	}
	if r.ActingUser == "" {
		return fmt.Errorf("%w: acting user is required", ErrInvalidRequest)
	}
	return nil
}

// AuthorizationChallenge is a single-use proof issued for one pending
// operation. It is consumed by exactly one submission and never persisted.
type AuthorizationChallenge struct {
	ChallengeID string
	Proof       string
}

// TransactionHandle is the gateway's opaque identifier for an accepted
// submission. It exists only once submission has succeeded.
type TransactionHandle string

// TxState is the mining status the gateway reports for a handle.
type TxState string

const (
	TxPending  TxState = "pending"
	TxMined    TxState = "mined"
	TxReverted TxState = "reverted"
	TxDropped  TxState = "dropped"
)

// TxStatus is a point-in-time view of a submitted transaction.
type TxStatus struct {
	State        TxState
	BlockRef     string // set once mined or reverted
	RevertReason string // decoded reason when the gateway supplies one
}
