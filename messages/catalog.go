// Package messages maps operation kinds and tracking stages to
// human-readable progress strings. It is presentation only: the tracker
// attaches these to events when given a Catalog but never branches on them.
package messages

import (
	"fmt"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// Stage identifies a point in the tracked lifecycle a message describes.
type Stage string

const (
	StagePreparing  Stage = "preparing"
	StageSubmitting Stage = "submitting"
	StageMining     Stage = "mining"
	StageIndexing   Stage = "indexing"
	StageSuccess    Stage = "success"
	StageFailure    Stage = "failure"
	StageDropped    Stage = "dropped"
	StageTimeout    Stage = "timeout"
	StageCancelled  Stage = "cancelled"
)

// Catalog resolves a message for an operation kind at a stage.
type Catalog func(kind types.OperationKind, stage Stage) string

// verbs carries the per-kind phrasing; everything else derives from it.
var verbs = map[types.OperationKind]string{
	types.KindMint:             "Minting tokens",
	types.KindBurn:             "Burning tokens",
	types.KindTransfer:         "Transferring tokens",
	types.KindApprove:          "Approving allowance",
	types.KindFreeze:           "Freezing account",
	types.KindPause:            "Pausing contract",
	types.KindRedeem:           "Redeeming tokens",
	types.KindRecover:          "Recovering tokens",
	types.KindSetCap:           "Updating supply cap",
	types.KindSetYield:         "Updating yield schedule",
	types.KindGrantRole:        "Granting role",
	types.KindRevokeRole:       "Revoking role",
	types.KindCreateToken:      "Deploying token",
	types.KindIssueClaim:       "Issuing claim",
	types.KindDeleteIssuer:     "Removing trusted issuer",
	types.KindMatureBond:       "Maturing bond",
	types.KindClaimCollateral:  "Claiming collateral",
	types.KindAddTrustedIssuer: "Adding trusted issuer",
}

var stageSuffix = map[Stage]string{
	StagePreparing:  "preparing authorization",
	StageSubmitting: "submitting to the network",
	StageMining:     "waiting for confirmation",
	StageIndexing:   "confirmed, waiting for it to become visible",
	StageSuccess:    "completed",
	StageFailure:    "failed on-chain",
	StageDropped:    "was dropped before confirmation; check state before retrying",
	StageTimeout:    "is taking longer than expected",
	StageCancelled:  "tracking was cancelled",
}

// Default returns the built-in catalog. Unknown kinds fall back to a generic
// operation phrase; unknown stages fall back to the stage name itself.
func Default() Catalog {
	return func(kind types.OperationKind, stage Stage) string {
		verb, ok := verbs[kind]
		if !ok {
			verb = "Operation"
		}
		suffix, ok := stageSuffix[stage]
		if !ok {
			return fmt.Sprintf("%s: %s", verb, string(stage))
		}
		return fmt.Sprintf("%s: %s", verb, suffix)
	}
}
