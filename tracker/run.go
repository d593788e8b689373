package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	waittx "github.com/settlemint/asset-tokenization-kit-sub020/internal/wait-tx"
	"github.com/settlemint/asset-tokenization-kit-sub020/messages"
	"github.com/settlemint/asset-tokenization-kit-sub020/tracker/event"
	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// Run executes one tracked operation and streams its status events. The
// returned channel receives every stage transition, then exactly one
// terminal event, then closes. Stages never regress and nothing is emitted
// after the terminal event.
//
// probe may be nil for operations whose effect the caller does not need to
// observe through the indexer; the run then completes at the mined block.
// Cancelling ctx stops observation promptly; it cannot unsubmit a
// transaction already accepted by the gateway.
func (t *Tracker) Run(ctx context.Context, req types.OperationRequest, probe Probe) <-chan event.Event {
	ch := make(chan event.Event, 16)
	go func() {
		defer close(ch)
		emit := func(evt event.Event) {
			ch <- evt
			t.fanOut(ctx, evt)
		}
		t.track(ctx, req, probe, emit)
	}()
	return ch
}

// Track runs the operation to completion and returns the terminal outcome.
// Events still reach subscribed handlers; callers who want the stream use
// Run instead.
func (t *Tracker) Track(ctx context.Context, req types.OperationRequest, probe Probe) (*types.Outcome, error) {
	outcome := t.track(ctx, req, probe, func(evt event.Event) {
		t.fanOut(ctx, evt)
	})
	return outcome, outcome.Err
}

// track is the state machine: Preparing -> Submitting -> WaitingForMining ->
// Mined -> WaitingForIndexing -> terminal. It emits through emit only; the
// one terminal event is always the last emission.
func (t *Tracker) track(ctx context.Context, req types.OperationRequest, probe Probe, emit func(event.Event)) *types.Outcome {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	outcome := &types.Outcome{OperationID: req.ID}

	if err := req.Validate(); err != nil {
		outcome.State = types.StateFailed
		outcome.Err = err
		emit(t.newEvent(event.TrackFailed, req, messages.StageFailure, event.EventData{
			event.KeyError: err.Error(),
		}))
		return outcome
	}

	emit(t.newEvent(event.TrackPreparing, req, messages.StagePreparing, nil))

	challenge, err := t.authn.ObtainChallenge(ctx, req.ActingUser, t.describe(req))
	if err != nil {
		return t.finishBeforeSubmission(ctx, req, outcome, fmt.Errorf("obtain challenge: %w", err), emit)
	}

	emit(t.newEvent(event.TrackSubmitting, req, messages.StageSubmitting, nil))

	// The challenge is consumed here, success or not. A rejected submission
	// never re-issues one; the caller starts a fresh run.
	handle, err := t.gateway.SubmitOperation(ctx, req, challenge)
	if err != nil {
		return t.finishBeforeSubmission(ctx, req, outcome, err, emit)
	}
	outcome.TxHash = handle
	t.logf("tracker: %s %s submitted as %s", req.Kind, req.ID, handle)

	emit(t.newEvent(event.TrackWaitingMining, req, messages.StageMining, event.EventData{
		event.KeyTxHash: string(handle),
	}))

	mineCtx, cancelMine := context.WithTimeout(ctx, t.cfg.MiningTimeout)
	status, err := waittx.NewPoller(t.gateway, t.cfg).WaitMined(mineCtx, handle)
	cancelMine()
	if err != nil {
		return t.finishWait(ctx, req, outcome, types.StageMining, emit)
	}

	switch status.State {
	case types.TxReverted:
		outcome.State = types.StateFailed
		outcome.BlockRef = status.BlockRef
		outcome.Err = &types.RevertError{Reason: status.RevertReason, BlockRef: status.BlockRef}
		emit(t.newEvent(event.TrackFailed, req, messages.StageFailure, event.EventData{
			event.KeyTxHash:   string(handle),
			event.KeyBlockRef: status.BlockRef,
			event.KeyReason:   status.RevertReason,
		}))
		return outcome
	case types.TxDropped:
		outcome.State = types.StateDropped
		outcome.Err = types.ErrDropped
		emit(t.newEvent(event.TrackDropped, req, messages.StageDropped, event.EventData{
			event.KeyTxHash: string(handle),
		}))
		return outcome
	}

	outcome.BlockRef = status.BlockRef
	emit(t.newEvent(event.TrackMined, req, messages.StageMining, event.EventData{
		event.KeyTxHash:   string(handle),
		event.KeyBlockRef: status.BlockRef,
	}))

	if probe != nil {
		emit(t.newEvent(event.TrackWaitingIndexing, req, messages.StageIndexing, event.EventData{
			event.KeyTxHash: string(handle),
		}))

		indexCtx, cancelIndex := context.WithTimeout(ctx, t.cfg.IndexingTimeout)
		err = waittx.NewPoller(t.gateway, t.cfg).WaitTrue(indexCtx, probe)
		cancelIndex()
		if err != nil {
			return t.finishWait(ctx, req, outcome, types.StageIndexing, emit)
		}
	}

	outcome.State = types.StateIndexed
	emit(t.newEvent(event.TrackIndexed, req, messages.StageSuccess, event.EventData{
		event.KeyTxHash:   string(handle),
		event.KeyBlockRef: outcome.BlockRef,
	}))
	return outcome
}

// finishBeforeSubmission classifies a failure from the challenge or submit
// step, where no transaction handle exists yet.
func (t *Tracker) finishBeforeSubmission(ctx context.Context, req types.OperationRequest, outcome *types.Outcome, err error, emit func(event.Event)) *types.Outcome {
	if ctx.Err() != nil {
		return t.cancelled(ctx, req, outcome, emit)
	}

	outcome.State = types.StateFailed
	outcome.Err = err
	data := event.EventData{event.KeyError: err.Error()}
	var authErr *types.AuthError
	if errors.As(err, &authErr) {
		data[event.KeyReason] = string(authErr.Reason)
	}
	emit(t.newEvent(event.TrackFailed, req, messages.StageFailure, data))
	return outcome
}

// finishWait classifies the end of a polling stage that did not produce a
// terminal gateway status: caller cancellation wins, otherwise the stage
// deadline expired.
func (t *Tracker) finishWait(ctx context.Context, req types.OperationRequest, outcome *types.Outcome, stage types.Stage, emit func(event.Event)) *types.Outcome {
	if errors.Is(ctx.Err(), context.Canceled) {
		return t.cancelled(ctx, req, outcome, emit)
	}

	if stage == types.StageIndexing {
		// Soft failure: the mutation is on-ledger, just not queryable yet.
		outcome.State = types.StateIndexingTimeout
	} else {
		outcome.State = types.StateMiningTimeout
	}
	outcome.Err = &types.TimeoutError{Stage: stage}
	emit(t.newEvent(event.TrackTimedOut, req, messages.StageTimeout, event.EventData{
		event.KeyStage:    string(stage),
		event.KeyTxHash:   string(outcome.TxHash),
		event.KeyBlockRef: outcome.BlockRef,
	}))
	return outcome
}

func (t *Tracker) cancelled(ctx context.Context, req types.OperationRequest, outcome *types.Outcome, emit func(event.Event)) *types.Outcome {
	outcome.State = types.StateCancelled
	outcome.Err = types.ErrCancelled
	emit(t.newEvent(event.TrackCancelled, req, messages.StageCancelled, event.EventData{
		event.KeyTxHash: string(outcome.TxHash),
	}))
	return outcome
}

// describe renders the display-only action descriptor sent with the
// challenge request.
func (t *Tracker) describe(req types.OperationRequest) string {
	if t.catalog != nil {
		return t.catalog(req.Kind, messages.StageSubmitting)
	}
	return fmt.Sprintf("%s on %s", req.Kind, req.Target)
}
