package event

import (
	"context"
	"time"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// EventType represents a tracked operation's lifecycle stage.
type EventType string

// Lifecycle event types, in emission order. The last six are terminal: at
// most one of them is emitted per run, and nothing follows it.
const (
	TrackPreparing       EventType = "track:preparing"
	TrackSubmitting      EventType = "track:submitting"
	TrackWaitingMining   EventType = "track:waiting_mining"
	TrackMined           EventType = "track:mined"
	TrackWaitingIndexing EventType = "track:waiting_indexing"

	TrackIndexed   EventType = "track:indexed"
	TrackFailed    EventType = "track:failed"
	TrackDropped   EventType = "track:dropped"
	TrackTimedOut  EventType = "track:timed_out"
	TrackCancelled EventType = "track:cancelled"
)

// Terminal reports whether the event type ends a run.
func (t EventType) Terminal() bool {
	switch t {
	case TrackIndexed, TrackFailed, TrackDropped, TrackTimedOut, TrackCancelled:
		return true
	}
	return false
}

// EventDataKey identifies metadata entries.
type EventDataKey string

// EventData stores contextual attributes for an event.
type EventData map[EventDataKey]any

// Standard event data keys.
const (
	KeyTxHash   EventDataKey = "txhash"
	KeyBlockRef EventDataKey = "block_ref"
	KeyReason   EventDataKey = "reason"
	KeyStage    EventDataKey = "stage"
	KeyError    EventDataKey = "error"
	KeyTarget   EventDataKey = "target"
	KeyMessage  EventDataKey = "message"
)

// Event represents an emitted operation status change.
type Event struct {
	Type        EventType
	OperationID string
	Kind        types.OperationKind
	Timestamp   time.Time
	Data        EventData
}

// Handler processes events. Context matches the run context of the tracker.
type Handler func(ctx context.Context, e Event)
