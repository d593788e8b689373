// Package tracker drives a submitted on-chain operation through its full
// lifecycle: authorization challenge, gateway submission, mining
// confirmation, and indexer visibility, reporting classified status events
// along the way.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/settlemint/asset-tokenization-kit-sub020/authn"
	clientconfig "github.com/settlemint/asset-tokenization-kit-sub020/client/config"
	waittx "github.com/settlemint/asset-tokenization-kit-sub020/internal/wait-tx"
	"github.com/settlemint/asset-tokenization-kit-sub020/messages"
	sdklog "github.com/settlemint/asset-tokenization-kit-sub020/pkg/log"
	"github.com/settlemint/asset-tokenization-kit-sub020/tracker/event"
	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// Gateway is the ledger gateway surface the tracker needs: one submission
// call and one status query. Implementations must be safe for concurrent
// use by multiple in-flight runs.
type Gateway interface {
	SubmitOperation(ctx context.Context, req types.OperationRequest, challenge types.AuthorizationChallenge) (types.TransactionHandle, error)
	TransactionStatus(ctx context.Context, handle types.TransactionHandle) (types.TxStatus, error)
}

// Probe re-exports the indexer probe signature for callers.
type Probe = waittx.Probe

// Tracker runs operation state machines. Each Run is an independent unit of
// work; the tracker itself holds no per-operation state.
type Tracker struct {
	gateway Gateway
	authn   authn.Provider
	cfg     clientconfig.TrackConfig
	catalog messages.Catalog
	logger  sdklog.Logger

	subMu        sync.RWMutex
	localSubs    map[event.EventType][]event.Handler
	localSubsAll []event.Handler
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCatalog attaches a message catalog; events then carry a display
// message under event.KeyMessage. Without one, events carry no copy at all.
func WithCatalog(c messages.Catalog) Option {
	return func(t *Tracker) { t.catalog = c }
}

// WithLogger configures optional diagnostics logging.
func WithLogger(l sdklog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a tracker over the given gateway and challenge provider.
func New(gw Gateway, provider authn.Provider, cfg clientconfig.TrackConfig, opts ...Option) (*Tracker, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("challenge provider is required")
	}
	clientconfig.ApplyTrackDefaults(&cfg)

	t := &Tracker{
		gateway:   gw,
		authn:     provider,
		cfg:       cfg,
		localSubs: make(map[event.EventType][]event.Handler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Subscribe registers a handler for a specific event type.
func (t *Tracker) Subscribe(typ event.EventType, handler event.Handler) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	t.localSubs[typ] = append(t.localSubs[typ], handler)
}

// SubscribeAll registers a handler for every event type.
func (t *Tracker) SubscribeAll(handler event.Handler) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	t.localSubsAll = append(t.localSubsAll, handler)
}

func (t *Tracker) fanOut(ctx context.Context, evt event.Event) {
	t.subMu.RLock()
	handlers := append([]event.Handler{}, t.localSubs[evt.Type]...)
	all := append([]event.Handler{}, t.localSubsAll...)
	t.subMu.RUnlock()

	for _, h := range handlers {
		h(ctx, evt)
	}
	for _, h := range all {
		h(ctx, evt)
	}
}

func (t *Tracker) newEvent(typ event.EventType, req types.OperationRequest, stage messages.Stage, data event.EventData) event.Event {
	if data == nil {
		data = event.EventData{}
	}
	if _, ok := data[event.KeyTarget]; !ok {
		data[event.KeyTarget] = req.Target
	}
	if t.catalog != nil {
		data[event.KeyMessage] = t.catalog(req.Kind, stage)
	}
	return event.Event{
		Type:        typ,
		OperationID: req.ID,
		Kind:        req.Kind,
		Timestamp:   time.Now(),
		Data:        data,
	}
}

func (t *Tracker) logf(format string, v ...interface{}) {
	sdklog.Infof(t.logger, format, v...)
}
