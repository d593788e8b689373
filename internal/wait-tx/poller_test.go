package waittx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

type stubQuerier struct {
	statuses []types.TxStatus
	err      error
	calls    int
}

func (s *stubQuerier) TransactionStatus(ctx context.Context, handle types.TransactionHandle) (types.TxStatus, error) {
	s.calls++
	if s.err != nil {
		return types.TxStatus{}, s.err
	}
	idx := s.calls - 1
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	return s.statuses[idx], nil
}

func TestPollerStopsAfterMaxRetries(t *testing.T) {
	p := &Poller{
		querier:  &stubQuerier{err: errors.New("unavailable")},
		backoff:  constantBackoff{every: time.Millisecond},
		maxTries: 3,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := p.WaitMined(ctx, "0xabc"); err == nil {
		t.Fatalf("expected error when retries exhausted")
	}
}

func TestPollerReturnsMinedStatus(t *testing.T) {
	q := &stubQuerier{statuses: []types.TxStatus{
		{State: types.TxPending},
		{State: types.TxPending},
		{State: types.TxMined, BlockRef: "0x10"},
	}}
	p := &Poller{querier: q, backoff: constantBackoff{every: 0}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, err := p.WaitMined(ctx, "0xabc")
	if err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if status.State != types.TxMined {
		t.Fatalf("unexpected state: %s", status.State)
	}
	if status.BlockRef != "0x10" {
		t.Fatalf("unexpected block ref: %s", status.BlockRef)
	}
	if q.calls != 3 {
		t.Fatalf("expected 3 polls; got %d", q.calls)
	}
}

func TestPollerReturnsRevertAndDrop(t *testing.T) {
	for _, state := range []types.TxState{types.TxReverted, types.TxDropped} {
		q := &stubQuerier{statuses: []types.TxStatus{{State: state, RevertReason: "InsufficientBalance"}}}
		p := &Poller{querier: q, backoff: constantBackoff{every: 0}}

		status, err := p.WaitMined(context.Background(), "0xabc")
		if err != nil {
			t.Fatalf("wait error for %s: %v", state, err)
		}
		if status.State != state {
			t.Fatalf("want %s; got %s", state, status.State)
		}
	}
}

func TestPollerHonoursContextCancel(t *testing.T) {
	q := &stubQuerier{statuses: []types.TxStatus{{State: types.TxPending}}}
	p := &Poller{querier: q, backoff: constantBackoff{every: 50 * time.Millisecond}}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if _, err := p.WaitMined(ctx, "0xabc"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestProbePollerWaitsForTrue(t *testing.T) {
	calls := 0
	probe := func(ctx context.Context) (bool, error) {
		calls++
		if calls < 2 {
			return false, nil
		}
		return true, nil
	}
	p := &Poller{backoff: constantBackoff{every: 0}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := p.WaitTrue(ctx, probe); err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 probe calls; got %d", calls)
	}
}

func TestProbePollerToleratesTransientErrors(t *testing.T) {
	calls := 0
	probe := func(ctx context.Context) (bool, error) {
		calls++
		if calls < 3 {
			return false, errors.New("indexer lagging")
		}
		return true, nil
	}
	p := &Poller{backoff: constantBackoff{every: 0}}

	if err := p.WaitTrue(context.Background(), probe); err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 probe calls; got %d", calls)
	}
}

func TestExponentialBackoffSequence(t *testing.T) {
	b := &exponentialBackoff{
		initial:    time.Second,
		multiplier: 2,
		max:        5 * time.Second,
	}
	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		5 * time.Second,
		5 * time.Second,
	}
	for i, expected := range want {
		if got := b.Next(i + 1); got != expected {
			t.Fatalf("attempt %d: want %v; got %v", i+1, expected, got)
		}
	}
}

func TestExponentialBackoffJitter(t *testing.T) {
	base := time.Second
	b := &exponentialBackoff{
		initial: base,
		jitter:  0.5,
	}
	b.randFn = func() float64 { return 0 }
	if got := b.Next(1); got != base/2 {
		t.Fatalf("jitter low bound: want %v; got %v", base/2, got)
	}
	b.randFn = func() float64 { return 1 }
	if got := b.Next(1); got != base+base/2 {
		t.Fatalf("jitter high bound: want %v; got %v", base+base/2, got)
	}
}

func TestExponentialBackoffDefaults(t *testing.T) {
	b := &exponentialBackoff{}
	if got := b.Next(0); got != 500*time.Millisecond {
		t.Fatalf("default initial: want %v; got %v", 500*time.Millisecond, got)
	}

	b = &exponentialBackoff{multiplier: 0.5}
	if got := b.Next(3); got != 500*time.Millisecond {
		t.Fatalf("multiplier <= 1 should not shrink delay: want %v; got %v", 500*time.Millisecond, got)
	}
}

func TestSleepCtxClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := sleepCtx(ctx, time.Minute)
	cancel()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("sleepCtx did not release on cancel")
	}
}
