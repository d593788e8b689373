package waittx

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	clientconfig "github.com/settlemint/asset-tokenization-kit-sub020/client/config"
	"github.com/settlemint/asset-tokenization-kit-sub020/types"
)

// Poller repeatedly queries the gateway until a transaction reaches a
// terminal mining status or the context ends.
type Poller struct {
	querier  StatusQuerier
	backoff  Backoff
	maxTries int
}

type constantBackoff struct{ every time.Duration }

func (b constantBackoff) Next(int) time.Duration { return b.every }

type exponentialBackoff struct {
	initial    time.Duration
	multiplier float64
	max        time.Duration
	jitter     float64
	randFn     func() float64
}

func (b *exponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	// Cap values before converting to time.Duration to avoid overflow.
	const safetyMargin = 2048.0
	maxDurationFloat := float64(math.MaxInt64) - safetyMargin

	initial := b.initial
	if initial <= 0 {
		initial = 500 * time.Millisecond
	}
	multiplier := b.multiplier
	if multiplier <= 1 {
		multiplier = 1
	}
	maxDelay := b.max
	base := float64(initial)
	if multiplier > 1 {
		base *= math.Pow(multiplier, float64(attempt-1))
	}
	if maxDelay > 0 {
		maxCap := float64(maxDelay)
		if maxCap > maxDurationFloat {
			maxCap = maxDurationFloat
		}
		if base > maxCap {
			base = maxCap
		}
	}
	if base > maxDurationFloat {
		base = maxDurationFloat
	}
	if base < 0 {
		base = 0
	}
	delay := time.Duration(base)
	jitter := b.jitter
	if jitter > 1 {
		jitter = 1
	}
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 0 {
		randFn := b.randFn
		if randFn == nil {
			randFn = rand.Float64
		}
		factor := 1 + (randFn()*2-1)*jitter
		if factor < 0 {
			factor = 0
		}
		floatDelay := float64(delay) * factor
		if floatDelay > maxDurationFloat {
			floatDelay = maxDurationFloat
		}
		if floatDelay < 0 {
			floatDelay = 0
		}
		delay = time.Duration(floatDelay)
	}
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay
}

// NewPoller constructs a poller from the track configuration.
func NewPoller(q StatusQuerier, cfg clientconfig.TrackConfig) *Poller {
	return &Poller{
		querier:  q,
		backoff:  NewBackoff(cfg),
		maxTries: cfg.PollMaxRetries,
	}
}

// NewBackoff constructs a poller backoff from the track configuration.
func NewBackoff(cfg clientconfig.TrackConfig) Backoff {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	var backoff Backoff = constantBackoff{every: interval}
	if cfg.PollBackoffMultiplier > 1 || cfg.PollBackoffJitter > 0 || (cfg.PollBackoffMaxInterval > 0 && cfg.PollBackoffMaxInterval != interval) {
		backoff = &exponentialBackoff{
			initial:    interval,
			multiplier: cfg.PollBackoffMultiplier,
			max:        cfg.PollBackoffMaxInterval,
			jitter:     cfg.PollBackoffJitter,
		}
	}
	return backoff
}

// WaitMined blocks until the handle reaches mined, reverted, or dropped, the
// retry budget is exhausted, or the context ends. Transient query errors and
// pending statuses are polled through.
func (p *Poller) WaitMined(ctx context.Context, handle types.TransactionHandle) (types.TxStatus, error) {
	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return types.TxStatus{}, ctx.Err()
		default:
		}

		status, err := p.querier.TransactionStatus(ctx, handle)
		if err == nil {
			switch status.State {
			case types.TxMined, types.TxReverted, types.TxDropped:
				return status, nil
			}
		}

		attempt++
		if p.maxTries > 0 && attempt >= p.maxTries {
			return types.TxStatus{}, fmt.Errorf("polling exhausted after %d attempts: %w", attempt, err)
		}

		select {
		case <-ctx.Done():
			return types.TxStatus{}, ctx.Err()
		case <-sleepCtx(ctx, p.backoff.Next(attempt)):
		}
	}
}

// WaitTrue blocks until the probe reports the expected state, the retry
// budget is exhausted, or the context ends.
func (p *Poller) WaitTrue(ctx context.Context, probe Probe) error {
	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ok, err := probe(ctx)
		if err == nil && ok {
			return nil
		}

		attempt++
		if p.maxTries > 0 && attempt >= p.maxTries {
			return fmt.Errorf("probing exhausted after %d attempts: %w", attempt, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sleepCtx(ctx, p.backoff.Next(attempt)):
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	if d <= 0 {
		close(ch)
		return ch
	}
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
		close(ch)
	}()
	return ch
}
