package connection

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum spacing between the starts of connect attempts.
// Unlike a backoff, the interval never grows: a cycle that outlasts the
// interval is followed by an immediate attempt.
type Pacer struct {
	mu sync.Mutex

	interval time.Duration
	last     time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewPacer creates a pacer with the given interval. The first attempt is
// never delayed.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		now:      time.Now,
	}
}

// Interval returns the configured interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// MarkAttempt records t as the start of the latest attempt.
func (p *Pacer) MarkAttempt(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = t
}

// LastAttempt returns the time recorded by the last MarkAttempt, or the
// zero time if none.
func (p *Pacer) LastAttempt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Remaining returns how long to wait before the next attempt may start.
func (p *Pacer) Remaining() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last.IsZero() {
		return 0
	}
	elapsed := p.now().Sub(p.last)
	if elapsed >= p.interval {
		return 0
	}
	return p.interval - elapsed
}

// Wait blocks for Remaining. It returns ctx.Err() if ctx is done first.
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Remaining()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
