// Package progress reports the advance of long batch runs at a bounded rate.
package progress

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Func receives the completed fraction in [0, 1] and the estimated time
// remaining.
type Func func(fraction float64, remaining time.Duration)

// Tracker accumulates steps toward a target and calls Report at most once
// per interval. The final step is always reported.
type Tracker struct {
	mu        sync.Mutex
	target    float64
	state     float64
	started   time.Time
	report    Func
	sometimes *rate.Sometimes
	now       func() time.Time
}

// NewTracker creates a tracker for target units of work. A non-positive
// interval reports every step.
func NewTracker(target float64, interval time.Duration, report Func) *Tracker {
	s := &rate.Sometimes{Every: 1}
	if interval > 0 {
		s = &rate.Sometimes{First: 1, Interval: interval}
	}
	return &Tracker{
		target:    target,
		started:   time.Now(),
		report:    report,
		sometimes: s,
		now:       time.Now,
	}
}

// Add records step units of completed work.
func (t *Tracker) Add(step float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state += step
	if t.report == nil {
		return
	}
	frac := t.fractionLocked()
	remaining := t.remainingLocked()
	if frac >= 1 {
		t.report(frac, remaining)
		return
	}
	t.sometimes.Do(func() { t.report(frac, remaining) })
}

// Fraction returns the completed share of the target.
func (t *Tracker) Fraction() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fractionLocked()
}

// Remaining estimates the time left from the elapsed time and the
// completed fraction.
func (t *Tracker) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

func (t *Tracker) fractionLocked() float64 {
	if t.target <= 0 {
		return 1
	}
	return min(t.state/t.target, 1)
}

func (t *Tracker) remainingLocked() time.Duration {
	frac := t.fractionLocked()
	if frac <= 0 {
		return 0
	}
	elapsed := t.now().Sub(t.started)
	return time.Duration(float64(elapsed) * (1 - frac) / frac)
}
