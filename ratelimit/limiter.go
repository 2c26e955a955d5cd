// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package ratelimit tracks actions consumed in a rolling hourly
// budget. State is in-memory only and resets on process restart; this
// is a deliberate simplicity/availability trade-off.
package ratelimit

import (
	"sync"
	"time"

	"github.com/yihua-bot/openclaw/lib/clock"
)

// Window is the budget period. When a window elapses the counter
// resets.
const Window = time.Hour

// Limiter enforces a per-hour action ceiling. Safe for concurrent use;
// all state is mutated under one mutex so concurrent requests never
// observe a torn read or double-count.
type Limiter struct {
	mu          sync.Mutex
	clock       clock.Clock
	max         int
	used        int
	windowStart time.Time
}

// New creates a Limiter with the given hourly ceiling. A ceiling of
// zero makes every request limited unconditionally, disabling the
// tool.
func New(maxPerHour int, clk clock.Clock) *Limiter {
	if clk == nil {
		clk = clock.Real()
	}
	return &Limiter{
		clock:       clk,
		max:         maxPerHour,
		windowStart: clk.Now(),
	}
}

// Limited reports whether the budget for the current window is
// exhausted. Checked before validation; a limited request proceeds no
// further.
func (l *Limiter) Limited() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max == 0 {
		return true
	}
	l.roll()
	return l.used >= l.max
}

// Commit consumes n actions from the current window. Called only after
// a request is fully approved, immediately before execution starts.
// The counter saturates at the ceiling so the window invariant holds
// even if concurrent requests were admitted against the same remaining
// budget.
func (l *Limiter) Commit(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()
	l.used += n
	if l.used > l.max {
		l.used = l.max
	}
}

// Remaining returns the unconsumed budget in the current window.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()
	if l.used >= l.max {
		return 0
	}
	return l.max - l.used
}

// roll resets the counter when the window has elapsed. Caller holds
// the mutex.
func (l *Limiter) roll() {
	now := l.clock.Now()
	if now.Sub(l.windowStart) >= Window {
		l.windowStart = now
		l.used = 0
	}
}
