// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package cost

import (
	"sync"
	"time"

	"github.com/yihua-bot/openclaw/lib/clock"
)

// Tracker accumulates cost records in memory. Spend does not survive
// process restarts: the session window is the process lifetime, and
// the daily window only sees records from the current process.
type Tracker struct {
	mu         sync.Mutex
	clock      clock.Clock
	sessionUSD float64
	dailyUSD   float64
	records    []CostRecord
}

// NewTracker creates a tracker with the given ceilings in USD. A zero
// ceiling disables that check.
func NewTracker(sessionUSD, dailyUSD float64, clk clock.Clock) *Tracker {
	if clk == nil {
		clk = clock.Real()
	}
	return &Tracker{
		clock:      clk,
		sessionUSD: sessionUSD,
		dailyUSD:   dailyUSD,
	}
}

// Record stores one priced call. A zero record time is stamped with
// the tracker clock.
func (t *Tracker) Record(rec CostRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec.Time.IsZero() {
		rec.Time = t.clock.Now().UTC()
	}
	t.records = append(t.records, rec)
}

// periodCutoff returns the start of the window; records before it are
// outside the period. The session period has no cutoff.
func (t *Tracker) periodCutoff(period UsagePeriod) time.Time {
	now := t.clock.Now().UTC()
	switch period {
	case PeriodDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -daysSinceMonday)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}

// spentLocked sums the cost of records inside the period.
func (t *Tracker) spentLocked(period UsagePeriod) float64 {
	cutoff := t.periodCutoff(period)
	var total float64
	for _, rec := range t.records {
		if rec.Time.Before(cutoff) {
			continue
		}
		total += rec.CostUSD
	}
	return total
}

// CheckBudget reports whether spending is still inside the tighter of
// the session and daily ceilings. With both ceilings at zero the
// check always allows.
func (t *Tracker) CheckBudget() BudgetCheck {
	t.mu.Lock()
	defer t.mu.Unlock()

	session := BudgetCheck{
		Allowed: true,
		Period:  PeriodSession,
		Limit:   t.sessionUSD,
		Spent:   t.spentLocked(PeriodSession),
	}
	day := BudgetCheck{
		Allowed: true,
		Period:  PeriodDay,
		Limit:   t.dailyUSD,
		Spent:   t.spentLocked(PeriodDay),
	}
	for _, check := range []*BudgetCheck{&session, &day} {
		if check.Limit <= 0 {
			continue
		}
		check.RemainingUSD = check.Limit - check.Spent
		if check.RemainingUSD < 0 {
			check.RemainingUSD = 0
		}
		check.Allowed = check.Spent < check.Limit
	}

	if !session.Allowed {
		return session
	}
	if !day.Allowed {
		return day
	}
	// Both allow. Report the period with less headroom so callers can
	// surface the binding constraint.
	if session.Limit > 0 && (day.Limit <= 0 || session.RemainingUSD <= day.RemainingUSD) {
		return session
	}
	if day.Limit > 0 {
		return day
	}
	return session
}

// Summary aggregates the tracked records over one period.
func (t *Tracker) Summary(period UsagePeriod) CostSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.periodCutoff(period)
	summary := CostSummary{
		Period:  period,
		ByModel: make(map[string]ModelStats),
	}
	for _, rec := range t.records {
		if rec.Time.Before(cutoff) {
			continue
		}
		summary.Requests++
		summary.Usage = summary.Usage.Add(rec.Usage)
		summary.TotalUSD += rec.CostUSD

		stats := summary.ByModel[rec.Model]
		stats.Requests++
		stats.Usage = stats.Usage.Add(rec.Usage)
		stats.CostUSD += rec.CostUSD
		summary.ByModel[rec.Model] = stats
	}
	return summary
}
