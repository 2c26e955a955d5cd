// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package cost accumulates per-model token usage and spend, and
// answers budget queries against the configured session and daily
// ceilings.
package cost

import "time"

// TokenUsage counts the tokens consumed by one model call.
type TokenUsage struct {
	InputTokens      int `json:"input_tokens"`
	OutputTokens     int `json:"output_tokens"`
	CacheReadTokens  int `json:"cache_read_tokens,omitempty"`
	CacheWriteTokens int `json:"cache_write_tokens,omitempty"`
}

// Total returns all tokens in the usage, cache traffic included.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens + u.CacheReadTokens + u.CacheWriteTokens
}

// Add returns the element-wise sum of two usages.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:      u.InputTokens + other.InputTokens,
		OutputTokens:     u.OutputTokens + other.OutputTokens,
		CacheReadTokens:  u.CacheReadTokens + other.CacheReadTokens,
		CacheWriteTokens: u.CacheWriteTokens + other.CacheWriteTokens,
	}
}

// CostRecord is one priced model call.
type CostRecord struct {
	Time    time.Time  `json:"time"`
	Model   string     `json:"model"`
	Usage   TokenUsage `json:"usage"`
	CostUSD float64    `json:"cost_usd"`
}

// ModelStats aggregates the records for one model.
type ModelStats struct {
	Requests int        `json:"requests"`
	Usage    TokenUsage `json:"usage"`
	CostUSD  float64    `json:"cost_usd"`
}

// UsagePeriod selects which window a summary or budget check covers.
type UsagePeriod string

const (
	// PeriodSession covers everything since the tracker was created.
	PeriodSession UsagePeriod = "session"
	// PeriodDay covers the current UTC calendar day.
	PeriodDay UsagePeriod = "day"
	// PeriodWeek covers the current UTC ISO week, Monday start.
	PeriodWeek UsagePeriod = "week"
	// PeriodMonth covers the current UTC calendar month.
	PeriodMonth UsagePeriod = "month"
)

// CostSummary aggregates spend over one period.
type CostSummary struct {
	Period   UsagePeriod           `json:"period"`
	Requests int                   `json:"requests"`
	Usage    TokenUsage            `json:"usage"`
	TotalUSD float64               `json:"total_usd"`
	ByModel  map[string]ModelStats `json:"by_model"`
}

// BudgetCheck reports whether the next action fits inside a ceiling.
// A zero Limit means the ceiling is not configured and everything is
// allowed.
type BudgetCheck struct {
	Allowed      bool        `json:"allowed"`
	Period       UsagePeriod `json:"period"`
	Limit        float64     `json:"limit_usd"`
	Spent        float64     `json:"spent_usd"`
	RemainingUSD float64     `json:"remaining_usd"`
}
