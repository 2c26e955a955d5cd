// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package audit appends tamper-evident records of tool execution
// decisions to a JSONL log. Every gate outcome is recorded, allowed
// and denied alike, so the log reconstructs what the agent was
// permitted to do and why.
package audit

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/yihua-bot/openclaw/lib/clock"
)

// Decision is the recorded outcome of one tool request.
type Decision string

const (
	DecisionExecuted Decision = "executed"
	DecisionDenied   Decision = "denied"
	DecisionTimeout  Decision = "timeout"
	DecisionError    Decision = "error"
)

// Entry is one audit record. ID is derived from the record content,
// so two byte-identical records at the same instant share an ID and
// any edit to a stored line is detectable by recomputing it.
type Entry struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	Tool     string        `json:"tool"`
	Decision Decision      `json:"decision"`
	Risk     string        `json:"risk,omitempty"`
	Rule     string        `json:"rule,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// entryDomainKey separates audit record IDs from every other keyed
// hash domain. The bytes are the ASCII domain name zero-padded to the
// 32 bytes BLAKE3 keyed mode requires; the readable encoding makes
// the key inspectable in hex dumps.
var entryDomainKey = [32]byte{
	'o', 'p', 'e', 'n', 'c', 'l', 'a', 'w', '.', 'a', 'u', 'd', 'i', 't', '.',
	'e', 'n', 't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// entryID computes the content-derived record ID: the keyed BLAKE3
// hash of the entry serialized without its ID field.
func entryID(e Entry) string {
	e.ID = ""
	data, err := json.Marshal(e)
	if err != nil {
		// Entry contains only marshalable field types.
		panic("audit: entry serialization failed: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(entryDomainKey[:])
	if err != nil {
		panic("audit: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil)[:16])
}

// Log appends entries to a JSONL file. A nil *Log is valid and
// discards records, so callers never have to branch on whether
// auditing is configured.
type Log struct {
	mu    sync.Mutex
	path  string
	file  *os.File
	clock clock.Clock
}

// Open creates or appends to the JSONL log at path.
func Open(path string, clk clock.Clock) (*Log, error) {
	if clk == nil {
		clk = clock.Real()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &Log{path: path, file: file, clock: clk}, nil
}

// Record stamps the entry with the log clock and its content-derived
// ID, then appends it as one JSON line.
func (l *Log) Record(e Entry) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Time.IsZero() {
		e.Time = l.clock.Now().UTC()
	}
	e.ID = entryID(e)

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}
	line = append(line, '\n')
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
