// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded I/O capture utilities.
//
// Tool output and HTTP response bodies are attacker-influenced: a
// sandboxed command can emit unbounded bytes, and a remote server can
// stream an unbounded response. Both capture paths go through this
// package so the byte ceiling and the truncation flag are enforced in
// exactly one place.
package netutil

import (
	"io"
	"sync"
)

// MaxCaptureBytes is the per-stream capture ceiling: 1 MiB. Bytes past
// the ceiling are discarded, not buffered, and the capture is marked
// truncated.
const MaxCaptureBytes = 1 << 20

// BoundedBuffer is an io.Writer that retains at most MaxCaptureBytes
// (or a custom limit) and silently discards the rest. Write never
// returns an error and always reports the full input length consumed,
// so a child process writing to the buffer through a pipe is drained
// rather than blocked once the ceiling is reached.
//
// Safe for concurrent use; os/exec may write from internal goroutines.
type BoundedBuffer struct {
	mu        sync.Mutex
	limit     int
	buf       []byte
	truncated bool
}

// NewBoundedBuffer returns a BoundedBuffer with the given ceiling.
// A non-positive limit means MaxCaptureBytes.
func NewBoundedBuffer(limit int) *BoundedBuffer {
	if limit <= 0 {
		limit = MaxCaptureBytes
	}
	return &BoundedBuffer{limit: limit}
}

// Write appends p up to the ceiling and discards the remainder.
func (b *BoundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.limit - len(b.buf)
	if room > 0 {
		if len(p) <= room {
			b.buf = append(b.buf, p...)
		} else {
			b.buf = append(b.buf, p[:room]...)
			b.truncated = true
		}
	} else if len(p) > 0 {
		b.truncated = true
	}
	return len(p), nil
}

// Bytes returns the captured prefix.
func (b *BoundedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf
}

// Truncated reports whether any input was discarded.
func (b *BoundedBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.truncated
}

// ReadBounded reads from r up to limit bytes (MaxCaptureBytes if limit
// is non-positive) and reports whether r held more than the limit. The
// remainder is not consumed.
func ReadBounded(r io.Reader, limit int) (data []byte, truncated bool, err error) {
	if limit <= 0 {
		limit = MaxCaptureBytes
	}
	data, err = io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, false, err
	}
	if len(data) > limit {
		return data[:limit], true, nil
	}
	return data, false, nil
}
