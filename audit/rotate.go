// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("audit: zstd encoder initialization failed: " + err.Error())
	}
}

// Rotate compresses the current log into a timestamped .zst sibling
// and starts a fresh file at the original path. An empty log rotates
// to nothing: no archive is written.
func (l *Log) Rotate() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("reading audit log for rotation: %w", err)
	}

	if len(data) > 0 {
		archive := fmt.Sprintf("%s.%s.zst", l.path, l.clock.Now().UTC().Format("20060102T150405Z"))
		compressed := zstdEncoder.EncodeAll(data, nil)
		if err := os.WriteFile(archive, compressed, 0o600); err != nil {
			return fmt.Errorf("writing audit archive: %w", err)
		}
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing audit log: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("reopening audit log: %w", err)
	}
	l.file = file
	return nil
}
