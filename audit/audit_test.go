// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/yihua-bot/openclaw/lib/clock"
)

func openTestLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	clk := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	log, err := Open(path, clk)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log, path
}

func readLines(t *testing.T, path string) []Entry {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("decoding line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestRecordAppendsJSONLines(t *testing.T) {
	log, path := openTestLog(t)

	entries := []Entry{
		{Tool: "shell", Decision: DecisionExecuted, Risk: "medium", Rule: "rm"},
		{Tool: "http_request", Decision: DecisionDenied, Reason: "host in denied range loopback"},
	}
	for _, e := range entries {
		if err := log.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got := readLines(t, path)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Tool != "shell" || got[0].Decision != DecisionExecuted {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Reason != "host in denied range loopback" {
		t.Errorf("entry 1 reason = %q", got[1].Reason)
	}
	for i, e := range got {
		if e.ID == "" {
			t.Errorf("entry %d has empty ID", i)
		}
		if e.Time.IsZero() {
			t.Errorf("entry %d has zero time", i)
		}
	}
}

func TestEntryIDContentDerived(t *testing.T) {
	base := Entry{
		Time:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Tool:     "shell",
		Decision: DecisionExecuted,
	}
	if entryID(base) != entryID(base) {
		t.Error("identical entries produced different IDs")
	}

	changed := base
	changed.Decision = DecisionDenied
	if entryID(base) == entryID(changed) {
		t.Error("differing entries produced the same ID")
	}

	withID := base
	withID.ID = "bogus"
	if entryID(base) != entryID(withID) {
		t.Error("ID field leaked into ID derivation")
	}
}

func TestRecordedIDVerifiable(t *testing.T) {
	log, path := openTestLog(t)
	if err := log.Record(Entry{Tool: "shell", Decision: DecisionTimeout, Duration: 60 * time.Second}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got := readLines(t, path)[0]
	if recomputed := entryID(got); recomputed != got.ID {
		t.Errorf("stored ID %s does not match recomputed %s", got.ID, recomputed)
	}
}

func TestNilLogDiscards(t *testing.T) {
	var log *Log
	if err := log.Record(Entry{Tool: "shell"}); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	if err := log.Rotate(); err != nil {
		t.Errorf("nil Rotate: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestRotateArchivesAndTruncates(t *testing.T) {
	log, path := openTestLog(t)
	if err := log.Record(Entry{Tool: "shell", Decision: DecisionExecuted}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if err := log.Rotate(); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat rotated log: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("log not truncated after rotation, size %d", info.Size())
	}

	matches, err := filepath.Glob(path + ".*.zst")
	if err != nil || len(matches) != 1 {
		t.Fatalf("archive glob = %v, err %v", matches, err)
	}
	compressed, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer decoder.Close()
	plain, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatalf("decompressing archive: %v", err)
	}
	if !strings.Contains(string(plain), `"tool":"shell"`) {
		t.Errorf("archive missing recorded entry: %s", plain)
	}

	// The reopened log must accept further records.
	if err := log.Record(Entry{Tool: "http_request", Decision: DecisionDenied}); err != nil {
		t.Fatalf("Record after rotate: %v", err)
	}
	if got := readLines(t, path); len(got) != 1 || got[0].Tool != "http_request" {
		t.Errorf("post-rotation entries = %+v", got)
	}
}

func TestRotateEmptyLogWritesNoArchive(t *testing.T) {
	log, path := openTestLog(t)
	if err := log.Rotate(); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	matches, _ := filepath.Glob(path + ".*.zst")
	if len(matches) != 0 {
		t.Errorf("empty rotation produced archives %v", matches)
	}
}
