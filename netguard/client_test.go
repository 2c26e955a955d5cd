// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package netguard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yihua-bot/openclaw/lib/netutil"
)

func TestDoReturnsRedirectAsData(t *testing.T) {
	var followed bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/start":
			http.Redirect(w, r, "/secret", http.StatusFound)
		default:
			followed = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	g := New(Config{})
	resp, err := g.Do(context.Background(), Request{URL: server.URL + "/start", Method: "GET"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != http.StatusFound {
		t.Errorf("Status = %d, want 302 returned as data", resp.Status)
	}
	if followed {
		t.Error("redirect was followed")
	}
	if loc := resp.Headers["Location"]; loc != "/secret" {
		t.Errorf("Location header = %q, want /secret", loc)
	}
}

func TestDoBoundsResponseBody(t *testing.T) {
	payload := strings.Repeat("a", netutil.MaxCaptureBytes+4096)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	g := New(Config{})
	resp, err := g.Do(context.Background(), Request{URL: server.URL, Method: "GET"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(resp.Body) != netutil.MaxCaptureBytes {
		t.Errorf("body length = %d, want %d", len(resp.Body), netutil.MaxCaptureBytes)
	}
	if !resp.BodyTruncated {
		t.Error("BodyTruncated = false for oversized body")
	}
}

func TestDoRedactsSensitiveHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "session=abc123")
		w.Header().Set("X-Api-Key", "sk-live-999")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	g := New(Config{})
	resp, err := g.Do(context.Background(), Request{URL: server.URL, Method: "GET"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Headers["Set-Cookie"] != "[redacted]" {
		t.Errorf("Set-Cookie = %q, want redacted", resp.Headers["Set-Cookie"])
	}
	if resp.Headers["X-Api-Key"] != "[redacted]" {
		t.Errorf("X-Api-Key = %q, want redacted", resp.Headers["X-Api-Key"])
	}
	if got := resp.Headers["Content-Type"]; got != "text/plain" {
		t.Errorf("Content-Type = %q, want preserved", got)
	}
}

func TestDoSendsHeadersAndBody(t *testing.T) {
	var gotAccept, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	g := New(Config{})
	resp, err := g.Do(context.Background(), Request{
		URL:     server.URL,
		Method:  "post",
		Headers: map[string]string{"Accept": "application/json"},
		Body:    []byte(`{"k":"v"}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Errorf("Status = %d, want 201", resp.Status)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotBody != `{"k":"v"}` {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDoTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	g := New(Config{Timeout: 50 * time.Millisecond})
	if _, err := g.Do(context.Background(), Request{URL: server.URL, Method: "GET"}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestRedactHeadersCaseInsensitive(t *testing.T) {
	headers := http.Header{}
	headers.Set("AUTHORIZATION", "Bearer tok")
	headers.Set("cookie", "a=b")

	out := RedactHeaders(headers)
	for name, value := range out {
		if value != "[redacted]" {
			t.Errorf("%s = %q, want redacted", name, value)
		}
	}
}
