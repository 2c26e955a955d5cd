// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package netguard

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yihua-bot/openclaw/lib/netutil"
)

// Request is a validated outbound request specification.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

// Response is the captured outcome of an outbound request. A non-2xx
// status (including redirects) is normal delivery data, not an error.
type Response struct {
	Status        int
	Headers       map[string]string
	Body          []byte
	BodyTruncated bool
	Duration      time.Duration
}

// sensitiveHeaders are redacted in any returned or logged header map.
var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
}

// RedactHeaders flattens an http.Header into a map with sensitive
// values replaced. Multi-valued headers are joined with ", ".
func RedactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if sensitiveHeaders[strings.ToLower(name)] {
			out[name] = "[redacted]"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// Do issues a request whose URL has already passed Validate. The
// response body is captured up to the fixed byte ceiling with a
// truncation flag; redirects are never followed.
func (g *Guard) Do(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	var body *bytes.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	start := time.Now()
	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("issuing request: %w", err)
	}
	defer httpResp.Body.Close()

	data, truncated, err := netutil.ReadBounded(httpResp.Body, netutil.MaxCaptureBytes)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	duration := time.Since(start)

	g.logger.Debug("outbound request completed",
		"method", method,
		"url", req.URL,
		"status", httpResp.StatusCode,
		"bytes", len(data),
		"truncated", truncated,
		"duration", duration,
	)

	return &Response{
		Status:        httpResp.StatusCode,
		Headers:       RedactHeaders(httpResp.Header),
		Body:          data,
		BodyTruncated: truncated,
		Duration:      duration,
	}, nil
}
