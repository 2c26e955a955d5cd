// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Tool names accepted by the executor.
const (
	ToolShell       = "shell"
	ToolHTTPRequest = "http_request"
)

// Request is one tool invocation from the agent loop. Params is the
// raw parameter bag from the model; it is decoded strictly, so an
// unknown key is a validation failure rather than a silent drop.
type Request struct {
	ID     string
	Tool   string
	Params map[string]any
	Time   time.Time
}

// NewRequest assigns a fresh request ID and arrival time.
func NewRequest(tool string, params map[string]any) Request {
	return Request{ID: uuid.NewString(), Tool: tool, Params: params, Time: time.Now().UTC()}
}

// ShellParams are the decoded parameters of a shell request. Approved
// records that a human reviewed this specific command; the executor
// never sets it.
type ShellParams struct {
	Command  string `mapstructure:"command"`
	Approved bool   `mapstructure:"approved"`
}

// HTTPParams are the decoded parameters of an http_request.
type HTTPParams struct {
	URL     string            `mapstructure:"url"`
	Method  string            `mapstructure:"method"`
	Headers map[string]string `mapstructure:"headers"`
	Body    string            `mapstructure:"body"`
}

// decodeParams decodes a parameter bag into out, rejecting unknown
// keys and type mismatches.
func decodeParams(params map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("building parameter decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return fmt.Errorf("decoding parameters: %w", err)
	}
	return nil
}

func decodeShellParams(params map[string]any) (ShellParams, error) {
	var p ShellParams
	if err := decodeParams(params, &p); err != nil {
		return p, err
	}
	if p.Command == "" {
		return p, fmt.Errorf("shell request requires a command")
	}
	return p, nil
}

func decodeHTTPParams(params map[string]any) (HTTPParams, error) {
	var p HTTPParams
	if err := decodeParams(params, &p); err != nil {
		return p, err
	}
	if p.URL == "" {
		return p, fmt.Errorf("http_request requires a url")
	}
	return p, nil
}
