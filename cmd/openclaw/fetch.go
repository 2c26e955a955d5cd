// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/yihua-bot/openclaw/executor"
	"github.com/yihua-bot/openclaw/lib/config"
	"github.com/yihua-bot/openclaw/netguard"
)

// fetchCmd implements the "fetch" command.
func fetchCmd(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("fetch", pflag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	method := fs.String("method", "GET", "HTTP method")
	headers := fs.StringSlice("header", nil, "Request header (KEY=VALUE), repeatable")
	body := fs.String("body", "", "Request body")

	fs.Usage = func() {
		fmt.Print(`openclaw fetch - Issue a guarded HTTP request

The URL must pass the network policy: https or http scheme, no
credentials, no IP literals, and a host under an allowlisted domain.

USAGE
    openclaw fetch [flags] <url>

FLAGS
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one URL is required")
	}
	url := fs.Arg(0)

	headerMap := make(map[string]string)
	for _, h := range *headers {
		parts := strings.SplitN(h, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid header format %q: must be KEY=VALUE", h)
		}
		headerMap[parts[0]] = parts[1]
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	exec, auditLog, err := buildExecutor(cfg, "auto", 0, logger)
	if err != nil {
		return err
	}
	defer auditLog.Close()

	params := map[string]any{
		"url":    url,
		"method": *method,
	}
	if len(headerMap) > 0 {
		params["headers"] = headerMap
	}
	if *body != "" {
		params["body"] = *body
	}

	result, err := exec.Execute(context.Background(), executor.NewRequest(executor.ToolHTTPRequest, params))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d (%s)\n", result.HTTP.Status, result.HTTP.Duration.Round(time.Millisecond))
	names := make([]string, 0, len(result.HTTP.Headers))
	for name := range result.HTTP.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, result.HTTP.Headers[name])
	}
	os.Stdout.Write(result.HTTP.Body)
	if result.HTTP.BodyTruncated {
		fmt.Fprintln(os.Stderr, "openclaw: body truncated at capture limit")
	}
	return nil
}

// checkURLCmd implements the "check-url" command.
func checkURLCmd(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("check-url", pflag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one URL is required")
	}
	url := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	guard := netguard.New(netguard.Config{
		AllowedDomains: cfg.HTTPRequest.AllowedDomains,
		Logger:         logger,
	})
	if err := guard.Validate(url); err != nil {
		return err
	}
	fmt.Println("allowed")
	return nil
}
