// Copyright (C) 2026 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/we-are-mono/blink/daemon"
)

// mockClient implements ClientInterface for command tests.
type mockClient struct {
	sendFunc func(req daemon.Request) (*daemon.Response, error)
	requests []daemon.Request
}

func (m *mockClient) Send(req daemon.Request) (*daemon.Response, error) {
	m.requests = append(m.requests, req)
	return m.sendFunc(req)
}

func TestSetVersion(t *testing.T) {
	defer SetVersion("dev", "unknown")

	SetVersion("1.2.3", "2026-08-30")
	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "2026-08-30", BuildTime)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"daemon", "get", "set", "status", "monitor"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
