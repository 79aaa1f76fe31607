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

package daemon

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/we-are-mono/blink/indicator"
	"github.com/we-are-mono/blink/netdev"
	"github.com/we-are-mono/blink/trigger"
	"github.com/we-are-mono/blink/types"
)

func testConfig() *types.BlinkConfig {
	return &types.BlinkConfig{
		LED:     types.LEDConfig{Backend: "none"},
		Trigger: types.TriggerConfig{Mode: "link", IntervalMS: 50},
		Version: "1.0",
	}
}

// newTestServer builds a server on a temp socket with mock registry and
// indicator.
func newTestServer(t *testing.T) (*Server, *netdev.MockRegistry, *indicator.Mock) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "blink.sock")
	os.Setenv("BLINK_SOCKET_PATH", socketPath)
	t.Cleanup(func() { os.Unsetenv("BLINK_SOCKET_PATH") })

	registry := netdev.NewMockRegistry()
	led := indicator.NewMock(255)

	server, err := NewServerWith(testConfig(), registry, led)
	require.NoError(t, err)
	t.Cleanup(func() { server.Stop() })

	return server, registry, led
}

func TestGetSocketPath(t *testing.T) {
	os.Unsetenv("BLINK_SOCKET_PATH")
	assert.Equal(t, "/var/run/blink.sock", GetSocketPath())

	os.Setenv("BLINK_SOCKET_PATH", "/tmp/custom.sock")
	defer os.Unsetenv("BLINK_SOCKET_PATH")
	assert.Equal(t, "/tmp/custom.sock", GetSocketPath())
}

func TestNewServerWith_CreatesSocket(t *testing.T) {
	_, _, _ = newTestServer(t)

	info, err := os.Stat(GetSocketPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0666), info.Mode().Perm())
}

func TestHandleGet_Defaults(t *testing.T) {
	server, _, _ := newTestServer(t)

	tests := []struct {
		attr string
		want string
	}{
		{"device_name", "\n"},
		{"link", "1\n"},
		{"tx", "0\n"},
		{"rx", "0\n"},
		{"mode", "link\n"},
		{"interval", "50\n"},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			resp := server.handleGet(tt.attr)
			require.True(t, resp.Success, resp.Error)
			assert.Equal(t, tt.want, resp.Data)
		})
	}
}

func TestHandleGet_UnknownAttribute(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := server.handleGet("brightness")
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unknown attribute")
}

func TestHandleSet_DeviceName(t *testing.T) {
	server, registry, _ := newTestServer(t)
	registry.AddLink("eth0", 2)

	resp := server.handleSet("device_name", "eth0")
	require.True(t, resp.Success, resp.Error)

	resp = server.handleGet("device_name")
	assert.Equal(t, "eth0\n", resp.Data)
	assert.True(t, server.Trigger().Bound())
}

func TestHandleSet_DeviceNameTooLong(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := server.handleSet("device_name", strings.Repeat("x", 16))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid argument")
}

func TestHandleSet_Flags(t *testing.T) {
	server, _, _ := newTestServer(t)

	// Base-prefixed integers are accepted, nonzero enables
	require.True(t, server.handleSet("tx", "1").Success)
	require.True(t, server.handleSet("rx", "0x2").Success)
	require.True(t, server.handleSet("link", "0").Success)

	assert.Equal(t, "0\n", server.handleGet("link").Data)
	assert.Equal(t, "1\n", server.handleGet("tx").Data)
	assert.Equal(t, "1\n", server.handleGet("rx").Data)

	resp := server.handleSet("tx", "banana")
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid argument")
}

func TestHandleSet_Mode(t *testing.T) {
	server, _, _ := newTestServer(t)

	require.True(t, server.handleSet("mode", "tx rx").Success)
	assert.Equal(t, "tx rx\n", server.handleGet("mode").Data)
	assert.Equal(t, "0\n", server.handleGet("link").Data)
}

func TestHandleSet_Interval(t *testing.T) {
	server, _, _ := newTestServer(t)

	require.True(t, server.handleSet("interval", "100").Success)
	assert.Equal(t, "100\n", server.handleGet("interval").Data)

	// Out of range is accepted but ignored
	require.True(t, server.handleSet("interval", "999999").Success)
	assert.Equal(t, "100\n", server.handleGet("interval").Data)

	resp := server.handleSet("interval", "fast")
	assert.False(t, resp.Success)
}

func TestHandleStatus(t *testing.T) {
	server, registry, _ := newTestServer(t)
	registry.AddLink("eth0", 2)
	registry.SetCarrier("eth0", true)
	require.True(t, server.handleSet("device_name", "eth0").Success)

	resp := server.handleStatus()
	require.True(t, resp.Success)

	status, ok := resp.Data.(trigger.Status)
	require.True(t, ok)
	assert.Equal(t, "eth0", status.DeviceName)
	assert.True(t, status.Bound)
	assert.True(t, status.LinkUp)
}

func TestHandleRequest_UnknownCommand(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := server.handleRequest(Request{Command: "reboot"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unknown command")
}

func TestServer_StartSeedsConfig(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "blink.sock")
	os.Setenv("BLINK_SOCKET_PATH", socketPath)
	defer os.Unsetenv("BLINK_SOCKET_PATH")

	registry := netdev.NewMockRegistry()
	registry.AddLink("eth0", 2)
	registry.SetCarrier("eth0", true)
	led := indicator.NewMock(255)

	cfg := testConfig()
	cfg.Trigger.DeviceName = "eth0"
	cfg.Trigger.Mode = "link rx"
	cfg.Trigger.IntervalMS = 100

	server, err := NewServerWith(cfg, registry, led)
	require.NoError(t, err)
	defer server.Stop()

	go server.Start() //nolint:errcheck // Stopped via server.Stop

	tr := server.Trigger()
	require.Eventually(t, func() bool { return tr.Bound() },
		time.Second, 5*time.Millisecond)

	assert.Equal(t, "eth0", tr.DeviceName())
	assert.Equal(t, "link rx", tr.Mode())
	assert.Equal(t, 100, tr.Interval())
	assert.True(t, tr.LinkUp())
}

func TestServer_RoundTripOverSocket(t *testing.T) {
	server, registry, _ := newTestServer(t)
	registry.AddLink("eth0", 2)

	go server.Start() //nolint:errcheck // Stopped via server.Stop

	// Wait for the accept loop
	require.Eventually(t, func() bool {
		conn, err := net.Dial("unix", GetSocketPath())
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, time.Second, 5*time.Millisecond)

	send := func(req Request) Response {
		conn, err := net.Dial("unix", GetSocketPath())
		require.NoError(t, err)
		defer conn.Close()

		data, err := json.Marshal(req)
		require.NoError(t, err)
		_, err = conn.Write(append(data, '\n'))
		require.NoError(t, err)

		line, err := bufio.NewReader(conn).ReadBytes('\n')
		require.NoError(t, err)

		var resp Response
		require.NoError(t, json.Unmarshal(line, &resp))
		return resp
	}

	resp := send(Request{Command: "set", Attr: "device_name", Value: "eth0"})
	require.True(t, resp.Success, resp.Error)

	resp = send(Request{Command: "get", Attr: "device_name"})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "eth0\n", resp.Data)

	resp = send(Request{Command: "info"})
	require.True(t, resp.Success, resp.Error)
	info, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "none", info["led_backend"])
}

func TestServer_StopRemovesSocket(t *testing.T) {
	server, _, led := newTestServer(t)

	require.NoError(t, server.Stop())

	_, err := os.Stat(GetSocketPath())
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, led.Level())

	// Stop is idempotent
	assert.NoError(t, server.Stop())
}

func TestServer_StartSubscribeFailure(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "blink.sock")
	os.Setenv("BLINK_SOCKET_PATH", socketPath)
	defer os.Unsetenv("BLINK_SOCKET_PATH")

	registry := netdev.NewMockRegistry()
	registry.SubscribeError = assert.AnError

	server, err := NewServerWith(testConfig(), registry, indicator.NewMock(255))
	require.NoError(t, err)

	err = server.Start()
	require.Error(t, err)

	// Failed activation releases the socket
	_, statErr := os.Stat(socketPath)
	assert.True(t, os.IsNotExist(statErr))
}
