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

// Package daemon implements the Blink daemon server and IPC protocol.
package daemon

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/we-are-mono/blink/daemon/logger"
	"github.com/we-are-mono/blink/indicator"
	"github.com/we-are-mono/blink/netdev"
	"github.com/we-are-mono/blink/trigger"
	"github.com/we-are-mono/blink/types"
)

// GetSocketPath returns the socket path, preferring BLINK_SOCKET_PATH env var
func GetSocketPath() string {
	if path := os.Getenv("BLINK_SOCKET_PATH"); path != "" {
		return path
	}
	return "/var/run/blink.sock"
}

// handlerFunc is a function that handles a daemon command
type handlerFunc func(Request) Response

// Server exposes the trigger's attributes over a unix socket using a
// line-delimited JSON request/response protocol.
type Server struct {
	config    *types.BlinkConfig
	trigger   *trigger.Trigger
	listener  net.Listener
	done      chan struct{}
	handlers  map[string]handlerFunc
	startTime time.Time
}

// NewServer creates a server with the real netlink registry and the
// indicator selected by the configuration.
func NewServer(config *types.BlinkConfig) (*Server, error) {
	led, err := indicator.New(config.LED)
	if err != nil {
		return nil, fmt.Errorf("failed to open indicator: %w", err)
	}
	return NewServerWith(config, netdev.NewNetlinkRegistry(), led)
}

// NewServerWith creates a server against explicit registry and
// indicator implementations. Tests inject mocks here.
func NewServerWith(config *types.BlinkConfig, registry netdev.Registry, led indicator.Indicator) (*Server, error) {
	socketPath := GetSocketPath()
	os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket: %w", err)
	}

	if err := os.Chmod(socketPath, 0666); err != nil {
		listener.Close()
		os.Remove(socketPath)
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s := &Server{
		config:    config,
		trigger:   trigger.New(registry, led),
		listener:  listener,
		done:      make(chan struct{}),
		startTime: time.Now(),
	}

	// Initialize command handlers
	s.handlers = map[string]handlerFunc{
		"get":    func(req Request) Response { return s.handleGet(req.Attr) },
		"set":    func(req Request) Response { return s.handleSet(req.Attr, req.Value) },
		"status": func(req Request) Response { return s.handleStatus() },
		"info":   func(req Request) Response { return s.handleInfo() },
	}

	return s, nil
}

// Trigger exposes the server's trigger for tests.
func (s *Server) Trigger() *trigger.Trigger {
	return s.trigger
}

// Start activates the trigger, applies the startup configuration, and
// serves connections until Stop is called. If event subscription fails,
// everything acquired so far is released and the error is returned;
// nothing stays partially registered.
func (s *Server) Start() error {
	logger.Info("Blink daemon starting")

	if err := s.trigger.Activate(); err != nil {
		s.listener.Close()
		os.Remove(GetSocketPath())
		return fmt.Errorf("failed to activate trigger: %w", err)
	}

	// Seed trigger state from blink.json. Mode and interval first so a
	// resolving device name reconciles against the final settings.
	if s.config.Trigger.Mode != "" {
		s.trigger.SetMode(s.config.Trigger.Mode)
	}
	if s.config.Trigger.IntervalMS != 0 {
		s.trigger.SetInterval(s.config.Trigger.IntervalMS)
	}
	if s.config.Trigger.DeviceName != "" {
		if err := s.trigger.SetDeviceName(s.config.Trigger.DeviceName); err != nil {
			logger.Warn("Invalid device name in config",
				logger.Field{Key: "device", Value: s.config.Trigger.DeviceName},
				logger.Field{Key: "error", Value: err.Error()})
		}
	}

	logger.Info("Listening",
		logger.Field{Key: "socket", Value: GetSocketPath()})

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				logger.Warn("Accept failed",
					logger.Field{Key: "error", Value: err.Error()})
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

// Stop shuts the server down: deactivates the trigger (unsubscribes,
// stops the poller, forces the LED off) and removes the socket.
func (s *Server) Stop() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	if s.listener != nil {
		s.listener.Close()
	}
	s.trigger.Deactivate()
	os.Remove(GetSocketPath())
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil {
		return
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendResponse(conn, Response{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
		})
		return
	}

	s.sendResponse(conn, s.handleRequest(req))
}

func (s *Server) handleRequest(req Request) Response {
	handler, ok := s.handlers[req.Command]
	if !ok {
		return Response{
			Success: false,
			Error:   fmt.Sprintf("unknown command: %s", req.Command),
		}
	}
	return handler(req)
}

// handleGet reads one attribute in its textual form: the device name,
// "0"/"1" for flags, space-joined tokens for mode, milliseconds for
// interval. Every read ends with a newline like a sysfs attribute.
func (s *Server) handleGet(attr string) Response {
	t := s.trigger

	var value string
	switch attr {
	case "device_name":
		value = t.DeviceName()
	case "link":
		value = flagText(t.Link())
	case "tx":
		value = flagText(t.Tx())
	case "rx":
		value = flagText(t.Rx())
	case "mode":
		value = t.Mode()
	case "interval":
		value = strconv.Itoa(t.Interval())
	default:
		return Response{
			Success: false,
			Error:   fmt.Sprintf("unknown attribute: %s", attr),
		}
	}

	return Response{Success: true, Data: value + "\n"}
}

// handleSet writes one attribute. Malformed integers and over-length
// device names fail with an invalid-argument error; an out-of-range
// interval is accepted and ignored.
func (s *Server) handleSet(attr, value string) Response {
	t := s.trigger

	switch attr {
	case "device_name":
		if err := t.SetDeviceName(value); err != nil {
			if errors.Is(err, trigger.ErrNameTooLong) {
				return Response{Success: false, Error: "invalid argument: device name too long"}
			}
			return Response{Success: false, Error: err.Error()}
		}
	case "link", "tx", "rx":
		on, err := parseFlag(value)
		if err != nil {
			return Response{Success: false, Error: fmt.Sprintf("invalid argument: %v", err)}
		}
		switch attr {
		case "link":
			t.SetLink(on)
		case "tx":
			t.SetTx(on)
		case "rx":
			t.SetRx(on)
		}
	case "mode":
		t.SetMode(value)
	case "interval":
		ms, err := parseInterval(value)
		if err != nil {
			return Response{Success: false, Error: fmt.Sprintf("invalid argument: %v", err)}
		}
		t.SetInterval(ms)
	default:
		return Response{
			Success: false,
			Error:   fmt.Sprintf("unknown attribute: %s", attr),
		}
	}

	return Response{Success: true, Message: fmt.Sprintf("%s updated", attr)}
}

func (s *Server) handleStatus() Response {
	return Response{Success: true, Data: s.trigger.Status()}
}

func (s *Server) handleInfo() Response {
	return Response{
		Success: true,
		Data: map[string]interface{}{
			"pid":         os.Getpid(),
			"socket":      GetSocketPath(),
			"uptime":      time.Since(s.startTime).Round(time.Second).String(),
			"led_backend": s.config.LED.Backend,
			"led_name":    s.config.LED.Name,
		},
	}
}

func (s *Server) sendResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error("Failed to marshal response",
			logger.Field{Key: "error", Value: err.Error()})
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}

func flagText(on bool) string {
	if on {
		return "1"
	}
	return "0"
}

// parseFlag accepts any integer literal (base prefix allowed, like the
// kernel's kstrtoul with base 0); nonzero means enabled.
func parseFlag(value string) (bool, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return false, fmt.Errorf("not an integer: %q", value)
	}
	return n != 0, nil
}

func parseInterval(value string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	return int(n), nil
}
