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

package logger

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// JournaldBackend writes log entries to systemd journal
type JournaldBackend struct {
	format string // "json" or "text"
	mu     sync.Mutex
}

// NewJournaldBackend creates a new journald backend
// Returns an error if systemd journal is not available
func NewJournaldBackend(format string) (*JournaldBackend, error) {
	// Check if systemd-cat is available
	if _, err := exec.LookPath("systemd-cat"); err != nil {
		return nil, fmt.Errorf("systemd-cat not found: %w", err)
	}

	return &JournaldBackend{
		format: format,
	}, nil
}

// Write writes a log entry to systemd journal
func (b *JournaldBackend) Write(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var output string
	if b.format == "json" {
		jsonBytes, err := entry.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal log entry: %w", err)
		}
		output = string(jsonBytes)
	} else {
		output = entry.ToText()
	}

	cmd := exec.Command("systemd-cat", "-t", "blink", "-p", journaldPriority(entry.Level))
	cmd.Stdin = strings.NewReader(output + "\n")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to write to journald: %w", err)
	}

	return nil
}

// journaldPriority maps log levels to syslog priority names
func journaldPriority(level string) string {
	switch level {
	case "debug":
		return "debug"
	case "warn":
		return "warning"
	case "error":
		return "err"
	default:
		return "info"
	}
}

// Close is a no-op for the journald backend
func (b *JournaldBackend) Close() error {
	return nil
}
