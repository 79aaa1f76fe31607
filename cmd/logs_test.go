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
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/we-are-mono/blink/daemon/logger"
)

// newTestLogDB seeds a temporary log database with a few entries.
func newTestLogDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "blink.db")

	backend, err := logger.NewSQLiteBackend(dbPath)
	require.NoError(t, err)
	defer backend.Close()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entries := []*logger.Entry{
		{Timestamp: base.Format(time.RFC3339), Level: "info",
			Component: "daemon", Message: "started"},
		{Timestamp: base.Add(time.Minute).Format(time.RFC3339), Level: "error",
			Component: "trigger", Message: "lookup failed",
			Fields: map[string]interface{}{"device": "eth9"}},
		{Timestamp: base.Add(2 * time.Minute).Format(time.RFC3339), Level: "info",
			Component: "server", Message: "client connected"},
	}
	for _, entry := range entries {
		require.NoError(t, backend.Write(entry))
	}
	return dbPath
}

func TestExecuteLogs_All(t *testing.T) {
	dbPath := newTestLogDB(t)

	var buf bytes.Buffer
	require.NoError(t, executeLogs(&buf, dbPath, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[info] daemon: started")
	assert.Contains(t, lines[1], "[error] trigger: lookup failed")
	assert.Contains(t, lines[1], "device=eth9")
	assert.Contains(t, lines[2], "[info] server: client connected")
}

func TestExecuteLogs_LevelFilter(t *testing.T) {
	dbPath := newTestLogDB(t)

	var buf bytes.Buffer
	require.NoError(t, executeLogs(&buf, dbPath, []string{"error"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "lookup failed")
}

func TestExecuteLogs_Lines(t *testing.T) {
	dbPath := newTestLogDB(t)

	oldLines := logsLines
	logsLines = 1
	defer func() { logsLines = oldLines }()

	var buf bytes.Buffer
	require.NoError(t, executeLogs(&buf, dbPath, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "client connected")
}

func TestExecuteLogs_Since(t *testing.T) {
	dbPath := newTestLogDB(t)

	oldSince := logsSince
	logsSince = "2026-08-30T12:01:00Z"
	defer func() { logsSince = oldSince }()

	var buf bytes.Buffer
	require.NoError(t, executeLogs(&buf, dbPath, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "lookup failed")
}

func TestExecuteLogs_TooManyArgs(t *testing.T) {
	var buf bytes.Buffer
	err := executeLogs(&buf, filepath.Join(t.TempDir(), "blink.db"), []string{"error", "extra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 1 argument")
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	since, err := parseSince("1h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-time.Hour), since)

	since, err = parseSince("2026-08-30T11:30:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC), since)

	since, err = parseSince("2026-08-30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), since)

	_, err = parseSince("yesterday", now)
	require.Error(t, err)
}
