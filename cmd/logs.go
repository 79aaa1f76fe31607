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
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/we-are-mono/blink/daemon/logger"
	"github.com/we-are-mono/blink/state"
)

var (
	logsLines int
	logsSince string
)

var logsCmd = &cobra.Command{
	Use:   "logs [level]",
	Short: "Show Blink daemon logs",
	Long: `Display logs recorded by the Blink daemon in its SQLite log database.
Optionally filter by log level (debug, info, warn, error).

Examples:
  blink logs                      # Last 100 entries
  blink logs error                # Only errors
  blink logs -n 20                # Last 20 entries
  blink logs --since 1h           # Entries from the last hour
  blink logs --since 2026-08-30`,
	Run: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 100, "Number of entries to show")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since time (e.g. '1h', '2026-08-30', RFC3339)")
}

func runLogs(cmd *cobra.Command, args []string) {
	dbPath := logDatabasePath()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] Log database not found: %s", dbPath))
		cmd.PrintErrln("[INFO] Enable the sqlite log output and run the daemon at least once.")
		exitWithError()
		return
	}

	if err := executeLogs(cmd.OutOrStdout(), dbPath, args); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// logDatabasePath resolves the log database location from the daemon
// configuration, falling back to the default path.
func logDatabasePath() string {
	dbPath := "/var/log/blink/blink.db"
	if cfg, err := state.LoadBlinkConfig(); err == nil {
		if cfg.Logging != nil && cfg.Logging.DatabasePath != "" {
			dbPath = cfg.Logging.DatabasePath
		}
	}
	return dbPath
}

// executeLogs queries the log database and prints matching entries.
func executeLogs(w io.Writer, dbPath string, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 argument, received %d", len(args))
	}

	filter := logger.QueryFilter{Limit: logsLines}
	if len(args) > 0 {
		filter.Level = args[0]
	}
	if logsSince != "" {
		since, err := parseSince(logsSince, time.Now())
		if err != nil {
			return err
		}
		filter.Since = since
	}

	backend, err := logger.NewSQLiteBackend(dbPath)
	if err != nil {
		return err
	}
	defer backend.Close()

	entries, err := backend.Query(filter)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Fprintln(w, formatLogEntry(entry))
	}
	return nil
}

// parseSince accepts a duration relative to now ("1h", "30m"), a date
// ("2026-08-30"), or an RFC3339 timestamp.
func parseSince(value string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return now.Add(-d), nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid --since value: %s", value)
}

// formatLogEntry renders an entry as a single log line with any
// structured fields appended as key=value pairs.
func formatLogEntry(entry *logger.Entry) string {
	line := fmt.Sprintf("[%s] [%s] %s: %s",
		entry.Timestamp,
		entry.Level,
		entry.Component,
		entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, entry.Fields[k])
		}
	}
	return line
}
