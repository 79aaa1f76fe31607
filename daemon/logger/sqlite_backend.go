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
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite3 driver
)

// SQLiteBackend persists log entries to a SQLite database so they
// survive restarts and can be queried by level or component.
type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteBackend opens (creating if needed) the log database at path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping log database: %w", err)
	}

	schemaSQL := `
		CREATE TABLE IF NOT EXISTS logs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  TEXT NOT NULL,
			level      TEXT NOT NULL,
			component  TEXT NOT NULL,
			message    TEXT NOT NULL,
			fields     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_logs_level ON logs(level);
	`
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create logs table: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Write inserts a log entry into the database
func (b *SQLiteBackend) Write(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var fields string
	if len(entry.Fields) > 0 {
		data, err := json.Marshal(entry.Fields)
		if err != nil {
			return fmt.Errorf("failed to marshal log fields: %w", err)
		}
		fields = string(data)
	}

	insertSQL := `INSERT INTO logs (timestamp, level, component, message, fields) VALUES (?, ?, ?, ?, ?)`
	if _, err := b.db.Exec(insertSQL, entry.Timestamp, entry.Level, entry.Component, entry.Message, fields); err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}

	return nil
}

// QueryFilter narrows the entries returned by Query. Zero values
// match everything.
type QueryFilter struct {
	Level string    // exact level match (debug, info, warn, error)
	Since time.Time // entries at or after this time
	Limit int       // keep only the most recent N entries (0 = all)
}

// Query returns stored log entries matching the filter in
// chronological order.
func (b *SQLiteBackend) Query(filter QueryFilter) ([]*Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Timestamps are stored as RFC3339 UTC strings, so lexicographic
	// comparison matches chronological order.
	querySQL := `SELECT timestamp, level, component, message, fields FROM logs`
	var conds []string
	var queryArgs []interface{}
	if filter.Level != "" {
		conds = append(conds, "level = ?")
		queryArgs = append(queryArgs, filter.Level)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "timestamp >= ?")
		queryArgs = append(queryArgs, filter.Since.UTC().Format(time.RFC3339))
	}
	if len(conds) > 0 {
		querySQL += " WHERE " + strings.Join(conds, " AND ")
	}
	querySQL += " ORDER BY id DESC"
	if filter.Limit > 0 {
		querySQL += " LIMIT ?"
		queryArgs = append(queryArgs, filter.Limit)
	}

	rows, err := b.db.Query(querySQL, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var fields sql.NullString
		if err := rows.Scan(&entry.Timestamp, &entry.Level, &entry.Component, &entry.Message, &fields); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}
		if fields.Valid && fields.String != "" {
			if err := json.Unmarshal([]byte(fields.String), &entry.Fields); err != nil {
				return nil, fmt.Errorf("failed to unmarshal log fields: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log rows: %w", err)
	}

	// Rows come back newest-first so LIMIT keeps the most recent
	// entries; reverse for chronological display.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}

// Count returns the number of stored log entries.
func (b *SQLiteBackend) Count() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var count int
	if err := b.db.QueryRow(`SELECT COUNT(*) FROM logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (b *SQLiteBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
