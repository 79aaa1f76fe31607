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

// Package types defines the configuration structures for Blink.
package types

// BlinkConfig represents /etc/blink/blink.json
type BlinkConfig struct {
	LED     LEDConfig      `json:"led"`
	Trigger TriggerConfig  `json:"trigger"`
	Logging *LoggingConfig `json:"logging,omitempty"`
	Version string         `json:"version"`
}

// LEDConfig selects the indicator the daemon drives.
type LEDConfig struct {
	// Backend is "sysfs" or "none". "none" runs the trigger without
	// touching hardware, useful on boards without a spare LED.
	Backend string `json:"backend"`

	// Name is the LED name under /sys/class/leds (e.g. "green:wan").
	Name string `json:"name,omitempty"`
}

// TriggerConfig seeds the trigger state at daemon startup. Runtime
// changes made via `blink set` are not written back.
type TriggerConfig struct {
	// DeviceName is the network interface to monitor; empty leaves the
	// trigger unbound until configured over the socket.
	DeviceName string `json:"device_name,omitempty"`

	// Mode is a space-separated subset of "link", "tx" and "rx".
	Mode string `json:"mode,omitempty"`

	// IntervalMS is the blink pulse width in milliseconds.
	IntervalMS int `json:"interval_ms,omitempty"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level        string   `json:"level,omitempty"`         // debug, info, warn, error
	Format       string   `json:"format,omitempty"`        // text, json
	Outputs      []string `json:"outputs,omitempty"`       // file, journald, sqlite
	FilePath     string   `json:"file_path,omitempty"`     // Path to log file
	DatabasePath string   `json:"database_path,omitempty"` // Path to sqlite log database
}
