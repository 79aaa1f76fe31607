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

// Package state manages configuration loading and persistence for Blink.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/we-are-mono/blink/types"
)

// LoadBlinkConfig loads the blink.json configuration from disk.
// If the file doesn't exist, it returns a default configuration.
func LoadBlinkConfig() (*types.BlinkConfig, error) {
	path := filepath.Join(GetConfigDir(), "blink.json")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return getDefaultBlinkConfig(), nil
	}

	var config types.BlinkConfig
	if err := LoadConfig("blink", &config); err != nil {
		return nil, fmt.Errorf("failed to load blink config: %w", err)
	}

	if config.LED.Backend == "" {
		config.LED.Backend = "sysfs"
	}

	return &config, nil
}

// SaveBlinkConfig saves the blink.json configuration to disk.
func SaveBlinkConfig(config *types.BlinkConfig) error {
	return SaveConfig("blink", config)
}

// getDefaultBlinkConfig returns the configuration used when no
// blink.json exists yet. The trigger starts unbound with link
// monitoring enabled, matching the kernel trigger defaults.
func getDefaultBlinkConfig() *types.BlinkConfig {
	return &types.BlinkConfig{
		Version: "1.0",
		LED: types.LEDConfig{
			Backend: "sysfs",
		},
		Trigger: types.TriggerConfig{
			Mode:       "link",
			IntervalMS: 50,
		},
	}
}
