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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlinkConfig_RoundTrip(t *testing.T) {
	cfg := BlinkConfig{
		Version: "1.0",
		LED:     LEDConfig{Backend: "sysfs", Name: "green:wan"},
		Trigger: TriggerConfig{DeviceName: "eth0", Mode: "link rx", IntervalMS: 100},
		Logging: &LoggingConfig{Level: "info", Format: "json", Outputs: []string{"file", "sqlite"}},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded BlinkConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestBlinkConfig_OptionalSectionsOmitted(t *testing.T) {
	cfg := BlinkConfig{
		Version: "1.0",
		LED:     LEDConfig{Backend: "none"},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "logging")
	assert.NotContains(t, string(data), "device_name")
	assert.NotContains(t, string(data), "name")
}

func TestBlinkConfig_ParsesExample(t *testing.T) {
	raw := `{
	  "version": "1.0",
	  "led": {"backend": "sysfs", "name": "green:wan"},
	  "trigger": {"device_name": "eth0", "mode": "link tx rx", "interval_ms": 50},
	  "logging": {"level": "debug", "outputs": ["journald"]}
	}`

	var cfg BlinkConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	assert.Equal(t, "green:wan", cfg.LED.Name)
	assert.Equal(t, "link tx rx", cfg.Trigger.Mode)
	assert.Equal(t, 50, cfg.Trigger.IntervalMS)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, []string{"journald"}, cfg.Logging.Outputs)
}
