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

package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/we-are-mono/blink/types"
)

func TestFactory_None(t *testing.T) {
	led, err := New(types.LEDConfig{Backend: "none"})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, led)
}

func TestFactory_SysfsRequiresName(t *testing.T) {
	_, err := New(types.LEDConfig{Backend: "sysfs"})
	assert.Error(t, err)
}

func TestFactory_UnknownBackend(t *testing.T) {
	_, err := New(types.LEDConfig{Backend: "gpio"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LED backend")
}
