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
	"fmt"

	"github.com/we-are-mono/blink/types"
)

// New creates an Indicator from the LED configuration.
func New(cfg types.LEDConfig) (Indicator, error) {
	switch cfg.Backend {
	case "", "sysfs":
		if cfg.Name == "" {
			return nil, fmt.Errorf("led.name is required for the sysfs backend")
		}
		return NewSysfsLED(cfg.Name)
	case "none":
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("unknown LED backend %q", cfg.Backend)
	}
}
