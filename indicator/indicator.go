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

// Package indicator abstracts the LED the trigger drives. The sysfs
// implementation talks to /sys/class/leds; mock and noop implementations
// cover tests and boards without a spare LED.
package indicator

import "time"

// Indicator is the output device the trigger drives.
type Indicator interface {
	// Level returns the current brightness.
	Level() int

	// MaxLevel returns the maximum brightness the device supports.
	MaxLevel() int

	// SetLevel sets the brightness. 0 is off.
	SetLevel(level int) error

	// BlinkOneShot issues a single timed pulse at the given brightness:
	// on for the on duration, then off. With invert set the pulse runs
	// the opposite phase first, dipping from an ON baseline instead of
	// rising from OFF.
	BlinkOneShot(level int, on, off time.Duration, invert bool) error

	// StopBlink cancels any pulse in flight. The brightness is left
	// wherever the pulse put it; callers restore the baseline.
	StopBlink()
}
