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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LEDBasePath is the base path for the LED sysfs interface
const LEDBasePath = "/sys/class/leds"

// SysfsLED implements Indicator using the Linux sysfs LED interface.
// One-shot pulses are timed in-process with time.AfterFunc since the
// brightness file has no pulse semantics of its own.
type SysfsLED struct {
	name string
	path string
	max  int

	mu         sync.Mutex
	blinkTimer *time.Timer
}

// NewSysfsLED opens the LED with the given name under /sys/class/leds.
func NewSysfsLED(name string) (*SysfsLED, error) {
	return NewSysfsLEDAt(LEDBasePath, name)
}

// NewSysfsLEDAt opens an LED under an alternate base path. Tests point
// this at a temporary directory.
func NewSysfsLEDAt(basePath, name string) (*SysfsLED, error) {
	path := filepath.Join(basePath, name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("LED %s not found at %s: %w", name, path, err)
	}

	l := &SysfsLED{name: name, path: path, max: 255}
	if max, err := l.readInt("max_brightness"); err == nil && max > 0 {
		l.max = max
	}
	return l, nil
}

// Name returns the LED name.
func (l *SysfsLED) Name() string {
	return l.name
}

func (l *SysfsLED) readInt(fileName string) (int, error) {
	data, err := os.ReadFile(filepath.Join(l.path, fileName))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s for LED %s: %w", fileName, l.name, err)
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (l *SysfsLED) writeInt(fileName string, value int) error {
	path := filepath.Join(l.path, fileName)
	if err := os.WriteFile(path, []byte(strconv.Itoa(value)), 0644); err != nil {
		return fmt.Errorf("failed to write %s for LED %s: %w", fileName, l.name, err)
	}
	return nil
}

func (l *SysfsLED) Level() int {
	level, err := l.readInt("brightness")
	if err != nil {
		return 0
	}
	return level
}

func (l *SysfsLED) MaxLevel() int {
	return l.max
}

func (l *SysfsLED) SetLevel(level int) error {
	if level < 0 {
		level = 0
	}
	if level > l.max {
		level = l.max
	}
	return l.writeInt("brightness", level)
}

// BlinkOneShot writes the first phase immediately and schedules the
// second. The pulse ends at its baseline level, so no third step is
// needed: OFF for a normal pulse, ON for an inverted one.
func (l *SysfsLED) BlinkOneShot(level int, on, off time.Duration, invert bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopBlinkLocked()

	first, firstDur, second := level, on, 0
	if invert {
		first, firstDur, second = 0, off, level
	}

	if err := l.SetLevel(first); err != nil {
		return err
	}
	l.blinkTimer = time.AfterFunc(firstDur, func() {
		l.SetLevel(second)
	})
	return nil
}

func (l *SysfsLED) StopBlink() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopBlinkLocked()
}

func (l *SysfsLED) stopBlinkLocked() {
	if l.blinkTimer != nil {
		l.blinkTimer.Stop()
		l.blinkTimer = nil
	}
}
