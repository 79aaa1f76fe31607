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
	"sync"
	"time"
)

// BlinkCall records a single BlinkOneShot invocation.
type BlinkCall struct {
	Level  int
	On     time.Duration
	Off    time.Duration
	Invert bool
}

// Mock is a mock implementation of Indicator for testing. It records
// every call for verification.
type Mock struct {
	mu    sync.Mutex
	level int
	max   int

	// Call records for verification
	LevelHistory []int
	Blinks       []BlinkCall
	StopCalls    int

	// Error injection
	SetLevelError error
	BlinkError    error
}

// NewMock creates a new Mock indicator with the given maximum level.
func NewMock(max int) *Mock {
	return &Mock{max: max}
}

func (m *Mock) Level() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Mock) MaxLevel() int {
	return m.max
}

func (m *Mock) SetLevel(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetLevelError != nil {
		return m.SetLevelError
	}
	m.level = level
	m.LevelHistory = append(m.LevelHistory, level)
	return nil
}

func (m *Mock) BlinkOneShot(level int, on, off time.Duration, invert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.BlinkError != nil {
		return m.BlinkError
	}
	m.Blinks = append(m.Blinks, BlinkCall{Level: level, On: on, Off: off, Invert: invert})
	return nil
}

func (m *Mock) StopBlink() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
}

// BlinkCount returns the number of pulses issued so far.
func (m *Mock) BlinkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Blinks)
}

// LastBlink returns the most recent pulse, or a zero value if none.
func (m *Mock) LastBlink() BlinkCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Blinks) == 0 {
		return BlinkCall{}
	}
	return m.Blinks[len(m.Blinks)-1]
}

// Levels returns a copy of the recorded SetLevel history.
func (m *Mock) Levels() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.LevelHistory))
	copy(out, m.LevelHistory)
	return out
}
