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

// Noop is an Indicator that tracks levels but drives no hardware.
// Used when blink runs on a board without a spare LED.
type Noop struct {
	mu    sync.Mutex
	level int
}

// NewNoop creates a new Noop indicator.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Level() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.level
}

func (n *Noop) MaxLevel() int {
	return 1
}

func (n *Noop) SetLevel(level int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.level = level
	return nil
}

func (n *Noop) BlinkOneShot(level int, on, off time.Duration, invert bool) error {
	return nil
}

func (n *Noop) StopBlink() {}
