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

// Package trigger implements the netdev indicator trigger: a state
// machine binding one LED to one named network interface. The LED's
// resting level reflects link state and a one-shot pulse is issued
// whenever the interface's packet counters move.
//
// Concurrency discipline: a single mutex guards all trigger state.
// Every mutation path first cancels the poll task and waits for its
// in-flight tick to return, then takes the lock, mutates, and
// reconciles. The poller reads counters outside the lock and applies
// the result under it.
package trigger

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/we-are-mono/blink/daemon/logger"
	"github.com/we-are-mono/blink/indicator"
	"github.com/we-are-mono/blink/netdev"
)

const (
	// MinIntervalMS and MaxIntervalMS bound the blink interval.
	// Writes outside the range are accepted but have no effect.
	MinIntervalMS = 5
	MaxIntervalMS = 10000

	// DefaultIntervalMS is the blink interval at activation.
	DefaultIntervalMS = 50
)

// ErrNameTooLong is returned when a device name doesn't fit IFNAMSIZ.
var ErrNameTooLong = errors.New("device name too long")

// Trigger drives one indicator from one monitored interface.
type Trigger struct {
	registry netdev.Registry
	led      indicator.Indicator

	mu           sync.Mutex
	deviceName   string
	dev          netlink.Link
	monitorLink  bool
	monitorTx    bool
	monitorRx    bool
	linkUp       bool
	interval     time.Duration
	lastActivity uint64
	pulseLevel   int
	poll         *pollTask

	events   chan netdev.Event
	unsub    chan struct{}
	pumpDone chan struct{}
}

// New creates a trigger in its default state: unbound, link monitoring
// on, traffic monitoring off, 50ms interval.
func New(registry netdev.Registry, led indicator.Indicator) *Trigger {
	return &Trigger{
		registry:    registry,
		led:         led,
		monitorLink: true,
		interval:    DefaultIntervalMS * time.Millisecond,
	}
}

// Activate subscribes to the registry's event stream and starts the
// event pump. On subscription failure nothing is left registered.
func (t *Trigger) Activate() error {
	events := make(chan netdev.Event, 16)
	unsub := make(chan struct{})

	if err := t.registry.Subscribe(events, unsub); err != nil {
		return err
	}

	t.events = events
	t.unsub = unsub
	t.pumpDone = make(chan struct{})
	go t.eventPump()
	return nil
}

// Deactivate unsubscribes, stops the poller, releases the device
// handle, and forces the indicator off. No event or tick can reference
// the trigger once it returns.
func (t *Trigger) Deactivate() {
	if t.unsub != nil {
		close(t.unsub)
		<-t.pumpDone
		t.unsub = nil
	}

	t.cancelPoll()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.dev = nil
	t.deviceName = ""
	t.linkUp = false
	t.led.StopBlink()
	t.led.SetLevel(0)
}

func (t *Trigger) eventPump() {
	defer close(t.pumpDone)
	for {
		select {
		case <-t.unsub:
			return
		case ev := <-t.events:
			t.HandleEvent(ev)
		}
	}
}

// HandleEvent processes one interface lifecycle event. Events for other
// interfaces are discarded without touching state; the match is against
// the configured name, not the bound handle, so a register for a
// not-yet-resolved name is still recognized. Returns whether the event
// was consumed.
func (t *Trigger) HandleEvent(ev netdev.Event) bool {
	t.mu.Lock()
	match := ev.Name != "" && ev.Name == t.deviceName
	t.mu.Unlock()
	if !match {
		return false
	}

	t.cancelPoll()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.linkUp = false
	switch ev.Kind {
	case netdev.EventRegister:
		// A fresh incarnation of the device; drop any stale handle
		// and resolve the new one. Resolution failure just leaves
		// the trigger unbound.
		t.dev = nil
		if link, err := t.registry.LinkByName(ev.Name); err == nil {
			t.dev = link
		}
	case netdev.EventRename, netdev.EventUnregister:
		t.dev = nil
	case netdev.EventUp, netdev.EventChange:
		if t.dev != nil && t.registry.Carrier(t.dev) {
			t.linkUp = true
		}
	}

	logger.Debug("Device event",
		logger.Field{Key: "device", Value: ev.Name},
		logger.Field{Key: "event", Value: ev.Kind.String()},
		logger.Field{Key: "link_up", Value: t.linkUp})

	t.setBaselineState()
	return true
}

// SetDeviceName rebinds the trigger to a different interface. An empty
// name fully unbinds. Names that don't resolve are accepted and leave
// the trigger unbound until the device registers.
func (t *Trigger) SetDeviceName(name string) error {
	name = strings.TrimSuffix(name, "\n")
	if len(name) >= unix.IFNAMSIZ {
		return ErrNameTooLong
	}

	t.cancelPoll()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.dev = nil
	t.deviceName = name
	if name != "" {
		if link, err := t.registry.LinkByName(name); err == nil {
			t.dev = link
		}
	}

	t.linkUp = t.dev != nil && t.registry.Carrier(t.dev)
	t.lastActivity = 0

	logger.Info("Device rebound",
		logger.Field{Key: "device", Value: name},
		logger.Field{Key: "resolved", Value: t.dev != nil})

	t.setBaselineState()
	return nil
}

// SetLink toggles link monitoring: the indicator's resting level
// follows carrier state.
func (t *Trigger) SetLink(on bool) {
	t.mutateFlags(func() { t.monitorLink = on })
}

// SetTx toggles blinking on transmitted packets.
func (t *Trigger) SetTx(on bool) {
	t.mutateFlags(func() { t.monitorTx = on })
}

// SetRx toggles blinking on received packets.
func (t *Trigger) SetRx(on bool) {
	t.mutateFlags(func() { t.monitorRx = on })
}

// SetMode sets all three monitoring flags from substring presence, the
// same loose parse the kernel trigger used: "link tx" enables link and
// tx and clears rx; unknown tokens are ignored.
func (t *Trigger) SetMode(mode string) {
	t.mutateFlags(func() {
		t.monitorLink = strings.Contains(mode, "link")
		t.monitorTx = strings.Contains(mode, "tx")
		t.monitorRx = strings.Contains(mode, "rx")
	})
}

// mutateFlags applies a monitoring-flag change under the standard write
// protocol: cancel and drain the poller, lock, mutate, reset the
// activity baseline, reconcile.
func (t *Trigger) mutateFlags(apply func()) {
	t.cancelPoll()

	t.mu.Lock()
	defer t.mu.Unlock()

	apply()
	t.lastActivity = 0
	t.setBaselineState()
}

// SetInterval sets the blink pulse width in milliseconds. Values
// outside [MinIntervalMS, MaxIntervalMS] are silently ignored.
func (t *Trigger) SetInterval(ms int) {
	if ms < MinIntervalMS || ms > MaxIntervalMS {
		return
	}

	t.cancelPoll()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.interval = time.Duration(ms) * time.Millisecond
	t.setBaselineState()
}

// setBaselineState recomputes the indicator output and the poller
// run/stop decision from current state. Called with t.mu held after
// every mutation.
//
// A non-zero current brightness is captured as the pulse level, so an
// operator-set brightness becomes the blink amplitude; with nothing
// captured the maximum is used.
func (t *Trigger) setBaselineState() {
	if level := t.led.Level(); level > 0 {
		t.pulseLevel = level
	}
	if t.pulseLevel == 0 {
		t.pulseLevel = t.led.MaxLevel()
	}

	if !t.linkUp {
		t.led.SetLevel(0)
		return
	}

	if t.monitorLink {
		t.led.SetLevel(t.pulseLevel)
	} else {
		t.led.SetLevel(0)
	}

	// Looking for rx/tx activity: start sampling the counters.
	if (t.monitorTx || t.monitorRx) && t.poll == nil {
		t.startPoll()
	}
}

func (t *Trigger) snapshotLink() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.monitorLink
}

func (t *Trigger) snapshotTx() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.monitorTx
}

func (t *Trigger) snapshotRx() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.monitorRx
}

// DeviceName returns the configured interface name.
func (t *Trigger) DeviceName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deviceName
}

// Link reports whether link monitoring is enabled.
func (t *Trigger) Link() bool { return t.snapshotLink() }

// Tx reports whether tx monitoring is enabled.
func (t *Trigger) Tx() bool { return t.snapshotTx() }

// Rx reports whether rx monitoring is enabled.
func (t *Trigger) Rx() bool { return t.snapshotRx() }

// Mode returns the enabled monitoring flags as space-joined tokens.
func (t *Trigger) Mode() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tokens []string
	if t.monitorLink {
		tokens = append(tokens, "link")
	}
	if t.monitorTx {
		tokens = append(tokens, "tx")
	}
	if t.monitorRx {
		tokens = append(tokens, "rx")
	}
	return strings.Join(tokens, " ")
}

// Interval returns the blink pulse width in milliseconds.
func (t *Trigger) Interval() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.interval / time.Millisecond)
}

// Bound reports whether a device handle is currently held.
func (t *Trigger) Bound() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dev != nil
}

// LinkUp reports the composite linkup condition: bound and carrier.
func (t *Trigger) LinkUp() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.linkUp
}

// Polling reports whether the activity poller is running.
func (t *Trigger) Polling() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.poll != nil
}

// Status is a point-in-time snapshot of trigger state for the CLI.
type Status struct {
	DeviceName   string `json:"device_name"`
	Mode         string `json:"mode"`
	Bound        bool   `json:"bound"`
	LinkUp       bool   `json:"link_up"`
	Polling      bool   `json:"polling"`
	IntervalMS   int    `json:"interval_ms"`
	LastActivity uint64 `json:"last_activity"`
	RxPackets    uint64 `json:"rx_packets"`
	TxPackets    uint64 `json:"tx_packets"`
	LEDLevel     int    `json:"led_level"`
}

// Status returns a snapshot of the trigger, including live counters
// when a device is bound.
func (t *Trigger) Status() Status {
	t.mu.Lock()
	s := Status{
		DeviceName:   t.deviceName,
		Bound:        t.dev != nil,
		LinkUp:       t.linkUp,
		Polling:      t.poll != nil,
		IntervalMS:   int(t.interval / time.Millisecond),
		LastActivity: t.lastActivity,
	}
	dev := t.dev
	t.mu.Unlock()

	s.Mode = t.Mode()
	s.LEDLevel = t.led.Level()
	if dev != nil {
		if rx, tx, err := t.registry.Counters(dev); err == nil {
			s.RxPackets = rx
			s.TxPackets = tx
		}
	}
	return s
}
