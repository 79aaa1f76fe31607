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

// Package netdev provides access to network device state and lifecycle
// events. The Registry interface abstracts netlink so the trigger core
// can be tested without a real network stack.
package netdev

import (
	"github.com/vishvananda/netlink"
)

// EventKind identifies the lifecycle event affecting an interface.
type EventKind int

const (
	// EventRegister fires when an interface appears.
	EventRegister EventKind = iota
	// EventUnregister fires when an interface is removed.
	EventUnregister
	// EventRename fires when an interface changes name.
	EventRename
	// EventUp fires when an interface is administratively brought up.
	EventUp
	// EventDown fires when an interface is administratively taken down.
	EventDown
	// EventChange fires on any other state change (carrier, flags, MTU).
	EventChange
)

// String returns the event kind name for logging.
func (k EventKind) String() string {
	switch k {
	case EventRegister:
		return "register"
	case EventUnregister:
		return "unregister"
	case EventRename:
		return "rename"
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventChange:
		return "change"
	default:
		return "unknown"
	}
}

// Event is a single interface lifecycle notification. Name carries the
// interface's current name at the time of the event.
type Event struct {
	Name string
	Kind EventKind
}

// Registry abstracts network device lookup, state queries, and lifecycle
// event subscription for testability.
type Registry interface {
	// LinkByName resolves an interface by name, returning a handle.
	LinkByName(name string) (netlink.Link, error)

	// Carrier reports whether the interface currently has carrier.
	Carrier(link netlink.Link) bool

	// Counters returns the current rx and tx packet counts.
	Counters(link netlink.Link) (rx, tx uint64, err error)

	// Subscribe delivers lifecycle events to ch until done is closed.
	Subscribe(ch chan<- Event, done <-chan struct{}) error
}
