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

package netdev

import (
	"fmt"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// NetlinkRegistry implements Registry using real rtnetlink calls.
type NetlinkRegistry struct{}

// NewNetlinkRegistry creates a new NetlinkRegistry.
func NewNetlinkRegistry() *NetlinkRegistry {
	return &NetlinkRegistry{}
}

func (r *NetlinkRegistry) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

// Carrier re-fetches the link so the reported state is current rather
// than a snapshot from when the handle was resolved.
func (r *NetlinkRegistry) Carrier(link netlink.Link) bool {
	fresh, err := netlink.LinkByIndex(link.Attrs().Index)
	if err != nil {
		return false
	}
	return fresh.Attrs().RawFlags&unix.IFF_RUNNING != 0
}

// Counters re-fetches the link and reads its packet statistics.
func (r *NetlinkRegistry) Counters(link netlink.Link) (rx, tx uint64, err error) {
	fresh, err := netlink.LinkByIndex(link.Attrs().Index)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read link statistics: %w", err)
	}
	stats := fresh.Attrs().Statistics
	if stats == nil {
		return 0, 0, fmt.Errorf("no statistics for %s", fresh.Attrs().Name)
	}
	return stats.RxPackets, stats.TxPackets, nil
}

// Subscribe starts a goroutine that translates raw netlink link updates
// into lifecycle events and forwards them to ch until done is closed.
// ListExisting seeds the classifier with the interfaces already present
// so later updates classify as renames or flag changes, not registers.
func (r *NetlinkRegistry) Subscribe(ch chan<- Event, done <-chan struct{}) error {
	raw := make(chan netlink.LinkUpdate, 16)
	opts := netlink.LinkSubscribeOptions{ListExisting: true}
	if err := netlink.LinkSubscribeWithOptions(raw, done, opts); err != nil {
		return fmt.Errorf("failed to subscribe to link updates: %w", err)
	}

	go func() {
		c := newClassifier()
		for {
			select {
			case <-done:
				return
			case update, ok := <-raw:
				if !ok {
					return
				}
				for _, ev := range c.classify(update) {
					select {
					case ch <- ev:
					case <-done:
						return
					}
				}
			}
		}
	}()

	return nil
}

// classifier turns the rtnetlink NEWLINK/DELLINK message stream into the
// six event kinds the trigger consumes. rtnetlink reports every link
// change as NEWLINK, so register, rename, up, down, and change have to
// be recovered by tracking known ifindex names and IFF_UP transitions.
type classifier struct {
	names map[int32]string
	up    map[int32]bool
}

func newClassifier() *classifier {
	return &classifier{
		names: make(map[int32]string),
		up:    make(map[int32]bool),
	}
}

func (c *classifier) classify(update netlink.LinkUpdate) []Event {
	attrs := update.Link.Attrs()
	index := int32(attrs.Index)
	name := attrs.Name
	isUp := update.IfInfomsg.Flags&unix.IFF_UP != 0

	if update.Header.Type == unix.RTM_DELLINK {
		delete(c.names, index)
		delete(c.up, index)
		return []Event{{Kind: EventUnregister, Name: name}}
	}

	prev, known := c.names[index]
	if !known {
		c.names[index] = name
		c.up[index] = isUp
		events := []Event{{Kind: EventRegister, Name: name}}
		if isUp {
			events = append(events, Event{Kind: EventUp, Name: name})
		}
		return events
	}

	if prev != name {
		c.names[index] = name
		c.up[index] = isUp
		return []Event{{Kind: EventRename, Name: name}}
	}

	wasUp := c.up[index]
	c.up[index] = isUp
	switch {
	case isUp && !wasUp:
		return []Event{{Kind: EventUp, Name: name}}
	case !isUp && wasUp:
		return []Event{{Kind: EventDown, Name: name}}
	default:
		return []Event{{Kind: EventChange, Name: name}}
	}
}
