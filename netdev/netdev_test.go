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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

func linkUpdate(msgType uint16, index int, name string, up bool) netlink.LinkUpdate {
	var flags uint32
	if up {
		flags = unix.IFF_UP
	}
	update := netlink.LinkUpdate{
		Link: &netlink.Dummy{
			LinkAttrs: netlink.LinkAttrs{Index: index, Name: name},
		},
	}
	update.Header.Type = msgType
	update.IfInfomsg.Flags = flags
	return update
}

func TestClassifier_Register(t *testing.T) {
	c := newClassifier()

	events := c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", false))
	require.Len(t, events, 1)
	assert.Equal(t, EventRegister, events[0].Kind)
	assert.Equal(t, "eth0", events[0].Name)
}

func TestClassifier_RegisterAlreadyUp(t *testing.T) {
	c := newClassifier()

	// An interface first seen in the up state produces both events, so
	// a consumer that binds late still learns the link is up.
	events := c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))
	require.Len(t, events, 2)
	assert.Equal(t, EventRegister, events[0].Kind)
	assert.Equal(t, EventUp, events[1].Kind)
}

func TestClassifier_UpDownTransitions(t *testing.T) {
	c := newClassifier()
	c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", false))

	events := c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))
	require.Len(t, events, 1)
	assert.Equal(t, EventUp, events[0].Kind)

	events = c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", false))
	require.Len(t, events, 1)
	assert.Equal(t, EventDown, events[0].Kind)
}

func TestClassifier_NoTransitionIsChange(t *testing.T) {
	c := newClassifier()
	c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))

	// Same name, same up state: a flag or carrier change.
	events := c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))
	require.Len(t, events, 1)
	assert.Equal(t, EventChange, events[0].Kind)
}

func TestClassifier_Rename(t *testing.T) {
	c := newClassifier()
	c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))

	events := c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "lan0", true))
	require.Len(t, events, 1)
	assert.Equal(t, EventRename, events[0].Kind)
	assert.Equal(t, "lan0", events[0].Name)

	// Subsequent updates track the new name.
	events = c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "lan0", false))
	require.Len(t, events, 1)
	assert.Equal(t, EventDown, events[0].Kind)
}

func TestClassifier_Unregister(t *testing.T) {
	c := newClassifier()
	c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))

	events := c.classify(linkUpdate(unix.RTM_DELLINK, 2, "eth0", false))
	require.Len(t, events, 1)
	assert.Equal(t, EventUnregister, events[0].Kind)

	// The index is forgotten; reuse classifies as a fresh register.
	events = c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth1", false))
	require.Len(t, events, 1)
	assert.Equal(t, EventRegister, events[0].Kind)
	assert.Equal(t, "eth1", events[0].Name)
}

func TestClassifier_IndependentInterfaces(t *testing.T) {
	c := newClassifier()
	c.classify(linkUpdate(unix.RTM_NEWLINK, 2, "eth0", true))
	c.classify(linkUpdate(unix.RTM_NEWLINK, 3, "eth1", false))

	events := c.classify(linkUpdate(unix.RTM_NEWLINK, 3, "eth1", true))
	require.Len(t, events, 1)
	assert.Equal(t, EventUp, events[0].Kind)
	assert.Equal(t, "eth1", events[0].Name)
}

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventRegister, "register"},
		{EventUnregister, "unregister"},
		{EventRename, "rename"},
		{EventUp, "up"},
		{EventDown, "down"},
		{EventChange, "change"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestMockRegistry_Lifecycle(t *testing.T) {
	m := NewMockRegistry()
	m.AddLink("eth0", 2)
	m.SetCarrier("eth0", true)
	m.AdvanceCounters("eth0", 10, 5)

	link, err := m.LinkByName("eth0")
	require.NoError(t, err)
	assert.True(t, m.Carrier(link))

	rx, tx, err := m.Counters(link)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), rx)
	assert.Equal(t, uint64(5), tx)

	m.RemoveLink("eth0")
	_, err = m.LinkByName("eth0")
	assert.Error(t, err)
}
