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
	"sync"

	"github.com/vishvananda/netlink"
)

// MockRegistry is a mock implementation of Registry for testing.
type MockRegistry struct {
	mu sync.Mutex

	// State
	Links    map[string]netlink.Link
	Carriers map[string]bool
	Rx       map[string]uint64
	Tx       map[string]uint64

	// Call counters for verification
	LinkByNameCalls int
	CarrierCalls    int
	CountersCalls   int
	SubscribeCalls  int

	// Error injection for testing error paths
	LinkByNameError error
	CountersError   error
	SubscribeError  error

	subscriber     chan<- Event
	subscriberDone <-chan struct{}
}

// NewMockRegistry creates a new MockRegistry.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		Links:    make(map[string]netlink.Link),
		Carriers: make(map[string]bool),
		Rx:       make(map[string]uint64),
		Tx:       make(map[string]uint64),
	}
}

// AddLink registers a fake interface with the given name and index.
func (m *MockRegistry) AddLink(name string, index int) netlink.Link {
	m.mu.Lock()
	defer m.mu.Unlock()

	link := &netlink.Dummy{
		LinkAttrs: netlink.LinkAttrs{Name: name, Index: index},
	}
	m.Links[name] = link
	return link
}

// RemoveLink deletes a fake interface.
func (m *MockRegistry) RemoveLink(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Links, name)
	delete(m.Carriers, name)
}

// SetCarrier sets the carrier state reported for an interface.
func (m *MockRegistry) SetCarrier(name string, up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Carriers[name] = up
}

// AdvanceCounters increments the packet counters for an interface.
func (m *MockRegistry) AdvanceCounters(name string, rx, tx uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rx[name] += rx
	m.Tx[name] += tx
}

func (m *MockRegistry) LinkByName(name string) (netlink.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LinkByNameCalls++

	if m.LinkByNameError != nil {
		return nil, m.LinkByNameError
	}

	link, ok := m.Links[name]
	if !ok {
		return nil, fmt.Errorf("Link not found")
	}
	return link, nil
}

func (m *MockRegistry) Carrier(link netlink.Link) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CarrierCalls++
	return m.Carriers[link.Attrs().Name]
}

func (m *MockRegistry) Counters(link netlink.Link) (rx, tx uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CountersCalls++

	if m.CountersError != nil {
		return 0, 0, m.CountersError
	}

	name := link.Attrs().Name
	return m.Rx[name], m.Tx[name], nil
}

func (m *MockRegistry) Subscribe(ch chan<- Event, done <-chan struct{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubscribeCalls++

	if m.SubscribeError != nil {
		return m.SubscribeError
	}

	m.subscriber = ch
	m.subscriberDone = done
	return nil
}

// Emit delivers an event to the subscribed channel, if any. It blocks
// until the event is consumed so tests can synchronize on delivery.
func (m *MockRegistry) Emit(ev Event) {
	m.mu.Lock()
	ch := m.subscriber
	done := m.subscriberDone
	m.mu.Unlock()

	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-done:
	}
}
