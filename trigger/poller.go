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

package trigger

import "time"

// pollTask is one run of the activity poller. stop is closed to cancel
// it; done is closed by the run goroutine when its last tick has fully
// returned.
type pollTask struct {
	stop chan struct{}
	done chan struct{}
}

// startPoll launches a new poll task with an immediate first tick.
// Caller holds t.mu.
func (t *Trigger) startPoll() {
	task := &pollTask{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	t.poll = task
	go t.runPoll(task)
}

// cancelPoll detaches the current poll task and blocks until its
// in-flight tick, if any, has returned. Mutation paths call this before
// taking the lock, so a tick never observes a handle mid-replacement.
func (t *Trigger) cancelPoll() {
	t.mu.Lock()
	task := t.poll
	t.poll = nil
	t.mu.Unlock()

	if task == nil {
		return
	}
	close(task.stop)
	<-task.done
}

func (t *Trigger) runPoll(task *pollTask) {
	defer close(task.done)

	var delay time.Duration
	for {
		timer := time.NewTimer(delay)
		select {
		case <-task.stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		again, next := t.pollOnce()
		if !again {
			t.finishPoll(task)
			return
		}
		delay = next
	}
}

// finishPoll clears the task handle when a run ends on its own, so a
// later reconcile can start a fresh one.
func (t *Trigger) finishPoll(task *pollTask) {
	t.mu.Lock()
	if t.poll == task {
		t.poll = nil
	}
	t.mu.Unlock()
}

// pollOnce performs a single activity sample. The counter read happens
// outside the lock; the resulting state update happens under it. The
// next tick runs at twice the pulse width so a sample always lands
// after any pulse has completed and pulses never overlap.
func (t *Trigger) pollOnce() (reschedule bool, delay time.Duration) {
	t.mu.Lock()
	dev := t.dev
	tx := t.monitorTx
	rx := t.monitorRx
	invert := t.monitorLink
	interval := t.interval
	level := t.pulseLevel
	t.mu.Unlock()

	// No device: make sure we are off and stop this run.
	if dev == nil {
		t.led.SetLevel(0)
		return false, 0
	}

	// Not looking for rx/tx anymore.
	if !tx && !rx {
		return false, 0
	}

	rxPackets, txPackets, err := t.registry.Counters(dev)
	if err != nil {
		// Transient read failure; sample again next tick.
		return true, 2 * interval
	}

	var activity uint64
	if tx {
		activity += txPackets
	}
	if rx {
		activity += rxPackets
	}

	t.mu.Lock()
	if activity != t.lastActivity {
		t.led.StopBlink()
		// Base state is ON when link monitoring is set, so the pulse
		// dips instead of rising.
		t.led.BlinkOneShot(level, interval, interval, invert)
		t.lastActivity = activity
	}
	t.mu.Unlock()

	return true, 2 * interval
}
