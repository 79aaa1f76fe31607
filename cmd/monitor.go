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

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/we-are-mono/blink/daemon"
)

var (
	monitorInterval int
	monitorSamples  int
	monitorOnce     bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch traffic on the trigger's device",
	Long: `Polls the daemon and renders live RX/TX packet-rate graphs for
the device the trigger is bound to. Press Ctrl+C to stop.`,
	Run: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().IntVarP(&monitorInterval, "interval", "i", 1, "Sample interval in seconds")
	monitorCmd.Flags().IntVarP(&monitorSamples, "samples", "n", 60, "Number of samples kept in the graphs")
	monitorCmd.Flags().BoolVar(&monitorOnce, "once", false, "Render a single frame and exit")
}

func runMonitor(cmd *cobra.Command, args []string) {
	if err := executeMonitor(cmd.OutOrStdout(), defaultClient); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// sampler turns absolute packet counters into per-second rates.
type sampler struct {
	lastRx, lastTx uint64
	lastAt         time.Time
	rxRates        []float64
	txRates        []float64
	max            int
}

// add records a counter snapshot and appends the resulting rates.
// The first sample only seeds the baseline.
func (s *sampler) add(rx, tx uint64, at time.Time) {
	if !s.lastAt.IsZero() {
		elapsed := at.Sub(s.lastAt).Seconds()
		if elapsed > 0 {
			s.rxRates = appendCapped(s.rxRates, rateOf(s.lastRx, rx, elapsed), s.max)
			s.txRates = appendCapped(s.txRates, rateOf(s.lastTx, tx, elapsed), s.max)
		}
	}
	s.lastRx, s.lastTx, s.lastAt = rx, tx, at
}

func rateOf(prev, cur uint64, elapsed float64) float64 {
	if cur < prev {
		// Counter reset (device re-registered)
		return 0
	}
	return float64(cur-prev) / elapsed
}

func appendCapped(vals []float64, v float64, max int) []float64 {
	vals = append(vals, v)
	if len(vals) > max {
		vals = vals[len(vals)-max:]
	}
	return vals
}

// executeMonitor runs the sampling loop until interrupted.
func executeMonitor(w io.Writer, client ClientInterface) error {
	if monitorInterval < 1 {
		return fmt.Errorf("interval must be at least 1 second")
	}
	if monitorSamples < 2 {
		return fmt.Errorf("samples must be at least 2")
	}

	s := &sampler{max: monitorSamples}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(time.Duration(monitorInterval) * time.Second)
	defer ticker.Stop()

	for {
		frame, err := monitorFrame(client, s)
		if err != nil {
			return err
		}
		fmt.Fprint(w, frame)

		if monitorOnce {
			return nil
		}

		select {
		case <-sigChan:
			return nil
		case <-ticker.C:
		}
	}
}

// monitorFrame polls status once and renders a full screen frame.
func monitorFrame(client ClientInterface, s *sampler) (string, error) {
	resp, err := client.Send(daemon.Request{Command: "status"})
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("%s", resp.Error)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected response format")
	}

	device, _ := data["device_name"].(string) //nolint:errcheck // Default to empty if not present
	if device == "" {
		return "", fmt.Errorf("no device bound (use 'blink set device_name <iface>')")
	}

	var rx, tx uint64
	if v, ok := data["rx_packets"].(float64); ok {
		rx = uint64(v)
	}
	if v, ok := data["tx_packets"].(float64); ok {
		tx = uint64(v)
	}
	s.add(rx, tx, time.Now())

	var buf strings.Builder
	// Clear screen and move cursor home
	buf.WriteString("\033[2J\033[H")

	linkUp, _ := data["link_up"].(bool) //nolint:errcheck // Default to false if not present
	link := "down"
	if linkUp {
		link = "up"
	}
	buf.WriteString(fmt.Sprintf("Device: %s (link %s)\n\n", device, link))

	if len(s.rxRates) > 1 {
		buf.WriteString("RX Rate (packets/s):\n")
		buf.WriteString(asciigraph.Plot(s.rxRates,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("")))
		buf.WriteString("\n\n")

		buf.WriteString("TX Rate (packets/s):\n")
		buf.WriteString(asciigraph.Plot(s.txRates,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("")))
		buf.WriteString("\n\n")

		buf.WriteString(fmt.Sprintf("Showing %d data points (%d seconds of history)\n",
			len(s.rxRates), len(s.rxRates)*monitorInterval))
	} else {
		buf.WriteString("Collecting samples...\n")
	}

	return buf.String(), nil
}
