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

	"github.com/spf13/cobra"
	"github.com/we-are-mono/blink/daemon"
)

var verboseStatus bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show trigger and daemon status",
	Long:  `Displays the trigger's bound device, link state, mode, and counters.`,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVarP(&verboseStatus, "verbose", "v", false, "Show daemon details as well")
}

func runStatus(cmd *cobra.Command, args []string) {
	if err := executeStatus(cmd.OutOrStdout(), defaultClient, verboseStatus); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeStatus fetches trigger status (and daemon info when verbose)
// and prints it.
func executeStatus(w io.Writer, client ClientInterface, verbose bool) error {
	resp, err := client.Send(daemon.Request{Command: "status"})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected response format")
	}

	fmt.Fprintln(w, "Blink Netdev LED Trigger")
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)

	device, _ := data["device_name"].(string) //nolint:errcheck // Default to empty if not present
	if device == "" {
		fmt.Fprintln(w, "[DOWN] Device:  (none)")
	} else {
		bound, _ := data["bound"].(bool) //nolint:errcheck // Default to false if not present
		if bound {
			fmt.Fprintf(w, "[OK] Device:    %s\n", device)
		} else {
			fmt.Fprintf(w, "[DOWN] Device:  %s (not present)\n", device)
		}
	}

	linkUp, _ := data["link_up"].(bool) //nolint:errcheck // Default to false if not present
	if linkUp {
		fmt.Fprintln(w, "[OK] Link:      Up")
	} else {
		fmt.Fprintln(w, "[DOWN] Link:    Down")
	}

	fmt.Fprintln(w)
	if mode, ok := data["mode"].(string); ok {
		fmt.Fprintf(w, "Mode:       %s\n", mode)
	}
	if interval, ok := data["interval_ms"].(float64); ok {
		fmt.Fprintf(w, "Interval:   %d ms\n", int(interval))
	}
	if rx, ok := data["rx_packets"].(float64); ok {
		fmt.Fprintf(w, "RX Packets: %.0f\n", rx)
	}
	if tx, ok := data["tx_packets"].(float64); ok {
		fmt.Fprintf(w, "TX Packets: %.0f\n", tx)
	}
	if polling, ok := data["polling"].(bool); ok && polling {
		fmt.Fprintln(w, "Polling:    Active")
	}
	if level, ok := data["led_level"].(float64); ok {
		fmt.Fprintf(w, "LED Level:  %d\n", int(level))
	}

	if !verbose {
		return nil
	}

	// Daemon details
	infoResp, err := client.Send(daemon.Request{Command: "info"})
	if err != nil {
		return err
	}
	if !infoResp.Success {
		return fmt.Errorf("%s", infoResp.Error)
	}
	info, ok := infoResp.Data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected response format")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "DAEMON")
	fmt.Fprintln(w, "------")
	if pid, ok := info["pid"].(float64); ok {
		fmt.Fprintf(w, "PID:         %d\n", int(pid))
	}
	if uptime, ok := info["uptime"].(string); ok {
		fmt.Fprintf(w, "Uptime:      %s\n", uptime)
	}
	if socket, ok := info["socket"].(string); ok {
		fmt.Fprintf(w, "Socket:      %s\n", socket)
	}
	if backend, ok := info["led_backend"].(string); ok {
		fmt.Fprintf(w, "LED Backend: %s\n", backend)
	}
	if name, ok := info["led_name"].(string); ok && name != "" {
		fmt.Fprintf(w, "LED Name:    %s\n", name)
	}

	return nil
}
