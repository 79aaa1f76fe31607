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

var setCmd = &cobra.Command{
	Use:   "set [attribute] [value]",
	Short: "Set a trigger attribute",
	Long: `Sets the value of a trigger attribute on the running daemon.

Examples:
  blink set device_name eth0
  blink set device_name ""       # Unbind the device
  blink set mode "link tx rx"
  blink set link 1
  blink set interval 100`,
	Args: cobra.ExactArgs(2),
	Run:  runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) {
	if err := executeSet(cmd.OutOrStdout(), defaultClient, args); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeSet executes the set command with the given client and arguments.
func executeSet(w io.Writer, client ClientInterface, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("requires exactly 2 arguments (attribute and value)")
	}

	resp, err := client.Send(daemon.Request{
		Command: "set",
		Attr:    args[0],
		Value:   args[1],
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	fmt.Fprintln(w, resp.Message)
	return nil
}
