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
	"strings"

	"github.com/spf13/cobra"
	"github.com/we-are-mono/blink/daemon"
)

// triggerAttrs are the attributes exposed by the daemon, in display order.
var triggerAttrs = []string{"device_name", "link", "tx", "rx", "mode", "interval"}

var getCmd = &cobra.Command{
	Use:   "get [attribute]",
	Short: "Get a trigger attribute",
	Long: `Gets the value of a trigger attribute from the running daemon.

If no attribute is given, all attributes are printed.

Examples:
  blink get                       # Print all attributes
  blink get device_name
  blink get link
  blink get interval`,
	Run: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	if err := executeGet(cmd.OutOrStdout(), defaultClient, args); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeGet executes the get command with the given client and arguments.
func executeGet(w io.Writer, client ClientInterface, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 argument, received %d", len(args))
	}

	// No argument: print every attribute
	if len(args) == 0 {
		for _, attr := range triggerAttrs {
			value, err := fetchAttr(client, attr)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%-12s %s\n", attr, value)
		}
		return nil
	}

	value, err := fetchAttr(client, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(w, value)
	return nil
}

// fetchAttr retrieves a single attribute value from the daemon.
func fetchAttr(client ClientInterface, attr string) (string, error) {
	resp, err := client.Send(daemon.Request{
		Command: "get",
		Attr:    attr,
	})
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("%s", resp.Error)
	}

	value, ok := resp.Data.(string)
	if !ok {
		return "", fmt.Errorf("unexpected response format")
	}
	return strings.TrimSuffix(value, "\n"), nil
}
