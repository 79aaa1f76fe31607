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

// Package daemon implements the Blink daemon server and IPC protocol.
package daemon

// Request represents a command sent to the daemon
type Request struct {
	Command string `json:"command"`         // get, set, status, info
	Attr    string `json:"attr,omitempty"`  // device_name, link, tx, rx, mode, interval
	Value   string `json:"value,omitempty"` // textual write payload for set
}

// Response represents the daemon's response
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Success bool        `json:"success"`
}
