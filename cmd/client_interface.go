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
	"github.com/we-are-mono/blink/client"
	"github.com/we-are-mono/blink/daemon"
)

// ClientInterface abstracts daemon communication so command logic can be
// tested without a running daemon.
type ClientInterface interface {
	Send(req daemon.Request) (*daemon.Response, error)
}

// realClient talks to the daemon over its unix socket.
type realClient struct{}

func (c *realClient) Send(req daemon.Request) (*daemon.Response, error) {
	return client.Send(req)
}

// defaultClient is what the commands use; tests swap it for a mock.
var defaultClient ClientInterface = &realClient{}
