// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// deskbridge creates, updates, and queries Zendesk tickets.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/cli"
	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/commands"
)

func main() {
	if err := run(); err != nil {
		// Failure envelopes have already been printed.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root(cli.NewGlobals()).Execute(os.Args[1:])
}
