// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the deskbridge command tree.
package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/cli"
	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/ticket"
	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/token"
	"github.com/bureau-foundation/deskbridge/lib/version"
)

// Root returns the complete command tree writing through globals.
func Root(globals *cli.Globals) *cli.Command {
	subcommands := ticket.Commands(globals)
	subcommands = append(subcommands,
		token.Command(globals),
		&cli.Command{
			Name:    "version",
			Summary: "Print version information",
			Run: func(args []string) error {
				fmt.Fprintf(globals.Stdout, "deskbridge %s\n", version.Full())
				return nil
			},
		},
	)

	return &cli.Command{
		Name: "deskbridge",
		Description: `deskbridge: Zendesk ticket operations from the command line.

Every ticket command validates its input before contacting Zendesk and
prints a result envelope: a success message with the ticket data, or an
error with one detail line per problem. Failures exit with status 1.

Credentials come from the file named by --config or DESKBRIDGE_CONFIG,
or else from ZENDESK_SUBDOMAIN, ZENDESK_EMAIL, and ZENDESK_API_TOKEN.`,
		Flags: func() *pflag.FlagSet {
			return globals.FlagSet("deskbridge")
		},
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "List tickets about passwords as JSON",
				Command:     "deskbridge --format json list --match password",
			},
		},
	}
}
