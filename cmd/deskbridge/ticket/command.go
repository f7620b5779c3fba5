// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/cli"
	"github.com/bureau-foundation/deskbridge/lib/desk"
	"github.com/bureau-foundation/deskbridge/lib/validator"
)

// Commands returns the ticket and user commands.
func Commands(globals *cli.Globals) []*cli.Command {
	return []*cli.Command{
		createCommand(globals),
		updateCommand(globals),
		getCommand(globals),
		deleteCommand(globals),
		commentCommand(globals),
		listCommand(globals),
		searchCommand(globals),
		usersCommand(globals),
	}
}

// run connects, calls operation, and emits its envelope.
func run(globals *cli.Globals, operation func(*operationContext) desk.Envelope) error {
	ctx, cancel, manager, err := globals.Connect()
	if err != nil {
		return err
	}
	defer cancel()
	return globals.Emit(operation(&operationContext{ctx: ctx, manager: manager}))
}

// parseTicketID returns the ticket ID in args[0], or zero when it does
// not parse.
func parseTicketID(name string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: deskbridge %s <ticket-id> [flags]", name)
	}
	ticketID, _ := validator.ParseTicketID(args[0])
	return ticketID, nil
}

func createCommand(globals *cli.Globals) *cli.Command {
	var requester, subject, description, priority string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a ticket",
		Description: `Create a ticket on behalf of a requester.

The requester is a Zendesk user ID when numeric, an email address when
it contains "@", and otherwise a name. Priority defaults to normal.
Every field is validated before anything is sent, and all problems are
reported together.`,
		Usage: "deskbridge create --requester ID --subject TEXT --description TEXT [--priority P]",
		Examples: []cli.Example{
			{
				Description: "Report a hardware fault",
				Command:     `deskbridge create --requester user-123 --subject "Printer broken" --description "Paper jam on floor 3, tray 2" --priority high`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := globals.FlagSet("create")
			flagSet.StringVar(&requester, "requester", "", fmt.Sprintf("requester ID, email, or name (at least %d characters)", validator.MinRequesterIDLength))
			flagSet.StringVar(&subject, "subject", "", fmt.Sprintf("ticket subject (%d-%d characters)", validator.MinSubjectLength, validator.MaxSubjectLength))
			flagSet.StringVar(&description, "description", "", fmt.Sprintf("ticket description (at least %d characters)", validator.MinDescriptionLength))
			flagSet.StringVar(&priority, "priority", "", "low, normal, high, or urgent (default normal)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("create takes no positional arguments (got %q)", args[0])
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return op.manager.Create(op.ctx, requester, subject, description, priority)
			})
		},
	}
}

func updateCommand(globals *cli.Globals) *cli.Command {
	var status, comment string

	return &cli.Command{
		Name:    "update",
		Summary: "Change a ticket's status",
		Description: `Set a ticket's status, optionally adding a public comment.

Status is one of new, open, pending, hold, solved, or closed.`,
		Usage: "deskbridge update <ticket-id> --status S [--comment TEXT]",
		Examples: []cli.Example{
			{
				Description: "Close out a ticket with a note",
				Command:     `deskbridge update 42 --status solved --comment "Replaced the fuser"`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := globals.FlagSet("update")
			flagSet.StringVar(&status, "status", "", "new status")
			flagSet.StringVar(&comment, "comment", "", fmt.Sprintf("public comment (at least %d characters)", validator.MinCommentLength))
			return flagSet
		},
		Run: func(args []string) error {
			ticketID, err := parseTicketID("update", args)
			if err != nil {
				return err
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return op.manager.Update(op.ctx, ticketID, status, comment)
			})
		},
	}
}

func getCommand(globals *cli.Globals) *cli.Command {
	return &cli.Command{
		Name:    "get",
		Summary: "Show one ticket",
		Usage:   "deskbridge get <ticket-id>",
		Flags: func() *pflag.FlagSet {
			return globals.FlagSet("get")
		},
		Run: func(args []string) error {
			ticketID, err := parseTicketID("get", args)
			if err != nil {
				return err
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return op.manager.Get(op.ctx, ticketID)
			})
		},
	}
}

func deleteCommand(globals *cli.Globals) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a ticket",
		Description: `Delete a ticket. Zendesk moves it to the deleted view, where an admin
can restore it for 30 days.`,
		Usage: "deskbridge delete <ticket-id>",
		Flags: func() *pflag.FlagSet {
			return globals.FlagSet("delete")
		},
		Run: func(args []string) error {
			ticketID, err := parseTicketID("delete", args)
			if err != nil {
				return err
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return op.manager.Delete(op.ctx, ticketID)
			})
		},
	}
}

func commentCommand(globals *cli.Globals) *cli.Command {
	var body string
	var private bool

	return &cli.Command{
		Name:    "comment",
		Summary: "Add a comment to a ticket",
		Description: `Add a comment to a ticket without changing anything else. Comments
are public unless --private is given.`,
		Usage: "deskbridge comment <ticket-id> --body TEXT [--private]",
		Examples: []cli.Example{
			{
				Description: "Leave an internal note",
				Command:     `deskbridge comment 42 --body "Technician on the way" --private`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := globals.FlagSet("comment")
			flagSet.StringVar(&body, "body", "", fmt.Sprintf("comment text (at least %d characters)", validator.MinCommentLength))
			flagSet.BoolVar(&private, "private", false, "internal note visible only to agents")
			return flagSet
		},
		Run: func(args []string) error {
			ticketID, err := parseTicketID("comment", args)
			if err != nil {
				return err
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return op.manager.AddComment(op.ctx, ticketID, body, !private)
			})
		},
	}
}

func searchCommand(globals *cli.Globals) *cli.Command {
	var match string

	return &cli.Command{
		Name:    "search",
		Summary: "Search tickets",
		Description: `Search tickets with Zendesk search syntax. The query is restricted
to tickets; the remaining arguments are joined with spaces.`,
		Usage: "deskbridge search [flags] <query>...",
		Examples: []cli.Example{
			{
				Description: "Open printer tickets",
				Command:     "deskbridge search printer status:open",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := globals.FlagSet("search")
			flagSet.StringVar(&match, "match", "", "rank results by fuzzy match on subject")
			return flagSet
		},
		Run: func(args []string) error {
			query := strings.Join(args, " ")
			return run(globals, func(op *operationContext) desk.Envelope {
				return rankEnvelope(op.manager.Search(op.ctx, query), match)
			})
		},
	}
}

func listCommand(globals *cli.Globals) *cli.Command {
	var match string

	return &cli.Command{
		Name:    "list",
		Summary: "List all tickets",
		Description: `List every ticket in the account, following pagination to the end.
The walk stops with an error at the configured pagination limits.`,
		Usage: "deskbridge list [--match PATTERN]",
		Flags: func() *pflag.FlagSet {
			flagSet := globals.FlagSet("list")
			flagSet.StringVar(&match, "match", "", "rank tickets by fuzzy match on subject")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("list takes no positional arguments (got %q)", args[0])
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return rankEnvelope(op.manager.List(op.ctx), match)
			})
		},
	}
}

func usersCommand(globals *cli.Globals) *cli.Command {
	var match string

	return &cli.Command{
		Name:    "users",
		Summary: "List all users",
		Usage:   "deskbridge users [--match PATTERN]",
		Flags: func() *pflag.FlagSet {
			flagSet := globals.FlagSet("users")
			flagSet.StringVar(&match, "match", "", "rank users by fuzzy match on name and email")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("users takes no positional arguments (got %q)", args[0])
			}
			return run(globals, func(op *operationContext) desk.Envelope {
				return rankEnvelope(op.manager.ListUsers(op.ctx), match)
			})
		},
	}
}
