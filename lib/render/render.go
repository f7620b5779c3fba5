// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render formats desk envelopes as human-readable text for
// the terminal: a SUCCESS or ERROR headline, one line per field of the
// returned ticket, one row per listing entry (capped at [MaxRows]),
// and one line per failure detail.
//
// Color is applied through a lipgloss renderer bound to the output
// writer. With color disabled the output is plain text, byte-for-byte
// what a script parsing the text form would expect.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/deskbridge/lib/desk"
	"github.com/bureau-foundation/deskbridge/lib/zendesk"
)

// MaxRows bounds the rows printed for a listing.
const MaxRows = 100

// descriptionLines bounds the description excerpt of a single ticket.
const descriptionLines = 6

// Options configures a Renderer.
type Options struct {
	// Color enables ANSI 256-color styling.
	Color bool

	// Width truncates each line to this many cells. Zero disables
	// truncation.
	Width int

	// Theme overrides DefaultTheme.
	Theme *Theme
}

// Renderer formats envelopes. It is safe for concurrent use.
type Renderer struct {
	lip   *lipgloss.Renderer
	theme Theme
	width int
}

// New creates a Renderer for output written to writer.
func New(writer io.Writer, options Options) *Renderer {
	profile := termenv.Ascii
	if options.Color {
		profile = termenv.ANSI256
	}
	// SetColorProfile pins the profile; without it lipgloss re-detects
	// from the environment and ignores the one given to termenv.
	lip := lipgloss.NewRenderer(writer, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)

	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	return &Renderer{lip: lip, theme: theme, width: options.Width}
}

// Envelope renders envelope as text. The result has no trailing
// newline.
func (renderer *Renderer) Envelope(envelope desk.Envelope) string {
	var lines []string
	if !envelope.Success {
		lines = append(lines, renderer.style(renderer.theme.Failure).Bold(true).Render("ERROR:")+" "+envelope.Error)
		lines = append(lines, envelope.Details...)
		return renderer.join(lines)
	}

	headline := envelope.Message
	if headline == "" {
		headline = defaultHeadline(envelope.Data)
	}
	if headline != "" {
		lines = append(lines, renderer.style(renderer.theme.Success).Bold(true).Render("SUCCESS:")+" "+headline)
	}

	switch data := envelope.Data.(type) {
	case nil:
	case desk.CreatedTicket:
		lines = append(lines,
			renderer.field("Ticket ID", strconv.FormatInt(data.ID, 10)),
			renderer.field("Subject", data.Subject),
			renderer.field("Status", renderer.status(data.Status)),
			renderer.field("Priority", renderer.priority(data.Priority, "not set")),
		)
	case desk.UpdatedTicket:
		lines = append(lines,
			renderer.field("Ticket ID", strconv.FormatInt(data.ID, 10)),
			renderer.field("Subject", data.Subject),
			renderer.field("Status", renderer.status(data.Status)),
			renderer.field("Updated", formatTime(data.UpdatedAt)),
		)
	case zendesk.Ticket:
		lines = append(lines, renderer.ticket(data)...)
	case []zendesk.Ticket:
		lines = append(lines, renderer.rows(len(data), func(index int) string {
			return renderer.ticketRow(data[index])
		}, "No tickets found.")...)
	case []zendesk.SearchResult:
		lines = append(lines, renderer.rows(len(data), func(index int) string {
			return renderer.ticketRow(data[index].Ticket)
		}, "No tickets matched.")...)
	case []zendesk.User:
		lines = append(lines, renderer.rows(len(data), func(index int) string {
			return renderer.userRow(data[index])
		}, "No users found.")...)
	default:
		lines = append(lines, fmt.Sprintf("%v", data))
	}
	return renderer.join(lines)
}

func defaultHeadline(data any) string {
	switch data.(type) {
	case []zendesk.Ticket:
		return "Tickets fetched successfully"
	default:
		return ""
	}
}

func (renderer *Renderer) style(color lipgloss.Color) lipgloss.Style {
	return renderer.lip.NewStyle().Foreground(color)
}

func (renderer *Renderer) field(label, value string) string {
	return renderer.style(renderer.theme.FaintText).Render(label+":") + " " + value
}

func (renderer *Renderer) status(status string) string {
	return renderer.style(renderer.theme.StatusColor(status)).Render(status)
}

func (renderer *Renderer) priority(priority *string, missing string) string {
	if priority == nil || *priority == "" {
		return renderer.style(renderer.theme.FaintText).Render(missing)
	}
	return renderer.style(renderer.theme.PriorityColor(*priority)).Render(*priority)
}

func (renderer *Renderer) ticket(ticket zendesk.Ticket) []string {
	lines := []string{
		renderer.field("Ticket ID", strconv.FormatInt(ticket.ID, 10)),
		renderer.field("Subject", ticket.Subject),
		renderer.field("Status", renderer.status(ticket.Status)),
		renderer.field("Priority", renderer.priority(ticket.Priority, "not set")),
	}
	if ticket.RequesterID != 0 {
		lines = append(lines, renderer.field("Requester", strconv.FormatInt(ticket.RequesterID, 10)))
	}
	if ticket.AssigneeID != nil {
		lines = append(lines, renderer.field("Assignee", strconv.FormatInt(*ticket.AssigneeID, 10)))
	}
	if len(ticket.Tags) > 0 {
		lines = append(lines, renderer.field("Tags", strings.Join(ticket.Tags, ", ")))
	}
	if ticket.CreatedAt != nil {
		lines = append(lines, renderer.field("Created", formatTime(ticket.CreatedAt)))
	}
	if ticket.UpdatedAt != nil {
		lines = append(lines, renderer.field("Updated", formatTime(ticket.UpdatedAt)))
	}
	if description := strings.TrimSpace(ticket.Description); description != "" {
		lines = append(lines, "")
		excerpt := strings.Split(description, "\n")
		if len(excerpt) > descriptionLines {
			excerpt = append(excerpt[:descriptionLines], "...")
		}
		lines = append(lines, excerpt...)
	}
	return lines
}

func (renderer *Renderer) ticketRow(ticket zendesk.Ticket) string {
	return fmt.Sprintf("ID: %d, Subject: %s, Status: %s, Priority: %s",
		ticket.ID, ticket.Subject, renderer.status(ticket.Status), renderer.priority(ticket.Priority, "N/A"))
}

func (renderer *Renderer) userRow(user zendesk.User) string {
	row := fmt.Sprintf("ID: %d, Name: %s, Email: %s, Role: %s", user.ID, user.Name, user.Email, user.Role)
	if !user.Active || user.Suspended {
		row += " " + renderer.style(renderer.theme.FaintText).Render("(inactive)")
	}
	return row
}

// rows renders up to MaxRows listing rows after a blank separator
// line, or the empty message for an empty listing.
func (renderer *Renderer) rows(count int, row func(int) string, empty string) []string {
	if count == 0 {
		return []string{renderer.style(renderer.theme.FaintText).Render(empty)}
	}
	lines := []string{""}
	shown := min(count, MaxRows)
	for index := range shown {
		lines = append(lines, row(index))
	}
	if count > shown {
		lines = append(lines, renderer.style(renderer.theme.FaintText).Render(
			fmt.Sprintf("... %d more not shown", count-shown)))
	}
	return lines
}

func (renderer *Renderer) join(lines []string) string {
	if renderer.width > 0 {
		for index, line := range lines {
			if ansi.StringWidth(line) > renderer.width {
				lines[index] = ansi.Truncate(line, renderer.width, "…")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func formatTime(value *time.Time) string {
	if value == nil {
		return "unknown"
	}
	return value.UTC().Format(time.RFC3339)
}
