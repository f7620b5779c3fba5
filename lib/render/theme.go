// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette for text output.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	Success lipgloss.Color
	Failure lipgloss.Color

	// Zendesk priorities.
	PriorityUrgent lipgloss.Color
	PriorityHigh   lipgloss.Color
	PriorityNormal lipgloss.Color
	PriorityLow    lipgloss.Color

	// Zendesk statuses.
	StatusNew     lipgloss.Color
	StatusOpen    lipgloss.Color
	StatusPending lipgloss.Color
	StatusHold    lipgloss.Color
	StatusSolved  lipgloss.Color
	StatusClosed  lipgloss.Color
}

// PriorityColor returns the color for a priority name. Unknown or
// unset priorities are faint.
func (theme Theme) PriorityColor(priority string) lipgloss.Color {
	switch strings.ToLower(priority) {
	case "urgent":
		return theme.PriorityUrgent
	case "high":
		return theme.PriorityHigh
	case "normal":
		return theme.PriorityNormal
	case "low":
		return theme.PriorityLow
	default:
		return theme.FaintText
	}
}

// StatusColor returns the color for a status name.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch strings.ToLower(status) {
	case "new":
		return theme.StatusNew
	case "open":
		return theme.StatusOpen
	case "pending":
		return theme.StatusPending
	case "hold":
		return theme.StatusHold
	case "solved":
		return theme.StatusSolved
	case "closed":
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is tuned for 256-color terminals with a dark
// background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Success: lipgloss.Color("114"), // green
	Failure: lipgloss.Color("196"), // red

	PriorityUrgent: lipgloss.Color("196"), // bright red
	PriorityHigh:   lipgloss.Color("208"), // orange
	PriorityNormal: lipgloss.Color("75"),  // blue
	PriorityLow:    lipgloss.Color("245"), // gray

	StatusNew:     lipgloss.Color("220"), // amber
	StatusOpen:    lipgloss.Color("196"), // red: waiting on an agent
	StatusPending: lipgloss.Color("75"),  // blue: waiting on the requester
	StatusHold:    lipgloss.Color("141"), // purple
	StatusSolved:  lipgloss.Color("114"), // green
	StatusClosed:  lipgloss.Color("240"), // dim gray
}
