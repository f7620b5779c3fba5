// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package desk

import (
	"time"

	"github.com/bureau-foundation/deskbridge/lib/zendesk"
)

// Envelope is the uniform result of every Manager operation.
//
// A success envelope carries Message and/or Data; a failure envelope
// carries Error and optionally Details. The two sets are never mixed:
// envelopes are built only by succeed and fail.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
	Data    any      `json:"data,omitempty"`
}

func succeed(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func fail(message string, details ...string) Envelope {
	if len(details) == 0 {
		details = nil
	}
	return Envelope{Success: false, Error: message, Details: details}
}

// CreatedTicket is the data of a successful Create.
type CreatedTicket struct {
	ID       int64   `json:"id"`
	Subject  string  `json:"subject"`
	Status   string  `json:"status"`
	Priority *string `json:"priority"`
}

// UpdatedTicket is the data of a successful Update.
type UpdatedTicket struct {
	ID        int64      `json:"id"`
	Subject   string     `json:"subject"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func createdTicket(ticket *zendesk.Ticket) CreatedTicket {
	return CreatedTicket{
		ID:       ticket.ID,
		Subject:  ticket.Subject,
		Status:   ticket.Status,
		Priority: ticket.Priority,
	}
}

func updatedTicket(ticket *zendesk.Ticket) UpdatedTicket {
	return UpdatedTicket{
		ID:        ticket.ID,
		Subject:   ticket.Subject,
		Status:    ticket.Status,
		UpdatedAt: ticket.UpdatedAt,
	}
}
