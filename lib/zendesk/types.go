// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import "time"

// Ticket is a Zendesk support ticket. Only the fields this module
// reads are decoded; the full object is kept in [Response.Raw].
type Ticket struct {
	ID          int64      `json:"id"`
	URL         string     `json:"url,omitempty"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    *string    `json:"priority"`
	Type        *string    `json:"type,omitempty"`
	RequesterID int64      `json:"requester_id,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// User is a Zendesk user (end user, agent, or admin).
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	Suspended bool       `json:"suspended,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// SearchResult is one hit from the search endpoint. Searches scoped
// with "type:ticket" return ticket objects tagged with a result type.
type SearchResult struct {
	Ticket
	ResultType string `json:"result_type"`
}

// Comment is the comment object embedded in ticket create and update
// payloads. Exactly one of Body and HTMLBody is normally set; when
// both are present the service prefers HTMLBody.
type Comment struct {
	Body     string `json:"body,omitempty"`
	HTMLBody string `json:"html_body,omitempty"`
	Public   *bool  `json:"public,omitempty"`
}

// Requester identifies who a new ticket is opened for. Zendesk
// accepts either an existing user id (RequesterID on the ticket) or a
// requester object that it resolves or creates by email.
type Requester struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// TicketPayload is the body of a ticket create or update request,
// wrapped under the "ticket" key by [TicketEnvelope].
type TicketPayload struct {
	RequesterID int64      `json:"requester_id,omitempty"`
	Requester   *Requester `json:"requester,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Comment     *Comment   `json:"comment,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// TicketEnvelope wraps a TicketPayload as the service expects.
type TicketEnvelope struct {
	Ticket TicketPayload `json:"ticket"`
}
