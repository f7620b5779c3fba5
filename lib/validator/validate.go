// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validator

import "strings"

// Result is the outcome of a composite check. Violations are in rule
// order; an empty list means the request may proceed.
type Result struct {
	Violations []string
}

// OK reports whether every rule passed.
func (result Result) OK() bool {
	return len(result.Violations) == 0
}

// check runs a single predicate and records its message on failure.
func (result *Result) check(ok bool, message string) {
	if !ok {
		result.Violations = append(result.Violations, message)
	}
}

// CreateRequest carries the caller's intent to open a ticket.
type CreateRequest struct {
	RequesterID string
	Subject     string
	Description string
	// Priority is matched case-insensitively. Empty means
	// DefaultPriority.
	Priority string
}

// NormalizedPriority returns the lower-cased priority with the default
// applied, in the form sent on the wire.
func (request CreateRequest) NormalizedPriority() string {
	if request.Priority == "" {
		return DefaultPriority
	}
	return strings.ToLower(request.Priority)
}

// UpdateRequest carries a status change with an optional comment.
type UpdateRequest struct {
	TicketID int64
	Status   string
	Comment  string
}

// NormalizedStatus returns the lower-cased status sent on the wire.
func (request UpdateRequest) NormalizedStatus() string {
	return strings.ToLower(request.Status)
}

// CommentRequest carries a comment to append to an existing ticket.
type CommentRequest struct {
	TicketID int64
	Comment  string
	Public   bool
}

// ValidateCreate checks every field of a create request.
func ValidateCreate(request CreateRequest) Result {
	var result Result
	result.check(RequesterID(request.RequesterID))
	result.check(Subject(request.Subject))
	result.check(Description(request.Description))
	result.check(Priority(request.NormalizedPriority()))
	return result
}

// ValidateUpdate checks every field of an update request. An invalid
// ticket id and an invalid status together produce two violations.
func ValidateUpdate(request UpdateRequest) Result {
	var result Result
	result.check(TicketID(request.TicketID))
	result.check(Status(request.Status))
	result.check(OptionalComment(request.Comment))
	return result
}

// ValidateComment checks a comment request. Unlike an update, the
// comment is the whole point of the request and must be present.
func ValidateComment(request CommentRequest) Result {
	var result Result
	result.check(TicketID(request.TicketID))
	result.check(Comment(request.Comment))
	return result
}

// ValidateTicketID wraps the ticket id rule as a Result for operations
// whose only input is the identifier.
func ValidateTicketID(ticketID int64) Result {
	var result Result
	result.check(TicketID(ticketID))
	return result
}

// ValidateQuery wraps the query rule as a Result.
func ValidateQuery(query string) Result {
	var result Result
	result.check(Query(query))
	return result
}
