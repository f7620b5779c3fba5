// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validator

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field length bounds, measured in Unicode code points after trimming
// surrounding whitespace.
const (
	MinRequesterIDLength = 6
	MinSubjectLength     = 5
	MaxSubjectLength     = 150
	MinDescriptionLength = 10
	MinCommentLength     = 3
)

// DefaultPriority is applied when a create request leaves the priority
// empty.
const DefaultPriority = "normal"

// Priorities lists the accepted ticket priorities in ascending order.
var Priorities = []string{"low", "normal", "high", "urgent"}

// Statuses lists the accepted ticket statuses in lifecycle order.
var Statuses = []string{"new", "open", "pending", "hold", "solved", "closed"}

// Violation messages. Emptiness and "too short" share one message:
// whitespace-only input is treated as empty and is always too short.
var (
	MessageRequesterID  = "requester id must be at least " + strconv.Itoa(MinRequesterIDLength) + " characters"
	MessageSubjectShort = "subject must be at least " + strconv.Itoa(MinSubjectLength) + " characters"
	MessageSubjectLong  = "subject must be at most " + strconv.Itoa(MaxSubjectLength) + " characters"
	MessageDescription  = "description must be at least " + strconv.Itoa(MinDescriptionLength) + " characters"
	MessagePriority     = "priority must be one of: " + strings.Join(Priorities, ", ")
	MessageTicketID     = "ticket id must be a positive integer"
	MessageStatus       = "status must be one of: " + strings.Join(Statuses, ", ")
	MessageComment      = "comment must be at least " + strconv.Itoa(MinCommentLength) + " characters"
	MessageQuery        = "search query must not be empty"
)

// trimmedLength returns the code point count of s without surrounding
// whitespace.
func trimmedLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// RequesterID checks that a requester identifier is long enough to be
// meaningful.
func RequesterID(requesterID string) (bool, string) {
	if trimmedLength(requesterID) < MinRequesterIDLength {
		return false, MessageRequesterID
	}
	return true, ""
}

// Subject checks that a subject is between MinSubjectLength and
// MaxSubjectLength characters.
func Subject(subject string) (bool, string) {
	length := trimmedLength(subject)
	if length < MinSubjectLength {
		return false, MessageSubjectShort
	}
	if length > MaxSubjectLength {
		return false, MessageSubjectLong
	}
	return true, ""
}

// Description checks that a description carries at least
// MinDescriptionLength characters.
func Description(description string) (bool, string) {
	if trimmedLength(description) < MinDescriptionLength {
		return false, MessageDescription
	}
	return true, ""
}

// Priority checks priority membership, ignoring case.
func Priority(priority string) (bool, string) {
	if !slices.Contains(Priorities, strings.ToLower(priority)) {
		return false, MessagePriority
	}
	return true, ""
}

// TicketID checks that a ticket identifier is positive.
func TicketID(ticketID int64) (bool, string) {
	if ticketID <= 0 {
		return false, MessageTicketID
	}
	return true, ""
}

// ParseTicketID converts user-supplied text into a ticket identifier.
// Returns false for anything that is not a base-10 integer greater
// than zero, including "1.5", "0x10", and values that overflow int64.
func ParseTicketID(raw string) (int64, bool) {
	ticketID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || ticketID <= 0 {
		return 0, false
	}
	return ticketID, true
}

// Status checks status membership, ignoring case.
func Status(status string) (bool, string) {
	if !slices.Contains(Statuses, strings.ToLower(status)) {
		return false, MessageStatus
	}
	return true, ""
}

// OptionalComment accepts an empty comment; anything else must carry
// at least MinCommentLength characters. A whitespace-only comment is
// not empty by this rule: it was supplied, and it says nothing.
func OptionalComment(comment string) (bool, string) {
	if comment == "" {
		return true, ""
	}
	return Comment(comment)
}

// Comment checks a comment that must be present.
func Comment(comment string) (bool, string) {
	if trimmedLength(comment) < MinCommentLength {
		return false, MessageComment
	}
	return true, ""
}

// Query checks that a search query is not blank.
func Query(query string) (bool, string) {
	if trimmedLength(query) == 0 {
		return false, MessageQuery
	}
	return true, ""
}
