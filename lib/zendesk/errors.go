// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bureau-foundation/deskbridge/lib/netutil"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// ErrTransport is a network failure, timeout, or cancellation:
	// no HTTP response was received.
	ErrTransport ErrorKind = iota + 1

	// ErrStatus is a non-2xx HTTP response.
	ErrStatus

	// ErrDecode is a 2xx response whose body could not be read or
	// parsed.
	ErrDecode

	// ErrPaginationLimit means a listing walk hit MaxPages or
	// MaxItems before the service stopped returning cursors.
	ErrPaginationLimit

	// ErrPaginationLoop means the service returned a cursor that was
	// already consumed earlier in the same walk.
	ErrPaginationLoop

	// ErrForeignCursor means the service returned a cursor outside
	// the configured base endpoint. Following it would send
	// credentials to another host.
	ErrForeignCursor
)

func (kind ErrorKind) String() string {
	switch kind {
	case ErrTransport:
		return "transport"
	case ErrStatus:
		return "status"
	case ErrDecode:
		return "decode"
	case ErrPaginationLimit:
		return "pagination limit exceeded"
	case ErrPaginationLoop:
		return "pagination loop"
	case ErrForeignCursor:
		return "foreign cursor"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// Error is returned by every Client call that does not produce a
// usable response.
type Error struct {
	Kind ErrorKind

	// Method and Path identify the failed request. Path is relative
	// to the base URL.
	Method string
	Path   string

	// StatusCode is set for ErrStatus.
	StatusCode int

	// Message is the service's error description for ErrStatus, or a
	// description of the failure for other kinds.
	Message string

	// Err is the underlying cause for ErrTransport and ErrDecode.
	Err error
}

func (err *Error) Error() string {
	var builder strings.Builder
	builder.WriteString("zendesk: ")
	if err.Method != "" {
		fmt.Fprintf(&builder, "%s %s: ", err.Method, err.Path)
	}
	switch err.Kind {
	case ErrStatus:
		fmt.Fprintf(&builder, "HTTP %d", err.StatusCode)
		if err.Message != "" {
			builder.WriteString(": ")
			builder.WriteString(err.Message)
		}
	case ErrTransport, ErrDecode:
		builder.WriteString(err.Kind.String())
		if err.Err != nil {
			builder.WriteString(": ")
			builder.WriteString(err.Err.Error())
		} else if err.Message != "" {
			builder.WriteString(": ")
			builder.WriteString(err.Message)
		}
	default:
		builder.WriteString(err.Kind.String())
		if err.Message != "" {
			builder.WriteString(": ")
			builder.WriteString(err.Message)
		}
	}
	return builder.String()
}

func (err *Error) Unwrap() error {
	return err.Err
}

func errorKind(err error) ErrorKind {
	var zendeskError *Error
	if errors.As(err, &zendeskError) {
		return zendeskError.Kind
	}
	return 0
}

func statusCode(err error) int {
	var zendeskError *Error
	if errors.As(err, &zendeskError) && zendeskError.Kind == ErrStatus {
		return zendeskError.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return statusCode(err) == 404
}

// IsUnauthorized reports whether err is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	code := statusCode(err)
	return code == 401 || code == 403
}

// IsRateLimited reports whether err is a 429 response. The client
// never waits and retries on its own.
func IsRateLimited(err error) bool {
	return statusCode(err) == 429
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	return errorKind(err) == ErrTransport
}

// IsPaginationLimit reports whether err is a listing walk stopped by
// MaxPages or MaxItems.
func IsPaginationLimit(err error) bool {
	return errorKind(err) == ErrPaginationLimit
}

// parseStatusError builds an ErrStatus error from a response body.
// Zendesk reports errors in a few shapes:
//
//	{"error": "RecordNotFound", "description": "Not found"}
//	{"error": {"title": "Forbidden", "message": "You do not have access"}}
//	{"error": "RecordInvalid", "description": "...", "details": {...}}
//
// Anything else is quoted verbatim (trimmed and bounded).
func parseStatusError(method, path string, statusCode int, body []byte) *Error {
	result := &Error{
		Kind:       ErrStatus,
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
	}

	var wire struct {
		Error       json.RawMessage            `json:"error"`
		Description string                     `json:"description"`
		Details     map[string]json.RawMessage `json:"details"`
	}
	if json.Unmarshal(body, &wire) != nil || len(wire.Error) == 0 {
		result.Message = netutil.Snippet(body)
		return result
	}

	var code string
	var object struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	switch {
	case json.Unmarshal(wire.Error, &code) == nil:
		result.Message = code
		if wire.Description != "" {
			result.Message = code + ": " + wire.Description
		}
	case json.Unmarshal(wire.Error, &object) == nil:
		result.Message = object.Title
		if object.Message != "" {
			result.Message = object.Title + ": " + object.Message
		}
	default:
		result.Message = netutil.Snippet(body)
	}

	if len(wire.Details) > 0 {
		fields := make([]string, 0, len(wire.Details))
		for field := range wire.Details {
			fields = append(fields, field)
		}
		slices.Sort(fields)
		result.Message += " (fields: " + strings.Join(fields, ", ") + ")"
	}

	return result
}
