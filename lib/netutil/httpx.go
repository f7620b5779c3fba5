// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response body reads for the
// Zendesk API client.
//
// A ticketing API answers with small JSON documents. A body larger
// than the configured bound indicates a misbehaving server or a proxy
// error page, and is reported as [ErrResponseTooLarge] instead of
// being silently truncated into invalid JSON.
package netutil

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxResponseSize bounds a single API response body: 32 MB.
// One page of a Zendesk listing is at most a few hundred kilobytes.
const DefaultMaxResponseSize int64 = 32 << 20

// errorSnippetSize bounds how much of an error body is quoted in an
// error message.
const errorSnippetSize = 512

// ErrResponseTooLarge is returned by ReadBounded when the body exceeds
// the limit.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// ReadBounded reads body up to limit bytes. A body of exactly limit
// bytes is accepted; one byte more returns ErrResponseTooLarge. A
// non-positive limit selects DefaultMaxResponseSize.
func ReadBounded(body io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxResponseSize
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, limit)
	}
	return data, nil
}

// Snippet renders an error body for inclusion in an error message:
// surrounding whitespace removed, cut at errorSnippetSize bytes with
// an ellipsis marker.
func Snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= errorSnippetSize {
		return text
	}
	return text[:errorSnippetSize] + "..."
}
