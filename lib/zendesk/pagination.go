// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PageIterator walks a paginated listing endpoint one page at a time.
// Each call to Next fetches the page named by the cursor the previous
// page returned; the cursor is never guessed or reused.
//
// The walk is bounded by the client's MaxPages and MaxItems. A cursor
// that repeats one already consumed, or that points outside the
// client's base URL, stops the walk with an error.
//
// The iterator is not safe for concurrent use.
type PageIterator[T any] struct {
	client   *Client
	nextPath string
	done     bool

	pages int
	items int
	seen  map[string]struct{}
}

// NewPageIterator creates an iterator starting at path, which is
// relative to the client's base URL.
func NewPageIterator[T any](client *Client, path string) *PageIterator[T] {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &PageIterator[T]{
		client:   client,
		nextPath: path,
		seen:     map[string]struct{}{path: {}},
	}
}

// Done reports whether the last page has been fetched.
func (iterator *PageIterator[T]) Done() bool {
	return iterator.done
}

// Pages returns the number of pages fetched so far.
func (iterator *PageIterator[T]) Pages() int {
	return iterator.pages
}

// Next fetches the next page and returns its items. A page without a
// listing key contributes no items. Returns nil, nil once Done.
func (iterator *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if iterator.done {
		return nil, nil
	}

	path := iterator.nextPath
	if iterator.pages >= iterator.client.maxPages {
		iterator.done = true
		return nil, &Error{
			Kind:    ErrPaginationLimit,
			Method:  http.MethodGet,
			Path:    path,
			Message: fmt.Sprintf("more than %d pages", iterator.client.maxPages),
		}
	}

	response, err := iterator.client.Get(ctx, path)
	if err != nil {
		iterator.done = true
		return nil, err
	}
	iterator.pages++

	fields, err := parseObject(response.Raw)
	if err != nil {
		iterator.done = true
		return nil, &Error{Kind: ErrDecode, Method: http.MethodGet, Path: path, Err: err}
	}
	page, err := parseListing(fields)
	if err != nil {
		iterator.done = true
		return nil, &Error{Kind: ErrDecode, Method: http.MethodGet, Path: path, Err: err}
	}

	items := []T{}
	if page.kind != KindOther {
		if err := decodeItems(page.items, &items); err != nil {
			iterator.done = true
			return nil, &Error{Kind: ErrDecode, Method: http.MethodGet, Path: path, Err: fmt.Errorf("decoding %s: %w", page.kind, err)}
		}
	}

	iterator.items += len(items)
	if iterator.items > iterator.client.maxItems {
		iterator.done = true
		return nil, &Error{
			Kind:    ErrPaginationLimit,
			Method:  http.MethodGet,
			Path:    path,
			Message: fmt.Sprintf("more than %d items", iterator.client.maxItems),
		}
	}

	if page.cursor == "" {
		iterator.done = true
		return items, nil
	}

	nextPath, err := iterator.client.cursorPath(page.cursor)
	if err != nil {
		iterator.done = true
		return nil, err
	}
	if _, repeated := iterator.seen[nextPath]; repeated {
		iterator.done = true
		return nil, &Error{
			Kind:    ErrPaginationLoop,
			Method:  http.MethodGet,
			Path:    path,
			Message: fmt.Sprintf("cursor %q was already consumed", nextPath),
		}
	}
	iterator.seen[nextPath] = struct{}{}
	iterator.nextPath = nextPath

	return items, nil
}

// Collect fetches all remaining pages and returns their items
// concatenated in request order. On any error the items gathered so
// far are discarded and only the error is returned.
func (iterator *PageIterator[T]) Collect(ctx context.Context) ([]T, error) {
	all := []T{}
	for !iterator.done {
		items, err := iterator.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// GetAll walks every page of the listing at path and returns all
// items. See PageIterator for the bounds and failure semantics.
func GetAll[T any](ctx context.Context, client *Client, path string) ([]T, error) {
	return NewPageIterator[T](client, path).Collect(ctx)
}

// cursorPath converts a cursor returned by the service into a path
// relative to the base URL, so that every page goes through the same
// authenticated request function. Absolute cursors must point under
// the base URL; relative cursors must be rooted paths.
func (client *Client) cursorPath(cursor string) (string, error) {
	if strings.HasPrefix(cursor, client.baseURL+"/") {
		return strings.TrimPrefix(cursor, client.baseURL), nil
	}
	if strings.HasPrefix(cursor, "/") && !strings.HasPrefix(cursor, "//") {
		return cursor, nil
	}
	return "", &Error{
		Kind:    ErrForeignCursor,
		Method:  http.MethodGet,
		Message: fmt.Sprintf("cursor %q is outside %s", cursor, client.baseURL),
	}
}

// ListTickets returns every ticket visible to the authenticated agent.
func (client *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	return GetAll[Ticket](ctx, client, "/api/v2/tickets.json")
}

// ListUsers returns every user in the account.
func (client *Client) ListUsers(ctx context.Context) ([]User, error) {
	return GetAll[User](ctx, client, "/api/v2/users.json")
}
