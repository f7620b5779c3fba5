// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind names the shape of a successful response body.
type Kind int

const (
	// KindOther is a JSON object with none of the recognized keys.
	KindOther Kind = iota

	// KindEmpty is an empty body or an empty JSON object. Zendesk
	// answers a successful DELETE this way.
	KindEmpty

	// KindTicket carries a single non-empty "ticket" object.
	KindTicket

	// KindTicketList carries a "tickets" listing.
	KindTicketList

	// KindUserList carries a "users" listing.
	KindUserList

	// KindSearchResults carries a "results" listing.
	KindSearchResults
)

func (kind Kind) String() string {
	switch kind {
	case KindOther:
		return "other"
	case KindEmpty:
		return "empty"
	case KindTicket:
		return "ticket"
	case KindTicketList:
		return "tickets"
	case KindUserList:
		return "users"
	case KindSearchResults:
		return "results"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}

// listingKeys are checked in order; the first one present names the
// listing. A page never carries more than one in practice.
var listingKeys = []struct {
	key  string
	kind Kind
}{
	{"tickets", KindTicketList},
	{"users", KindUserList},
	{"results", KindSearchResults},
}

// Response is a decoded 2xx response. Exactly the field matching Kind
// is populated; Raw always holds the body as received.
type Response struct {
	Kind Kind

	Ticket  *Ticket
	Tickets []Ticket
	Users   []User
	Results []SearchResult

	// NextPage is the listing cursor, empty on the last page and for
	// non-listing responses.
	NextPage string

	// Raw is the undecoded response body.
	Raw []byte
}

// String renders the response body for diagnostics. An empty body
// renders as "{}".
func (response Response) String() string {
	trimmed := bytes.TrimSpace(response.Raw)
	if len(trimmed) == 0 {
		return "{}"
	}
	return string(trimmed)
}

// listing is the part of a page the paginator needs: which key held
// the items, the undecoded items, and the cursor.
type listing struct {
	kind   Kind
	items  json.RawMessage
	cursor string
}

// parseObject decodes body as a JSON object keyed by field name. An
// empty body is an empty object.
func parseObject(body []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		// A literal "null" body.
		return nil, fmt.Errorf("response body is null, expected a JSON object")
	}
	return fields, nil
}

// parseListing finds the listing key and the continuation cursor in a
// decoded object. The classic offset pagination reports the cursor as
// "next_page"; cursor-based pagination reports "links.next" guarded by
// "meta.has_more". Both are honored, next_page first.
func parseListing(fields map[string]json.RawMessage) (listing, error) {
	var result listing
	for _, candidate := range listingKeys {
		if items, ok := fields[candidate.key]; ok {
			result.kind = candidate.kind
			result.items = items
			break
		}
	}

	if raw, ok := fields["next_page"]; ok {
		var nextPage *string
		if err := json.Unmarshal(raw, &nextPage); err != nil {
			return listing{}, fmt.Errorf("decoding next_page: %w", err)
		}
		if nextPage != nil {
			result.cursor = *nextPage
		}
	}

	if result.cursor == "" {
		var meta struct {
			HasMore bool `json:"has_more"`
		}
		var links struct {
			Next *string `json:"next"`
		}
		if raw, ok := fields["meta"]; ok {
			if err := json.Unmarshal(raw, &meta); err != nil {
				return listing{}, fmt.Errorf("decoding meta: %w", err)
			}
		}
		if raw, ok := fields["links"]; ok {
			if err := json.Unmarshal(raw, &links); err != nil {
				return listing{}, fmt.Errorf("decoding links: %w", err)
			}
		}
		if meta.HasMore && links.Next != nil {
			result.cursor = *links.Next
		}
	}

	return result, nil
}

// isPresentObject reports whether raw is a JSON object with at least
// one field. A null or {} value does not count as present.
func isPresentObject(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	return len(fields) > 0
}

// decodeResponse classifies and decodes a 2xx body.
func decodeResponse(body []byte) (Response, error) {
	response := Response{Raw: body}

	fields, err := parseObject(body)
	if err != nil {
		return Response{}, err
	}
	if len(fields) == 0 {
		response.Kind = KindEmpty
		return response, nil
	}

	if raw, ok := fields["ticket"]; ok && isPresentObject(raw) {
		var ticket Ticket
		if err := json.Unmarshal(raw, &ticket); err != nil {
			return Response{}, fmt.Errorf("decoding ticket: %w", err)
		}
		response.Kind = KindTicket
		response.Ticket = &ticket
		return response, nil
	}

	page, err := parseListing(fields)
	if err != nil {
		return Response{}, err
	}
	response.NextPage = page.cursor

	switch page.kind {
	case KindTicketList:
		err = decodeItems(page.items, &response.Tickets)
	case KindUserList:
		err = decodeItems(page.items, &response.Users)
	case KindSearchResults:
		err = decodeItems(page.items, &response.Results)
	default:
		response.Kind = KindOther
		return response, nil
	}
	if err != nil {
		return Response{}, fmt.Errorf("decoding %s: %w", page.kind, err)
	}
	response.Kind = page.kind
	return response, nil
}

// decodeItems unmarshals a listing array. A null listing decodes to an
// empty, non-nil slice so that callers can tell "listing present but
// empty" from "no listing".
func decodeItems[T any](raw json.RawMessage, destination *[]T) error {
	if err := json.Unmarshal(raw, destination); err != nil {
		return err
	}
	if *destination == nil {
		*destination = []T{}
	}
	return nil
}
