// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"

	"github.com/bureau-foundation/deskbridge/lib/desk"
	"github.com/bureau-foundation/deskbridge/lib/fuzzy"
	"github.com/bureau-foundation/deskbridge/lib/zendesk"
)

type operationContext struct {
	ctx     context.Context
	manager *desk.Manager
}

// rankEnvelope reorders a successful listing by fuzzy match against
// pattern, dropping entries that do not match. Search results and
// users keep their manager's rule that an empty result is a failure;
// a ticket listing may be empty. Other envelopes pass through
// unchanged.
func rankEnvelope(envelope desk.Envelope, pattern string) desk.Envelope {
	if pattern == "" || !envelope.Success {
		return envelope
	}
	switch data := envelope.Data.(type) {
	case []zendesk.Ticket:
		envelope.Data = fuzzy.Rank(data, pattern, func(ticket zendesk.Ticket) string {
			return ticket.Subject
		})
	case []zendesk.SearchResult:
		ranked := fuzzy.Rank(data, pattern, func(result zendesk.SearchResult) string {
			return result.Subject
		})
		if len(ranked) == 0 {
			return desk.Envelope{Error: desk.ErrorNoMatch}
		}
		envelope.Data = ranked
	case []zendesk.User:
		ranked := fuzzy.Rank(data, pattern, func(user zendesk.User) string {
			return user.Name + " " + user.Email
		})
		if len(ranked) == 0 {
			return desk.Envelope{Error: desk.ErrorNoUsers}
		}
		envelope.Data = ranked
	}
	return envelope
}
