// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package zendesk provides a typed Go client for the Zendesk Support
// REST API (v2).
//
// The client authenticates with an agent email plus API token (HTTP
// basic, "email/token:secret") or with an OAuth access token. Every
// call is a single HTTP round trip bounded by a fixed timeout. There
// are no retries: a failed call is reported to the caller as an
// [*Error] and the caller decides what to do.
//
// Responses are decoded once, at this boundary, into a [Response]
// whose [Kind] names the shape the service returned (a ticket, a
// ticket listing, a user listing, search results, an empty body, or
// something else). Callers switch on Kind instead of probing keys.
//
// Listing endpoints are walked with [PageIterator] or [GetAll], which
// follow the service's next_page cursor until it runs out. The walk is
// bounded by [Config.MaxPages] and [Config.MaxItems]; a cursor that
// repeats, or that points outside the configured endpoint, aborts the
// walk. On any failure the items gathered so far are discarded.
//
// All requests are made over HTTPS. The client refuses non-HTTPS base
// URLs.
package zendesk
