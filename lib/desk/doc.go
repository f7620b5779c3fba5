// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package desk orchestrates ticket operations against a Zendesk
// account: each request is validated with [validator], translated into
// one or more REST calls through a [zendesk.Client], and the response
// is normalized into an [Envelope].
//
// Manager methods never return Go errors and never panic. Validation
// failures, transport failures, non-2xx responses, and responses of
// the wrong shape all become failure envelopes, so a caller (the CLI,
// or anything embedding the manager) handles exactly one result type.
//
// Invalid requests never reach the network. Nothing is retried: a
// failed call produces a failure envelope on the first attempt, and a
// failed page during a listing walk discards the pages already read.
package desk
