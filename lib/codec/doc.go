// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding behind "deskbridge --format
// cbor". Envelopes written this way can be consumed by tooling that
// prefers a compact binary stream over JSON lines.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same envelope always produces the same bytes, and times are written
// as RFC 3339 text to match the Zendesk JSON they came from.
//
// Types serialized here carry `json` tags only; fxamacker/cbor reads
// them when `cbor` tags are absent, so one tag set names fields in
// both output formats.
package codec
