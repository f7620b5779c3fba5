// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package validator holds the field rules that gate every ticket
// operation before any request leaves the process.
//
// Each field check is a pure predicate returning (ok, message). The
// composite checks ([ValidateCreate], [ValidateUpdate],
// [ValidateComment]) run every relevant predicate and collect all
// failures in rule order, so a caller sees every problem with a
// request at once rather than fixing them one round trip at a time.
//
// Invalid input is a normal return value. Nothing in this package
// panics or returns an error.
package validator
