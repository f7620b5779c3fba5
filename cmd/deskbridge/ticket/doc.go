// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the ticket and user commands of the
// deskbridge CLI. Each command maps onto one [desk.Manager] operation
// and prints the resulting envelope in the --format the user chose.
//
// Ticket IDs that do not parse are passed on as zero, so the manager
// reports them as a validation failure envelope like any other bad
// input rather than as a usage error.
package ticket
