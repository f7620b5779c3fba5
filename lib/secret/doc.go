// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds credential material (age identities, decrypted
// Zendesk API tokens) in memory the Go runtime never sees.
//
// A [Buffer] is an anonymous mmap region, mlocked so it cannot be
// swapped and marked MADV_DONTDUMP so it stays out of core dumps.
// Close zeroes and unmaps it. Reading a closed Buffer panics.
//
// [ReadFile] loads a secret from a file, or from stdin for "-",
// trimming surrounding whitespace.
//
// Depends on golang.org/x/sys/unix.
package secret
