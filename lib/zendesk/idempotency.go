// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// idempotencyDomain separates idempotency key derivation from any
// other BLAKE3 use of the same payload bytes.
const idempotencyDomain = "deskbridge 2026 ticket create idempotency key"

// IdempotencyKey derives a stable key for a request payload: the
// BLAKE3 derive-key hash of its JSON encoding, scoped by requester so
// that two people filing the same text still get two tickets. The same
// requester resubmitting an identical payload gets the same key, and
// the service answers with the ticket it already created.
func IdempotencyKey(requester string, payload any) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("zendesk: encoding payload for idempotency key: %w", err)
	}

	hasher := blake3.NewDeriveKey(idempotencyDomain)
	hasher.Write([]byte(requester))
	hasher.Write([]byte{0})
	hasher.Write(encoded)

	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:16]), nil
}
