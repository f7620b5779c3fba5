// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed keeps the Zendesk API token out of configuration
// files in plaintext. The token is encrypted with filippo.io/age to
// one or more x25519 recipients and stored base64-encoded in the
// zendesk.api_token_sealed key; the process decrypts it at startup
// with the identity file named by zendesk.identity_file.
//
// Identities and decrypted tokens live in [secret.Buffer] values.
//
//   - [GenerateKeypair] -- new identity and recipient for a deployment
//   - [Encrypt] -- seal a token to recipients ("deskbridge token seal")
//   - [Decrypt] -- open a sealed token with an identity
//   - [ParseRecipient] -- validate a recipient before sealing
package sealed
