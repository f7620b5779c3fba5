// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"

	"github.com/bureau-foundation/deskbridge/lib/secret"
)

// Keypair is an age x25519 identity and its recipient.
//
// The caller must Close the Keypair when done.
type Keypair struct {
	// Identity is the AGE-SECRET-KEY-1... string. Write it to the
	// identity file with owner-only permissions; never log it.
	Identity *secret.Buffer

	// Recipient is the age1... public key that tokens are sealed to.
	Recipient string
}

// Close releases the identity memory.
func (keypair *Keypair) Close() error {
	if keypair.Identity != nil {
		return keypair.Identity.Close()
	}
	return nil
}

// GenerateKeypair creates a new x25519 identity.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("sealed: generating identity: %w", err)
	}
	buffer, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("sealed: protecting identity: %w", err)
	}
	return &Keypair{
		Identity:  buffer,
		Recipient: identity.Recipient().String(),
	}, nil
}

// Encrypt seals plaintext to every recipient and returns standard
// base64, which fits on one line of YAML or JSON.
func Encrypt(plaintext []byte, recipients []string) (string, error) {
	if len(recipients) == 0 {
		return "", fmt.Errorf("sealed: at least one recipient is required")
	}

	parsed := make([]age.Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		x25519, err := age.ParseX25519Recipient(strings.TrimSpace(recipient))
		if err != nil {
			return "", fmt.Errorf("sealed: parsing recipient %q: %w", recipient, err)
		}
		parsed = append(parsed, x25519)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, parsed...)
	if err != nil {
		return "", fmt.Errorf("sealed: creating encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return "", fmt.Errorf("sealed: encrypting: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("sealed: finalizing: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext.Bytes()), nil
}

// Decrypt opens a base64 ciphertext produced by Encrypt. The identity
// is borrowed, not closed. The caller must Close the returned buffer.
// An empty plaintext is an error: a sealed empty token is never valid.
func Decrypt(ciphertext string, identity *secret.Buffer) (*secret.Buffer, error) {
	parsed, err := age.ParseX25519Identity(identity.String())
	if err != nil {
		return nil, fmt.Errorf("sealed: parsing identity: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return nil, fmt.Errorf("sealed: decoding base64: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(raw), parsed)
	if err != nil {
		return nil, fmt.Errorf("sealed: decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("sealed: reading plaintext: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("sealed: decrypted value is empty")
	}
	return secret.NewFromBytes(plaintext)
}

// ParseRecipient reports whether recipient is a valid age x25519
// public key.
func ParseRecipient(recipient string) error {
	if _, err := age.ParseX25519Recipient(strings.TrimSpace(recipient)); err != nil {
		return fmt.Errorf("sealed: invalid recipient: %w", err)
	}
	return nil
}
