// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package token implements "deskbridge token", which manages the
// age-sealed form of the Zendesk API token kept in config files.
package token

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/deskbridge/cmd/deskbridge/cli"
	"github.com/bureau-foundation/deskbridge/lib/sealed"
	"github.com/bureau-foundation/deskbridge/lib/secret"
)

// Command returns the "token" command group.
func Command(globals *cli.Globals) *cli.Command {
	return &cli.Command{
		Name:    "token",
		Summary: "Seal API tokens for config files",
		Description: `Manage sealed Zendesk API tokens.

A sealed token is the API token encrypted to one or more age
recipients. Put it in zendesk.api_token_sealed and point
zendesk.identity_file at the matching identity; deskbridge decrypts it
at startup. Production configs refuse a plaintext zendesk.api_token.`,
		Subcommands: []*cli.Command{
			keygenCommand(globals),
			sealCommand(globals),
		},
	}
}

func keygenCommand(globals *cli.Globals) *cli.Command {
	var identityPath string

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an identity and recipient",
		Description: `Generate an age x25519 keypair. The identity (private key) is written
to --identity-file with mode 0600, or to stdout when the flag is
omitted. The recipient (public key) is always printed to stdout.`,
		Usage: "deskbridge token keygen [--identity-file PATH]",
		Examples: []cli.Example{
			{
				Description: "Create the identity for a production host",
				Command:     "deskbridge token keygen --identity-file /etc/deskbridge/identity",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flagSet.StringVar(&identityPath, "identity-file", "", "write the identity here instead of stdout")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("keygen takes no positional arguments (got %q)", args[0])
			}

			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			defer keypair.Close()

			if identityPath == "" {
				fmt.Fprintf(globals.Stdout, "identity: %s\n", keypair.Identity.String())
			} else if err := writeIdentity(identityPath, keypair.Identity); err != nil {
				return err
			}
			fmt.Fprintf(globals.Stdout, "recipient: %s\n", keypair.Recipient)
			return nil
		},
	}
}

// writeIdentity creates path with mode 0600. An existing file is
// never overwritten.
func writeIdentity(path string, identity *secret.Buffer) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("writing identity: %w", err)
	}
	if _, err := file.Write(identity.Bytes()); err != nil {
		file.Close()
		return fmt.Errorf("writing identity: %w", err)
	}
	if _, err := file.Write([]byte("\n")); err != nil {
		file.Close()
		return fmt.Errorf("writing identity: %w", err)
	}
	return file.Close()
}

func sealCommand(globals *cli.Globals) *cli.Command {
	var recipients []string
	var tokenFile string

	return &cli.Command{
		Name:    "seal",
		Summary: "Encrypt an API token",
		Description: `Encrypt a Zendesk API token to one or more recipients and print the
base64 ciphertext for zendesk.api_token_sealed.

The token is read from --token-file ("-" for the first line of stdin),
or prompted for without echo when stdin is a terminal.`,
		Usage: "deskbridge token seal --recipient AGE1... [--recipient ...] [--token-file PATH]",
		Examples: []cli.Example{
			{
				Description: "Seal a token from a password manager",
				Command:     "pass show zendesk/api-token | deskbridge token seal --recipient age1... --token-file -",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("seal", pflag.ContinueOnError)
			flagSet.StringArrayVar(&recipients, "recipient", nil, "age recipient (repeatable)")
			flagSet.StringVar(&tokenFile, "token-file", "", `file holding the token, "-" for stdin`)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("seal takes no positional arguments (got %q)", args[0])
			}
			if len(recipients) == 0 {
				return errors.New("at least one --recipient is required")
			}
			for _, recipient := range recipients {
				if err := sealed.ParseRecipient(recipient); err != nil {
					return err
				}
			}

			token, err := readToken(globals, tokenFile)
			if err != nil {
				return err
			}
			defer token.Close()

			ciphertext, err := sealed.Encrypt(token.Bytes(), recipients)
			if err != nil {
				return err
			}
			fmt.Fprintln(globals.Stdout, ciphertext)
			return nil
		},
	}
}

// readToken reads the token from path, or prompts on the terminal
// when path is empty.
func readToken(globals *cli.Globals, path string) (*secret.Buffer, error) {
	if path != "" {
		return secret.ReadFile(path)
	}

	stdin, ok := globals.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal; pass the token with --token-file")
	}
	fmt.Fprint(globals.Stderr, "Zendesk API token: ")
	data, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(globals.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	return secret.NewFromBytes(data)
}
