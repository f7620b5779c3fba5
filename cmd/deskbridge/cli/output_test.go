// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/deskbridge/lib/codec"
	"github.com/bureau-foundation/deskbridge/lib/desk"
)

func outputGlobals(format string) (*Globals, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &Globals{Format: format, Stdout: &stdout}, &stdout
}

var deleted = desk.Envelope{Success: true, Message: desk.MessageDeleted}

var validationFailure = desk.Envelope{
	Error:   desk.ErrorFetchValidation,
	Details: []string{"Ticket ID must be a positive integer"},
}

func TestEmit_Text(t *testing.T) {
	globals, stdout := outputGlobals(FormatText)
	if err := globals.Emit(deleted); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got, want := stdout.String(), "SUCCESS: "+desk.MessageDeleted+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEmit_JSON(t *testing.T) {
	globals, stdout := outputGlobals(FormatJSON)
	if err := globals.Emit(deleted); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if decoded["success"] != true || decoded["message"] != desk.MessageDeleted {
		t.Errorf("decoded = %v", decoded)
	}
	if _, present := decoded["data"]; present {
		t.Errorf("data present for a deletion: %v", decoded)
	}
	if !strings.Contains(stdout.String(), "\n  \"success\": true") {
		t.Errorf("output is not indented:\n%s", stdout.String())
	}
}

func TestEmit_CBOR(t *testing.T) {
	globals, stdout := outputGlobals(FormatCBOR)
	if err := globals.Emit(deleted); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	var decoded map[string]any
	if err := codec.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not CBOR: %v", err)
	}
	if decoded["success"] != true || decoded["message"] != desk.MessageDeleted {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestEmit_FailureExitsOne(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatCBOR} {
		t.Run(format, func(t *testing.T) {
			globals, stdout := outputGlobals(format)
			err := globals.Emit(validationFailure)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
				t.Fatalf("Emit() error = %v, want exit code 1", err)
			}
			if stdout.Len() == 0 {
				t.Error("failure envelope was not written")
			}
		})
	}
}

func TestEmit_TextFailureListsDetails(t *testing.T) {
	globals, stdout := outputGlobals(FormatText)
	globals.Emit(validationFailure)

	want := "ERROR: " + desk.ErrorFetchValidation + "\nTicket ID must be a positive integer\n"
	if stdout.String() != want {
		t.Errorf("output = %q, want %q", stdout.String(), want)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatCBOR} {
		if err := (&Globals{Format: format}).checkFormat(); err != nil {
			t.Errorf("checkFormat(%q) = %v", format, err)
		}
	}
	if err := (&Globals{Format: "yaml"}).checkFormat(); err == nil {
		t.Error("checkFormat(yaml) succeeded")
	}
}
