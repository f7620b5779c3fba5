// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/deskbridge/lib/codec"
	"github.com/bureau-foundation/deskbridge/lib/desk"
	"github.com/bureau-foundation/deskbridge/lib/render"
)

// Emit writes envelope to Stdout in the selected format. A failure
// envelope is written like any other and then reported as exit code 1.
func (g *Globals) Emit(envelope desk.Envelope) error {
	if err := g.write(envelope); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !envelope.Success {
		return &ExitError{Code: 1}
	}
	return nil
}

func (g *Globals) write(envelope desk.Envelope) error {
	switch g.Format {
	case FormatJSON:
		return WriteJSON(g.Stdout, envelope)
	case FormatCBOR:
		return codec.NewEncoder(g.Stdout).Encode(envelope)
	default:
		renderer := render.New(g.Stdout, render.Options{
			Color: g.color(),
			Width: g.Width,
		})
		_, err := fmt.Fprintln(g.Stdout, renderer.Envelope(envelope))
		return err
	}
}

// color reports whether text output should be styled: Stdout is a
// terminal and NO_COLOR is unset.
func (g *Globals) color() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return isTerminal(g.Stdout)
}

// WriteJSON writes value to w as indented JSON.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
