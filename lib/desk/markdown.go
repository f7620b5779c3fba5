// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package desk

import (
	"bytes"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// The converter is built once; goldmark keeps per-call state in the
// parse context, so one instance serves concurrent callers.
var (
	markdownConverter     goldmark.Markdown
	markdownConverterOnce sync.Once
)

func getMarkdownConverter() goldmark.Markdown {
	markdownConverterOnce.Do(func() {
		markdownConverter = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Agents write comments as they would type an email:
			// a single newline is a line break.
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
	return markdownConverter
}

// renderMarkdown converts comment text to HTML for Zendesk's
// html_body. Raw HTML in the input is dropped, not passed through.
func renderMarkdown(text string) (string, error) {
	var buffer bytes.Buffer
	if err := getMarkdownConverter().Convert([]byte(text), &buffer); err != nil {
		return "", err
	}
	return strings.TrimSpace(buffer.String()), nil
}
