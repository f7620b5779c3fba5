// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/deskbridge/lib/config"
	"github.com/bureau-foundation/deskbridge/lib/desk"
	"github.com/bureau-foundation/deskbridge/lib/version"
	"github.com/bureau-foundation/deskbridge/lib/zendesk"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Globals holds the flags shared by every command and the process
// streams commands write to.
type Globals struct {
	ConfigPath string
	EnvFile    string
	Format     string
	Width      int
	Verbose    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// HTTPClient replaces the Zendesk client's default transport.
	HTTPClient *http.Client
}

// NewGlobals returns Globals wired to the process streams.
func NewGlobals() *Globals {
	return &Globals{
		Format: FormatText,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Bind registers the global flags on flagSet. The current values are
// the defaults, so a subcommand's flag set keeps whatever the root
// already parsed.
func (g *Globals) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.ConfigPath, "config", g.ConfigPath, "config file (default: $"+config.ConfigVariable+", then ZENDESK_* variables)")
	flagSet.StringVar(&g.EnvFile, "env-file", g.EnvFile, "dotenv file loaded before the config")
	flagSet.StringVar(&g.Format, "format", g.Format, "output format: text, json, or cbor")
	flagSet.IntVar(&g.Width, "width", g.Width, "truncate text output to this many columns (0: no limit)")
	flagSet.BoolVarP(&g.Verbose, "verbose", "v", g.Verbose, "log operations and HTTP requests to stderr")
}

// FlagSet returns a flag set named name with the global flags bound.
func (g *Globals) FlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	g.Bind(flagSet)
	return flagSet
}

// Logger returns the command logger for --verbose.
func (g *Globals) Logger() *slog.Logger {
	return NewCommandLogger(g.Stderr, g.Verbose)
}

// LoadConfig resolves the configuration: --config, then
// DESKBRIDGE_CONFIG, then the ZENDESK_* environment variables. The
// result is validated.
func (g *Globals) LoadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case g.ConfigPath != "":
		cfg, err = config.LoadFile(g.ConfigPath, g.EnvFile)
	case os.Getenv(config.ConfigVariable) != "":
		cfg, err = config.Load(g.EnvFile)
	default:
		if g.EnvFile != "" {
			if err := godotenv.Load(g.EnvFile); err != nil {
				return nil, fmt.Errorf("loading env file %s: %w", g.EnvFile, err)
			}
		}
		cfg, err = config.FromEnvironment()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// Connect builds a ticket manager from the configuration. The
// returned context is cancelled on interrupt; callers must call
// cancel.
func (g *Globals) Connect() (context.Context, context.CancelFunc, *desk.Manager, error) {
	if err := g.checkFormat(); err != nil {
		return nil, nil, nil, err
	}

	cfg, err := g.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, nil, nil, err
	}
	apiToken, err := cfg.APIToken()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := g.Logger()
	client, err := zendesk.NewClient(zendesk.Config{
		BaseURL:    cfg.Zendesk.BaseURL,
		Subdomain:  cfg.Zendesk.Subdomain,
		Email:      cfg.Zendesk.Email,
		APIToken:   apiToken,
		OAuthToken: cfg.Zendesk.OAuthToken,
		Timeout:    timeout,
		MaxPages:   cfg.Pagination.MaxPages,
		MaxItems:   cfg.Pagination.MaxItems,
		UserAgent:  version.UserAgent(),
		HTTPClient: g.HTTPClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	manager := desk.New(desk.Config{
		Client:         client,
		MarkdownBodies: cfg.Tickets.MarkdownBodies,
		Logger:         logger,
	})
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx, cancel, manager, nil
}

func (g *Globals) checkFormat() error {
	switch g.Format {
	case FormatText, FormatJSON, FormatCBOR:
		return nil
	}
	return fmt.Errorf("unknown --format %q (want text, json, or cbor)", g.Format)
}
