// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/deskbridge/lib/sealed"
	"github.com/bureau-foundation/deskbridge/lib/secret"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use against a sandbox account.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for the live support account.
	Production Environment = "production"
)

// Environment variables read by this package.
const (
	ConfigVariable    = "DESKBRIDGE_CONFIG"
	SubdomainVariable = "ZENDESK_SUBDOMAIN"
	EmailVariable     = "ZENDESK_EMAIL"
	APITokenVariable  = "ZENDESK_API_TOKEN"
)

// Config is the deskbridge configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment" json:"environment"`

	// Zendesk configures the account and credentials.
	Zendesk ZendeskConfig `yaml:"zendesk" json:"zendesk"`

	// Pagination bounds listing walks.
	Pagination PaginationConfig `yaml:"pagination" json:"pagination"`

	// Tickets configures how ticket text is sent.
	Tickets TicketsConfig `yaml:"tickets" json:"tickets"`

	// Per-environment overrides, applied after the base values.
	Development *Overrides `yaml:"development,omitempty" json:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty" json:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty" json:"production,omitempty"`
}

// Overrides contains the fields an environment section may replace.
type Overrides struct {
	Zendesk    *ZendeskConfig    `yaml:"zendesk,omitempty" json:"zendesk,omitempty"`
	Pagination *PaginationConfig `yaml:"pagination,omitempty" json:"pagination,omitempty"`
}

// ZendeskConfig configures the account endpoint and authentication.
type ZendeskConfig struct {
	// Subdomain is the account name in "{subdomain}.zendesk.com".
	Subdomain string `yaml:"subdomain" json:"subdomain"`

	// BaseURL overrides the endpoint derived from Subdomain, e.g. for
	// a host-mapped account. Must use HTTPS.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Email is the agent address used with API token authentication.
	Email string `yaml:"email" json:"email"`

	// APIToken is a plaintext API token. Refused in production.
	APIToken string `yaml:"api_token" json:"api_token"`

	// APITokenSealed is an age-encrypted API token (base64), opened
	// with IdentityFile.
	APITokenSealed string `yaml:"api_token_sealed" json:"api_token_sealed"`

	// IdentityFile is the path of the age identity for APITokenSealed.
	IdentityFile string `yaml:"identity_file" json:"identity_file"`

	// OAuthToken is an OAuth access token, used instead of
	// Email/APIToken.
	OAuthToken string `yaml:"oauth_token" json:"oauth_token"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 10s
	Timeout string `yaml:"timeout" json:"timeout"`
}

// PaginationConfig bounds listing walks. Zero selects the client
// defaults.
type PaginationConfig struct {
	MaxPages int `yaml:"max_pages" json:"max_pages"`
	MaxItems int `yaml:"max_items" json:"max_items"`
}

// TicketsConfig configures ticket text handling.
type TicketsConfig struct {
	// MarkdownBodies renders descriptions and comments from Markdown
	// and sends them as html_body.
	MarkdownBodies bool `yaml:"markdown_bodies" json:"markdown_bodies"`
}

// Default returns the base configuration that the file is merged
// into.
func Default() *Config {
	return &Config{
		Environment: Development,
		Zendesk: ZendeskConfig{
			Timeout: "10s",
		},
	}
}

// Load loads the file named by DESKBRIDGE_CONFIG. envFile is an
// optional dotenv path, as for LoadFile.
func Load(envFile string) (*Config, error) {
	path := os.Getenv(ConfigVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your deskbridge config file, or use --config", ConfigVariable)
	}
	return LoadFile(path, envFile)
}

// LoadFile loads configuration from path. When envFile is non-empty
// that dotenv file must exist and is loaded first; otherwise a .env
// next to path is loaded if present.
func LoadFile(path, envFile string) (*Config, error) {
	if err := loadDotenv(path, envFile); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func loadDotenv(configPath, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("config: loading env file %s: %w", envFile, err)
		}
		return nil
	}
	sibling := filepath.Join(filepath.Dir(configPath), ".env")
	if _, err := os.Stat(sibling); err != nil {
		return nil
	}
	if err := godotenv.Load(sibling); err != nil {
		return fmt.Errorf("config: loading env file %s: %w", sibling, err)
	}
	return nil
}

// loadFile parses path into c according to its extension.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("config: parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported file extension %q (want .yaml, .yml, .json, or .jsonc)", extension)
	}
	return nil
}

// applyEnvironmentOverrides merges the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if zendesk := overrides.Zendesk; zendesk != nil {
		overrideString(&c.Zendesk.Subdomain, zendesk.Subdomain)
		overrideString(&c.Zendesk.BaseURL, zendesk.BaseURL)
		overrideString(&c.Zendesk.Email, zendesk.Email)
		overrideString(&c.Zendesk.APIToken, zendesk.APIToken)
		overrideString(&c.Zendesk.APITokenSealed, zendesk.APITokenSealed)
		overrideString(&c.Zendesk.IdentityFile, zendesk.IdentityFile)
		overrideString(&c.Zendesk.OAuthToken, zendesk.OAuthToken)
		overrideString(&c.Zendesk.Timeout, zendesk.Timeout)
	}
	if pagination := overrides.Pagination; pagination != nil {
		if pagination.MaxPages != 0 {
			c.Pagination.MaxPages = pagination.MaxPages
		}
		if pagination.MaxItems != 0 {
			c.Pagination.MaxItems = pagination.MaxItems
		}
	}
}

func overrideString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in string fields.
func (c *Config) expandVariables() {
	vars := map[string]string{"HOME": os.Getenv("HOME")}
	for _, field := range []*string{
		&c.Zendesk.Subdomain,
		&c.Zendesk.BaseURL,
		&c.Zendesk.Email,
		&c.Zendesk.APIToken,
		&c.Zendesk.APITokenSealed,
		&c.Zendesk.IdentityFile,
		&c.Zendesk.OAuthToken,
		&c.Zendesk.Timeout,
	} {
		*field = expandVars(*field, vars)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, consulting
// vars before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return parts[2]
	})
}

// FromEnvironment builds a configuration from ZENDESK_SUBDOMAIN,
// ZENDESK_EMAIL, and ZENDESK_API_TOKEN. Every missing variable is
// reported.
func FromEnvironment() (*Config, error) {
	cfg := Default()
	cfg.Zendesk.Subdomain = os.Getenv(SubdomainVariable)
	cfg.Zendesk.Email = os.Getenv(EmailVariable)
	cfg.Zendesk.APIToken = os.Getenv(APITokenVariable)

	var errs []error
	for _, required := range []struct{ name, value string }{
		{SubdomainVariable, cfg.Zendesk.Subdomain},
		{EmailVariable, cfg.Zendesk.Email},
		{APITokenVariable, cfg.Zendesk.APIToken},
	} {
		if required.value == "" {
			errs = append(errs, fmt.Errorf("%s environment variable not set", required.name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	zendesk := c.Zendesk
	if zendesk.Subdomain == "" && zendesk.BaseURL == "" {
		errs = append(errs, fmt.Errorf("zendesk.subdomain or zendesk.base_url is required"))
	}
	if zendesk.BaseURL != "" && !strings.HasPrefix(zendesk.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("zendesk.base_url must use https"))
	}

	hasToken := zendesk.APIToken != "" || zendesk.APITokenSealed != ""
	hasOAuth := zendesk.OAuthToken != ""
	switch {
	case hasToken && hasOAuth:
		errs = append(errs, fmt.Errorf("zendesk: set either an API token or oauth_token, not both"))
	case !hasToken && !hasOAuth:
		errs = append(errs, fmt.Errorf("zendesk: no credentials (set api_token, api_token_sealed, or oauth_token)"))
	}
	if zendesk.APIToken != "" && zendesk.APITokenSealed != "" {
		errs = append(errs, fmt.Errorf("zendesk.api_token and zendesk.api_token_sealed are mutually exclusive"))
	}
	if hasToken && zendesk.Email == "" {
		errs = append(errs, fmt.Errorf("zendesk.email is required with an API token"))
	}
	if zendesk.APITokenSealed != "" && zendesk.IdentityFile == "" {
		errs = append(errs, fmt.Errorf("zendesk.identity_file is required with zendesk.api_token_sealed"))
	}
	if c.Environment == Production && zendesk.APIToken != "" {
		errs = append(errs, fmt.Errorf("zendesk.api_token is not allowed in production; use api_token_sealed"))
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if c.Pagination.MaxPages < 0 {
		errs = append(errs, fmt.Errorf("pagination.max_pages must not be negative"))
	}
	if c.Pagination.MaxItems < 0 {
		errs = append(errs, fmt.Errorf("pagination.max_items must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout parses zendesk.timeout. Empty selects the client default
// (returned as 0).
func (c *Config) Timeout() (time.Duration, error) {
	if c.Zendesk.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Zendesk.Timeout)
	if err != nil {
		return 0, fmt.Errorf("zendesk.timeout: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("zendesk.timeout must be positive, got %s", c.Zendesk.Timeout)
	}
	return timeout, nil
}

// APIToken returns the API token, decrypting api_token_sealed with the
// identity file when set. Returns "" when OAuth is configured.
func (c *Config) APIToken() (string, error) {
	if c.Zendesk.APITokenSealed == "" {
		return c.Zendesk.APIToken, nil
	}

	identity, err := secret.ReadFile(c.Zendesk.IdentityFile)
	if err != nil {
		return "", fmt.Errorf("config: reading identity file: %w", err)
	}
	defer identity.Close()

	token, err := sealed.Decrypt(c.Zendesk.APITokenSealed, identity)
	if err != nil {
		return "", fmt.Errorf("config: opening zendesk.api_token_sealed: %w", err)
	}
	defer token.Close()
	return token.String(), nil
}
