// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/bureau-foundation/deskbridge/lib/netutil"
)

// Defaults applied by NewClient when the corresponding Config field is
// zero.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultMaxPages  = 1000
	DefaultMaxItems  = 100000
	defaultUserAgent = "deskbridge"
)

// subdomainPattern matches a Zendesk account subdomain.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Config holds configuration for creating a Zendesk API Client.
//
// Exactly one authentication mode must be configured:
//   - API token authentication: set Email and APIToken
//   - OAuth authentication: set OAuthToken
type Config struct {
	// BaseURL is the account root, e.g. "https://acme.zendesk.com".
	// When empty it is derived from Subdomain. Must use HTTPS.
	BaseURL string

	// Subdomain is the account name in "{subdomain}.zendesk.com".
	// Ignored when BaseURL is set.
	Subdomain string

	// Email is the agent address paired with APIToken.
	Email string

	// APIToken is a Zendesk API token.
	APIToken string

	// OAuthToken is an OAuth access token. Mutually exclusive with
	// Email/APIToken.
	OAuthToken string

	// Timeout bounds each HTTP round trip, including reading the
	// body. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxPages bounds the pages one listing walk may fetch. Defaults
	// to DefaultMaxPages.
	MaxPages int

	// MaxItems bounds the items one listing walk may accumulate.
	// Defaults to DefaultMaxItems.
	MaxItems int

	// MaxResponseSize bounds a single response body in bytes.
	// Defaults to netutil.DefaultMaxResponseSize.
	MaxResponseSize int64

	// UserAgent is sent with every request. Defaults to "deskbridge".
	UserAgent string

	// HTTPClient is used for all HTTP requests. Defaults to a client
	// whose transport negotiates gzip-compressed responses.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a Zendesk REST API client. It holds only immutable
// configuration and is safe for concurrent use.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	auth            authenticator
	timeout         time.Duration
	maxPages        int
	maxItems        int
	maxResponseSize int64
	userAgent       string
	logger          *slog.Logger
}

// NewClient creates a Zendesk API client from the given configuration.
// Returns an error if the configuration is invalid (no or ambiguous
// authentication, non-HTTPS URL, malformed subdomain).
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		if config.Subdomain == "" {
			return nil, fmt.Errorf("zendesk: BaseURL or Subdomain is required")
		}
		if !subdomainPattern.MatchString(config.Subdomain) {
			return nil, fmt.Errorf("zendesk: invalid subdomain %q", config.Subdomain)
		}
		baseURL = "https://" + config.Subdomain + ".zendesk.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("zendesk: API client requires HTTPS (got %q)", baseURL)
	}

	hasToken := config.Email != "" || config.APIToken != ""
	hasOAuth := config.OAuthToken != ""

	if hasToken && hasOAuth {
		return nil, fmt.Errorf("zendesk: cannot configure both API token auth and OAuth")
	}
	if !hasToken && !hasOAuth {
		return nil, fmt.Errorf("zendesk: no authentication configured (set Email+APIToken or OAuthToken)")
	}

	var auth authenticator
	if hasToken {
		if config.Email == "" {
			return nil, fmt.Errorf("zendesk: Email is required for API token auth")
		}
		if config.APIToken == "" {
			return nil, fmt.Errorf("zendesk: APIToken is required for API token auth")
		}
		auth = newAPITokenAuth(config.Email, config.APIToken)
	} else {
		auth = newOAuthAuth(config.OAuthToken)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxPages := config.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	maxItems := config.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	maxResponseSize := config.MaxResponseSize
	if maxResponseSize <= 0 {
		maxResponseSize = netutil.DefaultMaxResponseSize
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:         baseURL,
		httpClient:      httpClient,
		auth:            auth,
		timeout:         timeout,
		maxPages:        maxPages,
		maxItems:        maxItems,
		maxResponseSize: maxResponseSize,
		userAgent:       userAgent,
		logger:          logger.With("zendesk", baseURL, "auth", auth.mode()),
	}, nil
}

// BaseURL returns the resolved account root without a trailing slash.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header. Zendesk returns
// the original response for a repeated ticket creation carrying the
// same key instead of opening a duplicate.
func WithIdempotencyKey(key string) RequestOption {
	return func(options *requestOptions) {
		options.idempotencyKey = key
	}
}

// Get performs one GET round trip.
func (client *Client) Get(ctx context.Context, path string) (Response, error) {
	return client.do(ctx, http.MethodGet, path, nil, nil)
}

// Post performs one POST round trip with body JSON-encoded.
func (client *Client) Post(ctx context.Context, path string, body any, options ...RequestOption) (Response, error) {
	return client.do(ctx, http.MethodPost, path, body, options)
}

// Put performs one PUT round trip with body JSON-encoded.
func (client *Client) Put(ctx context.Context, path string, body any, options ...RequestOption) (Response, error) {
	return client.do(ctx, http.MethodPut, path, body, options)
}

// Delete performs one DELETE round trip. A successful deletion answers
// with an empty body, which decodes as KindEmpty.
func (client *Client) Delete(ctx context.Context, path string) (Response, error) {
	return client.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes an authenticated request against baseURL+path and
// decodes the response. The path must be relative to the base URL
// (e.g., "/api/v2/tickets.json"). requestBody is JSON-encoded when
// non-nil.
//
// The whole round trip, including reading the body, is bounded by the
// client timeout. Non-2xx responses and transport failures return an
// *Error; nothing is retried.
func (client *Client) do(ctx context.Context, method, path string, requestBody any, options []RequestOption) (Response, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var settings requestOptions
	for _, option := range options {
		option(&settings)
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return Response{}, &Error{Kind: ErrTransport, Method: method, Path: path, Err: fmt.Errorf("encoding request body: %w", err)}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return Response{}, &Error{Kind: ErrTransport, Method: method, Path: path, Err: fmt.Errorf("creating request: %w", err)}
	}

	request.Header.Set("Authorization", client.auth.AuthorizationHeader())
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", client.userAgent)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if settings.idempotencyKey != "" {
		request.Header.Set("Idempotency-Key", settings.idempotencyKey)
	}

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Debug("zendesk request failed",
			"method", method,
			"path", path,
			"duration", time.Since(started),
			"error", err,
		)
		return Response{}, &Error{Kind: ErrTransport, Method: method, Path: path, Err: err}
	}
	defer response.Body.Close()

	body, err := netutil.ReadBounded(response.Body, client.maxResponseSize)
	if err != nil {
		kind := ErrTransport
		if errors.Is(err, netutil.ErrResponseTooLarge) {
			kind = ErrDecode
		}
		return Response{}, &Error{Kind: kind, Method: method, Path: path, Err: err}
	}

	client.logger.Debug("zendesk request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"bytes", len(body),
		"duration", time.Since(started),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return Response{}, parseStatusError(method, path, response.StatusCode, body)
	}

	decoded, err := decodeResponse(body)
	if err != nil {
		return Response{}, &Error{Kind: ErrDecode, Method: method, Path: path, Err: err}
	}
	return decoded, nil
}
