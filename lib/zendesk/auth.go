// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zendesk

import "encoding/base64"

// authenticator provides the Authorization header value for API
// requests. Both supported modes use static credentials, so the value
// is computed once at construction.
type authenticator interface {
	AuthorizationHeader() string
	// mode names the authentication scheme for logs. Never includes
	// the credential itself.
	mode() string
}

// apiTokenAuth authenticates as an agent with an API token. Zendesk
// expects HTTP basic auth with the user part "{email}/token" and the
// token as password.
type apiTokenAuth struct {
	header string
}

func newAPITokenAuth(email, token string) *apiTokenAuth {
	credentials := email + "/token:" + token
	return &apiTokenAuth{header: "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))}
}

func (auth *apiTokenAuth) AuthorizationHeader() string { return auth.header }
func (auth *apiTokenAuth) mode() string                { return "api_token" }

// oauthAuth authenticates with an OAuth access token.
type oauthAuth struct {
	header string
}

func newOAuthAuth(token string) *oauthAuth {
	return &oauthAuth{header: "Bearer " + token}
}

func (auth *oauthAuth) AuthorizationHeader() string { return auth.header }
func (auth *oauthAuth) mode() string                { return "oauth" }
