// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads deskbridge configuration.
//
// Configuration comes from a single file named by the
// DESKBRIDGE_CONFIG environment variable ([Load]) or a --config flag
// ([LoadFile]). There is no discovery of ~/.config files. The format
// follows the extension: .yaml and .yml are YAML, .json and .jsonc are
// JSON with comments and trailing commas allowed.
//
// Before the file is parsed, a dotenv file is loaded into the process
// environment without overriding variables that are already set: the
// explicit --env-file path if given, otherwise ".env" next to the
// config file if it exists. String values may then reference
// variables as ${VAR} or ${VAR:-default}, which keeps tokens out of
// the file itself.
//
// The file may carry development, staging, and production sections
// that override the base zendesk and pagination values when
// environment matches. Production refuses a plaintext
// zendesk.api_token; use zendesk.api_token_sealed with an identity
// file (see lib/sealed) or an OAuth token from the environment.
//
// With no file at all, [FromEnvironment] reads ZENDESK_SUBDOMAIN,
// ZENDESK_EMAIL, and ZENDESK_API_TOKEN.
package config
