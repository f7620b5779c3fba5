// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the deskbridge binary.
//
// A [Command] tree dispatches on the first positional argument and
// parses pflag flag sets lazily, suggesting the closest command or
// flag name on a typo. [Globals] carries the flags every command
// accepts (--config, --env-file, --format, --width, --verbose) and
// turns them into a connected [desk.Manager] and an output sink for
// envelopes. A failure envelope is printed and then surfaces as an
// [ExitError] so main exits 1 without a second error line.
package cli
