// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/linkchat-tui/internal/backend"
	"github.com/jeranaias/linkchat-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the endpoint could not be reached
	ExitNetworkError = 5
	// ExitEndpointError indicates the endpoint answered with an error
	ExitEndpointError = 6
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "ask", "config"
	Action  string // e.g. "send", "init"
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports bad arguments.
type UsageError struct {
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Reason, e.Example)
	}
	return e.Reason
}

// configError marks a failure to load or validate configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var cfgErr *configError
	var validateErrs config.ValidateErrors
	if errors.As(err, &cfgErr) || errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	var terr *backend.TransportError
	if errors.As(err, &terr) {
		switch terr.Kind {
		case backend.KindNetwork:
			return ExitNetworkError
		case backend.KindStatus, backend.KindMalformed:
			return ExitEndpointError
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ExitNetworkError
	}
	return ExitGeneralError
}
