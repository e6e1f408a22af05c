// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/linkchat-tui/internal/backend"
	"github.com/jeranaias/linkchat-tui/internal/ui/styles"
	"github.com/jeranaias/linkchat-tui/internal/util"
)

// Check statuses.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// doctorTimeout bounds each network check.
const doctorTimeout = 5 * time.Second

// CheckResult is one doctor finding.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`

	err error
}

func newDoctorCommand(a *app) *cobra.Command {
	var (
		jsonOut bool
		send    bool
	)
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"diag"},
		Short:   "Check configuration and endpoint reachability",
		Example: `  linkchat doctor
  linkchat doctor --send
  linkchat --endpoint http://10.0.0.5:8000/chat_gen doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := a.doctor(cmd.Context(), send)
			return reportChecks(cmd.OutOrStdout(), results, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&send, "send", false, "also send a test prompt")
	return cmd
}

func (a *app) doctor(ctx context.Context, send bool) []CheckResult {
	var results []CheckResult

	cfgCheck := CheckResult{Name: "config", Status: StatusPass, Detail: "defaults"}
	if path, err := a.resolveConfigPath(); err == nil {
		cfgCheck.Detail = path
	}
	if a.loadErr != nil {
		cfgCheck.Status = StatusWarn
		cfgCheck.Detail = a.loadErr.Error()
	}
	results = append(results, cfgCheck)

	client := backend.NewClient(a.clientConfig())

	pingCtx, cancel := context.WithTimeout(ctx, doctorTimeout)
	code, err := client.Ping(pingCtx)
	cancel()
	ping := CheckResult{Name: "endpoint", Status: StatusPass, Detail: client.URL() + " host answered " + backend.StatusText(code)}
	if err != nil {
		ping.Status = StatusFail
		ping.Detail = err.Error()
		ping.err = err
	}
	results = append(results, ping)
	a.logger.Debug().Err(err).Int("status", code).Msg("endpoint ping")

	if send && err == nil {
		sendCtx, cancel := context.WithTimeout(ctx, doctorTimeout)
		start := time.Now()
		reply, err := client.Send(sendCtx, "ping")
		cancel()
		check := CheckResult{
			Name:   "reply",
			Status: StatusPass,
			Detail: fmt.Sprintf("%q in %s", util.TruncateRunes(util.SingleLine(reply), 60), time.Since(start).Round(time.Millisecond)),
		}
		if err != nil {
			check.Status = StatusFail
			check.Detail = err.Error()
			check.err = err
		}
		results = append(results, check)
	}
	return results
}

// reportChecks prints results and returns the first failure.
func reportChecks(out io.Writer, results []CheckResult, jsonOut bool) error {
	var firstErr error
	for _, r := range results {
		if r.Status == StatusFail && firstErr == nil {
			firstErr = &CommandError{Command: "doctor", Action: r.Name, Reason: "check failed", Err: r.err}
		}
	}

	if jsonOut {
		resp := NewJSONResponse("doctor", results)
		if firstErr != nil {
			resp = NewJSONErrorResponse("doctor", results, firstErr)
		}
		if err := resp.Write(out); err != nil {
			return err
		}
		return firstErr
	}

	ColorsEnabled()
	for _, r := range results {
		fmt.Fprintln(out, renderCheck(r))
	}
	return firstErr
}

func renderCheck(r CheckResult) string {
	line := fmt.Sprintf("%-9s %s", r.Name, r.Detail)
	switch r.Status {
	case StatusPass:
		return styles.RenderSuccess(line)
	case StatusWarn:
		return styles.RenderWarning(line)
	default:
		return styles.RenderError(line)
	}
}
