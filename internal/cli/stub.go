// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/linkchat-tui/internal/stub"
)

func newStubCommand(a *app) *cobra.Command {
	cfg := stub.Config{}
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve canned replies on the endpoint contract",
		Long: `Run a local endpoint that answers POST /chat_gen with canned text
about Chainlink. Useful for demos and for exercising the client without a
model behind it.`,
		Example: `  linkchat stub
  linkchat stub --addr 127.0.0.1:9000 --delay 2s
  linkchat stub --fail-status 503`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogStderr: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.FailStatus != 0 && (cfg.FailStatus < 400 || cfg.FailStatus > 599) {
				return &UsageError{
					Reason:  fmt.Sprintf("--fail-status must be a 4xx or 5xx code, got %d", cfg.FailStatus),
					Example: "linkchat stub --fail-status 503",
				}
			}
			if cfg.Delay < 0 {
				return &UsageError{Reason: "--delay must not be negative"}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := stub.New(cfg, a.logger)
			fmt.Fprintf(cmd.OutOrStdout(), "stub endpoint at http://%s/chat_gen (Ctrl+C to stop)\n", srv.Addr())
			return errors.Wrap(srv.ListenAndServe(ctx), "stub server")
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", stub.DefaultAddr, "listen address")
	f.DurationVar(&cfg.Delay, "delay", 0, "wait this long before every reply")
	f.IntVar(&cfg.FailStatus, "fail-status", 0, "answer every chat request with this HTTP status")
	return cmd
}
