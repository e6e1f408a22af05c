// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// askResult is the --json payload for ask.
type askResult struct {
	Prompt    string `json:"prompt"`
	Answer    string `json:"ans"`
	Endpoint  string `json:"endpoint"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

func newAskCommand(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "ask [PROMPT...]",
		Short: "Ask one question and print the reply",
		Long: `Send a single prompt and print the reply. With no arguments the
prompt is read from stdin.`,
		Example: `  linkchat ask "What is Chainlink VRF?"
  linkchat ask --json how do price feeds work
  echo "What is CCIP?" | linkchat ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if len(args) == 0 && !IsTTY() {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "read prompt from stdin")
				}
				prompt = string(data)
			}
			return a.ask(cmd.Context(), prompt, jsonOut, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON envelope")
	return cmd
}

func (a *app) ask(ctx context.Context, prompt string, jsonOut bool, out io.Writer) error {
	ctrl := a.newController(nil, false)
	ctrl.Draft().SetText(prompt)
	if ctrl.Draft().IsBlank() {
		return &UsageError{Reason: "prompt is empty", Example: `linkchat ask "What is Chainlink?"`}
	}

	done, _ := ctrl.Submit(ctx)

	res := askResult{
		Prompt:    done.Prompt,
		Answer:    done.Reply,
		Endpoint:  a.cfg.Endpoint.URL,
		ElapsedMS: done.Elapsed.Milliseconds(),
	}
	if done.Failed() {
		err := &CommandError{Command: "ask", Action: "send", Reason: "no reply", Err: done.Err}
		if jsonOut {
			if werr := NewJSONErrorResponse("ask", res, err).Write(out); werr != nil {
				return werr
			}
		}
		return err
	}

	if jsonOut {
		return NewJSONResponse("ask", res).Write(out)
	}
	_, err := fmt.Fprintln(out, done.Reply)
	return err
}
