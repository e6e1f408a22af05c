// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/linkchat-tui/internal/conversation"
	"github.com/jeranaias/linkchat-tui/internal/model"
)

const plainPrompt = "you> "

func newChatCommand(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a conversation",
		Long: `Start a conversation with the assistant.

The full-screen UI is used when stdin and stdout are terminals. --plain
forces line mode, where each reply is printed below your prompt. Type
/quit or press Ctrl+D to leave.`,
		Example: `  linkchat chat
  linkchat chat --plain
  echo "What is CCIP?" | linkchat chat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !plain && Interactive() {
				return a.runTUI(cmd.Context())
			}
			return a.runPlain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "line mode instead of the full-screen UI")
	return cmd
}

// =============================================================================
// LINE MODE
// =============================================================================

// lineReader is the part of liner.State the REPL needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// scanReader reads prompts from a non-terminal input.
type scanReader struct {
	sc *bufio.Scanner
}

func (s *scanReader) Prompt(string) (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) AppendHistory(string) {}
func (s *scanReader) Close() error         { return nil }

func newLineReader(in io.Reader) lineReader {
	if f, ok := in.(*os.File); ok && f == os.Stdin && Interactive() {
		l := liner.NewLiner()
		l.SetCtrlCAborts(true)
		return l
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scanReader{sc: sc}
}

// transcript prints turns with colored role labels.
type transcript struct {
	out  io.Writer
	user *color.Color
	bot  *color.Color
	fail *color.Color
}

func newTranscript(out io.Writer) *transcript {
	ColorsEnabled()
	return &transcript{
		out:  out,
		user: color.New(color.FgHiBlue, color.Bold),
		bot:  color.New(color.FgCyan, color.Bold),
		fail: color.New(color.FgRed),
	}
}

func (t *transcript) turn(turn model.Turn, isError bool) {
	label := t.bot
	if turn.IsUser() {
		label = t.user
	}
	text := turn.Text
	if isError {
		text = t.fail.Sprint(text)
	}
	fmt.Fprintf(t.out, "%s %s\n", label.Sprint(turn.Sender.DisplayName()+":"), text)
}

func (t *transcript) failure(text string) {
	fmt.Fprintln(t.out, t.fail.Sprint(text))
}

// runPlain runs the line-mode REPL over in and out.
func (a *app) runPlain(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lr := newLineReader(in)
	defer lr.Close()

	ctrl := a.newController(a.cfg.SeedTurns(), a.cfg.UI.ShowErrors)
	return a.repl(ctx, ctrl, lr, newTranscript(out))
}

// repl prints the seed, then submits one prompt per line. Only turns added
// after the user's own are printed, since the user's text is already on
// screen.
func (a *app) repl(ctx context.Context, ctrl *conversation.Controller, lr lineReader, tr *transcript) error {
	for _, turn := range ctrl.Log().Turns() {
		tr.turn(turn, ctrl.IsErrorTurn(turn.ID))
	}

	for {
		line, err := lr.Prompt(plainPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read prompt")
		}
		switch strings.TrimSpace(line) {
		case "/quit", "/exit":
			return nil
		}

		before := ctrl.Log().Len()
		ctrl.Draft().SetText(line)
		done, ok := ctrl.Submit(ctx)
		if !ok {
			continue
		}
		lr.AppendHistory(done.Prompt)

		for _, turn := range ctrl.Log().Turns()[before+1:] {
			tr.turn(turn, ctrl.IsErrorTurn(turn.ID))
		}
		if done.Failed() && !a.cfg.UI.ShowErrors {
			tr.failure(conversation.ErrorText(done.Err))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
