// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/jeranaias/linkchat-tui/internal/presentation"
	"github.com/jeranaias/linkchat-tui/internal/ui/chat"
	"github.com/jeranaias/linkchat-tui/internal/ui/styles"
)

// runTUI runs the full-screen chat until the user quits.
func (a *app) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := a.newController(a.cfg.SeedTurns(), a.cfg.UI.ShowErrors)
	m := chat.New(chat.Options{
		Controller: ctrl,
		Sync:       presentation.NewSync(a.cfg.PresentationConfig()),
		Theme:      styles.NewTheme(a.cfg.UI.Theme),
		Endpoint:   a.cfg.Endpoint.URL,
		Context:    ctx,
		Logger:     a.logger,
	})

	a.logger.Info().Str("endpoint", a.cfg.Endpoint.URL).Msg("starting chat")
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return errors.Wrap(err, "run chat UI")
	}
	if fm, ok := final.(chat.Model); ok {
		a.logger.Info().
			Int("turns", fm.Controller().Log().Len()).
			Int("pending", fm.Controller().Pending()).
			Msg("chat closed")
	}
	return nil
}
