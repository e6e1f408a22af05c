// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/linkchat-tui/internal/model"
	"github.com/jeranaias/linkchat-tui/internal/ui/styles"
	"github.com/jeranaias/linkchat-tui/internal/util"
)

// View renders the chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting linkchat..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderLogView(),
		m.renderInput(),
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	sections = append(sections, m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Chainlink Assistant")
	hint := m.theme.HeaderHint.Render("Enter to send")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(hint) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(m.width).Render(title + strings.Repeat(" ", gap) + hint)
}

// renderLogView draws the viewport, sliding and fading it while an
// entrance transition is in flight.
func (m Model) renderLogView() string {
	frame := m.sync.Frame()
	if frame.Done {
		return m.viewport.View()
	}

	vp := m.viewport
	fade := styles.FadeColor(frame.Opacity)
	vp.SetContent(m.renderLog(&fade))
	lines := styles.SlideLines(vp.Height, frame.Offset)
	return styles.Slide(vp.View(), vp.Height, lines)
}

// renderLog renders every turn. With fade set, all text and borders use
// that single color.
func (m Model) renderLog(fade *lipgloss.AdaptiveColor) string {
	width := m.theme.BubbleWidth()
	var b strings.Builder

	for i, turn := range m.ctrl.Log().Turns() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderTurn(turn, width, fade))
		b.WriteString("\n")
	}

	if n := m.ctrl.Pending(); n > 0 {
		label := "Assistant is typing"
		if n > 1 {
			label = fmt.Sprintf("Assistant is typing (%d pending)", n)
		}
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.theme.PendingText.Render(label))
	}
	return b.String()
}

// turnStyles picks label and bubble styles by sender. Error turns are known
// to the controller; text that merely looks like one is a normal reply.
func (m Model) turnStyles(turn model.Turn) (label, bubble lipgloss.Style, align lipgloss.Position) {
	switch {
	case turn.IsUser():
		return m.theme.UserLabel, m.theme.UserBubble, lipgloss.Right
	case m.ctrl.IsErrorTurn(turn.ID):
		return m.theme.BotLabel, m.theme.ErrorTurn, lipgloss.Left
	default:
		return m.theme.BotLabel, m.theme.BotBubble, lipgloss.Left
	}
}

func (m Model) renderTurn(turn model.Turn, width int, fade *lipgloss.AdaptiveColor) string {
	label, bubble, align := m.turnStyles(turn)
	if fade != nil {
		label = label.Foreground(*fade)
		bubble = bubble.Foreground(*fade).BorderForeground(*fade)
	}

	text := turn.Text
	if text == "" {
		text = " "
	}
	block := lipgloss.JoinVertical(
		lipgloss.Left,
		label.Render(turn.Sender.DisplayName()),
		bubble.Width(width).Render(text),
	)
	return lipgloss.PlaceHorizontal(m.width, align, block)
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

func (m Model) renderHelp() string {
	var rows []string
	for _, group := range m.keyMap.FullHelp() {
		var parts []string
		for _, b := range group {
			h := b.Help()
			parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
		}
		rows = append(rows, " "+strings.Join(parts, "  "))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m Model) renderStatus() string {
	var parts []string
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	right := strings.Join(parts, " | ")

	left := fmt.Sprintf("%s  turns:%d", m.endpoint, m.ctrl.Log().Len())
	if n := m.ctrl.Pending(); n > 0 {
		left += fmt.Sprintf("  pending:%d", n)
	}

	budget := m.width - util.StringWidth(right) - 4
	if m.notice != nil && !m.notice.Expired(time.Now()) {
		errText := util.TruncateWidth(util.SingleLine(m.notice.Text), budget)
		gap := budget - util.StringWidth(errText)
		if gap < 0 {
			gap = 0
		}
		return m.theme.StatusBar.Width(m.width).Render(
			m.theme.StatusError.Render(errText) + strings.Repeat(" ", gap+1) + right)
	}

	left = util.PadRight(util.TruncateWidth(left, budget), budget)
	return m.theme.StatusBar.Width(m.width).Render(left + " " + right)
}
