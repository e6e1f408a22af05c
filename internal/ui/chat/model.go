// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/linkchat-tui/internal/conversation"
	"github.com/jeranaias/linkchat-tui/internal/presentation"
	"github.com/jeranaias/linkchat-tui/internal/ui/styles"
)

// Layout rows outside the log viewport.
const (
	headerHeight = 2
	inputHeight  = 3
	statusHeight = 1
	helpHeight   = 3
)

// Options configures a chat Model.
type Options struct {
	Controller *conversation.Controller
	Sync       *presentation.Sync
	Theme      *styles.Theme

	// Endpoint is shown in the status bar.
	Endpoint string

	// Context bounds every exchange. Cancelled on quit.
	Context context.Context

	Logger zerolog.Logger
}

// Model is the bubbletea model for the chat screen. Its Update loop is the
// only place the message log and draft are mutated.
type Model struct {
	ctrl   *conversation.Controller
	sync   *presentation.Sync
	theme  *styles.Theme
	keyMap KeyMap
	logger zerolog.Logger

	endpoint  string
	cancelMgr *cancelManager

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	showHelp bool
	ticking  bool
	failures int

	notice         *notice
	noticeSeq      int
	noticeDuration time.Duration
}

// New creates a chat model and mounts the transition observer on the
// controller's log.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about Chainlink..."
	ti.CharLimit = 4096
	ti.SetValue(opts.Controller.Draft().Text())
	ti.Focus()

	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.Placeholder

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Spinner()
	sp.Style = theme.Spinner

	sync := opts.Sync
	if sync == nil {
		sync = presentation.NewSync(presentation.DefaultConfig())
	}
	logger := opts.Logger
	sync.OnStart(func(tr presentation.Transition) {
		logger.Trace().
			Int("length", tr.Length).
			Dur("duration", tr.Duration).
			Msg("log transition started")
	})
	sync.Mount(opts.Controller.Log())

	return Model{
		ctrl:      opts.Controller,
		sync:      sync,
		theme:     theme,
		keyMap:    DefaultKeyMap(),
		logger:    opts.Logger,
		endpoint:  opts.Endpoint,
		cancelMgr: newCancelManager(opts.Context),
		input:     ti,
		spinner:   sp,

		// Init owns the mount transition's tick chain.
		ticking: true,

		noticeDuration: ErrorNoticeDuration,
	}
}

// Init starts the cursor blink and the mount transition.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, transitionTick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case noticeExpiredMsg:
		if m.notice != nil && m.notice.ID == msg.ID {
			m.notice = nil
		}
		return m, nil

	case TransitionTickMsg:
		if m.sync.Animating() {
			return m, transitionTick()
		}
		m.ticking = false
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Pending() > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.refreshViewport()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.input.Width = msg.Width - 6

	if !m.ready {
		m.viewport = viewport.New(msg.Width, m.viewportHeight())
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = m.viewportHeight()
	}
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.cancelMgr.shutdown()
		m.sync.Unmount()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		if m.ready {
			m.viewport.Height = m.viewportHeight()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.Draft().SetText(m.input.Value())
	return m, cmd
}

// submit commits the draft. A blank draft leaves everything as it is.
func (m Model) submit() (tea.Model, tea.Cmd) {
	draft := m.ctrl.Draft()
	draft.SetText(m.input.Value())
	if draft.IsBlank() {
		return m, nil
	}
	ex, ok := m.ctrl.Commit()
	if !ok {
		return m, nil
	}
	m.input.SetValue(m.ctrl.Draft().Text())
	m.notice = nil

	m.logger.Debug().
		Uint64("exchange", ex.ID).
		Int("prompt_len", len(ex.Prompt)).
		Msg("sending prompt")

	cmds := []tea.Cmd{sendCmd(m.cancelMgr.context(), ex)}
	if m.ctrl.Pending() == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	cmds = append(cmds, m.afterAppend())
	return m, tea.Batch(cmds...)
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if err := m.ctrl.Resolve(msg.Completion); err != nil {
		m.logger.Warn().Err(err).Uint64("exchange", msg.Completion.ExchangeID).Msg("dropping reply")
		return m, nil
	}
	if !msg.Completion.Failed() {
		return m, m.afterAppend()
	}

	m.failures++
	m.noticeSeq++
	n := notice{
		ID:        m.noticeSeq,
		Text:      conversation.ErrorText(msg.Completion.Err),
		CreatedAt: time.Now(),
		Duration:  m.noticeDuration,
	}
	m.notice = &n
	return m, tea.Batch(m.afterAppend(), expireNotice(n))
}

// afterAppend redraws the log and starts frame ticks if a transition began.
func (m *Model) afterAppend() tea.Cmd {
	m.refreshViewport()
	m.viewport.GotoBottom()
	if m.sync.Animating() && !m.ticking {
		m.ticking = true
		return transitionTick()
	}
	return nil
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderLog(nil))
}

func (m Model) viewportHeight() int {
	h := m.height - headerHeight - inputHeight - statusHeight
	if m.showHelp {
		h -= helpHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Controller exposes the conversation state, for tests and the CLI.
func (m Model) Controller() *conversation.Controller {
	return m.ctrl
}
