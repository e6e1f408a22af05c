// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/linkchat-tui/internal/backend"
	"github.com/jeranaias/linkchat-tui/internal/model"
)

// =============================================================================
// STATE
// =============================================================================

// State is the controller's turn-taking state.
type State int

const (
	StateIdle          State = iota // Ready for a commit
	StateAwaitingReply              // At least one exchange is pending
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingReply:
		return "AwaitingReply"
	default:
		return "Unknown"
	}
}

// Sentinel errors.
var (
	ErrAlreadyResolved = errors.New("exchange already resolved")
	ErrUnknownExchange = errors.New("exchange does not belong to this controller")
)

// =============================================================================
// EXCHANGE
// =============================================================================

// Exchange is one committed prompt waiting for its reply.
type Exchange struct {
	ID       uint64
	Prompt   string
	UserTurn model.Turn
	Started  time.Time

	transport backend.Transport
}

// Run performs the transport call. It blocks until the endpoint answers or
// ctx is cancelled, and never touches the conversation state.
func (e *Exchange) Run(ctx context.Context) Completion {
	reply, err := e.transport.Send(ctx, e.Prompt)
	return Completion{
		ExchangeID: e.ID,
		Prompt:     e.Prompt,
		Reply:      reply,
		Err:        err,
		Elapsed:    time.Since(e.Started),
	}
}

// Completion is the outcome of an Exchange, handed back to Resolve.
type Completion struct {
	ExchangeID uint64
	Prompt     string
	Reply      string
	Err        error
	Elapsed    time.Duration
}

// Failed reports whether the exchange ended in a transport error.
func (c Completion) Failed() bool {
	return c.Err != nil
}

// =============================================================================
// CONTROLLER
// =============================================================================

// ErrorObserver receives transport failures after they are logged.
type ErrorObserver func(c Completion)

// Options tunes a Controller.
type Options struct {
	// Logger is the diagnostic sink. Zero value discards.
	Logger zerolog.Logger

	// OnError is called for every failed exchange.
	OnError ErrorObserver

	// ShowErrors appends a bot turn describing a transport failure
	// instead of only logging it.
	ShowErrors bool
}

// Controller orchestrates DraftBuffer -> MessageLog -> Transport -> MessageLog.
// It is not safe for concurrent use; see the package doc.
type Controller struct {
	log       *model.MessageLog
	draft     *model.DraftBuffer
	transport backend.Transport
	opts      Options

	nextID     uint64
	pending    map[uint64]*Exchange
	errorTurns map[string]bool
}

// NewController wires a controller to the state it orchestrates.
func NewController(log *model.MessageLog, draft *model.DraftBuffer, transport backend.Transport, opts Options) *Controller {
	return &Controller{
		log:       log,
		draft:     draft,
		transport: transport,
		opts:      opts,
		nextID:    1,
		pending:   make(map[uint64]*Exchange),

		errorTurns: make(map[string]bool),
	}
}

// Log returns the message log the controller appends to.
func (c *Controller) Log() *model.MessageLog {
	return c.log
}

// Draft returns the draft buffer the controller commits from.
func (c *Controller) Draft() *model.DraftBuffer {
	return c.draft
}

// State reports Idle when no exchange is outstanding.
func (c *Controller) State() State {
	if len(c.pending) > 0 {
		return StateAwaitingReply
	}
	return StateIdle
}

// Pending returns the number of outstanding exchanges.
func (c *Controller) Pending() int {
	return len(c.pending)
}

// Commit turns the current draft into a user turn. A blank draft is a no-op
// and returns ok=false. Otherwise the user turn is already in the log and the
// draft is empty when Commit returns; the caller must Run the exchange and
// pass the result to Resolve.
func (c *Controller) Commit() (*Exchange, bool) {
	prompt, ok := c.draft.Commit()
	if !ok {
		return nil, false
	}

	turn, err := model.NewUserTurn(prompt)
	if err != nil {
		// Commit already trimmed, so this cannot happen.
		return nil, false
	}
	c.log.Append(turn)

	ex := &Exchange{
		ID:        c.nextID,
		Prompt:    prompt,
		UserTurn:  turn,
		Started:   time.Now(),
		transport: c.transport,
	}
	c.nextID++
	c.pending[ex.ID] = ex

	c.opts.Logger.Debug().
		Uint64("exchange", ex.ID).
		Int("pending", len(c.pending)).
		Msg("prompt committed")

	return ex, true
}

// Resolve applies a completed exchange. A reply becomes a bot turn; a
// failure is logged and reported to OnError. Each exchange resolves once.
func (c *Controller) Resolve(done Completion) error {
	if _, ok := c.pending[done.ExchangeID]; !ok {
		if done.ExchangeID > 0 && done.ExchangeID < c.nextID {
			return ErrAlreadyResolved
		}
		return ErrUnknownExchange
	}
	delete(c.pending, done.ExchangeID)

	if done.Err != nil {
		c.reportFailure(done)
		return nil
	}

	c.log.Append(model.NewBotTurn(done.Reply))
	c.opts.Logger.Debug().
		Uint64("exchange", done.ExchangeID).
		Dur("elapsed", done.Elapsed).
		Int("reply_len", len(done.Reply)).
		Msg("reply appended")
	return nil
}

// Submit is Commit, Run and Resolve in one blocking call, for callers that
// have no event loop of their own (line mode, one-shot ask).
func (c *Controller) Submit(ctx context.Context) (Completion, bool) {
	ex, ok := c.Commit()
	if !ok {
		return Completion{}, false
	}
	done := ex.Run(ctx)
	// Resolve cannot fail here: the exchange was created above.
	_ = c.Resolve(done)
	return done, true
}

func (c *Controller) reportFailure(done Completion) {
	ev := c.opts.Logger.Error().
		Err(done.Err).
		Uint64("exchange", done.ExchangeID).
		Dur("elapsed", done.Elapsed)
	var terr *backend.TransportError
	if errors.As(done.Err, &terr) {
		ev = ev.Str("kind", terr.Kind.String())
		if terr.Status != 0 {
			ev = ev.Int("status", terr.Status)
		}
	}
	ev.Msg("error sending message to backend")

	if c.opts.ShowErrors {
		turn := model.NewBotTurn(ErrorText(done.Err))
		c.errorTurns[turn.ID] = true
		c.log.Append(turn)
	}
	if c.opts.OnError != nil {
		c.opts.OnError(done)
	}
}

// IsErrorTurn reports whether the turn with id was appended for a failed
// exchange rather than received from the backend.
func (c *Controller) IsErrorTurn(id string) bool {
	return c.errorTurns[id]
}

// ErrorText renders a failure as the text of a visible error turn.
func ErrorText(err error) string {
	var terr *backend.TransportError
	if errors.As(err, &terr) {
		switch terr.Kind {
		case backend.KindNetwork:
			return "[error] could not reach the assistant backend"
		case backend.KindStatus:
			return "[error] the assistant backend answered " + backend.StatusText(terr.Status)
		case backend.KindMalformed:
			return "[error] the assistant backend sent an unreadable reply"
		}
	}
	if errors.Is(err, context.Canceled) {
		return "[error] request cancelled"
	}
	return "[error] " + err.Error()
}
