package tictactoe

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-promo/internal/entity"
)

// DefaultOpponentDelay paces the computer's reply so the UI shows it "thinking".
const DefaultOpponentDelay = 420 * time.Millisecond

// Scheduler runs task once after delay.
type Scheduler func(delay time.Duration, task func())

func AfterFunc(delay time.Duration, task func()) {
	time.AfterFunc(delay, task)
}

type opponent interface {
	ChooseMove(board entity.Board) (int, error)
}

type advisor interface {
	Hint(board entity.Board, cursor int) (int, bool)
	Advance(cursor, cell int) int
}

type Option func(*Session)

func WithDelay(delay time.Duration) Option {
	return func(that *Session) {
		that.delay = delay
	}
}

func WithScheduler(schedule Scheduler) Option {
	return func(that *Session) {
		that.schedule = schedule
	}
}

func WithListener(listener Listener) Option {
	return func(that *Session) {
		that.listener = listener
	}
}

// State is a point-in-time copy of a session, used to resync a client.
type State struct {
	Board      entity.Board     `json:"board"`
	Turn       entity.Mark      `json:"turn"`
	Phase      entity.Phase     `json:"phase"`
	Line       *entity.Line     `json:"line,omitempty"`
	HintCursor int              `json:"hint_cursor"`
	Hint       int              `json:"hint"`
	Thinking   bool             `json:"thinking"`
	Status     string           `json:"status"`
	Progress   ProgressSnapshot `json:"progress"`
}

// Session is one round of the game against the computer. The human plays X and always
// moves first; the computer answers after the configured delay.
type Session struct {
	mu sync.Mutex

	logger   *slog.Logger
	opponent opponent
	advisor  advisor
	progress *Progress
	delay    time.Duration
	schedule Scheduler
	listener Listener

	board      entity.Board
	turn       entity.Mark
	phase      entity.Phase
	line       *entity.Line
	hintCursor int
	hint       int
	thinking   bool
	status     string

	// generation changes on every reset; a pending reply from an older generation is dropped.
	generation uint64
}

func NewSession(logger *slog.Logger, progress *Progress, opponent opponent, advisor advisor, opts ...Option) *Session {
	session := &Session{
		logger:   logger.With("component", "session"),
		opponent: opponent,
		advisor:  advisor,
		progress: progress,
		delay:    DefaultOpponentDelay,
		schedule: AfterFunc,
	}

	for _, opt := range opts {
		opt(session)
	}

	session.resetLocked()

	return session
}

// SubmitPlayerMove - places the player's mark. A rejected move leaves the session untouched.
func (that *Session) SubmitPlayerMove(cell int) error {
	that.mu.Lock()
	events, err := that.placePlayerMark(cell)
	generation, awaitingReply := that.generation, that.thinking
	that.mu.Unlock()

	if err != nil {
		return err
	}

	that.publish(events)

	if awaitingReply {
		that.schedule(that.delay, func() {
			that.replyAsOpponent(generation)
		})
	}

	return nil
}

// Reset - starts a new round. Progress is kept.
func (that *Session) Reset() {
	that.mu.Lock()
	events := that.resetLocked()
	that.mu.Unlock()

	that.publish(events)
}

func (that *Session) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return State{
		Board:      that.board,
		Turn:       that.turn,
		Phase:      that.phase,
		Line:       that.line,
		HintCursor: that.hintCursor,
		Hint:       that.hint,
		Thinking:   that.thinking,
		Status:     that.status,
		Progress:   that.progress.Snapshot(),
	}
}

func (that *Session) placePlayerMark(cell int) ([]Event, error) {
	switch {
	case !entity.IsValidCell(cell):
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	case that.phase.IsFinished():
		return nil, apperror.ErrGameFinished
	case that.thinking:
		return nil, apperror.ErrOpponentThinking
	case that.turn != entity.PlayerX:
		return nil, apperror.ErrNotYourTurn
	case that.board[cell] != entity.EmptyCell:
		return nil, apperror.ErrCellOccupied
	}

	that.board[cell] = entity.PlayerX
	events := []Event{movePlaced(cell, entity.PlayerX)}

	that.hintCursor = that.advisor.Advance(that.hintCursor, cell)
	if that.hint != entity.NoCell {
		that.hint = entity.NoCell
		events = append(events, hintChanged(entity.NoCell))
	}

	if ended, finish := that.checkOutcome(entity.PlayerX); ended {
		return append(events, finish...), nil
	}

	that.turn = entity.PlayerO
	that.thinking = true
	events = append(events, that.setStatus(StatusOpponentThinking))

	return events, nil
}

func (that *Session) replyAsOpponent(generation uint64) {
	that.mu.Lock()
	events := that.placeOpponentMark(generation)
	that.mu.Unlock()

	that.publish(events)
}

func (that *Session) placeOpponentMark(generation uint64) []Event {
	log := that.logger.With("method", "placeOpponentMark")

	if generation != that.generation || !that.thinking || that.phase.IsFinished() {
		log.Debug("stale opponent reply dropped", "generation", generation, "current", that.generation)
		return nil
	}

	that.thinking = false

	cell, err := that.opponent.ChooseMove(that.board)
	if err != nil {
		log.Error("opponent failed to choose a move", "error", err)
		return nil
	}

	that.board[cell] = entity.PlayerO
	events := []Event{movePlaced(cell, entity.PlayerO)}

	if ended, finish := that.checkOutcome(entity.PlayerO); ended {
		return append(events, finish...)
	}

	that.turn = entity.PlayerX
	events = append(events, that.setStatus(StatusYourTurn))

	return append(events, that.refreshHint()...)
}

// checkOutcome - checks the mover's line first, then the draw.
func (that *Session) checkOutcome(mark entity.Mark) (bool, []Event) {
	if line, ok := entity.FindWinningLine(that.board, mark); ok {
		return true, that.finish(entity.WinnerPhase(mark), &line)
	}

	if entity.IsDraw(that.board) {
		return true, that.finish(entity.PhaseDraw, nil)
	}

	return false, nil
}

func (that *Session) finish(phase entity.Phase, line *entity.Line) []Event {
	that.phase = phase
	that.line = line
	that.turn = entity.EmptyCell
	that.thinking = false

	that.progress.Record(phase)

	return []Event{
		gameEnded(phase, line),
		that.setStatus(statusFor(phase)),
	}
}

func (that *Session) refreshHint() []Event {
	if !that.progress.HintActive() || that.phase.IsFinished() || that.turn != entity.PlayerX {
		return nil
	}

	cell, ok := that.advisor.Hint(that.board, that.hintCursor)
	if !ok {
		cell = entity.NoCell
	}

	that.hint = cell

	return []Event{hintChanged(cell)}
}

func (that *Session) resetLocked() []Event {
	that.generation++

	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.phase = entity.PhaseInProgress
	that.line = nil
	that.hintCursor = 0
	that.hint = entity.NoCell
	that.thinking = false

	events := []Event{gameReset(), that.setStatus(StatusYourTurn)}

	return append(events, that.refreshHint()...)
}

func (that *Session) setStatus(status string) Event {
	that.status = status
	return statusChanged(status)
}

func (that *Session) publish(events []Event) {
	if that.listener == nil {
		return
	}

	for _, event := range events {
		that.listener(event)
	}
}
