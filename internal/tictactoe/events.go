package tictactoe

import "github.com/rocketscienceinc/tictactoe-promo/internal/entity"

type EventKind string

const (
	EventMovePlaced    EventKind = "move:placed"
	EventGameEnded     EventKind = "game:ended"
	EventHintChanged   EventKind = "hint:changed"
	EventStatusChanged EventKind = "status:changed"
	EventGameReset     EventKind = "game:reset"
)

// Event tells the UI what changed. Cell is entity.NoCell when the event carries no cell,
// including a hint:changed event that withdraws the hint.
type Event struct {
	Kind    EventKind    `json:"kind"`
	Cell    int          `json:"cell"`
	Mark    entity.Mark  `json:"mark,omitempty"`
	Outcome entity.Phase `json:"outcome,omitempty"`
	Line    *entity.Line `json:"line,omitempty"`
	Status  string       `json:"status,omitempty"`
}

// Listener receives session events outside of the session lock.
type Listener func(event Event)

func movePlaced(cell int, mark entity.Mark) Event {
	return Event{Kind: EventMovePlaced, Cell: cell, Mark: mark}
}

func gameEnded(outcome entity.Phase, line *entity.Line) Event {
	return Event{Kind: EventGameEnded, Cell: entity.NoCell, Outcome: outcome, Line: line}
}

func hintChanged(cell int) Event {
	return Event{Kind: EventHintChanged, Cell: cell}
}

func statusChanged(status string) Event {
	return Event{Kind: EventStatusChanged, Cell: entity.NoCell, Status: status}
}

func gameReset() Event {
	return Event{Kind: EventGameReset, Cell: entity.NoCell}
}
