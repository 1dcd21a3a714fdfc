package entity

// Phase is the lifecycle state of a single round.
type Phase string

const (
	PhaseInProgress  Phase = "in-progress"
	PhasePlayerWon   Phase = "player-won"
	PhaseOpponentWon Phase = "opponent-won"
	PhaseDraw        Phase = "draw"
)

func (that Phase) IsFinished() bool {
	return that != PhaseInProgress
}

// WinnerPhase maps the mark that completed a line to the terminal phase.
func WinnerPhase(mark Mark) Phase {
	if mark == PlayerX {
		return PhasePlayerWon
	}
	return PhaseOpponentWon
}
