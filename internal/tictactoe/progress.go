package tictactoe

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-promo/internal/entity"
)

// HintLossThreshold is the number of lost rounds after which hints are switched on.
const HintLossThreshold = 3

// Progress is the meta-game state of one running game instance. It outlives every
// round played in that instance and is never cleared by a reset: the loss streak only
// grows and the hint latch, once set, stays set for the lifetime of the process.
type Progress struct {
	mu sync.Mutex

	lossStreak int
	wins       int
	draws      int
	hintActive bool
}

type ProgressSnapshot struct {
	LossStreak int  `json:"loss_streak"`
	Wins       int  `json:"wins"`
	Draws      int  `json:"draws"`
	HintActive bool `json:"hint_active"`
}

func NewProgress() *Progress {
	return &Progress{}
}

// Record - counts a finished round.
func (that *Progress) Record(phase entity.Phase) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch phase {
	case entity.PhaseOpponentWon:
		that.lossStreak++
		if that.lossStreak >= HintLossThreshold {
			that.hintActive = true
		}
	case entity.PhasePlayerWon:
		that.wins++
	case entity.PhaseDraw:
		that.draws++
	case entity.PhaseInProgress:
	}
}

func (that *Progress) HintActive() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.hintActive
}

func (that *Progress) Snapshot() ProgressSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return ProgressSnapshot{
		LossStreak: that.lossStreak,
		Wins:       that.wins,
		Draws:      that.draws,
		HintActive: that.hintActive,
	}
}
