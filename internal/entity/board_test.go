package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_FirstEmpty(t *testing.T) {
	// Given: a board with the first two corners taken
	board := Board{
		x, e, o,
		e, e, e,
		e, e, e,
	}

	// When: looking for the first free corner
	cell, ok := board.FirstEmpty(Corners[:]...)

	// Then: the bottom-left corner should be returned
	assert.True(t, ok)
	assert.Equal(t, 6, cell)
}

func TestBoard_FirstEmptyNone(t *testing.T) {
	// Given: a board where every corner is taken
	board := Board{
		x, e, o,
		e, e, e,
		o, e, x,
	}

	// When: looking for a free corner
	cell, ok := board.FirstEmpty(Corners[:]...)

	// Then: nothing should be found
	assert.False(t, ok)
	assert.Equal(t, NoCell, cell)
}

func TestBoard_IsEmpty(t *testing.T) {
	board := Board{x}

	assert.False(t, board.IsEmpty(0))
	assert.True(t, board.IsEmpty(8))
	assert.False(t, board.IsEmpty(-1))
	assert.False(t, board.IsEmpty(9))
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}

func TestWinnerPhase(t *testing.T) {
	assert.Equal(t, PhasePlayerWon, WinnerPhase(PlayerX))
	assert.Equal(t, PhaseOpponentWon, WinnerPhase(PlayerO))
	assert.True(t, PhaseDraw.IsFinished())
	assert.False(t, PhaseInProgress.IsFinished())
}
