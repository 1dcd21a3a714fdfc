package service

import "github.com/rocketscienceinc/tictactoe-promo/internal/entity"

// HintSequence is the scripted opening suggested to a player who keeps losing:
// top-left, bottom-right, bottom-left, middle-left.
var HintSequence = [...]int{0, 8, 6, 3}

type HintService interface {
	Hint(board entity.Board, cursor int) (int, bool)
	Advance(cursor, cell int) int
}

type hintService struct {
	mark entity.Mark
}

func NewHintService() HintService {
	return &hintService{mark: entity.PlayerX}
}

// Hint - suggests the next scripted cell that is still free, falling back to the
// opponent's heuristic played from the human side.
func (that *hintService) Hint(board entity.Board, cursor int) (int, bool) {
	if cursor < 0 {
		cursor = 0
	}

	if cursor < len(HintSequence) {
		if cell, ok := board.FirstEmpty(HintSequence[cursor:]...); ok {
			return cell, true
		}
	}

	return chooseByPriority(board, that.mark)
}

// Advance - moves the cursor only when the player claimed the cell it points at.
func (that *hintService) Advance(cursor, cell int) int {
	if cursor >= 0 && cursor < len(HintSequence) && HintSequence[cursor] == cell {
		return cursor + 1
	}

	return cursor
}
