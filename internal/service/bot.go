package service

import (
	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-promo/internal/entity"
)

// BotService picks the computer opponent's reply.
type BotService interface {
	ChooseMove(board entity.Board) (int, error)
}

type botService struct {
	mark entity.Mark
}

func NewBotService() BotService {
	return &botService{mark: entity.PlayerO}
}

func (that *botService) ChooseMove(board entity.Board) (int, error) {
	cell, ok := chooseByPriority(board, that.mark)
	if !ok {
		return entity.NoCell, apperror.ErrNoAvailableMoves
	}

	return cell, nil
}

// chooseByPriority - win, block, center, corner, edge, then the first free cell.
func chooseByPriority(board entity.Board, mark entity.Mark) (int, bool) {
	if cell, ok := findCriticalMove(board, mark); ok {
		return cell, true
	}

	if cell, ok := findCriticalMove(board, mark.Opponent()); ok {
		return cell, true
	}

	if board.IsEmpty(entity.CenterCell) {
		return entity.CenterCell, true
	}

	if cell, ok := board.FirstEmpty(entity.Corners[:]...); ok {
		return cell, true
	}

	if cell, ok := board.FirstEmpty(entity.Edges[:]...); ok {
		return cell, true
	}

	for cell := range board {
		if board.IsEmpty(cell) {
			return cell, true
		}
	}

	return entity.NoCell, false
}

// findCriticalMove - returns the free cell of the first line holding two of mark.
func findCriticalMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, line := range entity.WinLines {
		if board.Count(line, mark) != 2 || board.Count(line, entity.EmptyCell) != 1 {
			continue
		}

		return board.FirstEmpty(line[:]...)
	}

	return entity.NoCell, false
}
