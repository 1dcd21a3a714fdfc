package tictactoe

import "github.com/rocketscienceinc/tictactoe-promo/internal/entity"

const (
	StatusYourTurn         = "Твой ход: крестики"
	StatusOpponentThinking = "Ход компьютера…"
	StatusPlayerWon        = "Победа! Промокод внутри."
	StatusOpponentWon      = "Компьютер победил. Попробуем ещё?"
	StatusDraw             = "Ничья. Это шанс начать заново."
)

func statusFor(phase entity.Phase) string {
	switch phase {
	case entity.PhasePlayerWon:
		return StatusPlayerWon
	case entity.PhaseOpponentWon:
		return StatusOpponentWon
	case entity.PhaseDraw:
		return StatusDraw
	default:
		return StatusYourTurn
	}
}
