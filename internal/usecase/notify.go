package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
)

const (
	ResultWin  = "win"
	ResultLose = "lose"
)

type messenger interface {
	SendMessage(ctx context.Context, text string) error
}

// NotifyUseCase reports game results to the operators' chat.
type NotifyUseCase struct {
	logger    *slog.Logger
	messenger messenger
}

func NewNotifyUseCase(logger *slog.Logger, messenger messenger) *NotifyUseCase {
	return &NotifyUseCase{
		logger:    logger.With("component", "notify"),
		messenger: messenger,
	}
}

// Notify - sends the result to the chat. Unknown results are skipped, a win needs its promo code.
func (that *NotifyUseCase) Notify(ctx context.Context, result, code string) (bool, error) {
	log := that.logger.With("method", "Notify", "result", result)

	if result != ResultWin && result != ResultLose {
		log.Debug("result skipped")
		return true, nil
	}

	if result == ResultWin && code == "" {
		return false, apperror.ErrMissingPromoCode
	}

	if err := that.messenger.SendMessage(ctx, messageText(result, code)); err != nil {
		return false, fmt.Errorf("failed to send notification: %w", err)
	}

	log.Info("notification sent")

	return false, nil
}

func messageText(result, code string) string {
	if result == ResultWin {
		return "Победа! Промокод выдан: " + code
	}

	return "Проигрыш"
}
