package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
)

type mockMessenger struct {
	mock.Mock
}

func (that *mockMessenger) SendMessage(ctx context.Context, text string) error {
	args := that.Called(ctx, text)
	return args.Error(0)
}

func newNotifyUseCase(t *testing.T) (*NotifyUseCase, *mockMessenger) {
	t.Helper()

	messenger := &mockMessenger{}
	t.Cleanup(func() {
		messenger.AssertExpectations(t)
	})

	return NewNotifyUseCase(slog.New(slog.NewJSONHandler(io.Discard, nil)), messenger), messenger
}

func TestNotifyUseCase_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends the promo code on a win", func(t *testing.T) {
		// Given: a working messenger
		notify, messenger := newNotifyUseCase(t)
		messenger.On("SendMessage", ctx, "Победа! Промокод выдан: 54321").Return(nil).Once()

		// When: a win is reported
		skipped, err := notify.Notify(ctx, ResultWin, "54321")

		// Then: the message was sent
		require.NoError(t, err)
		assert.False(t, skipped)
	})

	t.Run("Sends a loss without a code", func(t *testing.T) {
		notify, messenger := newNotifyUseCase(t)
		messenger.On("SendMessage", ctx, "Проигрыш").Return(nil).Once()

		skipped, err := notify.Notify(ctx, ResultLose, "")

		require.NoError(t, err)
		assert.False(t, skipped)
	})

	t.Run("Skips unknown results", func(t *testing.T) {
		// Given: a messenger that must not be called
		notify, _ := newNotifyUseCase(t)

		// When: a draw is reported
		skipped, err := notify.Notify(ctx, "draw", "")

		// Then: it is skipped
		require.NoError(t, err)
		assert.True(t, skipped)
	})

	t.Run("Requires a code for a win", func(t *testing.T) {
		notify, _ := newNotifyUseCase(t)

		_, err := notify.Notify(ctx, ResultWin, "")

		require.ErrorIs(t, err, apperror.ErrMissingPromoCode)
	})

	t.Run("Wraps messenger errors", func(t *testing.T) {
		notify, messenger := newNotifyUseCase(t)
		messenger.On("SendMessage", ctx, "Проигрыш").Return(apperror.ErrMissingBotToken).Once()

		_, err := notify.Notify(ctx, ResultLose, "")

		require.ErrorIs(t, err, apperror.ErrMissingBotToken)
	})
}
