package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
)

type mockNotifier struct {
	mock.Mock
}

func (that *mockNotifier) Notify(ctx context.Context, result, code string) (bool, error) {
	args := that.Called(ctx, result, code)
	return args.Bool(0), args.Error(1)
}

type mockPromo struct {
	mock.Mock
}

func (that *mockPromo) VerifyPromo(ctx context.Context, code string) (bool, error) {
	args := that.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type fixture struct {
	router   http.Handler
	notifier *mockNotifier
	promo    *mockPromo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte("<html>board</html>"), 0o600))

	notifier := &mockNotifier{}
	promo := &mockPromo{}
	t.Cleanup(func() {
		notifier.AssertExpectations(t)
		promo.AssertExpectations(t)
	})

	socket := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return &fixture{
		router:   NewRouter(logger, notifier, promo, socket, publicDir),
		notifier: notifier,
		promo:    promo,
	}
}

func (that *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	that.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Service(t *testing.T) {
	f := newFixture(t)

	t.Run("Ping", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/ping", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Health", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("Static client", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "board")
	})

	t.Run("Websocket endpoint", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/ws", "")

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestRouter_Notify(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		skipped    bool
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Win is sent",
			body:       `{"result":"win","code":"12345"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name:       "Unknown result is skipped",
			body:       `{"result":"draw"}`,
			skipped:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true,"skipped":true}`,
		},
		{
			name:       "Win without a code",
			body:       `{"result":"win"}`,
			err:        apperror.ErrMissingPromoCode,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"ok":false,"error":"Missing promo code"}`,
		},
		{
			name:       "Bot token is not configured",
			body:       `{"result":"lose"}`,
			err:        fmt.Errorf("failed to send notification: %w", apperror.ErrMissingBotToken),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"ok":false,"error":"Missing BOT_TOKEN"}`,
		},
		{
			name:       "Chat is not configured",
			body:       `{"result":"lose"}`,
			err:        fmt.Errorf("failed to send notification: %w", apperror.ErrMissingChatID),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"ok":false,"error":"Missing CHAT_ID"}`,
		},
		{
			name:       "Telegram fails",
			body:       `{"result":"lose"}`,
			err:        errors.New("telegram error: 502"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"ok":false,"error":"Failed to send Telegram notification"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a notifier answering with the case result
			f := newFixture(t)
			f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(tt.skipped, tt.err).Once()

			// When: the client reports the result
			rec := f.do(http.MethodPost, "/api/notify", tt.body)

			// Then: the status and body match
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}

	t.Run("Broken body", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/notify", "{")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_VerifyPromo(t *testing.T) {
	t.Run("Known code", func(t *testing.T) {
		f := newFixture(t)
		f.promo.On("VerifyPromo", mock.Anything, "12345").Return(true, nil).Once()

		rec := f.do(http.MethodGet, "/api/promo/12345", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"valid":true}`, rec.Body.String())
	})

	t.Run("Unknown code", func(t *testing.T) {
		f := newFixture(t)
		f.promo.On("VerifyPromo", mock.Anything, "54321").Return(false, nil).Once()

		rec := f.do(http.MethodGet, "/api/promo/54321", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"valid":false}`, rec.Body.String())
	})

	t.Run("Storage is down", func(t *testing.T) {
		f := newFixture(t)
		f.promo.On("VerifyPromo", mock.Anything, "12345").Return(false, errors.New("redis down")).Once()

		rec := f.do(http.MethodGet, "/api/promo/12345", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
