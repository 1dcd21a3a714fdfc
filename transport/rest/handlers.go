package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
)

type notifier interface {
	Notify(ctx context.Context, result, code string) (bool, error)
}

type promoVerifier interface {
	VerifyPromo(ctx context.Context, code string) (bool, error)
}

type notifyRequest struct {
	Result string `json:"result"`
	Code   string `json:"code"`
}

type response struct {
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Valid   *bool  `json:"valid,omitempty"`
	Error   string `json:"error,omitempty"`
}

type handlers struct {
	logger   *slog.Logger
	notifier notifier
	promo    promoVerifier
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) health(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, response{OK: true})
}

func (that *handlers) notify(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "notify")

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, response{Error: "Invalid request body"})
		return
	}

	skipped, err := that.notifier.Notify(r.Context(), req.Result, req.Code)
	switch {
	case errors.Is(err, apperror.ErrMissingPromoCode):
		that.writeJSON(w, http.StatusBadRequest, response{Error: "Missing promo code"})
	case errors.Is(err, apperror.ErrMissingBotToken):
		that.writeJSON(w, http.StatusInternalServerError, response{Error: "Missing BOT_TOKEN"})
	case errors.Is(err, apperror.ErrMissingChatID):
		that.writeJSON(w, http.StatusInternalServerError, response{Error: "Missing CHAT_ID"})
	case err != nil:
		log.Error("failed to send Telegram notification", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, response{Error: "Failed to send Telegram notification"})
	default:
		that.writeJSON(w, http.StatusOK, response{OK: true, Skipped: skipped})
	}
}

func (that *handlers) verifyPromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	valid, err := that.promo.VerifyPromo(r.Context(), code)
	if err != nil {
		that.logger.Error("failed to verify promo code", "method", "verifyPromo", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, response{Error: "Failed to verify promo code"})
		return
	}

	that.writeJSON(w, http.StatusOK, response{OK: true, Valid: &valid})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
