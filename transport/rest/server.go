package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewRouter - wires the API, the websocket endpoint and the static client.
func NewRouter(logger *slog.Logger, notifier notifier, promo promoVerifier, socket http.Handler, publicDir string) http.Handler {
	h := &handlers{
		logger:   logger.With("component", "rest"),
		notifier: notifier,
		promo:    promo,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.ping)
	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/notify", h.notify)
		r.Get("/promo/{code}", h.verifyPromo)
	})

	r.Handle("/ws", socket)
	r.Handle("/*", http.FileServer(http.Dir(publicDir)))

	return r
}

// Start - serves handler on port until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
