package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-promo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-promo/internal/usecase"
)

const (
	sessionCookie    = "user_session"
	sessionLifetime  = 30 * 24 * time.Hour
	readLimit        = 4096
	errMalformedText = "malformed message"
)

type uGame interface {
	Connect(playerID string, sink usecase.Sink) (string, tictactoe.State)
	Disconnect(playerID string, sink usecase.Sink)
	MakeTurn(playerID string, cell int) error
	Reset(playerID string) error
}

type handler func(ctx context.Context, playerID string, cl *client, msg *Message) error

type Server struct {
	logger *slog.Logger
	uGame  uGame

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,

		handlers: make(map[string]handler),
	}

	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset

	return server
}

// ServeHTTP - upgrades the request and serves the player's game until the socket closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	// the cookie has to go out with the upgrade response
	playerID := that.setSessionCookie(writer, req)

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	conn.SetReadLimit(readLimit)

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	cl := newClient(that.logger.With("player", playerID), conn)

	playerID, state := that.uGame.Connect(playerID, cl)
	defer that.uGame.Disconnect(playerID, cl)

	cl.enqueue(actionConnect, connectPayload{Player: playerID, State: state})

	go cl.writeLoop(ctx)

	log.Info("player connected", "player", playerID)

	err = that.handleMessages(ctx, playerID, cl)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("player disconnected", "player", playerID)
	default:
		log.Warn("connection closed", "player", playerID, "error", err)
	}
}

// handleMessages - processes messages from the client until reading fails.
func (that *Server) handleMessages(ctx context.Context, playerID string, cl *client) error {
	log := that.logger.With("method", "handleMessages", "player", playerID)

	for {
		_, data, err := cl.conn.Read(ctx)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			cl.sendError(errMalformedText)
			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			cl.sendError(fmt.Sprintf("unknown action %q", message.Action))
			continue
		}

		if err = handle(ctx, playerID, cl, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) handleGameTurn(_ context.Context, playerID string, cl *client, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "player", playerID)

	var payload turnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Cell == nil {
		cl.sendError("cell is required")
		return nil
	}

	err := that.uGame.MakeTurn(playerID, *payload.Cell)
	if isRejection(err) {
		// the UI only ignores a rejected click
		log.Debug("move rejected", "cell", *payload.Cell, "reason", err)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *Server) handleGameReset(_ context.Context, playerID string, _ *client, _ *Message) error {
	if err := that.uGame.Reset(playerID); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return nil
}

// setSessionCookie - returns the player id from the cookie, issuing a new one when it is missing or broken.
func (that *Server) setSessionCookie(writer http.ResponseWriter, req *http.Request) string {
	log := that.logger.With("method", "setSessionCookie")

	cookie, err := req.Cookie(sessionCookie)
	if err == nil {
		if _, err = uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	playerID := uuid.NewString()

	http.SetCookie(writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    playerID,
		Expires:  time.Now().Add(sessionLifetime),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("session cookie not found, new one created", "player", playerID)

	return playerID
}

func isRejection(err error) bool {
	return errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrOpponentThinking) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOccupied)
}
