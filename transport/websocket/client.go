package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-promo/internal/tictactoe"
)

const (
	outboundQueueSize = 32
	writeTimeout      = 5 * time.Second
)

// client is one browser connection. Game events arrive from other goroutines and are queued
// for the single writer.
type client struct {
	logger   *slog.Logger
	conn     *websocket.Conn
	outbound chan Message
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *client {
	return &client{
		logger:   logger,
		conn:     conn,
		outbound: make(chan Message, outboundQueueSize),
	}
}

func (that *client) SessionEvent(event tictactoe.Event) {
	that.enqueue(string(event.Kind), event)
}

func (that *client) PromoIssued(code string) {
	that.enqueue(actionPromoIssued, promoPayload{Code: code})
}

func (that *client) NotificationResult(sent bool) {
	that.enqueue(actionNotifyResult, notifyPayload{Sent: sent})
}

func (that *client) sendError(text string) {
	that.enqueue(actionError, errorPayload{Error: text})
}

// enqueue never blocks the game; a slow client loses messages instead.
func (that *client) enqueue(action string, payload any) {
	log := that.logger.With("method", "enqueue", "action", action)

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	select {
	case that.outbound <- Message{Action: action, Payload: raw}:
	default:
		log.Warn("outbound queue is full, message dropped")
	}
}

// writeLoop - drains the queue until ctx is done or a write fails.
func (that *client) writeLoop(ctx context.Context) {
	log := that.logger.With("method", "writeLoop")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-that.outbound:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, that.conn, msg)
			cancel()

			if err != nil {
				log.Debug("failed to write message", "action", msg.Action, "error", err)
				return
			}
		}
	}
}
