package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-promo/internal/tictactoe"
)

const (
	actionConnect      = "connect"
	actionGameTurn     = "game:turn"
	actionGameReset    = "game:reset"
	actionPromoIssued  = "promo:issued"
	actionNotifyResult = "notify:result"
	actionError        = "error"
)

// Message is the envelope for everything sent over the socket in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type turnPayload struct {
	Cell *int `json:"cell"`
}

type connectPayload struct {
	Player string          `json:"player"`
	State  tictactoe.State `json:"state"`
}

type promoPayload struct {
	Code string `json:"code"`
}

type notifyPayload struct {
	Sent bool `json:"sent"`
}

type errorPayload struct {
	Error string `json:"error"`
}
