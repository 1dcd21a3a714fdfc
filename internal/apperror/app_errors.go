package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrOpponentThinking  = errors.New("opponent is still thinking")
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrMissingPromoCode  = errors.New("missing promo code")
	ErrMissingBotToken   = errors.New("missing BOT_TOKEN")
	ErrMissingChatID     = errors.New("missing CHAT_ID")
	ErrUnknownPromoStore = errors.New("unknown promo store")
)
