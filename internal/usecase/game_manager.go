package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-promo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-promo/internal/tictactoe"
)

const defaultNotifyTimeout = 10 * time.Second

// Sink receives everything the player's UI has to show.
type Sink interface {
	SessionEvent(event tictactoe.Event)
	PromoIssued(code string)
	NotificationResult(sent bool)
}

type botService interface {
	ChooseMove(board entity.Board) (int, error)
}

type hintService interface {
	Hint(board entity.Board, cursor int) (int, bool)
	Advance(cursor, cell int) int
}

type promoService interface {
	GenerateCode() string
}

type promoRepo interface {
	Save(ctx context.Context, code string, ttl time.Duration) error
	Exists(ctx context.Context, code string) (bool, error)
}

type notifier interface {
	Notify(ctx context.Context, result, code string) (bool, error)
}

type Settings struct {
	OpponentDelay time.Duration
	PromoTTL      time.Duration
	NotifyTimeout time.Duration
	// Scheduler overrides time.AfterFunc for the opponent's delayed reply.
	Scheduler tictactoe.Scheduler
}

// playerGame is one running game instance: a session with its own progress, and the
// connection currently watching it.
type playerGame struct {
	session *tictactoe.Session
	sink    Sink
}

// GameManager keeps a game instance per player for the lifetime of the process.
type GameManager struct {
	logger   *slog.Logger
	settings Settings

	bot       botService
	hints     hintService
	promo     promoService
	promoRepo promoRepo
	notifier  notifier

	mu      sync.Mutex
	players map[string]*playerGame

	wg sync.WaitGroup
}

func NewGameManager(
	logger *slog.Logger,
	settings Settings,
	bot botService,
	hints hintService,
	promo promoService,
	promoRepo promoRepo,
	notifier notifier,
) *GameManager {
	if settings.OpponentDelay <= 0 {
		settings.OpponentDelay = tictactoe.DefaultOpponentDelay
	}

	if settings.NotifyTimeout <= 0 {
		settings.NotifyTimeout = defaultNotifyTimeout
	}

	if settings.Scheduler == nil {
		settings.Scheduler = tictactoe.AfterFunc
	}

	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		settings: settings,

		bot:       bot,
		hints:     hints,
		promo:     promo,
		promoRepo: promoRepo,
		notifier:  notifier,

		players: make(map[string]*playerGame),
	}
}

// Connect - attaches sink to the player's game, creating the game on first contact.
// It returns the player id to keep, which differs from playerID when that one was not a valid id.
func (that *GameManager) Connect(playerID string, sink Sink) (string, tictactoe.State) {
	log := that.logger.With("method", "Connect")

	that.mu.Lock()
	game, ok := that.players[playerID]
	if !ok {
		if _, err := uuid.Parse(playerID); err != nil {
			playerID = uuid.NewString()
		}

		game = that.newPlayerGame(playerID)
		that.players[playerID] = game

		log.Info("new game instance created", "player", playerID)
	}
	game.sink = sink
	that.mu.Unlock()

	return playerID, game.session.State()
}

// Disconnect - detaches sink unless another connection has taken over meanwhile.
func (that *GameManager) Disconnect(playerID string, sink Sink) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if game, ok := that.players[playerID]; ok && game.sink == sink {
		game.sink = nil
	}
}

func (that *GameManager) MakeTurn(playerID string, cell int) error {
	game, err := that.getGame(playerID)
	if err != nil {
		return err
	}

	if err = game.session.SubmitPlayerMove(cell); err != nil {
		return fmt.Errorf("failed make turn: %w", err)
	}

	return nil
}

func (that *GameManager) Reset(playerID string) error {
	game, err := that.getGame(playerID)
	if err != nil {
		return err
	}

	game.session.Reset()

	return nil
}

func (that *GameManager) VerifyPromo(ctx context.Context, code string) (bool, error) {
	exists, err := that.promoRepo.Exists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to check promo code: %w", err)
	}

	return exists, nil
}

// Wait - blocks until pending promo notifications are done.
func (that *GameManager) Wait() {
	that.wg.Wait()
}

func (that *GameManager) newPlayerGame(playerID string) *playerGame {
	session := tictactoe.NewSession(
		that.logger.With("player", playerID),
		tictactoe.NewProgress(),
		that.bot,
		that.hints,
		tictactoe.WithDelay(that.settings.OpponentDelay),
		tictactoe.WithScheduler(that.settings.Scheduler),
		tictactoe.WithListener(func(event tictactoe.Event) {
			that.dispatch(playerID, event)
		}),
	)

	return &playerGame{session: session}
}

func (that *GameManager) getGame(playerID string) (*playerGame, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	return game, nil
}

func (that *GameManager) sinkFor(playerID string) Sink {
	that.mu.Lock()
	defer that.mu.Unlock()

	if game, ok := that.players[playerID]; ok {
		return game.sink
	}

	return nil
}

func (that *GameManager) dispatch(playerID string, event tictactoe.Event) {
	if sink := that.sinkFor(playerID); sink != nil {
		sink.SessionEvent(event)
	}

	if event.Kind == tictactoe.EventGameEnded && event.Outcome == entity.PhasePlayerWon {
		that.wg.Add(1)
		go func() {
			defer that.wg.Done()
			that.issuePromo(playerID)
		}()
	}
}

// issuePromo - hands the winner a promo code and reports the win to the chat.
func (that *GameManager) issuePromo(playerID string) {
	log := that.logger.With("method", "issuePromo", "player", playerID)

	ctx, cancel := context.WithTimeout(context.Background(), that.settings.NotifyTimeout)
	defer cancel()

	code := that.promo.GenerateCode()

	if err := that.promoRepo.Save(ctx, code, that.settings.PromoTTL); err != nil {
		log.Error("failed to save promo code", "error", err)
	}

	if sink := that.sinkFor(playerID); sink != nil {
		sink.PromoIssued(code)
	}

	_, err := that.notifier.Notify(ctx, ResultWin, code)
	if err != nil {
		log.Error("failed to notify about the win", "error", err)
	}

	if sink := that.sinkFor(playerID); sink != nil {
		sink.NotificationResult(err == nil)
	}

	log.Info("promo code issued")
}
