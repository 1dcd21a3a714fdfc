package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-promo/internal/config"
	"github.com/rocketscienceinc/tictactoe-promo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-promo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-promo/internal/service"
	"github.com/rocketscienceinc/tictactoe-promo/internal/transport/telegram"
	"github.com/rocketscienceinc/tictactoe-promo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-promo/transport/rest"
	"github.com/rocketscienceinc/tictactoe-promo/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	promoRepo, closeRepo, err := newPromoRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			log.Error("could not close promo storage", "error", closeErr)
		}
	}()

	promoService, err := service.NewPromoService()
	if err != nil {
		return fmt.Errorf("could not create promo service: %w", err)
	}

	telegramClient := telegram.New(
		&http.Client{Timeout: conf.Telegram.Timeout},
		conf.Telegram.APIURL,
		conf.Telegram.BotToken,
		conf.Telegram.ChatID,
	)
	notifyUseCase := usecase.NewNotifyUseCase(logger, telegramClient)

	gameManager := usecase.NewGameManager(
		logger,
		usecase.Settings{
			OpponentDelay: conf.Game.OpponentDelay,
			PromoTTL:      conf.Promo.TTL,
			NotifyTimeout: conf.Telegram.Timeout,
		},
		service.NewBotService(),
		service.NewHintService(),
		promoService,
		promoRepo,
		notifyUseCase,
	)
	defer gameManager.Wait()

	wsServer := websocket.New(logger, gameManager)
	router := rest.NewRouter(logger, notifyUseCase, gameManager, wsServer, conf.PublicDir)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "promo_store", conf.Promo.Store)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newPromoRepository - picks the promo store; the returned func releases it.
func newPromoRepository(ctx context.Context, conf *config.Config) (repository.PromoRepository, func() error, error) {
	switch conf.Promo.Store {
	case config.PromoStoreMemory:
		return repository.NewMemoryPromoRepository(), func() error { return nil }, nil
	case config.PromoStoreRedis:
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewPromoRepository(redisStorage), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPromoStore, conf.Promo.Store)
	}
}
