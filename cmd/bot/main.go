package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storebot/internal/bot"
	"storebot/internal/config"
	"storebot/internal/domain"
	"storebot/internal/events"
	"storebot/internal/logging"
	"storebot/internal/models"
	"storebot/internal/repository"
	"storebot/internal/service"
	"storebot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	store, err := storage.NewStore(cfg.Storage.Path, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize item store")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, stateService := initStateService(ctx, cfg, logger)
	defer func() { _ = repository.Close(redisClient) }()

	metrics := bot.NewMetrics()
	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
	}

	eventBus := events.NewEventBus()

	return startBot(ctx, cfg, store, stateService, eventBus, metrics, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.Component(baseLogger, "bot-main")

	return cfg, &logger, closer, nil
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(models.DefaultRedisTTL) * time.Second
	primaryRepo := repository.NewRedisStateRepository(redisClient, ttl)
	fallbackRepo := repository.NewMemoryStateRepository(ttl)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		logger.Info().Int("port", port).Msg("Metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	store domain.ItemStore,
	stateService *service.StateService,
	eventBus *events.EventBus,
	metrics *bot.Metrics,
	logger *zerolog.Logger,
) error {
	if cfg.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		logger.Error().Msg("Set the bot token in config.yaml")
		return os.ErrInvalid
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	botWrapper := bot.NewBotWrapper(botAPI)
	tgService := service.NewTelegramService(botWrapper)

	subscribeStoreEvents(eventBus, tgService, cfg, logger)

	storeBot, err := bot.NewBot(tgService, cfg, store, stateService, eventBus, metrics, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create bot")
		return err
	}

	logger.Info().Msg("Bot started...")
	storeBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// subscribeStoreEvents routes catalog events to the admin: a new comment
// becomes a direct notification, publishes and deletions are logged for the
// audit trail. Notification failures are logged and dropped.
func subscribeStoreEvents(
	bus *events.EventBus,
	tgService domain.TelegramService,
	cfg *config.Config,
	logger *zerolog.Logger,
) {
	if bus == nil {
		return
	}

	bus.Subscribe(events.EventCommentAdded, func(ev *events.Event) error {
		var payload events.CommentEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		if cfg.Telegram.AdminID == 0 {
			return nil
		}

		username := payload.Username
		if username == "" {
			username = "no username"
		}

		text := fmt.Sprintf("💬 New comment on item %s:\n\nFrom: %s (@%s)\nComment: %s",
			payload.ItemID, payload.User, username, payload.Text)

		if _, err := tgService.SendMessage(context.Background(), cfg.Telegram.AdminID, text); err != nil {
			logger.Error().Err(err).Str("item_id", payload.ItemID).Msg("event bus: notify admin")
		}
		return nil
	})

	itemLogger := func(action string) events.EventHandler {
		return func(ev *events.Event) error {
			var payload events.ItemEventPayload
			if err := json.Unmarshal(ev.Payload, &payload); err != nil {
				logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
				return nil
			}
			logger.Info().Str("item_id", payload.ItemID).Msg(action)
			return nil
		}
	}

	bus.Subscribe(events.EventItemPublished, itemLogger("item published"))
	bus.Subscribe(events.EventItemDeleted, itemLogger("item deleted"))
}
