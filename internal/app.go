// internal/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"

	router "places-bot/internal/api"
	"places-bot/internal/api/handler"
	"places-bot/internal/config"
	"places-bot/internal/conversation"
	"places-bot/internal/events"
	"places-bot/internal/geocoding"
	"places-bot/internal/maprender"
	"places-bot/internal/repository"
	"places-bot/internal/repository/sqlstore"
	"places-bot/internal/service"
	"places-bot/internal/transport/telegram"
	"places-bot/internal/util"
	"places-bot/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	UserRepository  repository.UserRepository
	PlaceRepository repository.PlaceRepository

	// Geocoding and events
	Geocoder  *geocoding.Client
	Resolver  *geocoding.Resolver
	Publisher events.Publisher

	// Services
	UserService  service.UserService
	PlaceService service.PlaceService
	MapRenderer  *maprender.Renderer

	// Conversation. Gateway may be set before Initialize; otherwise a
	// Telegram bot is created from the configured token and Poller is set.
	Gateway    conversation.Gateway
	Poller     *telegram.Poller
	States     *conversation.StateTable
	Machine    *conversation.Machine
	Dispatcher *conversation.Dispatcher

	// Ops HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "db_driver", cfg.DB.Driver, "geocoder_mode", cfg.Geocoder.Mode)

	// 3. Connect to Database and prepare the schema; the bot cannot run without it
	database, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.EnsureSchema(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = sqlstore.NewUserRepository()
	app.PlaceRepository = sqlstore.NewPlaceRepository()

	// 5. Geocoding, with an optional Redis cache in front of the provider
	var provider geocoding.Provider = geocoding.NewNominatimProvider(cfg.Geocoder.URL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
	if cfg.Redis.Enabled() {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := app.Redis.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			app.Logger.Warn("Redis unavailable, geocode cache disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = app.Redis.Close()
			app.Redis = nil
		} else {
			provider = geocoding.NewCachingProvider(provider, geocoding.NewRedisCache(app.Redis), cfg.Redis.TTL, app.Logger)
			app.Logger.Info("Geocode cache enabled.", "addr", cfg.Redis.Addr)
		}
	}
	app.Geocoder = geocoding.NewClient(provider, app.Logger, retryPolicy(cfg.Geocoder))
	app.Resolver = geocoding.NewResolver(app.Geocoder, cfg.Geocoder.Mode, cfg.Geocoder.MaxAttempts)

	if cfg.Kafka.Enabled() {
		app.Publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		app.Logger.Info("Place events enabled.", "topic", cfg.Kafka.Topic)
	} else {
		app.Publisher = events.NopPublisher{}
	}

	// 6. Initialize Services
	app.UserService = service.NewUserService(app.DB, app.UserRepository)
	app.PlaceService = service.NewPlaceService(app.DB, app.UserRepository, app.PlaceRepository, app.Resolver, app.Publisher, cfg.Kafka.PublishTimeout, app.Logger)
	app.MapRenderer = maprender.NewRenderer(app.PlaceService, maprender.Config{
		TempDir: cfg.Map.TempDir,
		Center:  cfg.Map.Center,
		Zoom:    cfg.Map.Zoom,
	}, app.Logger)
	app.Logger.Info("Services initialized.")

	// 7. Messaging gateway and conversation
	if app.Gateway == nil {
		if cfg.TelegramToken == "" {
			return errors.New("TELEGRAM_TOKEN is required")
		}
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("failed to connect to telegram: %w", err)
		}
		app.Gateway = telegram.NewGateway(bot)
		app.Poller = telegram.NewPoller(bot, app.Logger)
		app.Logger.Info("Telegram bot authorized.", "username", bot.Self.UserName)
	}
	app.States = conversation.NewStateTable()
	app.Machine = conversation.NewMachine(app.States, app.UserService, app.PlaceService, app.MapRenderer, app.Gateway, app.Logger)
	app.Dispatcher = conversation.NewDispatcher(app.Machine.Handle)

	// 8. Initialize HTTP Handlers and Router
	placesHandler := handler.NewPlacesHandler(app.PlaceService, app.MapRenderer, app.Logger)
	app.HTTPHandler = router.NewRouter(placesHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown drains in-flight messages and releases resources.
func (app *Application) Shutdown(ctx context.Context) error {
	logger := app.Logger
	if logger == nil {
		logger = util.GetLogger()
	}
	logger.Info("Shutting down application...")

	if app.Dispatcher != nil {
		app.Dispatcher.Close()
		logger.Info("Pending messages processed.")
	}

	var errs []error
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			logger.Error("Failed to close redis client", "error", err)
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database connection", "error", err)
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		} else {
			logger.Info("Database connection closed.")
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info("Application shut down gracefully.")
	return nil
}

// retryPolicy maps GEOCODER_BACKOFF onto the geocoding client's delay policy.
func retryPolicy(cfg config.GeocoderConfig) geocoding.Option {
	if cfg.Backoff != config.BackoffExponential {
		return geocoding.WithRetryDelay(cfg.RetryDelay)
	}
	initial := cfg.RetryDelay
	return geocoding.WithBackOff(func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = initial
		return b
	})
}
