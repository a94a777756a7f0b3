// Package careconnect собирает HTTP-сервис центра здоровья из хранилища,
// кэша, брокера и внешней языковой модели.
package careconnect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/careconnect/internal/cache"
	"github.com/magabrotheeeer/careconnect/internal/config"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/health"
	"github.com/magabrotheeeer/careconnect/internal/lib/jwt"
	"github.com/magabrotheeeer/careconnect/internal/lib/password"
	"github.com/magabrotheeeer/careconnect/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/llm/gemini"
	"github.com/magabrotheeeer/careconnect/internal/migrations"
	"github.com/magabrotheeeer/careconnect/internal/services/appointment"
	"github.com/magabrotheeeer/careconnect/internal/services/auth"
	chatservice "github.com/magabrotheeeer/careconnect/internal/services/chat"
	"github.com/magabrotheeeer/careconnect/internal/services/dashboard"
	"github.com/magabrotheeeer/careconnect/internal/services/doctor"
	"github.com/magabrotheeeer/careconnect/internal/services/emergency"
	"github.com/magabrotheeeer/careconnect/internal/services/profile"
	"github.com/magabrotheeeer/careconnect/internal/services/record"
	"github.com/magabrotheeeer/careconnect/internal/services/reminder"
	"github.com/magabrotheeeer/careconnect/internal/services/visit"
	"github.com/magabrotheeeer/careconnect/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-приложение CareConnect со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
	reminders *reminder.Service
}

// New поднимает хранилище, кэш, брокер и сервисы и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	app := &App{logger: logger}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	app.db, err = storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(app.db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	authService := auth.New(app.db, jwt.NewMaker(cfg.JWTSecretKey), password.NewHasher(password.DefaultParams), app.cache,
		auth.Options{TokenTTL: cfg.TokenTTL, AllowStaffRegistration: cfg.AllowStaffRegistration}, logger)
	if err = authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	// Без брокера вызовы сохраняются, но не рассылаются.
	var dispatcher emergency.Publisher
	if cfg.RabbitURL != "" {
		app.amqpConn, err = rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitRetryDelay)
		if err != nil {
			return nil, err
		}
		queues := append(rabbitmq.GetEmergencyQueues(), rabbitmq.GetReminderQueues()...)
		ch, err := rabbitmq.SetupChannel(app.amqpConn, cfg.RabbitExchange, queues)
		if err != nil {
			return nil, err
		}
		app.publisher = rabbitmq.NewPublisher(ch, cfg.RabbitExchange)
		dispatcher = app.publisher
		if cfg.ReminderEnabled {
			app.reminders = reminder.New(app.db, app.publisher, cfg.ReminderInterval, logger)
		}
	} else {
		logger.Warn("rabbitmq url is empty, emergency dispatch is disabled")
	}

	var provider chatservice.Provider
	if cfg.ChatbotEnabled() {
		provider = gemini.NewClient(gemini.Options{
			APIURL:      cfg.ChatAPIURL,
			APIKey:      cfg.ChatAPIKey,
			Model:       cfg.ChatModel,
			MaxTokens:   cfg.ChatMaxTokens,
			Temperature: cfg.ChatTemperature,
			Timeout:     cfg.ChatTimeout,
		})
	} else {
		logger.Warn("chatbot api key is empty, running in fallback mode")
	}
	conversations := cache.NewConversationStore(app.cache, cfg.ChatHistoryTTL, chatservice.HistoryLimit)

	services := Services{
		Auth:         authService,
		Profile:      profile.New(app.db, logger),
		Appointments: appointment.New(app.db, app.db, logger),
		Doctors:      doctor.New(app.db, app.cache, logger),
		Dashboard:    dashboard.New(app.db),
		Records:      record.New(app.db, logger),
		Emergency:    emergency.New(app.db, dispatcher, logger),
		Visits:       visit.New(app.db),
		Chat:         chatservice.New(provider, conversations, cfg.ChatTimeout, logger),
		Health: map[string]health.Pinger{
			"postgres": app.db,
			"redis":    app.cache,
		},
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, RouteOptions{
		ChatRequireAuth: cfg.ChatRequireAuth,
		ChatRateLimit:   rate.Limit(cfg.ChatRateLimit),
		ChatRateBurst:   cfg.ChatRateBurst,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP + cfg.ChatTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx и корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	if a.reminders != nil {
		go a.reminders.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close postgres", sl.Err(err))
		}
	}
}
