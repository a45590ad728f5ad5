// Package console собирает приложение: хранилище состояния, сервисы данных,
// сессию, публикацию изменений, напоминания и HTTP-сервер.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/pandda-console/internal/config"
	"github.com/magabrotheeeer/pandda-console/internal/console/router"
	"github.com/magabrotheeeer/pandda-console/internal/console/views"
	"github.com/magabrotheeeer/pandda-console/internal/events"
	consolehandler "github.com/magabrotheeeer/pandda-console/internal/http/handlers/console"
	"github.com/magabrotheeeer/pandda-console/internal/lib/jwt"
	"github.com/magabrotheeeer/pandda-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	appservice "github.com/magabrotheeeer/pandda-console/internal/services/app"
	authservice "github.com/magabrotheeeer/pandda-console/internal/services/auth"
	clientservice "github.com/magabrotheeeer/pandda-console/internal/services/client"
	planservice "github.com/magabrotheeeer/pandda-console/internal/services/plan"
	reminderservice "github.com/magabrotheeeer/pandda-console/internal/services/reminder"
	serverservice "github.com/magabrotheeeer/pandda-console/internal/services/server"
	subservice "github.com/magabrotheeeer/pandda-console/internal/services/subscription"
	userservice "github.com/magabrotheeeer/pandda-console/internal/services/user"
	"github.com/magabrotheeeer/pandda-console/internal/storage/blob"
	"github.com/magabrotheeeer/pandda-console/internal/storage/mockdb"
)

// Services сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Clients       *clientservice.ClientService
	Plans         *planservice.PlanService
	Apps          *appservice.AppService
	Servers       *serverservice.ServerService
	Subscriptions *subservice.SubscriptionService
	Users         *userservice.UserService
	Auth          *authservice.AuthService
	Console       *consolehandler.Handler
}

// App собранное приложение.
type App struct {
	cfg      *config.Config
	server   *http.Server
	logger   *slog.Logger
	backend  blob.Backend
	reminder *reminderservice.ReminderService
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
}

// New собирает приложение по конфигу. Метрики регистрируются в reg.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	const op = "app.console.New"

	backend, err := blob.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := &App{cfg: cfg, logger: logger, backend: backend}

	pub, err := a.publisher(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store := mockdb.New(ctx, backend, cfg.Storage.Key, logger,
		mockdb.WithLatency(cfg.Storage.Latency),
		mockdb.WithMetrics(reg),
		mockdb.WithHook(events.Hook(pub, logger)),
	)

	accounts, err := authservice.HashAccounts(cfg.Accounts)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	auth := authservice.NewAuthService(accounts, backend, cfg.Storage.SessionKey, jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL), logger)
	auth.Init(ctx)

	svc := Services{
		Clients:       clientservice.NewClientService(store, logger),
		Plans:         planservice.NewPlanService(store, logger),
		Apps:          appservice.NewAppService(store, logger),
		Servers:       serverservice.NewServerService(store, logger),
		Subscriptions: subservice.NewSubscriptionService(store, logger),
		Users:         userservice.NewUserService(store, logger),
		Auth:          auth,
	}
	v := views.New(views.Deps{
		Clients: svc.Clients,
		Plans:   svc.Plans,
		Apps:    svc.Apps,
		Servers: svc.Servers,
		Session: auth,
	}, logger)
	svc.Console = consolehandler.New(logger, router.New(&router.Outlet{}, logger, v.Routes()...), v, auth)

	if cfg.Reminder.Enabled {
		a.reminder = reminderservice.NewReminderService(svc.Subscriptions, pub, cfg.Reminder.Window, logger)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, logger, svc, rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      r,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// publisher выбирает получателя событий: брокер, если он включён, иначе журнал.
func (a *App) publisher(ctx context.Context) (events.Publisher, error) {
	mq := a.cfg.RabbitMQ
	if !mq.Enabled {
		return events.NewLogPublisher(a.logger), nil
	}
	conn, err := rabbitmq.Connect(ctx, mq.URL, mq.Retries, mq.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, mq.Exchange, rabbitmq.ConsoleQueues(mq.Exchange))
	if err != nil {
		conn.Close()
		return nil, err
	}
	a.amqpConn, a.amqpCh = conn, ch
	a.logger.Info("publishing changes to broker", slog.String("exchange", mq.Exchange))
	return events.NewAMQPPublisher(ch, mq.Exchange), nil
}

// Run запускает планировщик напоминаний и HTTP-сервер, при отмене ctx
// останавливает сервер и освобождает ресурсы.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if a.reminder != nil {
		if _, err := a.reminder.Start(ctx, a.cfg.Reminder.Schedule); err != nil {
			return fmt.Errorf("app.console.Run: %w", err)
		}
		a.logger.Info("reminder scheduler started", slog.String("schedule", a.cfg.Reminder.Schedule))
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

func (a *App) close() {
	if a.amqpCh != nil {
		if err := a.amqpCh.Close(); err != nil {
			a.logger.Error("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close amqp connection", sl.Err(err))
		}
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("failed to close storage backend", sl.Err(err))
	}
}
