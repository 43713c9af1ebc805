// Package legalassistant собирает HTTP-приложение юридического помощника:
// хранилище, кеш, блоб-хранилище, брокер сообщений, сервисы и маршруты.
package legalassistant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/legal-assistant/internal/cache"
	"github.com/magabrotheeeer/legal-assistant/internal/config"
	"github.com/magabrotheeeer/legal-assistant/internal/filestore"
	jwtlib "github.com/magabrotheeeer/legal-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/legal-assistant/internal/migrations"
	"github.com/magabrotheeeer/legal-assistant/internal/rabbitmq"
	"github.com/magabrotheeeer/legal-assistant/internal/ratelimit"
	authservice "github.com/magabrotheeeer/legal-assistant/internal/services/auth"
	casesservice "github.com/magabrotheeeer/legal-assistant/internal/services/cases"
	chatservice "github.com/magabrotheeeer/legal-assistant/internal/services/chat"
	documentsservice "github.com/magabrotheeeer/legal-assistant/internal/services/documents"
	journalservice "github.com/magabrotheeeer/legal-assistant/internal/services/journal"
	resourcesservice "github.com/magabrotheeeer/legal-assistant/internal/services/resources"
	riskservice "github.com/magabrotheeeer/legal-assistant/internal/services/risk"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// App агрегирует долгоживущие соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	amqp   *amqp.Connection
}

// New инициализирует все зависимости и строит приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var limitStore ratelimit.Store
	if cfg.RateLimit.UseRedis {
		limitStore = ratelimit.NewRedisStore(cacheRedis.Db)
	} else {
		limitStore = ratelimit.NewMemoryStore()
	}

	blobs, err := filestore.New(cfg.FileStorage)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewJobPublisher(ch, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue)

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	deps := Deps{
		Config:    cfg,
		Storage:   db,
		Maker:     jwtMaker,
		LimitStor: limitStore,
		Auth:      authservice.New(db, jwtMaker),
		Cases:     casesservice.New(db, cacheRedis, logger),
		Documents: documentsservice.New(db, blobs, logger),
		Journal:   journalservice.New(db, logger),
		Chat:      chatservice.New(db, publisher, logger),
		Risk:      riskservice.NewEngine(cfg.Risk.Strict),
		Resources: resourcesservice.New(cacheRedis, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
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
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.amqp.Close(); cerr != nil {
			a.logger.Warn("failed to close amqp connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
