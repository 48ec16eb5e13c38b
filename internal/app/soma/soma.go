// Package soma собирает HTTP-сервис управления участниками зала:
// хранилище, кеш, сервисы, маршруты и жизненный цикл сервера.
package soma

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/franchu01/soma/internal/cache"
	"github.com/franchu01/soma/internal/config"
	"github.com/franchu01/soma/internal/lib/jwt"
	"github.com/franchu01/soma/internal/migrations"
	deactivationservice "github.com/franchu01/soma/internal/services/deactivation"
	memberservice "github.com/franchu01/soma/internal/services/member"
	paymentservice "github.com/franchu01/soma/internal/services/payment"
	statsservice "github.com/franchu01/soma/internal/services/stats"
	"github.com/franchu01/soma/internal/storage/repository"
)

// App агрегирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует приложение: хранилище с миграциями, кеш, сервисы
// и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	memberSvc := memberservice.NewService(db, cacheRedis, logger, loc)
	paymentSvc := paymentservice.NewService(db, logger, loc)
	deactivationSvc := deactivationservice.NewService(db, logger, loc)
	statsSvc := statsservice.NewService(db, logger, loc)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, jwtMaker, db,
		memberSvc, paymentSvc, deactivationSvc, statsSvc)

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
		cache:  cacheRedis,
	}, nil
}

// Run запускает сервер и останавливает его по отмене контекста.
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
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
