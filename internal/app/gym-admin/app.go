package gymadmin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	_ "github.com/magabrotheeeer/gym-admin/docs"
	"github.com/magabrotheeeer/gym-admin/internal/cache"
	"github.com/magabrotheeeer/gym-admin/internal/config"
	"github.com/magabrotheeeer/gym-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/migrations"
	authservice "github.com/magabrotheeeer/gym-admin/internal/services/auth"
	clientservice "github.com/magabrotheeeer/gym-admin/internal/services/client"
	dashboardservice "github.com/magabrotheeeer/gym-admin/internal/services/dashboard"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер API вместе с его ресурсами.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	redis  *cache.Cache
}

// New подключается к базе, применяет миграции, поднимает кеш и собирает роутер.
// Недоступный Redis не мешает старту: карточки клиентов читаются из базы.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	var (
		clientCache clientservice.Cache = cache.Noop{}
		redisCache  *cache.Cache
	)
	if cfg.Redis.Address != "" {
		redisCache, err = cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, client cache disabled", sl.Err(err))
		} else {
			clientCache = redisCache
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	services := Services{
		Auth:      authservice.NewAuthService(db, jwtMaker),
		Client:    clientservice.NewClientService(db, clientCache, cfg.Redis.ClientTTL, logger),
		Dashboard: dashboardservice.NewDashboardService(db, logger, nil),
		Tokens:    jwtMaker,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, services)

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
		redis:  redisCache,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем завершает сервер
// и закрывает соединения.
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

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	a.close()
	return err
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
