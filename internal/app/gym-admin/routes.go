// Package gymadmin собирает HTTP API панели администратора зала.
package gymadmin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-admin/internal/config"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/bulkdelete"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/create"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/list"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/payment"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/read"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/remove"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/renew"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/client/update"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/dashboard/notifications"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/dashboard/stats"
	"github.com/magabrotheeeer/gym-admin/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/metrics"
	authservice "github.com/magabrotheeeer/gym-admin/internal/services/auth"
	clientservice "github.com/magabrotheeeer/gym-admin/internal/services/client"
	dashboardservice "github.com/magabrotheeeer/gym-admin/internal/services/dashboard"
)

// Services сервисы, которые обслуживают маршруты.
type Services struct {
	Auth      *authservice.AuthService
	Client    *clientservice.ClientService
	Dashboard *dashboardservice.DashboardService
	Tokens    middlewarectx.TokenParser
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
		middlewarectx.CORS(cfg.CORSOrigin),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Render(w, r, http.StatusNotFound, response.Error("Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Render(w, r, http.StatusMethodNotAllowed, response.Error("Method not allowed"))
	})

	r.Get("/health", health.New(nil).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	authLimiter := rate.NewLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)
	jwtAuth := middlewarectx.JWTMiddleware(s.Tokens, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, authLimiter))
			r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
			r.With(jwtAuth).Get("/profile", profile.New(logger, s.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", list.New(logger, s.Client).ServeHTTP)
				r.Post("/", create.New(logger, s.Client).ServeHTTP)
				r.Post("/bulk-delete", bulkdelete.New(logger, s.Client).ServeHTTP)
				r.Get("/{id}", read.New(logger, s.Client).ServeHTTP)
				r.Put("/{id}", update.New(logger, s.Client).ServeHTTP)
				r.Delete("/{id}", remove.New(logger, s.Client).ServeHTTP)
				r.Post("/{id}/renew", renew.New(logger, s.Client).ServeHTTP)
				r.Post("/{id}/payment", payment.New(logger, s.Client).ServeHTTP)
			})

			r.Get("/dashboard/stats", stats.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/notifications", notifications.New(logger, s.Dashboard).ServeHTTP)
		})
	})
}
