// Package middlewarectx содержит HTTP middleware: проверку JWT администратора,
// ограничение частоты запросов и CORS.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization
// и в случае успеха кладёт в контекст идентификатор, email и имя администратора.
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// AdminID ключ идентификатора администратора в контексте
	AdminID Key = "admin_id"
	// AdminEmail ключ email администратора в контексте
	AdminEmail Key = "admin_email"
	// AdminName ключ имени администратора в контексте
	AdminName Key = "admin_name"
)

// TokenParser проверяет подпись и срок действия токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				response.Render(w, r, http.StatusUnauthorized, response.Error("No token provided"))
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.Render(w, r, http.StatusUnauthorized, response.Error("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), AdminID, claims.AdminID)
			ctx = context.WithValue(ctx, AdminEmail, claims.Email)
			ctx = context.WithValue(ctx, AdminName, claims.FullName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIDFromContext возвращает идентификатор администратора, положенный JWTMiddleware.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AdminID).(string)
	return id, ok && id != ""
}
