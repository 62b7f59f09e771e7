// Package profile реализует HTTP-обработчик профиля текущего администратора.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// Handler возвращает профиль администратора из токена.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение администратора по идентификатору.
type Service interface {
	Profile(ctx context.Context, adminID string) (*models.Admin, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профиль администратора
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response{data=models.Admin}
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 404 {object} response.ErrorResponse "Администратор удалён"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminID, ok := middlewarectx.AdminIDFromContext(r.Context())
	if !ok {
		log.Error("admin id not found in context")
		response.Render(w, r, http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	admin, err := h.service.Profile(r.Context(), adminID)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("admin not found", slog.String("admin_id", adminID))
		response.Render(w, r, http.StatusNotFound, response.Error("Admin not found"))
		return
	}
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to fetch profile"))
		return
	}

	response.Render(w, r, http.StatusOK, response.OK(admin))
}
