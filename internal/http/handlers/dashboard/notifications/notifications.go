// Package notifications реализует HTTP-обработчик уведомлений об абонементах.
package notifications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Handler отдаёт уведомления об истёкших и истекающих абонементах.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает построение уведомлений.
type Service interface {
	Notifications(ctx context.Context) (*models.NotificationList, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Уведомления
// @Description Абонементы, истёкшие за последние 7 дней, и истекающие в ближайшие 7 дней.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.Response{data=models.NotificationList}
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.notifications"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.Notifications(r.Context())
	if err != nil {
		log.Error("failed to build notifications", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to fetch notifications"))
		return
	}

	log.Debug("notifications built", slog.Int("unread", list.UnreadCount))
	response.Render(w, r, http.StatusOK, response.OK(list))
}
