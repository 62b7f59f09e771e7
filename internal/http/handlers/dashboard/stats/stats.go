// Package stats реализует HTTP-обработчик статистики дашборда.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Handler отдаёт статистику дашборда.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает построение статистики.
type Service interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика дашборда
// @Description Счётчики клиентов, выручка текущего месяца, ряды за шесть месяцев и распределение по тарифам.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.Response{data=models.DashboardStats}
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to build dashboard stats", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to fetch dashboard stats"))
		return
	}

	response.Render(w, r, http.StatusOK, response.OK(res))
}
