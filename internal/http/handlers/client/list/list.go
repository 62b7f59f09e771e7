// Package list реализует HTTP-обработчик списка клиентов с фильтрами.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Handler обрабатывает запросы списка клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки клиентов.
type Service interface {
	List(ctx context.Context, filter models.ClientFilter) ([]models.Client, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает клиентов, новые первыми. search ищет подстроку в имени, email и телефоне без учёта регистра.
// @Tags Clients
// @Produce  json
// @Param status query string false "Active или Expired"
// @Param plan_type query string false "Monthly, Quarterly или Yearly"
// @Param search query string false "Подстрока для поиска"
// @Success 200 {object} response.Response{data=[]models.Client}
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.ClientFilter{
		Status:   strings.TrimSpace(q.Get("status")),
		PlanType: strings.TrimSpace(q.Get("plan_type")),
		Search:   strings.TrimSpace(q.Get("search")),
	}

	clients, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list clients", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to fetch clients"))
		return
	}

	log.Debug("clients listed", slog.Int("count", len(clients)))
	response.Render(w, r, http.StatusOK, response.List(clients, len(clients)))
}
