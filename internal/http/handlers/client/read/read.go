// Package read реализует HTTP-обработчик карточки клиента.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// Handler отдаёт клиента вместе с платежами и историей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения карточки клиента.
type Service interface {
	Get(ctx context.Context, id string) (*models.ClientDetail, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка клиента
// @Description Клиент, его платежи (новые первыми) и история действий.
// @Tags Clients
// @Produce  json
// @Param id path string true "UUID клиента"
// @Success 200 {object} response.Response{data=models.ClientDetail}
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Info("invalid client id", slog.String("id", id))
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid client ID"))
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		response.Render(w, r, http.StatusNotFound, response.Error("Client not found"))
		return
	}
	if err != nil {
		log.Error("failed to get client", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to fetch client"))
		return
	}

	response.Render(w, r, http.StatusOK, response.OK(detail))
}
