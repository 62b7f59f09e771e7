// Package remove реализует HTTP-обработчик удаления клиента.
package remove

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
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// Handler обрабатывает удаление клиента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс удаления клиента.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление клиента
// @Description Платежи и история удаляются каскадно.
// @Tags Clients
// @Produce  json
// @Param id path string true "UUID клиента"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.remove"
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

	err := h.service.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		response.Render(w, r, http.StatusNotFound, response.Error("Client not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete client", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to delete client"))
		return
	}

	log.Info("client deleted", slog.String("client_id", id))
	response.Render(w, r, http.StatusOK, response.OKWithMessage("Client deleted successfully", nil))
}
