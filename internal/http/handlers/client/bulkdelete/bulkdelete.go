// Package bulkdelete реализует HTTP-обработчик массового удаления клиентов.
package bulkdelete

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Handler обрабатывает массовое удаление.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс массового удаления.
type Service interface {
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Массовое удаление клиентов
// @Description Удаляет всех перечисленных клиентов. Несуществующие id пропускаются.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param request body models.BulkDeleteRequest true "Список UUID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Пустой или некорректный список"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients/bulk-delete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.bulkdelete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("invalid client ids", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid client IDs"))
		return
	}

	n, err := h.service.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		log.Error("failed to delete clients", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to delete clients"))
		return
	}

	log.Info("clients deleted", slog.Int("requested", len(req.IDs)), slog.Int("deleted", n))
	response.Render(w, r, http.StatusOK,
		response.OKWithMessage(fmt.Sprintf("%d clients deleted successfully", n), nil))
}
