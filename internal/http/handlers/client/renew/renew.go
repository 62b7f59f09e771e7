// Package renew реализует HTTP-обработчик продления абонемента.
package renew

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// Handler обрабатывает продление абонемента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс продления.
type Service interface {
	Renew(ctx context.Context, id string, req models.RenewRequest) (*models.Client, error)
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
// @Summary Продление абонемента
// @Description Абонемент начинается сегодня, статус становится Active/Paid, записывается платёж продления.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param id path string true "UUID клиента"
// @Param request body models.RenewRequest true "Новый тариф"
// @Success 200 {object} response.Response{data=models.Client}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.renew"
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

	var req models.RenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			log.Info("validation failed", sl.Err(err))
			response.Render(w, r, http.StatusBadRequest, response.ValidationError(validateErr))
			return
		}
		log.Error("failed to validate request", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to renew plan"))
		return
	}

	renewed, err := h.service.Renew(r.Context(), id, req)
	if errors.Is(err, storage.ErrNotFound) {
		response.Render(w, r, http.StatusNotFound, response.Error("Client not found"))
		return
	}
	if err != nil {
		log.Error("failed to renew plan", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to renew plan"))
		return
	}

	log.Info("plan renewed", slog.String("client_id", id), slog.String("plan_type", req.PlanType))
	response.Render(w, r, http.StatusOK, response.OKWithMessage("Plan renewed successfully", renewed))
}
