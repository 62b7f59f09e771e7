// Package create реализует HTTP-обработчик создания клиента.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Handler обрабатывает создание клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс создания клиента.
type Service interface {
	Create(ctx context.Context, req models.CreateClientRequest) (*models.Client, error)
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
// @Summary Создание клиента
// @Description Дата окончания считается по тарифу. Вместе с клиентом записываются первый платёж и событие CREATED.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param request body models.CreateClientRequest true "Данные клиента"
// @Success 201 {object} response.Response{data=models.Client}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateClientRequest
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
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to create client"))
		return
	}

	client, err := h.service.Create(r.Context(), req)
	if errors.Is(err, models.ErrInvalidDate) {
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid start_date, expected YYYY-MM-DD"))
		return
	}
	if err != nil {
		log.Error("failed to create client", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to create client"))
		return
	}

	log.Info("client created", slog.String("client_id", client.ID), slog.String("plan_type", client.PlanType))
	response.Render(w, r, http.StatusCreated, response.OKWithMessage("Client created successfully", client))
}
