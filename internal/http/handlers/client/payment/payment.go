// Package payment реализует HTTP-обработчик регистрации платежа клиента.
package payment

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

// Handler обрабатывает добавление платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс добавления платежа.
type Service interface {
	AddPayment(ctx context.Context, id string, req models.PaymentRequest) (*models.Payment, error)
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
// @Summary Платёж клиента
// @Description Записывает платёж и отмечает абонемент оплаченным. Без payment_date используется сегодняшняя дата.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param id path string true "UUID клиента"
// @Param request body models.PaymentRequest true "Платёж"
// @Success 201 {object} response.Response{data=models.Payment}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.payment"
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

	var req models.PaymentRequest
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
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to record payment"))
		return
	}

	payment, err := h.service.AddPayment(r.Context(), id, req)
	switch {
	case errors.Is(err, models.ErrInvalidDate):
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid payment_date, expected YYYY-MM-DD"))
		return
	case errors.Is(err, storage.ErrNotFound):
		response.Render(w, r, http.StatusNotFound, response.Error("Client not found"))
		return
	case err != nil:
		log.Error("failed to add payment", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Failed to record payment"))
		return
	}

	log.Info("payment added", slog.String("client_id", id), slog.String("payment_id", payment.ID))
	response.Render(w, r, http.StatusCreated, response.OKWithMessage("Payment recorded successfully", payment))
}
