// Package register реализует HTTP-обработчик регистрации администратора.
package register

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
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

// Request входные данные для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

// Handler обрабатывает регистрацию администраторов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс регистрации.
type Service interface {
	Register(ctx context.Context, email, password, fullName string) (*models.AuthResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация администратора
// @Description Создаёт администратора и сразу возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные администратора"
// @Success 201 {object} response.Response{data=models.AuthResult} "Администратор создан"
// @Failure 400 {object} response.ErrorResponse "Не все поля заполнены или email занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("All fields are required"))
		return
	}

	res, err := h.service.Register(r.Context(), req.Email, req.Password, req.FullName)
	if errors.Is(err, storage.ErrAdminExists) {
		log.Info("admin already exists", slog.String("email", req.Email))
		response.Render(w, r, http.StatusBadRequest, response.Error("Admin with this email already exists"))
		return
	}
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Registration failed"))
		return
	}

	log.Info("admin registered", slog.String("admin_id", res.Admin.ID))
	response.Render(w, r, http.StatusCreated, response.OKWithMessage("Admin registered successfully", res))
}
