// Package login реализует HTTP-обработчик входа администратора.
//
// Handler декодирует email и пароль, проверяет их через сервис аутентификации
// и возвращает JWT вместе с публичными данными администратора.
package login

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
	"github.com/magabrotheeeer/gym-admin/internal/services/auth"
)

// Request структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
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
// @Summary Вход администратора
// @Description Проверяет email и пароль. Возвращает JWT и данные администратора.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные администратора"
// @Success 200 {object} response.Response{data=models.AuthResult} "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Не заполнены email или пароль"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
		response.Render(w, r, http.StatusBadRequest, response.Error("Email and password are required"))
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("email", req.Email))
		response.Render(w, r, http.StatusUnauthorized, response.Error("Invalid credentials"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.Error("Login failed"))
		return
	}

	log.Info("login success", slog.String("admin_id", res.Admin.ID))
	response.Render(w, r, http.StatusOK, response.OKWithMessage("Login successful", res))
}
