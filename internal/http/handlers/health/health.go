// Package health реализует проверку доступности API.
package health

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/gym-admin/internal/http/response"
)

// Status данные ответа проверки доступности.
type Status struct {
	Timestamp time.Time `json:"timestamp"`
}

// Handler отвечает, что сервис запущен.
type Handler struct {
	now func() time.Time
}

// New создает Handler. nil now означает текущее время в UTC.
func New(now func() time.Time) *Handler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Handler{now: now}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response{data=Status}
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.Render(w, r, http.StatusOK,
		response.OKWithMessage("Gym Management API is running", Status{Timestamp: h.now()}))
}
