package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-admin/internal/models"
	"github.com/magabrotheeeer/gym-admin/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*models.AuthResult)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	result := &models.AuthResult{
		Token: "tok",
		Admin: models.AdminSummary{ID: "a-1", Email: "boss@gym.io", FullName: "Boss"},
	}

	tests := []struct {
		name           string
		requestBody    any
		mockResp       *models.AuthResult
		mockErr        error
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "boss@gym.io", Password: "secret123"},
			mockResp:       result,
			wantStatusCode: http.StatusOK,
			wantSuccess:    true,
			wantMessage:    "Login successful",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Invalid request body",
		},
		{
			name:           "missing password",
			requestBody:    Request{Email: "boss@gym.io"},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email and password are required",
		},
		{
			name:           "invalid credentials",
			requestBody:    Request{Email: "boss@gym.io", Password: "wrong"},
			mockErr:        fmt.Errorf("auth.Login: %w", auth.ErrInvalidCredentials),
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid credentials",
		},
		{
			name:           "storage error",
			requestBody:    Request{Email: "boss@gym.io", Password: "secret123"},
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "Login failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockResp != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				authMock.On("Login", mock.Anything, req.Email, req.Password).Return(tt.mockResp, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), authMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantSuccess, got["success"])
			assert.Equal(t, tt.wantMessage, got["message"])

			if tt.wantSuccess {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "tok", data["token"])
				admin := data["admin"].(map[string]any)
				assert.Equal(t, "a-1", admin["id"])
				assert.Equal(t, "Boss", admin["full_name"])
			} else {
				assert.Nil(t, got["data"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
