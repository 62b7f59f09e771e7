package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// Mock for TokenParser
type TokenParserMock struct {
	mock.Mock
}

func (m *TokenParserMock) ParseToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
		wantBody       string
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"success":false,"message":"No token provided"}`,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"success":false,"message":"No token provided"}`,
		},
		{
			name:           "token rejected",
			authHeader:     "Bearer token",
			mockErr:        errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"success":false,"message":"Invalid or expired token"}`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			mockClaims: &jwt.CustomClaims{
				AdminID:  "a-1",
				Email:    "boss@gym.io",
				FullName: "Boss",
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(TokenParserMock)
			if tt.mockClaims != nil || tt.mockErr != nil {
				parser.On("ParseToken", tt.authHeader[len("Bearer "):]).Return(tt.mockClaims, tt.mockErr).Once()
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				id, ok := middlewarectx.AdminIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "a-1", id)
				assert.Equal(t, "boss@gym.io", r.Context().Value(middlewarectx.AdminEmail))
				assert.Equal(t, "Boss", r.Context().Value(middlewarectx.AdminName))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(parser, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			parser.AssertExpectations(t)
		})
	}
}

func TestJWTMiddleware_RealToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key", time.Minute)

	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = middlewarectx.AdminIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	token, err := maker.GenerateToken(models.Admin{ID: "a-42", Email: "x@gym.io"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middlewarectx.JWTMiddleware(maker, newNoopLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a-42", gotID)
}

func TestAdminIDFromContext_Missing(t *testing.T) {
	_, ok := middlewarectx.AdminIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), middlewarectx.AdminID, "")
	_, ok = middlewarectx.AdminIDFromContext(ctx)
	assert.False(t, ok)
}
