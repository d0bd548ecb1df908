package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zadania-app/task-manager/internal/http/middlewarectx"
	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/lib/jwt"
)

// Мок сервиса проверки токена
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*jwt.Claims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc", want: "abc"},
		{header: "Bearer", want: ""},
		{header: "Bearer ", want: ""},
		{header: "Basic dXNlcjpwYXNz", want: ""},
		{header: "abc.def.ghi", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, middlewarectx.BearerToken(tt.header))
		})
	}
}

func TestJWTMiddleware(t *testing.T) {
	claims := &jwt.Claims{UserID: 1, Login: "jan", Role: "USER"}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantBody       string
		wantCalled     bool
	}{
		{
			name:       "missing Authorization header",
			authHeader: "",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "").
					Return(nil, apperr.New(apperr.ErrUnauthorized, "Token dostępu wymagany")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"error":"Token dostępu wymagany"}`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer broken",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "broken").
					Return(nil, apperr.New(apperr.ErrForbidden, "Nieprawidłowy token")).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantBody:       `{"error":"Nieprawidłowy token"}`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "good").Return(claims, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				got, ok := middlewarectx.ClaimsFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, claims, got)
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/zadania", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			authMock.AssertExpectations(t)
		})
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	_, ok := middlewarectx.ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
