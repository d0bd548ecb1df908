package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, login, password string) (string, *models.User, error) {
	args := m.Called(ctx, login, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "valid login",
			body: `{"login":"jan","password":"tajne123"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "jan", "tajne123").
					Return("tok", &models.User{ID: 1, Login: "jan", Role: models.RoleUser}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"message":"Logowanie udane","token":"tok","user":{"id":1,"login":"jan","rola":"USER"}}`,
		},
		{
			name: "invalid credentials",
			body: `{"login":"jan","password":"zle-haslo"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "jan", "zle-haslo").
					Return("", nil, apperr.Validation("Nieprawidłowy login lub hasło")).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Nieprawidłowy login lub hasło"}`,
		},
		{
			name: "empty body",
			body: ``,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "", "").
					Return("", nil, apperr.Validation("Login i hasło są wymagane")).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Login i hasło są wymagane"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
