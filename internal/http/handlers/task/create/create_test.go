package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	args := m.Called(ctx, fields)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func ptr[T any](v T) *T { return &v }

func TestCreateHandler_ServeHTTP(t *testing.T) {
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "created with all fields",
			body: `{"tytul":"Zakupy","opis":"Mleko","termin":"2025-03-14","priorytet":"2","status":"todo"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(f models.TaskFields) bool {
					return f.Title == "Zakupy" && *f.Description == "Mleko" && f.DueDate.Equal(due) &&
						*f.Priority == 2 && *f.Status == "todo"
				})).Return(&models.Task{
					ID: 12, Title: "Zakupy", Description: ptr("Mleko"), DueDate: &due,
					Priority: ptr(2), Status: ptr("todo"),
				}, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantBody: `{"message":"Zadanie utworzone pomyślnie","zadanieId":12,` +
				`"zadanie":{"id":12,"tytul":"Zakupy","opis":"Mleko","termin":"2025-03-14","priorytet":2,"status":"todo"}}`,
		},
		{
			name: "optional fields absent",
			body: `{"tytul":"Tylko tytuł","termin":"","priorytet":""}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, models.TaskFields{Title: "Tylko tytuł"}).
					Return(&models.Task{ID: 1, Title: "Tylko tytuł"}, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantBody: `{"message":"Zadanie utworzone pomyślnie","zadanieId":1,` +
				`"zadanie":{"id":1,"tytul":"Tylko tytuł","opis":null,"termin":null,"priorytet":null,"status":null}}`,
		},
		{
			name: "missing title",
			body: `{"opis":"bez tytułu"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperr.Validation("Tytuł jest wymagany.")).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Tytuł jest wymagany."}`,
		},
		{
			name:           "bad due date",
			body:           `{"tytul":"Zakupy","termin":"14.03.2025"}`,
			setupMock:      func(m *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Pole termin musi mieć format RRRR-MM-DD"}`,
		},
		{
			name:           "bad priority",
			body:           `{"tytul":"Zakupy","priorytet":"wysoki"}`,
			setupMock:      func(m *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Nieprawidłowe dane żądania"}`,
		},
		{
			name: "storage failure",
			body: `{"tytul":"Zakupy"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"error":"Wewnętrzny błąd serwera"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(ServiceMock)
			tt.setupMock(mockService)

			h := New(newNoopLogger(), mockService)
			req := httptest.NewRequest(http.MethodPost, "/zadania", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
