// Package middlewarectx содержит HTTP middleware сервиса: проверку токена
// доступа (Auth Gate) и сбор метрик запросов.
//
// JWTMiddleware достаёт токен из заголовка Authorization, проверяет его
// и кладёт утверждения токена в контекст запроса. Хранилище пользователей
// не используется: роль и логин берутся из токена.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/jwt"
	"github.com/zadania-app/task-manager/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ClaimsKey — ключ утверждений токена в контексте.
const ClaimsKey Key = "claims"

// Service проверяет токен доступа. Пустой токен — ErrUnauthorized,
// недействительный — ErrForbidden.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// BearerToken возвращает токен из значения заголовка "Bearer <token>".
// Для отсутствующего заголовка или другой схемы возвращается пустая строка.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// JWTMiddleware возвращает middleware, пропускающий дальше только запросы
// с действительным токеном. Без токена ответ 401, с недействительным — 403.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := BearerToken(r.Header.Get("Authorization"))
			claims, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				log.Warn("request rejected by auth gate", sl.Err(err))
				response.FromError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext возвращает утверждения токена, положенные JWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}
