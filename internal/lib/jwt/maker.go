// Package jwt выпускает и проверяет подписанные (HS256) токены доступа.
//
// Токен самодостаточен: сервер не хранит сессий, валидность определяется
// подписью и временем истечения. Отзыва токенов нет, токен действует до exp.
// Смена секрета делает недействительными все выпущенные токены.
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken — токен повреждён, подписан другим ключом или другим алгоритмом.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken — подпись верна, но время жизни истекло.
	ErrExpiredToken = errors.New("token has expired")
	// ErrEmptySecret — попытка создать Maker без секрета.
	ErrEmptySecret = errors.New("jwt secret must not be empty")
)

// Maker выпускает и проверяет токены одним секретным ключом.
type Maker struct {
	secret []byte
	now    func() time.Time
}

// NewMaker создаёт Maker. Пустой секрет недопустим: подпись не отключается никогда.
func NewMaker(secret string) (*Maker, error) {
	const op = "jwt.NewMaker"
	if secret == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}
	return &Maker{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Issue выпускает токен для identity, истекающий через ttl.
func (m *Maker) Issue(identity Identity, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"
	now := m.now()
	claims := Claims{
		UserID: identity.UserID,
		Login:  identity.Login,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена и возвращает его claims.
// Ошибка всегда оборачивает ErrInvalidToken или ErrExpiredToken.
func (m *Maker) Verify(tokenStr string) (*Claims, error) {
	const op = "jwt.Verify"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpiredToken)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
