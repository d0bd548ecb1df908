// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/lib/jwt"
	"github.com/zadania-app/task-manager/internal/models"
	"github.com/zadania-app/task-manager/internal/storage"
)

const (
	// MinPasswordLength — минимальная длина пароля в символах.
	MinPasswordLength = 6
	// MaxPasswordBytes — предел bcrypt: более длинный пароль он не хеширует.
	MaxPasswordBytes = 72
)

// Сообщения для клиента.
const (
	MsgCredentialsRequired = "Login i hasło są wymagane"
	MsgPasswordTooShort    = "Hasło musi mieć co najmniej 6 znaków"
	MsgPasswordTooLong     = "Hasło może mieć najwyżej 72 bajty"
	MsgLoginTaken          = "Login jest już zajęty"
	MsgInvalidCredentials  = "Nieprawidłowy login lub hasło"
	MsgTokenRequired       = "Token dostępu wymagany"
	MsgInvalidToken        = "Nieprawidłowy token"
)

// UserRepository описывает контракт хранилища учётных записей.
type UserRepository interface {
	// CreateUser сохраняет пользователя. Занятый логин — storage.ErrUserExists.
	CreateUser(ctx context.Context, login, passwordHash string, role models.Role) (*models.User, error)

	// GetUserByLogin возвращает пользователя или storage.ErrUserNotFound.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenMaker выпускает и проверяет токены доступа.
type TokenMaker interface {
	Issue(identity jwt.Identity, ttl time.Duration) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

// AuthService отвечает за регистрацию, вход и проверку токенов.
type AuthService struct {
	users    UserRepository
	hasher   PasswordHasher
	tokens   TokenMaker
	tokenTTL time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenMaker, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register создает пользователя с ролью USER.
func (s *AuthService) Register(ctx context.Context, login, rawPassword string) (*models.User, error) {
	const op = "services.auth.Register"

	if login == "" || rawPassword == "" {
		return nil, apperr.Validation(MsgCredentialsRequired)
	}
	if utf8.RuneCountInString(rawPassword) < MinPasswordLength {
		return nil, apperr.Validation(MsgPasswordTooShort)
	}
	if len(rawPassword) > MaxPasswordBytes {
		return nil, apperr.Validation(MsgPasswordTooLong)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, login, hashed, models.RoleUser)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, apperr.New(apperr.ErrConflict, MsgLoginTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login проверяет пароль и выпускает токен доступа. Неизвестный логин
// и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, login, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	if login == "" || rawPassword == "" {
		return "", nil, apperr.Validation(MsgCredentialsRequired)
	}
	// Такой пароль не мог пройти регистрацию.
	if len(rawPassword) > MaxPasswordBytes {
		return "", nil, apperr.Validation(MsgInvalidCredentials)
	}

	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", nil, apperr.Validation(MsgInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.hasher.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", nil, apperr.Validation(MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(jwt.Identity{
		UserID: user.ID,
		Login:  user.Login,
		Role:   string(user.Role),
	}, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ValidateToken проверяет токен и возвращает его утверждения.
// Пустой токен — ErrUnauthorized, недействительный или истёкший — ErrForbidden.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, apperr.New(apperr.ErrUnauthorized, MsgTokenRequired)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.New(apperr.ErrForbidden, MsgInvalidToken)
	}
	return claims, nil
}
