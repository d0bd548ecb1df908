// Package password реализует хеширование и проверку паролей на основе bcrypt.
//
// Соль генерируется bcrypt для каждого вызова и хранится внутри хеша,
// поэтому два хеша одного и того же пароля различаются. Стоимость (cost)
// настраивается, чтобы время проверки оставалось в пределах десятков миллисекунд.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost — стоимость bcrypt по умолчанию.
const DefaultCost = 10

// ErrMalformedHash возвращается, если сохранённый хеш не является bcrypt-хешем.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher хеширует пароли с заданной стоимостью.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. Стоимость должна лежать в диапазоне bcrypt.
func NewHasher(cost int) (*Hasher, error) {
	const op = "password.NewHasher"
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%s: cost %d out of range [%d, %d]", op, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Cost возвращает текущую стоимость хеширования.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash возвращает bcrypt-хеш пароля.
func (h *Hasher) Hash(plain string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хешем. Несовпадение не является ошибкой:
// возвращается false. Ошибка возможна только для повреждённого хеша.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	const op = "password.Verify"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %w", op, ErrMalformedHash, err)
	}
}
