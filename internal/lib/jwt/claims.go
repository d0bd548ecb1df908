package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity — данные пользователя, которые попадают в токен.
type Identity struct {
	UserID int64
	Login  string
	Role   string
}

// Claims описывает содержимое токена: идентичность пользователя
// и стандартные поля JWT (exp, iat, sub).
type Claims struct {
	UserID int64  `json:"id"`
	Login  string `json:"login"`
	Role   string `json:"rola"`
	jwt.RegisteredClaims
}

// Identity возвращает идентичность, извлечённую из claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID: c.UserID,
		Login:  c.Login,
		Role:   c.Role,
	}
}
