// Package jwt реализует выпуск и проверку подписанных сессионных токенов (HS256).
//
// Токен не хранится на сервере: в нем лежат идентификатор аккаунта (sub), роль,
// время выпуска, срок действия и идентификатор токена (jti) для отзыва.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpired подпись верна, но срок действия истек.
	ErrExpired = errors.New("token expired")
	// ErrInvalidSignature подпись не совпадает или токен поврежден.
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Claims данные, которые хранятся в токене.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AccountID возвращает идентификатор владельца токена.
func (c *Claims) AccountID() string {
	return c.Subject
}

// Maker выпускает и проверяет токены одним секретом.
type Maker struct {
	secretKey []byte
	now       func() time.Time
}

// NewMaker создаёт Maker с секретом из конфигурации.
func NewMaker(secretKey string) *Maker {
	return &Maker{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
}

// WithClock подменяет источник времени. Используется в тестах.
func (m *Maker) WithClock(now func() time.Time) *Maker {
	m.now = now
	return m
}

// Issue подписывает токен для аккаунта accountID с ролью role, живущий ttl.
func (m *Maker) Issue(accountID, role string, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"

	issuedAt := m.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия.
//
// Подпись проверяется раньше срока, поэтому поддельный токен никогда не
// возвращает ErrExpired.
func (m *Maker) Verify(tokenStr string) (*Claims, error) {
	const op = "jwt.Verify"

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(_ *jwt.Token) (any, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpired)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidSignature, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	return claims, nil
}
