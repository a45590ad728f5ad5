// Package jwt выпускает и проверяет токены сессии консоли.
//
// Токен подписывается HS256 и несёт идентичность вошедшего пользователя.
// Каждый выпуск получает уникальный jti, поэтому повторный вход даёт новый токен.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Maker описывает выпуск и разбор токенов сессии.
type Maker interface {
	// Issue выпускает токен для идентичности.
	Issue(id models.Identity) (string, error)
	// Parse проверяет подпись и срок действия и возвращает claims.
	Parse(token string) (*Claims, error)
}

// Claims данные, которые хранятся в токене сессии.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity восстанавливает идентичность из claims.
func (c *Claims) Identity() models.Identity {
	return models.Identity{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// HMACMaker подписывает токены общим секретом.
type HMACMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewMaker создаёт HMACMaker. Нулевой ttl означает токены без срока действия.
func NewMaker(secret string, ttl time.Duration) *HMACMaker {
	return &HMACMaker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue выпускает токен для идентичности.
func (m *HMACMaker) Issue(id models.Identity) (string, error) {
	const op = "jwt.Issue"
	now := m.now()
	claims := Claims{
		UserID: id.ID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  id.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Parse проверяет подпись и срок действия токена.
func (m *HMACMaker) Parse(token string) (*Claims, error) {
	const op = "jwt.Parse"
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%s: %w", op, errors.New("invalid token"))
	}
	return claims, nil
}
