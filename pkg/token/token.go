// Package token issues and verifies the stateless bearer tokens used by
// the API. Tokens are HS256 JWTs carrying the user id and a fixed-window
// expiry; there is no server-side token table and no revocation.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/taskloop/backend/domain"
)

// DefaultTTL is the token lifetime when the config does not override it.
const DefaultTTL = time.Hour

type claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Manager signs and validates tokens with a shared secret injected at
// construction time.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager. The secret must be non-empty.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, domain.NewError(domain.ErrCodeInternal, "token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue mints a signed token bound to userID, expiring after the
// configured TTL.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Verify validates signature, structure and expiry and returns the user
// id the token was issued for. Only HMAC-signed tokens are accepted; no
// unsigned field is trusted.
func (m *Manager) Verify(tokenString string) (string, error) {
	parsed := &claims{}
	tok, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid || parsed.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return parsed.UserID, nil
}
