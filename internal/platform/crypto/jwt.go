package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySecret is returned when asked to sign with an empty key.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

type Claims struct {
	Sub  string `json:"sub"`  // operator name
	Role string `json:"role"` // ADMIN grants catalog writes
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for subject with the given role and
// lifetime. It returns the token and its id.
func GenerateToken(secret, subject, role string, ttl time.Duration) (string, string, error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}
	jti := uuid.NewString()
	now := time.Now()

	c := Claims{
		Sub:  subject,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return tokenStr, jti, nil
}

// ParseToken verifies tokenStr against secret and returns its claims. Only
// HS256 tokens are accepted.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
