package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// AssertionVerifier validates identity assertions signed by the
// authenticating proxy with a shared HS256 secret.
type AssertionVerifier struct {
	secret []byte
	leeway time.Duration
}

// NewAssertionVerifier builds a verifier. It returns nil when secret is empty,
// which disables assertion checking.
func NewAssertionVerifier(secret string) *AssertionVerifier {
	if secret == "" {
		return nil
	}
	return &AssertionVerifier{secret: []byte(secret), leeway: 30 * time.Second}
}

// Verify validates the token and returns the asserted identity from its subject.
func (v *AssertionVerifier) Verify(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, jwt.WithLeeway(v.leeway), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid assertion claims")
	}
	if claims.Subject == "" {
		return "", errors.New("assertion has no subject")
	}
	return claims.Subject, nil
}
