package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pmn-sn/datahub/pkg/idx"
)

var (
	// ErrInvalidToken reports a token that failed signature or structural checks.
	ErrInvalidToken = errors.New("jwtx: invalid token")
	// ErrExpiredToken reports a structurally valid but expired token.
	ErrExpiredToken = errors.New("jwtx: token expired")
)

// DefaultSessionTTL is how long an issued session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Signer mints HS256 session tokens from a single shared secret.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Sign fills in the registered claims (issuer, jti, iat, exp) and returns the
// signed compact token.
func (s *Signer) Sign(c Claims) (string, error) {
	now := time.Now()

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	c.Issuer = s.Issuer
	c.ID = idx.New().String()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.Secret)
}

// Verifier validates tokens produced by Signer.
type Verifier struct {
	Secret []byte
	Issuer string
}

// Verify parses and validates raw, returning its claims.
func (v *Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return v.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
