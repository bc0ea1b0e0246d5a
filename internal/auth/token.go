package auth

import (
	"errors"
	"fmt"
	"time"

	"solarsmart/internal/model"

	"github.com/golang-jwt/jwt"
)

const (
	tokenIssuer  = "solarsmart"
	adminSubject = "admin"
)

// Tokens issues and checks HS256 admin session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be > 0")
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue returns a signed token and its expiry.
func (t *Tokens) Issue() (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := jwt.StandardClaims{
		Issuer:    tokenIssuer,
		Subject:   adminSubject,
		IssuedAt:  now.Unix(),
		ExpiresAt: exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm, issuer, subject and expiry.
func (t *Tokens) Verify(raw string) error {
	if raw == "" {
		return fmt.Errorf("missing token: %w", model.ErrUnauthorized)
	}
	var claims jwt.StandardClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return fmt.Errorf("invalid token: %w", model.ErrUnauthorized)
	}
	if !claims.VerifyIssuer(tokenIssuer, true) || claims.Subject != adminSubject {
		return fmt.Errorf("token not issued for admin: %w", model.ErrUnauthorized)
	}
	return nil
}
