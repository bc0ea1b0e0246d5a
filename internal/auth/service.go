package auth

import (
	"errors"
	"fmt"
	"time"

	"solarsmart/internal/model"
)

// SessionCookie carries the admin token for the browser panel.
const SessionCookie = "solarsmart_admin"

// Service authenticates the single admin account.
type Service struct {
	passwordHash string
	tokens       *Tokens
}

// NewService uses hash when set, otherwise hashes the plain password once.
func NewService(hash, password string, tokens *Tokens) (*Service, error) {
	if tokens == nil {
		return nil, errors.New("tokens are required")
	}
	if hash == "" {
		if password == "" {
			return nil, errors.New("an admin password or password hash is required")
		}
		h, err := HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = h
	}
	return &Service{passwordHash: hash, tokens: tokens}, nil
}

// Login exchanges the admin password for a session token.
func (s *Service) Login(password string) (string, time.Time, error) {
	if !VerifyPassword(password, s.passwordHash) {
		return "", time.Time{}, fmt.Errorf("wrong password: %w", model.ErrUnauthorized)
	}
	return s.tokens.Issue()
}

func (s *Service) Authenticate(token string) error {
	return s.tokens.Verify(token)
}
