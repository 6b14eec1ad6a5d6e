package service

import (
	"errors"
	"finance-tracker/logger"
)

var ErrInvalidLogin = errors.New("invalid login")

// Verifier checks a username/password pair.
type Verifier interface {
	Verify(username, password string) bool
}

// AuthService logs users in against the credential store and issues tokens.
type AuthService struct {
	credentials Verifier
	tokens      *TokenService
}

func NewAuthService(credentials Verifier, tokens *TokenService) *AuthService {
	return &AuthService{credentials: credentials, tokens: tokens}
}

// Login returns an access token for valid credentials, ErrInvalidLogin otherwise.
func (s *AuthService) Login(username, password string) (string, error) {
	log := logger.Log.WithField("user", username)

	if !s.credentials.Verify(username, password) {
		log.Warn("Login rejected")
		return "", ErrInvalidLogin
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", err
	}

	log.Info("Login successful")
	return token, nil
}
