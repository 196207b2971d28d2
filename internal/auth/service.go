package auth

import (
	"crypto/subtle"

	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/logging"
)

// Service authenticates against the configured username/password table and
// issues token pairs.
type Service struct {
	users  map[string]string
	tokens *TokenManager
	logger logging.Logger
}

// NewService builds a credential service over the given user table.
func NewService(users map[string]string, tokens *TokenManager, logger logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logging.OrNop(logger),
	}
}

// TokenPair is what a successful login yields.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *Service) Login(username, password string) (TokenPair, error) {
	expected, ok := s.users[username]
	if !ok || subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		s.logger.Warn("rejected login for user %q", username)
		return TokenPair{}, biderrors.Unauthenticated("Invalid credentials")
	}

	access, err := s.tokens.IssueAccess(username)
	if err != nil {
		return TokenPair{}, biderrors.Internal(err)
	}
	refresh, err := s.tokens.IssueRefresh(username)
	if err != nil {
		return TokenPair{}, biderrors.Internal(err)
	}
	s.logger.Info("issued token pair for user %s", username)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token and issues a fresh access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	username, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	access, err := s.tokens.IssueAccess(username)
	if err != nil {
		return "", biderrors.Internal(err)
	}
	return access, nil
}
