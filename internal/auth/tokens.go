package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	biderrors "bidwriter/internal/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenManager issues and validates HS256 bearer tokens. Access tokens gate
// the API; refresh tokens are accepted only by the refresh endpoint.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager signing with secret.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess mints a short-lived access token for username.
func (m *TokenManager) IssueAccess(username string) (string, error) {
	return m.issue(username, tokenTypeAccess, m.accessTTL)
}

// IssueRefresh mints a refresh token for username.
func (m *TokenManager) IssueRefresh(username string) (string, error) {
	return m.issue(username, tokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) issue(username, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"typ": tokenType,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateAccess checks an access token and returns its subject.
func (m *TokenManager) ValidateAccess(tokenString string) (string, error) {
	return m.validate(tokenString, tokenTypeAccess)
}

// ValidateRefresh checks a refresh token and returns its subject.
func (m *TokenManager) ValidateRefresh(tokenString string) (string, error) {
	return m.validate(tokenString, tokenTypeRefresh)
}

func (m *TokenManager) validate(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", biderrors.Unauthenticated("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", biderrors.Unauthenticated("invalid or expired token")
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return "", biderrors.Unauthenticated("wrong token type")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", biderrors.Unauthenticated("token has no subject")
	}
	return sub, nil
}
