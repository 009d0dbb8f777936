package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ModeratorRole = "moderator"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 12 * time.Hour
)

var ErrTokensDisabled = errors.New("token authentication is not configured")

// TokenIssuer signs and validates HS256 moderator tokens. A zero secret
// disables it: nothing is issued and nothing validates.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

func (t *TokenIssuer) Enabled() bool {
	return t != nil && len(t.secret) > 0
}

func (t *TokenIssuer) GenerateTokens(role string) (string, string, error) {
	if !t.Enabled() {
		return "", "", ErrTokensDisabled
	}

	access, err := t.sign(role, "access", accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := t.sign(role, "refresh", refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenIssuer) sign(role, kind string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_role": role,
		"kind":      kind,
		"exp":       t.now().Add(ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// ValidateToken returns the claims of a valid access token.
func (t *TokenIssuer) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	return t.parse(tokenString, "access")
}

func (t *TokenIssuer) RefreshTokens(oldRefreshToken string) (string, string, error) {
	claims, err := t.parse(oldRefreshToken, "refresh")
	if err != nil {
		return "", "", fmt.Errorf("error parsing refresh token: %w", err)
	}
	role, _ := claims["user_role"].(string)
	return t.GenerateTokens(role)
}

func (t *TokenIssuer) parse(tokenString, kind string) (jwt.MapClaims, error) {
	if !t.Enabled() {
		return nil, ErrTokensDisabled
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if got, _ := claims["kind"].(string); got != kind {
		return nil, fmt.Errorf("expected %s token", kind)
	}
	return claims, nil
}
