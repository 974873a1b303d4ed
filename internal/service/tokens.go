package service

import (
	"fmt"
	"time"

	"wiki_system/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 12 * time.Hour

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// TokenService signs session ids into HS256 bearer tokens.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenService(signingKey string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{signingKey: []byte(signingKey), ttl: ttl}
}

// GenerateToken returns a signed token for sessionID.
func (s *TokenService) GenerateToken(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	})
	return token.SignedString(s.signingKey)
}

// ParseToken verifies the token and returns the session id it carries.
func (s *TokenService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", models.ErrInvalidToken
	}

	return claims.SessionID, nil
}
