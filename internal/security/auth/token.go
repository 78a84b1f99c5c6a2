package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a session token. The console has a single implicit
// administrator actor, so the claims identify the operator, not a user record.
type Claims struct {
	OperatorID   string `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates session tokens for the shared-password
// gate.
type TokenManager struct {
	secret string
	issuer string
}

func NewTokenManager(secret, issuer string) *TokenManager {
	if secret == "" {
		secret = "change-me-in-production"
	}
	if issuer == "" {
		issuer = "orgadmin"
	}
	return &TokenManager{secret: secret, issuer: issuer}
}

// GenerateToken issues a session token with the given id, expiring after
// expiresIn. The session id lands in the registered ID claim so the gate can
// revoke it on logout.
func (tm *TokenManager) GenerateToken(sessionID, operatorID, operatorName string, expiresIn time.Duration) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id required")
	}
	now := time.Now()
	claims := Claims{
		OperatorID:   operatorID,
		OperatorName: operatorName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Issuer:    tm.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secret))
}

// ValidateToken parses and verifies a session token.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
