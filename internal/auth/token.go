package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Claims are the identity claims carried by the signed token. The token is
// short-lived; grants are never embedded, only the role reference, so the
// entitlement store stays the single source of truth at decision time.
type Claims struct {
	Email   string         `json:"email"`
	RoleID  int64          `json:"roleId"`
	Country shared.Country `json:"country"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 identity tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (tm *TokenManager) Issue(user *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email:   user.Email,
		RoleID:  user.RoleID,
		Country: user.Country,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   jwtSubject(user.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token, returning the resolved principal.
func (tm *TokenManager) Verify(raw string) (*shared.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, shared.ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, shared.ErrInvalidToken
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	return &shared.Principal{
		ID:      userID,
		Email:   claims.Email,
		RoleID:  claims.RoleID,
		Country: claims.Country,
	}, nil
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

func jwtSubject(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func parseSubject(sub string) (int64, error) {
	return strconv.ParseInt(sub, 10, 64)
}
