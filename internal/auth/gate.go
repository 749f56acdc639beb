// Package auth converts bearer credentials into verified user identities.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"devvault/internal/models"
	"devvault/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the validity window for issued tokens.
const TokenTTL = 7 * 24 * time.Hour

// Gate validates bearer tokens and resolves them to full user records.
// Every failure mode collapses to the same UNAUTHORIZED error so callers
// cannot distinguish which check failed.
type Gate struct {
	secret []byte
	users  repository.UserRepository
}

// NewGate returns a new Gate using the given HMAC secret and user lookup.
func NewGate(secret string, users repository.UserRepository) *Gate {
	return &Gate{secret: []byte(secret), users: users}
}

func unauthorized() error {
	return models.NewUnauthorizedError("Invalid or expired token")
}

// Authenticate verifies the token signature and expiry, then resolves the
// subject claim to a user. It has no side effects and is idempotent within
// the token's validity window.
func (g *Gate) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, unauthorized()
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, unauthorized()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, unauthorized()
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return nil, unauthorized()
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return nil, unauthorized()
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, unauthorized()
	}

	user, err := g.users.GetByID(ctx, uint(userID))
	if err != nil {
		// The account may have been deleted since the token was issued.
		return nil, unauthorized()
	}
	return user, nil
}

// IssueToken creates a signed JWT for the given user.
func (g *Gate) IssueToken(user *models.User) (string, error) {
	if len(g.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10), // Subject (user ID as string)
		"name": user.Name,                               // Display name (cached in token)
		"iss":  "devvault-api",                          // Issuer
		"aud":  "devvault-client",                       // Audience
		"exp":  now.Add(TokenTTL).Unix(),                // Expiration
		"iat":  now.Unix(),                              // Issued at
		"nbf":  now.Unix(),                              // Not before
		"jti":  generateJTI(),                           // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
