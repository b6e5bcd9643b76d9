// Package auth implements bearer-token issuance and verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator signs and verifies HS256 bearer tokens. Expiry is the only
// lifecycle bound: there is no refresh mechanism and no revocation list.
type Authenticator struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthenticator creates an authenticator signing with secret. Tokens
// expire tokenTTL after issuance.
func NewAuthenticator(secret string, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// IssueToken signs the identity claim. The claim is embedded as-is, with an
// exp registered claim added.
func (a *Authenticator) IssueToken(claim map[string]interface{}) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range claim {
		claims[k] = v
	}
	claims["exp"] = jwt.NewNumericDate(time.Now().Add(a.tokenTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiration and returns the embedded
// identity claim.
func (a *Authenticator) VerifyToken(_ context.Context, tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims type")
	}

	email, _ := claims["email"].(string)
	return &domain.TokenClaims{Email: email, Raw: claims}, nil
}
