// Package auth provides the admin credentials and session token handling for
// the portfolio: bcrypt password hashing and the signed token that marks a
// browser session as logged in.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned when a session token cannot be trusted
var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims identifies the logged in admin
type SessionClaims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a token for the given user that expires after lifetime
func IssueSessionToken(userID uint, username, secret, issuer string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns its claims
func ParseSessionToken(tokenString, secret, issuer string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
