package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenSigner issues and verifies signed bearer tokens bound to an account ID
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner creates a token signer. ttl is the validity lifetime of
// issued tokens.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: ttl}
}

// Sign issues an HS256 token with the account ID as subject
func (s *TokenSigner) Sign(accountID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(accountID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a token and returns the account ID it is bound to
func (s *TokenSigner) Verify(tokenString string) (int64, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return 0, ErrInvalidToken
	}

	return accountID, nil
}
