// Package auth mints and verifies the bearer tokens used by the store API.
// Tokens are stateless HS256 JWTs carrying the account email; they have no
// expiry claim and are never revoked server-side.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prestoapp/presto-server/internal/common"
)

// Claims carries the standard claim set plus the account email the token
// is bound to.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// IssueToken signs a token asserting the given email. The only registered
// claim set is IssuedAt; deliberately no ExpiresAt (see service contract:
// logout does not invalidate tokens and tokens do not expire).
func IssueToken(email string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// EmailFromToken verifies the signature and returns the email claim.
// Every failure mode (bad signature, malformed token, unexpected signing
// method, empty claim) folds into common.ErrInvalidToken.
func EmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Email, nil
}
