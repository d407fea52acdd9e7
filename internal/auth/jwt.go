// Package auth issues and verifies the signed bearer tokens used for
// session authentication.
package auth

import (
	"time"

	"blog-service/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated identity inside the token.
type Claims struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	secret   []byte
	validity time.Duration
}

func NewService(secret string, validity time.Duration) *Service {
	return &Service{secret: []byte(secret), validity: validity}
}

// Issue signs a token encoding the user id and email with an expiration.
func (s *Service) Issue(userID int, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	return token.SignedString(s.secret)
}

// Verify validates signature and expiration and returns the decoded claims.
// Signature mismatch, malformed input and expiry are not distinguished:
// all surface as the same unauthorized error.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.Unauthorized("Invalid or expired token")
	}

	return claims, nil
}
