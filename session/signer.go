package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// signer signs and verifies the inner session JWT with a symmetric HMAC key.
type signer struct {
	secret []byte
}

func newSigner(secret []byte) *signer {
	return &signer{secret: secret}
}

func (s *signer) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(s.SigningMethod(), claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

func (s *signer) VerificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}

func (s *signer) SigningMethod() jwt.SigningMethod {
	return jwt.SigningMethodHS256
}
