package session

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	signingKeyInfo    = "storefront session signing key"
	encryptionKeyInfo = "storefront session encryption key"
)

// claims is the wire form of a Token inside the signed JWT.
type claims struct {
	Token
	jwt.RegisteredClaims
}

// Codec seals Tokens into opaque strings and opens them again. A sealed token is an
// HS256 JWT encrypted with XChaCha20-Poly1305; both keys are derived from one secret.
type Codec struct {
	signer *signer
	aead   cipher.AEAD
	maxAge time.Duration
	now    func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithNowTime overrides the clock used for iat/exp.
func WithNowTime(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec derives the signing and encryption keys from secret.
func NewCodec(secret string, maxAge time.Duration, options ...CodecOption) (*Codec, error) {
	if secret == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[NewCodec] secret is required")
	}
	if maxAge <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[NewCodec] max age must be positive")
	}

	signingKey, err := deriveKey(secret, signingKeyInfo, 32)
	if err != nil {
		return nil, err
	}
	encryptionKey, err := deriveKey(secret, encryptionKeyInfo, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("[NewCodec] cipher: %w", err)
	}

	c := &Codec{
		signer: newSigner(signingKey),
		aead:   aead,
		maxAge: maxAge,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("[deriveKey] %s: %w", info, err)
	}
	return key, nil
}

// MaxAge is how long a sealed token stays valid.
func (c *Codec) MaxAge() time.Duration {
	return c.maxAge
}

// Seal signs and encrypts tok, stamping fresh iat, exp and jti claims.
func (c *Codec) Seal(tok Token) (string, error) {
	now := c.now()
	cl := claims{
		Token: tok,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tok.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := c.signer.Sign(cl)
	if err != nil {
		return "", fmt.Errorf("[Codec Seal] %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(signed)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("[Codec Seal] nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(signed), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts and verifies a sealed token. Expired tokens return ErrTokenExpired,
// anything else that fails to open returns ErrInvalidToken.
func (c *Codec) Open(sealed string) (Token, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return Token{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Codec Open] decode")
	}
	if len(raw) < c.aead.NonceSize()+c.aead.Overhead() {
		return Token{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Codec Open] token too short")
	}

	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Token{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Codec Open] decrypt")
	}

	var cl claims
	_, err = jwt.ParseWithClaims(string(plain), &cl, c.signer.VerificationKey,
		jwt.WithValidMethods([]string{c.signer.SigningMethod().Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Token{}, apperrors.Wrapf(apperrors.ErrTokenExpired, "[Codec Open]")
	}
	if err != nil {
		return Token{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Codec Open] %v", err)
	}

	tok := cl.Token
	tok.Expires = cl.ExpiresAt.Time
	return tok, nil
}
