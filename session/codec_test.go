package session_test

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewCodec_Validation(t *testing.T) {
	_, err := session.NewCodec("", time.Hour)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)

	_, err = session.NewCodec(testSecret, 0)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestCodec_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec, err := session.NewCodec(testSecret, time.Hour, session.WithNowTime(func() time.Time { return now }))
	require.NoError(t, err)

	tok := sampleToken()
	tok.Expires = time.Time{}

	sealed, err := codec.Seal(tok)
	require.NoError(t, err)
	require.NotContains(t, sealed, "T0")
	require.NotContains(t, sealed, "old@example.com")

	opened, err := codec.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour), opened.Expires.UTC())

	opened.Expires = time.Time{}
	require.Equal(t, tok, opened)
}

func TestCodec_SealIsRandomised(t *testing.T) {
	codec, err := session.NewCodec(testSecret, time.Hour)
	require.NoError(t, err)

	a, err := codec.Seal(sampleToken())
	require.NoError(t, err)
	b, err := codec.Seal(sampleToken())
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCodec_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec, err := session.NewCodec(testSecret, time.Minute, session.WithNowTime(func() time.Time { return now }))
	require.NoError(t, err)

	sealed, err := codec.Seal(sampleToken())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = codec.Open(sealed)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestCodec_RejectsTamperedAndForeignTokens(t *testing.T) {
	codec, err := session.NewCodec(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := session.NewCodec(strings.Repeat("z", 32), time.Hour)
	require.NoError(t, err)

	sealed, err := codec.Seal(sampleToken())
	require.NoError(t, err)

	_, err = other.Open(sealed)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)

	flipped := []byte(sealed)
	mid := len(flipped) / 2
	if flipped[mid] == 'A' {
		flipped[mid] = 'B'
	} else {
		flipped[mid] = 'A'
	}
	_, err = codec.Open(string(flipped))
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = codec.Open("not*base64")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = codec.Open("")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
