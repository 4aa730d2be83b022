package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundtrip(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner()
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	now := time.Now()
	claims := NewAccessClaims("alice@example.com", []string{"user"}, time.Minute, "lantern", now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := signer.Verifier("lantern").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Subject)
	require.Equal(t, []string{"user"}, got.Roles)
	require.True(t, got.HasRole("user"))
	require.False(t, got.HasRole("admin"))
	require.NotEmpty(t, got.ID) // jti
	require.WithinDuration(t, now.Add(time.Minute), got.ExpiresAt.Time, time.Second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner()
	require.NoError(t, err)

	past := time.Now().Add(-10 * time.Minute)
	token, err := signer.Sign(NewAccessClaims("a@example.com", nil, time.Minute, "lantern", past))
	require.NoError(t, err)

	_, err = signer.Verifier("lantern").Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner()
	require.NoError(t, err)

	token, err := signer.Sign(NewAccessClaims("a@example.com", nil, time.Minute, "someone-else", time.Now()))
	require.NoError(t, err)

	_, err = signer.Verifier("lantern").Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner()
	require.NoError(t, err)
	other, err := GenerateSigner()
	require.NoError(t, err)

	token, err := signer.Sign(NewAccessClaims("a@example.com", nil, time.Minute, "lantern", time.Now()))
	require.NoError(t, err)

	_, err = other.Verifier("lantern").Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner()
	require.NoError(t, err)

	_, err = signer.Verifier("lantern").Verify("not.a.jwt")
	require.Error(t, err)
}
