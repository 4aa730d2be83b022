package identitysdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidation(t *testing.T) {
	valid := RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}
	require.NoError(t, valid.Validate())

	t.Run("rejects bad email", func(t *testing.T) {
		r := valid
		r.Email = "not-an-email"
		require.Error(t, r.Validate())
	})

	t.Run("rejects short password", func(t *testing.T) {
		r := valid
		r.Password = "short"
		require.Error(t, r.Validate())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		r := valid
		r.Name = ""
		require.Error(t, r.Validate())
	})

	t.Run("rejects unknown gender", func(t *testing.T) {
		r := valid
		r.Gender = "unknown"
		require.Error(t, r.Validate())
	})

	t.Run("accepts international phone", func(t *testing.T) {
		r := valid
		r.Phone = "+61412345678"
		require.NoError(t, r.Validate())
	})

	t.Run("rejects local phone without country code", func(t *testing.T) {
		r := valid
		r.Phone = "0412345678"
		require.Error(t, r.Validate())
	})

	t.Run("rejects malformed date of birth", func(t *testing.T) {
		r := valid
		r.DateOfBirth = "10/05/1990"
		require.Error(t, r.Validate())
	})

	t.Run("accepts ISO date of birth", func(t *testing.T) {
		r := valid
		r.DateOfBirth = "1990-05-10"
		require.NoError(t, r.Validate())
	})

	t.Run("rejects implausible height", func(t *testing.T) {
		r := valid
		h := 5.0
		r.Height = &h
		require.Error(t, r.Validate())
	})
}

func TestProfileUpdateRequestValidation(t *testing.T) {
	require.NoError(t, ProfileUpdateRequest{Name: "Alice"}.Validate())
	require.Error(t, ProfileUpdateRequest{}.Validate())
	require.Error(t, ProfileUpdateRequest{Name: "Alice", Phone: "nope"}.Validate())
}

func TestDateOfBirthRoundTrip(t *testing.T) {
	parsed, err := ParseDateOfBirth("1990-05-10")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	require.Equal(t, "1990-05-10", FormatDateOfBirth(parsed))

	parsed, err = ParseDateOfBirth("")
	require.NoError(t, err)
	require.Nil(t, parsed)
	require.Equal(t, "", FormatDateOfBirth(nil))
}
