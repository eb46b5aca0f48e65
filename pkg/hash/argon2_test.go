package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	encoded, err := Password("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$")

	ok, err := Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	_, err := Verify("anything", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = Verify("anything", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestSaltsDiffer(t *testing.T) {
	a, err := Password("same input")
	require.NoError(t, err)
	b, err := Password("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
