package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and compare", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("qwe2895509")
		require.NoError(t, err)
		assert.NotEqual(t, "qwe2895509", hash)

		assert.NoError(t, hasher.Compare(hash, "qwe2895509"))
		assert.Error(t, hasher.Compare(hash, "wrong-password1"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()
		first, err := hasher.Hash("qwe2895509")
		require.NoError(t, err)
		second, err := hasher.Hash("qwe2895509")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("cost below minimum falls back to default", func(t *testing.T) {
		t.Parallel()
		h := NewBcryptHasher(0)
		assert.Equal(t, bcrypt.DefaultCost, h.cost)
	})
}
