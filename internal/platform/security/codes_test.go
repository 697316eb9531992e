package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeHasher_Deterministic(t *testing.T) {
	h := NewCodeHasher("secret-key")
	assert.Equal(t, h.Hash("482913"), h.Hash("482913"))
	assert.NotEqual(t, h.Hash("482913"), h.Hash("482914"))
}

func TestCodeHasher_KeyedBySecret(t *testing.T) {
	a := NewCodeHasher("secret-a")
	b := NewCodeHasher("secret-b")
	assert.NotEqual(t, a.Hash("482913"), b.Hash("482913"))
}

func TestCodeHasher_Equal(t *testing.T) {
	h := NewCodeHasher("secret-key")
	stored := h.Hash("482913")

	assert.True(t, h.Equal("482913", stored))
	assert.False(t, h.Equal("111111", stored))
	assert.False(t, h.Equal("482913", "junk"))
}

func TestRandomDigits(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := RandomDigits(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// 50 draws from a million values colliding down to a handful would
	// mean the generator is broken
	assert.Greater(t, len(seen), 40)
}

func TestRandomDigits_DefaultLength(t *testing.T) {
	code, err := RandomDigits(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
