package resetcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		c, err := Generate(10 * time.Minute)
		require.NoError(t, err)

		assert.Len(t, c.Value, Digits)
		for _, r := range c.Value {
			assert.True(t, r >= '0' && r <= '9', "code %q must be decimal", c.Value)
		}
	}
}

func TestGenerate_Expiry(t *testing.T) {
	before := time.Now()
	c, err := Generate(10 * time.Minute)
	require.NoError(t, err)
	after := time.Now()

	assert.False(t, c.ExpiresAt.Before(before.Add(10*time.Minute)))
	assert.False(t, c.ExpiresAt.After(after.Add(10*time.Minute)))
}

func TestGenerate_CodesVary(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := Generate(time.Minute)
		require.NoError(t, err)
		seen[c.Value] = true
	}
	// 50 draws from a million values colliding down to one code would mean
	// a broken generator
	assert.Greater(t, len(seen), 1)
}
