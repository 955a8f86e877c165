package randcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/randcode"
)

func TestGenerateNumericCode(t *testing.T) {
	code, err := randcode.GenerateNumericCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "expected digit, got %q", r)
	}
}

func TestGenerateUniqueString(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		s, err := randcode.GenerateUniqueString(13)
		require.NoError(t, err)
		assert.Len(t, s, 13)
		assert.False(t, seen[s], "duplicate unique string %q", s)
		seen[s] = true
	}
}

func TestGenerate_ZeroLength(t *testing.T) {
	code, err := randcode.GenerateNumericCode(0)
	require.NoError(t, err)
	assert.Empty(t, code)
}
