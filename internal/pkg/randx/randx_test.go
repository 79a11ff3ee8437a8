package randx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/randx"
)

func TestJoinCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := randx.JoinCode()
		require.NoError(t, err)

		assert.Len(t, code, randx.JoinCodeLength)
		assert.True(t, randx.IsValidJoinCode(code), "code %q has invalid characters", code)
		seen[code] = true
	}

	// 100 draws from a 36^6 space colliding down to a handful would mean a
	// broken generator.
	assert.Greater(t, len(seen), 95)
}

func TestNormalizeJoinCode(t *testing.T) {
	assert.Equal(t, "AB12CD", randx.NormalizeJoinCode("  ab12cd "))
	assert.Equal(t, "AB12CD", randx.NormalizeJoinCode("AB12CD"))
	assert.Equal(t, "", randx.NormalizeJoinCode("   "))
}

func TestIsValidJoinCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"AB12CD", true},
		{"000000", true},
		{"ab12cd", false},
		{"AB12C", false},
		{"AB12CDE", false},
		{"AB-2CD", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, randx.IsValidJoinCode(tt.code), "code %q", tt.code)
	}
}

func TestNewID(t *testing.T) {
	a := randx.NewID()
	b := randx.NewID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
