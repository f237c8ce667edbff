package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := NewTicketCode()
		require.NoError(t, err)
		assert.Len(t, code, len(PrefixTicket)+1+DefaultLength)
		assert.True(t, strings.HasPrefix(code, PrefixTicket+"_"), code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestGenerate(t *testing.T) {
	got, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)
	for _, r := range got {
		assert.Contains(t, alphabet, string(r))
	}

	got, err = Generate(5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
