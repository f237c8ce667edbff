package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
	assert.Equal(t, "", Normalize(""))
}

func TestIsRelease(t *testing.T) {
	tests := map[string]bool{
		"1.2.3":         true,
		"v0.1.0":        true,
		"v1.0.0-rc.1":   false,
		"dev":           false,
		"":              false,
		"not-a-version": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsRelease(in), in)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Current, info.Version)
	assert.Contains(t, info.String(), info.Commit)
}
