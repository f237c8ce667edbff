package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfMonthUTC(t *testing.T) {
	// default timezone is UTC unless the binary initialized another one
	require.NoError(t, Init(""))

	at := time.Date(2024, time.March, 17, 22, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), StartOfMonthUTC(at))
	assert.Equal(t, at.Location(), NowUTC().Location())
}
