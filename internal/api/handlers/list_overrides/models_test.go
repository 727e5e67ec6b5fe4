package list_overrides

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	from, to, err := ParsePeriod("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), to)

	from, to, err = ParsePeriod("2026-05-01", "2026-05-31", now)
	require.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, 31, to.Day())

	_, _, err = ParsePeriod("01.05.2026", "", now)
	assert.Error(t, err)
}
