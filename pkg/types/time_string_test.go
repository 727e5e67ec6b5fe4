package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:00"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringArithmetic(t *testing.T) {
	start := MustTimeString("11:30")

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:15"), end)
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))

	_, err = start.AddMinutes(13 * 60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeStringOn(t *testing.T) {
	date := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	at, err := MustTimeString("12:00").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 8, 12, 0, 0, 0, time.UTC), at)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("17:00:00")))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
