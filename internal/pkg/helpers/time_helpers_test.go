package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, ParseDuration("30m", time.Hour))
	assert.Equal(t, 720*time.Hour, ParseDuration("720h", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("bogus", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), parsed)

	for _, bad := range []string{"03/03/2025", "2025-13-01", "2025-03-32", "yesterday", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("10:30")
	require.NoError(t, err)
	assert.Equal(t, 10, hour)
	assert.Equal(t, 30, minute)

	hour, minute, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, hour)
	assert.Equal(t, 0, minute)

	for _, bad := range []string{"24:00", "10:60", "10h30", ""} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(9, 5))
	assert.Equal(t, "23:59", FormatClock(23, 59))
	assert.Equal(t, "00:00", FormatClock(0, 0))
}
