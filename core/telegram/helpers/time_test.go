package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	got, ok := ParseFlexibleDate("2026-09-04")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.Local), got)

	got, ok = ParseFlexibleDate(" 04.09.2026 ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.Local), got)

	for _, bad := range []string{"", "soon", "2026-09-04 19:00", "31.02.2026"} {
		_, ok := ParseFlexibleDate(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestParseFlexibleDateYearless(t *testing.T) {
	got, ok := ParseFlexibleDate("31.12")
	require.True(t, ok)
	assert.Equal(t, time.Month(12), got.Month())
	assert.Equal(t, 31, got.Day())
	assert.False(t, got.Before(time.Now().Truncate(24*time.Hour)))
}
