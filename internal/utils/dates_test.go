package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2025-12-23", "2025/12/23", "12/23/2025", "23-12-2025"} {
		got, ok := ParseDate(in)
		require.True(t, ok, in)
		require.NotNil(t, got, in)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.December, got.Month())
		assert.Equal(t, 23, got.Day())
	}

	got, ok := ParseDate("  ")
	assert.True(t, ok)
	assert.Nil(t, got)

	_, ok = ParseDate("next tuesday")
	assert.False(t, ok)
}

func TestParseDateTime(t *testing.T) {
	got, ok := ParseDateTime("2025-11-20T09:30")
	require.True(t, ok)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got, ok = ParseDateTime("11/20/2025 14:00")
	require.True(t, ok)
	assert.Equal(t, 14, got.Hour())

	_, ok = ParseDateTime("2025-13-40T99:99")
	assert.False(t, ok)
}
