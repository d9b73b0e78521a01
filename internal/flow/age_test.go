package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	age, err := ParseAge("17")
	require.NoError(t, err)
	assert.Equal(t, 17, age)

	age, err = ParseAge("  25 ")
	require.NoError(t, err)
	assert.Equal(t, 25, age)

	age, err = ParseAge("0")
	require.NoError(t, err)
	assert.Equal(t, 0, age)

	_, err = ParseAge("abc")
	assert.ErrorIs(t, err, ErrBadAge)

	// Negative values are rejected like non-numeric input.
	_, err = ParseAge("-5")
	assert.ErrorIs(t, err, ErrBadAge)

	_, err = ParseAge("")
	assert.ErrorIs(t, err, ErrBadAge)
}
