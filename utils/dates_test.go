package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTime(t *testing.T) {
	assert.True(t, HasTime("2024-05-01 14:00"))
	assert.True(t, HasTime("2024-05-01T9:30"))
	assert.False(t, HasTime("2024-05-01"))
	assert.False(t, HasTime(""))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-05-01")
	assert.True(t, ok)
	assert.Equal(t, 2024, d.Year())

	d, ok = ParseDate("2024-05-01 14:30")
	assert.True(t, ok)
	assert.Equal(t, 14, d.Hour())

	_, ok = ParseDate("2024-02-30")
	assert.False(t, ok)
	_, ok = ParseDate("01.05.2024")
	assert.False(t, ok)
}
