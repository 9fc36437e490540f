package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinorToAmount(t *testing.T) {
	assert.Equal(t, 9.99, MinorToAmount(999))
	assert.Equal(t, 100.0, MinorToAmount(10000))
	assert.Equal(t, 0.0, MinorToAmount(0))
}

func TestAmountToMinor(t *testing.T) {
	assert.Equal(t, int64(999), AmountToMinor(9.99))
	assert.Equal(t, int64(10000), AmountToMinor(100))
	// 19.99 is not exactly representable; rounding must not lose a cent
	assert.Equal(t, int64(1999), AmountToMinor(19.99))
}

func TestFromEpochSeconds(t *testing.T) {
	ts := FromEpochSeconds(1700000000)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ts.UTC())
	assert.True(t, FromEpochSeconds(0).IsZero())
	assert.True(t, FromEpochSeconds(-5).IsZero())
}
