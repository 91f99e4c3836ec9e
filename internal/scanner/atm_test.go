package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestStrike(t *testing.T) {
	strike, ok := NearestStrike(97, []float64{90, 95, 100, 105})

	assert.True(t, ok)
	assert.Equal(t, 95.0, strike, "95 is 2 away, 100 is 3 away")
}

// An exact distance tie keeps whichever candidate the caller listed
// first, in both orderings.
func TestNearestStrikeTieFirstSeen(t *testing.T) {
	strike, ok := NearestStrike(100, []float64{95, 105})
	assert.True(t, ok)
	assert.Equal(t, 95.0, strike)

	strike, ok = NearestStrike(100, []float64{105, 95})
	assert.True(t, ok)
	assert.Equal(t, 105.0, strike)
}

func TestNearestStrikeEmpty(t *testing.T) {
	_, ok := NearestStrike(100, nil)
	assert.False(t, ok)
}

func TestNearestStrikeExactMatch(t *testing.T) {
	strike, ok := NearestStrike(100, []float64{90, 100, 110})
	assert.True(t, ok)
	assert.Equal(t, 100.0, strike)
}
