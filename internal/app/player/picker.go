package player

import (
	"math/rand"
	"time"
)

// Picker selects an index in [0, n). n is always >= 1.
// Injected so random playback is deterministic in tests.
type Picker func(n int) int

// NewSeededPicker returns a uniform Picker backed by math/rand.
// A zero seed falls back to the current time.
func NewSeededPicker(seed int64) Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return func(n int) int {
		return rng.Intn(n)
	}
}
