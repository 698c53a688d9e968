package plant

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a generator for the fault and noise stages. Seed 0 seeds
// from the clock; any other seed gives a reproducible sequence.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
