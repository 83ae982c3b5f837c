package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that every deal for a given seed is reproducible.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewRandom returns a generator seeded from the runtime's random source along
// with the seed used, so the game can be replayed later.
func NewRandom() (*rand.Rand, int64) {
	seed := rand.Int64()
	if seed == 0 {
		seed = 1
	}
	return New(seed), seed
}

// Sattolo permutes s in place into a uniformly random single cycle, so every
// element ends up at a different index than it started (for len(s) > 1).
func Sattolo[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i) // j < i, never i itself
		s[i], s[j] = s[j], s[i]
	}
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
