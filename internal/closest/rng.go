package closest

import "math/rand"

// defaultSeed is used when callers pass seed == 0
const defaultSeed int64 = 1

// NewRand returns a deterministic generator. seed == 0 selects defaultSeed,
// any other value is used verbatim.
//
// *rand.Rand is not safe for concurrent use; give each solver its own.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
