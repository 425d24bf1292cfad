package game

import "math/rand"

// Random is the source of randomness for role shuffles and question picks.
// *rand.Rand satisfies it, which lets tests use a seeded source.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int                     { return rand.Intn(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRandom uses the goroutine-safe top-level math/rand functions
var DefaultRandom Random = globalRandom{}
