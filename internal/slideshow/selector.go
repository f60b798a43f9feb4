package slideshow

import (
	crand "crypto/rand"
	"math/rand/v2"

	"github.com/matjam/wallrotate/internal/types"
)

// maxRandomAttempts bounds how hard Random tries to avoid repeating last.
const maxRandomAttempts = 5

// intN is the slice of *rand.Rand the selector needs.
type intN interface {
	IntN(n int) int
}

// NewRand returns a ChaCha8 generator seeded from the OS entropy source.
func NewRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:]) // never returns an error since Go 1.24
	return rand.New(rand.NewChaCha8(seed))
}

// Sequential returns the entry after last, wrapping at the end. When last is
// empty or no longer in the catalog it starts over at the first entry.
func Sequential(catalog []string, last string) string {
	if last != "" {
		for i, p := range catalog {
			if p == last {
				return catalog[(i+1)%len(catalog)]
			}
		}
	}
	return catalog[0]
}

// Random returns a uniformly drawn entry that differs from last when the
// catalog allows it. Avoidance is best effort: after maxRandomAttempts
// collisions one final draw is returned as is.
func Random(catalog []string, last string, rng intN) string {
	if len(catalog) == 1 {
		return catalog[0]
	}
	for range maxRandomAttempts {
		candidate := catalog[rng.IntN(len(catalog))]
		if candidate != last {
			return candidate
		}
	}
	return catalog[rng.IntN(len(catalog))]
}

// Select dispatches on mode. The catalog must not be empty.
func Select(catalog []string, last string, mode types.SelectionMode, rng intN) string {
	if mode == types.SelectionRandom {
		return Random(catalog, last, rng)
	}
	return Sequential(catalog, last)
}
