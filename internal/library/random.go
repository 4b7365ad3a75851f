package library

import (
	"math/rand"
	"strings"
)

// Random returns a uniformly random entry, optionally restricted to a
// category (case-insensitive). The generator is caller-supplied so tests can
// seed it. Returns false only when the candidate set is empty.
func (l *Library) Random(rng *rand.Rand, category string) (*Entry, bool) {
	pool := l.order
	if category != "" {
		pool = nil
		for _, e := range l.order {
			if strings.EqualFold(e.Category, category) {
				pool = append(pool, e)
			}
		}
	}
	if len(pool) == 0 {
		return nil, false
	}
	return pool[rng.Intn(len(pool))], true
}
