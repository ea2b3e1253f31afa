package scoring

import "math/rand"

// Swap-count bounds for the subtle shuffle. Roughly a quarter of the bucket
// is disturbed, never fewer than 2 swaps and never more than 10, so the
// importance ordering mostly survives. Presentation polish only; it never
// changes bucket membership, weights, or the percentage.
const (
	subtleSwapDivisor = 4
	subtleSwapMin     = 2
	subtleSwapMax     = 10
)

// Shuffler randomizes presentation order. A nil *Shuffler is a valid no-op,
// which is how tests and the deterministic mode keep ordering stable.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler returns a Shuffler seeded for reproducible sequences.
func NewShuffler(seed int64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewSource(seed))}
}

// Subtle applies a small number of pairwise swaps in place.
func (s *Shuffler) Subtle(skills []Skill) {
	if s == nil || len(skills) < 2 {
		return
	}
	swaps := len(skills) / subtleSwapDivisor
	if swaps < subtleSwapMin {
		swaps = subtleSwapMin
	}
	if swaps > subtleSwapMax {
		swaps = subtleSwapMax
	}
	for i := 0; i < swaps; i++ {
		a := s.rng.Intn(len(skills))
		b := s.rng.Intn(len(skills))
		skills[a], skills[b] = skills[b], skills[a]
	}
}

// Full applies a uniform shuffle in place.
func (s *Shuffler) Full(skills []Skill) {
	if s == nil || len(skills) < 2 {
		return
	}
	s.rng.Shuffle(len(skills), func(i, j int) {
		skills[i], skills[j] = skills[j], skills[i]
	})
}
