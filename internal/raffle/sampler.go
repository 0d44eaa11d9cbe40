package raffle

import (
	"math/rand"

	"github.com/raffleworks/guestlist/internal/domain"
)

// WeightedSampler draws entries with probability proportional to their
// Attendances weight, without replacement.
type WeightedSampler struct{}

// Draw picks k entries from pool. Each pick is weight-proportional among
// the entries not yet drawn; drawn entries are removed before the next
// pick. k is clamped to [0, len(pool)]. The pool slice itself is left
// untouched.
func (WeightedSampler) Draw(pool []domain.RaffleEntry, k int, rng *rand.Rand) []domain.RaffleEntry {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return nil
	}

	remaining := make([]domain.RaffleEntry, len(pool))
	copy(remaining, pool)

	winners := make([]domain.RaffleEntry, 0, k)
	for len(winners) < k {
		i := pickIndex(remaining, rng)
		winners = append(winners, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	return winners
}

// pickIndex picks one index with probability Attendances / sum(Attendances).
// Weights are at least 1 for entries built by BuildTable.
func pickIndex(entries []domain.RaffleEntry, rng *rand.Rand) int {
	total := 0
	for _, e := range entries {
		total += e.Attendances
	}

	n := rng.Intn(total)
	for i, e := range entries {
		n -= e.Attendances
		if n < 0 {
			return i
		}
	}

	return len(entries) - 1
}
