package mealgen

import "math/rand"

// Rotation yields the items of one category without repeating any until
// the whole cycle has been served, then reshuffles and starts over. It
// lives for a single generation run and is never persisted.
type Rotation struct {
	items  []string
	cursor int
	used   map[string]struct{}
	cycles int
	last   string
	rng    *rand.Rand
}

// NewRotation copies items and shuffles the copy. The caller owns rng;
// pass a seeded source for deterministic tests.
func NewRotation(items []string, rng *rand.Rand) *Rotation {
	r := &Rotation{
		items: append([]string(nil), items...),
		used:  make(map[string]struct{}, len(items)),
		rng:   rng,
	}
	r.rng.Shuffle(len(r.items), func(i, j int) {
		r.items[i], r.items[j] = r.items[j], r.items[i]
	})
	return r
}

// Next returns the next unused item of the current cycle, reshuffling when
// the cycle is exhausted. The boolean is false only when the rotation has
// no items at all.
func (r *Rotation) Next() (string, bool) {
	if len(r.items) == 0 {
		return "", false
	}

	if len(r.used) >= len(r.items) {
		r.used = make(map[string]struct{}, len(r.items))
		r.cursor = 0
		r.cycles++
		r.rng.Shuffle(len(r.items), func(i, j int) {
			r.items[i], r.items[j] = r.items[j], r.items[i]
		})
		// A reshuffle may land the item we just served in first position,
		// which would repeat it on consecutive calls. Swap it away.
		if len(r.items) > 1 && r.items[0] == r.last {
			j := 1 + r.rng.Intn(len(r.items)-1)
			r.items[0], r.items[j] = r.items[j], r.items[0]
		}
	}

	// Right after a reshuffle the item at the cursor is always unused; the
	// probe bound exists so a bookkeeping bug can never loop forever.
	for probes := 0; probes < len(r.items); probes++ {
		item := r.items[r.cursor]
		r.cursor = (r.cursor + 1) % len(r.items)
		if _, seen := r.used[item]; seen {
			continue
		}
		r.used[item] = struct{}{}
		r.last = item
		return item, true
	}
	return "", false
}

// Cycles reports how many times the rotation has reshuffled.
func (r *Rotation) Cycles() int {
	return r.cycles
}
