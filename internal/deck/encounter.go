package deck

import "math/rand"

// Located is a card bound to a kind of place, such as an encounter card with a
// city, wilderness or sea affinity.
type Located[K comparable] interface {
	Card
	Affinity() K
}

// EncounterDeck supports targeted draws by location affinity.
type EncounterDeck[T Located[K], K comparable] struct {
	*Deck[T]
	byAffinity map[K]int
}

// NewEncounterDeck builds an encounter deck indexed by affinity.
func NewEncounterDeck[T Located[K], K comparable](name string, cards []T, rng *rand.Rand) *EncounterDeck[T, K] {
	d := &EncounterDeck[T, K]{
		Deck:       New(name, cards, rng),
		byAffinity: map[K]int{},
	}
	d.entered = func(c T) { d.byAffinity[c.Affinity()]++ }
	d.left = func(c T) {
		k := c.Affinity()
		if d.byAffinity[k]--; d.byAffinity[k] <= 0 {
			delete(d.byAffinity, k)
		}
	}
	for _, c := range d.cards {
		d.byAffinity[c.Affinity()]++
	}
	return d
}

// CountByAffinity returns how many cards in the draw pile have affinity k.
func (d *EncounterDeck[T, K]) CountByAffinity(k K) int { return d.byAffinity[k] }

// DrawByAffinity removes the first card from the top whose affinity is k. When
// the draw pile holds none, the discard pile is shuffled back in once and the
// scan retried.
func (d *EncounterDeck[T, K]) DrawByAffinity(k K) (T, bool) {
	match := func(c T) bool { return c.Affinity() == k }
	if d.byAffinity[k] > 0 {
		if i := d.indexWhere(match); i >= 0 {
			return d.removeAt(i), true
		}
	}
	if d.reshuffleDiscard() {
		if i := d.indexWhere(match); i >= 0 {
			return d.removeAt(i), true
		}
	}
	var zero T
	return zero, false
}
