package deck

import (
	"math/rand"
	"slices"
)

// Traited is a card carrying trait tags, such as a condition.
type Traited interface {
	Card
	CardTraits() []string
}

// ConditionDeck draws from the bottom of the pile and searches bottom-up.
//
// The per-trait index counts the cards currently in the draw pile and is kept
// in step with every draw, return, reshuffle and recycle.
type ConditionDeck[T Traited] struct {
	*Deck[T]
	byTrait map[string]int
}

// NewConditionDeck builds a condition deck and indexes its cards by trait.
func NewConditionDeck[T Traited](cards []T, rng *rand.Rand) *ConditionDeck[T] {
	d := &ConditionDeck[T]{
		Deck:    New("Condition Deck", cards, rng),
		byTrait: map[string]int{},
	}
	d.entered = func(c T) { d.index(c, 1) }
	d.left = func(c T) { d.index(c, -1) }
	for _, c := range d.cards {
		d.index(c, 1)
	}
	return d
}

func (d *ConditionDeck[T]) index(c T, delta int) {
	for _, trait := range c.CardTraits() {
		d.byTrait[trait] += delta
		if d.byTrait[trait] <= 0 {
			delete(d.byTrait, trait)
		}
	}
}

// CountByTrait returns how many cards in the draw pile carry trait.
func (d *ConditionDeck[T]) CountByTrait(trait string) int { return d.byTrait[trait] }

// Traits returns the traits present in the draw pile, sorted.
func (d *ConditionDeck[T]) Traits() []string {
	traits := make([]string, 0, len(d.byTrait))
	for t := range d.byTrait {
		traits = append(traits, t)
	}
	slices.Sort(traits)
	return traits
}

// Draw removes the bottom card, reshuffling the discard pile in first when the
// draw pile is empty.
func (d *ConditionDeck[T]) Draw() (T, bool) {
	if len(d.cards) == 0 {
		d.reshuffleDiscard()
	}
	if len(d.cards) == 0 {
		var zero T
		return zero, false
	}
	return d.removeAt(len(d.cards) - 1), true
}

// SearchByID scans from the bottom for a card with id. It returns the card and
// its index, or ok=false and -1.
func (d *ConditionDeck[T]) SearchByID(id string) (T, int, bool) {
	return d.searchBottomUp(func(c T) bool { return c.CardID() == id })
}

// SearchByTrait scans from the bottom for a card carrying trait.
func (d *ConditionDeck[T]) SearchByTrait(trait string) (T, int, bool) {
	if d.byTrait[trait] == 0 {
		var zero T
		return zero, -1, false
	}
	return d.searchBottomUp(func(c T) bool { return slices.Contains(c.CardTraits(), trait) })
}

// DrawByID removes the bottom-most card with id. On a miss, matching cards in
// the discard pile are recycled once and the search repeated.
func (d *ConditionDeck[T]) DrawByID(id string) (T, bool) {
	if _, i, ok := d.SearchByID(id); ok {
		return d.removeAt(i), true
	}
	if d.RecycleByID(id) {
		if _, i, ok := d.SearchByID(id); ok {
			return d.removeAt(i), true
		}
	}
	var zero T
	return zero, false
}

// DrawByTrait removes the bottom-most card carrying trait, recycling matching
// discards once on a miss.
func (d *ConditionDeck[T]) DrawByTrait(trait string) (T, bool) {
	if _, i, ok := d.SearchByTrait(trait); ok {
		return d.removeAt(i), true
	}
	if d.RecycleByTrait(trait) {
		if _, i, ok := d.SearchByTrait(trait); ok {
			return d.removeAt(i), true
		}
	}
	var zero T
	return zero, false
}

// RecycleByID moves discarded cards with id back into the draw pile and
// shuffles. It reports whether anything moved.
func (d *ConditionDeck[T]) RecycleByID(id string) bool {
	return d.recycle(func(c T) bool { return c.CardID() == id })
}

// RecycleByTrait moves discarded cards carrying trait back into the draw pile
// and shuffles.
func (d *ConditionDeck[T]) RecycleByTrait(trait string) bool {
	return d.recycle(func(c T) bool { return slices.Contains(c.CardTraits(), trait) })
}

// ReturnToDeck puts an unconsumed card back on top of the pile, away from
// the bottom where draws happen.
func (d *ConditionDeck[T]) ReturnToDeck(c T) error {
	return d.AddToTop(c)
}

func (d *ConditionDeck[T]) recycle(pred func(T) bool) bool {
	matched := d.takeDiscardWhere(pred)
	if len(matched) == 0 {
		return false
	}
	d.cards = append(d.cards, matched...)
	for _, c := range matched {
		d.enter(c)
	}
	d.Shuffle()
	return true
}

func (d *ConditionDeck[T]) searchBottomUp(pred func(T) bool) (T, int, bool) {
	for i := len(d.cards) - 1; i >= 0; i-- {
		if pred(d.cards[i]) {
			return d.cards[i], i, true
		}
	}
	var zero T
	return zero, -1, false
}
