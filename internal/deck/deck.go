// Package deck implements the draw, discard and reserve piles shared by every
// card type in the game.
//
// A card lives in exactly one of the draw pile, the discard pile, a reserve, or
// a holder's possession. Exhaustion is never an error: draws report ok=false.
package deck

import (
	"fmt"
	"math/rand"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// Card is anything that can sit in a deck. Cards are compared by identity, so
// two copies of the same printed card are distinct values.
type Card interface {
	comparable
	CardID() string
}

// Deck is an ordered draw pile plus a discard pile. Index 0 is the top.
type Deck[T Card] struct {
	name    string
	cards   []T
	discard []T
	rng     *rand.Rand

	// entered and left fire whenever a card joins or leaves the draw pile.
	entered func(T)
	left    func(T)
}

// New builds a deck holding cards in the given order. A nil rng gets a fixed
// seed so behaviour stays reproducible.
func New[T Card](name string, cards []T, rng *rand.Rand) *Deck[T] {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	d := &Deck[T]{
		name:  name,
		cards: append([]T(nil), cards...),
		rng:   rng,
	}
	return d
}

// Name returns the deck's display name.
func (d *Deck[T]) Name() string { return d.name }

// Len returns the number of cards in the draw pile.
func (d *Deck[T]) Len() int { return len(d.cards) }

// DiscardLen returns the number of cards in the discard pile.
func (d *Deck[T]) DiscardLen() int { return len(d.discard) }

// Total returns draw pile plus discard pile size.
func (d *Deck[T]) Total() int { return len(d.cards) + len(d.discard) }

// Cards returns a copy of the draw pile, top first.
func (d *Deck[T]) Cards() []T { return append([]T(nil), d.cards...) }

// DiscardPile returns a copy of the discard pile, oldest first.
func (d *Deck[T]) DiscardPile() []T { return append([]T(nil), d.discard...) }

// Shuffle randomly permutes the draw pile. The discard pile is untouched.
func (d *Deck[T]) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. An empty draw pile is first replaced
// by the shuffled discard pile.
func (d *Deck[T]) Draw() (T, bool) {
	if len(d.cards) == 0 {
		d.reshuffleDiscard()
	}
	if len(d.cards) == 0 {
		var zero T
		return zero, false
	}
	return d.removeAt(0), true
}

// DrawWhere removes and returns the first card from the top matching pred. On a
// miss the discard pile is shuffled back in once and the scan retried.
func (d *Deck[T]) DrawWhere(pred func(T) bool) (T, bool) {
	if i := d.indexWhere(pred); i >= 0 {
		return d.removeAt(i), true
	}
	if d.reshuffleDiscard() {
		if i := d.indexWhere(pred); i >= 0 {
			return d.removeAt(i), true
		}
	}
	var zero T
	return zero, false
}

// Discard puts a card on the discard pile. It never reshuffles.
func (d *Deck[T]) Discard(c T) error {
	if err := d.checkAbsent(c); err != nil {
		return err
	}
	d.discard = append(d.discard, c)
	return nil
}

// AddToTop places a card on top of the draw pile.
func (d *Deck[T]) AddToTop(c T) error {
	if err := d.checkAbsent(c); err != nil {
		return err
	}
	d.cards = append([]T{c}, d.cards...)
	d.enter(c)
	return nil
}

// AddToBottom places a card at the bottom of the draw pile.
func (d *Deck[T]) AddToBottom(c T) error {
	if err := d.checkAbsent(c); err != nil {
		return err
	}
	d.cards = append(d.cards, c)
	d.enter(c)
	return nil
}

// Contains reports whether the exact card is in the draw or discard pile.
func (d *Deck[T]) Contains(c T) bool {
	return indexOf(d.cards, c) >= 0 || indexOf(d.discard, c) >= 0
}

// reshuffleDiscard moves the whole discard pile under the draw pile and
// shuffles. It reports whether any card moved.
func (d *Deck[T]) reshuffleDiscard() bool {
	if len(d.discard) == 0 {
		return false
	}
	moved := d.discard
	d.discard = nil
	d.cards = append(d.cards, moved...)
	for _, c := range moved {
		d.enter(c)
	}
	d.Shuffle()
	return true
}

// takeDiscardWhere removes every discarded card matching pred and returns them.
func (d *Deck[T]) takeDiscardWhere(pred func(T) bool) []T {
	var matched, rest []T
	for _, c := range d.discard {
		if pred(c) {
			matched = append(matched, c)
		} else {
			rest = append(rest, c)
		}
	}
	d.discard = rest
	return matched
}

// removeDiscardWhere removes the first discarded card matching pred.
func (d *Deck[T]) removeDiscardWhere(pred func(T) bool) (T, bool) {
	for i, c := range d.discard {
		if pred(c) {
			d.discard = append(d.discard[:i:i], d.discard[i+1:]...)
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (d *Deck[T]) indexWhere(pred func(T) bool) int {
	for i, c := range d.cards {
		if pred(c) {
			return i
		}
	}
	return -1
}

func (d *Deck[T]) removeAt(i int) T {
	c := d.cards[i]
	d.cards = append(d.cards[:i:i], d.cards[i+1:]...)
	if d.left != nil {
		d.left(c)
	}
	return c
}

func (d *Deck[T]) enter(c T) {
	if d.entered != nil {
		d.entered(c)
	}
}

func (d *Deck[T]) checkAbsent(c T) error {
	if d.Contains(c) {
		return d.duplicate(c)
	}
	return nil
}

func (d *Deck[T]) duplicate(c T) error {
	return apperrors.WithMetadata(apperrors.CodeInvariantViolation,
		fmt.Sprintf("card %s is already in %s", c.CardID(), d.name),
		map[string]string{"card": c.CardID(), "deck": d.name})
}

func indexOf[T Card](cards []T, c T) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}
