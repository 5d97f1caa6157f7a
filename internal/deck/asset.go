package deck

import "math/rand"

// DefaultReserveSize is the number of face-up assets offered for purchase.
const DefaultReserveSize = 4

// AssetDeck is a deck with a face-up reserve that is kept full from the draw
// and discard piles.
type AssetDeck[T Card] struct {
	*Deck[T]
	reserve     []T
	reserveSize int
}

// NewAssetDeck builds an asset deck. The reserve starts empty; call
// SetupReserve once the deck is shuffled.
func NewAssetDeck[T Card](cards []T, rng *rand.Rand) *AssetDeck[T] {
	return &AssetDeck[T]{
		Deck:        New("Asset Deck", cards, rng),
		reserveSize: DefaultReserveSize,
	}
}

// SetupReserve sets the reserve size and fills it.
func (d *AssetDeck[T]) SetupReserve(size int) {
	d.reserveSize = size
	d.RefillReserve()
}

// ReserveSize returns the configured reserve size.
func (d *AssetDeck[T]) ReserveSize() int { return d.reserveSize }

// RefillReserve draws until the reserve is full or no card is left anywhere.
func (d *AssetDeck[T]) RefillReserve() {
	for len(d.reserve) < d.reserveSize && d.Deck.Total() > 0 {
		c, ok := d.Draw()
		if !ok {
			return
		}
		d.reserve = append(d.reserve, c)
	}
}

// Reserve returns a copy of the face-up reserve.
func (d *AssetDeck[T]) Reserve() []T { return append([]T(nil), d.reserve...) }

// TakeFromReserve removes the reserve card at index and refills the reserve.
func (d *AssetDeck[T]) TakeFromReserve(index int) (T, bool) {
	if index < 0 || index >= len(d.reserve) {
		var zero T
		return zero, false
	}
	c := d.reserve[index]
	d.reserve = append(d.reserve[:index:index], d.reserve[index+1:]...)
	d.RefillReserve()
	return c, true
}

// TakeByID removes a specific card wherever the deck holds it: draw pile,
// then discard pile, then reserve (which is refilled).
func (d *AssetDeck[T]) TakeByID(id string) (T, bool) {
	match := func(c T) bool { return c.CardID() == id }
	if i := d.indexWhere(match); i >= 0 {
		return d.removeAt(i), true
	}
	if c, ok := d.removeDiscardWhere(match); ok {
		return c, true
	}
	for i, c := range d.reserve {
		if match(c) {
			return d.TakeFromReserve(i)
		}
	}
	var zero T
	return zero, false
}

// Total returns draw pile, discard pile and reserve size combined.
func (d *AssetDeck[T]) Total() int { return d.Deck.Total() + len(d.reserve) }

// Contains reports whether the exact card is anywhere in the deck.
func (d *AssetDeck[T]) Contains(c T) bool {
	return d.Deck.Contains(c) || indexOf(d.reserve, c) >= 0
}

// Discard puts a card on the discard pile.
func (d *AssetDeck[T]) Discard(c T) error {
	if indexOf(d.reserve, c) >= 0 {
		return d.duplicate(c)
	}
	return d.Deck.Discard(c)
}
