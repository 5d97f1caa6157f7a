package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conditionCards() []*testCard {
	return []*testCard{
		{id: "paranoia", traits: []string{"madness"}},
		{id: "amnesia", traits: []string{"madness"}},
		{id: "leg_injury", traits: []string{"injury"}},
		{id: "debt", traits: []string{"deal"}},
	}
}

func TestConditionDeckDrawsFromBottom(t *testing.T) {
	cards := conditionCards()
	d := NewConditionDeck(cards, newRand())

	got, ok := d.Draw()
	require.True(t, ok)
	assert.Same(t, cards[3], got)
	assert.Equal(t, 0, d.CountByTrait("deal"))
}

func TestConditionDeckSearchBottomUp(t *testing.T) {
	cards := conditionCards()
	d := NewConditionDeck(cards, newRand())

	c, i, ok := d.SearchByTrait("madness")
	require.True(t, ok)
	assert.Same(t, cards[1], c)
	assert.Equal(t, 1, i)
	assert.Equal(t, 4, d.Len(), "search does not remove")

	c, i, ok = d.SearchByID("paranoia")
	require.True(t, ok)
	assert.Same(t, cards[0], c)
	assert.Equal(t, 0, i)

	_, i, ok = d.SearchByID("curse")
	assert.False(t, ok)
	assert.Equal(t, -1, i)
}

func TestConditionDeckDrawByTraitKeepsIndexLive(t *testing.T) {
	d := NewConditionDeck(conditionCards(), newRand())
	require.Equal(t, 2, d.CountByTrait("madness"))

	first, ok := d.DrawByTrait("madness")
	require.True(t, ok)
	assert.Equal(t, 1, d.CountByTrait("madness"))

	_, ok = d.DrawByTrait("madness")
	require.True(t, ok)
	assert.Equal(t, 0, d.CountByTrait("madness"))
	assert.Equal(t, []string{"deal", "injury"}, d.Traits())

	require.NoError(t, d.Discard(first))
	assert.Equal(t, 0, d.CountByTrait("madness"), "discard pile is not indexed")

	again, ok := d.DrawByTrait("madness")
	require.True(t, ok, "recycles from discard once")
	assert.Same(t, first, again)
	assert.Equal(t, 0, d.DiscardLen())
}

func TestConditionDeckDrawByIDRecycles(t *testing.T) {
	cards := conditionCards()
	d := NewConditionDeck(cards, newRand())

	c, ok := d.DrawByID("amnesia")
	require.True(t, ok)
	_, ok = d.DrawByID("amnesia")
	assert.False(t, ok, "no copy left anywhere")

	require.NoError(t, d.Discard(c))
	got, ok := d.DrawByID("amnesia")
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 3, d.Total())
}

func TestConditionDeckReturnToDeck(t *testing.T) {
	d := NewConditionDeck(conditionCards(), newRand())
	c, ok := d.DrawByID("leg_injury")
	require.True(t, ok)
	require.Equal(t, 0, d.CountByTrait("injury"))

	require.NoError(t, d.ReturnToDeck(c))
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, 1, d.CountByTrait("injury"))
	assert.Error(t, d.ReturnToDeck(c))
}

func TestConditionDeckIndexAfterReshuffle(t *testing.T) {
	d := NewConditionDeck(conditionCards(), newRand())
	var drawn []*testCard
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, c)
		if len(drawn) == 4 {
			break
		}
	}
	assert.Empty(t, d.Traits())
	for _, c := range drawn {
		require.NoError(t, d.Discard(c))
	}

	_, ok := d.Draw()
	require.True(t, ok)
	total := 0
	for _, trait := range []string{"madness", "injury", "deal"} {
		total += d.CountByTrait(trait)
	}
	assert.Equal(t, 3, total)
}
