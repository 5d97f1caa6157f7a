package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/eldritch-pursuit/internal/autoplay"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

func TestMythosIcons(t *testing.T) {
	const mythos = `
- id: uprising
  name: Cult Uprising
  color: yellow
  icons: [spawn_gates, monster_surge, spawn_clues, place_eldritch_token]
`
	e, _ := newEngine(t, &spyAncient{doom: 10}, mythos, "anna")
	s := e.State()

	require.NoError(t, e.mythosPhase())

	assert.Equal(t, 9, s.Doom)
	assert.Equal(t, 1, s.EldritchTokens)
	gates := s.Gates()
	require.Len(t, gates, 1)
	assert.Equal(t, []models.Monster{SurgeMonster}, s.Locations[gates[0]].Monsters)

	clues := 0
	for _, l := range s.Locations {
		clues += l.Clues
	}
	assert.Equal(t, 1, clues)
	assert.Equal(t, 1, s.Mythos.DiscardLen())
}

func TestMythosAdvanceOmen(t *testing.T) {
	const mythos = `
- id: omen
  color: green
  icons: [advance_omen]
`
	e, _ := newEngine(t, &spyAncient{doom: 10}, mythos, "anna")
	require.NoError(t, e.mythosPhase())
	assert.Equal(t, 8, e.State().Doom)
}

func TestMythosReckoning(t *testing.T) {
	const mythos = `
- id: nightmares
  color: yellow
  icons: [reckoning]
`
	ancient := &spyAncient{doom: 10}
	e, _ := newEngine(t, ancient, mythos, "anna")
	anna := investigator(t, e, 0)
	debt, ok := e.State().Conditions.DrawByID("debt")
	require.True(t, ok)
	anna.AddCondition(debt)

	require.NoError(t, e.mythosPhase())

	assert.Equal(t, 1, ancient.reckonings)
	assert.Equal(t, 4, anna.Health)
}

func TestMythosSpawnsRumor(t *testing.T) {
	const mythos = `
- id: the_drought
  color: blue
  traits: [rumor]
  rumor: drought
  icons: [spawn_rumor]
`
	e, _ := newEngine(t, &spyAncient{doom: 10}, mythos, "anna")
	require.NoError(t, e.mythosPhase())
	assert.Equal(t, "drought", e.State().Locations["Space 1"].Rumor)
}

func TestMythosComponentsHitLead(t *testing.T) {
	const mythos = `
- id: bad_night
  color: green
  components:
    - {type: change_sanity, amount: -2}
`
	e, _ := newEngine(t, &spyAncient{doom: 10}, mythos, "anna", "bob")
	anna, bob := investigator(t, e, 0), investigator(t, e, 1)
	anna.Health = 0

	require.NoError(t, e.mythosPhase())

	assert.Equal(t, 5, anna.Sanity)
	assert.Equal(t, 2, bob.Sanity)
}

func TestMythosAwakensOnce(t *testing.T) {
	ancient := &spyAncient{doom: 1}
	e, _ := newEngine(t, ancient, calmMythos, "anna")

	require.NoError(t, e.mythosPhase())
	require.NoError(t, e.mythosPhase())

	assert.Equal(t, 0, e.State().Doom)
	assert.Equal(t, 1, ancient.awakenings)
}

func TestMythosEmptyDeckStillAdvancesDoom(t *testing.T) {
	e, _ := newEngine(t, &spyAncient{doom: 10}, "[]", "anna")

	require.NoError(t, e.mythosPhase())

	assert.Equal(t, 9, e.State().Doom)
	assert.Equal(t, 2, e.State().Round)
}

func TestReckoningFlipsCondition(t *testing.T) {
	fsys := fixtureFS(`
- id: nightmares
  color: yellow
  icons: [reckoning]
- id: night_terrors
  color: yellow
  icons: [reckoning]
`)
	fsys["conditions.yaml"].Data = []byte(`
- id: paranoia
  traits: [madness]
  reckoning: true
  front:
    title: Paranoia
    components:
      - {type: flip_condition, condition: paranoia, variant: 0}
  backs:
    - title: Trust No One
      text: The walls are listening.
      components:
        - {type: change_sanity, amount: -1}
`)
	ui := autoplay.NewScripted()
	e := NewEngine(stateFrom(t, fsys), &spyAncient{doom: 10}, ui, DefaultOptions(), nil)
	require.NoError(t, e.Setup(1, []string{"anna"}))
	anna := investigator(t, e, 0)
	paranoia, ok := e.State().Conditions.DrawByID("paranoia")
	require.True(t, ok)
	anna.AddCondition(paranoia)

	require.NoError(t, e.mythosPhase())
	assert.True(t, paranoia.Flipped())
	assert.Equal(t, "Trust No One", paranoia.ActiveSide().Title)
	assert.Equal(t, 4, anna.Sanity)
	assert.Contains(t, ui.Messages, "Anna Blackwood flips Paranoia: Trust No One.")
	assert.Contains(t, ui.Messages, "The walls are listening.")

	require.NoError(t, e.mythosPhase())
	assert.True(t, paranoia.Flipped(), "the back stays up")
	assert.Equal(t, 3, anna.Sanity)
}
