package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetBuildsDecks(t *testing.T) {
	s := newTestState(t)

	assert.NotEmpty(t, s.ID.String())
	assert.Equal(t, 14, s.Doom)
	assert.Equal(t, 14, s.DoomCeiling)
	assert.Equal(t, 3, s.MysteriesToSolve)
	assert.Equal(t, PhaseAction, s.Phase)
	assert.Len(t, s.Locations, 4)
	assert.Equal(t, 6, s.Assets.Total())
	assert.Len(t, s.Assets.Reserve(), 2)
	assert.Equal(t, 5, s.Conditions.Total())
	assert.Equal(t, 6, s.Mythos.Total())
	assert.Len(t, s.Encounters, len(EncounterTypes))
	assert.Zero(t, s.Encounters[EncounterResearch].Len())

	first := s.ID
	newTestInvestigator(t, s)
	s.Doom = 2
	s.MysteriesSolved = 2
	s.Reset(Options{StartingDoom: 10, MysteriesToSolve: 3})
	assert.NotEqual(t, first, s.ID)
	assert.Equal(t, 10, s.Doom)
	assert.Zero(t, s.MysteriesSolved)
	assert.Zero(t, s.Players.Count())
	assert.Equal(t, 6, s.Assets.Total(), "starting assets return with the rebuild")
}

func TestAddInvestigatorDealsStartingAssets(t *testing.T) {
	s := newTestState(t)
	p, err := s.AddInvestigator("Player 1", "anna")
	require.NoError(t, err)

	assert.True(t, p.Lead)
	assert.Equal(t, "London", p.Investigator.Location)
	assert.Equal(t, []string{"whiskey"}, p.Investigator.AssetIDs())
	assert.Equal(t, 5, s.Assets.Total())
	assert.True(t, s.HeldAsset("whiskey"))

	_, err = s.AddInvestigator("Player 2", "nobody")
	assert.Error(t, err)
}

func TestDoomTrack(t *testing.T) {
	s := newTestState(t)
	s.AdvanceDoom(3)
	assert.Equal(t, 11, s.Doom)
	s.AdvanceDoom(40)
	assert.Equal(t, s.DoomFloor, s.Doom)
	s.RetreatDoom(40)
	assert.Equal(t, s.DoomCeiling, s.Doom)
}

func TestGates(t *testing.T) {
	s := newTestState(t)
	for range len(s.Locations) {
		_, ok := s.SpawnGate()
		require.True(t, ok)
	}
	_, ok := s.SpawnGate()
	assert.False(t, ok, "every space already has a gate")
	assert.Equal(t, []string{"Arkham", "London", "Rome", "Space 1"}, s.Gates())
}

func TestDefeatReleasesConditions(t *testing.T) {
	s := newTestState(t)
	inv := newTestInvestigator(t, s)
	_, err := Process(s, inv, nil, &ConditionGain{Condition: "debt", PreventDuplicates: true})
	require.NoError(t, err)

	inv.Health = 0
	s.Defeat(inv)
	s.Defeat(inv)
	assert.Equal(t, []*Investigator{inv}, s.Defeated)
	assert.Empty(t, inv.Conditions)
	assert.Equal(t, 1, s.Conditions.DiscardLen())
	assert.Equal(t, []*Investigator{inv}, s.DefeatedAt("London"))
	assert.True(t, s.HeldAsset("whiskey"), "defeated investigators keep their assets")

	s.RemoveDefeated(inv)
	assert.Empty(t, s.DefeatedAt("London"))
}

func TestLocationLookup(t *testing.T) {
	s := newTestState(t)
	_, err := s.Location("Rome")
	require.NoError(t, err)
	_, err = s.Location("R'lyeh")
	assert.Error(t, err)
}
