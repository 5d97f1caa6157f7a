package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/eldritch-pursuit/internal/models"
)

func TestTravel(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)

	ui.Choose("Travel", "Rome", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, "Rome", anna.Location)
	assert.Equal(t, 0, ui.Pending())
}

func TestTravelChainsTickets(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	require.True(t, anna.AddTicket(models.TicketTrain))

	ui.Choose("1", "Rome", "London", "9")
	ui.WithAnswers(true)
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, "London", anna.Location)
	assert.Equal(t, 0, anna.Tickets(models.TicketTrain))
}

func TestActionOncePerTurn(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)

	ui.Choose("Travel", "Rome", "Travel", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, "Rome", anna.Location)
	assert.Contains(t, ui.Messages, `"Travel" is not an available action.`)
	require.NotEmpty(t, ui.Prompts)
	assert.Contains(t, ui.Prompts[0], "each action once per turn")
}

func TestActionBudget(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	anna.Health = 3

	ui.Choose("Rest", "Prepare for travel", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, 4, anna.Health)
	assert.Equal(t, 1, anna.Tickets(models.TicketTrain))
	assert.Equal(t, 1, ui.Pending())
	assert.Equal(t, models.PhaseEncounter, e.Phase())
}

func TestRest(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	anna.Health = 3
	anna.Sanity = 5

	ui.Choose("2", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, 4, anna.Health)
	assert.Equal(t, 5, anna.Sanity)
}

func TestRestBlockedByMonsters(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	anna.Health = 3
	e.State().Locations["London"].Monsters = []models.Monster{SurgeMonster}

	ui.Choose("Rest", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, 3, anna.Health)
	assert.Contains(t, ui.Messages, "You cannot rest while monsters are present!")
}

func TestTrade(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna", "bob")
	anna, bob := investigator(t, e, 0), investigator(t, e, 1)

	ui.Choose("Trade", "Give Whiskey to Bob Jenkins", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Empty(t, anna.AssetIDs())
	assert.Equal(t, []string{"whiskey"}, bob.AssetIDs())
}

func TestTradeAlone(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")

	ui.Choose("Trade", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Contains(t, ui.Messages, "There is no one here to trade with.")
	assert.Equal(t, []string{"whiskey"}, investigator(t, e, 0).AssetIDs())
}

func TestComponentAction(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	anna.Sanity = 3

	ui.Choose("Component action", "Whiskey", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, 4, anna.Sanity)
}

func TestDelayedInvestigatorLosesTurn(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	anna.Delayed = true

	ui.Choose("Travel", "Rome")
	require.NoError(t, e.Step(context.Background()))

	assert.False(t, anna.Delayed)
	assert.Equal(t, "London", anna.Location)
	assert.Equal(t, 2, ui.Pending())
	assert.Equal(t, models.PhaseEncounter, e.Phase())
}

func TestInvalidActionsEndTurn(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")

	ui.Choose("dance", "sing", "8", "0", "fly", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, 1, ui.Pending())
	assert.Equal(t, models.PhaseEncounter, e.Phase())
}

func TestAcquireBlockedByMonsters(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	e.State().Locations["London"].Monsters = []models.Monster{SurgeMonster}

	ui.Choose("Acquire assets", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Contains(t, ui.Messages, "You cannot acquire assets while monsters are present!")
}

func TestAcquireWithoutInfluenceBuysNothing(t *testing.T) {
	e, ui := newEngine(t, &spyAncient{doom: 10}, calmMythos, "anna")
	anna := investigator(t, e, 0)
	anna.Skills[models.SkillInfluence] = 0
	reserve := len(e.State().Assets.Reserve())

	ui.Choose("Acquire assets", "9")
	require.NoError(t, e.Step(context.Background()))

	assert.Equal(t, []string{"whiskey"}, anna.AssetIDs())
	assert.Len(t, e.State().Assets.Reserve(), reserve)
}
