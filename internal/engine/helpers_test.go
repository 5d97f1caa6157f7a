package engine

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/eldritch-pursuit/internal/autoplay"
	"github.com/tatianab/eldritch-pursuit/internal/data"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

const calmMythos = `
- id: calm
  name: Calm Night
  color: green
  components:
    - {type: narrative, text: Nothing stirs.}
`

func fixtureFS(mythos string) fstest.MapFS {
	return fstest.MapFS{
		"locations.yaml": {Data: []byte(`
- id: London
  type: city
  continent: europe
  connections: [Rome]
  train_paths: [Rome]
- id: Rome
  type: city
  connections: [London, Space 1]
  train_paths: [London]
- id: Space 1
  type: wilderness
  connections: [Rome]
`)},
		"investigators.yaml": {Data: []byte(`
- id: anna
  name: Anna Blackwood
  health: 5
  sanity: 5
  skills: {influence: 3, strength: 1, will: 3}
  starting_location: London
  starting_assets: [whiskey]
- id: bob
  name: Bob Jenkins
  health: 6
  sanity: 4
  skills: {influence: 4}
  starting_location: London
`)},
		"assets.yaml": {Data: []byte(`
- id: whiskey
  name: Whiskey
  cost: 1
  primary_trait: item
  effects:
    - kind: action
      text: Recover 1 Sanity.
      components:
        - {type: change_sanity, amount: 1}
- id: derringer
  name: Derringer
  cost: 3
  primary_trait: item
  secondary_traits: [weapon]
`)},
		"encounters/general.yaml": {Data: []byte(`
- id: city_1
  title: Quiet Streets
  subtype: city
  components:
    - {type: narrative, text: The streets are quiet.}
- id: wild_1
  title: Open Plains
  subtype: wilderness
  components:
    - {type: narrative, text: Wind over the grass.}
`)},
		"encounters/europe.yaml": {Data: []byte(`
- id: london_1
  title: The Museum
  subtype: London
  components:
    - {type: gain_clue, count: 1}
`)},
		"encounters/research.yaml": {Data: []byte(`
- id: research_1
  title: Old Letters
  components:
    - {type: narrative, text: The letters name a place.}
`)},
		"encounters/other_world.yaml": {Data: []byte(`
- id: other_world_1
  title: Beyond the Veil
  components:
    - {type: narrative, text: You seal the rift behind you.}
`)},
		"encounters/expedition.yaml": {Data: []byte(`
- id: expedition_1
  title: Into the Hills
  subtype: Space 1
  components:
    - {type: narrative, text: The trail goes cold.}
`)},
		"encounters/special.yaml": {Data: []byte(`
- id: drought_1
  title: The Drought
  subtype: drought
  components:
    - {type: narrative, text: Rain at last.}
- id: final_mystery
  title: The Final Mystery
  subtype: mystery
  components:
    - {type: solve_mystery, clue_cost: 2}
`)},
		"conditions.yaml": {Data: []byte(`
- id: debt
  traits: [deal]
  reckoning: true
  front:
    title: Debt
    components:
      - {type: change_health, amount: -1}
`)},
		"mythos.yaml": {Data: []byte(mythos)},
	}
}

// spyAncient records every hook the engine calls.
type spyAncient struct {
	doom       int
	over, win  bool
	setups     int
	reckonings int
	awakenings int
	checks     int
}

func (a *spyAncient) Name() string                       { return "The Spy" }
func (a *spyAncient) StartingDoom() int                  { return a.doom }
func (a *spyAncient) MysteriesToSolve() int              { return 3 }
func (a *spyAncient) MythosStages() []models.MythosStage { return nil }

func (a *spyAncient) OnSetup(*models.GameState, models.UI)     { a.setups++ }
func (a *spyAncient) OnReckoning(*models.GameState, models.UI) { a.reckonings++ }
func (a *spyAncient) OnAwakening(*models.GameState, models.UI) { a.awakenings++ }

func (a *spyAncient) CheckDefeatConditions(*models.GameState) (bool, bool) {
	a.checks++
	return a.over, a.win
}

func newState(t *testing.T, mythos string) *models.GameState {
	t.Helper()
	return stateFrom(t, fixtureFS(mythos))
}

func stateFrom(t *testing.T, fsys fstest.MapFS) *models.GameState {
	t.Helper()
	f, err := models.LoadFactories(data.New(fsys), nil)
	require.NoError(t, err)
	return models.NewGameState(f, rand.New(rand.NewSource(3)), nil)
}

// newEngine sets up a game with the given investigators and returns the
// engine with its scripted UI.
func newEngine(t *testing.T, ancient AncientOne, mythos string, investigators ...string) (*Engine, *autoplay.Scripted) {
	t.Helper()
	ui := autoplay.NewScripted()
	e := NewEngine(newState(t, mythos), ancient, ui, DefaultOptions(), nil)
	require.NoError(t, e.Setup(len(investigators), investigators))
	return e, ui
}

func investigator(t *testing.T, e *Engine, n int) *models.Investigator {
	t.Helper()
	players := e.State().Players.All()
	require.Greater(t, len(players), n)
	return players[n].Investigator
}
