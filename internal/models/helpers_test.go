package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type memSource map[string][]Record

func (m memSource) Load(category string) ([]Record, error) {
	return m[category], nil
}

// stubUI answers from queues and records every message.
type stubUI struct {
	choices  []string
	yes      []bool
	messages []string
	prompts  []string
}

func (u *stubUI) ShowMessage(text string) { u.messages = append(u.messages, text) }

func (u *stubUI) AskYesNo(prompt string) bool {
	u.prompts = append(u.prompts, prompt)
	if len(u.yes) == 0 {
		return false
	}
	a := u.yes[0]
	u.yes = u.yes[1:]
	return a
}

func (u *stubUI) ShowChoice(prompt string, _ []string) string {
	u.prompts = append(u.prompts, prompt)
	if len(u.choices) == 0 {
		return ""
	}
	a := u.choices[0]
	u.choices = u.choices[1:]
	return a
}

func fixtureSource() memSource {
	return memSource{
		CategoryAssets: {
			{"id": "derringer", "name": ".18 Derringer", "cost": 3, "primary_trait": "item",
				"secondary_traits": []any{"weapon"}, "skill_bonus": map[string]any{"strength": 2}},
			{"id": "whiskey", "name": "Whiskey", "cost": 1, "primary_trait": "item"},
			{"id": "cat_burglar", "name": "Cat Burglar", "cost": 2, "primary_trait": "ally",
				"skill_bonus": map[string]any{"observation": 1}},
			{"id": "lucky_case", "name": "Lucky Cigarette Case", "cost": 1, "primary_trait": "trinket"},
			{"id": "axe", "name": "Axe", "cost": 2, "primary_trait": "item",
				"secondary_traits": []any{"weapon"}, "skill_bonus": map[string]any{"strength": 1}},
			{"id": "bank_loan", "name": "Bank Loan", "cost": 0, "primary_trait": "service"},
			{"id": "broken", "primary_trait": "gadget"},
		},
		CategoryConditions: {
			{"id": "paranoia", "traits": []any{"madness"}, "copies": 2,
				"front": map[string]any{"title": "Paranoia", "text": "You trust no one."},
				"backs": []any{
					map[string]any{"title": "Hallucinations", "components": []any{
						map[string]any{"type": "change_sanity", "amount": -1},
					}},
				}},
			{"id": "amnesia", "traits": []any{"madness"}, "reckoning": true,
				"front": map[string]any{"title": "Amnesia", "components": []any{
					map[string]any{"type": "change_sanity", "amount": -1},
				}}},
			{"id": "debt", "traits": []any{"deal"}, "front": map[string]any{"title": "Debt"}},
			{"id": "internal_injury", "traits": []any{"injury"}, "front": map[string]any{"title": "Internal Injury"}},
		},
		CategoryInvestigators: {
			{"id": "anna", "name": "Anna Blackwood", "health": 5, "sanity": 5, "clues": 2,
				"skills": map[string]any{"lore": 2, "influence": 3, "observation": 2, "strength": 1, "will": 3},
				"starting_location": "London", "starting_assets": []any{"whiskey"}},
			{"id": "zed", "name": "Zed", "health": 0, "sanity": 3},
		},
		CategoryLocations: {
			{"id": "London", "type": "city", "continent": "europe", "connections": []any{"Rome", "Space 1"},
				"train_paths": []any{"Rome"}, "ship_paths": []any{"Arkham"}},
			{"id": "Rome", "type": "city", "continent": "europe", "connections": []any{"London"},
				"train_paths": []any{"London"}},
			{"id": "Arkham", "type": "city", "continent": "america", "ship_paths": []any{"London"}},
			{"id": "Space 1", "type": "wilderness", "connections": []any{"London", "Atlantis"}},
		},
		CategoryMythos: {
			{"id": "g1", "color": "green", "icons": []any{"advance_omen"}},
			{"id": "g2", "color": "green"},
			{"id": "y1", "color": "yellow", "icons": []any{"spawn_clues"}},
			{"id": "y2", "color": "yellow"},
			{"id": "y3", "color": "yellow"},
			{"id": "b1", "color": "blue", "traits": []any{"rumor"}},
			{"id": "bad", "color": "purple"},
		},
		EncounterCategory(EncounterGeneral): {
			{"id": "city_1", "subtype": "city", "components": []any{
				map[string]any{"type": "narrative", "text": "A quiet street."},
			}},
			{"id": "sea_1", "subtype": "sea", "components": []any{
				map[string]any{"type": "change_health", "amount": -1},
			}},
		},
	}
}

func newTestState(t *testing.T) *GameState {
	t.Helper()
	f, err := LoadFactories(fixtureSource(), nil)
	require.NoError(t, err)
	s := NewGameState(f, rand.New(rand.NewSource(7)), nil)
	s.Reset(Options{StartingDoom: 14, MysteriesToSolve: 3, ReserveSize: 2})
	return s
}

func newTestInvestigator(t *testing.T, s *GameState) *Investigator {
	t.Helper()
	p, err := s.AddInvestigator("Player 1", "anna")
	require.NoError(t, err)
	return p.Investigator
}
