package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/models"
)

// SurgeMonster is placed on every open gate by a monster surge.
var SurgeMonster = models.Monster{Name: "Cultist", Toughness: 1, Damage: 1, Horror: 1}

// mythosPhase draws and resolves one mythos card, advances doom and hands
// control back to the lead investigator.
func (e *Engine) mythosPhase() error {
	s := e.state
	card, drawn := s.Mythos.Draw()
	s.AdvanceDoom(e.opts.DoomPerMythos)
	e.say(fmt.Sprintf("Doom advances to %d.", s.Doom))

	var err error
	if drawn {
		err = e.resolveMythos(card)
		if derr := s.Mythos.Discard(card); derr != nil && err == nil {
			err = derr
		}
	} else {
		e.logger.Warn("mythos deck exhausted", zap.Int("round", s.Round))
	}

	if !e.awakened && s.Doom <= s.DoomFloor {
		e.awakened = true
		e.logger.Info("ancient one awakens", zap.String("ancient_one", e.ancient.Name()))
		e.ancient.OnAwakening(s, e.ui)
	}
	s.Players.ResetTurnOrder()
	s.Round++
	return err
}

func (e *Engine) resolveMythos(card *models.MythosCard) error {
	s := e.state
	e.say(fmt.Sprintf("Mythos: %s", card.Name))
	e.logger.Info("mythos drawn", zap.String("card", card.ID), zap.String("color", string(card.Color)))

	for _, icon := range card.Icons {
		switch icon {
		case models.IconAdvanceOmen:
			s.AdvanceDoom(1)
			e.say(fmt.Sprintf("The omen advances. Doom is %d.", s.Doom))
		case models.IconReckoning:
			if err := e.reckoning(); err != nil {
				return err
			}
		case models.IconSpawnGates:
			if name, ok := s.SpawnGate(); ok {
				e.say(fmt.Sprintf("A gate opens in %s.", name))
			}
		case models.IconMonsterSurge:
			for _, name := range s.Gates() {
				loc := s.Locations[name]
				loc.Monsters = append(loc.Monsters, SurgeMonster)
				e.say(fmt.Sprintf("A %s emerges from the gate in %s.", SurgeMonster.Name, name))
			}
		case models.IconSpawnClues:
			for _, name := range s.SpawnClue(1) {
				e.say(fmt.Sprintf("A clue appears in %s.", name))
			}
		case models.IconSpawnRumor:
			e.spawnRumor(card)
		case models.IconPlaceEldritchToken:
			s.EldritchTokens++
			e.say(fmt.Sprintf("An eldritch token is placed (%d).", s.EldritchTokens))
		}
	}

	if len(card.Components) == 0 {
		return nil
	}
	inv := e.leadInvestigator()
	if inv == nil {
		return nil
	}
	if _, err := models.RunSequence(s, inv, e.ui, card.Components); err != nil {
		return fmt.Errorf("mythos %s: %w", card.ID, err)
	}
	return nil
}

// reckoning runs the Ancient One's reckoning and then every reckoning effect
// on the conditions investigators hold.
func (e *Engine) reckoning() error {
	e.ancient.OnReckoning(e.state, e.ui)
	for _, p := range e.state.Players.All() {
		inv := p.Investigator
		if inv == nil || inv.IsDefeated() {
			continue
		}
		for _, c := range append([]*models.Condition(nil), inv.Conditions...) {
			side := c.ActiveSide()
			if !c.HasReckoning || len(side.Components) == 0 {
				continue
			}
			e.say(fmt.Sprintf("Reckoning: %s (%s).", c.Name, inv.Name))
			if _, err := models.RunSequence(e.state, inv, e.ui, side.Components); err != nil {
				return fmt.Errorf("reckoning %s: %w", c.ID, err)
			}
		}
	}
	return nil
}

func (e *Engine) spawnRumor(card *models.MythosCard) {
	if card.Rumor == "" {
		return
	}
	loc := e.randomLocation(func(l *models.Location) bool {
		return l.Type == models.LocationWilderness && l.Rumor == ""
	})
	if loc == nil {
		return
	}
	loc.Rumor = card.Rumor
	e.say(fmt.Sprintf("A rumor spreads: %s in %s.", card.Rumor, loc.Name))
}

// leadInvestigator returns the lead's investigator, or the next living one
// in turn order when the lead is defeated.
func (e *Engine) leadInvestigator() *models.Investigator {
	players := e.state.Players.All()
	start := 0
	for i, p := range players {
		if p.Lead {
			start = i
		}
	}
	for n := range len(players) {
		inv := players[(start+n)%len(players)].Investigator
		if inv != nil && !inv.IsDefeated() {
			return inv
		}
	}
	return nil
}
