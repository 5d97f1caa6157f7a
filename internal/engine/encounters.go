package engine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/dice"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

// Encounter source labels.
const (
	SourceGeneral    = "General"
	SourceResearch   = "Research"
	SourceOtherWorld = "Other World"
	SourceExpedition = "Expedition"
	SourceMystery    = "Mystery"
)

// MysteryClueCost is how many clues an investigator needs before the
// mystery encounter is offered.
const MysteryClueCost = 2

var continentNames = map[models.EncounterType]string{
	models.EncounterAmerica: "America",
	models.EncounterEurope:  "Europe",
	models.EncounterAsia:    "Asia/Australia",
}

type encounterSource struct {
	label string
	run   func() error
}

// encounterTurn fights the monsters at the investigator's space and then
// resolves one encounter there.
func (e *Engine) encounterTurn(p *models.Player) error {
	inv := p.Investigator
	loc, err := e.state.Location(inv.Location)
	if err != nil {
		return err
	}
	if loc.HasMonsters() {
		for loc.HasMonsters() && !inv.IsDefeated() {
			m := loc.Monsters[0]
			if !e.ask(fmt.Sprintf("A %s stands in %s (toughness %d). Fight it?", m.Name, loc.Name, m.Toughness)) {
				e.say(fmt.Sprintf("%s avoids the %s and ends the encounter.", inv.Name, m.Name))
				return nil
			}
			e.fight(inv, loc)
		}
		if inv.IsDefeated() || !e.ask("All monsters defeated. Encounter the space as well?") {
			return nil
		}
	}
	return e.chooseEncounter(inv, loc)
}

// fight resolves a combat encounter against the first monster at loc: a will
// test against its horror, then a strength test against its toughness.
func (e *Engine) fight(inv *models.Investigator, loc *models.Location) {
	m := loc.Monsters[0]
	if m.Horror > 0 {
		will := dice.Roll(e.state.Rand, inv.SkillValue(models.SkillWill))
		if lost := max(m.Horror-will.Successes, 0); lost > 0 {
			inv.LoseSanity(lost)
			e.say(fmt.Sprintf("The %s's horror costs %s %d sanity.", m.Name, inv.Name, lost))
		}
	}
	if inv.IsDefeated() {
		return
	}
	strength := dice.Roll(e.state.Rand, inv.SkillValue(models.SkillStrength))
	e.say(fmt.Sprintf("%s fights the %s: %v, %d success(es).", inv.Name, m.Name, strength.Rolls, strength.Successes))
	if strength.Successes >= max(m.Toughness, 1) {
		loc.RemoveMonster(0)
		e.say(fmt.Sprintf("The %s is defeated.", m.Name))
		e.logger.Info("monster defeated", zap.String("monster", m.Name), zap.String("location", loc.Name))
		return
	}
	lost := inv.TakeDamage(max(m.Damage, 1))
	e.say(fmt.Sprintf("The %s wounds %s for %d health.", m.Name, inv.Name, lost))
}

// encounterSources lists the encounters available to inv at loc.
func (e *Engine) encounterSources(inv *models.Investigator, loc *models.Location) []encounterSource {
	sources := []encounterSource{{SourceGeneral, func() error { return e.generalEncounter(inv, loc) }}}
	if name, ok := continentNames[loc.Continent]; ok {
		sources = append(sources, encounterSource{name, func() error { return e.continentEncounter(inv, loc) }})
	}
	if loc.Clues > 0 {
		sources = append(sources, encounterSource{SourceResearch, func() error { return e.researchEncounter(inv, loc) }})
	}
	if loc.Gate {
		sources = append(sources, encounterSource{SourceOtherWorld, func() error { return e.otherWorldEncounter(inv, loc) }})
	}
	if loc.Expedition {
		sources = append(sources, encounterSource{SourceExpedition, func() error { return e.expeditionEncounter(inv, loc) }})
	}
	if loc.Rumor != "" {
		sources = append(sources, encounterSource{"Rumor: " + loc.Rumor, func() error { return e.rumorEncounter(inv, loc) }})
	}
	if inv.Clues >= MysteryClueCost {
		sources = append(sources, encounterSource{SourceMystery, func() error { return e.mysteryEncounter(inv) }})
	}
	for _, d := range e.state.DefeatedAt(loc.Name) {
		if d == inv {
			continue
		}
		sources = append(sources, encounterSource{"Investigator: " + d.Name, func() error { return e.aidEncounter(inv, d) }})
	}
	return sources
}

func (e *Engine) chooseEncounter(inv *models.Investigator, loc *models.Location) error {
	sources := e.encounterSources(inv, loc)
	labels := make([]string, len(sources))
	for i, s := range sources {
		labels[i] = s.label
	}
	i := models.Choose(e.ui, fmt.Sprintf("Choose an encounter in %s:", loc.Name), labels)
	if i < 0 {
		i = 0
	}
	e.logger.Info("encounter", zap.String("investigator", inv.ID), zap.String("location", loc.Name), zap.String("source", labels[i]))
	return sources[i].run()
}

func drawTop(d *models.EncounterDeck) (*models.Encounter, bool) { return d.Draw() }

// resolve draws a card from deck t, resolves it against inv and discards it.
// It reports whether every test on the card passed.
func (e *Engine) resolve(inv *models.Investigator, t models.EncounterType, draw func(*models.EncounterDeck) (*models.Encounter, bool)) (bool, error) {
	d, ok := e.state.Encounters[t]
	if !ok {
		return false, nil
	}
	enc, ok := draw(d)
	if !ok {
		e.say(fmt.Sprintf("The %s encounter deck has nothing to offer.", t))
		return false, nil
	}
	if enc.Title != "" {
		e.say(enc.Title)
	}
	results, err := enc.Resolve(e.state, inv, e.ui)
	if derr := d.Discard(enc); derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		return false, fmt.Errorf("encounter %s: %w", enc.ID, err)
	}
	return models.Passed(results), nil
}

func (e *Engine) generalEncounter(inv *models.Investigator, loc *models.Location) error {
	_, err := e.resolve(inv, models.EncounterGeneral, func(d *models.EncounterDeck) (*models.Encounter, bool) {
		if enc, ok := d.DrawByAffinity(loc.Type); ok {
			return enc, true
		}
		return d.Draw()
	})
	return err
}

func (e *Engine) continentEncounter(inv *models.Investigator, loc *models.Location) error {
	drawn := false
	_, err := e.resolve(inv, loc.Continent, func(d *models.EncounterDeck) (*models.Encounter, bool) {
		enc, ok := d.DrawWhere(func(c *models.Encounter) bool { return c.Subtype == loc.Name })
		drawn = ok
		return enc, ok
	})
	if err != nil || drawn {
		return err
	}
	return e.generalEncounter(inv, loc)
}

func (e *Engine) researchEncounter(inv *models.Investigator, loc *models.Location) error {
	passed, err := e.resolve(inv, models.EncounterResearch, drawTop)
	if err != nil || !passed || loc.Clues == 0 {
		return err
	}
	loc.Clues--
	inv.GainClue(1)
	e.say(fmt.Sprintf("%s takes the clue from %s.", inv.Name, loc.Name))
	return nil
}

func (e *Engine) otherWorldEncounter(inv *models.Investigator, loc *models.Location) error {
	passed, err := e.resolve(inv, models.EncounterOtherWorld, drawTop)
	if err != nil || !passed {
		return err
	}
	loc.Gate = false
	e.say(fmt.Sprintf("%s closes the gate in %s.", inv.Name, loc.Name))
	e.logger.Info("gate closed", zap.String("location", loc.Name))
	return nil
}

func (e *Engine) expeditionEncounter(inv *models.Investigator, loc *models.Location) error {
	passed, err := e.resolve(inv, models.EncounterExpedition, func(d *models.EncounterDeck) (*models.Encounter, bool) {
		return d.DrawWhere(func(c *models.Encounter) bool { return c.Subtype == loc.Name })
	})
	if err != nil || !passed {
		return err
	}
	loc.Expedition = false
	next := e.randomLocation(func(l *models.Location) bool {
		return l != loc && !l.Expedition && l.Type == models.LocationWilderness
	})
	if next != nil {
		next.Expedition = true
		e.say(fmt.Sprintf("The expedition moves on to %s.", next.Name))
	}
	return nil
}

func (e *Engine) rumorEncounter(inv *models.Investigator, loc *models.Location) error {
	rumor := loc.Rumor
	passed, err := e.resolve(inv, models.EncounterSpecial, func(d *models.EncounterDeck) (*models.Encounter, bool) {
		return d.DrawWhere(func(c *models.Encounter) bool { return c.Subtype == rumor })
	})
	if err != nil || !passed {
		return err
	}
	loc.Rumor = ""
	e.state.RetreatDoom(1)
	e.say(fmt.Sprintf("The %s rumor is resolved. Doom retreats to %d.", rumor, e.state.Doom))
	return nil
}

func (e *Engine) mysteryEncounter(inv *models.Investigator) error {
	_, err := e.resolve(inv, models.EncounterSpecial, func(d *models.EncounterDeck) (*models.Encounter, bool) {
		return d.DrawWhere(func(c *models.Encounter) bool { return c.Subtype == "mystery" })
	})
	return err
}

// aidEncounter recovers what a defeated investigator left behind and takes
// them off the board.
func (e *Engine) aidEncounter(inv, fallen *models.Investigator) error {
	for _, a := range append([]*models.Asset(nil), fallen.Assets...) {
		fallen.RemoveAsset(a)
		if err := inv.AddAsset(a); err != nil {
			return err
		}
	}
	if fallen.Clues > 0 {
		inv.GainClue(fallen.Clues)
		fallen.Clues = 0
	}
	e.state.RemoveDefeated(fallen)
	e.say(fmt.Sprintf("%s recovers what %s left behind.", inv.Name, fallen.Name))
	return nil
}

// randomLocation picks a random location matching pred, or nil.
func (e *Engine) randomLocation(pred func(*models.Location) bool) *models.Location {
	var names []string
	for name, l := range e.state.Locations {
		if pred(l) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return e.state.Locations[names[e.state.Rand.Intn(len(names))]]
}
