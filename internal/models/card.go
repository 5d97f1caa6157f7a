package models

import "strings"

// CardType classifies every physical card in the game.
type CardType int

const (
	CardMythos CardType = iota + 1
	CardMonster
	CardEncounter
	CardMystery
	CardAsset
	CardSpell
	CardCondition
	CardArtifact
	CardResearch
	CardSpecial
)

var cardTypeNames = map[CardType]string{
	CardMythos:    "Mythos",
	CardMonster:   "Monster",
	CardEncounter: "Encounter",
	CardMystery:   "Mystery",
	CardAsset:     "Asset",
	CardSpell:     "Spell",
	CardCondition: "Condition",
	CardArtifact:  "Artifact",
	CardResearch:  "Research",
	CardSpecial:   "Special",
}

func (t CardType) String() string {
	if s, ok := cardTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// CardSize is the physical size of a card.
type CardSize int

const (
	SizeStandard CardSize = iota + 1
	SizeMini
)

// Expansion tags the box a card comes from.
type Expansion int

const (
	ExpansionCore Expansion = iota + 1
	ExpansionForsakenLore
	ExpansionMountainsOfMadness
	ExpansionStrangeRemnants
	ExpansionUnderThePyramids
	ExpansionSignsOfCarcosa
	ExpansionTheDreamlands
	ExpansionCitiesInRuins
	ExpansionMasksOfNyarlathotep
)

var expansionNames = map[string]Expansion{
	"CORE":                  ExpansionCore,
	"FORSAKEN_LORE":         ExpansionForsakenLore,
	"MOUNTAINS_OF_MADNESS":  ExpansionMountainsOfMadness,
	"STRANGE_REMNANTS":      ExpansionStrangeRemnants,
	"UNDER_THE_PYRAMIDS":    ExpansionUnderThePyramids,
	"SIGNS_OF_CARCOSA":      ExpansionSignsOfCarcosa,
	"THE_DREAMLANDS":        ExpansionTheDreamlands,
	"CITIES_IN_RUINS":       ExpansionCitiesInRuins,
	"MASKS_OF_NYARLATHOTEP": ExpansionMasksOfNyarlathotep,
}

// ParseExpansion maps an expansion name to its tag. Unknown or empty names
// report ok=false and yield ExpansionCore.
func ParseExpansion(name string) (Expansion, bool) {
	if name == "" {
		return ExpansionCore, true
	}
	e, ok := expansionNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return ExpansionCore, false
	}
	return e, true
}

// Card is the immutable header shared by all card kinds.
type Card struct {
	Name        string
	Type        CardType
	Size        CardSize
	DoubleSided bool
	Expansion   Expansion
}
