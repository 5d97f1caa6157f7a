package models

// LocationType is the kind of space a location is, and the affinity of a
// general encounter.
type LocationType string

const (
	LocationCity       LocationType = "city"
	LocationWilderness LocationType = "wilderness"
	LocationSea        LocationType = "sea"
	LocationNone       LocationType = "none"
)

// ParseLocationType maps a data value to a LocationType, defaulting to none.
func ParseLocationType(s string) LocationType {
	switch LocationType(s) {
	case LocationCity, LocationWilderness, LocationSea:
		return LocationType(s)
	}
	return LocationNone
}

// EncounterType names an encounter deck.
type EncounterType string

const (
	EncounterGeneral    EncounterType = "general"
	EncounterAmerica    EncounterType = "america"
	EncounterEurope     EncounterType = "europe"
	EncounterAsia       EncounterType = "asia"
	EncounterResearch   EncounterType = "research"
	EncounterOtherWorld EncounterType = "other_world"
	EncounterExpedition EncounterType = "expedition"
	EncounterSpecial    EncounterType = "special"
)

// EncounterTypes lists every encounter deck in load order.
var EncounterTypes = []EncounterType{
	EncounterGeneral,
	EncounterAmerica,
	EncounterEurope,
	EncounterAsia,
	EncounterResearch,
	EncounterOtherWorld,
	EncounterExpedition,
	EncounterSpecial,
}

// TicketType is a kind of travel ticket.
type TicketType string

const (
	TicketTrain TicketType = "train"
	TicketShip  TicketType = "ship"
)

// AssetTrait is the primary trait of an asset.
type AssetTrait string

const (
	TraitItem    AssetTrait = "item"
	TraitTrinket AssetTrait = "trinket"
	TraitTask    AssetTrait = "task"
	TraitService AssetTrait = "service"
	TraitAlly    AssetTrait = "ally"
)

func (t AssetTrait) valid() bool {
	switch t {
	case TraitItem, TraitTrinket, TraitTask, TraitService, TraitAlly:
		return true
	}
	return false
}

// AssetSecondaryTrait is an additional tag on an asset.
type AssetSecondaryTrait string

const (
	SecondaryMagical  AssetSecondaryTrait = "magical"
	SecondaryRelic    AssetSecondaryTrait = "relic"
	SecondaryTome     AssetSecondaryTrait = "tome"
	SecondaryWeapon   AssetSecondaryTrait = "weapon"
	SecondaryTeamwork AssetSecondaryTrait = "teamwork"
)

// Phase is a step of the round.
type Phase string

const (
	PhaseAction    Phase = "Action"
	PhaseEncounter Phase = "Encounter"
	PhaseMythos    Phase = "Mythos"
)
