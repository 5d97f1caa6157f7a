package models

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// Skill names used by skill tests and asset bonuses.
const (
	SkillLore        = "lore"
	SkillInfluence   = "influence"
	SkillObservation = "observation"
	SkillStrength    = "strength"
	SkillWill        = "will"
)

// Skills lists every skill in sheet order.
var Skills = []string{SkillLore, SkillInfluence, SkillObservation, SkillStrength, SkillWill}

// MaxTickets is the most travel tickets an investigator may hold.
const MaxTickets = 2

// Investigator is the character a player controls.
type Investigator struct {
	ID           string
	Name         string
	Health       int
	MaxHealth    int
	Sanity       int
	MaxSanity    int
	Skills       map[string]int
	Clues        int
	TrainTickets int
	ShipTickets  int
	Location     string
	Actions      int
	Delayed      bool
	Conditions   []*Condition
	Assets       []*Asset
}

// Heal restores health up to the maximum and returns the amount gained.
func (i *Investigator) Heal(n int) int {
	before := i.Health
	i.Health = min(i.MaxHealth, i.Health+max(n, 0))
	return i.Health - before
}

// TakeDamage lowers health, never below zero, and returns the amount lost.
func (i *Investigator) TakeDamage(n int) int {
	before := i.Health
	i.Health = max(0, i.Health-max(n, 0))
	return before - i.Health
}

// RestoreSanity restores sanity up to the maximum.
func (i *Investigator) RestoreSanity(n int) int {
	before := i.Sanity
	i.Sanity = min(i.MaxSanity, i.Sanity+max(n, 0))
	return i.Sanity - before
}

// LoseSanity lowers sanity, never below zero.
func (i *Investigator) LoseSanity(n int) int {
	before := i.Sanity
	i.Sanity = max(0, i.Sanity-max(n, 0))
	return before - i.Sanity
}

// GainClue adds clue tokens.
func (i *Investigator) GainClue(n int) {
	if n > 0 {
		i.Clues += n
	}
}

// UseClue spends n clues. It reports false, spending nothing, when short.
func (i *Investigator) UseClue(n int) bool {
	if n < 0 || i.Clues < n {
		return false
	}
	i.Clues -= n
	return true
}

// AddTicket gains a ticket of type t. It reports false when the investigator
// already holds MaxTickets.
func (i *Investigator) AddTicket(t TicketType) bool {
	if i.TrainTickets+i.ShipTickets >= MaxTickets {
		return false
	}
	switch t {
	case TicketTrain:
		i.TrainTickets++
	case TicketShip:
		i.ShipTickets++
	default:
		return false
	}
	return true
}

// UseTicket spends a ticket of type t.
func (i *Investigator) UseTicket(t TicketType) bool {
	switch {
	case t == TicketTrain && i.TrainTickets > 0:
		i.TrainTickets--
	case t == TicketShip && i.ShipTickets > 0:
		i.ShipTickets--
	default:
		return false
	}
	return true
}

// Tickets returns how many tickets of type t are held.
func (i *Investigator) Tickets(t TicketType) int {
	if t == TicketShip {
		return i.ShipTickets
	}
	return i.TrainTickets
}

// SkillValue is the base skill plus the single highest asset bonus for it.
// Bonuses from several assets do not stack.
func (i *Investigator) SkillValue(skill string) int {
	bonus := 0
	for _, a := range i.Assets {
		bonus = max(bonus, a.SkillBonus[skill])
	}
	return i.Skills[skill] + bonus
}

// AddCondition gives the investigator a condition card.
func (i *Investigator) AddCondition(c *Condition) {
	i.Conditions = append(i.Conditions, c)
}

// HasCondition reports whether a condition with id is held.
func (i *Investigator) HasCondition(id string) bool {
	return slices.ContainsFunc(i.Conditions, func(c *Condition) bool { return c.ID == id })
}

// HasConditionTrait reports whether any held condition carries trait.
func (i *Investigator) HasConditionTrait(trait string) bool {
	return slices.ContainsFunc(i.Conditions, func(c *Condition) bool { return c.HasTrait(trait) })
}

// RemoveCondition takes the first held condition with id away and returns it.
func (i *Investigator) RemoveCondition(id string) (*Condition, bool) {
	idx := slices.IndexFunc(i.Conditions, func(c *Condition) bool { return c.ID == id })
	if idx < 0 {
		return nil, false
	}
	c := i.Conditions[idx]
	i.Conditions = slices.Delete(i.Conditions, idx, idx+1)
	return c, true
}

// ConditionIDs returns the ids of the held conditions in order.
func (i *Investigator) ConditionIDs() []string {
	ids := make([]string, len(i.Conditions))
	for n, c := range i.Conditions {
		ids[n] = c.ID
	}
	return ids
}

// AddAsset gives the investigator an asset. Holding the same card twice is an
// invariant violation.
func (i *Investigator) AddAsset(a *Asset) error {
	if slices.Contains(i.Assets, a) {
		return apperrors.WithMetadata(apperrors.CodeInvariantViolation,
			fmt.Sprintf("%s already holds %s", i.Name, a.ID),
			map[string]string{"investigator": i.ID, "asset": a.ID})
	}
	i.Assets = append(i.Assets, a)
	return nil
}

// RemoveAsset takes the exact card away. It reports false if not held.
func (i *Investigator) RemoveAsset(a *Asset) bool {
	idx := slices.Index(i.Assets, a)
	if idx < 0 {
		return false
	}
	i.Assets = slices.Delete(i.Assets, idx, idx+1)
	return true
}

// AssetIDs returns the ids of the held assets in order.
func (i *Investigator) AssetIDs() []string {
	ids := make([]string, len(i.Assets))
	for n, a := range i.Assets {
		ids[n] = a.ID
	}
	return ids
}

// IsDefeated reports whether health or sanity has run out.
func (i *Investigator) IsDefeated() bool {
	return i.Health <= 0 || i.Sanity <= 0
}

// InvestigatorFactory builds investigators from the "investigators" category.
type InvestigatorFactory struct {
	loader
}

// NewInvestigatorFactory returns an unloaded factory; call Load before use.
func NewInvestigatorFactory(src Source, logger *zap.Logger) *InvestigatorFactory {
	return &InvestigatorFactory{loader: newLoader(CategoryInvestigators, src, nil, logger)}
}

// Load reads and validates every investigator record.
func (f *InvestigatorFactory) Load() error {
	return f.load(func(r Record) error {
		_, err := f.build(r)
		return err
	})
}

// Create builds a fresh investigator with id. Starting assets are returned
// as ids for the caller to take from the asset deck.
func (f *InvestigatorFactory) Create(id string) (*Investigator, []string, error) {
	r, err := f.record(id)
	if err != nil {
		return nil, nil, err
	}
	inv, err := f.build(r)
	if err != nil {
		return nil, nil, err
	}
	return inv, r.Strings("starting_assets"), nil
}

func (f *InvestigatorFactory) build(r Record) (*Investigator, error) {
	id := r.String("id")
	health, ok := r.IntOK("health")
	if !ok || health <= 0 {
		return nil, apperrors.New(apperrors.CodeMalformedData, fmt.Sprintf("investigator %s needs a positive health", id))
	}
	sanity, ok := r.IntOK("sanity")
	if !ok || sanity <= 0 {
		return nil, apperrors.New(apperrors.CodeMalformedData, fmt.Sprintf("investigator %s needs a positive sanity", id))
	}
	name := r.String("name")
	if name == "" {
		name = id
	}
	skills := r.IntMap("skills")
	if skills == nil {
		skills = map[string]int{}
	}
	return &Investigator{
		ID:           id,
		Name:         name,
		Health:       health,
		MaxHealth:    health,
		Sanity:       sanity,
		MaxSanity:    sanity,
		Skills:       skills,
		Clues:        r.Int("clues", 0),
		TrainTickets: r.Int("train_tickets", 0),
		ShipTickets:  r.Int("ship_tickets", 0),
		Location:     r.String("starting_location"),
	}, nil
}
