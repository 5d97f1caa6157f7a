package models

import (
	"fmt"
	"math/rand"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/deck"
)

// Encounter is a single encounter card. It is discarded after one resolution.
type Encounter struct {
	Card
	ID           string
	Title        string
	Type         EncounterType
	Subtype      string
	LocationType LocationType
	Components   []Component
}

// CardID implements deck.Card.
func (e *Encounter) CardID() string { return e.ID }

// Affinity implements deck.Located.
func (e *Encounter) Affinity() LocationType { return e.LocationType }

// Resolve processes the encounter's components against inv.
func (e *Encounter) Resolve(s *GameState, inv *Investigator, ui UI) ([]Result, error) {
	return RunSequence(s, inv, ui, e.Components)
}

// EncounterDeck is a deck of encounters drawable by location type.
type EncounterDeck = deck.EncounterDeck[*Encounter, LocationType]

// EncounterFactory builds encounter cards for every encounter type.
type EncounterFactory struct {
	byType  map[EncounterType]*loader
	builder *Builder
}

// NewEncounterFactory returns an unloaded factory; call Load before use.
func NewEncounterFactory(src Source, builder *Builder, logger *zap.Logger) *EncounterFactory {
	f := &EncounterFactory{byType: map[EncounterType]*loader{}}
	for _, t := range EncounterTypes {
		l := newLoader(EncounterCategory(t), src, builder, logger)
		f.byType[t] = &l
	}
	return f
}

// Load reads every encounter category. Failing categories stay empty and are
// returned together once the others have loaded.
func (f *EncounterFactory) Load() error {
	var errs error
	for _, t := range EncounterTypes {
		l := f.byType[t]
		errs = multierr.Append(errs, l.load(func(r Record) error {
			_, err := buildEncounter(l, t, r)
			return err
		}))
	}
	return errs
}

// Count returns how many distinct encounters of type t were loaded.
func (f *EncounterFactory) Count(t EncounterType) int {
	if l, ok := f.byType[t]; ok {
		return len(l.order)
	}
	return 0
}

// Create builds a fresh encounter of type t with id.
func (f *EncounterFactory) Create(t EncounterType, id string) (*Encounter, error) {
	l, ok := f.byType[t]
	if !ok {
		return nil, fmt.Errorf("unknown encounter type %q", t)
	}
	r, err := l.record(id)
	if err != nil {
		return nil, err
	}
	return buildEncounter(l, t, r)
}

// Deck builds a shuffled deck of every encounter of type t.
func (f *EncounterFactory) Deck(t EncounterType, rng *rand.Rand) *EncounterDeck {
	var cards []*Encounter
	if l, ok := f.byType[t]; ok {
		for _, id := range l.order {
			r := l.records[id]
			for n := copies(r); n > 0; n-- {
				if e, err := buildEncounter(l, t, r); err == nil {
					cards = append(cards, e)
				}
			}
		}
	}
	d := deck.NewEncounterDeck[*Encounter, LocationType](string(t)+" encounters", cards, rng)
	d.Shuffle()
	return d
}

func buildEncounter(l *loader, t EncounterType, r Record) (*Encounter, error) {
	id := r.String("id")
	comps, err := l.builder.Sequence(r.Records("components"))
	if err != nil {
		return nil, fmt.Errorf("encounter %s: %w", id, err)
	}
	title := r.String("title")
	if title == "" {
		title = id
	}
	e := &Encounter{
		Card:         l.header(r, title, CardEncounter),
		ID:           id,
		Title:        title,
		Type:         t,
		Subtype:      r.String("subtype"),
		LocationType: LocationNone,
		Components:   comps,
	}
	if t == EncounterGeneral {
		e.LocationType = ParseLocationType(e.Subtype)
	}
	return e, nil
}
