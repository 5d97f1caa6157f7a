package models

import (
	"fmt"
	"math/rand"
	"slices"

	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/deck"
	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// MythosTrait classifies a mythos card.
type MythosTrait string

const (
	MythosEvent   MythosTrait = "event"
	MythosRumor   MythosTrait = "rumor"
	MythosOngoing MythosTrait = "ongoing"
)

// MythosIcon is a symbol resolved when a mythos card is drawn.
type MythosIcon string

const (
	IconAdvanceOmen        MythosIcon = "advance_omen"
	IconReckoning          MythosIcon = "reckoning"
	IconSpawnGates         MythosIcon = "spawn_gates"
	IconMonsterSurge       MythosIcon = "monster_surge"
	IconSpawnClues         MythosIcon = "spawn_clues"
	IconSpawnRumor         MythosIcon = "spawn_rumor"
	IconPlaceEldritchToken MythosIcon = "place_eldritch_token"
)

// MythosColor is the stage color of a mythos card.
type MythosColor string

const (
	MythosGreen  MythosColor = "green"
	MythosYellow MythosColor = "yellow"
	MythosBlue   MythosColor = "blue"
)

// MythosCard is a card from the mythos deck.
type MythosCard struct {
	Card
	ID         string
	Traits     []MythosTrait
	Color      MythosColor
	Difficulty string
	Icons      []MythosIcon
	// Rumor names the special encounter subtype a spawn_rumor icon places.
	Rumor      string
	Components []Component
}

// CardID implements deck.Card.
func (m *MythosCard) CardID() string { return m.ID }

// HasIcon reports whether the card shows icon.
func (m *MythosCard) HasIcon(icon MythosIcon) bool { return slices.Contains(m.Icons, icon) }

// HasTrait reports whether the card carries trait.
func (m *MythosCard) HasTrait(t MythosTrait) bool { return slices.Contains(m.Traits, t) }

// MythosStage is how many cards of each color go into one stage of the deck.
type MythosStage struct {
	Green, Yellow, Blue int
}

func (s MythosStage) count(c MythosColor) int {
	switch c {
	case MythosGreen:
		return s.Green
	case MythosYellow:
		return s.Yellow
	case MythosBlue:
		return s.Blue
	}
	return 0
}

// MythosFactory builds mythos cards and stage decks.
type MythosFactory struct {
	loader
}

// NewMythosFactory returns an unloaded factory; call Load before use.
func NewMythosFactory(src Source, builder *Builder, logger *zap.Logger) *MythosFactory {
	return &MythosFactory{loader: newLoader(CategoryMythos, src, builder, logger)}
}

// Load reads and validates every mythos record.
func (f *MythosFactory) Load() error {
	return f.load(func(r Record) error {
		_, err := f.build(r)
		return err
	})
}

// Create builds a fresh mythos card with id.
func (f *MythosFactory) Create(id string) (*MythosCard, error) {
	r, err := f.record(id)
	if err != nil {
		return nil, err
	}
	return f.build(r)
}

// BuildDeck assembles the mythos deck. Each stage takes the requested number
// of random cards per color and is shuffled on its own; stage I ends up on
// top. Colors that run short contribute what they have. With no stages every
// card is used in one shuffled pile.
func (f *MythosFactory) BuildDeck(stages []MythosStage, rng *rand.Rand) *deck.Deck[*MythosCard] {
	pool := map[MythosColor][]*MythosCard{}
	var all []*MythosCard
	for _, id := range f.order {
		m, err := f.build(f.records[id])
		if err != nil {
			continue
		}
		pool[m.Color] = append(pool[m.Color], m)
		all = append(all, m)
	}

	if len(stages) == 0 {
		d := deck.New("Mythos Deck", all, rng)
		d.Shuffle()
		return d
	}

	for _, c := range []MythosColor{MythosGreen, MythosYellow, MythosBlue} {
		cards := pool[c]
		rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	}
	var cards []*MythosCard
	for _, st := range stages {
		var stage []*MythosCard
		for _, c := range []MythosColor{MythosGreen, MythosYellow, MythosBlue} {
			n := min(st.count(c), len(pool[c]))
			stage = append(stage, pool[c][:n]...)
			pool[c] = pool[c][n:]
		}
		rng.Shuffle(len(stage), func(i, j int) { stage[i], stage[j] = stage[j], stage[i] })
		cards = append(cards, stage...)
	}
	return deck.New("Mythos Deck", cards, rng)
}

func (f *MythosFactory) build(r Record) (*MythosCard, error) {
	id := r.String("id")
	comps, err := f.builder.Sequence(r.Records("components"))
	if err != nil {
		return nil, fmt.Errorf("mythos %s: %w", id, err)
	}
	name := r.String("name")
	if name == "" {
		name = id
	}
	m := &MythosCard{
		Card:       f.header(r, name, CardMythos),
		ID:         id,
		Color:      MythosColor(r.String("color")),
		Difficulty: r.String("difficulty"),
		Rumor:      r.String("rumor"),
		Components: comps,
	}
	switch m.Color {
	case MythosGreen, MythosYellow, MythosBlue:
	default:
		return nil, apperrors.New(apperrors.CodeMalformedData, fmt.Sprintf("mythos %s: invalid color %q", id, m.Color))
	}
	for _, t := range r.Strings("traits") {
		m.Traits = append(m.Traits, MythosTrait(t))
	}
	for _, i := range r.Strings("icons") {
		m.Icons = append(m.Icons, MythosIcon(i))
	}
	return m, nil
}
