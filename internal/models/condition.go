package models

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// ConditionSide is one face of a condition card.
type ConditionSide struct {
	Title      string
	Text       string
	Components []Component
}

// Condition is a double-sided card held by an investigator. Unlike other
// cards it keeps state: which side is up and which back variant was chosen.
type Condition struct {
	Card
	ID           string
	Traits       []string
	Front        ConditionSide
	Backs        []ConditionSide
	HasEffect    bool
	HasAction    bool
	HasReckoning bool
	// Variants is how many of the backs can come up on a random flip.
	Variants     int

	flipped  bool
	selected int
}

// CardID implements deck.Card.
func (c *Condition) CardID() string { return c.ID }

// CardTraits implements deck.Traited.
func (c *Condition) CardTraits() []string { return c.Traits }

// HasTrait reports whether the condition carries trait.
func (c *Condition) HasTrait(trait string) bool { return slices.Contains(c.Traits, trait) }

// Flipped reports whether a back side is up.
func (c *Condition) Flipped() bool { return c.flipped }

// SelectedVariant returns the chosen back index, or -1.
func (c *Condition) SelectedVariant() int { return c.selected }

// SelectVariant chooses the back that will show when the card flips. It
// reports false for an index out of range.
func (c *Condition) SelectVariant(i int) bool {
	if i < 0 || i >= len(c.Backs) {
		return false
	}
	c.selected = i
	return true
}

// VariantCount returns how many backs a random flip chooses among.
func (c *Condition) VariantCount() int { return min(c.Variants, len(c.Backs)) }

// Flip turns the card over. Going front to back needs a variant, either
// passed here (variant >= 0) or selected earlier; without one the card stays
// face up. Going back to front always succeeds.
func (c *Condition) Flip(variant int) *ConditionSide {
	if c.flipped {
		c.flipped = false
		return c.ActiveSide()
	}
	if variant >= 0 {
		c.SelectVariant(variant)
	}
	if c.selected >= 0 {
		c.flipped = true
	}
	return c.ActiveSide()
}

// ActiveSide returns the side currently up.
func (c *Condition) ActiveSide() *ConditionSide {
	if c.flipped && c.selected >= 0 && c.selected < len(c.Backs) {
		return &c.Backs[c.selected]
	}
	return &c.Front
}

// Reset clears flip state before the card goes back to its deck.
func (c *Condition) Reset() {
	c.flipped = false
	c.selected = -1
}

// ConditionFactory builds condition cards from the "conditions" category.
type ConditionFactory struct {
	loader
}

// NewConditionFactory returns an unloaded factory; call Load before use.
func NewConditionFactory(src Source, builder *Builder, logger *zap.Logger) *ConditionFactory {
	return &ConditionFactory{loader: newLoader(CategoryConditions, src, builder, logger)}
}

// Load reads and validates every condition record.
func (f *ConditionFactory) Load() error {
	return f.load(func(r Record) error {
		_, err := f.build(r)
		return err
	})
}

// Create builds a fresh condition with id.
func (f *ConditionFactory) Create(id string) (*Condition, error) {
	r, err := f.record(id)
	if err != nil {
		return nil, err
	}
	return f.build(r)
}

// CreateAll builds one instance per copy of every loaded condition.
func (f *ConditionFactory) CreateAll() []*Condition {
	var out []*Condition
	for _, id := range f.order {
		r := f.records[id]
		for n := copies(r); n > 0; n-- {
			if c, err := f.build(r); err == nil {
				out = append(out, c)
			}
		}
	}
	return out
}

func (f *ConditionFactory) build(r Record) (*Condition, error) {
	id := r.String("id")
	front, err := f.side(r.Record("front"), "Unknown Condition")
	if err != nil {
		return nil, fmt.Errorf("condition %s front: %w", id, err)
	}
	c := &Condition{
		ID:           id,
		Traits:       r.Strings("traits"),
		Front:        front,
		HasEffect:    r.Bool("effect", false),
		HasAction:    r.Bool("action", false),
		HasReckoning: r.Bool("reckoning", false),
		selected:     -1,
	}
	c.Card = f.header(r, front.Title, CardCondition)
	c.DoubleSided = true
	for i, br := range r.Records("backs") {
		back, err := f.side(br, "Unknown Effect")
		if err != nil {
			return nil, fmt.Errorf("condition %s back %d: %w", id, i, err)
		}
		c.Backs = append(c.Backs, back)
	}
	c.Variants = r.Int("variants", len(c.Backs))
	if c.Variants < 0 {
		return nil, fmt.Errorf("condition %s: negative variants %d", id, c.Variants)
	}
	return c, nil
}

func (f *ConditionFactory) side(r Record, title string) (ConditionSide, error) {
	if r == nil {
		return ConditionSide{Title: title}, nil
	}
	comps, err := f.builder.Sequence(r.Records("components"))
	if err != nil {
		return ConditionSide{}, err
	}
	if t := r.String("title"); t != "" {
		title = t
	}
	return ConditionSide{Title: title, Text: r.String("text"), Components: comps}, nil
}
