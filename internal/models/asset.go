package models

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// EffectKind says when an asset effect applies.
type EffectKind string

const (
	EffectPassive EffectKind = "passive"
	EffectAction  EffectKind = "action"
	EffectDiscard EffectKind = "discard"
)

// AssetEffect is one printed effect. Components is empty for effects that
// are only rules text.
type AssetEffect struct {
	Kind       EffectKind
	Text       string
	Components []Component
}

// Asset is an item, trinket, task, service or ally card.
type Asset struct {
	Card
	ID              string
	Cost            int
	PrimaryTrait    AssetTrait
	SecondaryTraits []AssetSecondaryTrait
	Effects         []AssetEffect
	SkillBonus      map[string]int
	Reroll          int
	AdditionalDice  int
	FlavorText      string
}

// CardID implements deck.Card.
func (a *Asset) CardID() string { return a.ID }

// HasSecondary reports whether the asset carries trait.
func (a *Asset) HasSecondary(trait AssetSecondaryTrait) bool {
	return slices.Contains(a.SecondaryTraits, trait)
}

// Matches reports whether the asset fits a type filter, which may name the
// primary trait, a secondary trait, or be empty for any asset.
func (a *Asset) Matches(filter string) bool {
	if filter == "" || filter == "any" {
		return true
	}
	return string(a.PrimaryTrait) == filter || a.HasSecondary(AssetSecondaryTrait(filter))
}

// Action returns the asset's action effect, if it has one with components.
func (a *Asset) Action() (AssetEffect, bool) {
	for _, e := range a.Effects {
		if e.Kind == EffectAction && len(e.Components) > 0 {
			return e, true
		}
	}
	return AssetEffect{}, false
}

// AssetFactory builds asset cards from the "assets" category.
type AssetFactory struct {
	loader
}

// NewAssetFactory returns an unloaded factory; call Load before use.
func NewAssetFactory(src Source, builder *Builder, logger *zap.Logger) *AssetFactory {
	return &AssetFactory{loader: newLoader(CategoryAssets, src, builder, logger)}
}

// Load reads and validates every asset record.
func (f *AssetFactory) Load() error {
	return f.load(func(r Record) error {
		_, err := f.build(r)
		return err
	})
}

// Create builds a fresh instance of the asset with id.
func (f *AssetFactory) Create(id string) (*Asset, error) {
	r, err := f.record(id)
	if err != nil {
		return nil, err
	}
	return f.build(r)
}

// CreateAll builds one instance per printed copy of every loaded asset.
func (f *AssetFactory) CreateAll() []*Asset {
	var out []*Asset
	for _, id := range f.order {
		r := f.records[id]
		for n := copies(r); n > 0; n-- {
			a, err := f.build(r)
			if err != nil {
				continue
			}
			out = append(out, a)
		}
	}
	return out
}

func (f *AssetFactory) build(r Record) (*Asset, error) {
	id := r.String("id")
	trait := AssetTrait(r.String("primary_trait"))
	if !trait.valid() {
		return nil, apperrors.WithMetadata(apperrors.CodeMalformedData,
			fmt.Sprintf("asset %s has invalid primary_trait %q", id, trait), map[string]string{"id": id})
	}
	name := r.String("name")
	if name == "" {
		name = id
	}
	a := &Asset{
		Card:           f.header(r, name, CardAsset),
		ID:             id,
		Cost:           r.Int("cost", 0),
		PrimaryTrait:   trait,
		SkillBonus:     r.IntMap("skill_bonus"),
		Reroll:         r.Int("reroll", 0),
		AdditionalDice: r.Int("additional_dice", 0),
		FlavorText:     r.String("flavor_text"),
	}
	for _, s := range r.Strings("secondary_traits") {
		a.SecondaryTraits = append(a.SecondaryTraits, AssetSecondaryTrait(s))
	}
	for _, er := range r.Records("effects") {
		comps, err := f.builder.Sequence(er.Records("components"))
		if err != nil {
			return nil, fmt.Errorf("asset %s effect: %w", id, err)
		}
		a.Effects = append(a.Effects, AssetEffect{
			Kind:       EffectKind(er.String("kind")),
			Text:       er.String("text"),
			Components: comps,
		})
	}
	return a, nil
}
