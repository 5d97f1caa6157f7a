package models

import (
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
	"github.com/tatianab/eldritch-pursuit/internal/logging"
)

// MaxComponentDepth bounds how deeply skill test branches may nest.
const MaxComponentDepth = 8

// Constructor builds one component variant from its record. Nested sequences
// are built through b so the depth guard applies.
type Constructor func(r Record, b *Builder) (Component, error)

// Registry maps data tags to constructors.
type Registry struct {
	constructors map[ComponentKind]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: map[ComponentKind]Constructor{}}
}

// DefaultRegistry returns a registry holding every built-in component.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindNarrative, buildNarrative)
	r.Register(KindSkillTest, buildSkillTest)
	r.Register(KindAssetGain, buildAssetGain)
	r.Register(KindConditionGain, buildConditionGain)
	r.Register(KindChangeHealth, buildChangeHealth)
	r.Register(KindChangeSanity, buildChangeSanity)
	r.Register(KindSpawnClue, buildSpawnClue)
	r.Register(KindGainClue, buildGainClue)
	r.Register(KindDiscard, buildDiscard)
	r.Register(KindSolveMystery, buildSolveMystery)
	r.Register(KindFlipCondition, buildFlipCondition)
	return r
}

// Register adds or replaces the constructor for tag.
func (r *Registry) Register(tag ComponentKind, fn Constructor) {
	r.constructors[tag] = fn
}

// Builder turns component records into component trees. It never looks at
// game state.
type Builder struct {
	registry *Registry
	logger   *zap.Logger
	depth    int
}

// NewBuilder returns a builder over registry. A nil registry means the
// default one.
func NewBuilder(registry *Registry, logger *zap.Logger) *Builder {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Builder{registry: registry, logger: logging.OrNop(logger)}
}

// Component builds a single component. A missing tag or a missing required
// field yields CodeMalformedData; an unrecognised tag yields
// CodeUnknownComponent.
func (b *Builder) Component(r Record) (Component, error) {
	tag := r.String("type")
	if tag == "" {
		return nil, apperrors.New(apperrors.CodeMalformedData, "component record missing 'type'")
	}
	fn, ok := b.registry.constructors[ComponentKind(tag)]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeUnknownComponent,
			fmt.Sprintf("unknown component type %q", tag), map[string]string{"type": tag})
	}
	return fn(r, b)
}

// Sequence builds an ordered list of components. Unknown tags are skipped with
// a warning; any other failure aborts the whole sequence.
func (b *Builder) Sequence(records []Record) ([]Component, error) {
	if b.depth >= MaxComponentDepth {
		return nil, apperrors.New(apperrors.CodeMalformedData,
			fmt.Sprintf("component nesting deeper than %d", MaxComponentDepth))
	}
	b.depth++
	defer func() { b.depth-- }()

	out := make([]Component, 0, len(records))
	for i, rec := range records {
		c, err := b.Component(rec)
		if apperrors.HasCode(err, apperrors.CodeUnknownComponent) {
			b.logger.Warn("skipping unknown component",
				zap.Int("index", i), zap.String("type", rec.String("type")))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func missing(kind ComponentKind, field string) error {
	return apperrors.WithMetadata(apperrors.CodeMalformedData,
		fmt.Sprintf("%s missing required field %q", kind, field),
		map[string]string{"type": string(kind), "field": field})
}

func buildNarrative(r Record, _ *Builder) (Component, error) {
	return &Narrative{Text: r.String("text"), Abort: r.Bool("abort", false)}, nil
}

func buildSkillTest(r Record, b *Builder) (Component, error) {
	skill := r.String("skill")
	if skill == "" {
		return nil, missing(KindSkillTest, "skill")
	}
	success, err := b.Sequence(branch(r, "success_components", "success"))
	if err != nil {
		return nil, fmt.Errorf("skill_test success: %w", err)
	}
	failure, err := b.Sequence(branch(r, "failure_components", "failure"))
	if err != nil {
		return nil, fmt.Errorf("skill_test failure: %w", err)
	}
	return &SkillTest{
		Skill:    skill,
		Modifier: r.Int("modifier", 0),
		Success:  success,
		Failure:  failure,
		Abort:    r.Bool("abort", false),
	}, nil
}

// branch reads a nested sequence under either of two accepted keys.
func branch(r Record, keys ...string) []Record {
	for _, k := range keys {
		if r.Has(k) {
			return r.Records(k)
		}
	}
	return nil
}

func buildAssetGain(r Record, _ *Builder) (Component, error) {
	c := &AssetGain{
		AssetType:       r.String("asset_type"),
		Count:           r.Int("count", 1),
		Source:          AssetSource(r.String("source")),
		SpecificAssetID: r.String("specific_asset_id"),
		Abort:           r.Bool("abort", false),
	}
	for _, o := range r.Strings("options") {
		c.Options = append(c.Options, AssetSource(o))
	}
	if c.SpecificAssetID == "" && c.Source == "" {
		c.Source = SourceRandom
	}
	if c.Source == SourceChoice && len(c.Options) == 0 {
		return nil, missing(KindAssetGain, "options")
	}
	return c, nil
}

func buildConditionGain(r Record, _ *Builder) (Component, error) {
	cond := r.String("condition")
	if cond == "" {
		return nil, missing(KindConditionGain, "condition")
	}
	return &ConditionGain{
		Condition:         cond,
		Trait:             r.String("trait"),
		PreventDuplicates: r.Bool("prevent_duplicates", true),
		Abort:             r.Bool("abort", false),
	}, nil
}

func buildChangeHealth(r Record, _ *Builder) (Component, error) {
	n, ok := r.IntOK("amount")
	if !ok {
		return nil, missing(KindChangeHealth, "amount")
	}
	return &ChangeHealth{Amount: n, Abort: r.Bool("abort", false)}, nil
}

func buildChangeSanity(r Record, _ *Builder) (Component, error) {
	n, ok := r.IntOK("amount")
	if !ok {
		return nil, missing(KindChangeSanity, "amount")
	}
	return &ChangeSanity{Amount: n, Abort: r.Bool("abort", false)}, nil
}

func buildSpawnClue(r Record, _ *Builder) (Component, error) {
	return &SpawnClue{Count: r.Int("count", 1), Abort: r.Bool("abort", false)}, nil
}

func buildGainClue(r Record, _ *Builder) (Component, error) {
	return &GainClue{Count: r.Int("count", 1), Abort: r.Bool("abort", false)}, nil
}

func buildDiscard(r Record, _ *Builder) (Component, error) {
	return &Discard{
		Count:         r.Int("count", 1),
		AssetType:     r.String("asset_type"),
		ConditionType: r.String("condition_type"),
		Optional:      r.Bool("optional", false),
		Abort:         r.Bool("abort", false),
	}, nil
}

func buildSolveMystery(r Record, _ *Builder) (Component, error) {
	return &SolveMystery{ClueCost: r.Int("clue_cost", 0), Abort: r.Bool("abort", false)}, nil
}

func buildFlipCondition(r Record, _ *Builder) (Component, error) {
	c := &FlipCondition{
		Condition: r.String("condition"),
		Trait:     r.String("trait"),
		Variant:   r.Int("variant", -1),
		Abort:     r.Bool("abort", false),
	}
	if c.Condition == "" && c.Trait == "" {
		return nil, missing(KindFlipCondition, "condition")
	}
	return c, nil
}
