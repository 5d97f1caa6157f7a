package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

func TestBuilderComponentVariants(t *testing.T) {
	b := NewBuilder(nil, nil)

	tests := []struct {
		name string
		rec  Record
		want Component
	}{
		{"narrative", Record{"type": "narrative", "text": "hi"}, &Narrative{Text: "hi"}},
		{"change health", Record{"type": "change_health", "amount": -2}, &ChangeHealth{Amount: -2}},
		{"change sanity", Record{"type": "change_sanity", "amount": "1"}, &ChangeSanity{Amount: 1}},
		{"spawn clue default", Record{"type": "spawn_clue"}, &SpawnClue{Count: 1}},
		{"gain clue", Record{"type": "gain_clue", "count": 2}, &GainClue{Count: 2}},
		{"condition gain default prevents", Record{"type": "condition_gain", "condition": "random", "trait": "madness"},
			&ConditionGain{Condition: "random", Trait: "madness", PreventDuplicates: true}},
		{"condition gain allows duplicates", Record{"type": "condition_gain", "condition": "debt", "prevent_duplicates": "false"},
			&ConditionGain{Condition: "debt"}},
		{"asset gain specific", Record{"type": "asset_gain", "asset_type": "item", "specific_asset_id": "derringer"},
			&AssetGain{AssetType: "item", Count: 1, SpecificAssetID: "derringer"}},
		{"asset gain defaults to random", Record{"type": "asset_gain"}, &AssetGain{Count: 1, Source: SourceRandom}},
		{"asset gain choice", Record{"type": "asset_gain", "source": "choice", "options": []any{"reserve", "random"}},
			&AssetGain{Count: 1, Source: SourceChoice, Options: []AssetSource{SourceReserve, SourceRandom}}},
		{"discard", Record{"type": "discard", "count": 1, "asset_type": "item", "optional": true},
			&Discard{Count: 1, AssetType: "item", Optional: true}},
		{"solve mystery", Record{"type": "solve_mystery", "clue_cost": 2}, &SolveMystery{ClueCost: 2}},
		{"abort flag", Record{"type": "narrative", "text": "end", "abort": true}, &Narrative{Text: "end", Abort: true}},
		{"flip condition random variant", Record{"type": "flip_condition", "condition": "paranoia"},
			&FlipCondition{Condition: "paranoia", Variant: -1}},
		{"flip condition by trait", Record{"type": "flip_condition", "trait": "madness", "variant": 1},
			&FlipCondition{Trait: "madness", Variant: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Component(tt.rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilderSkillTestBranches(t *testing.T) {
	b := NewBuilder(nil, nil)
	c, err := b.Component(Record{
		"type": "skill_test", "skill": "lore", "modifier": -1,
		"success_components": []any{map[string]any{"type": "gain_clue"}},
		"failure": []any{
			map[string]any{"type": "change_health", "amount": -1},
			map[string]any{"type": "mystery_portal"},
		},
	})
	require.NoError(t, err)
	st, ok := c.(*SkillTest)
	require.True(t, ok)
	assert.Equal(t, "lore", st.Skill)
	assert.Equal(t, -1, st.Modifier)
	assert.Equal(t, []Component{&GainClue{Count: 1}}, st.Success)
	assert.Equal(t, []Component{&ChangeHealth{Amount: -1}}, st.Failure, "unknown nested tag is skipped")
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder(nil, nil)

	tests := []struct {
		name string
		rec  Record
		code apperrors.Code
	}{
		{"missing type", Record{"text": "x"}, apperrors.CodeMalformedData},
		{"unknown type", Record{"type": "summon_shoggoth"}, apperrors.CodeUnknownComponent},
		{"skill test without skill", Record{"type": "skill_test"}, apperrors.CodeMalformedData},
		{"change health without amount", Record{"type": "change_health"}, apperrors.CodeMalformedData},
		{"condition gain without condition", Record{"type": "condition_gain"}, apperrors.CodeMalformedData},
		{"choice without options", Record{"type": "asset_gain", "source": "choice"}, apperrors.CodeMalformedData},
		{"flip without target", Record{"type": "flip_condition"}, apperrors.CodeMalformedData},
		{"malformed nested branch", Record{"type": "skill_test", "skill": "will",
			"success": []any{map[string]any{"type": "change_health"}}}, apperrors.CodeMalformedData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Component(tt.rec)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestBuilderSequenceSkipsUnknown(t *testing.T) {
	b := NewBuilder(nil, nil)
	seq, err := b.Sequence([]Record{
		{"type": "narrative", "text": "a"},
		{"type": "teleport"},
		{"type": "narrative", "text": "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Component{&Narrative{Text: "a"}, &Narrative{Text: "b"}}, seq)
}

func TestBuilderSequenceFailsOnMalformed(t *testing.T) {
	b := NewBuilder(nil, nil)
	_, err := b.Sequence([]Record{{"type": "narrative"}, {"type": "skill_test"}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeMalformedData))
}

func TestBuilderDepthGuard(t *testing.T) {
	nested := map[string]any{"type": "narrative", "text": "bottom"}
	for range MaxComponentDepth + 1 {
		nested = map[string]any{"type": "skill_test", "skill": "lore", "success": []any{nested}}
	}
	b := NewBuilder(nil, nil)
	_, err := b.Sequence([]Record{nested})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeMalformedData))

	shallow := map[string]any{"type": "skill_test", "skill": "lore",
		"success": []any{map[string]any{"type": "narrative"}}}
	_, err = b.Sequence([]Record{shallow})
	assert.NoError(t, err, "depth is restored after a failed build")
}

func TestRegistryCustomConstructor(t *testing.T) {
	r := NewRegistry()
	r.Register("ritual", func(rec Record, _ *Builder) (Component, error) {
		return &Narrative{Text: "ritual " + rec.String("name")}, nil
	})
	c, err := NewBuilder(r, nil).Component(Record{"type": "ritual", "name": "of binding"})
	require.NoError(t, err)
	assert.Equal(t, &Narrative{Text: "ritual of binding"}, c)

	_, err = NewBuilder(r, nil).Component(Record{"type": "narrative"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnknownComponent))
}

func TestFactoriesSkipMalformedRecords(t *testing.T) {
	f, err := LoadFactories(fixtureSource(), nil)
	require.NoError(t, err)

	assert.False(t, f.Assets.Has("broken"))
	assert.True(t, f.Assets.Has("derringer"))
	assert.False(t, f.Investigators.Has("zed"))
	assert.False(t, f.Mythos.Has("bad"))
	assert.Equal(t, 2, f.Encounters.Count(EncounterGeneral))
	assert.Zero(t, f.Encounters.Count(EncounterResearch), "missing category is empty")

	_, err = f.Assets.Create("broken")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeMalformedData))
}

func TestFactoryUsedBeforeLoad(t *testing.T) {
	f := NewAssetFactory(fixtureSource(), nil, nil)
	_, err := f.Create("derringer")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvariantViolation))

	require.NoError(t, f.Load())
	a, err := f.Create("derringer")
	require.NoError(t, err)
	assert.Equal(t, ".18 Derringer", a.Name)
	assert.Equal(t, CardAsset, a.Type)
	assert.Equal(t, ExpansionCore, a.Expansion)
	assert.True(t, a.HasSecondary(SecondaryWeapon))
}

func TestFactoryCreatesFreshInstances(t *testing.T) {
	f := NewConditionFactory(fixtureSource(), nil, nil)
	require.NoError(t, f.Load())

	a, err := f.Create("paranoia")
	require.NoError(t, err)
	b, err := f.Create("paranoia")
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	all := f.CreateAll()
	n := 0
	for _, c := range all {
		if c.ID == "paranoia" {
			n++
		}
	}
	assert.Equal(t, 2, n, "copies are honoured")
}

func TestConditionVariants(t *testing.T) {
	back := map[string]any{"title": "Back"}
	src := memSource{CategoryConditions: {
		{"id": "default", "front": map[string]any{"title": "Default"}, "backs": []any{back, back}},
		{"id": "limited", "variants": 1, "front": map[string]any{"title": "Limited"}, "backs": []any{back, back}},
		{"id": "excess", "variants": 5, "front": map[string]any{"title": "Excess"}, "backs": []any{back}},
		{"id": "negative", "variants": -1, "front": map[string]any{"title": "Negative"}},
	}}
	f := NewConditionFactory(src, nil, nil)
	require.NoError(t, f.Load())
	assert.False(t, f.Has("negative"))

	for id, want := range map[string]int{"default": 2, "limited": 1, "excess": 1} {
		c, err := f.Create(id)
		require.NoError(t, err)
		assert.Equal(t, want, c.VariantCount(), id)
	}
	c, err := f.Create("excess")
	require.NoError(t, err)
	assert.Equal(t, 5, c.Variants)
}

func TestDataErrorIsCoded(t *testing.T) {
	f := NewAssetFactory(failingSource{}, nil, nil)
	err := f.Load()
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataSource))
}

type failingSource struct{}

func (failingSource) Load(string) ([]Record, error) {
	return nil, apperrors.New(apperrors.CodeUnknown, "disk on fire")
}
