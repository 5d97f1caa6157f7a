package models

// ComponentKind is the data tag of a component variant.
type ComponentKind string

const (
	KindNarrative     ComponentKind = "narrative"
	KindSkillTest     ComponentKind = "skill_test"
	KindAssetGain     ComponentKind = "asset_gain"
	KindConditionGain ComponentKind = "condition_gain"
	KindChangeHealth  ComponentKind = "change_health"
	KindChangeSanity  ComponentKind = "change_sanity"
	KindSpawnClue     ComponentKind = "spawn_clue"
	KindGainClue      ComponentKind = "gain_clue"
	KindDiscard       ComponentKind = "discard"
	KindSolveMystery  ComponentKind = "solve_mystery"
	KindFlipCondition ComponentKind = "flip_condition"
)

// Component is one atomic card effect. The set of variants is closed; Process
// dispatches on the concrete type.
type Component interface {
	Kind() ComponentKind
	// Aborts reports whether processing this component stops its siblings.
	Aborts() bool
	component()
}

// Narrative shows text.
type Narrative struct {
	Text  string
	Abort bool
}

// SkillTest rolls dice for a skill and resolves one of two branches.
type SkillTest struct {
	Skill    string
	Modifier int
	Success  []Component
	Failure  []Component
	Abort    bool
}

// AssetSource is where an AssetGain takes its cards from.
type AssetSource string

const (
	SourceReserve AssetSource = "reserve"
	SourceRandom  AssetSource = "random"
	SourceChoice  AssetSource = "choice"
)

// AssetGain moves assets to the investigator. SpecificAssetID, when set, wins
// over Source.
type AssetGain struct {
	AssetType       string
	Count           int
	Source          AssetSource
	SpecificAssetID string
	Options         []AssetSource
	Abort           bool
}

// RandomCondition is the Condition value that draws any condition.
const RandomCondition = "random"

// ConditionGain gives the investigator a condition by id, or a random one
// optionally limited to a trait.
type ConditionGain struct {
	Condition         string
	Trait             string
	PreventDuplicates bool
	Abort             bool
}

// ChangeHealth heals (positive) or damages (negative) the investigator.
type ChangeHealth struct {
	Amount int
	Abort  bool
}

// ChangeSanity restores (positive) or drains (negative) sanity.
type ChangeSanity struct {
	Amount int
	Abort  bool
}

// SpawnClue places clue tokens on the board.
type SpawnClue struct {
	Count int
	Abort bool
}

// GainClue gives the investigator clue tokens.
type GainClue struct {
	Count int
	Abort bool
}

// Discard removes assets, or conditions when ConditionType is set. Optional
// discards ask first.
type Discard struct {
	Count         int
	AssetType     string
	ConditionType string
	Optional      bool
	Abort         bool
}

// SolveMystery spends clues to solve the current mystery.
type SolveMystery struct {
	ClueCost int
	Abort    bool
}

// FlipCondition turns over a condition the investigator holds, picked by id
// or by trait, and resolves the side that comes up when it shows a back.
// A negative Variant keeps the earlier selection or picks one at random.
type FlipCondition struct {
	Condition string
	Trait     string
	Variant   int
	Abort     bool
}

func (*Narrative) Kind() ComponentKind     { return KindNarrative }
func (*SkillTest) Kind() ComponentKind     { return KindSkillTest }
func (*AssetGain) Kind() ComponentKind     { return KindAssetGain }
func (*ConditionGain) Kind() ComponentKind { return KindConditionGain }
func (*ChangeHealth) Kind() ComponentKind  { return KindChangeHealth }
func (*ChangeSanity) Kind() ComponentKind  { return KindChangeSanity }
func (*SpawnClue) Kind() ComponentKind     { return KindSpawnClue }
func (*GainClue) Kind() ComponentKind      { return KindGainClue }
func (*Discard) Kind() ComponentKind       { return KindDiscard }
func (*SolveMystery) Kind() ComponentKind  { return KindSolveMystery }
func (*FlipCondition) Kind() ComponentKind { return KindFlipCondition }

func (c *Narrative) Aborts() bool     { return c.Abort }
func (c *SkillTest) Aborts() bool     { return c.Abort }
func (c *AssetGain) Aborts() bool     { return c.Abort }
func (c *ConditionGain) Aborts() bool { return c.Abort }
func (c *ChangeHealth) Aborts() bool  { return c.Abort }
func (c *ChangeSanity) Aborts() bool  { return c.Abort }
func (c *SpawnClue) Aborts() bool     { return c.Abort }
func (c *GainClue) Aborts() bool      { return c.Abort }
func (c *Discard) Aborts() bool       { return c.Abort }
func (c *SolveMystery) Aborts() bool  { return c.Abort }
func (c *FlipCondition) Aborts() bool { return c.Abort }

func (*Narrative) component()     {}
func (*SkillTest) component()     {}
func (*AssetGain) component()     {}
func (*ConditionGain) component() {}
func (*ChangeHealth) component()  {}
func (*ChangeSanity) component()  {}
func (*SpawnClue) component()     {}
func (*GainClue) component()      {}
func (*Discard) component()       {}
func (*SolveMystery) component()  {}
func (*FlipCondition) component() {}
