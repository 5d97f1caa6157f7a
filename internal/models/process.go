package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/dice"
	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// MaxPrompts is how many invalid answers a choice tolerates before the
// caller's fallback is used.
const MaxPrompts = 5

// Result is the outcome of processing one component. Type and Abort are
// always set; the remaining fields belong to the kind that produced it.
type Result struct {
	Type  ComponentKind
	Abort bool

	// Narrative
	Text string

	// SkillTest
	Skill     string
	Modifier  int
	Dice      int
	Rolls     []int
	Successes int
	Success   bool
	Results   []Result

	// AssetGain
	AssetType    string
	Source       AssetSource
	GainedAssets []string

	// ConditionGain
	Condition       string
	GainedCondition string
	Prevented       bool

	// ChangeHealth, ChangeSanity
	Amount  int
	Healed  bool
	Damaged bool
	Final   int
	IsZero  bool

	// SpawnClue, GainClue
	Count     int
	Locations []string

	// Discard
	Optional  bool
	Confirmed bool
	Discarded []string

	// SolveMystery
	Solved bool

	// FlipCondition
	Flipped bool
	Variant int
}

// RunSequence processes components in order. It stops after a result that
// aborts, or on the first error.
func RunSequence(s *GameState, inv *Investigator, ui UI, comps []Component) ([]Result, error) {
	results := make([]Result, 0, len(comps))
	for _, c := range comps {
		r, err := Process(s, inv, ui, c)
		if err != nil {
			return results, err
		}
		results = append(results, r)
		if r.Abort {
			break
		}
	}
	return results, nil
}

// Aborted reports whether a sequence's results ended in an abort.
func Aborted(results []Result) bool {
	return len(results) > 0 && results[len(results)-1].Abort
}

// Passed reports whether every skill test in a sequence's results succeeded
// and nothing aborted.
func Passed(results []Result) bool {
	for _, r := range results {
		if r.Abort || (r.Type == KindSkillTest && !r.Success) {
			return false
		}
	}
	return true
}

// Process applies one component to inv. A nil ui takes default answers.
func Process(s *GameState, inv *Investigator, ui UI, c Component) (Result, error) {
	var (
		r   Result
		err error
	)
	switch c := c.(type) {
	case *Narrative:
		r = Result{Text: c.Text}
		say(ui, c.Text)
	case *SkillTest:
		r, err = processSkillTest(s, inv, ui, c)
	case *AssetGain:
		r, err = processAssetGain(s, inv, ui, c)
	case *ConditionGain:
		r, err = processConditionGain(s, inv, ui, c)
	case *ChangeHealth:
		r = processChangeHealth(inv, ui, c)
	case *ChangeSanity:
		r = processChangeSanity(inv, ui, c)
	case *SpawnClue:
		r = Result{Count: c.Count, Locations: s.SpawnClue(c.Count)}
		for _, l := range r.Locations {
			say(ui, fmt.Sprintf("A clue appears in %s.", l))
		}
	case *GainClue:
		inv.GainClue(c.Count)
		r = Result{Count: c.Count}
		say(ui, fmt.Sprintf("%s gains %d clue(s).", inv.Name, c.Count))
	case *Discard:
		r, err = processDiscard(s, inv, ui, c)
	case *SolveMystery:
		r = processSolveMystery(s, inv, ui, c)
	case *FlipCondition:
		r, err = processFlipCondition(s, inv, ui, c)
	default:
		return Result{}, apperrors.New(apperrors.CodeUnknownComponent, fmt.Sprintf("cannot process %T", c))
	}
	r.Type = c.Kind()
	r.Abort = r.Abort || c.Aborts()
	return r, err
}

func processSkillTest(s *GameState, inv *Investigator, ui UI, c *SkillTest) (Result, error) {
	n := inv.SkillValue(c.Skill) + c.Modifier
	pool := dice.Roll(s.Rand, n)
	r := Result{
		Skill:     c.Skill,
		Modifier:  c.Modifier,
		Dice:      max(n, 0),
		Rolls:     pool.Rolls,
		Successes: pool.Successes,
		Success:   pool.Passed(),
	}
	verdict := "fails"
	if r.Success {
		verdict = "passes"
	}
	say(ui, fmt.Sprintf("%s tests %s with %d dice: %v, %s.", inv.Name, c.Skill, r.Dice, pool.Rolls, verdict))

	branch := c.Failure
	if r.Success {
		branch = c.Success
	}
	results, err := RunSequence(s, inv, ui, branch)
	r.Results = results
	r.Abort = Aborted(results)
	return r, err
}

func processAssetGain(s *GameState, inv *Investigator, ui UI, c *AssetGain) (Result, error) {
	r := Result{AssetType: c.AssetType, Source: c.Source}
	if c.SpecificAssetID != "" {
		a, ok := takeSpecificAsset(s, c.SpecificAssetID)
		if !ok {
			say(ui, fmt.Sprintf("%s is not available.", c.SpecificAssetID))
			return r, nil
		}
		if err := inv.AddAsset(a); err != nil {
			return r, err
		}
		r.GainedAssets = append(r.GainedAssets, a.ID)
		say(ui, fmt.Sprintf("%s gains %s.", inv.Name, a.Name))
		return r, nil
	}

	source := c.Source
	if source == SourceChoice {
		source = chooseSource(s, ui, c.Options)
		r.Source = source
	}
	for range max(c.Count, 1) {
		var (
			a  *Asset
			ok bool
		)
		switch source {
		case SourceReserve:
			a, ok = takeFromReserve(s, ui, c.AssetType)
		default:
			a, ok = s.Assets.DrawWhere(func(a *Asset) bool { return a.Matches(c.AssetType) })
		}
		if !ok {
			say(ui, "No matching asset is available.")
			break
		}
		if err := inv.AddAsset(a); err != nil {
			return r, err
		}
		r.GainedAssets = append(r.GainedAssets, a.ID)
		say(ui, fmt.Sprintf("%s gains %s.", inv.Name, a.Name))
	}
	return r, nil
}

// takeSpecificAsset finds an asset by id in the asset deck. When the deck
// does not hold it and no investigator does either, a fresh copy is built
// from the factory.
func takeSpecificAsset(s *GameState, id string) (*Asset, bool) {
	if s.Factories == nil || !s.Factories.Assets.Has(id) {
		s.Logger.Warn("unknown asset", zap.String("asset", id))
		return nil, false
	}
	if a, ok := s.Assets.TakeByID(id); ok {
		return a, true
	}
	if s.HeldAsset(id) {
		return nil, false
	}
	a, err := s.Factories.Assets.Create(id)
	if err != nil {
		s.Logger.Warn("create asset", zap.String("asset", id), zap.Error(err))
		return nil, false
	}
	return a, true
}

func chooseSource(s *GameState, ui UI, options []AssetSource) AssetSource {
	valid := make([]string, 0, len(options))
	for _, o := range options {
		if o == SourceReserve || o == SourceRandom {
			valid = append(valid, string(o))
		}
	}
	if len(valid) == 0 {
		return SourceRandom
	}
	i := Choose(ui, "Gain an asset from:", valid)
	if i < 0 {
		i = s.Rand.Intn(len(valid))
	}
	return AssetSource(valid[i])
}

func takeFromReserve(s *GameState, ui UI, filter string) (*Asset, bool) {
	reserve := s.Assets.Reserve()
	var idx []int
	var names []string
	for i, a := range reserve {
		if a.Matches(filter) {
			idx = append(idx, i)
			names = append(names, a.Name)
		}
	}
	if len(idx) == 0 {
		return nil, false
	}
	pick := Choose(ui, "Choose an asset from the reserve:", names)
	if pick < 0 {
		pick = s.Rand.Intn(len(idx))
	}
	return s.Assets.TakeFromReserve(idx[pick])
}

func processConditionGain(s *GameState, inv *Investigator, ui UI, c *ConditionGain) (Result, error) {
	r := Result{Condition: c.Condition}
	var (
		card *Condition
		ok   bool
	)
	switch {
	case c.Condition != RandomCondition:
		card, ok = s.Conditions.DrawByID(c.Condition)
	case c.Trait != "":
		card, ok = s.Conditions.DrawByTrait(c.Trait)
	default:
		card, ok = s.Conditions.Draw()
	}
	if !ok {
		say(ui, "No matching condition is available.")
		return r, nil
	}
	if c.PreventDuplicates && inv.HasCondition(card.ID) {
		if err := s.Conditions.ReturnToDeck(card); err != nil {
			return r, err
		}
		r.Prevented = true
		say(ui, fmt.Sprintf("%s already has %s.", inv.Name, card.Name))
		return r, nil
	}
	inv.AddCondition(card)
	r.GainedCondition = card.ID
	say(ui, fmt.Sprintf("%s gains the %s condition.", inv.Name, card.Name))
	return r, nil
}

func processChangeHealth(inv *Investigator, ui UI, c *ChangeHealth) Result {
	r := Result{Amount: c.Amount}
	switch {
	case c.Amount > 0:
		inv.Heal(c.Amount)
		r.Healed = true
		say(ui, fmt.Sprintf("%s recovers %d health.", inv.Name, c.Amount))
	case c.Amount < 0:
		inv.TakeDamage(-c.Amount)
		r.Damaged = true
		say(ui, fmt.Sprintf("%s loses %d health.", inv.Name, -c.Amount))
	}
	r.Final = inv.Health
	r.IsZero = inv.Health == 0
	return r
}

func processChangeSanity(inv *Investigator, ui UI, c *ChangeSanity) Result {
	r := Result{Amount: c.Amount}
	switch {
	case c.Amount > 0:
		inv.RestoreSanity(c.Amount)
		r.Healed = true
		say(ui, fmt.Sprintf("%s recovers %d sanity.", inv.Name, c.Amount))
	case c.Amount < 0:
		inv.LoseSanity(-c.Amount)
		r.Damaged = true
		say(ui, fmt.Sprintf("%s loses %d sanity.", inv.Name, -c.Amount))
	}
	r.Final = inv.Sanity
	r.IsZero = inv.Sanity == 0
	return r
}

func processDiscard(s *GameState, inv *Investigator, ui UI, c *Discard) (Result, error) {
	r := Result{Count: c.Count, AssetType: c.AssetType, Optional: c.Optional}
	if c.Optional {
		what := "asset(s)"
		if c.ConditionType != "" {
			what = "condition(s)"
		}
		if ui == nil || !ui.AskYesNo(fmt.Sprintf("Discard %d %s?", c.Count, what)) {
			return r, nil
		}
	}
	r.Confirmed = true

	if c.ConditionType != "" {
		for range c.Count {
			idx := slices.IndexFunc(inv.Conditions, func(cd *Condition) bool {
				return c.ConditionType == "any" || cd.HasTrait(c.ConditionType)
			})
			if idx < 0 {
				break
			}
			cd, _ := inv.RemoveCondition(inv.Conditions[idx].ID)
			if err := s.ReleaseCondition(cd); err != nil {
				return r, err
			}
			r.Discarded = append(r.Discarded, cd.ID)
			say(ui, fmt.Sprintf("%s is no longer affected by %s.", inv.Name, cd.Name))
		}
		return r, nil
	}

	for range c.Count {
		var candidates []*Asset
		var names []string
		for _, a := range inv.Assets {
			if a.Matches(c.AssetType) {
				candidates = append(candidates, a)
				names = append(names, a.Name)
			}
		}
		if len(candidates) == 0 {
			break
		}
		pick := 0
		if len(candidates) > 1 {
			if pick = Choose(ui, "Choose an asset to discard:", names); pick < 0 {
				pick = 0
			}
		}
		a := candidates[pick]
		inv.RemoveAsset(a)
		if err := s.DiscardAsset(a); err != nil {
			return r, err
		}
		r.Discarded = append(r.Discarded, a.ID)
		say(ui, fmt.Sprintf("%s discards %s.", inv.Name, a.Name))
	}
	return r, nil
}

func processSolveMystery(s *GameState, inv *Investigator, ui UI, c *SolveMystery) Result {
	r := Result{Count: c.ClueCost}
	if !inv.UseClue(c.ClueCost) {
		say(ui, fmt.Sprintf("%s needs %d clue(s) to solve the mystery.", inv.Name, c.ClueCost))
		return r
	}
	s.SolveMystery()
	r.Solved = true
	say(ui, fmt.Sprintf("%s solves a mystery! (%d/%d)", inv.Name, s.MysteriesSolved, s.MysteriesToSolve))
	return r
}

// processFlipCondition turns the first matching held condition over. Going
// to a back resolves that back's components at once; going back to the front
// resolves nothing.
func processFlipCondition(s *GameState, inv *Investigator, ui UI, c *FlipCondition) (Result, error) {
	r := Result{Condition: c.Condition, Variant: -1}
	idx := slices.IndexFunc(inv.Conditions, func(cd *Condition) bool {
		if c.Condition != "" {
			return cd.ID == c.Condition
		}
		return cd.HasTrait(c.Trait)
	})
	if idx < 0 {
		return r, nil
	}
	cd := inv.Conditions[idx]
	r.Condition = cd.ID
	if cd.Flipped() {
		cd.Flip(-1)
		say(ui, fmt.Sprintf("%s turns %s face up again.", inv.Name, cd.Name))
		return r, nil
	}

	variant := c.Variant
	if variant < 0 && cd.SelectedVariant() < 0 {
		if n := cd.VariantCount(); n > 0 {
			variant = s.Rand.Intn(n)
		}
	}
	side := cd.Flip(variant)
	if !cd.Flipped() {
		s.Logger.Warn("condition has no back to flip to",
			zap.String("condition", cd.ID), zap.Int("variant", variant))
		return r, nil
	}
	r.Flipped = true
	r.Variant = cd.SelectedVariant()
	say(ui, fmt.Sprintf("%s flips %s: %s.", inv.Name, cd.Name, side.Title))
	say(ui, side.Text)

	results, err := RunSequence(s, inv, ui, side.Components)
	r.Results = results
	r.Abort = Aborted(results)
	return r, err
}

// Choose asks ui to pick one of options and returns its index. Answers may be
// an option label or its 1-based number. Invalid answers are re-asked up to
// MaxPrompts times, after which -1 is returned. A nil ui picks the first
// option.
func Choose(ui UI, prompt string, options []string) int {
	if len(options) == 0 {
		return -1
	}
	if ui == nil {
		return 0
	}
	for range MaxPrompts {
		answer := strings.TrimSpace(ui.ShowChoice(prompt, options))
		if i := MatchOption(answer, options); i >= 0 {
			return i
		}
		ui.ShowMessage(fmt.Sprintf("%q is not a valid choice.", answer))
	}
	return -1
}

// MatchOption resolves an answer against options by label (case-insensitive)
// or 1-based number.
func MatchOption(answer string, options []string) int {
	for i, o := range options {
		if strings.EqualFold(answer, o) {
			return i
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return n - 1
	}
	return -1
}

func say(ui UI, text string) {
	if ui != nil && text != "" {
		ui.ShowMessage(text)
	}
}
