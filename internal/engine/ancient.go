package engine

import (
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

// AncientOne is the antagonist of a game. It owns the doom and mystery
// targets, the mythos deck layout, and any extra way the game can end.
type AncientOne interface {
	Name() string
	StartingDoom() int
	MysteriesToSolve() int
	MythosStages() []models.MythosStage

	OnSetup(s *models.GameState, ui models.UI)
	OnReckoning(s *models.GameState, ui models.UI)
	OnAwakening(s *models.GameState, ui models.UI)
	// CheckDefeatConditions reports whether the game is over and, if so,
	// whether the investigators won.
	CheckDefeatConditions(s *models.GameState) (gameOver, investigatorsWin bool)
}

// NewAncientOne returns the Ancient One registered under name.
func NewAncientOne(name string) (AncientOne, error) {
	switch name {
	case "yog_sothoth", "Yog-Sothoth":
		return NewYogSothoth(), nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeMalformedData,
		fmt.Sprintf("unknown ancient one %q", name), map[string]string{"ancient_one": name})
}

// YogSothoth is the Lurker at the Threshold.
type YogSothoth struct {
	Awakened     bool
	GatesOnSheet int
}

// NewYogSothoth returns a dormant Yog-Sothoth.
func NewYogSothoth() *YogSothoth {
	return &YogSothoth{}
}

func (y *YogSothoth) Name() string          { return "Yog-Sothoth" }
func (y *YogSothoth) StartingDoom() int     { return 14 }
func (y *YogSothoth) MysteriesToSolve() int { return 3 }

func (y *YogSothoth) MythosStages() []models.MythosStage {
	return []models.MythosStage{
		{Green: 0, Yellow: 2, Blue: 1},
		{Green: 2, Yellow: 3, Blue: 1},
		{Green: 3, Yellow: 4, Blue: 0},
	}
}

func (y *YogSothoth) OnSetup(s *models.GameState, ui models.UI) {
	y.Awakened = false
	y.GatesOnSheet = 0
	show(ui, "For eons, sorcerers have called upon the power of Yog-Sothoth to bend reality to their will. "+
		"Gates between worlds open with more frequency and soon, Yog-Sothoth will be free.")
}

// OnReckoning advances doom once for every investigator standing on a gate
// who does not discard a magical asset.
func (y *YogSothoth) OnReckoning(s *models.GameState, ui models.UI) {
	show(ui, "Each investigator on a space containing a Gate advances Doom by 1 unless they discard 1 magical asset.")
	for _, p := range s.Players.All() {
		inv := p.Investigator
		if inv == nil || inv.IsDefeated() {
			continue
		}
		loc, ok := s.Locations[inv.Location]
		if !ok || !loc.Gate {
			continue
		}
		var spells []*models.Asset
		var names []string
		for _, a := range inv.Assets {
			if a.HasSecondary(models.SecondaryMagical) {
				spells = append(spells, a)
				names = append(names, a.Name)
			}
		}
		if len(spells) > 0 && ui != nil &&
			ui.AskYesNo(fmt.Sprintf("%s is on a Gate. Discard a magical asset to hold back the doom?", inv.Name)) {
			i := models.Choose(ui, "Choose an asset to discard:", names)
			if i < 0 {
				i = 0
			}
			inv.RemoveAsset(spells[i])
			if err := s.DiscardAsset(spells[i]); err != nil {
				s.Logger.Error("discard asset", zap.Error(err))
			}
			continue
		}
		y.advanceDoom(s, ui)
		show(ui, fmt.Sprintf("%s advanced Doom by 1!", inv.Name))
	}
}

// OnAwakening wakes the Ancient One. From now on every doom advance from a
// reckoning places a gate on this sheet instead.
func (y *YogSothoth) OnAwakening(s *models.GameState, ui models.UI) {
	y.Awakened = true
	show(ui, "Yog-Sothoth has awakened! The walls between worlds tear open.")
}

func (y *YogSothoth) CheckDefeatConditions(s *models.GameState) (bool, bool) {
	if !y.Awakened {
		return false, false
	}
	if y.GatesOnSheet >= 3 {
		return true, false
	}
	if s.EldritchTokens >= max(1, s.Players.Count()/2) {
		return true, true
	}
	return false, false
}

func (y *YogSothoth) advanceDoom(s *models.GameState, ui models.UI) {
	if y.Awakened {
		y.GatesOnSheet++
		show(ui, fmt.Sprintf("A gate is drawn onto Yog-Sothoth (%d/3).", y.GatesOnSheet))
		return
	}
	s.AdvanceDoom(1)
}

func show(ui models.UI, text string) {
	if ui != nil {
		ui.ShowMessage(text)
	}
}
