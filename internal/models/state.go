package models

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/deck"
	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
	"github.com/tatianab/eldritch-pursuit/internal/logging"
)

// UI is the interaction collaborator. Every call blocks until answered.
type UI interface {
	ShowMessage(text string)
	AskYesNo(prompt string) bool
	ShowChoice(prompt string, options []string) string
}

// Factories bundles the loaded card factories.
type Factories struct {
	Assets        *AssetFactory
	Conditions    *ConditionFactory
	Encounters    *EncounterFactory
	Mythos        *MythosFactory
	Investigators *InvestigatorFactory
	Locations     *LocationFactory

	// Warnings holds the categories that failed to load. Each one was left
	// empty and the rest of the data is still usable.
	Warnings []error
}

// LoadFactories builds every factory over src and loads it. Factories share
// one component builder. A category that fails to load is logged, recorded
// in Warnings and left empty; LoadFactories only fails when there is no
// source or nothing loads at all.
func LoadFactories(src Source, logger *zap.Logger) (*Factories, error) {
	logger = logging.OrNop(logger)
	if src == nil {
		return nil, apperrors.New(apperrors.CodeDataSource, "no card data source")
	}
	b := NewBuilder(DefaultRegistry(), logger)
	f := &Factories{
		Assets:        NewAssetFactory(src, b, logger),
		Conditions:    NewConditionFactory(src, b, logger),
		Encounters:    NewEncounterFactory(src, b, logger),
		Mythos:        NewMythosFactory(src, b, logger),
		Investigators: NewInvestigatorFactory(src, logger),
		Locations:     NewLocationFactory(src, logger),
	}
	steps := []struct {
		name string
		load func() error
	}{
		{CategoryAssets, f.Assets.Load},
		{CategoryConditions, f.Conditions.Load},
		{"encounters", f.Encounters.Load},
		{CategoryMythos, f.Mythos.Load},
		{CategoryInvestigators, f.Investigators.Load},
		{CategoryLocations, f.Locations.Load},
	}
	failed := 0
	for _, step := range steps {
		err := step.load()
		if err == nil {
			continue
		}
		failed++
		for _, e := range multierr.Errors(err) {
			logger.Warn("card data failed to load, using an empty pool",
				zap.String("category", step.name), zap.Error(e))
			f.Warnings = append(f.Warnings, fmt.Errorf("load %s: %w", step.name, e))
		}
	}
	if failed == len(steps) {
		return nil, apperrors.Wrap(apperrors.CodeDataSource, "no card data could be loaded", f.Warnings[0])
	}
	return f, nil
}

// Options configures a new game.
type Options struct {
	StartingDoom     int
	MysteriesToSolve int
	ReserveSize      int
	MythosStages     []MythosStage
}

// GameState is everything that changes during one game. A single handle is
// passed to every operation; nothing about it is global.
type GameState struct {
	ID               uuid.UUID
	Doom             int
	DoomCeiling      int
	DoomFloor        int
	MysteriesSolved  int
	MysteriesToSolve int
	Phase            Phase
	Round            int
	EldritchTokens   int

	Locations  map[string]*Location
	Assets     *deck.AssetDeck[*Asset]
	Conditions *deck.ConditionDeck[*Condition]
	Encounters map[EncounterType]*EncounterDeck
	Mythos     *deck.Deck[*MythosCard]

	Players  *PlayerManager
	Defeated []*Investigator

	Factories *Factories
	Rand      *rand.Rand
	Logger    *zap.Logger
}

// NewGameState returns a state bound to loaded factories. Call Reset before
// playing.
func NewGameState(f *Factories, rng *rand.Rand, logger *zap.Logger) *GameState {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &GameState{
		Factories: f,
		Rand:      rng,
		Logger:    logging.OrNop(logger),
		Players:   NewPlayerManager(),
		Phase:     PhaseAction,
	}
}

// Reset rebuilds the board and every deck and clears players and counters.
func (s *GameState) Reset(opts Options) {
	s.ID = uuid.New()
	s.Doom = opts.StartingDoom
	s.DoomCeiling = opts.StartingDoom
	s.DoomFloor = 0
	s.MysteriesSolved = 0
	s.MysteriesToSolve = opts.MysteriesToSolve
	s.Phase = PhaseAction
	s.Round = 1
	s.EldritchTokens = 0
	s.Players = NewPlayerManager()
	s.Defeated = nil

	s.Locations = s.Factories.Locations.Build()

	s.Assets = deck.NewAssetDeck(s.Factories.Assets.CreateAll(), s.Rand)
	s.Assets.Shuffle()
	size := opts.ReserveSize
	if size <= 0 {
		size = deck.DefaultReserveSize
	}
	s.Assets.SetupReserve(size)

	s.Conditions = deck.NewConditionDeck(s.Factories.Conditions.CreateAll(), s.Rand)
	s.Conditions.Shuffle()

	s.Encounters = make(map[EncounterType]*EncounterDeck, len(EncounterTypes))
	for _, t := range EncounterTypes {
		s.Encounters[t] = s.Factories.Encounters.Deck(t, s.Rand)
	}

	s.Mythos = s.Factories.Mythos.BuildDeck(opts.MythosStages, s.Rand)

	s.Logger.Info("game reset",
		zap.String("game", s.ID.String()),
		zap.Int("doom", s.Doom),
		zap.Int("assets", s.Assets.Total()),
		zap.Int("conditions", s.Conditions.Total()),
		zap.Int("mythos", s.Mythos.Total()),
		zap.Int("locations", len(s.Locations)))
}

// AddInvestigator seats a player with a fresh investigator from the factory
// and deals its starting assets from the asset deck.
func (s *GameState) AddInvestigator(player, id string) (*Player, error) {
	inv, starting, err := s.Factories.Investigators.Create(id)
	if err != nil {
		return nil, err
	}
	if _, ok := s.Locations[inv.Location]; !ok {
		s.Logger.Warn("unknown starting location", zap.String("investigator", id), zap.String("location", inv.Location))
		inv.Location = s.anyLocation()
	}
	inv.Actions = 0
	for _, aid := range starting {
		a, ok := s.Assets.TakeByID(aid)
		if !ok {
			s.Logger.Warn("starting asset not in deck", zap.String("asset", aid))
			continue
		}
		if err := inv.AddAsset(a); err != nil {
			return nil, err
		}
	}
	return s.Players.AddPlayer(player, inv), nil
}

// AdvanceDoom moves doom n steps toward its floor.
func (s *GameState) AdvanceDoom(n int) {
	s.Doom = max(s.DoomFloor, s.Doom-n)
}

// RetreatDoom moves doom n steps away from its floor.
func (s *GameState) RetreatDoom(n int) {
	s.Doom = min(s.DoomCeiling, s.Doom+n)
}

// SolveMystery records a solved mystery.
func (s *GameState) SolveMystery() {
	s.MysteriesSolved++
	s.Logger.Info("mystery solved", zap.Int("solved", s.MysteriesSolved), zap.Int("needed", s.MysteriesToSolve))
}

// SpawnClue places count clues on random locations, preferring spaces without
// one. It returns the names in placement order.
func (s *GameState) SpawnClue(count int) []string {
	var placed []string
	for range count {
		name := s.pickLocation(func(l *Location) bool { return l.Clues == 0 })
		if name == "" {
			break
		}
		s.Locations[name].Clues++
		placed = append(placed, name)
	}
	return placed
}

// SpawnGate opens a gate on a random location without one.
func (s *GameState) SpawnGate() (string, bool) {
	name := s.pickLocation(func(l *Location) bool { return !l.Gate })
	if name == "" || s.Locations[name].Gate {
		return "", false
	}
	s.Locations[name].Gate = true
	return name, true
}

// Gates returns the names of locations holding a gate, sorted.
func (s *GameState) Gates() []string {
	var out []string
	for name, l := range s.Locations {
		if l.Gate {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ReleaseCondition resets a condition and puts it on the condition discard
// pile.
func (s *GameState) ReleaseCondition(c *Condition) error {
	c.Reset()
	return s.Conditions.Discard(c)
}

// DiscardAsset puts an asset on the asset discard pile.
func (s *GameState) DiscardAsset(a *Asset) error {
	return s.Assets.Discard(a)
}

// Defeat moves inv out of play. It keeps its location, assets and clues so
// other investigators can recover them.
func (s *GameState) Defeat(inv *Investigator) {
	if slices.Contains(s.Defeated, inv) {
		return
	}
	s.Defeated = append(s.Defeated, inv)
	for _, c := range inv.Conditions {
		if err := s.ReleaseCondition(c); err != nil {
			s.Logger.Error("release condition", zap.String("condition", c.ID), zap.Error(err))
		}
	}
	inv.Conditions = nil
	s.Logger.Info("investigator defeated", zap.String("investigator", inv.Name), zap.String("location", inv.Location))
}

// DefeatedAt returns the defeated investigators lying at location.
func (s *GameState) DefeatedAt(location string) []*Investigator {
	var out []*Investigator
	for _, inv := range s.Defeated {
		if inv.Location == location {
			out = append(out, inv)
		}
	}
	return out
}

// RemoveDefeated takes a defeated investigator off the board.
func (s *GameState) RemoveDefeated(inv *Investigator) {
	if i := slices.Index(s.Defeated, inv); i >= 0 {
		s.Defeated[i].Location = ""
	}
}

// HeldAsset reports whether any investigator, living or defeated, holds an
// asset with id.
func (s *GameState) HeldAsset(id string) bool {
	held := func(inv *Investigator) bool {
		return inv != nil && slices.Contains(inv.AssetIDs(), id)
	}
	for _, p := range s.Players.All() {
		if held(p.Investigator) {
			return true
		}
	}
	return slices.ContainsFunc(s.Defeated, held)
}

// Location returns the named location.
func (s *GameState) Location(name string) (*Location, error) {
	l, ok := s.Locations[name]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeInvariantViolation,
			fmt.Sprintf("unknown location %q", name), map[string]string{"location": name})
	}
	return l, nil
}

// pickLocation picks a random location matching pred, or any location when
// none match.
func (s *GameState) pickLocation(pred func(*Location) bool) string {
	names := make([]string, 0, len(s.Locations))
	for n := range s.Locations {
		names = append(names, n)
	}
	sort.Strings(names)
	var matching []string
	for _, n := range names {
		if pred(s.Locations[n]) {
			matching = append(matching, n)
		}
	}
	if len(matching) == 0 {
		matching = names
	}
	if len(matching) == 0 {
		return ""
	}
	return matching[s.Rand.Intn(len(matching))]
}

func (s *GameState) anyLocation() string {
	return s.pickLocation(func(*Location) bool { return true })
}
