// Package engine runs the Action, Encounter and Mythos phases of a game.
package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/logging"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

// Phase transition events.
const (
	EventEndAction    = "end_action"
	EventEndEncounter = "end_encounter"
	EventEndMythos    = "end_mythos"
)

// Options tunes the round structure.
type Options struct {
	ActionsPerTurn int
	DoomPerMythos  int
	ReserveSize    int
}

// DefaultOptions returns the standard rules.
func DefaultOptions() Options {
	return Options{ActionsPerTurn: 2, DoomPerMythos: 1, ReserveSize: 4}
}

// Outcome is how a game ended.
type Outcome struct {
	InvestigatorsWin bool
	Reason           string
}

// Engine drives one game over a GameState.
type Engine struct {
	state   *models.GameState
	ancient AncientOne
	ui      models.UI
	opts    Options
	phases  *fsm.FSM
	logger  *zap.Logger
	outcome *Outcome

	awakened bool
}

// NewEngine returns an engine for state. Call Setup before stepping.
func NewEngine(state *models.GameState, ancient AncientOne, ui models.UI, opts Options, logger *zap.Logger) *Engine {
	e := &Engine{
		state:   state,
		ancient: ancient,
		ui:      ui,
		opts:    opts,
		logger:  logging.OrNop(logger),
	}
	e.phases = fsm.NewFSM(
		string(models.PhaseAction),
		fsm.Events{
			{Name: EventEndAction, Src: []string{string(models.PhaseAction)}, Dst: string(models.PhaseEncounter)},
			{Name: EventEndEncounter, Src: []string{string(models.PhaseEncounter)}, Dst: string(models.PhaseMythos)},
			{Name: EventEndMythos, Src: []string{string(models.PhaseMythos)}, Dst: string(models.PhaseAction)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				e.state.Phase = models.Phase(ev.Dst)
				e.logger.Info("phase changed",
					zap.String("from", ev.Src), zap.String("to", ev.Dst), zap.Int("round", e.state.Round))
				e.say(fmt.Sprintf("--- %s Phase ---", ev.Dst))
			},
		},
	)
	return e
}

// State returns the game state.
func (e *Engine) State() *models.GameState { return e.state }

// Phase returns the current phase.
func (e *Engine) Phase() models.Phase { return models.Phase(e.phases.Current()) }

// Outcome returns the result once the game is over.
func (e *Engine) Outcome() (Outcome, bool) {
	if e.outcome == nil {
		return Outcome{}, false
	}
	return *e.outcome, true
}

// Setup resets the state for the Ancient One and seats one player per
// investigator id. With no ids, investigators for the given number of
// players are chosen through the UI.
func (e *Engine) Setup(players int, investigators []string) error {
	e.state.Reset(models.Options{
		StartingDoom:     e.ancient.StartingDoom(),
		MysteriesToSolve: e.ancient.MysteriesToSolve(),
		ReserveSize:      e.opts.ReserveSize,
		MythosStages:     e.ancient.MythosStages(),
	})
	e.outcome = nil
	e.awakened = false
	e.phases.SetState(string(models.PhaseAction))
	if f := e.state.Factories; f != nil {
		for _, w := range f.Warnings {
			e.say("Warning: " + w.Error())
		}
	}

	if len(investigators) == 0 {
		investigators = e.chooseInvestigators(players)
	}
	for i, id := range investigators {
		p, err := e.state.AddInvestigator(fmt.Sprintf("Player %d", i+1), id)
		if err != nil {
			return fmt.Errorf("seat investigator %s: %w", id, err)
		}
		e.logger.Info("investigator seated",
			zap.Int("player", p.ID), zap.String("investigator", p.Investigator.Name),
			zap.String("location", p.Investigator.Location))
	}
	e.ancient.OnSetup(e.state, e.ui)
	e.logger.Info("game setup",
		zap.String("game", e.state.ID.String()),
		zap.String("ancient_one", e.ancient.Name()),
		zap.Int("players", e.state.Players.Count()))
	return nil
}

func (e *Engine) chooseInvestigators(players int) []string {
	pool := e.state.Factories.Investigators.IDs()
	var chosen []string
	for n := 1; n <= players && len(pool) > 0; n++ {
		i := models.Choose(e.ui, fmt.Sprintf("Player %d, choose your investigator:", n), pool)
		if i < 0 {
			i = e.state.Rand.Intn(len(pool))
		}
		chosen = append(chosen, pool[i])
		pool = append(pool[:i:i], pool[i+1:]...)
	}
	return chosen
}

// Step plays one player's turn in the Action or Encounter phase, or the
// whole Mythos phase. The phase moves on once control returns to the lead
// investigator. Game over is checked after every step.
func (e *Engine) Step(ctx context.Context) error {
	if e.outcome != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	switch e.Phase() {
	case models.PhaseAction:
		err = e.playerTurn(ctx, e.actionTurn, EventEndAction)
	case models.PhaseEncounter:
		err = e.playerTurn(ctx, e.encounterTurn, EventEndEncounter)
	case models.PhaseMythos:
		if err = e.mythosPhase(); err == nil {
			err = e.phases.Event(ctx, EventEndMythos)
		}
	}
	e.collectDefeated()
	if out, over := e.CheckGameOver(); over {
		e.outcome = &out
		e.logger.Info("game over", zap.Bool("investigators_win", out.InvestigatorsWin), zap.String("reason", out.Reason))
		e.say(out.Reason)
	}
	return err
}

// Run steps until the game is over or ctx is done.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	for e.outcome == nil {
		if err := e.Step(ctx); err != nil {
			return Outcome{}, err
		}
	}
	return *e.outcome, nil
}

func (e *Engine) playerTurn(ctx context.Context, turn func(*models.Player) error, event string) error {
	p, err := e.state.Players.Current()
	if err != nil {
		e.logger.Warn("skipping phase", zap.String("phase", e.phases.Current()), zap.Error(err))
		return e.phases.Event(ctx, event)
	}
	if p.Investigator != nil && !p.Investigator.IsDefeated() {
		if err := turn(p); err != nil {
			return fmt.Errorf("%s turn of player %d: %w", e.phases.Current(), p.ID, err)
		}
	}
	if e.state.Players.Advance() {
		return e.phases.Event(ctx, event)
	}
	return nil
}

// CheckGameOver evaluates victory and defeat. Mysteries are checked first,
// then investigator exhaustion, the doom floor, and last the Ancient One.
// Awakening only happens when doom reaches its floor, and the floor loss is
// checked first in the same Step, so the Ancient One's awakened conditions
// do not end a game played through Step.
func (e *Engine) CheckGameOver() (Outcome, bool) {
	s := e.state
	if s.MysteriesSolved >= s.MysteriesToSolve {
		return Outcome{InvestigatorsWin: true, Reason: "The investigators have solved the mysteries and banished " + e.ancient.Name() + "!"}, true
	}
	if !s.Players.Living() {
		return Outcome{Reason: "Every investigator has been defeated."}, true
	}
	if s.Doom <= s.DoomFloor {
		return Outcome{Reason: "Doom has reached zero. " + e.ancient.Name() + " is loose upon the world."}, true
	}
	if over, win := e.ancient.CheckDefeatConditions(s); over {
		reason := e.ancient.Name() + " has prevailed."
		if win {
			reason = e.ancient.Name() + " has been defeated!"
		}
		return Outcome{InvestigatorsWin: win, Reason: reason}, true
	}
	return Outcome{}, false
}

// collectDefeated moves newly defeated investigators out of play.
func (e *Engine) collectDefeated() {
	for _, p := range e.state.Players.All() {
		inv := p.Investigator
		if inv == nil || !inv.IsDefeated() || slices.Contains(e.state.Defeated, inv) {
			continue
		}
		e.state.Defeat(inv)
		e.say(fmt.Sprintf("%s has been defeated.", inv.Name))
	}
}

func (e *Engine) say(text string) {
	if e.ui != nil {
		e.ui.ShowMessage(text)
	}
}

func (e *Engine) ask(prompt string) bool {
	return e.ui != nil && e.ui.AskYesNo(prompt)
}
