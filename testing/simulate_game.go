package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tatianab/eldritch-pursuit/internal/autoplay"
	"github.com/tatianab/eldritch-pursuit/internal/config"
	"github.com/tatianab/eldritch-pursuit/internal/data"
	"github.com/tatianab/eldritch-pursuit/internal/dice"
	"github.com/tatianab/eldritch-pursuit/internal/engine"
	"github.com/tatianab/eldritch-pursuit/internal/logging"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

const maxSteps = 200

// printer echoes every message the player sees.
type printer struct {
	*autoplay.Gemini
}

func (p printer) ShowMessage(text string) {
	fmt.Println(text)
	p.Gemini.ShowMessage(text)
}

func (p printer) AskYesNo(prompt string) bool {
	yes := p.Gemini.AskYesNo(prompt)
	fmt.Printf("? %s -> %t\n", prompt, yes)
	return yes
}

func (p printer) ShowChoice(prompt string, options []string) string {
	choice := p.Gemini.ShowChoice(prompt, options)
	fmt.Printf("? %s [%s] -> %s\n", prompt, strings.Join(options, " | "), choice)
	return choice
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireGemini(); err != nil {
		log.Fatalf("Simulation needs Gemini: %v", err)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	factories, err := models.LoadFactories(data.Open(cfg.DataDir), logger)
	if err != nil {
		log.Fatalf("Failed to load card data: %v", err)
	}
	rng, seed, err := dice.NewRand(cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to seed dice: %v", err)
	}
	ancient, err := engine.NewAncientOne(cfg.AncientOne)
	if err != nil {
		log.Fatalf("Failed to choose Ancient One: %v", err)
	}

	player, err := autoplay.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}
	defer player.Close()
	player.Mysteries = ancient.MysteriesToSolve()

	eng := engine.NewEngine(models.NewGameState(factories, rng, logger), ancient, printer{player}, engine.Options{
		ActionsPerTurn: cfg.ActionsPerTurn,
		DoomPerMythos:  cfg.DoomPerMythos,
		ReserveSize:    cfg.ReserveSize,
	}, logger)

	fmt.Printf("--- Setting up against %s (seed %d) ---\n", ancient.Name(), seed)
	if err := eng.Setup(cfg.Players, nil); err != nil {
		log.Fatalf("Failed to set up game: %v", err)
	}

	for step := 1; step <= maxSteps; step++ {
		if err := eng.Step(ctx); err != nil {
			fmt.Printf("Error in step %d: %v\n", step, err)
			return
		}
		if out, over := eng.Outcome(); over {
			if out.InvestigatorsWin {
				fmt.Println("Game Ended: Investigators Won!")
			} else {
				fmt.Println("Game Ended: Investigators Lost!")
			}
			fmt.Println(out.Reason)
			return
		}
	}
	s := eng.State()
	fmt.Printf("Stopped after %d steps: round %d, doom %d, mysteries %d/%d\n",
		maxSteps, s.Round, s.Doom, s.MysteriesSolved, s.MysteriesToSolve)
}
