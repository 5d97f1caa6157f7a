package tui

import (
	"fmt"
	"strings"

	"github.com/tatianab/eldritch-pursuit/internal/engine"
)

// StatusOf renders the sidebar for eng: the doom track and every
// investigator. Call it only from the engine's goroutine.
func StatusOf(eng *engine.Engine) func() string {
	return func() string {
		s := eng.State()
		var b strings.Builder

		b.WriteString(titleStyle.Render("ROUND") + "\n")
		fmt.Fprintf(&b, "Round %d, %s Phase\n", s.Round, eng.Phase())
		fmt.Fprintf(&b, "Doom: %d\n", s.Doom)
		fmt.Fprintf(&b, "Mysteries: %d/%d\n", s.MysteriesSolved, s.MysteriesToSolve)
		if s.EldritchTokens > 0 {
			fmt.Fprintf(&b, "Eldritch tokens: %d\n", s.EldritchTokens)
		}
		if gates := s.Gates(); len(gates) > 0 {
			fmt.Fprintf(&b, "Gates: %s\n", strings.Join(gates, ", "))
		}
		b.WriteString("\n")

		for _, p := range s.Players.All() {
			inv := p.Investigator
			if inv == nil {
				continue
			}
			title := inv.Name
			if p.Lead {
				title += " (lead)"
			}
			b.WriteString(titleStyle.Render(strings.ToUpper(title)) + "\n")
			if inv.IsDefeated() {
				b.WriteString("Defeated\n\n")
				continue
			}
			fmt.Fprintf(&b, "%s\n", inv.Location)
			fmt.Fprintf(&b, "Health %d/%d  Sanity %d/%d\n", inv.Health, inv.MaxHealth, inv.Sanity, inv.MaxSanity)
			fmt.Fprintf(&b, "Clues %d  Train %d  Ship %d\n", inv.Clues, inv.TrainTickets, inv.ShipTickets)
			for _, a := range inv.Assets {
				b.WriteString("- " + a.Name + "\n")
			}
			for _, c := range inv.Conditions {
				b.WriteString("* " + c.ActiveSide().Title + "\n")
			}
			b.WriteString("\n")
		}
		return b.String()
	}
}
