package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/dice"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

// Action menu labels. Each also answers to its numeric code.
const (
	ActionTravel    = "Travel"
	ActionRest      = "Rest"
	ActionTrade     = "Trade"
	ActionPrepare   = "Prepare for travel"
	ActionAcquire   = "Acquire assets"
	ActionComponent = "Component action"
	ActionMap       = "Show map"
	ActionEnd       = "End turn"
)

type action struct {
	code  string
	label string
	// run performs the action and reports whether it used up an action.
	run func(p *models.Player) (bool, error)
}

func (e *Engine) actions() []action {
	return []action{
		{"1", ActionTravel, e.travel},
		{"2", ActionRest, e.rest},
		{"3", ActionTrade, e.trade},
		{"4", ActionPrepare, e.prepare},
		{"5", ActionAcquire, e.acquire},
		{"6", ActionComponent, e.componentAction},
		{"7", ActionMap, e.showMap},
		{"9", ActionEnd, nil},
	}
}

// actionTurn lets one investigator spend its action budget. Each action can
// be taken once per turn.
func (e *Engine) actionTurn(p *models.Player) error {
	inv := p.Investigator
	if inv.Delayed {
		inv.Delayed = false
		e.say(fmt.Sprintf("%s is delayed and loses this turn.", inv.Name))
		return nil
	}
	if e.ui == nil {
		return nil
	}

	inv.Actions = e.opts.ActionsPerTurn
	taken := make(map[string]bool)
	invalid := 0
	for inv.Actions > 0 && !inv.IsDefeated() {
		var menu []action
		for _, a := range e.actions() {
			if !taken[a.code] {
				menu = append(menu, a)
			}
		}
		labels := make([]string, len(menu))
		for i, a := range menu {
			labels[i] = a.label
		}
		prompt := fmt.Sprintf("%s in %s, %d action(s) left, each action once per turn. Health %d/%d, Sanity %d/%d, Clues %d.",
			inv.Name, inv.Location, inv.Actions, inv.Health, inv.MaxHealth, inv.Sanity, inv.MaxSanity, inv.Clues)

		answer := e.ui.ShowChoice(prompt, labels)
		a, ok := pickAction(answer, menu)
		if !ok {
			invalid++
			if invalid >= models.MaxPrompts {
				e.logger.Warn("too many invalid actions, ending turn", zap.String("investigator", inv.ID))
				break
			}
			e.say(fmt.Sprintf("%q is not an available action.", answer))
			continue
		}
		invalid = 0
		if a.run == nil {
			break
		}
		spent, err := a.run(p)
		if err != nil {
			return fmt.Errorf("%s: %w", a.label, err)
		}
		if spent {
			inv.Actions--
			taken[a.code] = true
			e.logger.Debug("action taken", zap.String("investigator", inv.ID), zap.String("action", a.label))
		}
	}
	inv.Actions = 0
	return nil
}

func pickAction(answer string, menu []action) (action, bool) {
	answer = strings.TrimSpace(answer)
	for _, a := range menu {
		if answer == a.code || strings.EqualFold(answer, a.label) {
			return a, true
		}
	}
	return action{}, false
}

func (e *Engine) travel(p *models.Player) (bool, error) {
	inv := p.Investigator
	loc, err := e.state.Location(inv.Location)
	if err != nil {
		return false, err
	}
	if len(loc.Connections) == 0 {
		e.say(fmt.Sprintf("No roads lead out of %s.", loc.Name))
		return false, nil
	}
	i := models.Choose(e.ui, "Travel to:", loc.Connections)
	if i < 0 {
		return false, nil
	}
	e.moveTo(inv, loc.Connections[i])
	return true, e.ticketTravel(inv)
}

// ticketTravel offers further moves along train and ship paths for as long
// as the investigator holds matching tickets and accepts.
func (e *Engine) ticketTravel(inv *models.Investigator) error {
	for {
		loc, err := e.state.Location(inv.Location)
		if err != nil {
			return err
		}
		moved := false
		for _, t := range []models.TicketType{models.TicketTrain, models.TicketShip} {
			paths := loc.Paths(t)
			if len(paths) == 0 || inv.Tickets(t) == 0 {
				continue
			}
			if !e.ask(fmt.Sprintf("You have %d %s ticket(s). Use one to travel by %s?", inv.Tickets(t), t, t)) {
				continue
			}
			i := models.Choose(e.ui, fmt.Sprintf("Travel by %s to:", t), paths)
			if i < 0 || !inv.UseTicket(t) {
				continue
			}
			e.moveTo(inv, paths[i])
			moved = true
			break
		}
		if !moved {
			return nil
		}
	}
}

func (e *Engine) moveTo(inv *models.Investigator, name string) {
	from := inv.Location
	inv.Location = name
	e.say(fmt.Sprintf("%s travels to %s.", inv.Name, name))
	e.logger.Info("travel", zap.String("investigator", inv.ID), zap.String("from", from), zap.String("to", name))
}

func (e *Engine) rest(p *models.Player) (bool, error) {
	inv := p.Investigator
	loc, err := e.state.Location(inv.Location)
	if err != nil {
		return false, err
	}
	if loc.HasMonsters() {
		e.say("You cannot rest while monsters are present!")
		return false, nil
	}
	h := inv.Heal(1)
	s := inv.RestoreSanity(1)
	e.say(fmt.Sprintf("%s rests and recovers %d health and %d sanity.", inv.Name, h, s))
	return true, nil
}

func (e *Engine) trade(p *models.Player) (bool, error) {
	inv := p.Investigator
	others := e.state.Players.At(inv.Location, p)
	if len(others) == 0 {
		e.say("There is no one here to trade with.")
		return false, nil
	}

	type offer struct {
		asset    *models.Asset
		from, to *models.Investigator
	}
	var (
		offers []offer
		labels []string
	)
	for _, a := range inv.Assets {
		for _, o := range others {
			offers = append(offers, offer{a, inv, o.Investigator})
			labels = append(labels, fmt.Sprintf("Give %s to %s", a.Name, o.Investigator.Name))
		}
	}
	for _, o := range others {
		for _, a := range o.Investigator.Assets {
			offers = append(offers, offer{a, o.Investigator, inv})
			labels = append(labels, fmt.Sprintf("Take %s from %s", a.Name, o.Investigator.Name))
		}
	}
	if len(offers) == 0 {
		e.say("Nobody here has anything to trade.")
		return false, nil
	}
	i := models.Choose(e.ui, "Trade:", labels)
	if i < 0 {
		return false, nil
	}
	o := offers[i]
	o.from.RemoveAsset(o.asset)
	if err := o.to.AddAsset(o.asset); err != nil {
		return false, err
	}
	e.say(fmt.Sprintf("%s hands %s to %s.", o.from.Name, o.asset.Name, o.to.Name))
	return true, nil
}

func (e *Engine) prepare(p *models.Player) (bool, error) {
	inv := p.Investigator
	loc, err := e.state.Location(inv.Location)
	if err != nil {
		return false, err
	}
	var kinds []string
	for _, t := range []models.TicketType{models.TicketTrain, models.TicketShip} {
		if len(loc.Paths(t)) > 0 {
			kinds = append(kinds, string(t))
		}
	}
	if len(kinds) == 0 {
		e.say(fmt.Sprintf("No train or ship leaves from %s.", loc.Name))
		return false, nil
	}
	i := 0
	if len(kinds) > 1 {
		if i = models.Choose(e.ui, "Which ticket?", kinds); i < 0 {
			return false, nil
		}
	}
	t := models.TicketType(kinds[i])
	if !inv.AddTicket(t) {
		e.say(fmt.Sprintf("%s cannot carry more tickets.", inv.Name))
		return false, nil
	}
	e.say(fmt.Sprintf("%s gains a %s ticket.", inv.Name, t))
	return true, nil
}

// acquire tests influence and spends the successes on reserve assets whose
// cost fits the remaining budget.
func (e *Engine) acquire(p *models.Player) (bool, error) {
	inv := p.Investigator
	loc, err := e.state.Location(inv.Location)
	if err != nil {
		return false, err
	}
	if loc.HasMonsters() {
		e.say("You cannot acquire assets while monsters are present!")
		return false, nil
	}
	pool := dice.Roll(e.state.Rand, inv.SkillValue(models.SkillInfluence))
	budget := pool.Successes
	e.say(fmt.Sprintf("%s tests influence: %v, %d success(es).", inv.Name, pool.Rolls, budget))

	for budget > 0 {
		reserve := e.state.Assets.Reserve()
		var (
			index  []int
			labels []string
		)
		for i, a := range reserve {
			if a.Cost <= budget {
				index = append(index, i)
				labels = append(labels, fmt.Sprintf("%s (cost %d)", a.Name, a.Cost))
			}
		}
		if len(labels) == 0 {
			break
		}
		labels = append(labels, "Done")
		i := models.Choose(e.ui, fmt.Sprintf("Buy with %d success(es) left:", budget), labels)
		if i < 0 || i == len(labels)-1 {
			break
		}
		a, ok := e.state.Assets.TakeFromReserve(index[i])
		if !ok {
			break
		}
		if err := inv.AddAsset(a); err != nil {
			return true, err
		}
		budget -= a.Cost
		e.say(fmt.Sprintf("%s acquires %s.", inv.Name, a.Name))
	}
	return true, nil
}

func (e *Engine) componentAction(p *models.Player) (bool, error) {
	inv := p.Investigator
	var (
		labels []string
		seqs   [][]models.Component
	)
	for _, a := range inv.Assets {
		if eff, ok := a.Action(); ok {
			labels = append(labels, a.Name)
			seqs = append(seqs, eff.Components)
		}
	}
	for _, c := range inv.Conditions {
		side := c.ActiveSide()
		if c.HasAction && len(side.Components) > 0 {
			labels = append(labels, c.Name)
			seqs = append(seqs, side.Components)
		}
	}
	if len(labels) == 0 {
		e.say("You have no card with an action.")
		return false, nil
	}
	i := models.Choose(e.ui, "Use which card?", labels)
	if i < 0 {
		return false, nil
	}
	if _, err := models.RunSequence(e.state, inv, e.ui, seqs[i]); err != nil {
		return true, err
	}
	return true, nil
}

// showMap describes the current location and its neighbours. It is free.
func (e *Engine) showMap(p *models.Player) (bool, error) {
	loc, err := e.state.Location(p.Investigator.Location)
	if err != nil {
		return false, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", loc.Name, loc.Type)
	if loc.Gate {
		b.WriteString(", gate open")
	}
	if loc.Clues > 0 {
		fmt.Fprintf(&b, ", %d clue(s)", loc.Clues)
	}
	for _, m := range loc.Monsters {
		fmt.Fprintf(&b, ", %s", m.Name)
	}
	if len(loc.Connections) > 0 {
		fmt.Fprintf(&b, "\nRoads: %s", strings.Join(loc.Connections, ", "))
	}
	if len(loc.TrainPaths) > 0 {
		fmt.Fprintf(&b, "\nTrain: %s", strings.Join(loc.TrainPaths, ", "))
	}
	if len(loc.ShipPaths) > 0 {
		fmt.Fprintf(&b, "\nShip: %s", strings.Join(loc.ShipPaths, ", "))
	}
	if gates := e.state.Gates(); len(gates) > 0 {
		fmt.Fprintf(&b, "\nOpen gates: %s", strings.Join(gates, ", "))
	}
	e.say(b.String())
	return false, nil
}
