package models

import (
	"fmt"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// Player is a seat at the table controlling one investigator.
type Player struct {
	ID           int
	Name         string
	Investigator *Investigator
	Lead         bool
}

// PlayerManager keeps the players in ring order and tracks whose turn it is.
type PlayerManager struct {
	players []*Player
	current int
	lead    int
}

// NewPlayerManager returns an empty manager.
func NewPlayerManager() *PlayerManager {
	return &PlayerManager{}
}

// AddPlayer seats a new player after the existing ones. The first player
// seated becomes the lead investigator.
func (m *PlayerManager) AddPlayer(name string, inv *Investigator) *Player {
	p := &Player{ID: len(m.players) + 1, Name: name, Investigator: inv}
	m.players = append(m.players, p)
	if len(m.players) == 1 {
		p.Lead = true
		m.lead = 0
		m.current = 0
	}
	return p
}

// Count returns the number of seated players.
func (m *PlayerManager) Count() int { return len(m.players) }

// All returns the players in ring order.
func (m *PlayerManager) All() []*Player { return append([]*Player(nil), m.players...) }

// Current returns the player whose turn it is.
func (m *PlayerManager) Current() (*Player, error) {
	if len(m.players) == 0 {
		return nil, apperrors.New(apperrors.CodeMissingPlayer, "no players seated")
	}
	return m.players[m.current], nil
}

// Lead returns the lead investigator's player.
func (m *PlayerManager) Lead() (*Player, error) {
	if len(m.players) == 0 {
		return nil, apperrors.New(apperrors.CodeMissingPlayer, "no players seated")
	}
	return m.players[m.lead], nil
}

// Advance passes control to the next player in the ring and reports whether
// control is back with the lead investigator.
func (m *PlayerManager) Advance() bool {
	if len(m.players) == 0 {
		return true
	}
	m.current = (m.current + 1) % len(m.players)
	return m.current == m.lead
}

// IsLeadTurn reports whether the lead investigator is acting.
func (m *PlayerManager) IsLeadTurn() bool { return m.current == m.lead }

// ResetTurnOrder hands control back to the lead investigator.
func (m *PlayerManager) ResetTurnOrder() { m.current = m.lead }

// SetLeadInvestigator moves the lead flag to the player with id.
func (m *PlayerManager) SetLeadInvestigator(id int) error {
	for i, p := range m.players {
		if p.ID == id {
			m.players[m.lead].Lead = false
			p.Lead = true
			m.lead = i
			return nil
		}
	}
	return apperrors.WithMetadata(apperrors.CodeMissingPlayer,
		fmt.Sprintf("no player with id %d", id), map[string]string{"player": fmt.Sprint(id)})
}

// ByID returns the player with id.
func (m *PlayerManager) ByID(id int) (*Player, bool) {
	for _, p := range m.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// At returns the players whose living investigator stands at location,
// excluding skip.
func (m *PlayerManager) At(location string, skip *Player) []*Player {
	var out []*Player
	for _, p := range m.players {
		if p == skip || p.Investigator == nil || p.Investigator.IsDefeated() {
			continue
		}
		if p.Investigator.Location == location {
			out = append(out, p)
		}
	}
	return out
}

// Living reports whether any player still has an undefeated investigator.
func (m *PlayerManager) Living() bool {
	for _, p := range m.players {
		if p.Investigator != nil && !p.Investigator.IsDefeated() {
			return true
		}
	}
	return false
}
