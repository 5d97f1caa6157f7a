package models

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
)

// Monster is a foe standing on a space.
type Monster struct {
	Name      string
	Toughness int
	Damage    int
	Horror    int
}

// Location is one space on the board.
type Location struct {
	Name        string
	Description string
	Connections []string
	Type        LocationType
	TrainPaths  []string
	ShipPaths   []string
	// Continent names the continent encounter deck for cities that have one.
	Continent  EncounterType
	Monsters   []Monster
	Gate       bool
	Clues      int
	Expedition bool
	Rumor      string
}

// ConnectedTo reports whether any path leads to name.
func (l *Location) ConnectedTo(name string) bool {
	return slices.Contains(l.Connections, name) || l.HasPath(TicketTrain, name) || l.HasPath(TicketShip, name)
}

// HasPath reports whether a ticket path of type t leads to name.
func (l *Location) HasPath(t TicketType, name string) bool {
	if t == TicketShip {
		return slices.Contains(l.ShipPaths, name)
	}
	return slices.Contains(l.TrainPaths, name)
}

// Paths returns the ticket paths of type t.
func (l *Location) Paths(t TicketType) []string {
	if t == TicketShip {
		return l.ShipPaths
	}
	return l.TrainPaths
}

// HasMonsters reports whether monsters stand here.
func (l *Location) HasMonsters() bool { return len(l.Monsters) > 0 }

// RemoveMonster removes the monster at index i.
func (l *Location) RemoveMonster(i int) {
	if i >= 0 && i < len(l.Monsters) {
		l.Monsters = slices.Delete(l.Monsters, i, i+1)
	}
}

// LocationFactory builds the board from the "locations" category.
type LocationFactory struct {
	loader
}

// NewLocationFactory returns an unloaded factory; call Load before use.
func NewLocationFactory(src Source, logger *zap.Logger) *LocationFactory {
	return &LocationFactory{loader: newLoader(CategoryLocations, src, nil, logger)}
}

// Load reads and validates every location record. Location records use their
// name as id.
func (f *LocationFactory) Load() error {
	return f.load(func(r Record) error {
		_, err := buildLocation(r)
		return err
	})
}

// Build returns a fresh board keyed by location name. Connections to
// unknown locations are dropped with a warning.
func (f *LocationFactory) Build() map[string]*Location {
	board := make(map[string]*Location, len(f.order))
	for _, id := range f.order {
		if loc, err := buildLocation(f.records[id]); err == nil {
			board[loc.Name] = loc
		}
	}
	for _, loc := range board {
		loc.Connections = f.known(board, loc.Name, loc.Connections)
		loc.TrainPaths = f.known(board, loc.Name, loc.TrainPaths)
		loc.ShipPaths = f.known(board, loc.Name, loc.ShipPaths)
	}
	return board
}

func (f *LocationFactory) known(board map[string]*Location, from string, names []string) []string {
	out := names[:0]
	for _, n := range names {
		if _, ok := board[n]; !ok {
			f.logger.Warn("dropping path to unknown location", zap.String("from", from), zap.String("to", n))
			continue
		}
		out = append(out, n)
	}
	return out
}

func buildLocation(r Record) (*Location, error) {
	name := r.String("name")
	if name == "" {
		name = r.String("id")
	}
	if name == "" {
		return nil, apperrors.New(apperrors.CodeMalformedData, "location without name")
	}
	loc := &Location{
		Name:        name,
		Description: r.String("description"),
		Connections: r.Strings("connections"),
		Type:        ParseLocationType(r.String("type")),
		TrainPaths:  r.Strings("train_paths"),
		ShipPaths:   r.Strings("ship_paths"),
		Continent:   EncounterType(r.String("continent")),
		Gate:        r.Bool("gate", false),
		Clues:       r.Int("clues", 0),
		Expedition:  r.Bool("expedition", false),
		Rumor:       r.String("rumor"),
	}
	switch loc.Continent {
	case "", EncounterAmerica, EncounterEurope, EncounterAsia:
	default:
		return nil, apperrors.New(apperrors.CodeMalformedData,
			fmt.Sprintf("location %s has unknown continent %q", name, loc.Continent))
	}
	for _, mr := range r.Records("monsters") {
		loc.Monsters = append(loc.Monsters, Monster{
			Name:      mr.String("name"),
			Toughness: mr.Int("toughness", 1),
			Damage:    mr.Int("damage", 1),
			Horror:    mr.Int("horror", 1),
		})
	}
	return loc, nil
}
