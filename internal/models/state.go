package models

import (
	"maps"
	"slices"
)

// Stats maps every StatKey to its current value.
type Stats map[StatKey]int

// NewStats returns Stats with every key set to zero.
func NewStats() Stats {
	s := make(Stats, len(StatKeys))
	for _, k := range StatKeys {
		s[k] = 0
	}
	return s
}

// GameState is one player's progress through a story. It is owned by a
// single session and must not be shared between goroutines without locking.
type GameState struct {
	Current string
	Stats   Stats
	Flags   map[string]bool
	Visited []string
	Journal []string
}

// NewGameState returns a fresh state positioned at start.
func NewGameState(start string) *GameState {
	return &GameState{
		Current: start,
		Stats:   NewStats(),
		Flags:   map[string]bool{},
		Visited: []string{},
		Journal: []string{},
	}
}

// Snapshot is the plain-data form of GameState used for persistence.
type Snapshot struct {
	Current string          `yaml:"current" json:"current"`
	Stats   Stats           `yaml:"stats" json:"stats"`
	Flags   map[string]bool `yaml:"flags" json:"flags"`
	Visited []string        `yaml:"visited" json:"visited"`
	Journal []string        `yaml:"journal" json:"journal"`
}

// Snapshot copies the state into a Snapshot that shares no memory with s.
func (s *GameState) Snapshot() Snapshot {
	return Snapshot{
		Current: s.Current,
		Stats:   maps.Clone(s.Stats),
		Flags:   maps.Clone(s.Flags),
		Visited: slices.Clone(s.Visited),
		Journal: slices.Clone(s.Journal),
	}
}

// FromSnapshot rebuilds a GameState from snap. Missing stats read as zero,
// stats outside StatKeys are dropped and nil collections become empty.
func FromSnapshot(snap Snapshot) *GameState {
	gs := NewGameState(snap.Current)
	for _, k := range StatKeys {
		gs.Stats[k] = snap.Stats[k]
	}
	if snap.Flags != nil {
		gs.Flags = maps.Clone(snap.Flags)
	}
	if snap.Visited != nil {
		gs.Visited = slices.Clone(snap.Visited)
	}
	if snap.Journal != nil {
		gs.Journal = slices.Clone(snap.Journal)
	}
	return gs
}

// Flag returns a pointer to name, for building flag Conditions in code.
func Flag(name string) *string {
	return &name
}
