// Package world holds the location graph, the environment clock and the
// encounter rules evaluated on travel.
package world

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/qninhdt/eclipse-rpg/server/internal/random"
)

// LocationType classifies a location
type LocationType string

const (
	Safe    LocationType = "SAFE"
	Danger  LocationType = "DANGER"
	Town    LocationType = "TOWN"
	Dungeon LocationType = "DUNGEON"
)

// AmbushChance is the probability of an encounter on arrival when the rule allows one
const AmbushChance = 0.3

// ruleTimeout bounds a single encounter rule evaluation
const ruleTimeout = 100 * time.Millisecond

// Location is a node of the world map
type Location struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        LocationType `json:"type"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Connections []string     `json:"connections"`
	// Encounter is an expr rule over type, time, weather and turn. Empty uses the type default.
	Encounter string `json:"encounter,omitempty"`

	program *vm.Program
}

// AllowsTrade reports whether shops operate here
func (l *Location) AllowsTrade() bool {
	return l.Type == Town || l.Type == Safe
}

// Map is an undirected location graph
type Map struct {
	locations map[string]*Location
	mu        sync.RWMutex
}

// NewMap creates an empty map
func NewMap() *Map {
	return &Map{
		locations: make(map[string]*Location),
	}
}

// AddLocation adds a location and compiles its encounter rule
func (m *Map) AddLocation(loc Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.locations[loc.ID]; exists {
		return fmt.Errorf("location %s already exists", loc.ID)
	}

	if loc.Encounter != "" {
		program, err := expr.Compile(loc.Encounter, expr.Env(ruleEnv("", Environment{})), expr.AsBool())
		if err != nil {
			return fmt.Errorf("invalid encounter rule for %s: %w", loc.ID, err)
		}
		loc.program = program
	}
	loc.Connections = nil

	m.locations[loc.ID] = &loc
	return nil
}

// Connect links two locations both ways
func (m *Map) Connect(a, b string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, ok := m.locations[a]
	if !ok {
		return fmt.Errorf("location %s not found", a)
	}
	to, ok := m.locations[b]
	if !ok {
		return fmt.Errorf("location %s not found", b)
	}
	if !contains(from.Connections, b) {
		from.Connections = append(from.Connections, b)
	}
	if !contains(to.Connections, a) {
		to.Connections = append(to.Connections, a)
	}
	return nil
}

// Location returns a copy of a location
func (m *Map) Location(id string) (Location, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[id]
	if !ok {
		return Location{}, false
	}
	out := *loc
	out.Connections = append([]string(nil), loc.Connections...)
	return out, true
}

// Locations returns all locations sorted by id
func (m *Map) Locations() []Location {
	m.mu.RLock()
	ids := make([]string, 0, len(m.locations))
	for id := range m.locations {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	out := make([]Location, 0, len(ids))
	for _, id := range ids {
		loc, _ := m.Location(id)
		out = append(out, loc)
	}
	return out
}

// Route returns the destination when it exists and is adjacent to from
func (m *Map) Route(from, to string) (Location, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src, ok := m.locations[from]
	if !ok {
		return Location{}, false
	}
	dst, ok := m.locations[to]
	if !ok || !contains(src.Connections, to) {
		return Location{}, false
	}
	out := *dst
	out.Connections = append([]string(nil), dst.Connections...)
	return out, true
}

func ruleEnv(typ LocationType, env Environment) map[string]any {
	return map[string]any{
		"type":    string(typ),
		"time":    string(env.Time),
		"weather": string(env.Weather),
		"turn":    env.TurnCount,
	}
}

// EncounterAllowed evaluates the location's encounter rule against the environment
func (m *Map) EncounterAllowed(id string, env Environment) (bool, error) {
	m.mu.RLock()
	loc, ok := m.locations[id]
	m.mu.RUnlock()

	if !ok {
		return false, fmt.Errorf("location %s not found", id)
	}
	if loc.program == nil {
		return loc.Type == Danger || loc.Type == Dungeon, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ruleTimeout)
	defer cancel()

	state := ruleEnv(loc.Type, env)

	resultChan := make(chan any, 1)
	errChan := make(chan error, 1)
	go func() {
		result, err := vm.Run(loc.program, state)
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- result
	}()

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("encounter rule for %s timed out", id)
	case err := <-errChan:
		return false, fmt.Errorf("encounter rule for %s: %w", id, err)
	case result := <-resultChan:
		allowed, ok := result.(bool)
		if !ok {
			return false, fmt.Errorf("encounter rule for %s did not evaluate to boolean", id)
		}
		return allowed, nil
	}
}

// Ambush rolls for an encounter on arrival. A failing rule means no ambush.
func (m *Map) Ambush(id string, env Environment, rng random.Source) bool {
	allowed, err := m.EncounterAllowed(id, env)
	if err != nil || !allowed {
		return false
	}
	return rng.Float64() < AmbushChance
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
