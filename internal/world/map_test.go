package world

import (
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/random"
)

func testMap(t *testing.T) *Map {
	t.Helper()
	m := NewMap()
	locs := []Location{
		{ID: "loc_start", Name: "Bonfire", Type: Safe},
		{ID: "loc_forest", Name: "Forest", Type: Danger},
		{ID: "loc_town", Name: "Town", Type: Town},
		{ID: "loc_marsh", Name: "Marsh", Type: Danger, Encounter: `time == "NIGHT" || weather == "FOG"`},
	}
	for _, loc := range locs {
		if err := m.AddLocation(loc); err != nil {
			t.Fatalf("AddLocation(%s): %v", loc.ID, err)
		}
	}
	for _, edge := range [][2]string{{"loc_start", "loc_forest"}, {"loc_start", "loc_town"}, {"loc_forest", "loc_marsh"}} {
		if err := m.Connect(edge[0], edge[1]); err != nil {
			t.Fatalf("Connect: %v", err)
		}
	}
	return m
}

func TestAddLocationRejectsDuplicatesAndBadRules(t *testing.T) {
	m := testMap(t)
	if err := m.AddLocation(Location{ID: "loc_start"}); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := m.AddLocation(Location{ID: "loc_bad", Encounter: "turn +"}); err == nil {
		t.Fatal("expected compile error")
	}
	if err := m.Connect("loc_start", "nowhere"); err == nil {
		t.Fatal("expected unknown location error")
	}
}

func TestRouteIsUndirected(t *testing.T) {
	m := testMap(t)
	if _, ok := m.Route("loc_start", "loc_forest"); !ok {
		t.Error("start -> forest should be connected")
	}
	if _, ok := m.Route("loc_forest", "loc_start"); !ok {
		t.Error("forest -> start should be connected")
	}
	if _, ok := m.Route("loc_start", "loc_marsh"); ok {
		t.Error("start -> marsh is not adjacent")
	}
	if _, ok := m.Route("loc_start", "loc_missing"); ok {
		t.Error("missing destination should not route")
	}
}

func TestLocationsSorted(t *testing.T) {
	m := testMap(t)
	locs := m.Locations()
	if len(locs) != 4 {
		t.Fatalf("expected 4 locations, got %d", len(locs))
	}
	for i := 1; i < len(locs); i++ {
		if locs[i-1].ID > locs[i].ID {
			t.Fatalf("locations not sorted: %s before %s", locs[i-1].ID, locs[i].ID)
		}
	}
}

func TestEncounterDefaults(t *testing.T) {
	m := testMap(t)
	env := NewEnvironment("")
	tests := []struct {
		id   string
		want bool
	}{
		{"loc_start", false},
		{"loc_town", false},
		{"loc_forest", true},
	}
	for _, tt := range tests {
		got, err := m.EncounterAllowed(tt.id, env)
		if err != nil {
			t.Fatalf("EncounterAllowed(%s): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("EncounterAllowed(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestEncounterRule(t *testing.T) {
	m := testMap(t)
	env := Environment{Time: Day, Weather: Clear}
	if ok, err := m.EncounterAllowed("loc_marsh", env); err != nil || ok {
		t.Fatalf("clear day should be quiet, got %v %v", ok, err)
	}
	env.Weather = Fog
	if ok, err := m.EncounterAllowed("loc_marsh", env); err != nil || !ok {
		t.Fatalf("fog should allow encounters, got %v %v", ok, err)
	}
}

func TestAmbushRoll(t *testing.T) {
	m := testMap(t)
	env := NewEnvironment("")
	if !m.Ambush("loc_forest", env, random.NewSequence(0.29)) {
		t.Error("0.29 < 0.3 should ambush")
	}
	if m.Ambush("loc_forest", env, random.NewSequence(0.3)) {
		t.Error("0.3 should not ambush")
	}
	if m.Ambush("loc_start", env, random.NewSequence(0)) {
		t.Error("safe location should never ambush")
	}
}

func TestAllowsTrade(t *testing.T) {
	m := testMap(t)
	for id, want := range map[string]bool{"loc_start": true, "loc_town": true, "loc_forest": false} {
		loc, _ := m.Location(id)
		if loc.AllowsTrade() != want {
			t.Errorf("%s AllowsTrade = %v, want %v", id, !want, want)
		}
	}
}
