package world

import (
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/random"
)

func TestTimeCycle(t *testing.T) {
	want := []TimeOfDay{Day, Dusk, Night, Dawn}
	cur := Dawn
	for _, w := range want {
		cur = cur.Next()
		if cur != w {
			t.Fatalf("Next = %s, want %s", cur, w)
		}
	}
}

func TestAdvanceEveryFifthTurn(t *testing.T) {
	env := NewEnvironment("Bonfire")
	rng := random.NewSequence(0)
	for i := 1; i <= 4; i++ {
		if env.Advance(rng) {
			t.Fatalf("turn %d should not change time", i)
		}
	}
	if !env.Advance(rng) {
		t.Fatal("turn 5 should change time")
	}
	if env.Time != Day || env.TurnCount != 5 {
		t.Fatalf("got %s turn %d", env.Time, env.TurnCount)
	}
	if env.Weather != Fog {
		t.Fatalf("weather should only change at dawn, got %s", env.Weather)
	}
}

func TestWeatherRerolledAtDawn(t *testing.T) {
	env := Environment{Time: Night, Weather: Fog}
	// 0.5 * 6 = index 3
	env.Travel(random.NewSequence(0.5))
	if env.Time != Dawn {
		t.Fatalf("expected DAWN, got %s", env.Time)
	}
	if env.Weather != Snow {
		t.Fatalf("expected SNOW, got %s", env.Weather)
	}
	if env.TurnCount != TravelTurns {
		t.Fatalf("expected %d turns, got %d", TravelTurns, env.TurnCount)
	}
}

func TestModes(t *testing.T) {
	if !IsMode("BONFIRE") || IsMode("bonfire") || IsMode("") {
		t.Fatal("IsMode mismatch")
	}
	if !ModeBonfire.IsRespite() || ModePhysical.IsRespite() {
		t.Fatal("only BONFIRE is respite")
	}
}

func TestEnvironmentBackfill(t *testing.T) {
	var env Environment
	env.Backfill()
	if env.Time != Dawn || env.Weather != Fog {
		t.Fatalf("got %+v", env)
	}
}
