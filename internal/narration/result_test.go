package narration

import (
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

func TestParseWellFormed(t *testing.T) {
	text := "Here you go:\n```json\n" + `{"narrative":"The fog parts.","hp_change":-3,"will_change":2,"xp_reward":10,
"world_state":"ASTRAL","new_inventory":"Travel Ration","new_companion":"comp_puck","dice_request":"Perception",
"suggested_actions":["Follow the light","Turn back"]}` + "\n```"

	out := Parse(text, world.ModePhysical)
	res, ok := out.(Result)
	if !ok {
		t.Fatalf("expected Result, got %#v", out)
	}
	if res.HPChange != -3 || res.WillChange != 2 || res.XPReward != 10 || res.Mode != world.ModeAstral {
		t.Fatalf("got %+v", res)
	}
	if res.NewItem != "Travel Ration" || res.NewCompanion != "comp_puck" || res.DiceRequest != "Perception" {
		t.Fatalf("got %+v", res)
	}
	if len(res.SuggestedActions) != 2 {
		t.Fatalf("suggestions %v", res.SuggestedActions)
	}
}

func TestParseKeepsModeWhenAbsent(t *testing.T) {
	res, ok := Parse(`{"narrative":"Quiet."}`, world.ModeBonfire).(Result)
	if !ok {
		t.Fatal("expected Result")
	}
	if res.Mode != world.ModeBonfire || res.SuggestedActions == nil {
		t.Fatalf("got %+v", res)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose only", "I cannot continue the story."},
		{"truncated", `{"narrative": "The`},
		{"wrong type", `{"narrative":"x","hp_change":"five"}`},
		{"string suggestions", `{"narrative":"x","suggested_actions":"run"}`},
		{"unknown mode", `{"narrative":"x","world_state":"DREAM"}`},
		{"no narrative", `{"hp_change":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Parse(tt.text, world.ModePhysical)
			f, ok := out.(ParseFailure)
			if !ok {
				t.Fatalf("expected ParseFailure, got %#v", out)
			}
			if f.Raw != tt.text || f.Err == nil {
				t.Fatalf("failure %+v", f)
			}
		})
	}
}

func TestFallbackIsNoop(t *testing.T) {
	fb := Fallback(world.ModeEclipse)
	if fb.HPChange != 0 || fb.WillChange != 0 || fb.XPReward != 0 || fb.NewItem != "" || fb.NewCompanion != "" {
		t.Fatalf("fallback has effects: %+v", fb)
	}
	if fb.Mode != world.ModeEclipse || fb.Narrative == "" {
		t.Fatalf("fallback %+v", fb)
	}
}

func TestResolve(t *testing.T) {
	res, failure := Resolve(ParseFailure{Raw: "x"}, world.ModeAstral)
	if failure == nil || res.Mode != world.ModeAstral {
		t.Fatalf("res %+v failure %v", res, failure)
	}
	res, failure = Resolve(Result{Narrative: "ok", Mode: world.ModePhysical}, world.ModeAstral)
	if failure != nil || res.Narrative != "ok" {
		t.Fatalf("res %+v failure %v", res, failure)
	}
}
