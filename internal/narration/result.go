package narration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// Outcome is either a Result or a ParseFailure
type Outcome interface {
	isOutcome()
}

// Result is a well-formed narration step
type Result struct {
	Narrative        string     `json:"narrative"`
	HPChange         int        `json:"hp_change"`
	WillChange       int        `json:"will_change"`
	XPReward         int        `json:"xp_reward"`
	Mode             world.Mode `json:"world_state"`
	NewItem          string     `json:"new_inventory,omitempty"`
	NewCompanion     string     `json:"new_companion,omitempty"`
	DiceRequest      string     `json:"dice_request,omitempty"`
	SuggestedActions []string   `json:"suggested_actions"`
}

// ParseFailure carries a response that could not be used
type ParseFailure struct {
	Raw string
	Err error
}

func (Result) isOutcome()       {}
func (ParseFailure) isOutcome() {}

func (f ParseFailure) Error() string {
	return fmt.Sprintf("unusable narration: %v", f.Err)
}

var (
	errNoObject    = errors.New("no JSON object in response")
	errNoNarrative = errors.New("narrative is empty")
)

// extractObject strips markdown fences and any prose around the outermost object
func extractObject(text string) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// Parse decodes a model response. Fields must carry the right JSON types and
// the mode tag must be known; an absent mode keeps the current one.
func Parse(text string, current world.Mode) Outcome {
	obj, ok := extractObject(text)
	if !ok {
		return ParseFailure{Raw: text, Err: errNoObject}
	}

	var res Result
	dec := json.NewDecoder(bytes.NewReader([]byte(obj)))
	if err := dec.Decode(&res); err != nil {
		return ParseFailure{Raw: text, Err: err}
	}
	if strings.TrimSpace(res.Narrative) == "" {
		return ParseFailure{Raw: text, Err: errNoNarrative}
	}
	if res.Mode == "" {
		res.Mode = current
	}
	if !world.IsMode(string(res.Mode)) {
		return ParseFailure{Raw: text, Err: fmt.Errorf("unknown world_state %q", res.Mode)}
	}
	if res.SuggestedActions == nil {
		res.SuggestedActions = make([]string, 0)
	}
	return res
}

// Fallback is the safe no-op narration used when a response is unusable
func Fallback(current world.Mode) Result {
	return Result{
		Narrative:        "The whispers of causality are indistinct...",
		Mode:             current,
		SuggestedActions: []string{"Look around", "Check status"},
	}
}

// Resolve turns any outcome into a usable result
func Resolve(o Outcome, current world.Mode) (Result, *ParseFailure) {
	switch v := o.(type) {
	case Result:
		return v, nil
	case ParseFailure:
		return Fallback(current), &v
	}
	return Fallback(current), &ParseFailure{Err: errNoObject}
}
