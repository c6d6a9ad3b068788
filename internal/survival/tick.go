// Package survival decays the four needs each turn and turns deficits into
// health damage.
package survival

import (
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

const (
	HungerDecay  = 2
	ThirstDecay  = 3
	FatigueDecay = 1

	// NeedPenalty is the HP lost for an empty hunger or thirst bar
	NeedPenalty = 2
	// ColdPenalty is the HP lost when warmth runs out
	ColdPenalty = 5

	// messageThreshold gates the hunger and thirst status lines
	messageThreshold = 0.7

	// IronStomachSkill reduces hunger decay by one
	IronStomachSkill = "iron_stomach"
)

const (
	MsgStarving = "You are starving..."
	MsgParched  = "Your throat burns with thirst..."
	MsgFreezing = "The cold seeps into your bones..."
)

// Input is one survival tick's inputs
type Input struct {
	Survival    character.Survival
	Environment world.Environment
	Mode        world.Mode
	IronStomach bool
}

// Result is the outcome of a tick. HPDelta is never positive.
type Result struct {
	Survival character.Survival
	Messages []string
	HPDelta  int
}

// Tick advances the needs by one turn
func Tick(in Input, rng random.Source) Result {
	if in.Mode.IsRespite() {
		return Result{Survival: in.Survival}
	}

	s := in.Survival
	hunger := HungerDecay
	if in.IronStomach {
		hunger = max(1, HungerDecay-1)
	}
	s.Hunger = max(0, s.Hunger-hunger)
	s.Thirst = max(0, s.Thirst-ThirstDecay)
	s.Fatigue = max(0, s.Fatigue-FatigueDecay)

	env := in.Environment
	if env.Weather == world.Clear && env.Time == world.Day {
		s.Warmth = min(character.SurvivalMax, s.Warmth+2)
	} else {
		chill := 0
		if env.Time == world.Night {
			chill++
		}
		if env.Weather == world.Snow || env.Weather == world.Storm {
			chill += 3
		}
		if env.Weather == world.Rain || env.Weather == world.Ashfall {
			chill++
		}
		s.Warmth = max(0, s.Warmth-chill)
	}

	res := Result{Survival: s}
	if s.Hunger <= 0 {
		res.HPDelta -= NeedPenalty
		if rng.Float64() > messageThreshold {
			res.Messages = append(res.Messages, MsgStarving)
		}
	}
	if s.Thirst <= 0 {
		res.HPDelta -= NeedPenalty
		if rng.Float64() > messageThreshold {
			res.Messages = append(res.Messages, MsgParched)
		}
	}
	if s.Warmth <= 0 {
		res.HPDelta -= ColdPenalty
		res.Messages = append(res.Messages, MsgFreezing)
	}
	return res
}

// HasIronStomach reports whether the character's hunger decay is reduced
func HasIronStomach(c *character.Character) bool {
	return c.HasSkill(IronStomachSkill)
}

// Apply runs a tick against the character and commits the result
func Apply(c *character.Character, env world.Environment, mode world.Mode, rng random.Source) []string {
	res := Tick(Input{
		Survival:    c.Survival,
		Environment: env,
		Mode:        mode,
		IronStomach: HasIronStomach(c),
	}, rng)
	c.Survival = res.Survival
	c.Heal(res.HPDelta)
	return res.Messages
}

// Travel costs of a journey
const (
	TravelHunger  = 10
	TravelThirst  = 15
	TravelFatigue = 10
)

// TravelCost returns the needs after a journey
func TravelCost(s character.Survival) character.Survival {
	s.Hunger = max(0, s.Hunger-TravelHunger)
	s.Thirst = max(0, s.Thirst-TravelThirst)
	s.Fatigue = max(0, s.Fatigue-TravelFatigue)
	return s
}
