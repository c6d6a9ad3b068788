package world

import (
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
)

// TimeOfDay is a phase of the day cycle
type TimeOfDay string

const (
	Dawn  TimeOfDay = "DAWN"
	Day   TimeOfDay = "DAY"
	Dusk  TimeOfDay = "DUSK"
	Night TimeOfDay = "NIGHT"
)

var timeCycle = []TimeOfDay{Dawn, Day, Dusk, Night}

// Next returns the following phase, wrapping NIGHT to DAWN
func (t TimeOfDay) Next() TimeOfDay {
	for i, phase := range timeCycle {
		if phase == t {
			return timeCycle[(i+1)%len(timeCycle)]
		}
	}
	return Dawn
}

// Weather is the current sky
type Weather string

const (
	Clear   Weather = "CLEAR"
	Rain    Weather = "RAIN"
	Storm   Weather = "STORM"
	Snow    Weather = "SNOW"
	Ashfall Weather = "ASHFALL"
	Fog     Weather = "FOG"
)

// Weathers lists every weather kind
var Weathers = []Weather{Clear, Rain, Storm, Snow, Ashfall, Fog}

// Mode is the narrative world mode tag
type Mode string

const (
	ModePhysical Mode = "PHYSICAL"
	ModeAstral   Mode = "ASTRAL"
	ModeBonfire  Mode = "BONFIRE"
	ModeEclipse  Mode = "ECLIPSE"
)

// IsMode reports whether s is a known world mode
func IsMode(s string) bool {
	switch Mode(s) {
	case ModePhysical, ModeAstral, ModeBonfire, ModeEclipse:
		return true
	}
	return false
}

// IsRespite reports whether the mode suspends survival decay
func (m Mode) IsRespite() bool {
	return m == ModeBonfire
}

// TurnsPerPhase is how many player turns pass before the time of day advances
const TurnsPerPhase = 5

// TravelTurns is how many turns a journey between locations consumes
const TravelTurns = 10

// Environment is the world clock and sky
type Environment struct {
	Time         TimeOfDay `json:"time"`
	Weather      Weather   `json:"weather"`
	LocationName string    `json:"locationName"`
	TurnCount    int       `json:"turnCount"`
}

// NewEnvironment returns the opening environment
func NewEnvironment(locationName string) Environment {
	return Environment{
		Time:         Dawn,
		Weather:      Fog,
		LocationName: locationName,
	}
}

// Advance counts one player turn. It reports whether the time of day changed.
func (e *Environment) Advance(rng random.Source) bool {
	e.TurnCount++
	if e.TurnCount%TurnsPerPhase != 0 {
		return false
	}
	e.nextPhase(rng)
	return true
}

// Travel counts a journey: several turns and one phase of the day
func (e *Environment) Travel(rng random.Source) {
	e.TurnCount += TravelTurns
	e.nextPhase(rng)
}

func (e *Environment) nextPhase(rng random.Source) {
	e.Time = e.Time.Next()
	if e.Time == Dawn {
		e.Weather = Weathers[rng.IntN(len(Weathers))]
	}
}

// Backfill repairs environments loaded from older saves
func (e *Environment) Backfill() {
	if e.Time == "" {
		e.Time = Dawn
	}
	if e.Weather == "" {
		e.Weather = Fog
	}
}
