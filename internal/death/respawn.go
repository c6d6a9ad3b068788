// Package death applies the defeat penalty and returns the character to the start.
package death

import (
	"fmt"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

// RespawnSurvival is the level every need is reset to on respawn
const RespawnSurvival = 50

// Info records what a death cost
type Info struct {
	Cause        string `json:"cause"`
	Turn         int    `json:"turn"`
	GoldLost     int    `json:"goldLost"`
	FromLocation string `json:"fromLocation"`
}

// Message is the log line describing the respawn
func (i Info) Message() string {
	return fmt.Sprintf("You died (%s) and awaken at the bonfire. %d gold was lost.", i.Cause, i.GoldLost)
}

// IsDead reports whether the character has no HP left
func IsDead(c *character.Character) bool {
	return c.HP <= 0
}

// Respawn restores HP, halves gold, resets survival to the midpoint and moves
// the character to the start location
func Respawn(c *character.Character) Info {
	kept := c.Gold / 2
	info := Info{
		GoldLost:     c.Gold - kept,
		FromLocation: c.LocationID,
	}
	c.HP = c.MaxHP
	c.Gold = kept
	c.Survival = character.Survival{
		Hunger:  RespawnSurvival,
		Thirst:  RespawnSurvival,
		Fatigue: RespawnSurvival,
		Warmth:  RespawnSurvival,
	}
	c.LocationID = character.StartLocationID
	return info
}

// CheckDeath respawns the character when it died outside combat
func CheckDeath(c *character.Character, cause string, turn int) (*Info, bool) {
	if !IsDead(c) {
		return nil, false
	}
	info := Respawn(c)
	info.Cause = cause
	info.Turn = turn
	return &info, true
}
