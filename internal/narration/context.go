package narration

import (
	"encoding/json"
	"fmt"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// Context is the state snapshot handed to the narrator
type Context struct {
	Name        string     `json:"name"`
	Class       string     `json:"class"`
	Level       int        `json:"level"`
	Location    string     `json:"location"`
	HP          int        `json:"hp"`
	MaxHP       int        `json:"maxHp"`
	Will        int        `json:"will"`
	MaxWill     int        `json:"maxWill"`
	Mode        world.Mode `json:"worldState"`
	Time        string     `json:"time"`
	Weather     string     `json:"weather"`
	Party       []string   `json:"party"`
	Inventory   []string   `json:"inventory"`
	Gold        int        `json:"gold"`
	PlayerInput string     `json:"playerInput"`
}

// Snapshot captures the narration context from the character and environment
func Snapshot(c *character.Character, env world.Environment, mode world.Mode, input string) Context {
	ctx := Context{
		Name:        c.Name,
		Class:       c.Class,
		Level:       c.Level,
		Location:    env.LocationName,
		HP:          c.HP,
		MaxHP:       c.MaxHP,
		Will:        c.Will,
		MaxWill:     c.MaxWill,
		Mode:        mode,
		Time:        string(env.Time),
		Weather:     string(env.Weather),
		Party:       make([]string, 0, len(c.Party)),
		Inventory:   make([]string, 0, len(c.Inventory)),
		Gold:        c.Gold,
		PlayerInput: input,
	}
	for _, p := range c.Party {
		ctx.Party = append(ctx.Party, p.Name)
	}
	for _, it := range c.Inventory {
		ctx.Inventory = append(ctx.Inventory, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	return ctx
}

func (c Context) block() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return c.PlayerInput
	}
	return "CURRENT STATE:\n" + string(data)
}
