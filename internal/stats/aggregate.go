// Package stats combines base attributes, trait deltas and worn equipment into
// effective attributes and the combat figures derived from them.
package stats

import (
	"math"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

// Derived holds the secondary figures computed from effective stats
type Derived struct {
	CarryWeight    int     `json:"carryWeight"`
	Evasion        int     `json:"evasion"`
	CritChance     float64 `json:"critChance"`
	MeleeDamageMod int     `json:"meleeDamageMod"`
	PartyLimit     int     `json:"partyLimit"`
}

// Sheet is the rendered character sheet
type Sheet struct {
	Base      character.Stats `json:"base"`
	Effective character.Stats `json:"effective"`
	Derived   Derived         `json:"derived"`
}

// Effective returns base + trait + equipment modifiers with every stat floored at 1
func Effective(c *character.Character) character.Stats {
	total := c.Stats
	if c.Trait != nil {
		total = total.Add(c.Trait.Stats)
	}
	for _, slot := range character.Slots {
		item := c.Equipment[slot]
		if item == nil || item.Equip == nil {
			continue
		}
		total = total.Add(item.Equip.Modifiers)
	}
	return total.Floor(1)
}

// Derive computes secondary figures from effective stats
func Derive(s character.Stats) Derived {
	return Derived{
		CarryWeight:    10 + 5*s.STR,
		Evasion:        min(50, 2*s.DEX),
		CritChance:     2*float64(s.FATE) + 0.5*float64(s.DEX),
		MeleeDamageMod: int(math.Floor(float64(s.STR) / 2)),
		PartyLimit:     int(math.Floor(1 + float64(s.CHA)/3)),
	}
}

// SheetFor builds the full sheet for a character
func SheetFor(c *character.Character) Sheet {
	eff := Effective(c)
	return Sheet{
		Base:      c.Stats,
		Effective: eff,
		Derived:   Derive(eff),
	}
}

// PartyLimit is the derived party cap for a character
func PartyLimit(c *character.Character) int {
	return Derive(Effective(c)).PartyLimit
}
