package items

import (
	"fmt"
	"regexp"

	"github.com/qninhdt/eclipse-rpg/server/internal/catalog"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
)

// Recipe is the cost and reward of one upgrade attempt
type Recipe struct {
	MaterialID  string          `json:"materialId"`
	MaterialQty int             `json:"materialQty"`
	Gold        int             `json:"gold"`
	SuccessRate float64         `json:"successRate"`
	Growth      character.Stats `json:"growth"`
}

// weaponTierLevel is the last upgrade level reached with iron
const weaponTierLevel = 3

// UpgradeCost returns the recipe for raising an item from its current level
func UpgradeCost(t character.ItemType, current int) (Recipe, bool) {
	next := current + 1
	switch t {
	case character.ItemWeapon:
		if next <= weaponTierLevel {
			return Recipe{
				MaterialID:  catalog.IronChunk,
				MaterialQty: 2 * next,
				Gold:        50 * next,
				SuccessRate: 1 - 0.1*float64(current),
				Growth:      character.Stats{STR: 1},
			}, true
		}
		return Recipe{
			MaterialID:  catalog.SteelIngot,
			MaterialQty: 2,
			Gold:        100 * next,
			SuccessRate: 0.5,
			Growth:      character.Stats{STR: 2, DEX: 1},
		}, true
	case character.ItemArmor:
		return Recipe{
			MaterialID:  catalog.IronChunk,
			MaterialQty: 2 * next,
			Gold:        40 * next,
			SuccessRate: 1 - 0.05*float64(current),
			Growth:      character.Stats{CON: 1},
		}, true
	case character.ItemKey:
		if next <= 3 {
			return Recipe{
				MaterialID:  catalog.BehelitDust,
				MaterialQty: 1,
				Gold:        200,
				SuccessRate: 0.7,
				Growth:      character.Stats{FATE: 1},
			}, true
		}
	}
	return Recipe{}, false
}

// ForgeResult reports an upgrade attempt
type ForgeResult struct {
	Attempted bool            `json:"attempted"`
	Success   bool            `json:"success"`
	Recipe    Recipe          `json:"recipe"`
	Item      *character.Item `json:"item,omitempty"`
}

var (
	levelSuffix   = regexp.MustCompile(`\s\+\d+$`)
	levelIDSuffix = regexp.MustCompile(`-lv\d+$`)
)

// UpgradedID is the id of an item raised to level. Upgraded units never share
// a stack with lower levels of the same base item.
func UpgradedID(id string, level int) string {
	return fmt.Sprintf("%s-lv%d", levelIDSuffix.ReplaceAllString(id, ""), level)
}

// locate finds an item in equipment first, then in the inventory
func locate(c *character.Character, itemID string) (*character.Item, bool) {
	for _, slot := range character.Slots {
		if item := c.EquippedIn(slot); item != nil && item.ID == itemID {
			return item, true
		}
	}
	if i := c.FindItem(itemID); i >= 0 {
		return &c.Inventory[i], true
	}
	return nil, false
}

// CanAfford reports whether an upgrade attempt on the item is possible
func CanAfford(c *character.Character, item *character.Item) (Recipe, bool) {
	if item.UpgradeLevel >= item.MaxUpgradeLevel {
		return Recipe{}, false
	}
	recipe, ok := UpgradeCost(item.Type, item.UpgradeLevel)
	if !ok {
		return Recipe{}, false
	}
	if c.CountItem(recipe.MaterialID) < recipe.MaterialQty || c.Gold < recipe.Gold {
		return Recipe{}, false
	}
	return recipe, true
}

// Forge attempts to upgrade one unit. The materials and gold are spent whatever
// the roll. A worn item is upgraded in its slot; an inventory unit is split off
// its stack.
func Forge(c *character.Character, itemID string, rng random.Source) ForgeResult {
	item, ok := locate(c, itemID)
	if !ok {
		return ForgeResult{}
	}
	recipe, ok := CanAfford(c, item)
	if !ok {
		return ForgeResult{}
	}

	// snapshot the item before the material removal can shift inventory indexes
	upgraded := item.Copy(1)
	c.Gold -= recipe.Gold
	c.RemoveItem(recipe.MaterialID, recipe.MaterialQty)

	res := ForgeResult{Attempted: true, Recipe: recipe}
	if rng.Float64() > recipe.SuccessRate {
		return res
	}

	upgraded.UpgradeLevel++
	upgraded.ID = UpgradedID(upgraded.ID, upgraded.UpgradeLevel)
	upgraded.Name = fmt.Sprintf("%s +%d", levelSuffix.ReplaceAllString(upgraded.Name, ""), upgraded.UpgradeLevel)
	if upgraded.Equip != nil {
		upgraded.Equip.Modifiers = upgraded.Equip.Modifiers.Add(recipe.Growth)
	}
	writeBack(c, itemID, upgraded)

	res.Success = true
	res.Item = &upgraded
	return res
}

// writeBack puts the upgraded unit where the original was
func writeBack(c *character.Character, originalID string, item character.Item) {
	for _, slot := range character.Slots {
		if worn := c.EquippedIn(slot); worn != nil && worn.ID == originalID {
			cp := item.Copy(1)
			c.Equipment[slot] = &cp
			return
		}
	}
	if c.RemoveItem(originalID, 1) {
		c.AddItem(item, 1)
	}
}
