// Package items handles equipment, consumables, forging and shop trade.
package items

import (
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

// Equip moves one unit of an inventory item into its slot. A previously worn
// item goes back to the inventory.
func Equip(c *character.Character, itemID string) bool {
	i := c.FindItem(itemID)
	if i < 0 || c.Inventory[i].Equip == nil || !character.IsSlot(string(c.Inventory[i].Equip.Slot)) {
		return false
	}
	if c.Equipment == nil {
		c.Equipment = character.NewEquipment()
	}
	worn := c.Inventory[i].Copy(1)
	slot := worn.Equip.Slot

	c.RemoveItem(itemID, 1)
	if prev := c.Equipment[slot]; prev != nil {
		c.AddItem(*prev, max(1, prev.Quantity))
	}
	c.Equipment[slot] = &worn
	return true
}

// Unequip returns the item in a slot to the inventory
func Unequip(c *character.Character, slot character.EquipSlot) bool {
	prev := c.EquippedIn(slot)
	if prev == nil {
		return false
	}
	c.AddItem(*prev, max(1, prev.Quantity))
	c.Equipment[slot] = nil
	return true
}

// Use consumes one unit of a consumable outside combat
func Use(c *character.Character, itemID string) bool {
	i := c.FindItem(itemID)
	if i < 0 || c.Inventory[i].Type != character.ItemConsumable {
		return false
	}
	if eff := c.Inventory[i].Effect; eff != nil {
		c.Heal(eff.HPRestore)
		c.Restore(eff.WillRestore)
		c.Survival.Hunger += eff.HungerRestore
		c.Survival.Thirst += eff.ThirstRestore
		c.Survival.Warmth += eff.WarmthRestore
		c.Survival = c.Survival.Clamp()
	}
	c.RemoveItem(itemID, 1)
	return true
}

// Drop discards a whole stack
func Drop(c *character.Character, itemID string) bool {
	return c.DropItem(itemID)
}
