package character

// FindItem returns the index of the stack with the given id, or -1
func (c *Character) FindItem(id string) int {
	for i := range c.Inventory {
		if c.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// CountItem returns how many of an item the inventory holds
func (c *Character) CountItem(id string) int {
	if i := c.FindItem(id); i >= 0 {
		return c.Inventory[i].Quantity
	}
	return 0
}

// AddItem merges qty units into an identical stack or appends a copy of the
// template. Stacks are identical when id and upgrade level match.
func (c *Character) AddItem(item Item, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Inventory {
		if c.Inventory[i].ID == item.ID && c.Inventory[i].UpgradeLevel == item.UpgradeLevel {
			c.Inventory[i].Quantity += qty
			return
		}
	}
	c.Inventory = append(c.Inventory, item.Copy(qty))
}

// RemoveItem takes qty units off a stack, dropping the stack when it reaches zero
func (c *Character) RemoveItem(id string, qty int) bool {
	i := c.FindItem(id)
	if i < 0 || qty <= 0 {
		return false
	}
	c.Inventory[i].Quantity -= qty
	if c.Inventory[i].Quantity <= 0 {
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
	}
	return true
}

// DropItem removes a whole stack
func (c *Character) DropItem(id string) bool {
	i := c.FindItem(id)
	if i < 0 {
		return false
	}
	c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
	return true
}

// EquippedIn returns the item in a slot, nil when empty
func (c *Character) EquippedIn(slot EquipSlot) *Item {
	if c.Equipment == nil {
		return nil
	}
	return c.Equipment[slot]
}

func (c *Character) pruneInventory() {
	kept := c.Inventory[:0]
	for _, item := range c.Inventory {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Inventory = kept
}
