package items

import (
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

// SellPrice is what the merchant pays for one unit
func SellPrice(item character.Item) int {
	return item.Price / 2
}

// Buy purchases one unit of a listing
func Buy(c *character.Character, listing character.Item) bool {
	if listing.Price < 0 || c.Gold < listing.Price {
		return false
	}
	c.Gold -= listing.Price
	c.AddItem(listing, 1)
	return true
}

// Sell sells one unit from the inventory and returns the gold received
func Sell(c *character.Character, itemID string) (int, bool) {
	i := c.FindItem(itemID)
	if i < 0 {
		return 0, false
	}
	gold := SellPrice(c.Inventory[i])
	c.Gold += gold
	c.RemoveItem(itemID, 1)
	return gold, true
}
