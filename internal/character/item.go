package character

// ItemType classifies items
type ItemType string

const (
	ItemWeapon     ItemType = "WEAPON"
	ItemArmor      ItemType = "ARMOR"
	ItemConsumable ItemType = "CONSUMABLE"
	ItemKey        ItemType = "KEY"
	ItemMaterial   ItemType = "MATERIAL"
)

// EquipSlot is an equipment position on the body
type EquipSlot string

const (
	SlotHead      EquipSlot = "HEAD"
	SlotBody      EquipSlot = "BODY"
	SlotMainHand  EquipSlot = "MAIN_HAND"
	SlotOffHand   EquipSlot = "OFF_HAND"
	SlotAccessory EquipSlot = "ACCESSORY"
)

// Slots lists every equipment slot
var Slots = []EquipSlot{SlotHead, SlotBody, SlotMainHand, SlotOffHand, SlotAccessory}

// IsSlot reports whether s names an equipment slot
func IsSlot(s string) bool {
	for _, slot := range Slots {
		if string(slot) == s {
			return true
		}
	}
	return false
}

// Effect is what a consumable restores
type Effect struct {
	HPRestore     int `json:"hpRestore,omitempty"`
	WillRestore   int `json:"willRestore,omitempty"`
	HungerRestore int `json:"hungerRestore,omitempty"`
	ThirstRestore int `json:"thirstRestore,omitempty"`
	WarmthRestore int `json:"warmthRestore,omitempty"`
}

// EquipProps describes where an item is worn and what it modifies
type EquipProps struct {
	Slot      EquipSlot `json:"slot"`
	Modifiers Stats     `json:"modifiers"`
	Defense   int       `json:"defense,omitempty"`
}

// Item is an owned item stack or a catalog template
type Item struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            ItemType    `json:"type"`
	Description     string      `json:"description,omitempty"`
	Icon            string      `json:"icon,omitempty"`
	Quantity        int         `json:"quantity"`
	Price           int         `json:"price"`
	UpgradeLevel    int         `json:"upgradeLevel,omitempty"`
	MaxUpgradeLevel int         `json:"maxUpgradeLevel,omitempty"`
	Effect          *Effect     `json:"effect,omitempty"`
	Equip           *EquipProps `json:"equipProps,omitempty"`
}

// Copy returns a deep copy with the given quantity
func (i Item) Copy(qty int) Item {
	out := i
	out.Quantity = qty
	if i.Effect != nil {
		e := *i.Effect
		out.Effect = &e
	}
	if i.Equip != nil {
		p := *i.Equip
		out.Equip = &p
	}
	return out
}

// Equipment maps each slot to the worn item, nil when empty
type Equipment map[EquipSlot]*Item

// NewEquipment returns an equipment map with every slot empty
func NewEquipment() Equipment {
	eq := make(Equipment, len(Slots))
	for _, s := range Slots {
		eq[s] = nil
	}
	return eq
}
