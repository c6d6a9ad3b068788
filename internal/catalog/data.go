// Package catalog holds the static game definitions. Every lookup returns a copy.
package catalog

import (
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// Material ids used by forging recipes
const (
	IronChunk   = "mat_iron"
	SteelIngot  = "mat_steel"
	BehelitDust = "mat_dust"
)

var classes = []character.ClassDef{
	{
		ID:          "struggler",
		Name:        "The Struggler",
		Description: "A mercenary who survived what should have killed him. Hard to put down.",
		BaseHP:      70,
		BaseMP:      0,
		BaseWill:    40,
		BaseStats:   character.Stats{STR: 8, DEX: 4, CON: 8, INT: 3, CHA: 3, FATE: 4},
	},
	{
		ID:          "hawk",
		Name:        "White Hawk",
		Description: "A swift commander whose charm bends soldiers to his dream.",
		BaseHP:      50,
		BaseMP:      20,
		BaseWill:    40,
		BaseStats:   character.Stats{STR: 4, DEX: 8, CON: 4, INT: 5, CHA: 8, FATE: 1},
	},
	{
		ID:          "brand",
		Name:        "Branded Soul",
		Description: "Marked for sacrifice. Sees the astral world, and the astral world sees back.",
		BaseHP:      40,
		BaseMP:      50,
		BaseWill:    35,
		BaseStats:   character.Stats{STR: 2, DEX: 5, CON: 3, INT: 8, CHA: 4, FATE: 8},
	},
}

var traits = []character.Trait{
	{
		ID:          "titan_blood",
		Name:        "Titan Blood",
		Description: "Monstrous strength and endurance at the cost of finesse.",
		Stats:       character.Stats{STR: 4, CON: 4, DEX: -2, INT: -2},
	},
	{
		ID:          "mind_void",
		Name:        "Hollow Mind",
		Description: "The void grants insight and drains the body.",
		Stats:       character.Stats{INT: 5, CON: -3},
		MaxMP:       30,
		MaxHP:       -15,
	},
	{
		ID:          "misfortune",
		Name:        "Mark of Misfortune",
		Description: "Fate watches you closely. Not always kindly.",
		Stats:       character.Stats{FATE: 5},
	},
}

var skills = []character.Skill{
	{
		ID:            "iron_stomach",
		Name:          "Iron Stomach",
		Description:   "Hunger gnaws slower.",
		Cost:          1,
		RequiredLevel: 1,
		Passive:       "hunger_decay_reduced",
	},
	{
		ID:            "night_eyes",
		Name:          "Night Eyes",
		Description:   "See through the dark.",
		Cost:          1,
		RequiredLevel: 2,
		Passive:       "night_vision",
	},
	{
		ID:             "titan_grip",
		Name:           "Titan Grip",
		Description:    "Wield the unwieldy.",
		Cost:           2,
		RequiredLevel:  3,
		PrerequisiteID: "iron_stomach",
		BonusStats:     character.Stats{STR: 2},
	},
	{
		ID:            "meditation",
		Name:          "Void Meditation",
		Description:   "Steady the mind against despair.",
		Cost:          2,
		RequiredLevel: 3,
		Passive:       "max_will_boost",
	},
	{
		ID:             "blood_thirst",
		Name:           "Blood Thirst",
		Description:    "Every wound you deal feeds you.",
		Cost:           3,
		RequiredLevel:  5,
		PrerequisiteID: "titan_grip",
		Passive:        "lifesteal",
	},
}

var startingItems = []character.Item{
	{
		ID:              "wep-01",
		Name:            "Dragon Slayer (Replica)",
		Type:            character.ItemWeapon,
		Description:     "Too big to be called a sword. Massive, thick, heavy and rough.",
		Icon:            "sword",
		Quantity:        1,
		Price:           500,
		MaxUpgradeLevel: 5,
		Equip: &character.EquipProps{
			Slot:      character.SlotMainHand,
			Modifiers: character.Stats{STR: 2, DEX: -2},
		},
	},
	{
		ID:              "arm-01",
		Name:            "Rusted Chainmail",
		Type:            character.ItemArmor,
		Description:     "What remains of a broken hauberk. Smells of old blood and rain.",
		Icon:            "shield",
		Quantity:        1,
		Price:           80,
		MaxUpgradeLevel: 5,
		Equip: &character.EquipProps{
			Slot:      character.SlotBody,
			Modifiers: character.Stats{CON: 1, DEX: -1},
		},
	},
	{
		ID:          "con-01",
		Name:        "Worn Bandage",
		Type:        character.ItemConsumable,
		Description: "Bloodstained cloth. Barely stops the bleeding.",
		Icon:        "bandage",
		Quantity:    3,
		Price:       10,
		Effect:      &character.Effect{HPRestore: 15},
	},
	{
		ID:          "con-02",
		Name:        "Dried Meat",
		Type:        character.ItemConsumable,
		Description: "Tough jerky. Salty, hard to chew, and filling.",
		Icon:        "beef",
		Quantity:    2,
		Price:       15,
		Effect:      &character.Effect{HPRestore: 5, HungerRestore: 30},
	},
	{
		ID:          "con-03",
		Name:        "Waterskin",
		Type:        character.ItemConsumable,
		Description: "A leather pouch of stale water.",
		Icon:        "droplets",
		Quantity:    1,
		Price:       20,
		Effect:      &character.Effect{ThirstRestore: 50},
	},
	{
		ID:              "acc-01",
		Name:            "Behelit Shard",
		Type:            character.ItemKey,
		Description:     "A strange red stone fragment. It throbs when danger is near.",
		Icon:            "gem",
		Quantity:        1,
		Price:           500,
		MaxUpgradeLevel: 3,
		Equip: &character.EquipProps{
			Slot:      character.SlotAccessory,
			Modifiers: character.Stats{FATE: 3},
		},
	},
	{
		ID:          IronChunk,
		Name:        "Rusted Iron Chunk",
		Type:        character.ItemMaterial,
		Description: "Jagged scraps of iron, good for crude repairs.",
		Icon:        "anvil",
		Quantity:    5,
		Price:       5,
	},
}

var materials = []character.Item{
	{
		ID:          IronChunk,
		Name:        "Rusted Iron Chunk",
		Type:        character.ItemMaterial,
		Description: "Jagged scraps of iron, good for crude repairs.",
		Icon:        "anvil",
		Quantity:    1,
		Price:       5,
	},
	{
		ID:          BehelitDust,
		Name:        "Behelit Dust",
		Type:        character.ItemMaterial,
		Description: "Dust ground from a cursed object.",
		Icon:        "gem",
		Quantity:    1,
		Price:       100,
	},
	{
		ID:          SteelIngot,
		Name:        "Black Steel Ingot",
		Type:        character.ItemMaterial,
		Description: "High quality dark steel.",
		Icon:        "anvil",
		Quantity:    1,
		Price:       75,
	},
}

var shopStock = []character.Item{
	{
		ID:          "con-04",
		Name:        "Healing Draught",
		Type:        character.ItemConsumable,
		Description: "Thick red liquid that knits torn flesh back together.",
		Icon:        "droplets",
		Quantity:    1,
		Price:       50,
		Effect:      &character.Effect{HPRestore: 40},
	},
	{
		ID:          "con-05",
		Name:        "Travel Ration",
		Type:        character.ItemConsumable,
		Description: "A bundle of dried food and hard biscuits.",
		Icon:        "beef",
		Quantity:    1,
		Price:       25,
		Effect:      &character.Effect{HungerRestore: 50},
	},
	{
		ID:          IronChunk,
		Name:        "Rusted Iron Chunk",
		Type:        character.ItemMaterial,
		Description: "Scrap metal useful for basic repairs.",
		Icon:        "anvil",
		Quantity:    1,
		Price:       30,
	},
	{
		ID:              "arm-02",
		Name:            "Hardened Leather Armor",
		Type:            character.ItemArmor,
		Description:     "Boiled leather protection. Light and sturdy.",
		Icon:            "shield",
		Quantity:        1,
		Price:           150,
		MaxUpgradeLevel: 5,
		Equip: &character.EquipProps{
			Slot:      character.SlotBody,
			Modifiers: character.Stats{DEX: 2, CON: 1},
		},
	},
}

var enemies = []character.Enemy{
	{
		ID:          "enemy_hollow",
		Name:        "Hollow Soldier",
		Description: "A soldier who forgot how to die.",
		Level:       1,
		HP:          30,
		MaxHP:       30,
		Stats:       character.Stats{STR: 4, DEX: 2, CON: 4, INT: 1, CHA: 1, FATE: 1},
		Attacks: []character.Attack{
			{Name: "Rusted Slash", Damage: 6, Text: "swings its broken sword!"},
			{Name: "Tackle", Damage: 3, Text: "slams its body into you!"},
		},
		XPReward:  30,
		LootTable: []string{IronChunk, "con-01"},
		Icon:      "skull",
	},
	{
		ID:          "enemy_spirit",
		Name:        "Wailing Spirit",
		Description: "A cold shape that weeps without a face.",
		Level:       2,
		HP:          20,
		MaxHP:       20,
		Stats:       character.Stats{STR: 1, DEX: 6, CON: 2, INT: 6, CHA: 1, FATE: 3},
		Attacks: []character.Attack{
			{Name: "Cold Touch", Damage: 8, Text: "passes through your flesh!"},
			{Name: "Shriek", Damage: 4, Text: "lets out a deafening scream!"},
		},
		XPReward:  45,
		LootTable: []string{BehelitDust},
		Icon:      "ghost",
	},
	{
		ID:          "enemy_wolf",
		Name:        "Demon Wolf",
		Description: "Too many teeth, too many eyes.",
		Level:       3,
		HP:          50,
		MaxHP:       50,
		Stats:       character.Stats{STR: 6, DEX: 5, CON: 4, INT: 2, CHA: 1, FATE: 2},
		Attacks: []character.Attack{
			{Name: "Bite", Damage: 10, Text: "sinks its fangs in!"},
			{Name: "Claw", Damage: 7, Text: "rakes you with sharp claws!"},
		},
		XPReward:  60,
		LootTable: []string{"con-02"},
		Icon:      "dog",
	},
}

var companions = []character.Companion{
	{
		ID:          "comp_puck",
		Name:        "Puck",
		Class:       "Elf",
		Description: "A small noisy spirit. Handy with minor wounds.",
		HP:          20,
		MaxHP:       20,
		Loyalty:     90,
		Status:      character.CompanionActive,
	},
	{
		ID:          "comp_casca",
		Name:        "Casca",
		Class:       "Warrior",
		Description: "A former commander. Skilled with the sword, haunted by the past.",
		HP:          45,
		MaxHP:       45,
		Loyalty:     70,
		Status:      character.CompanionActive,
	},
	{
		ID:          "comp_schierke",
		Name:        "Isidro",
		Class:       "Thief",
		Description: "A boy who wants to learn the sword. Quick but fragile.",
		HP:          30,
		MaxHP:       30,
		Loyalty:     50,
		Status:      character.CompanionActive,
	},
}

var locations = []world.Location{
	{
		ID:          character.StartLocationID,
		Name:        "First Bonfire",
		Description: "A safe place amid the creeping dark. The fire here never truly dies.",
		Type:        world.Safe,
		X:           50,
		Y:           85,
	},
	{
		ID:          "loc_forest",
		Name:        "Weeping Forest",
		Description: "Ancient trees whose bark seems to weep sap. The fog is thick here.",
		Type:        world.Danger,
		X:           20,
		Y:           60,
	},
	{
		ID:          "loc_road",
		Name:        "Old King's Road",
		Description: "A broken stone road to the fallen capital. Bandits lurk.",
		Type:        world.Danger,
		X:           80,
		Y:           60,
	},
	{
		ID:          "loc_ruins",
		Name:        "Ruins of Aethelgard",
		Description: "The skeleton of an old fortress. Ghosts whisper between the winds.",
		Type:        world.Dungeon,
		X:           50,
		Y:           40,
	},
	{
		ID:          "loc_town",
		Name:        "Oakhaven",
		Description: "A small settlement holding out against the night. Merchants may be here.",
		Type:        world.Town,
		X:           90,
		Y:           30,
	},
	{
		ID:          "loc_citadel",
		Name:        "Citadel of Darkness",
		Description: "The source of the Eclipse. A massive structure piercing the sky.",
		Type:        world.Dungeon,
		X:           50,
		Y:           10,
	},
}

var roads = [][2]string{
	{character.StartLocationID, "loc_forest"},
	{character.StartLocationID, "loc_road"},
	{"loc_forest", "loc_ruins"},
	{"loc_road", "loc_ruins"},
	{"loc_road", "loc_town"},
	{"loc_ruins", "loc_citadel"},
}
