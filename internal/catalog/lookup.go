package catalog

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// Classes returns every class template
func Classes() []character.ClassDef {
	return append([]character.ClassDef(nil), classes...)
}

// Class looks up a class by id
func Class(id string) (character.ClassDef, bool) {
	for _, c := range classes {
		if c.ID == id {
			return c, true
		}
	}
	return character.ClassDef{}, false
}

// Traits returns every trait
func Traits() []character.Trait {
	return append([]character.Trait(nil), traits...)
}

// Trait looks up a trait by id
func Trait(id string) (character.Trait, bool) {
	for _, t := range traits {
		if t.ID == id {
			return t, true
		}
	}
	return character.Trait{}, false
}

// Skills returns the skill tree
func Skills() []character.Skill {
	return append([]character.Skill(nil), skills...)
}

// Skill looks up a skill by id
func Skill(id string) (character.Skill, bool) {
	for _, s := range skills {
		if s.ID == id {
			return s, true
		}
	}
	return character.Skill{}, false
}

func copyItems(items []character.Item) []character.Item {
	out := make([]character.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Copy(it.Quantity))
	}
	return out
}

// StartingInventory is the inventory a new character receives
func StartingInventory() []character.Item {
	return copyItems(startingItems)
}

// ShopStock lists what the merchant sells
func ShopStock() []character.Item {
	return copyItems(shopStock)
}

// ShopItem looks up a merchant listing by id
func ShopItem(id string) (character.Item, bool) {
	for _, it := range shopStock {
		if it.ID == id {
			return it.Copy(it.Quantity), true
		}
	}
	return character.Item{}, false
}

// Materials lists the forging materials
func Materials() []character.Item {
	return copyItems(materials)
}

// Item resolves any known item template. Materials win over starting items and shop stock.
func Item(id string) (character.Item, bool) {
	for _, group := range [][]character.Item{materials, startingItems, shopStock} {
		for _, it := range group {
			if it.ID == id {
				return it.Copy(1), true
			}
		}
	}
	return character.Item{}, false
}

// Enemies returns every enemy template
func Enemies() []character.Enemy {
	out := make([]character.Enemy, 0, len(enemies))
	for _, e := range enemies {
		out = append(out, e.Copy())
	}
	return out
}

// Enemy looks up an enemy template by id
func Enemy(id string) (character.Enemy, bool) {
	for _, e := range enemies {
		if e.ID == id {
			return e.Copy(), true
		}
	}
	return character.Enemy{}, false
}

// Companions returns every recruitable companion
func Companions() []character.Companion {
	return append([]character.Companion(nil), companions...)
}

// Companion looks up a companion by id
func Companion(id string) (character.Companion, bool) {
	for _, c := range companions {
		if c.ID == id {
			return c, true
		}
	}
	return character.Companion{}, false
}

// WorldMap builds the location graph
func WorldMap() (*world.Map, error) {
	m := world.NewMap()
	for _, loc := range locations {
		if err := m.AddLocation(loc); err != nil {
			return nil, fmt.Errorf("failed to add location: %w", err)
		}
	}
	for _, r := range roads {
		if err := m.Connect(r[0], r[1]); err != nil {
			return nil, fmt.Errorf("failed to connect %s-%s: %w", r[0], r[1], err)
		}
	}
	return m, nil
}

// MatchItem resolves a narrated item reference to a catalog template
func MatchItem(ref string) (character.Item, bool) {
	all := make([]character.Item, 0, len(materials)+len(startingItems)+len(shopStock))
	all = append(all, materials...)
	all = append(all, startingItems...)
	all = append(all, shopStock...)

	i := match(ref, len(all), func(i int) (string, string) { return all[i].ID, all[i].Name })
	if i < 0 {
		return character.Item{}, false
	}
	return all[i].Copy(1), true
}

// MatchCompanion resolves a narrated companion reference
func MatchCompanion(ref string) (character.Companion, bool) {
	i := match(ref, len(companions), func(i int) (string, string) { return companions[i].ID, companions[i].Name })
	if i < 0 {
		return character.Companion{}, false
	}
	return companions[i], true
}

// match returns the index of the best candidate: exact id, then
// case-insensitive name, then the closest name within the edit limit
func match(ref string, n int, key func(i int) (id, name string)) int {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1
	}
	lower := strings.ToLower(ref)

	for i := 0; i < n; i++ {
		if id, _ := key(i); id == ref {
			return i
		}
	}
	for i := 0; i < n; i++ {
		if _, name := key(i); strings.ToLower(name) == lower {
			return i
		}
	}
	if len(lower) < 3 {
		return -1
	}

	best, bestDist := -1, 0
	for i := 0; i < n; i++ {
		_, name := key(i)
		name = strings.ToLower(name)
		dist := levenshtein.ComputeDistance(lower, name)
		if dist > editLimit(len(name)) {
			continue
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func editLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
