package character

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CreationPoints is the number of attribute points spent at creation
	CreationPoints = 10
	// StartLocationID is where new and respawned characters stand
	StartLocationID = "loc_start"
	// StartingGold is the purse of a new character
	StartingGold = 100
	// SurvivalMax caps every survival axis
	SurvivalMax = 100
)

// ErrInvalidCreation is returned when creation input is rejected
var ErrInvalidCreation = errors.New("invalid character creation")

// Survival holds the four needs, each 0-100
type Survival struct {
	Hunger  int `json:"hunger"`
	Thirst  int `json:"thirst"`
	Fatigue int `json:"fatigue"`
	Warmth  int `json:"warmth"`
}

// Clamp keeps every axis in [0, 100]
func (s Survival) Clamp() Survival {
	return Survival{
		Hunger:  clamp(s.Hunger, 0, SurvivalMax),
		Thirst:  clamp(s.Thirst, 0, SurvivalMax),
		Fatigue: clamp(s.Fatigue, 0, SurvivalMax),
		Warmth:  clamp(s.Warmth, 0, SurvivalMax),
	}
}

// Progression tracks experience and unspent points
type Progression struct {
	CurrentXP   int `json:"currentXp"`
	MaxXP       int `json:"maxXp"`
	StatPoints  int `json:"statPoints"`
	SkillPoints int `json:"skillPoints"`
}

// Trait is a permanent creation-time modifier
type Trait struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stats       Stats  `json:"stats"`
	MaxHP       int    `json:"maxHp,omitempty"`
	MaxMP       int    `json:"maxMp,omitempty"`
	MaxWill     int    `json:"maxWill,omitempty"`
}

// Skill is an entry of the skill tree
type Skill struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Cost           int    `json:"cost"`
	RequiredLevel  int    `json:"requiredLevel"`
	PrerequisiteID string `json:"prerequisiteId,omitempty"`
	Requires       string `json:"requires,omitempty"` // expr condition over level, skills, stats, gold
	BonusStats     Stats  `json:"bonusStats"`
	Passive        string `json:"passive,omitempty"`
}

// CompanionStatus is the condition of a party member
type CompanionStatus string

const (
	CompanionActive  CompanionStatus = "ACTIVE"
	CompanionWounded CompanionStatus = "WOUNDED"
	CompanionDead    CompanionStatus = "DEAD"
)

// Companion is a party member
type Companion struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Class       string          `json:"class"`
	Description string          `json:"description"`
	HP          int             `json:"hp"`
	MaxHP       int             `json:"maxHp"`
	Loyalty     int             `json:"loyalty"`
	Status      CompanionStatus `json:"status"`
}

// Attack is a named enemy attack
type Attack struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
	Text   string `json:"text"`
}

// Enemy is a combat opponent, copied fresh from a template per encounter
type Enemy struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Level       int      `json:"level"`
	HP          int      `json:"hp"`
	MaxHP       int      `json:"maxHp"`
	Stats       Stats    `json:"stats"`
	Attacks     []Attack `json:"attacks"`
	XPReward    int      `json:"xpReward"`
	LootTable   []string `json:"lootTable"`
	Icon        string   `json:"icon"`
}

// Copy returns an independent enemy instance
func (e Enemy) Copy() Enemy {
	out := e
	out.Attacks = append([]Attack(nil), e.Attacks...)
	out.LootTable = append([]string(nil), e.LootTable...)
	return out
}

// ClassDef is a character-creation template
type ClassDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BaseHP      int    `json:"baseHp"`
	BaseMP      int    `json:"baseMp"`
	BaseWill    int    `json:"baseWill"`
	BaseStats   Stats  `json:"baseStats"`
}

// Character is the player's full sheet
type Character struct {
	Name           string      `json:"name"`
	Class          string      `json:"class"`
	Level          int         `json:"level"`
	HP             int         `json:"hp"`
	MaxHP          int         `json:"maxHp"`
	MP             int         `json:"mp"`
	MaxMP          int         `json:"maxMp"`
	Will           int         `json:"will"`
	MaxWill        int         `json:"maxWill"`
	Stats          Stats       `json:"stats"`
	Equipment      Equipment   `json:"equipment"`
	Trait          *Trait      `json:"trait"`
	Survival       Survival    `json:"survival"`
	Progression    Progression `json:"progression"`
	UnlockedSkills []string    `json:"unlockedSkills"`
	LocationID     string      `json:"currentLocationId"`
	Party          []Companion `json:"party"`
	Inventory      []Item      `json:"inventory"`
	Gold           int         `json:"gold"`
}

// XPForLevel is the experience needed to clear the given level
func XPForLevel(level int) int {
	return level * 150
}

// New builds a level 1 character from a class, the allocated creation points and an optional trait
func New(name string, class ClassDef, allocated Stats, trait *Trait) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCreation)
	}
	for _, k := range StatKeys {
		if allocated.Get(k) < 0 {
			return nil, fmt.Errorf("%w: negative allocation for %s", ErrInvalidCreation, k)
		}
	}
	if allocated.Sum() != CreationPoints {
		return nil, fmt.Errorf("%w: %d of %d points allocated", ErrInvalidCreation, allocated.Sum(), CreationPoints)
	}

	maxHP, maxMP, maxWill := class.BaseHP, class.BaseMP, class.BaseWill
	var t *Trait
	if trait != nil {
		copied := *trait
		t = &copied
		maxHP += trait.MaxHP
		maxMP += trait.MaxMP
		maxWill += trait.MaxWill
	}
	maxHP = max(maxHP, 1)
	maxMP = max(maxMP, 0)
	maxWill = max(maxWill, 1)

	return &Character{
		Name:      name,
		Class:     class.Name,
		Level:     1,
		HP:        maxHP,
		MaxHP:     maxHP,
		MP:        maxMP,
		MaxMP:     maxMP,
		Will:      maxWill,
		MaxWill:   maxWill,
		Stats:     class.BaseStats.Add(allocated),
		Equipment: NewEquipment(),
		Trait:     t,
		Survival: Survival{
			Hunger:  SurvivalMax,
			Thirst:  SurvivalMax,
			Fatigue: SurvivalMax,
			Warmth:  SurvivalMax,
		},
		Progression: Progression{
			MaxXP: XPForLevel(1),
		},
		UnlockedSkills: make([]string, 0),
		LocationID:     StartLocationID,
		Party:          make([]Companion, 0),
		Inventory:      make([]Item, 0),
		Gold:           StartingGold,
	}, nil
}

// HasSkill checks if a skill is unlocked
func (c *Character) HasSkill(id string) bool {
	for _, s := range c.UnlockedSkills {
		if s == id {
			return true
		}
	}
	return false
}

// HasCompanion checks if a companion is in the party
func (c *Character) HasCompanion(id string) bool {
	for _, p := range c.Party {
		if p.ID == id {
			return true
		}
	}
	return false
}

// RemoveCompanion removes a companion from the party
func (c *Character) RemoveCompanion(id string) bool {
	for i, p := range c.Party {
		if p.ID == id {
			c.Party = append(c.Party[:i], c.Party[i+1:]...)
			return true
		}
	}
	return false
}

// Heal changes HP by delta, clamped to [0, maxHp]
func (c *Character) Heal(delta int) {
	c.HP = clamp(c.HP+delta, 0, c.MaxHP)
}

// Restore changes Will by delta, clamped to [0, maxWill]
func (c *Character) Restore(delta int) {
	c.Will = clamp(c.Will+delta, 0, c.MaxWill)
}

// ClampResources keeps current resources within their maxima
func (c *Character) ClampResources() {
	c.HP = clamp(c.HP, 0, c.MaxHP)
	c.MP = clamp(c.MP, 0, c.MaxMP)
	c.Will = clamp(c.Will, 0, c.MaxWill)
	c.Survival = c.Survival.Clamp()
	if c.Gold < 0 {
		c.Gold = 0
	}
}

// Backfill fills fields missing from older saves with defaults
func (c *Character) Backfill() {
	if c.Equipment == nil {
		c.Equipment = NewEquipment()
	}
	for _, s := range Slots {
		if _, ok := c.Equipment[s]; !ok {
			c.Equipment[s] = nil
		}
	}
	if c.UnlockedSkills == nil {
		c.UnlockedSkills = make([]string, 0)
	}
	if c.Party == nil {
		c.Party = make([]Companion, 0)
	}
	if c.Inventory == nil {
		c.Inventory = make([]Item, 0)
	}
	if c.Level < 1 {
		c.Level = 1
	}
	if c.Progression.MaxXP <= 0 {
		c.Progression.MaxXP = XPForLevel(c.Level)
	}
	if c.LocationID == "" {
		c.LocationID = StartLocationID
	}
	c.pruneInventory()
	c.ClampResources()
}

// Clone returns a deep copy
func (c *Character) Clone() *Character {
	out := *c
	out.Stats = c.Stats
	out.Equipment = make(Equipment, len(c.Equipment))
	for slot, item := range c.Equipment {
		if item == nil {
			out.Equipment[slot] = nil
			continue
		}
		cp := item.Copy(item.Quantity)
		out.Equipment[slot] = &cp
	}
	if c.Trait != nil {
		t := *c.Trait
		out.Trait = &t
	}
	out.UnlockedSkills = append(make([]string, 0, len(c.UnlockedSkills)), c.UnlockedSkills...)
	out.Party = append(make([]Companion, 0, len(c.Party)), c.Party...)
	out.Inventory = make([]Item, 0, len(c.Inventory))
	for _, item := range c.Inventory {
		out.Inventory = append(out.Inventory, item.Copy(item.Quantity))
	}
	return &out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
