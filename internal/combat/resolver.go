// Package combat resolves turn-based fights between the character and a single enemy.
package combat

import (
	"fmt"
	"math"

	"github.com/qninhdt/eclipse-rpg/server/internal/catalog"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/death"
	"github.com/qninhdt/eclipse-rpg/server/internal/progression"
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
	"github.com/qninhdt/eclipse-rpg/server/internal/stats"
)

// Phase is the state of an encounter
type Phase string

const (
	PhasePlayerTurn Phase = "PLAYER_TURN"
	PhaseEnemyTurn  Phase = "ENEMY_TURN"
	PhaseVictory    Phase = "VICTORY"
	PhaseDefeat     Phase = "DEFEAT"
)

// Terminal reports whether the fight is decided
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

const (
	minChance = 30
	maxChance = 95
)

// Encounter is one fight. The enemy is held by value and owned by the encounter.
type Encounter struct {
	Enemy character.Enemy `json:"enemy"`
	Log   []string        `json:"log"`
	Phase Phase           `json:"phase"`
}

// Start opens an encounter against a fresh copy of the template
func Start(template character.Enemy) *Encounter {
	enemy := template.Copy()
	if enemy.MaxHP <= 0 {
		enemy.MaxHP = enemy.HP
	}
	return &Encounter{
		Enemy: enemy,
		Log:   []string{fmt.Sprintf("%s appears!", enemy.Name)},
		Phase: PhasePlayerTurn,
	}
}

func clampChance(v int) int {
	return min(maxChance, max(minChance, v))
}

// HitChance is the player's chance to land an attack, in percent
func HitChance(playerDEX, enemyDEX int) int {
	return clampChance(70 + 2*(playerDEX-enemyDEX))
}

// FleeChance is the player's chance to escape, in percent
func FleeChance(playerDEX, enemyDEX int) int {
	return clampChance(50 + 5*(playerDEX-enemyDEX))
}

// AttackDamage is the damage of a landed player hit given the [0,4) variance roll
func AttackDamage(c *character.Character, variance float64) int {
	bonus := 0
	if w := c.EquippedIn(character.SlotMainHand); w != nil {
		bonus = 2 * w.UpgradeLevel
	}
	return max(0, int(math.Floor(float64(stats.Effective(c).STR+bonus)+variance)))
}

// Defense is the player's mitigation figure
func Defense(c *character.Character) int {
	def := stats.Effective(c).CON / 2
	if armor := c.EquippedIn(character.SlotBody); armor != nil && armor.Equip != nil {
		def += armor.Equip.Modifiers.CON
	}
	return def
}

// EnemyDamage is the damage an attack deals after defense. Never below 1.
func EnemyDamage(attack, defense int) int {
	return max(1, attack-defense/2)
}

func (e *Encounter) logf(format string, args ...any) {
	e.Log = append(e.Log, fmt.Sprintf(format, args...))
}

// Attack resolves the player's strike
func (e *Encounter) Attack(c *character.Character, rng random.Source) bool {
	if e == nil || e.Phase != PhasePlayerTurn {
		return false
	}
	chance := HitChance(stats.Effective(c).DEX, e.Enemy.Stats.DEX)
	roll := rng.Float64() * 100
	if roll > float64(chance) {
		e.logf("You miss the %s.", e.Enemy.Name)
		e.Phase = PhaseEnemyTurn
		return true
	}

	dmg := AttackDamage(c, rng.Float64()*4)
	e.Enemy.HP = max(0, e.Enemy.HP-dmg)
	e.logf("You hit the %s for %d damage.", e.Enemy.Name, dmg)
	if e.Enemy.HP <= 0 {
		e.logf("The %s falls.", e.Enemy.Name)
		e.Phase = PhaseVictory
		return true
	}
	e.Phase = PhaseEnemyTurn
	return true
}

// EnemyTurn resolves the enemy's reply
func (e *Encounter) EnemyTurn(c *character.Character, rng random.Source) bool {
	if e == nil || e.Phase != PhaseEnemyTurn || e.Enemy.HP <= 0 {
		return false
	}
	if len(e.Enemy.Attacks) == 0 {
		e.logf("The %s hesitates.", e.Enemy.Name)
		e.Phase = PhasePlayerTurn
		return true
	}

	atk := e.Enemy.Attacks[rng.IntN(len(e.Enemy.Attacks))]
	dmg := EnemyDamage(atk.Damage, Defense(c))
	c.HP = max(0, c.HP-dmg)
	e.logf("The %s %s You take %d damage.", e.Enemy.Name, atk.Text, dmg)
	if c.HP <= 0 {
		e.logf("DEFEAT... the darkness swallows you.")
		e.Phase = PhaseDefeat
		return true
	}
	e.Phase = PhasePlayerTurn
	return true
}

// Flee attempts an escape. escaped is only meaningful when ok is true.
func (e *Encounter) Flee(c *character.Character, rng random.Source) (escaped bool, ok bool) {
	if e == nil || e.Phase != PhasePlayerTurn {
		return false, false
	}
	chance := FleeChance(stats.Effective(c).DEX, e.Enemy.Stats.DEX)
	if rng.Float64()*100 < float64(chance) {
		e.logf("You escaped!")
		return true, true
	}
	e.logf("You failed to escape!")
	e.Phase = PhaseEnemyTurn
	return false, true
}

// UseItem applies a consumable's healing and passes the turn
func (e *Encounter) UseItem(c *character.Character, itemID string) bool {
	if e == nil || e.Phase != PhasePlayerTurn {
		return false
	}
	i := c.FindItem(itemID)
	if i < 0 || c.Inventory[i].Type != character.ItemConsumable {
		return false
	}
	item := c.Inventory[i]
	if item.Effect != nil {
		c.Heal(item.Effect.HPRestore)
	}
	c.RemoveItem(itemID, 1)
	e.logf("You use %s.", item.Name)
	e.Phase = PhaseEnemyTurn
	return true
}

// VictoryResult is what a won fight yields
type VictoryResult struct {
	XP     int             `json:"xp"`
	Loot   *character.Item `json:"loot,omitempty"`
	Log    []string        `json:"log"`
	Prompt string          `json:"prompt"`
}

// Claim grants the rewards of a won fight
func (e *Encounter) Claim(c *character.Character, rng random.Source) (VictoryResult, bool) {
	if e == nil || e.Phase != PhaseVictory {
		return VictoryResult{}, false
	}
	res := VictoryResult{XP: e.Enemy.XPReward}

	lootName := ""
	if n := len(e.Enemy.LootTable); n > 0 {
		id := e.Enemy.LootTable[rng.IntN(n)]
		if item, ok := catalog.Item(id); ok {
			c.AddItem(item, 1)
			res.Loot = &item
			lootName = item.Name
		}
	}

	summary := fmt.Sprintf("Defeated %s. Gained %d XP", e.Enemy.Name, res.XP)
	if lootName != "" {
		summary += " and found " + lootName
	}
	res.Log = append([]string{summary + "."}, progression.GrantXP(c, res.XP)...)
	res.Prompt = fmt.Sprintf("[SYSTEM]: I have defeated the %s. Describe the final, killing blow.", e.Enemy.Name)
	return res, true
}

// Concede applies the defeat penalty
func (e *Encounter) Concede(c *character.Character) (death.Info, bool) {
	if e == nil || e.Phase != PhaseDefeat {
		return death.Info{}, false
	}
	info := death.Respawn(c)
	info.Cause = e.Enemy.Name
	return info, true
}
