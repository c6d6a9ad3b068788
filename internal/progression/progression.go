// Package progression grants experience, cascades level-ups and unlocks skills.
package progression

import (
	"fmt"
	"log"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

// Level-up stipend
const (
	StatPointsPerLevel  = 2
	SkillPointsPerLevel = 1
	MaxHPPerLevel       = 10
	MaxWillPerLevel     = 5
)

// XPForLevel is the experience threshold of a level
func XPForLevel(level int) int {
	return character.XPForLevel(level)
}

// GrantXP adds experience and applies every level-up it pays for.
// Non-positive amounts are ignored and return nil.
func GrantXP(c *character.Character, amount int) []string {
	if amount <= 0 {
		return nil
	}
	logs := []string{fmt.Sprintf("Gained %d XP.", amount)}

	p := &c.Progression
	if p.MaxXP <= 0 {
		p.MaxXP = XPForLevel(c.Level)
	}
	p.CurrentXP += amount
	for p.CurrentXP >= p.MaxXP {
		p.CurrentXP -= p.MaxXP
		c.Level++
		p.MaxXP = XPForLevel(c.Level)
		p.StatPoints += StatPointsPerLevel
		p.SkillPoints += SkillPointsPerLevel
		c.MaxHP += MaxHPPerLevel
		c.MaxWill += MaxWillPerLevel
		c.HP = c.MaxHP
		c.Will = c.MaxWill
		logs = append(logs, fmt.Sprintf("LEVEL UP! You are now Level %d.", c.Level))
	}
	return logs
}

var (
	programs   = make(map[string]*vm.Program)
	programsMu sync.Mutex
)

func requirementEnv(c *character.Character) map[string]any {
	return map[string]any{
		"level":  c.Level,
		"skills": c.UnlockedSkills,
		"stats": map[string]int{
			"STR": c.Stats.STR, "DEX": c.Stats.DEX, "CON": c.Stats.CON,
			"INT": c.Stats.INT, "CHA": c.Stats.CHA, "FATE": c.Stats.FATE,
		},
		"gold": c.Gold,
	}
}

func compileRequirement(src string) (*vm.Program, error) {
	programsMu.Lock()
	defer programsMu.Unlock()
	if p, ok := programs[src]; ok {
		return p, nil
	}
	env := requirementEnv(&character.Character{})
	p, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, err
	}
	programs[src] = p
	return p, nil
}

// MeetsRequirement evaluates a skill's requirement expression for a character
func MeetsRequirement(c *character.Character, skill character.Skill) bool {
	if skill.Requires == "" {
		return true
	}
	program, err := compileRequirement(skill.Requires)
	if err != nil {
		log.Printf("skill %s: invalid requirement %q: %v", skill.ID, skill.Requires, err)
		return false
	}
	out, err := vm.Run(program, requirementEnv(c))
	if err != nil {
		log.Printf("skill %s: requirement failed: %v", skill.ID, err)
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// CanLearn reports whether every learning condition holds
func CanLearn(c *character.Character, skill character.Skill) bool {
	switch {
	case c.HasSkill(skill.ID):
		return false
	case c.Progression.SkillPoints < skill.Cost:
		return false
	case c.Level < skill.RequiredLevel:
		return false
	case skill.PrerequisiteID != "" && !c.HasSkill(skill.PrerequisiteID):
		return false
	}
	return MeetsRequirement(c, skill)
}

// LearnSkill unlocks a skill, spending its cost and applying its stat bonus
func LearnSkill(c *character.Character, skill character.Skill) bool {
	if !CanLearn(c, skill) {
		return false
	}
	c.Progression.SkillPoints -= skill.Cost
	c.UnlockedSkills = append(c.UnlockedSkills, skill.ID)
	c.Stats = c.Stats.Add(skill.BonusStats)
	return true
}

// SpendStatPoint raises one base stat by a point
func SpendStatPoint(c *character.Character, key character.StatKey) bool {
	if c.Progression.StatPoints < 1 || !character.IsStatKey(string(key)) {
		return false
	}
	c.Progression.StatPoints--
	c.Stats = c.Stats.With(key, c.Stats.Get(key)+1)
	return true
}

// Available lists the skills the character could learn right now
func Available(c *character.Character, skills []character.Skill) []character.Skill {
	out := make([]character.Skill, 0)
	for _, s := range skills {
		if CanLearn(c, s) {
			out = append(out, s)
		}
	}
	return out
}
