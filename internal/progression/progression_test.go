package progression

import (
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

func newHero() *character.Character {
	return &character.Character{
		Name:        "Guts",
		Level:       1,
		HP:          10,
		MaxHP:       70,
		Will:        5,
		MaxWill:     40,
		Stats:       character.Stats{STR: 8, DEX: 4, CON: 8, INT: 3, CHA: 3, FATE: 4},
		Progression: character.Progression{MaxXP: XPForLevel(1)},
		Equipment:   character.NewEquipment(),
	}
}

func TestXPCurveMonotonic(t *testing.T) {
	prev := 0
	for lvl := 1; lvl <= 50; lvl++ {
		xp := XPForLevel(lvl)
		if xp <= prev {
			t.Fatalf("XPForLevel(%d) = %d not above %d", lvl, xp, prev)
		}
		prev = xp
	}
	if XPForLevel(2) != 300 {
		t.Fatalf("XPForLevel(2) = %d", XPForLevel(2))
	}
}

func TestGrantXPNoop(t *testing.T) {
	for _, amount := range []int{0, -5} {
		c := newHero()
		before := *c
		if logs := GrantXP(c, amount); logs != nil {
			t.Errorf("GrantXP(%d) logs = %v", amount, logs)
		}
		if c.Progression != before.Progression || c.Level != before.Level || c.HP != before.HP {
			t.Errorf("GrantXP(%d) mutated character", amount)
		}
	}
}

func TestGrantXPWithoutLevel(t *testing.T) {
	c := newHero()
	logs := GrantXP(c, 30)
	if len(logs) != 1 || logs[0] != "Gained 30 XP." {
		t.Fatalf("logs = %v", logs)
	}
	if c.Progression.CurrentXP != 30 || c.Level != 1 {
		t.Fatalf("progression = %+v level %d", c.Progression, c.Level)
	}
}

func TestGrantXPCascade(t *testing.T) {
	c := newHero()
	// exactly levels 1, 2 and 3
	amount := XPForLevel(1) + XPForLevel(2) + XPForLevel(3)
	logs := GrantXP(c, amount)

	if c.Level != 4 {
		t.Fatalf("level = %d, want 4", c.Level)
	}
	if c.Progression.CurrentXP != 0 {
		t.Fatalf("leftover XP = %d, want 0", c.Progression.CurrentXP)
	}
	if c.Progression.MaxXP != XPForLevel(4) {
		t.Fatalf("maxXp = %d", c.Progression.MaxXP)
	}
	if c.Progression.StatPoints != 6 || c.Progression.SkillPoints != 3 {
		t.Fatalf("points = %+v", c.Progression)
	}
	if c.MaxHP != 100 || c.HP != 100 || c.MaxWill != 55 || c.Will != 55 {
		t.Fatalf("resources hp %d/%d will %d/%d", c.HP, c.MaxHP, c.Will, c.MaxWill)
	}
	want := []string{"Gained 900 XP.", "LEVEL UP! You are now Level 2.", "LEVEL UP! You are now Level 3.", "LEVEL UP! You are now Level 4."}
	if len(logs) != len(want) {
		t.Fatalf("logs = %v", logs)
	}
	for i := range want {
		if logs[i] != want[i] {
			t.Errorf("logs[%d] = %q, want %q", i, logs[i], want[i])
		}
	}
}

func TestGrantXPCarriesRemainder(t *testing.T) {
	c := newHero()
	GrantXP(c, 140)
	GrantXP(c, 20)
	if c.Level != 2 || c.Progression.CurrentXP != 10 {
		t.Fatalf("level %d xp %d", c.Level, c.Progression.CurrentXP)
	}
}

func TestLearnSkill(t *testing.T) {
	grip := character.Skill{ID: "titan_grip", Cost: 2, RequiredLevel: 3, PrerequisiteID: "iron_stomach", BonusStats: character.Stats{STR: 2}}
	stomach := character.Skill{ID: "iron_stomach", Cost: 1, RequiredLevel: 1}

	tests := []struct {
		name  string
		setup func(c *character.Character)
		skill character.Skill
		want  bool
	}{
		{"no points", func(c *character.Character) {}, stomach, false},
		{"learnable", func(c *character.Character) { c.Progression.SkillPoints = 1 }, stomach, true},
		{"already known", func(c *character.Character) {
			c.Progression.SkillPoints = 1
			c.UnlockedSkills = []string{"iron_stomach"}
		}, stomach, false},
		{"level too low", func(c *character.Character) {
			c.Progression.SkillPoints = 5
			c.UnlockedSkills = []string{"iron_stomach"}
		}, grip, false},
		{"missing prerequisite", func(c *character.Character) {
			c.Progression.SkillPoints = 5
			c.Level = 3
		}, grip, false},
		{"requirement expression false", func(c *character.Character) {
			c.Progression.SkillPoints = 5
		}, character.Skill{ID: "rich", Cost: 1, RequiredLevel: 1, Requires: "gold >= 100"}, false},
		{"requirement expression true", func(c *character.Character) {
			c.Progression.SkillPoints = 5
			c.Gold = 150
		}, character.Skill{ID: "rich", Cost: 1, RequiredLevel: 1, Requires: `gold >= 100 && stats["STR"] > 5`}, true},
		{"invalid expression", func(c *character.Character) {
			c.Progression.SkillPoints = 5
		}, character.Skill{ID: "broken", Cost: 1, RequiredLevel: 1, Requires: "level >"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newHero()
			tt.setup(c)
			before := c.Progression.SkillPoints
			got := LearnSkill(c, tt.skill)
			if got != tt.want {
				t.Fatalf("LearnSkill = %v, want %v", got, tt.want)
			}
			if got && c.Progression.SkillPoints != before-tt.skill.Cost {
				t.Errorf("skill points = %d", c.Progression.SkillPoints)
			}
			if !got && c.Progression.SkillPoints != before {
				t.Errorf("rejected learn spent points")
			}
		})
	}
}

func TestLearnSkillAppliesBonus(t *testing.T) {
	c := newHero()
	c.Level = 3
	c.Progression.SkillPoints = 2
	c.UnlockedSkills = []string{"iron_stomach"}
	grip := character.Skill{ID: "titan_grip", Cost: 2, RequiredLevel: 3, PrerequisiteID: "iron_stomach", BonusStats: character.Stats{STR: 2}}
	if !LearnSkill(c, grip) {
		t.Fatal("expected learn")
	}
	if c.Stats.STR != 10 || !c.HasSkill("titan_grip") {
		t.Fatalf("STR %d skills %v", c.Stats.STR, c.UnlockedSkills)
	}
}

func TestSpendStatPoint(t *testing.T) {
	c := newHero()
	if SpendStatPoint(c, character.DEX) {
		t.Fatal("spent without points")
	}
	c.Progression.StatPoints = 1
	if SpendStatPoint(c, "LUCK") {
		t.Fatal("spent on unknown stat")
	}
	if !SpendStatPoint(c, character.DEX) {
		t.Fatal("expected spend")
	}
	if c.Stats.DEX != 5 || c.Progression.StatPoints != 0 {
		t.Fatalf("DEX %d points %d", c.Stats.DEX, c.Progression.StatPoints)
	}
}

func TestAvailable(t *testing.T) {
	c := newHero()
	c.Progression.SkillPoints = 1
	skills := []character.Skill{
		{ID: "iron_stomach", Cost: 1, RequiredLevel: 1},
		{ID: "night_eyes", Cost: 1, RequiredLevel: 2},
		{ID: "meditation", Cost: 2, RequiredLevel: 1},
	}
	got := Available(c, skills)
	if len(got) != 1 || got[0].ID != "iron_stomach" {
		t.Fatalf("Available = %v", got)
	}
}
