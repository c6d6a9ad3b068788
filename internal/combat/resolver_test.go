package combat

import (
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
)

func fighter() *character.Character {
	return &character.Character{
		Name:        "Guts",
		Level:       1,
		HP:          70,
		MaxHP:       70,
		Will:        40,
		MaxWill:     40,
		Gold:        101,
		Stats:       character.Stats{STR: 8, DEX: 10, CON: 8, INT: 3, CHA: 3, FATE: 4},
		Equipment:   character.NewEquipment(),
		Progression: character.Progression{MaxXP: 150},
		Survival:    character.Survival{Hunger: 80, Thirst: 80, Fatigue: 80, Warmth: 80},
		LocationID:  "loc_forest",
	}
}

func hollow() character.Enemy {
	return character.Enemy{
		ID:        "enemy_hollow",
		Name:      "Hollow Soldier",
		HP:        30,
		MaxHP:     30,
		Stats:     character.Stats{STR: 4, DEX: 2, CON: 4, INT: 1, CHA: 1, FATE: 1},
		Attacks:   []character.Attack{{Name: "Rusted Slash", Damage: 6, Text: "swings!"}, {Name: "Tackle", Damage: 3, Text: "slams!"}},
		XPReward:  30,
		LootTable: []string{"mat_iron", "con-01"},
	}
}

func TestStartCopiesTemplate(t *testing.T) {
	tpl := hollow()
	e := Start(tpl)
	e.Enemy.HP = 1
	e.Enemy.LootTable[0] = "x"
	if tpl.HP != 30 || tpl.LootTable[0] != "mat_iron" {
		t.Fatal("template mutated")
	}
	if e.Phase != PhasePlayerTurn || len(e.Log) != 1 {
		t.Fatalf("phase %s log %v", e.Phase, e.Log)
	}
}

func TestHitChance(t *testing.T) {
	tests := []struct {
		p, e, want int
	}{
		{10, 2, 95},
		{5, 5, 70},
		{0, 30, 30},
		{7, 5, 74},
	}
	for _, tt := range tests {
		if got := HitChance(tt.p, tt.e); got != tt.want {
			t.Errorf("HitChance(%d,%d) = %d, want %d", tt.p, tt.e, got, tt.want)
		}
	}
}

func TestFleeChanceClamped(t *testing.T) {
	tests := []struct {
		p, e, want int
	}{
		{5, 5, 50},
		{8, 5, 65},
		{30, 1, 95},
		{1, 30, 30},
	}
	for _, tt := range tests {
		if got := FleeChance(tt.p, tt.e); got != tt.want {
			t.Errorf("FleeChance(%d,%d) = %d, want %d", tt.p, tt.e, got, tt.want)
		}
	}
}

func TestAttackHitScenario(t *testing.T) {
	c := fighter()
	e := Start(hollow())
	// roll 94.9 against 95, variance 0.5*4 = 2
	if !e.Attack(c, random.NewSequence(0.949, 0.5)) {
		t.Fatal("attack rejected")
	}
	if e.Enemy.HP != 30-10 {
		t.Fatalf("enemy HP = %d, want 20", e.Enemy.HP)
	}
	if e.Phase != PhaseEnemyTurn {
		t.Fatalf("phase = %s", e.Phase)
	}
}

func TestAttackMiss(t *testing.T) {
	c := fighter()
	e := Start(hollow())
	e.Attack(c, random.NewSequence(0.96))
	if e.Enemy.HP != 30 || e.Phase != PhaseEnemyTurn {
		t.Fatalf("miss: HP %d phase %s", e.Enemy.HP, e.Phase)
	}
}

func TestAttackWeaponUpgradeAndVictory(t *testing.T) {
	c := fighter()
	c.Equipment[character.SlotMainHand] = &character.Item{
		ID: "wep-01", Type: character.ItemWeapon, UpgradeLevel: 3,
		Equip: &character.EquipProps{Slot: character.SlotMainHand, Modifiers: character.Stats{STR: 2}},
	}
	e := Start(hollow())
	e.Enemy.HP = 16
	// STR 10 + 6 upgrade + floor(0.99*4)=3 -> 19
	e.Attack(c, random.NewSequence(0, 0.99))
	if e.Enemy.HP != 0 || e.Phase != PhaseVictory {
		t.Fatalf("HP %d phase %s", e.Enemy.HP, e.Phase)
	}
	if e.Attack(c, random.NewSequence(0)) {
		t.Fatal("attack allowed after victory")
	}
}

func TestAttackDamageNeverNegative(t *testing.T) {
	c := fighter()
	for _, v := range []float64{0, 1.5, 3.999} {
		if d := AttackDamage(c, v); d < 0 {
			t.Fatalf("damage %d", d)
		}
	}
}

func TestEnemyTurn(t *testing.T) {
	c := fighter()
	c.Equipment[character.SlotBody] = &character.Item{
		ID: "arm-01", Type: character.ItemArmor,
		Equip: &character.EquipProps{Slot: character.SlotBody, Modifiers: character.Stats{CON: 1, DEX: -1}},
	}
	e := Start(hollow())
	if e.EnemyTurn(c, random.NewSequence(0)) {
		t.Fatal("enemy acted during player turn")
	}
	e.Phase = PhaseEnemyTurn
	// CON 9 -> defense 4 + armor 1 = 5; slash 6 - 2 = 4
	e.EnemyTurn(c, random.NewSequence(0))
	if c.HP != 66 {
		t.Fatalf("HP = %d, want 66", c.HP)
	}
	if e.Phase != PhasePlayerTurn {
		t.Fatalf("phase = %s", e.Phase)
	}
}

func TestEnemyDamageAtLeastOne(t *testing.T) {
	for _, tt := range []struct{ atk, def int }{{1, 100}, {3, 8}, {0, 0}} {
		if d := EnemyDamage(tt.atk, tt.def); d < 1 {
			t.Errorf("EnemyDamage(%d,%d) = %d", tt.atk, tt.def, d)
		}
	}
}

func TestEnemyTurnDefeat(t *testing.T) {
	c := fighter()
	c.HP = 2
	e := Start(hollow())
	e.Phase = PhaseEnemyTurn
	e.EnemyTurn(c, random.NewSequence(0))
	if c.HP != 0 || e.Phase != PhaseDefeat {
		t.Fatalf("HP %d phase %s", c.HP, e.Phase)
	}
}

func TestEnemyTurnSkippedWhenEnemyDead(t *testing.T) {
	c := fighter()
	e := Start(hollow())
	e.Phase = PhaseEnemyTurn
	e.Enemy.HP = 0
	if e.EnemyTurn(c, random.NewSequence(0)) || c.HP != 70 {
		t.Fatal("dead enemy attacked")
	}
}

func TestEnemyWithoutAttacks(t *testing.T) {
	c := fighter()
	tpl := hollow()
	tpl.Attacks = nil
	e := Start(tpl)
	e.Phase = PhaseEnemyTurn
	if !e.EnemyTurn(c, random.NewSequence(0)) || e.Phase != PhasePlayerTurn || c.HP != 70 {
		t.Fatalf("phase %s HP %d", e.Phase, c.HP)
	}
}

func TestFlee(t *testing.T) {
	c := fighter()
	e := Start(hollow())
	// chance 90
	escaped, ok := e.Flee(c, random.NewSequence(0.89))
	if !ok || !escaped {
		t.Fatalf("escaped %v ok %v", escaped, ok)
	}

	e = Start(hollow())
	escaped, ok = e.Flee(c, random.NewSequence(0.9))
	if !ok || escaped || e.Phase != PhaseEnemyTurn {
		t.Fatalf("escaped %v ok %v phase %s", escaped, ok, e.Phase)
	}

	if _, ok := e.Flee(c, random.NewSequence(0)); ok {
		t.Fatal("flee allowed during enemy turn")
	}
}

func TestUseItemPassesTurn(t *testing.T) {
	c := fighter()
	c.HP = 60
	c.Inventory = []character.Item{
		{ID: "con-01", Name: "Worn Bandage", Type: character.ItemConsumable, Quantity: 1, Effect: &character.Effect{HPRestore: 15, HungerRestore: 30}},
		{ID: "mat_iron", Type: character.ItemMaterial, Quantity: 2},
	}
	e := Start(hollow())
	if e.UseItem(c, "mat_iron") {
		t.Fatal("material used in combat")
	}
	if !e.UseItem(c, "con-01") {
		t.Fatal("consumable rejected")
	}
	if c.HP != 70 {
		t.Fatalf("HP = %d, want capped 70", c.HP)
	}
	if c.Survival.Hunger != 80 {
		t.Fatal("combat use applied hunger restore")
	}
	if c.FindItem("con-01") >= 0 {
		t.Fatal("empty stack kept")
	}
	if e.Phase != PhaseEnemyTurn {
		t.Fatalf("phase = %s", e.Phase)
	}
}

func TestClaim(t *testing.T) {
	c := fighter()
	c.Inventory = []character.Item{{ID: "mat_iron", Type: character.ItemMaterial, Quantity: 2}}
	e := Start(hollow())
	if _, ok := e.Claim(c, random.NewSequence(0)); ok {
		t.Fatal("claimed before victory")
	}
	e.Phase = PhaseVictory
	res, ok := e.Claim(c, random.NewSequence(0))
	if !ok {
		t.Fatal("claim rejected")
	}
	if res.XP != 30 || c.Progression.CurrentXP != 30 {
		t.Fatalf("xp %d / %d", res.XP, c.Progression.CurrentXP)
	}
	if res.Loot == nil || res.Loot.ID != "mat_iron" || c.CountItem("mat_iron") != 3 {
		t.Fatalf("loot %+v count %d", res.Loot, c.CountItem("mat_iron"))
	}
	if res.Prompt == "" || len(res.Log) != 2 {
		t.Fatalf("prompt %q log %v", res.Prompt, res.Log)
	}
}

func TestConcede(t *testing.T) {
	c := fighter()
	c.HP = 0
	e := Start(hollow())
	e.Phase = PhaseDefeat
	info, ok := e.Concede(c)
	if !ok {
		t.Fatal("concede rejected")
	}
	if c.Gold != 50 || c.HP != 70 || c.LocationID != character.StartLocationID {
		t.Fatalf("char %+v", c)
	}
	if c.Survival != (character.Survival{Hunger: 50, Thirst: 50, Fatigue: 50, Warmth: 50}) {
		t.Fatalf("survival %+v", c.Survival)
	}
	if info.Cause != "Hollow Soldier" {
		t.Fatalf("cause %q", info.Cause)
	}
}

func TestNilEncounterIsNoop(t *testing.T) {
	var e *Encounter
	c := fighter()
	rng := random.NewSequence(0)
	if e.Attack(c, rng) || e.EnemyTurn(c, rng) || e.UseItem(c, "con-01") {
		t.Fatal("nil encounter acted")
	}
	if _, ok := e.Flee(c, rng); ok {
		t.Fatal("nil encounter fled")
	}
	if _, ok := e.Claim(c, rng); ok {
		t.Fatal("nil encounter claimed")
	}
	if _, ok := e.Concede(c); ok {
		t.Fatal("nil encounter conceded")
	}
}
