package game

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/catalog"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/combat"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	class, _ := catalog.Class("struggler")
	c, err := character.New("Guts", class, testCreateRequest().Allocated, nil)
	if err != nil {
		t.Fatalf("Failed to create character: %v", err)
	}
	c.Inventory = catalog.StartingInventory()
	return NewState(c, "First Bonfire")
}

// TestNewState tests the opening state
func TestNewState(t *testing.T) {
	st := newTestState(t)

	if st.Mode != world.ModeBonfire {
		t.Errorf("Expected BONFIRE, got %s", st.Mode)
	}
	if st.Environment.Time != world.Dawn || st.Environment.Weather != world.Fog {
		t.Errorf("Unexpected environment %+v", st.Environment)
	}
	if st.InCombat() {
		t.Error("New state should not be in combat")
	}
}

// TestMarshalCapsMessages tests that only the recent log is saved
func TestMarshalCapsMessages(t *testing.T) {
	st := newTestState(t)
	for i := 0; i < MaxSavedMessages+20; i++ {
		st.system(fmt.Sprintf("line %d", i))
	}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	restored, err := DecodeState(data)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if len(restored.Messages) != MaxSavedMessages {
		t.Fatalf("Expected %d messages, got %d", MaxSavedMessages, len(restored.Messages))
	}
	if restored.Messages[0].Text != "line 20" {
		t.Errorf("Expected oldest kept line 20, got %q", restored.Messages[0].Text)
	}
	if len(st.Messages) != MaxSavedMessages+20 {
		t.Error("Marshal trimmed the live log")
	}
}

// TestStateRoundTripKeepsEncounter tests that a fight survives a save
func TestStateRoundTripKeepsEncounter(t *testing.T) {
	st := newTestState(t)
	enemy, _ := catalog.Enemy("enemy_spirit")
	st.Encounter = combat.Start(enemy)
	st.Encounter.Enemy.HP = 7

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	restored, err := DecodeState(data)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !restored.InCombat() || restored.Encounter.Enemy.HP != 7 || restored.Encounter.Phase != combat.PhasePlayerTurn {
		t.Errorf("Encounter not restored: %+v", restored.Encounter)
	}
}

// TestDecodeStateBackfills tests loading an older partial save
func TestDecodeStateBackfills(t *testing.T) {
	data := []byte(`{
		"character": {"name": "Guts", "hp": 500, "maxHp": 70, "will": 10, "maxWill": 40,
			"inventory": [{"id": "x", "name": "Ghost", "type": "MATERIAL", "quantity": 0}]},
		"environment": {"turnCount": 12},
		"worldState": "NOWHERE"
	}`)

	st, err := DecodeState(data)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if st.Mode != world.ModePhysical {
		t.Errorf("Unknown mode should fall back to PHYSICAL, got %s", st.Mode)
	}
	if st.Environment.Time != world.Dawn || st.Environment.TurnCount != 12 {
		t.Errorf("Environment not backfilled: %+v", st.Environment)
	}
	if st.Character.HP != 70 || st.Character.Level != 1 {
		t.Errorf("Character not repaired: hp %d level %d", st.Character.HP, st.Character.Level)
	}
	if len(st.Character.Inventory) != 0 {
		t.Error("Empty stack kept")
	}
	if st.Messages == nil || st.Suggestions == nil {
		t.Error("Nil slices not backfilled")
	}
}

// TestDecodeStateRejects tests saves that cannot be used
func TestDecodeStateRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"character": `},
		{"no character", `{"worldState": "BONFIRE"}`},
		{"wrong type", `{"character": {"hp": "lots"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeState([]byte(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

// TestCloneIsIndependent tests that snapshots do not alias the live state
func TestCloneIsIndependent(t *testing.T) {
	st := newTestState(t)
	enemy, _ := catalog.Enemy("enemy_hollow")
	st.Encounter = combat.Start(enemy)
	st.system("hello")

	cp := st.Clone()
	cp.Character.Inventory[0].Quantity = 99
	cp.Encounter.Enemy.Attacks[0].Damage = 99
	cp.Messages[0].Text = "changed"

	if st.Character.Inventory[0].Quantity == 99 || st.Encounter.Enemy.Attacks[0].Damage == 99 || st.Messages[0].Text == "changed" {
		t.Error("Clone shares memory with the original")
	}
}
