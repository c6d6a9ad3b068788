package validation

import (
	"strings"
	"testing"
)

// TestValidators tests every input check
func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) error
		input string
		ok    bool
	}{
		{"session uuid", ValidateSessionID, "3f2c1a9e-0b7d-4c55-9a61-2f0e8d4b7c10", true},
		{"session slash", ValidateSessionID, "../etc", false},
		{"session empty", ValidateSessionID, "", false},
		{"session long", ValidateSessionID, strings.Repeat("a", 65), false},
		{"item", ValidateItemID, "wep-01", true},
		{"item space", ValidateItemID, "wep 01", false},
		{"catalog", ValidateCatalogID, "loc_forest", true},
		{"slot", ValidateSlot, "MAIN_HAND", true},
		{"slot lower", ValidateSlot, "main_hand", false},
		{"stat", ValidateStatKey, "FATE", true},
		{"stat unknown", ValidateStatKey, "LUCK", false},
		{"name", ValidatePlayerName, "  Guts ", true},
		{"name blank", ValidatePlayerName, "   ", false},
		{"name long", ValidatePlayerName, strings.Repeat("x", 33), false},
		{"name control", ValidatePlayerName, "Gu\x00ts", false},
		{"message", ValidateMessage, "I look around", true},
		{"message blank", ValidateMessage, " \n ", false},
		{"message long", ValidateMessage, strings.Repeat("x", MaxMessageLength+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.input)
			if tt.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
