package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxMessageLength bounds a player's chat input
const MaxMessageLength = 1000

func validateID(kind, id string, maxLen int) error {
	if len(id) == 0 || len(id) > maxLen {
		return fmt.Errorf("%s must be 1-%d characters", kind, maxLen)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%s can only contain alphanumeric characters, hyphens, and underscores", kind)
	}
	return nil
}

// ValidateSessionID validates session ID format
func ValidateSessionID(id string) error {
	return validateID("session ID", id, 64)
}

// ValidateItemID validates item ID format
func ValidateItemID(id string) error {
	return validateID("item ID", id, 128)
}

// ValidateCatalogID validates skill, companion and location ids
func ValidateCatalogID(id string) error {
	return validateID("ID", id, 64)
}

// ValidateSlot validates an equipment slot name
func ValidateSlot(slot string) error {
	if !character.IsSlot(slot) {
		return fmt.Errorf("unknown equipment slot %q", slot)
	}
	return nil
}

// ValidateStatKey validates an attribute name
func ValidateStatKey(key string) error {
	if !character.IsStatKey(key) {
		return fmt.Errorf("unknown stat %q", key)
	}
	return nil
}

// ValidatePlayerName validates a character or player display name
func ValidatePlayerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 32 {
		return fmt.Errorf("name must be 1-32 characters")
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("name cannot contain control characters")
		}
	}
	return nil
}

// ValidateMessage validates chat input
func ValidateMessage(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message is empty")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return fmt.Errorf("message must be at most %d characters", MaxMessageLength)
	}
	return nil
}
