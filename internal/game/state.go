package game

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/combat"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// MaxSavedMessages is how much of the log survives a save
const MaxSavedMessages = 50

// Sender identifies who wrote a log message
type Sender string

const (
	SenderPlayer Sender = "PLAYER"
	SenderDM     Sender = "DM"
	SenderSystem Sender = "SYSTEM"
)

// Message is one entry of the game log
type Message struct {
	ID        string     `json:"id"`
	Sender    Sender     `json:"sender"`
	Text      string     `json:"text"`
	Mode      world.Mode `json:"worldState,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// State is everything a save holds
type State struct {
	Character   *character.Character `json:"character"`
	Environment world.Environment    `json:"environment"`
	Mode        world.Mode           `json:"worldState"`
	Messages    []Message            `json:"messages"`
	Encounter   *combat.Encounter    `json:"encounter,omitempty"`
	Suggestions []string             `json:"suggestions"`
	LastRoll    int                  `json:"lastRoll,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

var errNoCharacter = errors.New("save has no character")

// NewState starts a game for a freshly created character
func NewState(c *character.Character, locationName string) *State {
	now := time.Now()
	return &State{
		Character:   c,
		Environment: world.NewEnvironment(locationName),
		Mode:        world.ModeBonfire,
		Messages:    make([]Message, 0),
		Suggestions: make([]string, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *State) log(sender Sender, text string) {
	s.Messages = append(s.Messages, Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Mode:      s.Mode,
		Timestamp: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

func (s *State) system(lines ...string) {
	for _, l := range lines {
		s.log(SenderSystem, l)
	}
}

// InCombat reports whether an encounter is open
func (s *State) InCombat() bool {
	return s.Encounter != nil
}

// Backfill repairs a state decoded from an older or partial save
func (s *State) Backfill() error {
	if s.Character == nil {
		return errNoCharacter
	}
	s.Character.Backfill()
	s.Environment.Backfill()
	if !world.IsMode(string(s.Mode)) {
		s.Mode = world.ModePhysical
	}
	if s.Messages == nil {
		s.Messages = make([]Message, 0)
	}
	if s.Suggestions == nil {
		s.Suggestions = make([]string, 0)
	}
	if s.Encounter != nil && s.Encounter.Phase == "" {
		s.Encounter = nil
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return nil
}

// Clone returns a deep copy safe to hand out of the session lock
func (s *State) Clone() *State {
	out := *s
	out.Character = s.Character.Clone()
	out.Messages = append(make([]Message, 0, len(s.Messages)), s.Messages...)
	out.Suggestions = append(make([]string, 0, len(s.Suggestions)), s.Suggestions...)
	if s.Encounter != nil {
		enc := *s.Encounter
		enc.Enemy = s.Encounter.Enemy.Copy()
		enc.Log = append([]string(nil), s.Encounter.Log...)
		out.Encounter = &enc
	}
	return &out
}

// MarshalJSON keeps only the most recent messages
func (s *State) MarshalJSON() ([]byte, error) {
	type Alias State
	msgs := s.Messages
	if len(msgs) > MaxSavedMessages {
		msgs = msgs[len(msgs)-MaxSavedMessages:]
	}
	return json.Marshal(&struct {
		*Alias
		Messages []Message `json:"messages"`
	}{
		Alias:    (*Alias)(s),
		Messages: msgs,
	})
}

// DecodeState restores a saved state and backfills missing fields
func DecodeState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Backfill(); err != nil {
		return nil, err
	}
	return &s, nil
}
