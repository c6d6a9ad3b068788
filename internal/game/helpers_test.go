package game

import (
	"context"
	"sync"
	"testing"

	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/narration"
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// testCreateRequest is a Struggler with STR 10 DEX 6 CON 10 INT 5 CHA 4 FATE 5
func testCreateRequest() CreateRequest {
	return CreateRequest{
		Name:      "Guts",
		ClassID:   "struggler",
		Allocated: character.Stats{STR: 2, DEX: 2, CON: 2, INT: 2, CHA: 1, FATE: 1},
	}
}

// scriptedNarrator answers every turn with the same outcome and records what it was shown
type scriptedNarrator struct {
	mu       sync.Mutex
	outcome  narration.Outcome
	err      error
	contexts []narration.Context
	release  chan struct{}
	entered  chan struct{}
}

func (n *scriptedNarrator) Narrate(ctx context.Context, history []narration.Message, c narration.Context) (narration.Outcome, error) {
	n.mu.Lock()
	n.contexts = append(n.contexts, c)
	n.mu.Unlock()

	if n.entered != nil {
		n.entered <- struct{}{}
	}
	if n.release != nil {
		<-n.release
	}
	return n.outcome, n.err
}

func (n *scriptedNarrator) calls() []narration.Context {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]narration.Context(nil), n.contexts...)
}

// quietResult is a narration that changes nothing but the log
func quietResult(text string) narration.Result {
	return narration.Result{
		Narrative:        text,
		Mode:             world.ModePhysical,
		SuggestedActions: []string{"Rest", "Search"},
	}
}

// newTestSession creates a session with a scripted narrator and a manual step queue
func newTestSession(t *testing.T, rng random.Source, n narration.Narrator) (*Session, *StepQueue) {
	t.Helper()
	q := NewStepQueue()
	m := NewManager(nil, Options{RNG: rng, Narrator: n, Scheduler: q})
	s, err := m.Create(context.Background(), "tester", testCreateRequest())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return s, q
}

func lastMessage(s *Session) Message {
	st := s.Snapshot()
	if len(st.Messages) == 0 {
		return Message{}
	}
	return st.Messages[len(st.Messages)-1]
}

func hasMessage(st *State, text string) bool {
	for _, m := range st.Messages {
		if m.Text == text {
			return true
		}
	}
	return false
}
