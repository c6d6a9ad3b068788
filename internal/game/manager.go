package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qninhdt/eclipse-rpg/server/internal/catalog"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
)

// SaveSummary describes a stored game without decoding it
type SaveSummary struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists session state
type Store interface {
	SaveSession(ctx context.Context, id, owner string, state *State) error
	LoadSession(ctx context.Context, id string) (owner string, state *State, err error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, owner string) ([]SaveSummary, error)
}

// CreateRequest is the character-creation input
type CreateRequest struct {
	Name      string          `json:"name"`
	ClassID   string          `json:"classId"`
	TraitID   string          `json:"traitId,omitempty"`
	Allocated character.Stats `json:"allocated"`
}

// saveTimeout bounds the background save after each action
const saveTimeout = 5 * time.Second

// Manager keeps live sessions and writes them through to the store
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	store    Store
	opts     Options
}

// NewManager creates a manager. A nil store keeps sessions in memory only.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		opts:     opts.withDefaults(),
	}
}

func (m *Manager) attach(id, owner string, st *State) *Session {
	s := NewSession(id, owner, st, m.opts)
	s.onCommit = m.persist
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Create builds a character and starts a new session for it
func (m *Manager) Create(ctx context.Context, owner string, req CreateRequest) (*Session, error) {
	class, ok := catalog.Class(req.ClassID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown class %q", character.ErrInvalidCreation, req.ClassID)
	}
	var trait *character.Trait
	if req.TraitID != "" {
		t, ok := catalog.Trait(req.TraitID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown trait %q", character.ErrInvalidCreation, req.TraitID)
		}
		trait = &t
	}

	c, err := character.New(req.Name, class, req.Allocated, trait)
	if err != nil {
		return nil, err
	}
	c.Inventory = catalog.StartingInventory()

	locationName := ""
	if loc, ok := m.opts.Map.Location(c.LocationID); ok {
		locationName = loc.Name
	}

	s := m.attach(uuid.NewString(), owner, NewState(c, locationName))
	if err := m.Save(ctx, s); err != nil {
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
		return nil, err
	}
	return s, nil
}

// Get returns a live session, loading it from the store when needed. A
// corrupt save is discarded and reported as missing.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}
	if m.store == nil {
		return nil, ErrNoSession
	}

	owner, st, err := m.store.LoadSession(ctx, id)
	if errors.Is(err, ErrCorruptSave) {
		log.Printf("Discarded corrupt save %s: %v", id, err)
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s = NewSession(id, owner, st, m.opts)
	s.onCommit = m.persist
	m.sessions[id] = s
	return s, nil
}

// Save writes a session's current state to the store
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.SaveSession(ctx, s.ID, s.Owner, s.Snapshot()); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

func (m *Manager) persist(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.Save(ctx, s); err != nil {
		log.Printf("Autosave failed: %v", err)
	}
}

// Delete clears a save and evicts the live session. Work still in flight on
// the session is no longer saved.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.close()
	}
	if m.store == nil {
		return nil
	}
	return m.store.DeleteSession(ctx, id)
}

// List returns the saves owned by a player
func (m *Manager) List(ctx context.Context, owner string) ([]SaveSummary, error) {
	if m.store != nil {
		return m.store.ListSessions(ctx, owner)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SaveSummary, 0)
	for _, s := range m.sessions {
		if s.Owner != owner {
			continue
		}
		st := s.Snapshot()
		out = append(out, SaveSummary{
			ID:        s.ID,
			Owner:     s.Owner,
			Name:      st.Character.Name,
			Level:     st.Character.Level,
			CreatedAt: st.CreatedAt,
			UpdatedAt: st.UpdatedAt,
		})
	}
	return out, nil
}
