package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qninhdt/eclipse-rpg/server/internal/catalog"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/combat"
	"github.com/qninhdt/eclipse-rpg/server/internal/death"
	"github.com/qninhdt/eclipse-rpg/server/internal/items"
	"github.com/qninhdt/eclipse-rpg/server/internal/narration"
	"github.com/qninhdt/eclipse-rpg/server/internal/progression"
	"github.com/qninhdt/eclipse-rpg/server/internal/random"
	"github.com/qninhdt/eclipse-rpg/server/internal/stats"
	"github.com/qninhdt/eclipse-rpg/server/internal/survival"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

var (
	// ErrBusy is returned while narration or a deferred combat step is pending
	ErrBusy = errors.New("session is busy")
	// ErrNoSession is returned for unknown session ids
	ErrNoSession = errors.New("session not found")
	// ErrCorruptSave is returned when a stored state cannot be decoded
	ErrCorruptSave = errors.New("corrupt save")

	errNoNarrator = errors.New("no narrator configured")
)

// FoundItemPrice is the value of an item the narrator invents
const FoundItemPrice = 50

// Delays are the pauses before deferred combat steps
type Delays struct {
	EnemyReply  time.Duration
	FleeResolve time.Duration
}

// DefaultDelays mirror the pacing of the browser client
var DefaultDelays = Delays{
	EnemyReply:  time.Second,
	FleeResolve: time.Second,
}

// Options wires a session to its collaborators
type Options struct {
	Map              *world.Map
	Narrator         narration.Narrator
	RNG              random.Source
	Scheduler        Scheduler
	Delays           Delays
	NarrationTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.RNG == nil {
		o.RNG = random.New()
	}
	if o.Scheduler == nil {
		o.Scheduler = TimerScheduler{}
	}
	if o.Narrator == nil {
		o.Narrator = narration.NarratorFunc(func(context.Context, []narration.Message, narration.Context) (narration.Outcome, error) {
			return nil, errNoNarrator
		})
	}
	if o.Map == nil {
		m, err := catalog.WorldMap()
		if err != nil {
			log.Printf("Failed to build world map: %v", err)
			m = world.NewMap()
		}
		o.Map = m
	}
	return o
}

// Session is one player's game. Every rule runs under its lock; the busy flag
// keeps a second action out while narration or a combat step is in flight.
type Session struct {
	ID    string
	Owner string

	state    *State
	opts     Options
	onCommit func(*Session)
	busy     bool
	closed   bool
	mu       sync.Mutex
	// saveMu orders commits against close
	saveMu sync.Mutex
}

// NewSession wraps a state
func NewSession(id, owner string, state *State, opts Options) *Session {
	return &Session{
		ID:    id,
		Owner: owner,
		state: state,
		opts:  opts.withDefaults(),
	}
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Busy reports whether an action is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Sheet returns the computed character sheet
func (s *Session) Sheet() stats.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.SheetFor(s.state.Character)
}

func (s *Session) commit() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed || s.onCommit == nil {
		return
	}
	s.onCommit(s)
}

// close stops further commits. It waits for a commit already in progress, so
// nothing reaches the store once it returns. Pending steps still run in memory.
func (s *Session) close() {
	s.saveMu.Lock()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.saveMu.Unlock()
}

// act runs fn under the lock when the session is idle. State is committed
// after the lock is released when fn reports a change.
func (s *Session) act(fn func(st *State) bool) (bool, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return false, ErrBusy
	}
	ok := fn(s.state)
	if ok {
		s.state.UpdatedAt = time.Now()
	}
	s.mu.Unlock()

	if ok {
		s.commit()
	}
	return ok, nil
}

// outsideCombat runs fn only when no encounter is open
func (s *Session) outsideCombat(fn func(st *State) bool) (bool, error) {
	return s.act(func(st *State) bool {
		return !st.InCombat() && fn(st)
	})
}

// respawned logs a death already applied to the character. The world mode is
// left as it was.
func (s *Session) respawned(st *State, info death.Info) {
	st.system(info.Message())
	if loc, ok := s.opts.Map.Location(character.StartLocationID); ok {
		st.Environment.LocationName = loc.Name
	}
}

// --- narration ---

// SendMessage plays one story turn: the clock and needs advance, then the
// narrator answers. It is ignored during combat.
func (s *Session) SendMessage(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return false, ErrBusy
	}
	st := s.state
	if st.InCombat() {
		s.mu.Unlock()
		return false, nil
	}

	st.log(SenderPlayer, text)
	if st.Environment.Advance(s.opts.RNG) {
		st.system(fmt.Sprintf("Time passes. It is now %s.", st.Environment.Time))
	}
	st.system(survival.Apply(st.Character, st.Environment, st.Mode, s.opts.RNG)...)
	if info, dead := death.CheckDeath(st.Character, "the elements", st.Environment.TurnCount); dead {
		s.respawned(st, *info)
	}

	history := st.history()
	nctx := narration.Snapshot(st.Character, st.Environment, st.Mode, text)
	s.busy = true
	st.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.commit()
	s.narrate(ctx, history, nctx)
	return true, nil
}

// Intro asks the narrator to open the story. It only runs on an empty log.
func (s *Session) Intro(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return false, ErrBusy
	}
	st := s.state
	if len(st.Messages) > 0 {
		s.mu.Unlock()
		return false, nil
	}
	nctx := narration.Snapshot(st.Character, st.Environment, st.Mode, "")
	s.busy = true
	s.mu.Unlock()

	s.narrate(ctx, nil, nctx)
	return true, nil
}

// TalkTo asks a party member for their view of the current place
func (s *Session) TalkTo(ctx context.Context, companionID string) (bool, error) {
	s.mu.Lock()
	name := ""
	for _, p := range s.state.Character.Party {
		if p.ID == companionID {
			name = p.Name
		}
	}
	s.mu.Unlock()
	if name == "" {
		return false, nil
	}
	return s.SendMessage(ctx, fmt.Sprintf("(Speaking with %s): \"What do you make of this place?\"", name))
}

func (s *Session) narrate(ctx context.Context, history []narration.Message, nctx narration.Context) {
	if s.opts.NarrationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.NarrationTimeout)
		defer cancel()
	}
	outcome, err := s.opts.Narrator.Narrate(ctx, history, nctx)

	s.mu.Lock()
	s.busy = false
	if err != nil {
		log.Printf("Narration failed for session %s: %v", s.ID, err)
		s.state.system("The narrator is silent. Try again.")
	} else {
		s.applyNarration(outcome)
	}
	s.state.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.commit()
}

func (s *Session) applyNarration(outcome narration.Outcome) {
	st := s.state
	c := st.Character
	res, failure := narration.Resolve(outcome, st.Mode)
	if failure != nil {
		log.Printf("Session %s: %v", s.ID, failure)
	}

	st.Mode = res.Mode
	st.system(progression.GrantXP(c, res.XPReward)...)

	if res.HPChange != 0 || res.WillChange != 0 {
		c.Heal(res.HPChange)
		c.Restore(res.WillChange)
		st.system(fmt.Sprintf("Status updated. HP %+d, Will %+d.", res.HPChange, res.WillChange))
	}
	if res.NewItem != "" {
		s.grantItem(st, res.NewItem)
	}
	if res.NewCompanion != "" {
		s.recruit(st, res.NewCompanion)
	}
	if res.DiceRequest != "" {
		st.system("Roll for: " + res.DiceRequest)
	}

	st.log(SenderDM, res.Narrative)
	st.Suggestions = append(make([]string, 0, len(res.SuggestedActions)), res.SuggestedActions...)

	if info, dead := death.CheckDeath(c, "wounds", st.Environment.TurnCount); dead {
		s.respawned(st, *info)
	}
}

func (s *Session) grantItem(st *State, name string) {
	item, ok := catalog.MatchItem(name)
	if !ok {
		item = character.Item{
			ID:          "found-" + uuid.NewString(),
			Name:        name,
			Type:        character.ItemMaterial,
			Description: "Found on your journey.",
			Icon:        "gem",
			Price:       FoundItemPrice,
		}
	}
	st.Character.AddItem(item, 1)
	st.system("Found: " + item.Name)
}

func (s *Session) recruit(st *State, ref string) {
	comp, ok := catalog.MatchCompanion(ref)
	if !ok {
		log.Printf("Session %s: unknown companion %q", s.ID, ref)
		return
	}
	c := st.Character
	if c.HasCompanion(comp.ID) {
		return
	}
	if len(c.Party) >= stats.PartyLimit(c) {
		st.system(fmt.Sprintf("%s would follow you, but your party is full.", comp.Name))
		return
	}
	c.Party = append(c.Party, comp)
	st.system("Joined: " + comp.Name)
}

// history converts the log into chat turns; system lines stay local
func (st *State) history() []narration.Message {
	out := make([]narration.Message, 0, len(st.Messages))
	for _, m := range st.Messages {
		switch m.Sender {
		case SenderPlayer:
			out = append(out, narration.Message{Role: "user", Content: m.Text})
		case SenderDM:
			out = append(out, narration.Message{Role: "assistant", Content: m.Text})
		}
	}
	return out
}

// --- travel ---

// Travel moves the character along a road. Arrival is narrated unless the
// road ends in an ambush.
func (s *Session) Travel(ctx context.Context, to string) (bool, error) {
	var arrived string
	ok, err := s.outsideCombat(func(st *State) bool {
		c := st.Character
		dest, ok := s.opts.Map.Route(c.LocationID, to)
		if !ok {
			return false
		}
		c.Survival = survival.TravelCost(c.Survival)
		st.Environment.Travel(s.opts.RNG)
		c.LocationID = dest.ID
		st.Environment.LocationName = dest.Name
		st.system(fmt.Sprintf("Traveled to %s. (-%d Hunger, -%d Thirst)", dest.Name, survival.TravelHunger, survival.TravelThirst))

		if s.opts.Map.Ambush(dest.ID, st.Environment, s.opts.RNG) {
			enemies := catalog.Enemies()
			st.Encounter = combat.Start(enemies[s.opts.RNG.IntN(len(enemies))])
			st.Mode = world.ModePhysical
			st.system(fmt.Sprintf("Ambush! %s blocks the path.", st.Encounter.Enemy.Name))
			return true
		}
		arrived = dest.Name
		return true
	})
	if err != nil || !ok || arrived == "" {
		return ok, err
	}
	if _, err := s.SendMessage(ctx, fmt.Sprintf("I have arrived at %s. What do I see?", arrived)); err != nil {
		return true, err
	}
	return true, nil
}

// --- combat ---

func (s *Session) schedule(d time.Duration, step func()) {
	s.opts.Scheduler.After(d, step)
}

// combatStep runs a player action and defers the enemy's reply when the
// action handed over the turn
func (s *Session) combatStep(fn func(st *State) bool) (bool, error) {
	var reply bool
	ok, err := s.act(func(st *State) bool {
		if !fn(st) {
			return false
		}
		if st.Encounter.Phase == combat.PhaseEnemyTurn {
			reply = true
			s.busy = true
		}
		return true
	})
	if reply {
		s.schedule(s.opts.Delays.EnemyReply, s.enemyReply)
	}
	return ok, err
}

func (s *Session) enemyReply() {
	s.mu.Lock()
	s.busy = false
	s.state.Encounter.EnemyTurn(s.state.Character, s.opts.RNG)
	s.state.UpdatedAt = time.Now()
	s.mu.Unlock()
	s.commit()
}

func (s *Session) escape() {
	s.mu.Lock()
	s.busy = false
	if s.state.Encounter != nil {
		s.state.system(fmt.Sprintf("You escaped from %s.", s.state.Encounter.Enemy.Name))
		s.state.Encounter = nil
	}
	s.state.UpdatedAt = time.Now()
	s.mu.Unlock()
	s.commit()
}

// Attack strikes the enemy
func (s *Session) Attack() (bool, error) {
	return s.combatStep(func(st *State) bool {
		return st.Encounter.Attack(st.Character, s.opts.RNG)
	})
}

// CombatUseItem drinks a consumable mid-fight; it costs the turn
func (s *Session) CombatUseItem(itemID string) (bool, error) {
	return s.combatStep(func(st *State) bool {
		return st.Encounter.UseItem(st.Character, itemID)
	})
}

// Flee tries to escape. Both outcomes resolve after a delay.
func (s *Session) Flee() (bool, error) {
	var escaped, resolve bool
	ok, err := s.act(func(st *State) bool {
		e, ok := st.Encounter.Flee(st.Character, s.opts.RNG)
		if !ok {
			return false
		}
		escaped, resolve = e, true
		s.busy = true
		return true
	})
	if resolve {
		if escaped {
			s.schedule(s.opts.Delays.FleeResolve, s.escape)
		} else {
			s.schedule(s.opts.Delays.FleeResolve, s.enemyReply)
		}
	}
	return ok, err
}

// ClaimVictory collects the spoils and narrates the killing blow
func (s *Session) ClaimVictory(ctx context.Context) (bool, error) {
	var prompt string
	ok, err := s.act(func(st *State) bool {
		res, ok := st.Encounter.Claim(st.Character, s.opts.RNG)
		if !ok {
			return false
		}
		st.system(res.Log...)
		st.Encounter = nil
		prompt = res.Prompt
		return true
	})
	if err != nil || !ok {
		return ok, err
	}
	if _, err := s.SendMessage(ctx, prompt); err != nil {
		return true, err
	}
	return true, nil
}

// AcceptDefeat respawns the character at the bonfire
func (s *Session) AcceptDefeat() (bool, error) {
	return s.act(func(st *State) bool {
		info, ok := st.Encounter.Concede(st.Character)
		if !ok {
			return false
		}
		info.Turn = st.Environment.TurnCount
		st.Encounter = nil
		s.respawned(st, info)
		return true
	})
}

// --- inventory ---

func itemName(c *character.Character, id string) string {
	if i := c.FindItem(id); i >= 0 {
		return c.Inventory[i].Name
	}
	return id
}

// UseItem consumes an item outside combat
func (s *Session) UseItem(itemID string) (bool, error) {
	return s.outsideCombat(func(st *State) bool {
		name := itemName(st.Character, itemID)
		if !items.Use(st.Character, itemID) {
			return false
		}
		st.system("Used " + name + ".")
		return true
	})
}

// Equip wears an item from the inventory
func (s *Session) Equip(itemID string) (bool, error) {
	return s.outsideCombat(func(st *State) bool {
		name := itemName(st.Character, itemID)
		if !items.Equip(st.Character, itemID) {
			return false
		}
		st.system("Equipped " + name + ".")
		return true
	})
}

// Unequip returns a worn item to the inventory
func (s *Session) Unequip(slot character.EquipSlot) (bool, error) {
	return s.outsideCombat(func(st *State) bool {
		if !items.Unequip(st.Character, slot) {
			return false
		}
		st.system(fmt.Sprintf("Removed item from %s.", slot))
		return true
	})
}

// Drop discards a whole stack
func (s *Session) Drop(itemID string) (bool, error) {
	return s.outsideCombat(func(st *State) bool {
		name := itemName(st.Character, itemID)
		if !items.Drop(st.Character, itemID) {
			return false
		}
		st.system("Discarded " + name + ".")
		return true
	})
}

// Forge attempts an upgrade of a carried or worn item
func (s *Session) Forge(itemID string) (items.ForgeResult, error) {
	var res items.ForgeResult
	_, err := s.outsideCombat(func(st *State) bool {
		res = items.Forge(st.Character, itemID, s.opts.RNG)
		if !res.Attempted {
			return false
		}
		if res.Success {
			st.system(fmt.Sprintf("SUCCESS! Forged %s.", res.Item.Name))
		} else {
			st.system("FAILURE! The metal shatters. Materials lost.")
		}
		return true
	})
	return res, err
}

// --- trade ---

func (s *Session) trading(fn func(st *State) bool) (bool, error) {
	return s.outsideCombat(func(st *State) bool {
		loc, ok := s.opts.Map.Location(st.Character.LocationID)
		return ok && loc.AllowsTrade() && fn(st)
	})
}

// Buy purchases one unit of a shop listing
func (s *Session) Buy(itemID string) (bool, error) {
	return s.trading(func(st *State) bool {
		listing, ok := catalog.ShopItem(itemID)
		if !ok || !items.Buy(st.Character, listing) {
			return false
		}
		st.system(fmt.Sprintf("Bought %s for %d gold.", listing.Name, listing.Price))
		return true
	})
}

// Sell trades one unit of an item for half its price
func (s *Session) Sell(itemID string) (bool, error) {
	return s.trading(func(st *State) bool {
		name := itemName(st.Character, itemID)
		gold, ok := items.Sell(st.Character, itemID)
		if !ok {
			return false
		}
		st.system(fmt.Sprintf("Sold %s for %d gold.", name, gold))
		return true
	})
}

// --- progression and party ---

// LearnSkill unlocks a skill from the tree
func (s *Session) LearnSkill(skillID string) (bool, error) {
	return s.act(func(st *State) bool {
		skill, ok := catalog.Skill(skillID)
		if !ok || !progression.LearnSkill(st.Character, skill) {
			return false
		}
		st.system("Learned skill: " + skill.Name)
		return true
	})
}

// AvailableSkills lists the skills the character could learn right now
func (s *Session) AvailableSkills() []character.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progression.Available(s.state.Character, catalog.Skills())
}

// SpendStatPoint raises a base stat
func (s *Session) SpendStatPoint(key character.StatKey) (bool, error) {
	return s.act(func(st *State) bool {
		if !progression.SpendStatPoint(st.Character, key) {
			return false
		}
		st.system(fmt.Sprintf("%s increased to %d.", key, st.Character.Stats.Get(key)))
		return true
	})
}

// DismissCompanion sends a party member away
func (s *Session) DismissCompanion(companionID string) (bool, error) {
	return s.act(func(st *State) bool {
		name := companionID
		for _, p := range st.Character.Party {
			if p.ID == companionID {
				name = p.Name
			}
		}
		if !st.Character.RemoveCompanion(companionID) {
			return false
		}
		st.system(name + " leaves the party.")
		return true
	})
}

// RollDice rolls a d20 and logs the result
func (s *Session) RollDice() (int, error) {
	roll := 0
	_, err := s.act(func(st *State) bool {
		roll = s.opts.RNG.IntN(20) + 1
		st.LastRoll = roll
		st.system(fmt.Sprintf("Rolled %d.", roll))
		return true
	})
	return roll, err
}
