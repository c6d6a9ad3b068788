package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/game"
	mw "github.com/qninhdt/eclipse-rpg/server/internal/middleware"
	"github.com/qninhdt/eclipse-rpg/server/internal/validation"
)

// loadSession resolves the {id} parameter to a session the caller owns
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}

	userID := mw.UserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user ID")
		return nil, false
	}

	sess, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	if sess.Owner != userID {
		writeError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return sess, true
}

// respond writes the outcome of an action with the state that follows it
func respond(w http.ResponseWriter, sess *game.Session, applied bool, err error) {
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ActionResult{Applied: applied, State: sess.Snapshot()},
	})
}

// simple wraps an action that takes no input
func (s *Server) simple(w http.ResponseWriter, r *http.Request, action func(*game.Session) (bool, error)) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	applied, err := action(sess)
	respond(w, sess, applied, err)
}

type idRequest struct {
	ID string `json:"id"`
}

// withID wraps an action that names one thing by id
func (s *Server) withID(w http.ResponseWriter, r *http.Request, check func(string) error, action func(*game.Session, string) (bool, error)) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req idRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := check(req.ID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied, err := action(sess, req.ID)
	respond(w, sess, applied, err)
}

// createSession creates a character and opens its story
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req game.CreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidatePlayerName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.games.Create(r.Context(), mw.UserID(r.Context()), req)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if _, err := sess.Intro(detach(r.Context())); err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data: map[string]interface{}{
			"id":    sess.ID,
			"state": sess.Snapshot(),
		},
	})
}

// listSessions lists the caller's saves
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	saves, err := s.games.List(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: saves})
}

// getSession returns the full state
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"id":    sess.ID,
			"busy":  sess.Busy(),
			"state": sess.Snapshot(),
		},
	})
}

// deleteSession clears a save
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := s.games.Delete(r.Context(), sess.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: "Session deleted"})
}

// getSheet returns effective stats and derived values
func (s *Server) getSheet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: sess.Sheet()})
}

// saveSession forces a save
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := s.games.Save(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: "Session saved"})
}

// sendMessage plays one story turn
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateMessage(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied, err := sess.SendMessage(detach(r.Context()), req.Text)
	respond(w, sess, applied, err)
}

func (s *Server) travel(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateCatalogID, func(sess *game.Session, id string) (bool, error) {
		return sess.Travel(detach(r.Context()), id)
	})
}

func (s *Server) talk(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateCatalogID, func(sess *game.Session, id string) (bool, error) {
		return sess.TalkTo(detach(r.Context()), id)
	})
}

// rollDice rolls a d20
func (s *Server) rollDice(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	roll, err := sess.RollDice()
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"roll":  roll,
			"state": sess.Snapshot(),
		},
	})
}

func (s *Server) attack(w http.ResponseWriter, r *http.Request) {
	s.simple(w, r, (*game.Session).Attack)
}

func (s *Server) flee(w http.ResponseWriter, r *http.Request) {
	s.simple(w, r, (*game.Session).Flee)
}

func (s *Server) combatItem(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateItemID, (*game.Session).CombatUseItem)
}

func (s *Server) claimVictory(w http.ResponseWriter, r *http.Request) {
	s.simple(w, r, func(sess *game.Session) (bool, error) {
		return sess.ClaimVictory(detach(r.Context()))
	})
}

func (s *Server) acceptDefeat(w http.ResponseWriter, r *http.Request) {
	s.simple(w, r, (*game.Session).AcceptDefeat)
}

func (s *Server) useItem(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateItemID, (*game.Session).UseItem)
}

func (s *Server) equip(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateItemID, (*game.Session).Equip)
}

// unequip empties a slot; the id field carries the slot name
func (s *Server) unequip(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateSlot, func(sess *game.Session, slot string) (bool, error) {
		return sess.Unequip(character.EquipSlot(slot))
	})
}

// dropItem discards a whole stack and needs an explicit confirmation
func (s *Server) dropItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req struct {
		ID      string `json:"id"`
		Confirm bool   `json:"confirm"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateItemID(req.ID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "Dropping an item must be confirmed")
		return
	}
	applied, err := sess.Drop(req.ID)
	respond(w, sess, applied, err)
}

// forge upgrades a weapon or armor piece and reports the roll
func (s *Server) forge(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var req idRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateItemID(req.ID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := sess.Forge(req.ID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"forge": res,
			"state": sess.Snapshot(),
		},
	})
}

func (s *Server) buy(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateItemID, (*game.Session).Buy)
}

func (s *Server) sell(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateItemID, (*game.Session).Sell)
}

// getSkills lists learnable skills
func (s *Server) getSkills(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: sess.AvailableSkills()})
}

func (s *Server) learnSkill(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateCatalogID, (*game.Session).LearnSkill)
}

// spendStat raises one attribute; the id field carries the stat key
func (s *Server) spendStat(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateStatKey, func(sess *game.Session, key string) (bool, error) {
		return sess.SpendStatPoint(character.StatKey(key))
	})
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	s.withID(w, r, validation.ValidateCatalogID, (*game.Session).DismissCompanion)
}

// detach keeps request values but drops cancellation; narration outlives a
// closed connection
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
