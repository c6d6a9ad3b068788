package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/qninhdt/eclipse-rpg/server/internal/catalog"
	"github.com/qninhdt/eclipse-rpg/server/internal/character"
	"github.com/qninhdt/eclipse-rpg/server/internal/game"
	mw "github.com/qninhdt/eclipse-rpg/server/internal/middleware"
	"github.com/qninhdt/eclipse-rpg/server/internal/validation"
	"github.com/qninhdt/eclipse-rpg/server/internal/world"
)

// Options holds the HTTP-facing settings
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	AllowedOrigin  string
}

// Server handles HTTP requests
type Server struct {
	router      chi.Router
	games       *game.Manager
	auth        *mw.Authenticator
	rateLimiter *mw.RateLimiter
	locations   []world.Location
	opts        Options
}

// NewServer creates a new API server
func NewServer(games *game.Manager, auth *mw.Authenticator, opts Options) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 100
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 10
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1024 * 1024
	}

	s := &Server{
		router:      chi.NewRouter(),
		games:       games,
		auth:        auth,
		rateLimiter: mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		opts:        opts,
	}
	if m, err := catalog.WorldMap(); err != nil {
		log.Printf("Failed to build world map: %v", err)
	} else {
		s.locations = m.Locations()
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))
	if s.opts.AllowedOrigin != "" {
		s.router.Use(mw.CORSMiddleware(s.opts.AllowedOrigin))
	}
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(mw.SecurityHeadersMiddleware)
	s.router.Use(mw.MaxBodySizeMiddleware(s.opts.MaxBodyBytes))

	// Public endpoints
	s.router.Post("/api/token", s.issueToken)
	s.router.Get("/api/catalog", s.getCatalog)

	// Protected endpoints
	s.router.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Post("/api/sessions", s.createSession)
		r.Get("/api/sessions", s.listSessions)

		r.Route("/api/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Get("/sheet", s.getSheet)
			r.Post("/save", s.saveSession)

			r.Post("/message", s.sendMessage)
			r.Post("/travel", s.travel)
			r.Post("/talk", s.talk)
			r.Post("/dice", s.rollDice)

			r.Post("/combat/attack", s.attack)
			r.Post("/combat/flee", s.flee)
			r.Post("/combat/item", s.combatItem)
			r.Post("/combat/victory", s.claimVictory)
			r.Post("/combat/defeat", s.acceptDefeat)

			r.Post("/items/use", s.useItem)
			r.Post("/items/equip", s.equip)
			r.Post("/items/unequip", s.unequip)
			r.Post("/items/drop", s.dropItem)
			r.Post("/items/forge", s.forge)
			r.Post("/items/buy", s.buy)
			r.Post("/items/sell", s.sell)

			r.Get("/skills", s.getSkills)
			r.Post("/skills/learn", s.learnSkill)
			r.Post("/stats/spend", s.spendStat)
			r.Post("/party/dismiss", s.dismiss)
		})
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response wraps API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ActionResult is returned by every game action
type ActionResult struct {
	Applied bool        `json:"applied"`
	State   *game.State `json:"state"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (sanitized)
func writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		message = "Internal server error"
	}
	writeJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// writeGameError maps engine errors to status codes
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrBusy):
		writeError(w, http.StatusConflict, "Session is busy")
	case errors.Is(err, game.ErrNoSession):
		writeError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, character.ErrInvalidCreation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody reads a JSON request body
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// issueToken signs a token for a player name under a fresh player id. Passing
// a player id renews it and needs a valid bearer token for that same id.
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		PlayerID string `json:"playerId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidatePlayerName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	playerID := req.PlayerID
	if playerID == "" {
		playerID = uuid.NewString()
	} else if _, err := uuid.Parse(playerID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player ID")
		return
	} else if s.bearerSubject(r) != playerID {
		writeError(w, http.StatusUnauthorized, "Renewing a player ID needs its current token")
		return
	}

	token, expires, err := s.auth.Issue(playerID, strings.TrimSpace(req.Name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"token":     token,
			"playerId":  playerID,
			"expiresAt": expires.UTC().Format(time.RFC3339),
		},
	})
}

// bearerSubject returns the player id of the request's bearer token, empty
// when the token is missing or invalid
func (s *Server) bearerSubject(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	id, err := s.auth.Verify(strings.TrimSpace(token))
	if err != nil {
		return ""
	}
	return id
}

// getCatalog returns the static game data a client needs for character creation and shopping
func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"classes":   catalog.Classes(),
			"traits":    catalog.Traits(),
			"skills":    catalog.Skills(),
			"shop":      catalog.ShopStock(),
			"locations": s.locations,
		},
	})
}
