package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qninhdt/eclipse-rpg/server/internal/api"
	"github.com/qninhdt/eclipse-rpg/server/internal/config"
	"github.com/qninhdt/eclipse-rpg/server/internal/db"
	"github.com/qninhdt/eclipse-rpg/server/internal/game"
	mw "github.com/qninhdt/eclipse-rpg/server/internal/middleware"
	"github.com/qninhdt/eclipse-rpg/server/internal/narration"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	opts := game.Options{
		Delays: game.Delays{
			EnemyReply:  cfg.EnemyReplyDelay,
			FleeResolve: cfg.FleeResolveDelay,
		},
		NarrationTimeout: cfg.NarrationTimeout,
	}
	client := narration.NewClient(narration.ClientOptions{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.NarratorModel,
		Timeout: cfg.NarrationTimeout,
	})
	if client.Configured() {
		opts.Narrator = narration.NewAgent(client)
	} else {
		log.Printf("OPENROUTER_API_KEY not set, narration is disabled")
	}

	games := game.NewManager(database, opts)
	server := api.NewServer(games, mw.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL), api.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigin:  cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
