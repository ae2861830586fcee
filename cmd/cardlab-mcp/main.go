package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cardlab/internal/config"
	"github.com/peterkuimelis/cardlab/internal/game"
	cardlabmcp "github.com/peterkuimelis/cardlab/internal/mcp"
	"github.com/peterkuimelis/cardlab/internal/session"
	"github.com/peterkuimelis/cardlab/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cardsFile := flag.String("cards", cfg.CardsFile, "path to card catalog YAML")
	mechanicsFile := flag.String("mechanics", cfg.MechanicsFile, "path to mechanics catalog YAML (empty = built-in)")
	decksFile := flag.String("decks", cfg.DecksFile, "path to decks YAML (empty = sandbox decks)")
	deck := flag.Int("deck", 1, "agent deck number (from the decks file)")
	oppDeck := flag.Int("opp-deck", 2, "opponent deck number (from the decks file)")
	dbPath := flag.String("db", cfg.DBPath, "scenario database (empty = no scenarios)")
	flag.Parse()

	// stdout carries the protocol; the logger writes to stderr.
	logger, err := config.NewLogger(cfg.LogLevel, "json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cats, err := config.LoadCatalogs(*cardsFile, *mechanicsFile, *decksFile, *deck, *oppDeck)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := game.NewEngine(game.EngineConfig{
		Catalog: cats.Mechanics,
		Library: cats.Library,
		Logger:  logger,
	})
	sess := session.New(session.Config{
		Engine: engine,
		Decks:  cats.Decks,
		Seed:   cfg.Seed,
		Logger: logger,
	})

	var scenarios cardlabmcp.Scenarios
	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		scenarios = st
	}

	s := server.NewMCPServer("cardlab", "1.0.0")
	cardlabmcp.NewServer(sess, scenarios, 0, logger).Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
