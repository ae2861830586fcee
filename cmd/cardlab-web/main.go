package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/config"
	"github.com/peterkuimelis/cardlab/internal/game"
	"github.com/peterkuimelis/cardlab/internal/session"
	"github.com/peterkuimelis/cardlab/internal/store"
	"github.com/peterkuimelis/cardlab/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP address to listen on")
	cardsFile := flag.String("cards", cfg.CardsFile, "path to card catalog YAML")
	mechanicsFile := flag.String("mechanics", cfg.MechanicsFile, "path to mechanics catalog YAML (empty = built-in)")
	decksFile := flag.String("decks", cfg.DecksFile, "path to decks YAML (empty = sandbox decks)")
	deck := flag.Int("deck", 1, "player deck number (from the decks file)")
	oppDeck := flag.Int("opp-deck", 2, "opponent deck number (from the decks file)")
	dbPath := flag.String("db", cfg.DBPath, "scenario database (empty = no scenarios)")
	flag.Parse()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cats, err := config.LoadCatalogs(*cardsFile, *mechanicsFile, *decksFile, *deck, *oppDeck)
	if err != nil {
		logger.Fatal("load catalogs", zap.Error(err))
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

	wcfg := web.Config{
		Session:   sess,
		Mechanics: cats.Mechanics,
		DecksFile: *decksFile,
		Logger:    logger,
	}
	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			logger.Fatal("open scenario store", zap.Error(err))
		}
		defer st.Close()
		wcfg.Scenarios = st
	}

	srv := web.NewServer(wcfg)
	logger.Info("cardlab web API listening",
		zap.String("addr", *addr),
		zap.Int("cards", cats.Library.Len()),
	)
	if err := srv.ListenAndServe(*addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
