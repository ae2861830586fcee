package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/peterkuimelis/cardlab/internal/config"
	"github.com/peterkuimelis/cardlab/internal/console"
	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/game"
	"github.com/peterkuimelis/cardlab/internal/session"
	"github.com/peterkuimelis/cardlab/internal/store"
	"github.com/peterkuimelis/cardlab/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		err = runPlay(cfg, os.Args[2:])
	case "rules":
		err = runRules(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  cardlab play [--cards FILE] [--mechanics FILE] [--decks FILE] [--deck N] [--opp-deck N] [--ai greedy|random] [--db FILE]")
	fmt.Println("  cardlab rules [FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a match against the scripted opponent")
	fmt.Println("  rules   Parse rule text (FILE or stdin) and print the effects as JSON")
}

func runPlay(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	cardsFile := fs.String("cards", cfg.CardsFile, "path to card catalog YAML")
	mechanicsFile := fs.String("mechanics", cfg.MechanicsFile, "path to mechanics catalog YAML (empty = built-in)")
	decksFile := fs.String("decks", cfg.DecksFile, "path to decks YAML (empty = sandbox decks)")
	deck := fs.Int("deck", 1, "your deck number (from the decks file)")
	oppDeck := fs.Int("opp-deck", 2, "opponent deck number (from the decks file)")
	ai := fs.String("ai", "greedy", "opponent policy: greedy or random")
	dbPath := fs.String("db", cfg.DBPath, "scenario database (empty = no scenarios)")
	seed := fs.Int64("seed", cfg.Seed, "seed for the random opponent")
	fs.Parse(args)

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	cats, err := config.LoadCatalogs(*cardsFile, *mechanicsFile, *decksFile, *deck, *oppDeck)
	if err != nil {
		return err
	}
	mode, err := game.ParseAIMode(*ai)
	if err != nil || mode == game.AINone {
		return fmt.Errorf("--ai must be greedy or random")
	}

	engine := game.NewEngine(game.EngineConfig{
		Catalog: cats.Mechanics,
		Library: cats.Library,
		Logger:  logger,
	})
	sess := session.New(session.Config{
		Engine:      engine,
		Decks:       cats.Decks,
		Seed:        *seed,
		Logger:      logger,
		Controllers: [2]game.Controller{nil, game.NewBot(mode, cats.Library, *seed)},
	})

	repl := &console.REPL{Session: sess, In: os.Stdin, Out: os.Stdout}
	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		repl.Scenarios = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return repl.Run(ctx)
}

func runRules(args []string) error {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	fs.Parse(args)

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(view.Effects(dsl.Parse(string(text))))
}
