// Package config reads cardlab settings from the environment and builds the
// operational logger.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// Config holds settings shared by the cardlab commands. Command-line flags
// default to these values.
type Config struct {
	CardsFile     string `env:"CARDLAB_CARDS" envDefault:"cards.yaml"`
	MechanicsFile string `env:"CARDLAB_MECHANICS"` // empty = built-in catalog
	DecksFile     string `env:"CARDLAB_DECKS"`     // empty = sandbox decks
	DBPath        string `env:"CARDLAB_DB" envDefault:"cardlab.db"`
	Addr          string `env:"CARDLAB_ADDR" envDefault:":8080"`
	LogLevel      string `env:"CARDLAB_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"CARDLAB_LOG_FORMAT" envDefault:"console"`
	Seed          int64  `env:"CARDLAB_SEED" envDefault:"1"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewLogger builds a zap logger for the given level ("debug", "info",
// "warn", "error") and format ("json" or "console"). Unknown levels fall
// back to info. Output goes to stderr.
func NewLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}

// Catalogs holds the loaded card library, mechanics catalog and the two
// starting decks.
type Catalogs struct {
	Library   *cards.Library
	Mechanics mechanics.Catalog
	Decks     [2][]string
}

// LoadCatalogs reads the card library, the mechanics catalog and the decks.
// deck0 and deck1 are 1-based deck numbers in the deck file; they are
// ignored when no deck file is configured, and the sandbox decks are used.
func LoadCatalogs(cardsFile, mechanicsFile, decksFile string, deck0, deck1 int) (*Catalogs, error) {
	lib, err := cards.LoadLibrary(cardsFile)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	cat, err := mechanics.LoadFile(mechanicsFile)
	if err != nil {
		return nil, fmt.Errorf("load mechanics: %w", err)
	}

	c := &Catalogs{Library: lib, Mechanics: cat}
	if decksFile == "" {
		c.Decks[0], c.Decks[1] = cards.SandboxDecks(lib)
		return c, nil
	}
	for i, n := range []int{deck0, deck1} {
		_, ids, err := cards.DeckByNumber(decksFile, n, lib)
		if err != nil {
			return nil, fmt.Errorf("load deck for P%d: %w", i+1, err)
		}
		c.Decks[i] = ids
	}
	return c, nil
}
