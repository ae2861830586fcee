package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cards.yaml", cfg.CardsFile)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Empty(t, cfg.DecksFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CARDLAB_ADDR", "127.0.0.1:9000")
	t.Setenv("CARDLAB_SEED", "42")
	t.Setenv("CARDLAB_DECKS", "decks.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "decks.yaml", cfg.DecksFile)
}

func TestLoadError(t *testing.T) {
	t.Setenv("CARDLAB_SEED", "lots")
	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")
}

func TestNewLogger(t *testing.T) {
	for _, tc := range []struct{ level, format string }{
		{"debug", "json"},
		{"warn", "console"},
		{"bogus", ""},
	} {
		logger, err := NewLogger(tc.level, tc.format)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	logger, err := NewLogger("error", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1), "debug is off at error level")
}

const cardsYAML = `
cards:
  - id: grunt
    name: Grunt
    cost: 1
    atk: 1
    hp: 1
    type: Unit
  - id: bolt
    name: Bolt
    cost: 1
    type: Spell
    rules: "OnPlay: Deal 2 damage"
`

const decksYAML = `
decks:
  - name: Rush
    cards:
      - id: grunt
        count: 4
  - name: Burn
    cards:
      - id: bolt
        count: 2
      - id: grunt
        count: 1
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadCatalogs(t *testing.T) {
	dir := t.TempDir()
	cardsFile := writeFile(t, dir, "cards.yaml", cardsYAML)
	decksFile := writeFile(t, dir, "decks.yaml", decksYAML)

	t.Run("sandbox decks", func(t *testing.T) {
		c, err := LoadCatalogs(cardsFile, "", "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Library.Len())
		assert.Equal(t, []string{"bolt", "grunt"}, c.Decks[0])
		assert.Equal(t, []string{"grunt", "bolt"}, c.Decks[1])
		assert.True(t, c.Mechanics.MillEnabled())
	})

	t.Run("deck file", func(t *testing.T) {
		c, err := LoadCatalogs(cardsFile, "", decksFile, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"bolt", "bolt", "grunt"}, c.Decks[0])
		assert.Equal(t, []string{"grunt", "grunt", "grunt", "grunt"}, c.Decks[1])
	})

	t.Run("missing deck", func(t *testing.T) {
		_, err := LoadCatalogs(cardsFile, "", decksFile, 3, 1)
		assert.ErrorContains(t, err, "load deck for P1")
	})

	t.Run("missing cards", func(t *testing.T) {
		_, err := LoadCatalogs(filepath.Join(dir, "nope.yaml"), "", "", 0, 0)
		assert.ErrorContains(t, err, "load cards")
	})
}
