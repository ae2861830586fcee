package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/log"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// unitCard creates a unit template.
func unitCard(id string, cost, atk, hp int, rules string) *cards.Card {
	return &cards.Card{
		ID:    id,
		Name:  id,
		Cost:  cost,
		Atk:   cards.Stat(atk),
		HP:    cards.Stat(hp),
		Type:  cards.TypeUnit,
		Rules: rules,
	}
}

// spellCard creates a spell template.
func spellCard(id string, cost int, rules string) *cards.Card {
	return &cards.Card{ID: id, Name: id, Cost: cost, Type: cards.TypeSpell, Rules: rules}
}

// makeDeck returns n copies of id.
func makeDeck(id string, n int) []string {
	deck := make([]string, n)
	for i := range deck {
		deck[i] = id
	}
	return deck
}

// newTestEngine builds an engine with sequential instance ids and a fixed
// clock.
func newTestEngine(t *testing.T, cat mechanics.Catalog, cs ...*cards.Card) *Engine {
	t.Helper()
	n := 0
	return NewEngine(EngineConfig{
		Catalog: cat,
		Library: cards.NewLibrary(cs...),
		Logger:  zaptest.NewLogger(t),
		Clock:   func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("inst-%d", n)
		},
	})
}

// dispatch applies a and fails the test on rejection.
func dispatch(t *testing.T, e *Engine, m *Match, a Action) *Match {
	t.Helper()
	next, err := e.Dispatch(m, a)
	require.NoError(t, err, "action %s", a)
	return next
}

// advanceTo advances phases until the match reaches phase for owner.
func advanceTo(t *testing.T, e *Engine, m *Match, owner int, phase Phase) *Match {
	t.Helper()
	for i := 0; i < 20; i++ {
		if m.TurnOwner == owner && m.Phase == phase {
			return m
		}
		m = dispatch(t, e, m, AdvancePhase())
	}
	t.Fatalf("never reached %s for P%d", phase, owner+1)
	return nil
}

// entriesOfType filters the match log.
func entriesOfType(m *Match, typ log.EventType) []log.Entry {
	var out []log.Entry
	for _, entry := range m.Log {
		if entry.Type == typ {
			out = append(out, entry)
		}
	}
	return out
}

// noMill is the default catalog with mill disabled, so short test decks can
// run dry.
func noMill() mechanics.Catalog {
	return mechanics.Default().WithEnabled(mechanics.MillID, false)
}
