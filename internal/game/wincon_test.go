package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

func TestCheckWin(t *testing.T) {
	all := mechanics.Default()
	for _, id := range []string{mechanics.ScoreID, mechanics.UnitControlID, mechanics.TimeLimitID, mechanics.CountersID} {
		all = all.WithEnabled(id, true)
	}
	e := newTestEngine(t, mechanics.Default())
	base := e.NewMatch(makeDeck("x", 5), makeDeck("x", 5))

	units := func(n int) []Unit {
		out := make([]Unit, n)
		for i := range out {
			out[i] = Unit{InstanceID: string(rune('a' + i)), CardID: "x", Atk: 1, HP: 1}
		}
		return out
	}

	tests := []struct {
		name   string
		cat    mechanics.Catalog
		edit   func(m *Match)
		ok     bool
		winner int
		reason string
	}{
		{"nothing", all, func(m *Match) {}, false, 0, ""},
		{"health", mechanics.Default(), func(m *Match) { m.Players[0].Health = 0 }, true, 1, "Health Depleted"},
		{"health before score", all, func(m *Match) {
			m.Players[1].Health = -3
			m.Players[1].Scores["lore"] = 50
		}, true, 0, "Health Depleted"},
		{"player order", all, func(m *Match) {
			m.Players[0].Scores["lore"] = 20
			m.Players[1].Health = 0
		}, true, 0, "Reached 20 lore"},
		{"score disabled", mechanics.Default(), func(m *Match) { m.Players[1].Scores["lore"] = 99 }, false, 0, ""},
		{"score", all, func(m *Match) { m.Players[1].Scores["lore"] = 20 }, true, 1, "Reached 20 lore"},
		{"score custom type", all.WithParams(mechanics.ScoreID, map[string]any{"scoreType": "gold", "target": 5}), func(m *Match) {
			m.Players[1].Scores["gold"] = 5
		}, true, 1, "Reached 5 gold"},
		{"units", all, func(m *Match) { m.Players[1].Board = units(7) }, true, 1, "Swarm Control (7 Units)"},
		{"units below count", all, func(m *Match) { m.Players[1].Board = units(6) }, false, 0, ""},
		{"time before cap", all, func(m *Match) { m.Turn = 9 }, false, 0, ""},
		{"time healthier wins", all, func(m *Match) {
			m.Turn = 10
			m.Players[0].Health = 10
		}, true, 1, "Time Limit (Turn Cap)"},
		{"time tie favors player 0", all, func(m *Match) { m.Turn = 10 }, true, 0, "Time Limit (Turn Cap)"},
		{"counters", all, func(m *Match) { m.Players[0].Counters["poison"] = 10 }, true, 1, "Excessive poison counters"},
		{"counters missing key", all.WithParams(mechanics.CountersID, map[string]any{"counter": "rot"}), func(m *Match) {
			m.Players[0].Counters["poison"] = 10
		}, false, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base.Clone()
			tt.edit(m)
			winner, reason, ok := CheckWin(m, tt.cat)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.winner, winner)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestEvaluate(t *testing.T) {
	e := newTestEngine(t, mechanics.Default())
	m := e.NewMatch(nil, nil)

	assert.Same(t, m, e.Evaluate(m), "nothing to declare")

	hurt := m.Clone()
	hurt.Players[1].Health = 0
	got := e.Evaluate(hurt)
	assert.NotSame(t, hurt, got)
	assert.False(t, hurt.Victory.Decided(), "input untouched")
	if assert.True(t, got.Victory.Decided()) {
		assert.Equal(t, 0, *got.Victory.Winner)
	}
	assert.Same(t, got, e.Evaluate(got), "already decided")
}
