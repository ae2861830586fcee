package game

import (
	"fmt"

	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// CheckWin scans the match against the catalog's win conditions. Players are
// checked in index order and, per player, in a fixed priority: health,
// score, unit control, time limit, counters. The first satisfied condition
// decides. Mill is not checked here; it is decided when a draw fails.
func CheckWin(m *Match, cat mechanics.Catalog) (winner int, reason string, ok bool) {
	score, scoreOn := cat.Score()
	units, unitsOn := cat.UnitCount()
	turnCap, timeOn := cat.TurnCap()
	counters, countersOn := cat.Counters()

	for i := range m.Players {
		p := &m.Players[i]
		opp := m.Opponent(i)

		if p.Health <= 0 {
			return opp, "Health Depleted", true
		}
		if scoreOn && p.Scores[score.Type] >= score.Target {
			return i, fmt.Sprintf("Reached %d %s", score.Target, score.Type), true
		}
		if unitsOn && len(p.Board) >= units {
			return i, fmt.Sprintf("Swarm Control (%d Units)", len(p.Board)), true
		}
		if timeOn && m.Turn >= turnCap {
			w := 0
			if m.Players[1].Health > m.Players[0].Health {
				w = 1
			}
			return w, "Time Limit (Turn Cap)", true
		}
		if countersOn && p.Counters[counters.Counter] >= counters.Threshold {
			return opp, fmt.Sprintf("Excessive %s counters", counters.Counter), true
		}
	}
	return 0, "", false
}

// Evaluate returns m with the victory status set when a win condition holds.
// m is returned as is when the match is already decided or nothing holds;
// otherwise the result is a copy.
func (e *Engine) Evaluate(m *Match) *Match {
	if m.Victory.Decided() {
		return m
	}
	if _, _, ok := CheckWin(m, e.Catalog); !ok {
		return m
	}
	next := m.Clone()
	e.evaluate(next)
	return next
}

// evaluate declares the winner on m in place.
func (e *Engine) evaluate(m *Match) {
	if m.Victory.Decided() {
		return
	}
	if w, reason, ok := CheckWin(m, e.Catalog); ok {
		e.declare(m, w, reason)
	}
}
