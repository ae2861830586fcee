package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/cardlab/internal/log"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// TestTauntScenario: a Taunt unit enters exhausted, and while it stands the
// opponent cannot attack anything else.
func TestTauntScenario(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(),
		unitCard("guard", 0, 0, 3, "Keyword: Taunt"),
		unitCard("raider", 0, 2, 1, "Keyword: Rush"),
	)
	m := e.NewMatch(makeDeck("guard", 6), makeDeck("raider", 6))

	m = advanceTo(t, e, m, 0, PhaseMain)
	m = dispatch(t, e, m, PlayCard(0, "guard", ""))
	guard := m.Players[0].Board[0]
	assert.Equal(t, []string{"Taunt"}, guard.Keywords)
	assert.True(t, guard.Exhausted, "Taunt alone does not grant Rush")

	m = advanceTo(t, e, m, 1, PhaseMain)
	m = dispatch(t, e, m, PlayCard(0, "raider", ""))
	raider := m.Players[1].Board[0]
	assert.False(t, raider.Exhausted, "Rush units can attack at once")
	m = dispatch(t, e, m, AdvancePhase())
	require.Equal(t, PhaseCombat, m.Phase)

	blocked, err := e.Dispatch(m, Attack(raider.InstanceID, "p1"))
	require.ErrorIs(t, err, ErrTaunt)
	assert.NotSame(t, m, blocked)
	assert.Equal(t, m.Players, blocked.Players)
	assert.Equal(t, len(m.History), len(blocked.History), "no history push")
	require.Len(t, blocked.Log, len(m.Log)+1)
	violation := blocked.Log[len(blocked.Log)-1]
	assert.Equal(t, log.EventRuleViolation, violation.Type)
	assert.Equal(t, log.KindRule, violation.Kind())
	assert.Equal(t, "Combat Blocked: Must attack Taunt!", violation.Message)
	assert.Len(t, m.Log, len(blocked.Log)-1, "input log untouched")

	m = dispatch(t, e, blocked, Attack(raider.InstanceID, guard.InstanceID))
	assert.Equal(t, 1, m.Players[0].Board[0].HP)
	assert.Equal(t, 1, m.Players[1].Board[0].HP, "guard has no attack")
	assert.Equal(t, 30, m.Players[0].Health)
}

// combatMatch returns a match in P1's Combat phase with the given units
// placed on each board.
func combatMatch(t *testing.T, e *Engine, mine, theirs []Unit) *Match {
	t.Helper()
	m := e.NewMatch(makeDeck("filler", 10), makeDeck("filler", 10))
	m = advanceTo(t, e, m, 0, PhaseCombat).Clone()
	m.Players[0].Board = append(m.Players[0].Board, mine...)
	m.Players[1].Board = append(m.Players[1].Board, theirs...)
	return m
}

func TestAttackExchange(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(),
		unitCard("filler", 9, 0, 1, ""),
		unitCard("brute", 3, 3, 3, ""),
		unitCard("wisp", 1, 1, 1, "OnDeath: Draw 1 card"),
	)
	m := combatMatch(t, e,
		[]Unit{{InstanceID: "b1", CardID: "brute", Atk: 3, HP: 3}},
		[]Unit{{InstanceID: "w1", CardID: "wisp", Atk: 1, HP: 1}},
	)
	hand := len(m.Players[1].Hand)

	m = dispatch(t, e, m, Attack("b1", "w1"))
	assert.Empty(t, m.Players[1].Board)
	assert.Equal(t, []string{"wisp"}, m.Players[1].Graveyard)
	assert.Len(t, m.Players[1].Hand, hand+1, "OnDeath draw goes to the dead unit's owner")
	require.Len(t, m.Players[0].Board, 1)
	assert.Equal(t, 2, m.Players[0].Board[0].HP)
	assert.True(t, m.Players[0].Board[0].Exhausted)
	assert.Len(t, entriesOfType(m, log.EventDestroy), 1)
	assert.Len(t, entriesOfType(m, log.EventTrigger), 1)
}

func TestAttackMutualDestruction(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(), unitCard("filler", 9, 0, 1, ""))
	m := combatMatch(t, e,
		[]Unit{{InstanceID: "a", CardID: "filler", Atk: 2, HP: 2}},
		[]Unit{{InstanceID: "b", CardID: "filler", Atk: 2, HP: 2}},
	)
	m = dispatch(t, e, m, Attack("a", "b"))
	assert.Empty(t, m.Players[0].Board)
	assert.Empty(t, m.Players[1].Board)
	assert.Equal(t, []string{"filler"}, m.Players[0].Graveyard)
	assert.Equal(t, []string{"filler"}, m.Players[1].Graveyard)
}

func TestLifesteal(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(), unitCard("filler", 9, 0, 1, ""))
	leech := Unit{InstanceID: "l1", CardID: "filler", Atk: 3, HP: 3, Keywords: []string{"lifesteal"}}

	t.Run("heals by damage dealt", func(t *testing.T) {
		m := combatMatch(t, e, []Unit{leech}, nil)
		m.Players[0].Health = 25
		m = dispatch(t, e, m, Attack("l1", "p2"))
		assert.Equal(t, 27, m.Players[1].Health)
		assert.Equal(t, 28, m.Players[0].Health)
		assert.Len(t, entriesOfType(m, log.EventHeal), 1)
	})

	t.Run("capped at max health", func(t *testing.T) {
		m := combatMatch(t, e, []Unit{leech}, nil)
		m.Players[0].Health = 29
		m = dispatch(t, e, m, Attack("l1", "p2"))
		assert.Equal(t, 30, m.Players[0].Health)
	})

	t.Run("unit target", func(t *testing.T) {
		m := combatMatch(t, e, []Unit{leech}, []Unit{{InstanceID: "x", CardID: "filler", Atk: 0, HP: 5}})
		m.Players[0].Health = 20
		m = dispatch(t, e, m, Attack("l1", "x"))
		assert.Equal(t, 23, m.Players[0].Health)
		assert.Equal(t, 2, m.Players[1].Board[0].HP)
	})
}

func TestAttackRejections(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(), unitCard("filler", 9, 0, 1, ""))
	m := combatMatch(t, e,
		[]Unit{
			{InstanceID: "ready", CardID: "filler", Atk: 1, HP: 1},
			{InstanceID: "tired", CardID: "filler", Atk: 1, HP: 1, Exhausted: true},
		},
		[]Unit{{InstanceID: "foe", CardID: "filler", Atk: 1, HP: 1}},
	)

	tests := []struct {
		name   string
		action Action
		err    error
	}{
		{"missing attacker", Attack("ghost", "p2"), ErrNoSuchUnit},
		{"enemy unit as attacker", Attack("foe", "p2"), ErrNoSuchUnit},
		{"exhausted attacker", Attack("tired", "p2"), ErrExhausted},
		{"unknown target", Attack("ready", "nowhere"), ErrNoSuchTarget},
		{"own unit as target", Attack("ready", "tired"), ErrNoSuchTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Dispatch(m, tt.action)
			assert.ErrorIs(t, err, tt.err)
			assert.Same(t, m, got)
		})
	}
}

func TestLethalAttack(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(), unitCard("filler", 9, 0, 1, ""))
	m := combatMatch(t, e, []Unit{{InstanceID: "a", CardID: "filler", Atk: 5, HP: 1}}, nil)
	m.Players[1].Health = 5
	m = dispatch(t, e, m, Attack("a", "p2"))
	require.True(t, m.Victory.Decided())
	assert.Equal(t, 0, *m.Victory.Winner)
	assert.Equal(t, "Health Depleted", m.Victory.Reason)
}
