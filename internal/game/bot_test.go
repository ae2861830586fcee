package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

func TestLegalActions(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(),
		unitCard("grunt", 1, 1, 1, ""),
		unitCard("giant", 7, 7, 7, ""),
		spellCard("bolt", 1, "OnPlay: Deal 1 damage"),
	)
	m := e.NewMatch([]string{"grunt", "giant", "bolt", "grunt"}, makeDeck("grunt", 6))

	t.Run("setup", func(t *testing.T) {
		actions := e.LegalActions(m)
		require.Len(t, actions, 1)
		assert.Equal(t, ActionAdvancePhase, actions[0].Type)
	})

	t.Run("main", func(t *testing.T) {
		m := advanceTo(t, e, m, 0, PhaseMain).Clone()
		m.Players[1].Board = []Unit{{InstanceID: "foe", CardID: "grunt", Atk: 1, HP: 1}}
		actions := e.LegalActions(m)
		var plays []Action
		for _, a := range actions {
			if a.Type == ActionPlayCard {
				plays = append(plays, a)
			}
		}
		// grunt at 0 and 3, bolt at 2 against face and the enemy unit
		require.Len(t, plays, 4)
		assert.Equal(t, PlayCard(0, "grunt", ""), stripDesc(plays[0]))
		assert.Equal(t, PlayCard(2, "bolt", "p2"), stripDesc(plays[1]))
		assert.Equal(t, PlayCard(2, "bolt", "foe"), stripDesc(plays[2]))
		assert.Equal(t, PlayCard(3, "grunt", ""), stripDesc(plays[3]))
		assert.Equal(t, ActionAdvancePhase, actions[len(actions)-1].Type)

		for _, a := range actions {
			_, err := e.Dispatch(m, a)
			assert.NoError(t, err, "%s", a)
		}
	})

	t.Run("combat respects taunt", func(t *testing.T) {
		m := advanceTo(t, e, m, 0, PhaseCombat).Clone()
		m.Players[0].Board = []Unit{
			{InstanceID: "a", CardID: "grunt", Atk: 1, HP: 1},
			{InstanceID: "b", CardID: "grunt", Atk: 1, HP: 1, Exhausted: true},
		}
		m.Players[1].Board = []Unit{
			{InstanceID: "t", CardID: "grunt", Atk: 1, HP: 1, Keywords: []string{"Taunt"}},
			{InstanceID: "n", CardID: "grunt", Atk: 1, HP: 1},
		}
		actions := e.LegalActions(m)
		require.Len(t, actions, 2)
		assert.Equal(t, Attack("a", "t"), stripDesc(actions[0]))
		assert.Equal(t, ActionAdvancePhase, actions[1].Type)
	})

	t.Run("auction", func(t *testing.T) {
		ae := newTestEngine(t, mechanics.Default().WithEnabled(mechanics.AuctionPhaseID, true), unitCard("grunt", 1, 1, 1, ""))
		am := ae.NewMatch(makeDeck("grunt", 6), makeDeck("grunt", 6))
		am = advanceTo(t, ae, am, 0, PhaseAuction)
		actions := ae.LegalActions(am)
		require.Len(t, actions, 2)
		assert.Equal(t, ActionBid, actions[0].Type)
		assert.Equal(t, 1, actions[0].Amount)
	})
}

func stripDesc(a Action) Action {
	a.Desc = ""
	return a
}

func TestGreedyBot(t *testing.T) {
	e := newTestEngine(t, mechanics.Default(),
		unitCard("grunt", 1, 1, 1, ""),
		unitCard("ogre", 2, 3, 3, ""),
	)
	bot := NewBot(AIGreedy, e.Library, 0)
	ctx := context.Background()

	t.Run("plays the priciest affordable card", func(t *testing.T) {
		m := e.NewMatch([]string{"grunt", "ogre", "grunt", "grunt"}, makeDeck("grunt", 6))
		m = advanceTo(t, e, m, 0, PhaseMain).Clone()
		m.Players[0].Mana = 2
		a, err := bot.ChooseAction(ctx, m, e.LegalActions(m))
		require.NoError(t, err)
		assert.Equal(t, ActionPlayCard, a.Type)
		assert.Equal(t, "ogre", a.CardID)
	})

	t.Run("goes face", func(t *testing.T) {
		m := combatMatch(t, newTestEngine(t, mechanics.Default(), unitCard("filler", 9, 0, 1, "")),
			[]Unit{{InstanceID: "a", CardID: "filler", Atk: 1, HP: 1}},
			[]Unit{{InstanceID: "d", CardID: "filler", Atk: 1, HP: 1}},
		)
		a, err := bot.ChooseAction(ctx, m, e.LegalActions(m))
		require.NoError(t, err)
		assert.Equal(t, Attack("a", "p2"), stripDesc(a))
	})

	t.Run("advances when idle", func(t *testing.T) {
		m := e.NewMatch(nil, nil)
		a, err := bot.ChooseAction(ctx, m, e.LegalActions(m))
		require.NoError(t, err)
		assert.Equal(t, ActionAdvancePhase, a.Type)
	})

	t.Run("no actions", func(t *testing.T) {
		_, err := bot.ChooseAction(ctx, e.NewMatch(nil, nil), nil)
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := bot.ChooseAction(cctx, e.NewMatch(nil, nil), []Action{AdvancePhase()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestBotsFinishMatch plays two bots against each other until the match is
// decided. Every chosen action must be accepted.
func TestBotsFinishMatch(t *testing.T) {
	for _, mode := range []AIMode{AIGreedy, AIRandom} {
		t.Run(string(mode), func(t *testing.T) {
			e := newTestEngine(t, mechanics.Default(),
				unitCard("grunt", 1, 2, 1, ""),
				unitCard("ogre", 3, 3, 4, "Keyword: Taunt"),
				spellCard("bolt", 2, "OnPlay: Deal 3 damage"),
			)
			deck := make([]string, 0, 30)
			for i := 0; i < 10; i++ {
				deck = append(deck, "grunt", "ogre", "bolt")
			}
			m := e.NewMatch(deck, deck)
			bots := [2]*Bot{NewBot(mode, e.Library, 7), NewBot(mode, e.Library, 11)}

			for step := 0; step < 20000 && !m.Victory.Decided(); step++ {
				a, err := bots[m.TurnOwner].ChooseAction(context.Background(), m, e.LegalActions(m))
				require.NoError(t, err)
				m = dispatch(t, e, m, a)
			}
			assert.True(t, m.Victory.Decided())
		})
	}
}
