package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/log"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// mainMatch returns a match in P1's Main phase whose opening hand starts
// with card, backed by filler.
func mainMatch(t *testing.T, e *Engine, card string) *Match {
	t.Helper()
	deck := append([]string{card}, makeDeck("filler", 9)...)
	m := e.NewMatch(deck, makeDeck("filler", 10))
	return advanceTo(t, e, m, 0, PhaseMain)
}

func effectEngine(t *testing.T, cat mechanics.Catalog, cs ...*cards.Card) *Engine {
	t.Helper()
	return newTestEngine(t, cat, append(cs, unitCard("filler", 0, 1, 4, ""))...)
}

func TestDamageEffect(t *testing.T) {
	e := effectEngine(t, mechanics.Default(), spellCard("bolt", 0, "OnPlay: Deal 3 damage"))

	t.Run("face", func(t *testing.T) {
		m := dispatch(t, e, mainMatch(t, e, "bolt"), PlayCard(0, "bolt", "p2"))
		assert.Equal(t, 27, m.Players[1].Health)
		assert.Equal(t, []string{"bolt"}, m.Players[0].Graveyard, "spells resolve to the graveyard")
		assert.Equal(t, 1, m.Players[0].Mana)
	})

	t.Run("unit", func(t *testing.T) {
		m := mainMatch(t, e, "bolt").Clone()
		m.Players[1].Board = []Unit{{InstanceID: "x", CardID: "filler", Atk: 1, HP: 3}}
		m = dispatch(t, e, m, PlayCard(0, "bolt", "x"))
		assert.Empty(t, m.Players[1].Board, "dead units are cleaned up before the next action")
		assert.Equal(t, []string{"filler"}, m.Players[1].Graveyard)
	})

	t.Run("own player is not a damage target", func(t *testing.T) {
		m := dispatch(t, e, mainMatch(t, e, "bolt"), PlayCard(0, "bolt", "p1"))
		assert.Equal(t, 30, m.Players[0].Health)
		assert.Equal(t, 30, m.Players[1].Health)
	})
}

func TestDrawEffect(t *testing.T) {
	e := effectEngine(t, noMill(), spellCard("insight", 0, "OnPlay: Draw 2 cards"))

	m := mainMatch(t, e, "insight")
	hand, deck := len(m.Players[0].Hand), len(m.Players[0].Deck)
	m = dispatch(t, e, m, PlayCard(0, "insight", ""))
	assert.Len(t, m.Players[0].Hand, hand-1+2)
	assert.Len(t, m.Players[0].Deck, deck-2)

	t.Run("stops at empty deck", func(t *testing.T) {
		m := e.NewMatch([]string{"insight", "filler", "filler", "filler"}, makeDeck("filler", 10))
		m = advanceTo(t, e, m, 0, PhaseMain)
		require.Empty(t, m.Players[0].Deck)
		m = dispatch(t, e, m, PlayCard(0, "insight", ""))
		assert.Len(t, m.Players[0].Hand, 3)
		assert.False(t, m.Victory.Decided(), "mill is only checked at Draw")
	})
}

func TestBuffEffect(t *testing.T) {
	e := effectEngine(t, mechanics.Default(), spellCard("blessing", 0, "OnPlay: Buff +2"))
	m := mainMatch(t, e, "blessing").Clone()
	m.Players[0].Board = []Unit{{InstanceID: "u", CardID: "filler", Atk: 1, HP: 1}}

	m = dispatch(t, e, m, PlayCard(0, "blessing", "u"))
	assert.Equal(t, 3, m.Players[0].Board[0].Atk)
	assert.Equal(t, 3, m.Players[0].Board[0].HP)
}

func TestKeywordUnit(t *testing.T) {
	e := effectEngine(t, mechanics.Default(), unitCard("knight", 0, 2, 2, "Keyword: Taunt, Lifesteal\nOnPlay: Gain 1"))
	m := dispatch(t, e, mainMatch(t, e, "knight"), PlayCard(0, "knight", ""))
	require.Len(t, m.Players[0].Board, 1)
	u := m.Players[0].Board[0]
	assert.Equal(t, []string{"Taunt", "Lifesteal"}, u.Keywords)
	assert.True(t, u.Has("taunt"))
	assert.True(t, u.Exhausted)
	assert.Equal(t, 2, u.Atk, "buffs resolve before the unit enters")
	assert.Len(t, entriesOfType(m, log.EventSummon), 1)
}

// TestScoreScenario: a wincon line is inert on its own, and an addscore
// effect that lifts lore to the target wins once the mechanic is on.
func TestScoreScenario(t *testing.T) {
	rules := "wincon: score_target { scoreType: \"lore\", target: 20 }\n" +
		"mechanic: addscore { scoreType: \"lore\", amount: 20 }"
	scroll := spellCard("scroll", 0, rules)

	t.Run("mechanic disabled", func(t *testing.T) {
		e := effectEngine(t, mechanics.Default(), scroll)
		m := dispatch(t, e, mainMatch(t, e, "scroll"), PlayCard(0, "scroll", ""))
		assert.Equal(t, 20, m.Players[0].Scores["lore"])
		assert.False(t, m.Victory.Decided())
	})

	t.Run("mechanic enabled", func(t *testing.T) {
		e := effectEngine(t, mechanics.Default().WithEnabled(mechanics.ScoreID, true), scroll)
		m := dispatch(t, e, mainMatch(t, e, "scroll"), PlayCard(0, "scroll", ""))
		require.True(t, m.Victory.Decided())
		assert.Equal(t, 0, *m.Victory.Winner)
		assert.Equal(t, "Reached 20 lore", m.Victory.Reason)
	})
}

func TestFractionalScoreRounds(t *testing.T) {
	e := effectEngine(t, mechanics.Default(), spellCard("tithe", 0, "mechanic: addscore { amount: 2.6 }"))
	m := dispatch(t, e, mainMatch(t, e, "tithe"), PlayCard(0, "tithe", ""))
	assert.Equal(t, 3, m.Players[0].Scores["lore"])
}

func TestWeatherEffect(t *testing.T) {
	e := effectEngine(t, mechanics.Default(),
		spellCard("fog", 0, `mechanic: setweather { name: "Fog" }`),
		spellCard("clear", 0, "mechanic: setweather"),
		spellCard("loud", 0, "mechanic: SetWeather Now { name: Storm }"),
	)

	m := dispatch(t, e, mainMatch(t, e, "fog"), PlayCard(0, "fog", ""))
	assert.Equal(t, "Fog", m.Weather)

	m = dispatch(t, e, mainMatch(t, e, "clear"), PlayCard(0, "clear", ""))
	assert.Equal(t, "Clear", m.Weather)

	m = dispatch(t, e, mainMatch(t, e, "loud"), PlayCard(0, "loud", ""))
	assert.Empty(t, m.Weather, "weather needs the exact verb")
}

func TestDynamicRuleEffect(t *testing.T) {
	e := effectEngine(t, mechanics.Default(),
		spellCard("edict", 0, `mechanic: dynamic_rule { rule: "max_hand_size=8", mood: calm }`))
	m := dispatch(t, e, mainMatch(t, e, "edict"), PlayCard(0, "edict", ""))
	assert.Equal(t, map[string]any{"max_hand_size": 8, "mood": "calm"}, m.GlobalRules)
	assert.Len(t, entriesOfType(m, log.EventRuleChange), 2)
}

func TestCounterEffect(t *testing.T) {
	venom := spellCard("venom", 0, `mechanic: addcounter { counter: "poison", amount: 4 }`)

	t.Run("opponent by default", func(t *testing.T) {
		e := effectEngine(t, mechanics.Default(), venom)
		m := dispatch(t, e, mainMatch(t, e, "venom"), PlayCard(0, "venom", ""))
		assert.Equal(t, 4, m.Players[1].Counters["poison"])
		assert.Equal(t, 0, m.Players[0].Counters["poison"])
	})

	t.Run("targeted player", func(t *testing.T) {
		e := effectEngine(t, mechanics.Default(), venom)
		m := dispatch(t, e, mainMatch(t, e, "venom"), PlayCard(0, "venom", "p1"))
		assert.Equal(t, 4, m.Players[0].Counters["poison"])
	})

	t.Run("threshold loses", func(t *testing.T) {
		cat := mechanics.Default().
			WithEnabled(mechanics.CountersID, true).
			WithParams(mechanics.CountersID, map[string]any{"threshold": 4})
		e := effectEngine(t, cat, venom)
		m := dispatch(t, e, mainMatch(t, e, "venom"), PlayCard(0, "venom", ""))
		require.True(t, m.Victory.Decided())
		assert.Equal(t, 0, *m.Victory.Winner, "the holder's opponent wins")
		assert.Equal(t, "Excessive poison counters", m.Victory.Reason)
	})
}

func TestEndTurnTrigger(t *testing.T) {
	e := effectEngine(t, noMill(), unitCard("bard", 0, 0, 2, "OnEndTurn: addscore"))
	m := mainMatch(t, e, "bard").Clone()
	m.Players[1].Board = []Unit{{InstanceID: "b2", CardID: "bard", Atk: 0, HP: 2}}
	m = dispatch(t, e, m, PlayCard(0, "bard", ""))

	m = advanceTo(t, e, m, 0, PhaseEnd)
	m = dispatch(t, e, m, AdvancePhase())
	assert.Equal(t, 1, m.Players[0].Scores["lore"])
	assert.Equal(t, 1, m.Players[1].Scores["lore"], "units fire for their own owner")
	assert.Len(t, entriesOfType(m, log.EventTrigger), 2)
	assert.Equal(t, 1, m.TurnOwner)
}

func TestUnrecognizedEffectIsInert(t *testing.T) {
	e := effectEngine(t, mechanics.Default(), spellCard("odd", 0, "OnPlay: Summon a dragon\nmystery line"))
	before := mainMatch(t, e, "odd")
	m := dispatch(t, e, before, PlayCard(0, "odd", "p2"))
	assert.Equal(t, before.Players[1], m.Players[1])
	assert.Equal(t, before.Weather, m.Weather)
}
