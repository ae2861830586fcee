package game

import (
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/log"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// playTriggers are the triggers that resolve when a card is played.
var playTriggers = []dsl.Trigger{dsl.TriggerOnPlay, dsl.TriggerVictory, dsl.TriggerGlobal}

// applyEffects resolves the play-time effects of a card for the acting
// player against target, which is a player id, a unit instance id, or "".
func (e *Engine) applyEffects(m *Match, source string, effs []dsl.Effect, actor int, target string) {
	for _, eff := range effs {
		if !triggerIn(eff.Trigger, playTriggers) {
			continue
		}
		e.resolve(m, source, eff, actor, target)
	}
}

// fireTrigger resolves the effects of cardID's template that carry trigger,
// with owner as the acting player and no target.
func (e *Engine) fireTrigger(m *Match, cardID string, owner int, trigger dsl.Trigger) {
	card, ok := e.Library.Get(cardID)
	if !ok {
		return
	}
	for _, eff := range card.Effects() {
		if eff.Trigger != trigger {
			continue
		}
		e.record(m, log.NewTriggerEntry(m.Turn, m.Phase.String(), owner, card.Name, trigger.String()))
		e.resolve(m, card.Name, eff, owner, "")
	}
}

func triggerIn(t dsl.Trigger, set []dsl.Trigger) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

// resolve applies every verb the effect's action matches, in verb order.
func (e *Engine) resolve(m *Match, source string, eff dsl.Effect, actor int, target string) {
	verbs := eff.Verbs()
	if len(verbs) == 0 {
		e.logger.Debug("unrecognized effect",
			zap.String("card", source),
			zap.String("trigger", eff.TriggerName),
			zap.String("action", eff.Action),
		)
		return
	}
	for _, v := range verbs {
		switch v {
		case dsl.VerbDamage:
			e.dealDamage(m, eff, actor, target)
		case dsl.VerbDraw:
			e.drawCards(m, actor, eff.ValueOr(1))
		case dsl.VerbBuff:
			e.buffUnit(m, eff, actor, target)
		case dsl.VerbAddScore:
			e.addScore(m, eff, actor)
		case dsl.VerbSetWeather:
			m.Weather = eff.Param("name", "Clear")
			e.record(m, log.NewWeatherEntry(m.Turn, m.Phase.String(), actor, m.Weather))
		case dsl.VerbDynamicRule:
			e.setRules(m, eff, actor)
		case dsl.VerbAddCounter:
			e.addCounter(m, eff, actor, target)
		}
	}
}

// --- Verbs ---

func (e *Engine) dealDamage(m *Match, eff dsl.Effect, actor int, target string) {
	amount := 0
	if eff.HasValue {
		amount = eff.Value
	}
	opp := m.Opponent(actor)
	if target != "" && target == m.Players[opp].ID {
		m.Players[opp].Health -= amount
		e.record(m, log.NewDamageEntry(m.Turn, m.Phase.String(), actor, log.PlayerName(opp), amount))
		return
	}
	if p, i := m.FindUnit(target, opp); i >= 0 {
		u := &m.Players[p].Board[i]
		u.HP -= amount
		e.record(m, log.NewDamageEntry(m.Turn, m.Phase.String(), actor, e.cardName(u.CardID), amount))
	}
}

func (e *Engine) drawCards(m *Match, actor, n int) {
	p := &m.Players[actor]
	for i := 0; i < n; i++ {
		id, ok := p.DrawCard()
		if !ok {
			return
		}
		e.record(m, log.NewDrawEntry(m.Turn, m.Phase.String(), actor, e.cardName(id)))
	}
}

func (e *Engine) buffUnit(m *Match, eff dsl.Effect, actor int, target string) {
	p, i := m.FindUnit(target, actor)
	if i < 0 {
		return
	}
	n := eff.ValueOr(1)
	u := &m.Players[p].Board[i]
	u.Atk += n
	u.HP += n
}

func (e *Engine) addScore(m *Match, eff dsl.Effect, actor int) {
	kind := eff.Param("scoreType", mechanics.DefaultScoreType)
	p := &m.Players[actor]
	if p.Scores == nil {
		p.Scores = map[string]int{}
	}
	p.Scores[kind] += eff.IntParam("amount", 1)
	e.record(m, log.NewScoreEntry(m.Turn, m.Phase.String(), actor, kind, p.Scores[kind]))
}

// setRules writes a "key=value" rule and any other parameters into the
// match's global rules.
func (e *Engine) setRules(m *Match, eff dsl.Effect, actor int) {
	if m.GlobalRules == nil {
		m.GlobalRules = map[string]any{}
	}
	for _, k := range slices.Sorted(maps.Keys(eff.Params)) {
		if k == "rule" {
			continue
		}
		v := eff.Params[k]
		m.GlobalRules[k] = v
		e.record(m, log.NewRuleChangeEntry(m.Turn, m.Phase.String(), actor, k, v))
	}
	rule, ok := eff.Params["rule"].(string)
	if !ok {
		return
	}
	k, v, found := strings.Cut(rule, "=")
	k = strings.TrimSpace(k)
	if !found || k == "" {
		return
	}
	val := dsl.ParseValue(strings.TrimSpace(v))
	m.GlobalRules[k] = val
	e.record(m, log.NewRuleChangeEntry(m.Turn, m.Phase.String(), actor, k, val))
}

// addCounter places counters on the targeted player, or on the actor's
// opponent when no player is targeted.
func (e *Engine) addCounter(m *Match, eff dsl.Effect, actor int, target string) {
	holder := m.PlayerIndex(target)
	if holder < 0 {
		holder = m.Opponent(actor)
	}
	name := eff.Param("counter", mechanics.DefaultCounterName)
	p := &m.Players[holder]
	if p.Counters == nil {
		p.Counters = map[string]int{}
	}
	p.Counters[name] += eff.IntParam("amount", eff.ValueOr(1))
	e.record(m, log.NewScoreEntry(m.Turn, m.Phase.String(), holder, name, p.Counters[name]))
}
