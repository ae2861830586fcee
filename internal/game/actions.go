package game

import (
	"fmt"

	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/dsl"
)

// LegalActions returns the actions the turn owner can take that the engine
// would accept. Cards are offered only in Main, attacks only in Combat and
// bids only in Auction; AdvancePhase is always last. A decided match has no
// legal actions other than Reset, which is not listed.
func (e *Engine) LegalActions(m *Match) []Action {
	if m.Victory.Decided() {
		return nil
	}
	var actions []Action
	switch m.Phase {
	case PhaseAuction:
		for amount := 1; amount <= m.Current().Mana; amount++ {
			a := Bid(amount)
			a.Desc = fmt.Sprintf("Bid %d", amount)
			actions = append(actions, a)
		}
	case PhaseMain:
		actions = append(actions, e.playActions(m)...)
	case PhaseCombat:
		actions = append(actions, e.attackActions(m)...)
	}
	a := AdvancePhase()
	a.Desc = fmt.Sprintf("Advance from %s", m.Phase)
	return append(actions, a)
}

// playActions lists every affordable card in hand, once per sensible target.
func (e *Engine) playActions(m *Match) []Action {
	tp := m.TurnOwner
	p := &m.Players[tp]
	opp := &m.Players[m.Opponent(tp)]
	var actions []Action
	for i, id := range p.Hand {
		card, ok := e.Library.Get(id)
		if !ok || card.Cost > p.Mana {
			continue
		}
		for _, target := range playTargets(card, p, opp) {
			a := PlayCard(i, id, target)
			a.Desc = fmt.Sprintf("Play %s (cost %d)", card.Name, card.Cost)
			if target != "" {
				a.Desc += " → " + e.targetName(m, target)
			}
			actions = append(actions, a)
		}
	}
	return actions
}

// playTargets returns the targets worth offering for card: the opponent and
// their units for damage, the player's own units for buffs, or no target.
func playTargets(card *cards.Card, p, opp *Player) []string {
	var damage, buff bool
	for _, eff := range card.Effects() {
		if !triggerIn(eff.Trigger, playTriggers) {
			continue
		}
		for _, v := range eff.Verbs() {
			switch v {
			case dsl.VerbDamage:
				damage = true
			case dsl.VerbBuff:
				buff = true
			}
		}
	}
	var targets []string
	if damage {
		targets = append(targets, opp.ID)
		for _, u := range opp.Board {
			targets = append(targets, u.InstanceID)
		}
	}
	if buff {
		for _, u := range p.Board {
			targets = append(targets, u.InstanceID)
		}
	}
	if len(targets) == 0 {
		targets = []string{""}
	}
	return targets
}

// attackActions lists every ready attacker against every target Taunt
// allows.
func (e *Engine) attackActions(m *Match) []Action {
	tp := m.TurnOwner
	p := &m.Players[tp]
	opp := &m.Players[m.Opponent(tp)]
	taunt := opp.HasTaunt()

	var targets []string
	if !taunt {
		targets = append(targets, opp.ID)
	}
	for _, u := range opp.Board {
		if !taunt || u.Has("Taunt") {
			targets = append(targets, u.InstanceID)
		}
	}

	var actions []Action
	for _, u := range p.Board {
		if u.Exhausted {
			continue
		}
		for _, t := range targets {
			a := Attack(u.InstanceID, t)
			a.Desc = fmt.Sprintf("Attack with %s (%d/%d) → %s", e.cardName(u.CardID), u.Atk, u.HP, e.targetName(m, t))
			actions = append(actions, a)
		}
	}
	return actions
}

// targetName describes a player id or unit instance id for display.
func (e *Engine) targetName(m *Match, target string) string {
	if i := m.PlayerIndex(target); i >= 0 {
		return m.Players[i].Name
	}
	if p, i := m.FindUnit(target, 0); i >= 0 {
		return e.cardName(m.Players[p].Board[i].CardID)
	}
	return target
}
