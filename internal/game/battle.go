package game

import (
	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/log"
)

// tauntViolation is the rule-log message for an attack that ignores Taunt.
const tauntViolation = "Combat Blocked: Must attack Taunt!"

// attack resolves a.AttackerID attacking a.TargetID, which is either the
// opposing player's id or one of the opposing units.
func (e *Engine) attack(m *Match, a Action) (*Match, error) {
	tp := m.TurnOwner
	opp := m.Opponent(tp)

	ai := m.Players[tp].UnitIndex(a.AttackerID)
	if ai < 0 {
		return nil, ErrNoSuchUnit
	}
	if m.Players[tp].Board[ai].Exhausted {
		return nil, ErrExhausted
	}

	di := m.Players[opp].UnitIndex(a.TargetID)
	if m.Players[opp].HasTaunt() && (di < 0 || !m.Players[opp].Board[di].Has("Taunt")) {
		blocked := m.Clone()
		e.record(blocked, log.NewRuleViolationEntry(m.Turn, m.Phase.String(), tp, tauntViolation))
		return blocked, ErrTaunt
	}
	face := a.TargetID == m.Players[opp].ID
	if !face && di < 0 {
		return nil, ErrNoSuchTarget
	}

	next := m.fork()
	p := &next.Players[tp]
	attacker := &p.Board[ai]
	name := e.cardName(attacker.CardID)
	dealt := attacker.Atk

	if face {
		next.Players[opp].Health -= dealt
		e.record(next, log.NewDirectAttackEntry(next.Turn, next.Phase.String(), tp, name, dealt))
	} else {
		defender := &next.Players[opp].Board[di]
		e.record(next, log.NewAttackEntry(next.Turn, next.Phase.String(), tp, name, e.cardName(defender.CardID)))
		defender.HP -= dealt
		attacker.HP -= defender.Atk
	}

	if attacker.Has("Lifesteal") {
		healed := min(p.MaxHealth, p.Health+dealt) - p.Health
		p.Health += healed
		if healed > 0 {
			e.record(next, log.NewHealEntry(next.Turn, next.Phase.String(), tp, healed))
		}
	}
	attacker.Exhausted = true

	e.cleanup(next)
	return next, nil
}

// cleanup moves every unit with HP <= 0 to its owner's graveyard and fires
// its OnDeath effects. Death effects may kill more units, so it repeats until
// both boards are stable.
func (e *Engine) cleanup(m *Match) {
	for {
		type death struct {
			owner  int
			cardID string
		}
		var dead []death
		for p := range m.Players {
			pl := &m.Players[p]
			alive := pl.Board[:0:0]
			for _, u := range pl.Board {
				if u.HP > 0 {
					alive = append(alive, u)
					continue
				}
				dead = append(dead, death{owner: p, cardID: u.CardID})
				pl.Graveyard = append(pl.Graveyard, u.CardID)
				e.record(m, log.NewDestroyEntry(m.Turn, m.Phase.String(), p, e.cardName(u.CardID)))
			}
			if pl.Board != nil {
				pl.Board = alive
			}
		}
		if len(dead) == 0 {
			return
		}
		for _, d := range dead {
			e.fireTrigger(m, d.cardID, d.owner, dsl.TriggerOnDeath)
		}
	}
}
