package game

import (
	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/log"
)

// PhaseSequence returns the cycling phase order for the engine's catalog.
// Auction is spliced in before Draw when the auction mechanic is enabled.
func (e *Engine) PhaseSequence() []Phase {
	seq := []Phase{PhaseDraw, PhaseMain, PhaseCombat, PhaseEnd}
	if e.Catalog.AuctionEnabled() {
		seq = append([]Phase{PhaseAuction}, seq...)
	}
	return seq
}

// nextPhase returns the phase after p. Setup and any phase missing from the
// sequence lead to its first phase.
func nextPhase(seq []Phase, p Phase) Phase {
	for i, s := range seq {
		if s == p {
			return seq[(i+1)%len(seq)]
		}
	}
	return seq[0]
}

// advancePhase moves the match one phase forward.
func (e *Engine) advancePhase(m *Match) *Match {
	next := m.fork()
	seq := e.PhaseSequence()

	if m.Phase == PhaseEnd {
		e.fireEndTurn(next)
		next.TurnOwner = next.Opponent(next.TurnOwner)
		if next.TurnOwner == 0 {
			next.Turn++
		}
		next.Phase = seq[0]
		e.record(next, log.NewTurnEntry(next.Turn, next.TurnOwner))
	} else {
		next.Phase = nextPhase(seq, m.Phase)
	}
	e.record(next, log.NewPhaseChangeEntry(next.Turn, next.Phase.String(), next.TurnOwner))

	if next.Phase == PhaseDraw {
		e.drawPhase(next)
	}
	e.cleanup(next)
	return next
}

// drawPhase refills the turn owner's mana, draws one card and readies their
// units. Drawing from an empty deck loses the match when mill is enabled.
func (e *Engine) drawPhase(m *Match) {
	tp := m.TurnOwner
	p := &m.Players[tp]

	p.MaxMana = min(e.Catalog.ManaCap(), m.Turn)
	p.Mana = p.MaxMana

	if id, ok := p.DrawCard(); ok {
		e.record(m, log.NewDrawEntry(m.Turn, m.Phase.String(), tp, e.cardName(id)))
	} else if e.Catalog.MillEnabled() {
		e.declare(m, m.Opponent(tp), "Deck Exhaustion (Mill)")
	}

	for i := range p.Board {
		p.Board[i].Exhausted = false
	}
}

// fireEndTurn applies the OnEndTurn effects of every unit on both boards,
// player 0's board first. Each unit's owner is the acting player.
func (e *Engine) fireEndTurn(m *Match) {
	type firing struct {
		owner  int
		cardID string
	}
	var units []firing
	for p := range m.Players {
		for _, u := range m.Players[p].Board {
			units = append(units, firing{owner: p, cardID: u.CardID})
		}
	}
	for _, f := range units {
		e.fireTrigger(m, f.cardID, f.owner, dsl.TriggerOnEndTurn)
	}
}

// --- Main phase actions ---

// playCard plays the card at a.HandIndex from the turn owner's hand.
func (e *Engine) playCard(m *Match, a Action) (*Match, error) {
	tp := m.TurnOwner
	p := &m.Players[tp]
	if a.HandIndex < 0 || a.HandIndex >= len(p.Hand) {
		return nil, ErrNoSuchCard
	}
	id := p.Hand[a.HandIndex]
	if a.CardID != "" && a.CardID != id {
		return nil, ErrNoSuchCard
	}
	card, ok := e.Library.Get(id)
	if !ok {
		return nil, ErrNoSuchCard
	}
	if p.Mana < card.Cost {
		return nil, ErrInsufficientMana
	}

	next := m.fork()
	np := &next.Players[tp]
	np.Hand = append(np.Hand[:a.HandIndex:a.HandIndex], np.Hand[a.HandIndex+1:]...)
	np.Mana -= card.Cost
	e.record(next, log.NewPlayEntry(next.Turn, next.Phase.String(), tp, card.Name, card.Cost))

	e.applyEffects(next, card.Name, card.Effects(), tp, a.TargetID)

	if card.IsUnit() {
		kws := card.Keywords()
		u := Unit{
			InstanceID: e.newID(),
			CardID:     card.ID,
			Atk:        card.BaseAtk(),
			HP:         card.BaseHP(),
			Exhausted:  !dsl.HasKeyword(kws, "Rush"),
			Keywords:   kws,
		}
		if u.Keywords == nil {
			u.Keywords = []string{}
		}
		np = &next.Players[tp]
		np.Board = append(np.Board, u)
		e.record(next, log.NewSummonEntry(next.Turn, next.Phase.String(), tp, card.Name, u.Atk, u.HP, u.Exhausted))
	} else {
		np = &next.Players[tp]
		np.Graveyard = append(np.Graveyard, card.ID)
	}

	e.cleanup(next)
	return next, nil
}

// --- Auction ---

// bid spends mana during the Auction phase.
func (e *Engine) bid(m *Match, a Action) (*Match, error) {
	if m.Phase != PhaseAuction {
		return nil, ErrWrongPhase
	}
	if a.Amount < 0 {
		return nil, ErrInvalidBid
	}
	tp := m.TurnOwner
	if m.Players[tp].Mana < a.Amount {
		return nil, ErrInsufficientMana
	}

	next := m.fork()
	next.Players[tp].Mana -= a.Amount
	e.record(next, log.NewBidEntry(next.Turn, next.Phase.String(), tp, a.Amount))
	return next, nil
}
