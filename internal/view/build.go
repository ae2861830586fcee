package view

import (
	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/game"
	"github.com/peterkuimelis/cardlab/internal/log"
)

// LogTail is how many recent log entries a MatchView carries.
const LogTail = 50

// Build creates a MatchView from the perspective of the given player.
// actions are the legal actions to number for the client; they may be nil.
func Build(m *game.Match, lib *cards.Library, player int, actions []game.Action) *MatchView {
	me := player
	opp := 1 - me

	mv := &MatchView{
		Turn:           m.Turn,
		Phase:          m.Phase.String(),
		TurnOwner:      m.TurnOwner,
		IsYourTurn:     m.TurnOwner == me,
		You:            buildPlayer(&m.Players[me], lib, true),
		Opponent:       buildPlayer(&m.Players[opp], lib, false),
		Weather:        m.Weather,
		WinProbability: game.WinProbability(m),
		HistoryDepth:   len(m.History),
		Log:            Events(tail(m.Log, LogTail)),
		Actions:        Actions(actions),
	}
	if len(m.GlobalRules) > 0 {
		mv.GlobalRules = m.GlobalRules
	}
	if m.Victory.Decided() {
		w := *m.Victory.Winner
		mv.Winner = &w
		mv.Reason = m.Victory.Reason
	}
	return mv
}

func buildPlayer(p *game.Player, lib *cards.Library, isOwner bool) PlayerView {
	pv := PlayerView{
		ID:             p.ID,
		Name:           p.Name,
		Health:         p.Health,
		MaxHealth:      p.MaxHealth,
		Mana:           p.Mana,
		MaxMana:        p.MaxMana,
		HandCount:      len(p.Hand),
		Board:          make([]UnitView, 0, len(p.Board)),
		DeckCount:      len(p.Deck),
		GraveyardCount: len(p.Graveyard),
		Scores:         p.Scores,
		Counters:       p.Counters,
		AI:             string(p.AI),
	}
	if isOwner {
		for i, id := range p.Hand {
			pv.Hand = append(pv.Hand, handCard(i, id, lib))
		}
	}
	for _, u := range p.Board {
		pv.Board = append(pv.Board, UnitView{
			InstanceID: u.InstanceID,
			CardID:     u.CardID,
			Name:       lib.Name(u.CardID),
			Atk:        u.Atk,
			HP:         u.HP,
			Exhausted:  u.Exhausted,
			Keywords:   u.Keywords,
		})
	}
	return pv
}

func handCard(i int, id string, lib *cards.Library) CardView {
	c, ok := lib.Get(id)
	if !ok {
		return CardView{Index: i, ID: id, Name: id}
	}
	return CardView{
		Index: i,
		ID:    c.ID,
		Name:  c.Name,
		Cost:  c.Cost,
		Type:  string(c.Type),
		Atk:   c.Atk,
		HP:    c.HP,
		Rules: c.Rules,
	}
}

// Events converts log entries.
func Events(entries []log.Entry) []EventView {
	out := make([]EventView, 0, len(entries))
	for _, e := range entries {
		out = append(out, EventView{
			Seq:     e.Seq,
			Time:    e.Time,
			Turn:    e.Turn,
			Phase:   e.Phase,
			Player:  e.Player,
			Type:    e.Type.String(),
			Kind:    string(e.Kind()),
			Card:    e.Card,
			Message: e.Message,
		})
	}
	return out
}

// Actions numbers a legal action list.
func Actions(actions []game.Action) []ActionView {
	if len(actions) == 0 {
		return nil
	}
	out := make([]ActionView, len(actions))
	for i, a := range actions {
		out[i] = ActionView{Index: i, Kind: a.Type.String(), Desc: a.String()}
	}
	return out
}

// Effects describes parsed rule text, including which verbs each line
// carries. Keyword lines apply no verb but are still meaningful.
func Effects(effs []dsl.Effect) []EffectView {
	out := make([]EffectView, 0, len(effs))
	for _, e := range effs {
		ev := EffectView{
			Trigger:     e.Trigger.String(),
			TriggerName: e.TriggerName,
			Action:      e.Action,
			Keywords:    e.Keywords,
			Params:      e.Params,
			Verbs:       []string{},
			Recognized:  e.Recognized(),
		}
		if e.HasValue {
			v := e.Value
			ev.Value = &v
		}
		for _, v := range e.Verbs() {
			ev.Verbs = append(ev.Verbs, v.String())
		}
		out = append(out, ev)
	}
	return out
}

func tail(entries []log.Entry, n int) []log.Entry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
