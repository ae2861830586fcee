package game

import (
	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/log"
)

const (
	StartingHealth  = 30
	StartingMana    = 1
	InitialHandSize = 3
)

// Unit is one concrete card on the board. Several units may share a CardID.
type Unit struct {
	InstanceID string   `json:"instanceId"`
	CardID     string   `json:"cardId"`
	Atk        int      `json:"currentAtk"`
	HP         int      `json:"currentHp"`
	Exhausted  bool     `json:"isExhausted"`
	Keywords   []string `json:"keywords"`
}

// Has reports whether the unit carries kw, ignoring case.
func (u *Unit) Has(kw string) bool {
	return dsl.HasKeyword(u.Keywords, kw)
}

// Player represents one player's entire state.
type Player struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Health    int            `json:"health"`
	MaxHealth int            `json:"maxHealth"`
	Mana      int            `json:"mana"`
	MaxMana   int            `json:"maxMana"`
	Deck      []string       `json:"deck"` // front is drawn next
	Hand      []string       `json:"hand"`
	Board     []Unit         `json:"board"`
	Graveyard []string       `json:"grave"`
	Scores    map[string]int `json:"scores"`
	Counters  map[string]int `json:"counters"`
	AI        AIMode         `json:"aiType"`
}

// UnitIndex returns the board position of the unit with the given instance
// id, or -1.
func (p *Player) UnitIndex(instanceID string) int {
	for i := range p.Board {
		if p.Board[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// HasTaunt reports whether any of the player's units carries Taunt.
func (p *Player) HasTaunt() bool {
	for i := range p.Board {
		if p.Board[i].Has("Taunt") {
			return true
		}
	}
	return false
}

// DrawCard moves the front card of the deck into the hand. Returns the card
// id, or false if the deck is empty.
func (p *Player) DrawCard() (string, bool) {
	if len(p.Deck) == 0 {
		return "", false
	}
	id := p.Deck[0]
	p.Deck = p.Deck[1:]
	p.Hand = append(p.Hand, id)
	return id, true
}

// Victory is the match result. Winner is nil while the match is undecided.
type Victory struct {
	Winner *int   `json:"winner"`
	Reason string `json:"reason,omitempty"`
}

// Decided reports whether a winner has been declared.
func (v Victory) Decided() bool {
	return v.Winner != nil
}

// --- Match ---

// Match holds the complete state of a simulation. A *Match returned by the
// engine is never modified afterwards; every accepted action produces a new
// value and keeps the previous one in History. Use Clone before editing a
// match by hand.
type Match struct {
	Players     [2]Player      `json:"players"`
	TurnOwner   int            `json:"turnOwnerIndex"`
	Phase       Phase          `json:"phase"`
	Turn        int            `json:"turnCount"` // 1-based, bumps when player 0 regains the turn
	Log         []log.Entry    `json:"logs"`
	Victory     Victory        `json:"victoryStatus"`
	History     []*Match       `json:"-"`
	GlobalRules map[string]any `json:"globalRules"`
	Weather     string         `json:"weather,omitempty"`
	Decks       [2][]string    `json:"decks"` // decks the match was created from
}

// Opponent returns the index of the other player.
func (m *Match) Opponent(player int) int {
	return 1 - player
}

// Current returns the turn owner.
func (m *Match) Current() *Player {
	return &m.Players[m.TurnOwner]
}

// PlayerIndex returns the index of the player with the given id, or -1.
func (m *Match) PlayerIndex(id string) int {
	for i := range m.Players {
		if m.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// FindUnit locates a unit on either board, searching from's board first.
// Returns the owner index and board position, or -1, -1.
func (m *Match) FindUnit(instanceID string, from int) (int, int) {
	for _, p := range []int{from, 1 - from} {
		if i := m.Players[p].UnitIndex(instanceID); i >= 0 {
			return p, i
		}
	}
	return -1, -1
}

// Clone returns a deep copy of the match. The History slice is shared; the
// snapshots it holds are never modified.
func (m *Match) Clone() *Match {
	next := *m
	for i := range m.Players {
		next.Players[i] = clonePlayer(m.Players[i])
	}
	next.Log = cloneSlice(m.Log)
	next.GlobalRules = cloneMap(m.GlobalRules)
	if m.Victory.Winner != nil {
		w := *m.Victory.Winner
		next.Victory.Winner = &w
	}
	for i := range m.Decks {
		next.Decks[i] = cloneSlice(m.Decks[i])
	}
	return &next
}

// fork clones m and pushes a snapshot of m onto the clone's history.
// Snapshots carry no history of their own; undo re-attaches it.
func (m *Match) fork() *Match {
	next := m.Clone()
	snap := *m
	snap.History = nil
	n := len(m.History)
	next.History = make([]*Match, n, n+1)
	copy(next.History, m.History)
	next.History = append(next.History, &snap)
	return next
}

// undo returns the state before the most recent accepted action, or m when
// there is none.
func (m *Match) undo() *Match {
	n := len(m.History)
	if n == 0 {
		return m
	}
	prev := *m.History[n-1]
	if n > 1 {
		prev.History = m.History[: n-1 : n-1]
	}
	return &prev
}

func clonePlayer(p Player) Player {
	out := p
	out.Deck = cloneSlice(p.Deck)
	out.Hand = cloneSlice(p.Hand)
	out.Graveyard = cloneSlice(p.Graveyard)
	out.Scores = cloneMap(p.Scores)
	out.Counters = cloneMap(p.Counters)
	if p.Board != nil {
		out.Board = make([]Unit, len(p.Board))
		for i, u := range p.Board {
			u.Keywords = cloneSlice(u.Keywords)
			out.Board[i] = u
		}
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
