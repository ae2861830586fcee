package game

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/log"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
)

// EngineConfig holds the read-only context the turn state machine runs
// against.
type EngineConfig struct {
	Catalog mechanics.Catalog
	Library *cards.Library
	Logger  *zap.Logger
	Clock   func() time.Time // log timestamps (nil = time.Now)
	NewID   func() string    // board instance ids (nil = uuid based)
}

// Engine is the turn state machine. It holds no match state: every method
// takes a *Match and returns a new one, leaving its input untouched.
type Engine struct {
	Catalog mechanics.Catalog
	Library *cards.Library
	logger  *zap.Logger
	clock   func() time.Time
	newID   func() string
}

// NewEngine creates an engine from the given config.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return "inst-" + uuid.NewString() }
	}
	return &Engine{
		Catalog: cfg.Catalog,
		Library: cfg.Library,
		logger:  logger,
		clock:   clock,
		newID:   newID,
	}
}

// NewMatch creates a fresh match from two ordered card-id decks. Each player
// draws the opening hand; the match starts in Setup with player 0 to act.
func (e *Engine) NewMatch(deck0, deck1 []string) *Match {
	m := &Match{
		TurnOwner:   0,
		Phase:       PhaseSetup,
		Turn:        1,
		GlobalRules: map[string]any{},
		Decks:       [2][]string{cloneSlice(deck0), cloneSlice(deck1)},
	}
	m.Players[0] = newPlayer("p1", "Designer (P1)", deck0, AINone)
	m.Players[1] = newPlayer("p2", "Opponent (AI)", deck1, AIGreedy)
	e.record(m, log.NewMatchStartEntry())
	return m
}

func newPlayer(id, name string, deck []string, ai AIMode) Player {
	p := Player{
		ID:        id,
		Name:      name,
		Health:    StartingHealth,
		MaxHealth: StartingHealth,
		Mana:      StartingMana,
		MaxMana:   StartingMana,
		Deck:      cloneSlice(deck),
		Hand:      []string{},
		Board:     []Unit{},
		Graveyard: []string{},
		Scores:    map[string]int{mechanics.DefaultScoreType: 0},
		Counters:  map[string]int{mechanics.DefaultCounterName: 0},
		AI:        ai,
	}
	if p.Deck == nil {
		p.Deck = []string{}
	}
	for i := 0; i < InitialHandSize; i++ {
		if _, ok := p.DrawCard(); !ok {
			break
		}
	}
	return p
}

// Dispatch applies one action to m and returns the resulting match.
//
// On rejection the returned match is m itself together with a sentinel
// error, with one exception: an attack refused by Taunt returns a copy of m
// carrying a rule-violation log entry (history is not pushed). Accepted
// actions other than Undo and Reset push m onto the result's history and run
// the win-condition scan before returning. Once a winner is declared every
// action except Reset is rejected with ErrMatchOver.
func (e *Engine) Dispatch(m *Match, a Action) (*Match, error) {
	if a.Type == ActionReset {
		return e.NewMatch(m.Decks[0], m.Decks[1]), nil
	}
	if m.Victory.Decided() {
		return e.reject(m, m, a, ErrMatchOver)
	}

	var (
		next *Match
		err  error
	)
	switch a.Type {
	case ActionUndo:
		return m.undo(), nil
	case ActionAdvancePhase:
		next = e.advancePhase(m)
	case ActionPlayCard:
		next, err = e.playCard(m, a)
	case ActionAttack:
		next, err = e.attack(m, a)
	case ActionBid:
		next, err = e.bid(m, a)
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		if next == nil {
			next = m
		}
		return e.reject(m, next, a, err)
	}

	e.evaluate(next)
	return next, nil
}

func (e *Engine) reject(m, out *Match, a Action, err error) (*Match, error) {
	e.logger.Debug("action rejected",
		zap.Stringer("action", a.Type),
		zap.Int("turn", m.Turn),
		zap.Stringer("phase", m.Phase),
		zap.Error(err),
	)
	return out, err
}

// record stamps entry and appends it to the match log.
func (e *Engine) record(m *Match, entry log.Entry) {
	entry.Seq = 1
	if n := len(m.Log); n > 0 {
		entry.Seq = m.Log[n-1].Seq + 1
	}
	entry.Time = e.clock()
	m.Log = append(m.Log, entry)
}

// declare sets the winner unless one is already set.
func (e *Engine) declare(m *Match, winner int, reason string) {
	if m.Victory.Decided() {
		return
	}
	w := winner
	m.Victory = Victory{Winner: &w, Reason: reason}
	e.record(m, log.NewWinEntry(m.Turn, m.Phase.String(), winner, reason))
	e.logger.Info("match decided",
		zap.Int("winner", winner),
		zap.String("reason", reason),
		zap.Int("turn", m.Turn),
	)
}

// cardName resolves a card id for log messages.
func (e *Engine) cardName(id string) string {
	return e.Library.Name(id)
}
