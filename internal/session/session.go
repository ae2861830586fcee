// Package session owns the live match. A Session is the single writer: every
// action, human or scripted, goes through it under one mutex, and renderers
// receive immutable snapshots through subscriber channels.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/game"
)

// DefaultMaxAutoSteps bounds how many actions the scripted opponent may take
// before control is handed back.
const DefaultMaxAutoSteps = 500

// ErrNoSuchAction is returned by Choose for an out-of-range index.
var ErrNoSuchAction = errors.New("no such action")

// Config configures a Session.
type Config struct {
	Engine *game.Engine
	Decks  [2][]string
	Seed   int64
	Logger *zap.Logger

	// Controllers overrides the scripted opponent per seat. A nil entry
	// falls back to a game.Bot for seats whose AI mode is not None.
	Controllers [2]game.Controller

	MaxAutoSteps int // 0 = DefaultMaxAutoSteps
}

// Session holds one match and serializes every action against it.
type Session struct {
	engine    *game.Engine
	logger    *zap.Logger
	seed      int64
	overrides [2]game.Controller
	maxAuto   int

	mu      sync.Mutex
	match   *game.Match
	bots    [2]*game.Bot
	subs    map[int]chan *game.Match
	nextSub int
}

// New creates a session with a fresh match built from cfg.Decks.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxAuto := cfg.MaxAutoSteps
	if maxAuto <= 0 {
		maxAuto = DefaultMaxAutoSteps
	}
	return &Session{
		engine:    cfg.Engine,
		logger:    logger,
		seed:      cfg.Seed,
		overrides: cfg.Controllers,
		maxAuto:   maxAuto,
		match:     cfg.Engine.NewMatch(cfg.Decks[0], cfg.Decks[1]),
		subs:      make(map[int]chan *game.Match),
	}
}

// Engine returns the engine the session dispatches against.
func (s *Session) Engine() *game.Engine {
	return s.engine
}

// State returns the current match. Matches are never mutated once
// published, so the caller may read it freely.
func (s *Session) State() *game.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// Actions returns the legal actions for the current turn owner.
func (s *Session) Actions() []game.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LegalActions(s.match)
}

// Apply dispatches a, then lets scripted seats play until a human seat has
// the turn or the match is decided. On rejection the error is returned along
// with the (possibly annotated) current match.
func (s *Session) Apply(ctx context.Context, a game.Action) (*game.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, a)
}

// Choose applies the index-th legal action.
func (s *Session) Choose(ctx context.Context, index int) (*game.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions := s.engine.LegalActions(s.match)
	if index < 0 || index >= len(actions) {
		return s.match, fmt.Errorf("%w: %d (have %d)", ErrNoSuchAction, index, len(actions))
	}
	return s.applyLocked(ctx, actions[index])
}

// Load replaces the current match, e.g. with a saved scenario, and lets a
// scripted turn owner continue.
func (s *Session) Load(ctx context.Context, m *game.Match) (*game.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.match = m
	s.bots = [2]*game.Bot{}
	err := s.autoplay(ctx)
	s.publish()
	return s.match, err
}

func (s *Session) applyLocked(ctx context.Context, a game.Action) (*game.Match, error) {
	prev := s.match

	if a.Type == game.ActionUndo {
		s.undo()
	} else {
		next, err := s.engine.Dispatch(s.match, a)
		s.match = next
		if err != nil {
			if next != prev {
				s.publish()
			}
			return s.match, err
		}
		if err := s.autoplay(ctx); err != nil {
			s.publish()
			return s.match, err
		}
	}

	s.publish()
	return s.match, nil
}

// undo steps back past every scripted action so the human seat that asked
// gets its own last decision back instead of having the opponent replay.
func (s *Session) undo() {
	for {
		next, err := s.engine.Dispatch(s.match, game.Undo())
		if err != nil || next == s.match {
			return
		}
		s.match = next
		if s.controller(s.match.TurnOwner) == nil || len(s.match.History) == 0 {
			return
		}
	}
}

// autoplay runs scripted seats. A bot action the engine refuses is replaced
// by AdvancePhase so a confused policy cannot stall the match.
func (s *Session) autoplay(ctx context.Context) error {
	for step := 0; step < s.maxAuto; step++ {
		m := s.match
		if m.Victory.Decided() {
			return nil
		}
		ctrl := s.controller(m.TurnOwner)
		if ctrl == nil {
			return nil
		}

		a, err := ctrl.ChooseAction(ctx, m, s.engine.LegalActions(m))
		if err != nil {
			return fmt.Errorf("opponent %d: %w", m.TurnOwner, err)
		}
		next, err := s.engine.Dispatch(m, a)
		if err != nil {
			s.logger.Warn("opponent action rejected",
				zap.Int("player", m.TurnOwner),
				zap.Stringer("action", a),
				zap.Error(err),
			)
			next, err = s.engine.Dispatch(m, game.AdvancePhase())
			if err != nil {
				return fmt.Errorf("opponent %d: %w", m.TurnOwner, err)
			}
		}
		s.match = next
	}
	s.logger.Warn("opponent step limit reached", zap.Int("steps", s.maxAuto))
	return nil
}

// controller returns the scripted controller for seat, or nil for a human.
func (s *Session) controller(seat int) game.Controller {
	if c := s.overrides[seat]; c != nil {
		return c
	}
	mode := s.match.Players[seat].AI
	if mode == game.AINone || mode == "" {
		return nil
	}
	if b := s.bots[seat]; b == nil || b.Mode != mode {
		s.bots[seat] = game.NewBot(mode, s.engine.Library, s.seed+int64(seat))
	}
	return s.bots[seat]
}

// --- Subscribers ---

// Subscribe returns a channel that receives the match after every change,
// starting with the current one. Slow readers only see the latest match.
// The returned func unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan *game.Match, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan *game.Match, 1)
	ch <- s.match
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Session) publish() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.match
	}
}
