package game

import (
	"context"
	"errors"
	"math/rand"

	"github.com/peterkuimelis/cardlab/internal/cards"
)

// Controller picks the next action for a seat. The engine-driven opponent
// implements it; so can a remote player.
type Controller interface {
	// ChooseAction picks one of actions for the turn owner of m.
	ChooseAction(ctx context.Context, m *Match, actions []Action) (Action, error)
}

// Bot is the scripted opponent.
type Bot struct {
	Mode    AIMode
	Library *cards.Library
	rng     *rand.Rand
}

// NewBot creates a bot playing the given policy. seed drives the Random
// policy (0 picks a fixed seed).
func NewBot(mode AIMode, lib *cards.Library, seed int64) *Bot {
	if seed == 0 {
		seed = 1
	}
	return &Bot{Mode: mode, Library: lib, rng: rand.New(rand.NewSource(seed))}
}

var errNoActions = errors.New("no actions to choose from")

// ChooseAction implements Controller.
func (b *Bot) ChooseAction(ctx context.Context, m *Match, actions []Action) (Action, error) {
	if err := ctx.Err(); err != nil {
		return Action{}, err
	}
	if len(actions) == 0 {
		return Action{}, errNoActions
	}
	if b.Mode == AIRandom {
		return actions[b.rng.Intn(len(actions))], nil
	}
	return b.greedy(m, actions), nil
}

// greedy plays the most expensive card it can afford, then attacks,
// preferring the opponent's face and otherwise the weakest defender. It
// never bids. With nothing worth doing it advances the phase.
func (b *Bot) greedy(m *Match, actions []Action) Action {
	p := m.Current()
	opp := &m.Players[m.Opponent(m.TurnOwner)]

	best, bestScore := -1, -1
	for i, a := range actions {
		score := -1
		switch a.Type {
		case ActionPlayCard:
			score = 1000
			if a.HandIndex >= 0 && a.HandIndex < len(p.Hand) {
				if c, ok := b.Library.Get(p.Hand[a.HandIndex]); ok {
					score += c.Cost
				}
			}
		case ActionAttack:
			if a.TargetID == opp.ID {
				score = 500
			} else if j := opp.UnitIndex(a.TargetID); j >= 0 {
				score = max(0, 400-opp.Board[j].HP)
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if bestScore >= 0 {
		return actions[best]
	}
	for _, a := range actions {
		if a.Type == ActionAdvancePhase {
			return a
		}
	}
	return actions[len(actions)-1]
}
