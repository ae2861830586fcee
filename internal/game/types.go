package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhaseSetup Phase = iota // before the first Draw of the match
	PhaseAuction
	PhaseDraw
	PhaseMain
	PhaseCombat
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseAuction:
		return "Auction"
	case PhaseDraw:
		return "Draw"
	case PhaseMain:
		return "Main"
	case PhaseCombat:
		return "Combat"
	case PhaseEnd:
		return "End"
	default:
		return "None"
	}
}

// ParsePhase maps a phase name back to a Phase.
func ParsePhase(s string) (Phase, error) {
	for p := PhaseSetup; p <= PhaseEnd; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseSetup, fmt.Errorf("unknown phase %q", s)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// AIMode says whether a seat is played by a person or by the engine.
type AIMode string

const (
	AINone   AIMode = "None"
	AIGreedy AIMode = "Greedy"
	AIRandom AIMode = "Random"
)

// ParseAIMode maps a name to an AIMode, ignoring case.
func ParseAIMode(s string) (AIMode, error) {
	for _, m := range []AIMode{AINone, AIGreedy, AIRandom} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown AI mode %q", s)
}

// --- Action types ---

type ActionType int

const (
	ActionAdvancePhase ActionType = iota
	ActionPlayCard
	ActionAttack
	ActionBid
	ActionUndo
	ActionReset
)

func (a ActionType) String() string {
	switch a {
	case ActionAdvancePhase:
		return "Advance Phase"
	case ActionPlayCard:
		return "Play Card"
	case ActionAttack:
		return "Attack"
	case ActionBid:
		return "Bid"
	case ActionUndo:
		return "Undo"
	case ActionReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Action is one discrete input to the turn state machine. Which fields are
// read depends on Type.
type Action struct {
	Type       ActionType
	HandIndex  int    // PlayCard: position in the acting player's hand
	CardID     string // PlayCard: expected card at HandIndex (optional)
	TargetID   string // PlayCard, Attack: player id or unit instance id
	AttackerID string // Attack
	Amount     int    // Bid
	Desc       string // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

func AdvancePhase() Action {
	return Action{Type: ActionAdvancePhase}
}

func PlayCard(handIndex int, cardID, targetID string) Action {
	return Action{Type: ActionPlayCard, HandIndex: handIndex, CardID: cardID, TargetID: targetID}
}

func Attack(attackerID, targetID string) Action {
	return Action{Type: ActionAttack, AttackerID: attackerID, TargetID: targetID}
}

func Bid(amount int) Action {
	return Action{Type: ActionBid, Amount: amount}
}

func Undo() Action {
	return Action{Type: ActionUndo}
}

func Reset() Action {
	return Action{Type: ActionReset}
}
