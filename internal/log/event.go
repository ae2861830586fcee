package log

import (
	"fmt"
	"time"
)

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventPhaseChange
	EventNewTurn
	EventDraw
	EventPlay
	EventSummon
	EventAttack
	EventDirectAttack
	EventDamage
	EventHeal
	EventDestroy
	EventTrigger
	EventBid
	EventScore
	EventWeather
	EventRuleChange
	EventRuleViolation
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventPlay:
		return "Play"
	case EventSummon:
		return "Summon"
	case EventAttack:
		return "Attack"
	case EventDirectAttack:
		return "DirectAttack"
	case EventDamage:
		return "Damage"
	case EventHeal:
		return "Heal"
	case EventDestroy:
		return "Destroy"
	case EventTrigger:
		return "Trigger"
	case EventBid:
		return "Bid"
	case EventScore:
		return "Score"
	case EventWeather:
		return "Weather"
	case EventRuleChange:
		return "RuleChange"
	case EventRuleViolation:
		return "RuleViolation"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// Kind is the coarse category renderers color entries by.
type Kind string

const (
	KindInfo   Kind = "info"
	KindAction Kind = "action"
	KindDamage Kind = "damage"
	KindRule   Kind = "rule"
)

// Kind returns the coarse category of the event type.
func (e EventType) Kind() Kind {
	switch e {
	case EventPlay, EventSummon, EventBid, EventScore, EventTrigger:
		return KindAction
	case EventAttack, EventDirectAttack, EventDamage, EventHeal, EventDestroy:
		return KindDamage
	case EventRuleViolation, EventRuleChange, EventWeather:
		return KindRule
	default:
		return KindInfo
	}
}

// Entry represents a single observable event in a match log. Seq is
// monotonic within a match; Time is the wall clock when the entry was
// appended.
type Entry struct {
	Seq     int       `json:"seq"`
	Time    time.Time `json:"timestamp"`
	Turn    int       `json:"turn"`
	Phase   string    `json:"phase"`
	Player  int       `json:"player"`
	Type    EventType `json:"type"`
	Card    string    `json:"card,omitempty"`
	Message string    `json:"message"`
}

// Kind returns the coarse category of the entry.
func (e Entry) Kind() Kind {
	return e.Type.Kind()
}

// MarshalText encodes the event type by name.
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an event type name.
func (e *EventType) UnmarshalText(b []byte) error {
	for t := EventMatchStart; t <= EventWin; t++ {
		if t.String() == string(b) {
			*e = t
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", b)
}
