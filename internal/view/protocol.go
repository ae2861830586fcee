// Package view flattens match state into the JSON shapes the console, web
// and MCP surfaces render, and decodes the actions they send back.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/peterkuimelis/cardlab/internal/game"
)

// --- Server → client ---

// ServerMessage is the envelope for everything pushed to a client.
type ServerMessage struct {
	Type string `json:"type"` // "state" or "error"

	// For "state"
	State *MatchView `json:"state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is one match log entry.
type EventView struct {
	Seq     int       `json:"seq"`
	Time    time.Time `json:"timestamp"`
	Turn    int       `json:"turn"`
	Phase   string    `json:"phase"`
	Player  int       `json:"player"`
	Type    string    `json:"type"`
	Kind    string    `json:"kind"`
	Card    string    `json:"card,omitempty"`
	Message string    `json:"message"`
}

// ActionView is a numbered legal action.
type ActionView struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Desc  string `json:"desc"`
}

// CardView describes a card in hand.
type CardView struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cost  int    `json:"cost"`
	Type  string `json:"type"`
	Atk   *int   `json:"atk,omitempty"`
	HP    *int   `json:"hp,omitempty"`
	Rules string `json:"rules,omitempty"`
}

// UnitView describes a unit on the board.
type UnitView struct {
	InstanceID string   `json:"instanceId"`
	CardID     string   `json:"cardId"`
	Name       string   `json:"name"`
	Atk        int      `json:"atk"`
	HP         int      `json:"hp"`
	Exhausted  bool     `json:"exhausted"`
	Keywords   []string `json:"keywords,omitempty"`
}

// PlayerView shows one side of the match.
type PlayerView struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Health         int            `json:"health"`
	MaxHealth      int            `json:"maxHealth"`
	Mana           int            `json:"mana"`
	MaxMana        int            `json:"maxMana"`
	HandCount      int            `json:"handCount"`
	Hand           []CardView     `json:"hand,omitempty"` // only for "you"
	Board          []UnitView     `json:"board"`
	DeckCount      int            `json:"deckCount"`
	GraveyardCount int            `json:"graveyardCount"`
	Scores         map[string]int `json:"scores"`
	Counters       map[string]int `json:"counters"`
	AI             string         `json:"ai"`
}

// MatchView is the match from one player's seat.
type MatchView struct {
	Turn           int            `json:"turn"`
	Phase          string         `json:"phase"`
	TurnOwner      int            `json:"turnOwner"`
	IsYourTurn     bool           `json:"isYourTurn"`
	You            PlayerView     `json:"you"`
	Opponent       PlayerView     `json:"opponent"`
	Weather        string         `json:"weather,omitempty"`
	GlobalRules    map[string]any `json:"globalRules,omitempty"`
	WinProbability int            `json:"winProbability"`
	Winner         *int           `json:"winner,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	HistoryDepth   int            `json:"historyDepth"`
	Log            []EventView    `json:"log"`
	Actions        []ActionView   `json:"actions,omitempty"`
}

// EffectView is one parsed rule-text line.
type EffectView struct {
	Trigger     string         `json:"trigger"`
	TriggerName string         `json:"triggerName"`
	Action      string         `json:"action"`
	Value       *int           `json:"value,omitempty"`
	Keywords    []string       `json:"keywords,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
	Verbs       []string       `json:"verbs"`
	Recognized  bool           `json:"recognized"`
}

// --- Client → server ---

// ClientMessage is the envelope for everything a client sends.
type ClientMessage struct {
	Type string `json:"type"` // "action" or "choose"

	// For "action"
	Action     string `json:"action,omitempty"` // advance, play, attack, bid, undo, reset
	HandIndex  int    `json:"handIndex,omitempty"`
	CardID     string `json:"cardId,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
	AttackerID string `json:"attackerId,omitempty"`
	Amount     int    `json:"amount,omitempty"`

	// For "choose": index into the legal action list
	Index int `json:"index,omitempty"`
}

// ToAction decodes an "action" message.
func (c ClientMessage) ToAction() (game.Action, error) {
	switch strings.ToLower(strings.TrimSpace(c.Action)) {
	case "advance", "next", "advance_phase":
		return game.AdvancePhase(), nil
	case "play", "play_card":
		return game.PlayCard(c.HandIndex, c.CardID, c.TargetID), nil
	case "attack":
		if c.AttackerID == "" || c.TargetID == "" {
			return game.Action{}, fmt.Errorf("attack needs attackerId and targetId")
		}
		return game.Attack(c.AttackerID, c.TargetID), nil
	case "bid":
		return game.Bid(c.Amount), nil
	case "undo":
		return game.Undo(), nil
	case "reset":
		return game.Reset(), nil
	default:
		return game.Action{}, fmt.Errorf("%w: %q", game.ErrUnknownAction, c.Action)
	}
}
