package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(entries ...Entry) []Entry {
	for i := range entries {
		entries[i].Seq = i + 1
	}
	return entries
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entries := seq(
		NewMatchStartEntry(),
		NewPhaseChangeEntry(1, "Draw", 0),
		NewDrawEntry(1, "Draw", 0, "Grunt"),
	)
	p.Print(entries[:2])
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	buf.Reset()
	p.Print(entries)
	assert.Equal(t, "T1  Draw    | info   | P1 draws Grunt\n", buf.String())

	buf.Reset()
	p.Print(entries)
	assert.Empty(t, buf.String(), "nothing new")

	// An undo rewinds the log; the next entries reuse sequence numbers.
	buf.Reset()
	p.Print(entries[:1])
	assert.Empty(t, buf.String())
	replay := seq(NewMatchStartEntry(), NewPhaseChangeEntry(1, "Auction", 0))
	p.Print(replay)
	assert.Contains(t, buf.String(), "Phase → Auction")
}

func TestEntryKinds(t *testing.T) {
	tests := []struct {
		entry Entry
		kind  Kind
	}{
		{NewMatchStartEntry(), KindInfo},
		{NewTurnEntry(2, 1), KindInfo},
		{NewPlayEntry(1, "Main", 0, "Grunt", 1), KindAction},
		{NewBidEntry(1, "Auction", 1, 2), KindAction},
		{NewDirectAttackEntry(1, "Combat", 0, "Grunt", 1), KindDamage},
		{NewDestroyEntry(1, "Combat", 1, "Grunt"), KindDamage},
		{NewRuleViolationEntry(1, "Combat", 0, "Combat Blocked: Must attack Taunt!"), KindRule},
		{NewWeatherEntry(1, "Main", 0, "Fog"), KindRule},
		{NewWinEntry(3, "Draw", 1, "Deck Exhaustion (Mill)"), KindInfo},
	}
	for _, tt := range tests {
		t.Run(tt.entry.Type.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.entry.Kind())
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "P2 bids 3 resource!", NewBidEntry(1, "Auction", 1, 3).Message)
	assert.Equal(t, "P1 wins: Health Depleted", NewWinEntry(4, "Combat", 0, "Health Depleted").Message)
	assert.Equal(t, "=== Turn 2 (P2) ===", NewTurnEntry(2, 1).Message)
	assert.Equal(t, "Grunt enters the board (1/1, exhausted)", NewSummonEntry(1, "Main", 0, "Grunt", 1, 1, true).Message)
}

func TestEntryJSON(t *testing.T) {
	e := NewAttackEntry(2, "Combat", 1, "Ogre", "Grunt")
	e.Seq = 7
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"Attack"`)

	var back Entry
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, EventAttack, back.Type)
	assert.Equal(t, e.Message, back.Message)

	var bad EventType
	assert.Error(t, bad.UnmarshalText([]byte("Nope")))
}

func TestFormatAll(t *testing.T) {
	out := FormatAll(seq(NewMatchStartEntry(), NewTurnEntry(1, 0)))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Lab simulation started.")
	assert.Contains(t, lines[1], "=== Turn 1 (P1) ===")
}
