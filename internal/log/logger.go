package log

import (
	"fmt"
	"io"
	"strings"
)

// --- Printer: writes new entries as human-readable lines ---

// Printer writes entries it has not yet seen to an io.Writer. It remembers
// the last sequence number printed, so feeding it successive match logs
// prints only what was appended. An undo that rewinds the log rewinds the
// printer too.
type Printer struct {
	w    io.Writer
	last int
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes every entry with Seq greater than the last one printed.
func (p *Printer) Print(entries []Entry) {
	if n := len(entries); n > 0 && entries[n-1].Seq < p.last {
		p.last = entries[n-1].Seq
	}
	for _, e := range entries {
		if e.Seq <= p.last {
			continue
		}
		fmt.Fprintln(p.w, FormatEntry(e))
		p.last = e.Seq
	}
}

// --- Formatting ---

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEntry formats a single entry as a human-readable line.
func FormatEntry(e Entry) string {
	phase := e.Phase
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %-6s | %s", e.Turn, phase, e.Kind(), e.Message)
}

// FormatAll formats all entries as a multi-line string.
func FormatAll(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(FormatEntry(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common entries ---

func NewMatchStartEntry() Entry {
	return Entry{
		Turn:    1,
		Type:    EventMatchStart,
		Message: "Lab simulation started.",
	}
}

func NewPhaseChangeEntry(turn int, phase string, player int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Message: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEntry(turn int, player int) Entry {
	return Entry{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Message: fmt.Sprintf("=== Turn %d (%s) ===", turn, PlayerName(player)),
	}
}

func NewDrawEntry(turn int, phase string, player int, cardName string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Message: fmt.Sprintf("%s draws %s", PlayerName(player), cardName),
	}
}

func NewPlayEntry(turn int, phase string, player int, cardName string, cost int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlay,
		Card:    cardName,
		Message: fmt.Sprintf("%s played %s (cost %d)", PlayerName(player), cardName, cost),
	}
}

func NewSummonEntry(turn int, phase string, player int, cardName string, atk, hp int, exhausted bool) Entry {
	ready := "ready"
	if exhausted {
		ready = "exhausted"
	}
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSummon,
		Card:    cardName,
		Message: fmt.Sprintf("%s enters the board (%d/%d, %s)", cardName, atk, hp, ready),
	}
}

func NewDirectAttackEntry(turn int, phase string, player int, cardName string, damage int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDirectAttack,
		Card:    cardName,
		Message: fmt.Sprintf("%s attacks face for %d", cardName, damage),
	}
}

func NewAttackEntry(turn int, phase string, player int, attacker, defender string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttack,
		Card:    attacker,
		Message: fmt.Sprintf("Combat: %s vs %s", attacker, defender),
	}
}

func NewDamageEntry(turn int, phase string, player int, target string, amount int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDamage,
		Message: fmt.Sprintf("%s takes %d damage", target, amount),
	}
}

func NewHealEntry(turn int, phase string, player int, amount int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHeal,
		Message: fmt.Sprintf("%s heals %d (lifesteal)", PlayerName(player), amount),
	}
}

func NewDestroyEntry(turn int, phase string, player int, cardName string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDestroy,
		Card:    cardName,
		Message: fmt.Sprintf("%s's %s is destroyed", PlayerName(player), cardName),
	}
}

func NewTriggerEntry(turn int, phase string, player int, cardName, trigger string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTrigger,
		Card:    cardName,
		Message: fmt.Sprintf("%s triggers %s", cardName, trigger),
	}
}

func NewBidEntry(turn int, phase string, player int, amount int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBid,
		Message: fmt.Sprintf("%s bids %d resource!", PlayerName(player), amount),
	}
}

func NewScoreEntry(turn int, phase string, player int, scoreType string, total int) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventScore,
		Message: fmt.Sprintf("%s %s is now %d", PlayerName(player), scoreType, total),
	}
}

func NewWeatherEntry(turn int, phase string, player int, weather string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventWeather,
		Message: fmt.Sprintf("Weather → %s", weather),
	}
}

func NewRuleChangeEntry(turn int, phase string, player int, key string, value any) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRuleChange,
		Message: fmt.Sprintf("Rule %s = %v", key, value),
	}
}

func NewRuleViolationEntry(turn int, phase string, player int, reason string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRuleViolation,
		Message: reason,
	}
}

func NewWinEntry(turn int, phase string, winner int, reason string) Entry {
	return Entry{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Message: fmt.Sprintf("%s wins: %s", PlayerName(winner), reason),
	}
}
