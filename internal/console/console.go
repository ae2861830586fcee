// Package console is the terminal front end: a line-oriented REPL that drives
// a session and prints the match log as it grows.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/cardlab/internal/game"
	"github.com/peterkuimelis/cardlab/internal/log"
	"github.com/peterkuimelis/cardlab/internal/session"
	"github.com/peterkuimelis/cardlab/internal/store"
	"github.com/peterkuimelis/cardlab/internal/view"
)

// Scenarios saves and restores named matches.
type Scenarios interface {
	Save(ctx context.Context, name string, m *game.Match) error
	Load(ctx context.Context, name string) (*game.Match, error)
	List(ctx context.Context) ([]store.Scenario, error)
}

// REPL reads commands from In and writes to Out.
type REPL struct {
	Session   *session.Session
	Scenarios Scenarios // nil disables save/load
	In        io.Reader
	Out       io.Writer
	Player    int // seat the console plays

	printer *log.Printer
}

var errQuit = errors.New("quit")

// Run processes commands until quit, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	r.printer = log.NewPrinter(r.Out)
	r.printer.Print(r.Session.State().Log)
	r.renderState(r.Session.State())

	scanner := bufio.NewScanner(r.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.Out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.Out)
			return scanner.Err()
		}
		err := r.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.Out, "Error: %v\n", err)
		}
	}
}

func (r *REPL) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		r.printHelp()
		return nil
	case "state", "s":
		r.renderState(r.Session.State())
		return nil
	case "actions", "a":
		r.renderActions(r.Session.Actions())
		return nil
	case "log":
		fmt.Fprint(r.Out, log.FormatAll(r.Session.State().Log))
		return nil
	case "save":
		return r.save(ctx, args)
	case "load":
		return r.load(ctx, args)
	case "scenarios", "ls":
		return r.list(ctx)
	case "do":
		n, err := intArg(args, 0, "action number")
		if err != nil {
			return err
		}
		return r.apply(r.Session.Choose(ctx, n-1))
	}

	a, err := parseAction(cmd, args)
	if err != nil {
		return err
	}
	return r.apply(r.Session.Apply(ctx, a))
}

// parseAction maps a game command to an engine action. Hand positions are
// 1-based on the console.
func parseAction(cmd string, args []string) (game.Action, error) {
	switch cmd {
	case "next", "n", "advance":
		return game.AdvancePhase(), nil
	case "play", "p":
		n, err := intArg(args, 0, "hand position")
		if err != nil {
			return game.Action{}, err
		}
		target := ""
		if len(args) > 1 {
			target = args[1]
		}
		return game.PlayCard(n-1, "", target), nil
	case "attack", "atk":
		if len(args) < 2 {
			return game.Action{}, fmt.Errorf("usage: attack <unit> <target>")
		}
		return game.Attack(args[0], args[1]), nil
	case "bid":
		n, err := intArg(args, 0, "amount")
		if err != nil {
			return game.Action{}, err
		}
		return game.Bid(n), nil
	case "undo", "u":
		return game.Undo(), nil
	case "reset":
		return game.Reset(), nil
	default:
		return game.Action{}, fmt.Errorf("%w: %q (try help)", game.ErrUnknownAction, cmd)
	}
}

func intArg(args []string, i int, what string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", what)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", what, args[i])
	}
	return n, nil
}

// apply prints what changed, then reports a rejection.
func (r *REPL) apply(m *game.Match, err error) error {
	r.printer.Print(m.Log)
	if err != nil {
		return err
	}
	if m.Victory.Decided() {
		r.renderResult(m)
	} else {
		r.renderState(m)
	}
	return nil
}

func (r *REPL) save(ctx context.Context, args []string) error {
	if r.Scenarios == nil {
		return fmt.Errorf("no scenario store configured")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: save <name>")
	}
	name := strings.Join(args, " ")
	if err := r.Scenarios.Save(ctx, name, r.Session.State()); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Saved %q.\n", name)
	return nil
}

func (r *REPL) load(ctx context.Context, args []string) error {
	if r.Scenarios == nil {
		return fmt.Errorf("no scenario store configured")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: load <name>")
	}
	name := strings.Join(args, " ")
	m, err := r.Scenarios.Load(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Loaded %q.\n", name)
	r.printer = log.NewPrinter(r.Out)
	return r.apply(r.Session.Load(ctx, m))
}

func (r *REPL) list(ctx context.Context) error {
	if r.Scenarios == nil {
		return fmt.Errorf("no scenario store configured")
	}
	list, err := r.Scenarios.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(r.Out, "No saved scenarios.")
		return nil
	}
	for _, sc := range list {
		status := ""
		if sc.Decided {
			status = " (decided)"
		}
		fmt.Fprintf(r.Out, "  %-20s T%d %s%s  %s\n", sc.Name, sc.Turn, sc.Phase, status, sc.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// --- Rendering ---

func (r *REPL) renderState(m *game.Match) {
	mv := view.Build(m, r.Session.Engine().Library, r.Player, nil)
	w := r.Out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	r.renderSide(mv.Opponent, "OPPONENT")
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	r.renderSide(mv.You, "YOU")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", mv.Turn, mv.Phase)
	if mv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	turnInfo += fmt.Sprintf(" | Win chance %d%%", mv.WinProbability)
	if mv.Weather != "" {
		turnInfo += " | Weather: " + mv.Weather
	}
	fmt.Fprintln(w, turnInfo)

	if len(mv.You.Hand) > 0 {
		fmt.Fprint(w, "\nHand: ")
		for _, c := range mv.You.Hand {
			fmt.Fprintf(w, "[%d] %s (%d)  ", c.Index+1, c.Name, c.Cost)
		}
		fmt.Fprintln(w)
	}
}

func (r *REPL) renderSide(p view.PlayerView, label string) {
	w := r.Out
	fmt.Fprintf(w, "║  %s %s (HP: %d/%d)  Mana: %d/%d  Hand: %d  Deck: %d  Grave: %d\n",
		label, p.ID, p.Health, p.MaxHealth, p.Mana, p.MaxMana, p.HandCount, p.DeckCount, p.GraveyardCount)
	fmt.Fprint(w, "║  Board: ")
	if len(p.Board) == 0 {
		fmt.Fprint(w, "[ ]")
	}
	for _, u := range p.Board {
		fmt.Fprint(w, formatUnit(u), " ")
	}
	fmt.Fprintln(w)
}

func formatUnit(u view.UnitView) string {
	s := fmt.Sprintf("[%s %s %d/%d", u.InstanceID, u.Name, u.Atk, u.HP)
	if len(u.Keywords) > 0 {
		s += " " + strings.Join(u.Keywords, ",")
	}
	if u.Exhausted {
		s += " zz"
	}
	return s + "]"
}

func (r *REPL) renderActions(actions []game.Action) {
	fmt.Fprintln(r.Out, "\nActions:")
	for _, a := range view.Actions(actions) {
		fmt.Fprintf(r.Out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (r *REPL) renderResult(m *game.Match) {
	w := r.Out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, "          MATCH OVER")
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintf(w, "%s wins: %s\n", log.PlayerName(*m.Victory.Winner), m.Victory.Reason)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, "Type reset to play again.")
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.Out, `Commands:
  next                    advance to the next phase
  play <n> [target]       play the n-th card in hand (target: p1, p2 or a unit id)
  attack <unit> <target>  attack a unit id or a player id with a unit
  bid <n>                 bid mana during the auction
  actions                 list legal actions
  do <n>                  take the n-th legal action
  undo                    take back the last action
  reset                   start over with the same decks
  state | log             show the board | the full log
  save <name>             save the match as a scenario
  load <name>             restore a saved scenario
  scenarios               list saved scenarios
  quit`)
}
