// Package dsl parses the per-card rule language into structured effects.
//
// A rule block is newline separated. Each line is one of:
//
//	Keyword: Taunt, Rush
//	OnPlay: Deal 3 damage
//	wincon: score_target { scoreType: "lore", target: 20 }
//	mechanic: dynamic_rule { rule: "max_hand_size=8" }
//	Any line without a colon (a Passive note)
//
// Parsing never fails. Shapes the parser does not understand degrade to an
// inert effect.
package dsl

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var firstInt = regexp.MustCompile(`\d+`)

// Parse converts a rule block into effects, one per non-blank line, in line order.
func Parse(text string) []Effect {
	var effects []Effect
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		effects = append(effects, parseLine(trimmed))
	}
	return effects
}

func parseLine(line string) Effect {
	if strings.HasPrefix(line, "wincon:") || strings.HasPrefix(line, "mechanic:") {
		return parsePrefixed(line)
	}

	idx := strings.Index(line, ":")
	if idx < 0 {
		return Effect{Trigger: TriggerPassive, TriggerName: "Passive", Action: line}
	}

	token := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx+1:])

	if strings.EqualFold(token, "keyword") {
		return Effect{
			Trigger:     TriggerKeyword,
			TriggerName: "Keyword",
			Action:      "Apply Keywords",
			Keywords:    splitKeywords(rest),
		}
	}

	eff := Effect{
		Trigger:     ParseTrigger(token),
		TriggerName: token,
		Action:      rest,
	}
	if m := firstInt.FindString(rest); m != "" {
		n, err := strconv.Atoi(m)
		if errors.Is(err, strconv.ErrRange) {
			// Digit runs too long for an int saturate.
			n, err = math.MaxInt, nil
		}
		if err == nil {
			eff.Value = n
			eff.HasValue = true
		}
	}
	return eff
}

// parsePrefixed handles the wincon:/mechanic: forms, whose body is an action
// name followed by an optional {key: value, ...} parameter block.
func parsePrefixed(line string) Effect {
	idx := strings.Index(line, ":")
	prefix := line[:idx]
	rest := strings.TrimSpace(line[idx+1:])

	eff := Effect{Trigger: TriggerGlobal, TriggerName: "Global"}
	if prefix == "wincon" {
		eff.Trigger = TriggerVictory
		eff.TriggerName = "Victory"
	}

	head := rest
	if open := strings.Index(rest, "{"); open >= 0 {
		head = rest[:open]
	}
	eff.Action = strings.TrimSpace(head)
	if eff.Action == "" {
		eff.Action = "Unknown"
	}

	eff.Params = parseParams(rest)
	return eff
}

// parseParams reads the outermost {...} block of s. A missing or unclosed
// block yields an empty map.
func parseParams(s string) map[string]any {
	params := make(map[string]any)
	open := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if open < 0 || end <= open+1 {
		return params
	}

	for _, pair := range strings.Split(s[open+1:end], ",") {
		k, v, _ := strings.Cut(pair, ":")
		k = stripQuotes(k)
		if k == "" {
			continue
		}
		params[k] = ParseValue(stripQuotes(v))
	}
	return params
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, `'`, "")
	return s
}

// ParseValue turns numeric strings into numbers and leaves anything else as
// the string. Integral values become int so they compare cleanly against
// catalog thresholds.
func ParseValue(v string) any {
	if v == "" {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return v
	}
	if math.Abs(f) < 1<<53 && f == math.Trunc(f) {
		return int(f)
	}
	return f
}

func splitKeywords(s string) []string {
	var kws []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			kws = append(kws, k)
		}
	}
	return kws
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}

// Keywords returns the keyword list of the first Keyword line in text.
func Keywords(text string) []string {
	for _, eff := range Parse(text) {
		if eff.Trigger == TriggerKeyword {
			return eff.Keywords
		}
	}
	return nil
}

// HasKeyword reports whether kws contains kw, ignoring case.
func HasKeyword(kws []string, kw string) bool {
	for _, k := range kws {
		if strings.EqualFold(k, kw) {
			return true
		}
	}
	return false
}
