package dsl

import (
	"math"
	"strings"
)

// Trigger is the moment at which an effect becomes eligible to apply.
type Trigger int

const (
	TriggerPassive Trigger = iota
	TriggerOnPlay
	TriggerOnDeath
	TriggerOnEndTurn
	TriggerKeyword
	TriggerVictory
	TriggerGlobal
	TriggerCustom // any other token; kept verbatim in Effect.TriggerName
)

func (t Trigger) String() string {
	switch t {
	case TriggerPassive:
		return "Passive"
	case TriggerOnPlay:
		return "OnPlay"
	case TriggerOnDeath:
		return "OnDeath"
	case TriggerOnEndTurn:
		return "OnEndTurn"
	case TriggerKeyword:
		return "Keyword"
	case TriggerVictory:
		return "Victory"
	case TriggerGlobal:
		return "Global"
	default:
		return "Custom"
	}
}

// ParseTrigger maps a rule-text trigger token to a Trigger, ignoring case.
// Unknown tokens map to TriggerCustom.
func ParseTrigger(token string) Trigger {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "passive":
		return TriggerPassive
	case "onplay":
		return TriggerOnPlay
	case "ondeath":
		return TriggerOnDeath
	case "onendturn":
		return TriggerOnEndTurn
	case "keyword":
		return TriggerKeyword
	case "victory":
		return TriggerVictory
	case "global":
		return TriggerGlobal
	default:
		return TriggerCustom
	}
}

// Verb is one member of the closed action vocabulary.
type Verb int

const (
	VerbDamage Verb = iota
	VerbDraw
	VerbBuff
	VerbAddScore
	VerbSetWeather
	VerbDynamicRule
	VerbAddCounter
)

func (v Verb) String() string {
	switch v {
	case VerbDamage:
		return "damage"
	case VerbDraw:
		return "draw"
	case VerbBuff:
		return "buff"
	case VerbAddScore:
		return "addscore"
	case VerbSetWeather:
		return "setweather"
	case VerbDynamicRule:
		return "dynamic_rule"
	case VerbAddCounter:
		return "addcounter"
	default:
		return "unknown"
	}
}

// Effect is one parsed rule-text line.
type Effect struct {
	Trigger     Trigger
	TriggerName string // token as written, e.g. "OnPlay" or "OnSacrifice"
	Action      string
	Value       int
	HasValue    bool
	Keywords    []string
	Params      map[string]any
}

// Verbs classifies the action into the verbs it matches. Matching is a
// case-insensitive substring match, so one action may carry several verbs
// ("gain 2 and draw" is both Buff and Draw). Verbs are returned in a fixed
// order.
func (e Effect) Verbs() []Verb {
	action := strings.ToLower(strings.TrimSpace(e.Action))
	var verbs []Verb
	if strings.Contains(action, "deal") || strings.Contains(action, "damage") {
		verbs = append(verbs, VerbDamage)
	}
	if strings.Contains(action, "draw") {
		verbs = append(verbs, VerbDraw)
	}
	if strings.Contains(action, "buff") || strings.Contains(action, "gain") {
		verbs = append(verbs, VerbBuff)
	}
	if strings.Contains(action, "addscore") {
		verbs = append(verbs, VerbAddScore)
	}
	if action == "setweather" {
		verbs = append(verbs, VerbSetWeather)
	}
	if strings.Contains(action, "dynamic_rule") {
		verbs = append(verbs, VerbDynamicRule)
	}
	if strings.Contains(action, "addcounter") {
		verbs = append(verbs, VerbAddCounter)
	}
	return verbs
}

// Recognized reports whether the action matches at least one verb.
func (e Effect) Recognized() bool {
	return len(e.Verbs()) > 0
}

// ValueOr returns the parsed numeric value, or def when the line had none.
// A parsed zero also falls back to def.
func (e Effect) ValueOr(def int) int {
	if !e.HasValue || e.Value == 0 {
		return def
	}
	return e.Value
}

// Param returns a string parameter, or def if absent.
func (e Effect) Param(key, def string) string {
	v, ok := e.Params[key]
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return def
		}
		return s
	default:
		return formatNumber(v)
	}
}

// IntParam returns a numeric parameter rounded to the nearest int, or def if
// the parameter is absent, zero or not numeric.
func (e Effect) IntParam(key string, def int) int {
	f, ok := ToFloat(e.Params[key])
	if !ok || f == 0 {
		return def
	}
	return roundInt(f)
}

// ToInt converts the numeric shapes produced by this parser and by YAML
// decoding into an int. Fractions round to the nearest int, halves away
// from zero.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, false
	}
	return roundInt(f), true
}

// ToFloat converts a numeric parameter into a float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	default:
		return 0, false
	}
}

func roundInt(f float64) int {
	r := math.Round(f)
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}
