package mechanics

// Engine defaults used when a mechanic is missing, disabled, or leaves a
// parameter unset.
const (
	DefaultManaCap        = 10
	DefaultScoreType      = "lore"
	DefaultScoreTarget    = 20
	DefaultUnitCount      = 7
	DefaultTurnCap        = 15
	DefaultCounterName    = "poison"
	DefaultCounterTrigger = 10
)

// ScoreRule is the point-scoring win condition.
type ScoreRule struct {
	Type   string
	Target int
}

// CounterRule is the counter-threshold win condition.
type CounterRule struct {
	Counter   string
	Threshold int
}

// ManaCap returns the ceiling for max mana.
func (c Catalog) ManaCap() int {
	if m, ok := c.Active(ManaPoolAlias, ManaPoolID); ok {
		return m.Int("cap", DefaultManaCap)
	}
	return DefaultManaCap
}

// MillEnabled reports whether drawing from an empty deck loses the match.
func (c Catalog) MillEnabled() bool {
	return c.Enabled(MillID, MillAlias)
}

// AuctionEnabled reports whether the Auction phase is spliced into the turn.
func (c Catalog) AuctionEnabled() bool {
	return c.Enabled(AuctionPhaseID)
}

// Score returns the active score rule, if any.
func (c Catalog) Score() (ScoreRule, bool) {
	m, ok := c.Active(ScoreID)
	if !ok {
		return ScoreRule{}, false
	}
	return ScoreRule{
		Type:   m.Param("scoreType", DefaultScoreType),
		Target: m.Int("target", DefaultScoreTarget),
	}, true
}

// UnitCount returns the board size that wins under unit control.
func (c Catalog) UnitCount() (int, bool) {
	m, ok := c.Active(UnitControlID)
	if !ok {
		return 0, false
	}
	return m.Int("count", DefaultUnitCount), true
}

// TurnCap returns the turn at which the time limit ends the match.
func (c Catalog) TurnCap() (int, bool) {
	m, ok := c.Active(TimeLimitID)
	if !ok {
		return 0, false
	}
	return m.Int("turn", DefaultTurnCap), true
}

// Counters returns the active counter rule, if any.
func (c Catalog) Counters() (CounterRule, bool) {
	m, ok := c.Active(CountersID)
	if !ok {
		return CounterRule{}, false
	}
	return CounterRule{
		Counter:   m.Param("counter", DefaultCounterName),
		Threshold: m.Int("threshold", DefaultCounterTrigger),
	}, true
}
