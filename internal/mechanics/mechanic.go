// Package mechanics adapts the externally authored mechanics catalog for the
// engine: typed lookups by well-known id with engine defaults for anything
// missing or disabled.
package mechanics

import (
	"github.com/peterkuimelis/cardlab/internal/dsl"
)

// Well-known mechanic ids read by the engine. Some mechanics have a legacy
// alias that is accepted as well.
const (
	MillID         = "win_con_mill"
	MillAlias      = "m3"
	ScoreID        = "win_con_score"
	UnitControlID  = "win_con_units"
	TimeLimitID    = "win_con_time"
	CountersID     = "win_con_counters"
	AuctionPhaseID = "auction_phase"
	ManaPoolID     = "mana_pool"
	ManaPoolAlias  = "m2"
	DynamicRulesID = "dynamic_rules"
	WeatherID      = "weather_effects"
)

// Catalog ids the engine lists but does not interpret.
const (
	ResourceID         = "win_con_resource"
	ObjectiveID        = "win_con_objective"
	HandSizeID         = "win_con_hand"
	PatternID          = "win_con_pattern"
	FogOfWarID         = "fog_of_war"
	InterruptID        = "interrupt_system"
	SacrificeID        = "sacrifice_core"
	TagSynergyID       = "tag_synergy"
	DeckMutationID     = "deck_mutation"
	PhaseSkipID        = "phase_skip"
	FactionAlignmentID = "faction_alignment"
	SignatureCardsID   = "signature_cards"
)

// Category groups mechanics in the catalog.
type Category string

const (
	CategoryCore         Category = "Core"
	CategoryStructural   Category = "Structural"
	CategoryResource     Category = "Resource"
	CategoryCombat       Category = "Combat"
	CategoryKeyword      Category = "Keyword"
	CategoryWinCondition Category = "Win Condition"
	CategoryExtension    Category = "Advanced Extension"
)

// Mechanic is one toggleable rule subsystem.
type Mechanic struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Category    Category       `yaml:"category" json:"category"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	FAQ         string         `yaml:"faq,omitempty" json:"faq,omitempty"`
	Example     string         `yaml:"example,omitempty" json:"dslExample,omitempty"`
	Triggers    []string       `yaml:"triggers,omitempty" json:"triggers,omitempty"`
	Enabled     bool           `yaml:"enabled" json:"isEnabled"`
	Parameters  map[string]any `yaml:"parameters,omitempty" json:"parameters"`
}

// Int returns a numeric parameter or def. Zero and non-numeric values fall
// back to def.
func (m Mechanic) Int(key string, def int) int {
	n, ok := dsl.ToInt(m.Parameters[key])
	if !ok || n == 0 {
		return def
	}
	return n
}

// Param returns a string parameter or def.
func (m Mechanic) Param(key, def string) string {
	s, ok := m.Parameters[key].(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// Catalog is a read-only list of mechanics. The zero value has nothing
// enabled.
type Catalog struct {
	list []Mechanic
}

// NewCatalog copies ms into a catalog.
func NewCatalog(ms []Mechanic) Catalog {
	list := make([]Mechanic, len(ms))
	copy(list, ms)
	return Catalog{list: list}
}

// All returns a copy of the catalog entries.
func (c Catalog) All() []Mechanic {
	out := make([]Mechanic, len(c.list))
	copy(out, c.list)
	return out
}

// Lookup returns the first mechanic whose id is one of ids.
func (c Catalog) Lookup(ids ...string) (Mechanic, bool) {
	for _, m := range c.list {
		for _, id := range ids {
			if m.ID == id {
				return m, true
			}
		}
	}
	return Mechanic{}, false
}

// Active returns the mechanic when it exists and is enabled.
func (c Catalog) Active(ids ...string) (Mechanic, bool) {
	m, ok := c.Lookup(ids...)
	if !ok || !m.Enabled {
		return Mechanic{}, false
	}
	return m, true
}

// Enabled reports whether any of ids is present and enabled.
func (c Catalog) Enabled(ids ...string) bool {
	_, ok := c.Active(ids...)
	return ok
}

// WithEnabled returns a copy of the catalog with the given mechanic toggled.
// Unknown ids are appended as a bare mechanic.
func (c Catalog) WithEnabled(id string, enabled bool) Catalog {
	out := c.All()
	for i := range out {
		if out[i].ID == id {
			out[i].Enabled = enabled
			return Catalog{list: out}
		}
	}
	return Catalog{list: append(out, Mechanic{ID: id, Name: id, Enabled: enabled})}
}

// WithParams returns a copy of the catalog with params merged into the
// parameters of id.
func (c Catalog) WithParams(id string, params map[string]any) Catalog {
	out := c.All()
	for i := range out {
		if out[i].ID != id {
			continue
		}
		merged := make(map[string]any, len(out[i].Parameters)+len(params))
		for k, v := range out[i].Parameters {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		out[i].Parameters = merged
	}
	return Catalog{list: out}
}
