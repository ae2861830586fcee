// Package cards holds card templates and the read-only library the engine
// resolves card ids against.
package cards

import (
	"fmt"
	"sort"
	"strings"

	"github.com/peterkuimelis/cardlab/internal/dsl"
)

// --- Enums ---

type CardType string

const (
	TypeUnit     CardType = "Unit"
	TypeSpell    CardType = "Spell"
	TypeArtifact CardType = "Artifact"
	TypeLand     CardType = "Land"
)

// ParseType maps a catalog string to a CardType, ignoring case.
func ParseType(s string) (CardType, error) {
	for _, t := range []CardType{TypeUnit, TypeSpell, TypeArtifact, TypeLand} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown card type %q", s)
}

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// --- Card template ---

type Card struct {
	ID     string   `yaml:"id" json:"id"`
	Name   string   `yaml:"name" json:"name"`
	Cost   int      `yaml:"cost" json:"cost"`
	Atk    *int     `yaml:"atk,omitempty" json:"atk,omitempty"`
	HP     *int     `yaml:"hp,omitempty" json:"hp,omitempty"`
	Type   CardType `yaml:"type" json:"type"`
	Rarity Rarity   `yaml:"rarity,omitempty" json:"rarity,omitempty"`
	Rules  string   `yaml:"rules,omitempty" json:"rules"`
	Tags   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Notes  string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

func (c *Card) String() string {
	return c.Name
}

// BaseAtk returns the template attack, 0 when unset.
func (c *Card) BaseAtk() int {
	if c.Atk == nil {
		return 0
	}
	return *c.Atk
}

// BaseHP returns the template health. A unit with none (or zero) enters
// with 1.
func (c *Card) BaseHP() int {
	if c.HP == nil || *c.HP == 0 {
		return 1
	}
	return *c.HP
}

// Effects parses the card's rule text.
func (c *Card) Effects() []dsl.Effect {
	return dsl.Parse(c.Rules)
}

// Keywords returns the keywords granted by the card's rule text.
func (c *Card) Keywords() []string {
	return dsl.Keywords(c.Rules)
}

// IsUnit reports whether playing the card puts a unit on the board.
func (c *Card) IsUnit() bool {
	return c.Type == TypeUnit
}

// Stat is a convenience for building cards in code and tests.
func Stat(n int) *int {
	return &n
}

// --- Library ---

// Library is a read-only id → template lookup.
type Library struct {
	byID map[string]*Card
}

// NewLibrary indexes cs by id. Later duplicates replace earlier ones.
func NewLibrary(cs ...*Card) *Library {
	l := &Library{byID: make(map[string]*Card, len(cs))}
	for _, c := range cs {
		l.byID[c.ID] = c
	}
	return l
}

// Get returns the template for id.
func (l *Library) Get(id string) (*Card, bool) {
	if l == nil {
		return nil, false
	}
	c, ok := l.byID[id]
	return c, ok
}

// Name returns the card name for id, or id itself when unknown.
func (l *Library) Name(id string) string {
	if c, ok := l.Get(id); ok {
		return c.Name
	}
	return id
}

// All returns every card sorted by id.
func (l *Library) All() []*Card {
	if l == nil {
		return nil
	}
	out := make([]*Card, 0, len(l.byID))
	for _, c := range l.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of cards in the library.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byID)
}
