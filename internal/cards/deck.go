package cards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LibraryFile represents the top-level YAML structure of a card catalog.
type LibraryFile struct {
	Cards []*Card `yaml:"cards"`
}

// DeckFile represents the top-level YAML structure of a deck file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card id and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// ParseLibrary decodes a YAML card catalog and validates each entry.
func ParseLibrary(data []byte) (*Library, error) {
	var lf LibraryFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}
	for i, c := range lf.Cards {
		if c == nil || c.ID == "" {
			return nil, fmt.Errorf("card %d has no id", i+1)
		}
		t, err := ParseType(string(c.Type))
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", c.ID, err)
		}
		c.Type = t
		if c.Rarity == "" {
			c.Rarity = RarityCommon
		}
	}
	return NewLibrary(lf.Cards...), nil
}

// LoadLibrary reads a YAML card catalog from path.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLibrary(data)
}

// ParseDecks decodes a deck file and expands every deck into an ordered
// card-id list. Ids must exist in lib.
func ParseDecks(data []byte, lib *Library) (map[string][]string, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string][]string)
	for _, deck := range df.Decks {
		ids, err := expand(deck, lib)
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = ids
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, lib *Library) (string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return "", nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	ids, err := expand(deck, lib)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, ids, nil
}

func expand(deck DeckEntry, lib *Library) ([]string, error) {
	var ids []string
	for _, entry := range deck.Cards {
		if _, ok := lib.Get(entry.ID); !ok {
			return nil, fmt.Errorf("deck %q: card %q not in library", deck.Name, entry.ID)
		}
		for i := 0; i < entry.Count; i++ {
			ids = append(ids, entry.ID)
		}
	}
	return ids, nil
}

// SandboxDecks builds the default pair of decks from a library: every card
// once in id order for player 0 and the reverse for player 1.
func SandboxDecks(lib *Library) ([]string, []string) {
	all := lib.All()
	d0 := make([]string, 0, len(all))
	d1 := make([]string, 0, len(all))
	for _, c := range all {
		d0 = append(d0, c.ID)
	}
	for i := len(all) - 1; i >= 0; i-- {
		d1 = append(d1, all[i].ID)
	}
	return d0, d1
}
