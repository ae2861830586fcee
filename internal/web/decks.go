package web

import (
	"net/http"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/cardlab/internal/cards"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"` // unique card names, in deck order
	Size   int      `json:"size"`
}

func parseDeckFileYAML(data []byte) (cards.DeckFile, error) {
	var df cards.DeckFile
	err := yaml.Unmarshal(data, &df)
	return df, err
}

// handleDecks lists the decks of the configured deck file, or the two decks
// the current match was dealt from when there is none.
func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	if s.decksFile == "" {
		decks := s.sess.State().Decks
		out := make([]DeckInfo, 0, len(decks))
		for i, ids := range decks {
			out = append(out, DeckInfo{
				Number: i + 1,
				Name:   "Sandbox " + []string{"P1", "P2"}[i],
				Cards:  s.uniqueNames(ids),
				Size:   len(ids),
			})
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	data, err := os.ReadFile(s.decksFile)
	if err != nil {
		s.logger.Error("read decks file", zap.String("path", s.decksFile), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "could not read decks file")
		return
	}
	df, err := parseDeckFileYAML(data)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not parse decks file")
		return
	}

	out := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{Number: i + 1, Name: d.Name}
		var ids []string
		for _, c := range d.Cards {
			ids = append(ids, c.ID)
			di.Size += c.Count
		}
		di.Cards = s.uniqueNames(ids)
		out = append(out, di)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uniqueNames(ids []string) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, id := range ids {
		if !seen[id] {
			names = append(names, s.lib.Name(id))
			seen[id] = true
		}
	}
	return names
}
