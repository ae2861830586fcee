// Package mcp exposes a cardlab session as Model Context Protocol tools, so
// an agent can play the designer's seat against the scripted opponent.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/game"
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

// ToolResponse is the JSON envelope returned by all match tools.
type ToolResponse struct {
	Events   []view.EventView `json:"events"`
	State    *view.MatchView  `json:"state"`
	Rejected string           `json:"rejected,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   *int             `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
}

// Server holds the session the tools operate on.
type Server struct {
	sess      *session.Session
	scenarios Scenarios
	player    int
	logger    *zap.Logger

	mu      sync.Mutex
	lastSeq int
}

// NewServer creates a tool server for the given seat of sess. scenarios may
// be nil, which disables the scenario tools.
func NewServer(sess *session.Session, scenarios Scenarios, player int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{sess: sess, scenarios: scenarios, player: player, logger: logger}
}

// respond builds the tool response for m: the log entries appended since
// the previous response, the seat's view and the result if decided. A
// rejection is reported inside the response rather than as a tool error so
// the caller still sees the state it has to act on.
func (s *Server) respond(m *game.Match, rejected error) *ToolResponse {
	resp := &ToolResponse{
		Events: s.drainEvents(m),
		State:  view.Build(m, s.sess.Engine().Library, s.player, s.sess.Engine().LegalActions(m)),
	}
	if rejected != nil {
		resp.Rejected = rejected.Error()
	}
	if m.Victory.Decided() {
		resp.GameOver = true
		resp.Winner = resp.State.Winner
		resp.Result = m.Victory.Reason
	}
	return resp
}

// drainEvents returns the entries of m not yet reported. A log that went
// backwards (undo, reset, load) is reported from its new tail.
func (s *Server) drainEvents(m *game.Match) []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := m.Log
	if n := len(entries); n > 0 && entries[n-1].Seq < s.lastSeq {
		s.lastSeq = entries[n-1].Seq - 1
	}
	start := len(entries)
	for start > 0 && entries[start-1].Seq > s.lastSeq {
		start--
	}
	if n := len(entries); n > 0 {
		s.lastSeq = entries[n-1].Seq
	}
	return view.Events(entries[start:])
}

// respondJSON marshals v to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
