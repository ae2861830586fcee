// Package web serves a JSON API and a websocket stream over a session, for
// browser front ends.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/cards"
	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/game"
	"github.com/peterkuimelis/cardlab/internal/mechanics"
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

// Config configures a Server.
type Config struct {
	Session   *session.Session
	Mechanics mechanics.Catalog
	Scenarios Scenarios // nil disables the scenario endpoints
	DecksFile string    // optional, listed by /api/decks
	Player    int       // seat the browser plays
	Logger    *zap.Logger
}

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	*cards.Card
	Keywords []string          `json:"keywords,omitempty"`
	Effects  []view.EffectView `json:"effects"`
}

// Server is the cardlab web API server.
type Server struct {
	sess      *session.Session
	lib       *cards.Library
	mechanics mechanics.Catalog
	scenarios Scenarios
	decksFile string
	player    int
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		sess:      cfg.Session,
		lib:       cfg.Session.Engine().Library,
		mechanics: cfg.Mechanics,
		scenarios: cfg.Scenarios,
		decksFile: cfg.DecksFile,
		player:    cfg.Player,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/mechanics", s.handleMechanics)
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("POST /api/action", s.handleAction)
	s.mux.HandleFunc("POST /api/parse", s.handleParse)
	s.mux.HandleFunc("GET /api/scenarios", s.handleListScenarios)
	s.mux.HandleFunc("POST /api/scenarios", s.handleSaveScenario)
	s.mux.HandleFunc("POST /api/scenarios/{name}/load", s.handleLoadScenario)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// --- Catalog endpoints ---

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	all := s.lib.All()
	out := make([]CardInfo, 0, len(all))
	for _, c := range all {
		out = append(out, CardInfo{Card: c, Keywords: c.Keywords(), Effects: view.Effects(c.Effects())})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMechanics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mechanics.All())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"effects": view.Effects(dsl.Parse(req.Text))})
}

// --- Match endpoints ---

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stateMessage(s.sess.State()))
}

// handleAction applies a ClientMessage. Rejections answer 409 with the
// current state alongside the reason.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var msg view.ClientMessage
	if err := decodeJSON(r, &msg); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	m, err := s.dispatch(r.Context(), msg)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.stateMessage(m))
	case game.IsRejection(err), errors.Is(err, session.ErrNoSuchAction):
		resp := s.stateMessage(m)
		resp.Type = "error"
		resp.Error = err.Error()
		writeJSON(w, http.StatusConflict, resp)
	case m == nil:
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("action failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// dispatch routes a client message to the session. A nil match with an
// error means the message itself was malformed.
func (s *Server) dispatch(ctx context.Context, msg view.ClientMessage) (*game.Match, error) {
	if msg.Type == "choose" {
		return s.sess.Choose(ctx, msg.Index)
	}
	a, err := msg.ToAction()
	if err != nil {
		if errors.Is(err, game.ErrUnknownAction) {
			return s.sess.State(), err
		}
		return nil, err
	}
	return s.sess.Apply(ctx, a)
}

func (s *Server) stateMessage(m *game.Match) view.ServerMessage {
	mv := view.Build(m, s.lib, s.player, s.sess.Engine().LegalActions(m))
	return view.ServerMessage{Type: "state", State: mv}
}

// --- Scenario endpoints ---

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	if s.scenarios == nil {
		writeErr(w, http.StatusNotImplemented, "no scenario store configured")
		return
	}
	list, err := s.scenarios.List(r.Context())
	if err != nil {
		s.logger.Error("list scenarios", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "could not list scenarios")
		return
	}
	if list == nil {
		list = []store.Scenario{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	if s.scenarios == nil {
		writeErr(w, http.StatusNotImplemented, "no scenario store configured")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.scenarios.Save(r.Context(), req.Name, s.sess.State()); err != nil {
		s.logger.Error("save scenario", zap.String("name", req.Name), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "could not save scenario")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"saved": req.Name})
}

func (s *Server) handleLoadScenario(w http.ResponseWriter, r *http.Request) {
	if s.scenarios == nil {
		writeErr(w, http.StatusNotImplemented, "no scenario store configured")
		return
	}
	name := r.PathValue("name")
	m, err := s.scenarios.Load(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("load scenario", zap.String("name", name), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "could not load scenario")
		return
	}
	m, err = s.sess.Load(r.Context(), m)
	if err != nil {
		s.logger.Error("opponent failed after load", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, s.stateMessage(m))
}

// --- WebSocket ---

// handleWebSocket streams a state message after every change to the match
// and accepts ClientMessages from the browser. Rejections are sent back as
// error messages on the same socket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, unsubscribe := s.sess.Subscribe()
	defer unsubscribe()

	// Browser → session
	go func() {
		defer cancel()
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			var msg view.ClientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				s.send(ctx, wsConn, view.ServerMessage{Type: "error", Error: "invalid json"})
				continue
			}
			if _, err := s.dispatch(ctx, msg); err != nil {
				s.send(ctx, wsConn, view.ServerMessage{Type: "error", Error: err.Error()})
			}
		}
	}()

	// Session → browser
	for {
		select {
		case <-ctx.Done():
			wsConn.Close(websocket.StatusNormalClosure, "")
			return
		case m, ok := <-updates:
			if !ok {
				return
			}
			if err := s.send(ctx, wsConn, s.stateMessage(m)); err != nil {
				return
			}
		}
	}
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, msg view.ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		s.logger.Debug("websocket write", zap.Error(err))
		return err
	}
	return nil
}
