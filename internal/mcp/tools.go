package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/cardlab/internal/dsl"
	"github.com/peterkuimelis/cardlab/internal/game"
	"github.com/peterkuimelis/cardlab/internal/session"
	"github.com/peterkuimelis/cardlab/internal/view"
)

// Register adds all match tools to the MCP server.
func (s *Server) Register(srv *server.MCPServer) {
	srv.AddTool(getStateTool(), s.handleGetState)
	srv.AddTool(advancePhaseTool(), s.handleAdvancePhase)
	srv.AddTool(playCardTool(), s.handlePlayCard)
	srv.AddTool(attackTool(), s.handleAttack)
	srv.AddTool(bidTool(), s.handleBid)
	srv.AddTool(takeActionTool(), s.handleTakeAction)
	srv.AddTool(undoTool(), s.handleUndo)
	srv.AddTool(resetTool(), s.handleReset)
	srv.AddTool(parseRulesTool(), s.handleParseRules)
	if s.scenarios != nil {
		srv.AddTool(saveScenarioTool(), s.handleSaveScenario)
		srv.AddTool(loadScenarioTool(), s.handleLoadScenario)
		srv.AddTool(listScenariosTool(), s.handleListScenarios)
	}
}

// --- Tool definitions ---

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current match state from your seat, the log entries since the last call, "+
			"the numbered legal actions and the result if the match is decided. Read-only."),
	)
}

func advancePhaseTool() mcp.Tool {
	return mcp.NewTool("advance_phase",
		mcp.WithDescription("Advance to the next phase (Draw → Main → Combat → End, with Auction first when enabled). "+
			"Leaving End passes the turn; the scripted opponent then plays its turn before this call returns."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand. Costs mana equal to the card cost. "+
			"Damage effects target the opponent id or an enemy unit id; buffs target one of your unit ids."),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
		mcp.WithString("target", mcp.Description("Target player id (p1, p2) or unit instance id, if the card needs one")),
		mcp.WithString("card_id", mcp.Description("Expected card id at hand_index; the play is rejected if it differs")),
	)
}

func attackTool() mcp.Tool {
	return mcp.NewTool("attack",
		mcp.WithDescription("Attack with a ready unit during Combat. If the opponent has a Taunt unit it must be the target."),
		mcp.WithString("attacker", mcp.Required(), mcp.Description("Instance id of your attacking unit")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Opponent player id or enemy unit instance id")),
	)
}

func bidTool() mcp.Tool {
	return mcp.NewTool("bid",
		mcp.WithDescription("Spend mana as a bid during the Auction phase."),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Mana to bid (0 or more, at most your current mana)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Take one of the numbered legal actions listed in the state."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into state.actions")),
	)
}

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Take back your last action, including any opponent turn it triggered."),
	)
}

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Start a fresh match with the same decks."),
	)
}

func parseRulesTool() mcp.Tool {
	return mcp.NewTool("parse_rules",
		mcp.WithDescription("Parse card rule text (one effect per line) and report the trigger, value, keywords, "+
			"parameters and recognized verbs of each line. Does not touch the match."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Rule text, e.g. 'OnPlay: Deal 3 damage'")),
	)
}

func saveScenarioTool() mcp.Tool {
	return mcp.NewTool("save_scenario",
		mcp.WithDescription("Save the current match under a name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Scenario name")),
	)
}

func loadScenarioTool() mcp.Tool {
	return mcp.NewTool("load_scenario",
		mcp.WithDescription("Replace the current match with a saved scenario. Undo history starts empty."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Scenario name")),
	)
}

func listScenariosTool() mcp.Tool {
	return mcp.NewTool("list_scenarios",
		mcp.WithDescription("List saved scenarios, most recent first."),
	)
}

// --- Tool handlers ---

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(s.respond(s.sess.State(), nil))), nil
}

func (s *Server) handleAdvancePhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, game.AdvancePhase())
}

func (s *Server) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index := request.GetInt("hand_index", -1)
	if index < 0 {
		return mcp.NewToolResultError("hand_index must be >= 0"), nil
	}
	return s.apply(ctx, game.PlayCard(index, request.GetString("card_id", ""), request.GetString("target", "")))
}

func (s *Server) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	attacker := request.GetString("attacker", "")
	target := request.GetString("target", "")
	if attacker == "" || target == "" {
		return mcp.NewToolResultError("attacker and target are required"), nil
	}
	return s.apply(ctx, game.Attack(attacker, target))
}

func (s *Server) handleBid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, game.Bid(request.GetInt("amount", 0)))
}

func (s *Server) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.sess.State().TurnOwner != s.player {
		return mcp.NewToolResultError("It is not your turn."), nil
	}
	index := request.GetInt("index", -1)
	m, err := s.sess.Choose(ctx, index)
	if errors.Is(err, session.ErrNoSuchAction) {
		return mcp.NewToolResultErrorf("Invalid index %d. Use get_state to list actions.", index), nil
	}
	return s.result(m, err)
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, game.Undo())
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, game.Reset())
}

func (s *Server) handleParseRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	return mcp.NewToolResultText(respondJSON(map[string]any{
		"effects": view.Effects(dsl.Parse(text)),
	})), nil
}

func (s *Server) handleSaveScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if err := s.scenarios.Save(ctx, name, s.sess.State()); err != nil {
		return mcp.NewToolResultErrorf("Failed to save scenario: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string]string{"saved": name})), nil
}

func (s *Server) handleLoadScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	m, err := s.scenarios.Load(ctx, name)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load scenario: %v", err), nil
	}
	return s.result(s.sess.Load(ctx, m))
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.scenarios.List(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to list scenarios: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string]any{"scenarios": list})), nil
}

// apply submits an action for the agent's seat.
func (s *Server) apply(ctx context.Context, a game.Action) (*mcp.CallToolResult, error) {
	if a.Type != game.ActionUndo && a.Type != game.ActionReset && s.sess.State().TurnOwner != s.player {
		return mcp.NewToolResultError("It is not your turn."), nil
	}
	return s.result(s.sess.Apply(ctx, a))
}

// result reports m. Engine rejections are part of the response; anything
// else (a failing opponent, a cancelled request) is a tool error.
func (s *Server) result(m *game.Match, err error) (*mcp.CallToolResult, error) {
	if err != nil && !game.IsRejection(err) {
		s.logger.Error("session action failed", zap.Error(err))
		return mcp.NewToolResultErrorf("Action failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(s.respond(m, err))), nil
}
