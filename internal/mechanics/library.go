package mechanics

// Default returns the built-in catalog. Mill, the mana pool, sacrifice and
// tag synergy ship enabled; every other win condition and extension starts
// disabled. Parameters here are the catalog's own values; the engine
// defaults in rules.go only apply when a parameter is missing.
func Default() Catalog {
	return NewCatalog([]Mechanic{
		{
			ID:          ManaPoolID,
			Name:        "Mana Pool",
			Category:    CategoryResource,
			Description: "Max mana grows by one per turn up to a cap.",
			FAQ:         "Refilled at the start of every Draw phase.",
			Triggers:    []string{"onTurnStart"},
			Enabled:     true,
			Parameters:  map[string]any{"cap": DefaultManaCap},
		},

		// --- Win conditions ---
		{
			ID:          MillID,
			Name:        "Deck Exhaustion (Mill)",
			Category:    CategoryWinCondition,
			Description: "A player loses when they attempt to draw from an empty deck.",
			FAQ:         "Checked during every draw attempt. If deck count is 0, the drawer loses immediately.",
			Example:     "wincon: deck_exhaustion",
			Triggers:    []string{"onDrawAttempt"},
			Enabled:     true,
			Parameters:  map[string]any{},
		},
		{
			ID:          ResourceID,
			Name:        "Resource Threshold",
			Category:    CategoryWinCondition,
			Description: "Win when a player reaches a specified resource amount.",
			FAQ:         "Checked after any event that increases player resources.",
			Example:     `wincon: resource_threshold { resource: "energy", amount: 10 }`,
			Triggers:    []string{"onResourceChange"},
			Parameters:  map[string]any{"resource": "energy", "amount": 10},
		},
		{
			ID:          ScoreID,
			Name:        "Point Scoring",
			Category:    CategoryWinCondition,
			Description: "Win when a player reaches a specific point target (e.g. 20 lore).",
			FAQ:         "Used in racing-style games. Score types are free-form.",
			Example:     `wincon: score_target { scoreType: "lore", target: 20 }`,
			Triggers:    []string{"onScoreUpdate"},
			Parameters:  map[string]any{"scoreType": DefaultScoreType, "target": DefaultScoreTarget},
		},
		{
			ID:          UnitControlID,
			Name:        "Unit Control",
			Category:    CategoryWinCondition,
			Description: "Win if a player controls X units simultaneously.",
			FAQ:         "Encourages swarm or token strategies. Checked after every action.",
			Example:     "wincon: unit_control { count: 7 }",
			Triggers:    []string{"onBoardChange"},
			Parameters:  map[string]any{"count": DefaultUnitCount},
		},
		{
			ID:          ObjectiveID,
			Name:        "Objective Completion",
			Category:    CategoryWinCondition,
			Description: "Win when a game state meets a designer objective.",
			FAQ:         `E.g. "Control 3 Artifacts". Checks card tags on the board.`,
			Example:     `wincon: objective_complete { tag: "artifact", count: 3 }`,
			Triggers:    []string{"onStateChange"},
			Parameters:  map[string]any{"tag": "artifact", "count": 3},
		},
		{
			ID:          HandSizeID,
			Name:        "High Hand Win",
			Category:    CategoryWinCondition,
			Description: "Win if a player ends their turn with a full hand.",
			FAQ:         "Encourages control and hoarding strategies.",
			Example:     "wincon: hand_size_end { size: 7 }",
			Triggers:    []string{"onTurnEnd"},
			Parameters:  map[string]any{"size": 7},
		},
		{
			ID:          CountersID,
			Name:        "Counter Threshold",
			Category:    CategoryWinCondition,
			Description: "Win when specific counters reach a limit.",
			FAQ:         "E.g. 10 poison counters. The holder of the counters loses.",
			Example:     `wincon: counter_target { counter: "poison", threshold: 10 }`,
			Triggers:    []string{"onCounterUpdate"},
			Parameters:  map[string]any{"counter": DefaultCounterName, "threshold": DefaultCounterTrigger},
		},
		{
			ID:          PatternID,
			Name:        "Board Pattern Win",
			Category:    CategoryWinCondition,
			Description: "Win by achieving specific board states (e.g. full front row).",
			FAQ:         "Positional win condition.",
			Example:     `wincon: board_pattern { pattern: "full_frontline" }`,
			Triggers:    []string{"onBoardChange"},
			Parameters:  map[string]any{"pattern": "full_frontline"},
		},
		{
			ID:          TimeLimitID,
			Name:        "Time-Based Win",
			Category:    CategoryWinCondition,
			Description: "Win if the game reaches turn X with a specific lead.",
			FAQ:         "Prevents infinite games. At the cap the healthier player wins.",
			Example:     `wincon: time_based { turn: 10, condition: "score_lead" }`,
			Triggers:    []string{"onTurnStart"},
			Parameters:  map[string]any{"turn": 10, "condition": "score_lead"},
		},

		// --- Advanced extensions ---
		{
			ID:          DynamicRulesID,
			Name:        "Dynamic Rule Mutation",
			Category:    CategoryExtension,
			Description: "Cards can modify global game rules mid-simulation.",
			FAQ:         "Allows mechanics where hand size or draw amount changes.",
			Example:     `mechanic: dynamic_rule { rule: "max_hand_size=8" }`,
			Triggers:    []string{"onPlay"},
			Parameters:  map[string]any{},
		},
		{
			ID:          FogOfWarID,
			Name:        "Fog of War",
			Category:    CategoryExtension,
			Description: "Hides card information in specific zones (e.g. facedown units).",
			FAQ:         `Requires "Reveal" effects to interact.`,
			Example:     `mechanic: fog_of_war { zone: "board" }`,
			Triggers:    []string{"onStateRender"},
			Parameters:  map[string]any{},
		},
		{
			ID:          WeatherID,
			Name:        "Weather / Field Effects",
			Category:    CategoryExtension,
			Description: "Global persistent effects lasting multiple turns (Fog, Storm).",
			FAQ:         "Affects stats or triggers for all players.",
			Example:     `event: weather { name: "fog", duration: 3 }`,
			Triggers:    []string{"onTurnStart"},
			Parameters:  map[string]any{"duration": 3},
		},
		{
			ID:          InterruptID,
			Name:        "Reaction / Interrupt",
			Category:    CategoryExtension,
			Description: "Play actions during an opponent turn or in response to triggers.",
			FAQ:         "Enables interactive stack manipulation.",
			Example:     `mechanic: interrupt { trigger: "onPlay", effect: "counter" }`,
			Triggers:    []string{"onOpponentAction"},
			Parameters:  map[string]any{},
		},
		{
			ID:          AuctionPhaseID,
			Name:        "Auction / Bidding",
			Category:    CategoryExtension,
			Description: "Add a dedicated phase where players bid resources.",
			FAQ:         "Used for determining turn order or special drafting.",
			Example:     `mechanic: phase_add { type: "Auction" }`,
			Triggers:    []string{"onRoundStart"},
			Parameters:  map[string]any{},
		},
		{
			ID:          SacrificeID,
			Name:        "Sacrifice Mechanics",
			Category:    CategoryExtension,
			Description: "Voluntarily destroy your own assets for amplified benefits.",
			FAQ:         "Core mechanic for death-themed factions.",
			Example:     "OnSacrifice: GainResource { amount: 3 }",
			Triggers:    []string{"onSelfDestruction"},
			Enabled:     true,
			Parameters:  map[string]any{},
		},
		{
			ID:          TagSynergyID,
			Name:        "Tag Synergy",
			Category:    CategoryExtension,
			Description: "Dynamic bonuses for cards sharing specific tags.",
			FAQ:         "E.g. Dragons gain +1 Attack for each other Dragon.",
			Example:     `mechanic: synergy { tag: "dragon", bonus: "+1/+1" }`,
			Triggers:    []string{"onBoardUpdate"},
			Enabled:     true,
			Parameters:  map[string]any{},
		},
		{
			ID:          DeckMutationID,
			Name:        "Deck Mutation",
			Category:    CategoryExtension,
			Description: "Permanently alter cards in the deck or graveyard during play.",
			FAQ:         "Stat changes that persist across zones.",
			Example:     `OnPlay: Mutate { target: "deck", cost: -1 }`,
			Triggers:    []string{"onPlay"},
			Parameters:  map[string]any{},
		},
		{
			ID:          PhaseSkipID,
			Name:        "Phase Skip",
			Category:    CategoryExtension,
			Description: "Effects that force a player to bypass a specific turn phase.",
			FAQ:         "Powerful disruptive tool.",
			Example:     `mechanic: skip_phase { targetPhase: "Combat" }`,
			Triggers:    []string{"onTurnStart"},
			Parameters:  map[string]any{},
		},
		{
			ID:          FactionAlignmentID,
			Name:        "Faction / Alignment System",
			Category:    CategoryExtension,
			Description: "Interactions based on card faction tags.",
			FAQ:         "Incentivizes mono-faction or multi-faction builds.",
			Example:     `mechanic: faction_bonus { faction: "undead", bonus: "hp+2" }`,
			Triggers:    []string{"onDeckValidation", "onPlay"},
			Parameters:  map[string]any{},
		},
		{
			ID:          SignatureCardsID,
			Name:        "Signature Cards",
			Category:    CategoryExtension,
			Description: "Define unique cards that have special deck-limit rules.",
			FAQ:         `Forces a "1 per deck" limit regardless of general copy rules.`,
			Example:     "system:signature_limit(1)",
			Triggers:    []string{"onDeckValidation"},
			Parameters:  map[string]any{},
		},
	})
}
