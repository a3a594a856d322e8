package catalog

import "github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"

func scenarios() []models.Scenario {
	return []models.Scenario{
		{
			Key:         "fetch",
			AgentID:     1,
			Title:       "Data Fetcher",
			Description: "User needs to fetch latest SmartSheets data",
			Triggers:    `"fetch", "refresh", "get data", "pull SmartSheets"`,
		},
		{
			Key:         "changes",
			AgentID:     2,
			Title:       "Change Detector",
			Description: "User wants to see what changed since last check",
			Triggers:    `"changes", "deltas", "what changed", "compare"`,
		},
		{
			Key:         "heatmap",
			AgentID:     3,
			Title:       "Heat Map Analyzer",
			Description: "User wants to identify heating up issues with high update frequency",
			Triggers:    `"hot issues", "heating up", "frequent updates", "velocity"`,
		},
		{
			Key:         "transitions",
			AgentID:     4,
			Title:       "Status Transition Tracker",
			Description: "User wants status transition metrics and workflow analysis",
			Triggers:    `"status transitions", "workflow metrics", "state changes"`,
		},
		{
			Key:         "report",
			AgentID:     5,
			Title:       "Report Generator",
			Description: "User wants a comprehensive daily/periodic report",
			Triggers:    `"report", "summary", "daily", "comprehensive"`,
		},
		{
			Key:         "query",
			AgentID:     6,
			Title:       "Query Handler",
			Description: "User has a specific question about an issue or wants details",
			Triggers:    `"show issue", "details", "query", specific issue ID`,
		},
		{
			Key:         "alerts",
			AgentID:     7,
			Title:       "Alert Manager",
			Description: "User needs critical alerts for blocked or stalled issues",
			Triggers:    `"alerts", "critical", "blocked", "stalled"`,
		},
		{
			Key:         "trends",
			AgentID:     8,
			Title:       "Trend Analyzer",
			Description: "User wants trend analysis and predictive insights",
			Triggers:    `"trends", "patterns", "week over week", "predictive"`,
		},
	}
}

func routerPolicy() models.RouterPolicy {
	return models.RouterPolicy{
		Preamble: "Analyze the user's query and determine their primary intent. Route to the appropriate specialized agent:",
		Footer:   "If multiple intents detected, choose the PRIMARY intent based on main verb/action. If unclear, default to Report Generator (comprehensive overview).",
	}
}
