package catalog

import "github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"

// standardTools is the canonical tool set shared by every agent node.
var standardTools = []models.ToolConfig{
	{
		Tool: "currentDateTime",
		Config: models.Settings{
			{Key: "agentSelectedTool", Value: "currentDateTime"},
		},
	},
	{
		Tool: "searXNG",
		Config: models.Settings{
			{Key: "apiBase", Value: "https://s.llam.ai"},
			{Key: "toolName", Value: "searxng-search"},
			{Key: "toolDescription", Value: "Federated web/meta search. Use when you need fresh facts or sources. Provide a natural-language query; returns a ranked, de-duplicated JSON list of result metadata for follow-up browsing and citation."},
			{Key: "headers", Value: ""},
			{Key: "format", Value: "json"},
			{Key: "categories", Value: ""},
			{Key: "engines", Value: ""},
			{Key: "language", Value: ""},
			{Key: "pageno", Value: ""},
			{Key: "time_range", Value: ""},
			{Key: "safesearch", Value: ""},
			{Key: "agentSelectedTool", Value: "searXNG"},
		},
	},
}

// StandardTools returns a copy of the canonical tool set.
func StandardTools() []models.ToolConfig {
	out := make([]models.ToolConfig, len(standardTools))
	for i, t := range standardTools {
		out[i] = t
		out[i].Config = append(models.Settings(nil), t.Config...)
	}
	return out
}
