// Package catalog holds the built-in tables of the SmartSheets Issue Monitor
// workflow: agent personas, the shared tool set, router scenarios and the
// start form.
package catalog

import (
	"github.com/openai/openai-go"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

const (
	// Name is the catalog name recorded for the built-in tables.
	Name = "smartsheets-issue-monitor"

	// ModelProvider selects the chat model component on the platform.
	ModelProvider = "chatOpenAI"

	// RouterTemperature is the sampling temperature of the intent router.
	RouterTemperature = 0.2
)

// ModelName is the chat model every LLM node is configured with.
var ModelName = string(openai.ChatModelGPT4oMini)

func startForm() models.StartForm {
	return models.StartForm{
		Title:       "SmartSheets Issue Monitor",
		Description: "Intelligent issue log monitoring with change detection, heat mapping, and analytics reporting. Ask me about changes, hot issues, status transitions, comprehensive reports, specific issues, alerts, or trends.",
		Placeholder: "Intelligent issue log monitoring with change detection, heat mapping, and analytics reporting.",
		Field: models.FormField{
			Type:  "string",
			Name:  "query",
			Label: "What would you like to know about your issue log?",
		},
	}
}

// Default returns a freshly built copy of the built-in catalog.
func Default() *models.Catalog {
	return &models.Catalog{
		Name:      Name,
		Source:    "builtin",
		Form:      startForm(),
		Policy:    routerPolicy(),
		Agents:    agents(),
		Scenarios: scenarios(),
		Tools:     StandardTools(),
	}
}
