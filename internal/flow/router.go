package flow

import (
	"fmt"
	"strings"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

const (
	RouterID    = RouterName + "_0"
	routerColor = "#ff8fab"
	routerType  = "ConditionAgent"

	// QuestionVariable is resolved by the platform at run time.
	QuestionVariable = "{{question}}"
)

var routerPosition = models.Position{X: 700, Y: 400}

// RouterHandle returns the id of the router's i-th output handle.
func RouterHandle(i int) string {
	return fmt.Sprintf("%s-output-%d", RouterID, i)
}

// RouterNode builds the intent router. It has one numeric output handle per
// scenario, in scenario order.
func RouterNode(policy models.RouterPolicy, scenarios []models.Scenario) Node {
	anchors := make([]OutputAnchor, len(scenarios))
	entries := make([]ScenarioInput, len(scenarios))
	for i, s := range scenarios {
		anchors[i] = OutputAnchor{
			ID:          RouterHandle(i),
			Label:       i,
			Name:        i,
			Description: fmt.Sprintf("Condition %d", i),
			Type:        "number",
		}
		entries[i] = ScenarioInput{Scenario: s.Description}
	}

	return Node{
		ID:       RouterID,
		Position: routerPosition,
		Data: NodeData{
			ID:          RouterID,
			Label:       "Intent Router",
			Version:     1.1,
			Name:        RouterName,
			Type:        routerType,
			Color:       routerColor,
			BaseClasses: []string{routerType},
			Category:    category,
			Description: "Route user to appropriate agent based on detected intention",
			InputParams: []InputParam{
				{
					Label:      "Model",
					Name:       "conditionAgentModel",
					Type:       "asyncOptions",
					LoadMethod: "listModels",
					LoadConfig: true,
					ID:         inputID(RouterID, "conditionAgentModel", "asyncOptions"),
				},
				{
					Label:       "Instructions",
					Name:        "conditionAgentInstructions",
					Type:        "string",
					Rows:        4,
					Placeholder: "Analyze the user input and route to the appropriate agent...",
					ID:          inputID(RouterID, "conditionAgentInstructions", "string"),
				},
				{
					Label:          "Input",
					Name:           "conditionAgentInput",
					Type:           "string",
					AcceptVariable: true,
					ID:             inputID(RouterID, "conditionAgentInput", "string"),
				},
				{
					Label: "Scenarios",
					Name:  "conditionAgentScenarios",
					Type:  "array",
					Array: []InputParam{{Label: "Scenario", Name: "scenario", Type: "string", Rows: 2}},
					ID:    inputID(RouterID, "conditionAgentScenarios", "array"),
				},
			},
			InputAnchors: []any{},
			Inputs: &RouterInputs{
				Model: catalog.ModelProvider,
				ModelConfig: RouterModelConfig{
					ModelName:   catalog.ModelName,
					Temperature: catalog.RouterTemperature,
					Streaming:   true,
					AgentModel:  catalog.ModelProvider,
				},
				Instructions: Instructions(policy, scenarios),
				Input:        QuestionVariable,
				Scenarios:    entries,
			},
			OutputAnchors: anchors,
			Outputs:       map[string]any{},
		},
		Type:             NodeType,
		Width:            nodeWidth,
		Height:           nodeHeight,
		PositionAbsolute: routerPosition,
	}
}

// Instructions renders the router's classification policy: one keyword line
// per scenario, naming the scenario's output index.
func Instructions(policy models.RouterPolicy, scenarios []models.Scenario) string {
	var b strings.Builder
	b.WriteString(policy.Preamble)
	b.WriteString("\n\nKEYWORDS MAPPING:")
	for i, s := range scenarios {
		fmt.Fprintf(&b, "\n- %s → %s (Scenario %d)", s.Triggers, s.Title, i)
	}
	if policy.Footer != "" {
		b.WriteString("\n\n")
		b.WriteString(policy.Footer)
	}
	return b.String()
}
