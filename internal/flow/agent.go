package flow

import (
	"fmt"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

const (
	agentColor = "#4DD0E1"
	agentType  = "Agent"
)

// AgentID returns the node id of the agent with the given catalog id.
func AgentID(id int) string {
	return fmt.Sprintf("%s_%d", AgentName, id)
}

// AgentNode builds one agent node. The tool set is attached as given; the
// memory window is written only when the agent declares one.
func AgentNode(spec models.AgentSpec, tools []models.ToolConfig) Node {
	id := AgentID(spec.ID)

	var window *int
	if spec.MemoryWindow != nil {
		w := *spec.MemoryWindow
		window = &w
	}

	return Node{
		ID:       id,
		Position: spec.Position,
		Data: NodeData{
			ID:           id,
			Label:        spec.Label,
			Version:      2.2,
			Name:         AgentName,
			Type:         agentType,
			Color:        agentColor,
			BaseClasses:  []string{agentType},
			Category:     category,
			Description:  "Dynamically choose and utilize tools during runtime, enabling multi-step reasoning",
			InputParams:  agentInputParams(id),
			InputAnchors: []any{},
			Inputs: &AgentInputs{
				Model: catalog.ModelProvider,
				ModelConfig: AgentModelConfig{
					ModelName:       catalog.ModelName,
					Temperature:     spec.Temperature,
					Streaming:       true,
					ImageResolution: "low",
					AgentModel:      catalog.ModelProvider,
				},
				Messages:         []Message{{Role: "system", Content: spec.Persona}},
				Tools:            tools,
				EnableMemory:     true,
				MemoryType:       string(spec.Memory),
				MemoryWindowSize: window,
				ReturnResponseAs: "userMessage",
			},
			OutputAnchors: []OutputAnchor{
				{
					ID:          AgentHandle(spec.ID),
					Label:       agentType,
					Name:        AgentName,
					Description: agentType,
					Type:        "Agent | AgentExecutor",
				},
			},
			Outputs: map[string]any{},
		},
		Type:             NodeType,
		Width:            nodeWidth,
		Height:           nodeHeight,
		PositionAbsolute: spec.Position,
	}
}

// AgentHandle returns the id of an agent node's output handle.
func AgentHandle(id int) string {
	return AgentID(id) + "-output-" + AgentName + "-Agent|AgentExecutor"
}

func agentInputParams(id string) []InputParam {
	return []InputParam{
		{
			Label:      "Model",
			Name:       "agentModel",
			Type:       "asyncOptions",
			LoadMethod: "listModels",
			LoadConfig: true,
			ID:         inputID(id, "agentModel", "asyncOptions"),
			Display:    true,
		},
		{
			Label:          "Messages",
			Name:           "agentMessages",
			Type:           "array",
			Optional:       true,
			AcceptVariable: true,
			Array: []InputParam{
				{
					Label: "Role",
					Name:  "role",
					Type:  "options",
					Options: []Option{
						{Label: "System", Name: "system"},
						{Label: "Assistant", Name: "assistant"},
						{Label: "Developer", Name: "developer"},
						{Label: "User", Name: "user"},
					},
				},
				{
					Label:               "Content",
					Name:                "content",
					Type:                "string",
					AcceptVariable:      true,
					GenerateInstruction: true,
					Rows:                4,
				},
			},
			ID:      inputID(id, "agentMessages", "array"),
			Display: true,
		},
		{
			Label:    "Tools",
			Name:     "agentTools",
			Type:     "array",
			Optional: true,
			ID:       inputID(id, "agentTools", "array"),
			Display:  true,
		},
		{
			Label:   "Enable Memory",
			Name:    "agentEnableMemory",
			Type:    "boolean",
			Default: true,
			ID:      inputID(id, "agentEnableMemory", "boolean"),
			Display: true,
		},
		{
			Label: "Memory Type",
			Name:  "agentMemoryType",
			Type:  "options",
			Options: []Option{
				{Label: "All Messages", Name: string(models.MemoryAllMessages)},
				{Label: "Window Size", Name: string(models.MemoryWindowSize)},
				{Label: "Conversation Summary", Name: string(models.MemoryConversationSummary)},
			},
			Default: string(models.MemoryAllMessages),
			ID:      inputID(id, "agentMemoryType", "options"),
			Display: true,
		},
		{
			Label:    "Memory Window Size",
			Name:     "agentMemoryWindowSize",
			Type:     "number",
			Optional: true,
			ID:       inputID(id, "agentMemoryWindowSize", "number"),
		},
	}
}
