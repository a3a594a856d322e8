// Package flow builds Flowise agentflow documents: the start, router and
// agent nodes, the edges between them, and the serialized document.
package flow

import (
	"encoding/json"
	"fmt"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

// Platform node names. They select the runtime handler on the platform and
// must be reproduced exactly.
const (
	StartName  = "startAgentflow"
	RouterName = "conditionAgentAgentflow"
	AgentName  = "agentAgentflow"

	// NodeType is the React Flow node/edge type of every agentflow element.
	NodeType = "agentFlow"

	category   = "Agent Flows"
	nodeWidth  = 300
	nodeHeight = 500
)

// Document is the workflow file consumed by the platform.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Node struct {
	ID               string          `json:"id"`
	Position         models.Position `json:"position"`
	Data             NodeData        `json:"data"`
	Type             string          `json:"type"`
	Width            int             `json:"width"`
	Height           int             `json:"height"`
	Selected         bool            `json:"selected"`
	PositionAbsolute models.Position `json:"positionAbsolute"`
	Dragging         bool            `json:"dragging"`
}

// NodeData carries the platform-facing description of a node. Inputs holds
// *StartInputs, *RouterInputs or *AgentInputs depending on Name.
type NodeData struct {
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	Version       float64        `json:"version"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Color         string         `json:"color"`
	BaseClasses   []string       `json:"baseClasses"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	InputParams   []InputParam   `json:"inputParams"`
	InputAnchors  []any          `json:"inputAnchors"`
	Inputs        any            `json:"inputs"`
	OutputAnchors []OutputAnchor `json:"outputAnchors"`
	Outputs       map[string]any `json:"outputs"`
	Selected      bool           `json:"selected"`
}

// UnmarshalJSON decodes Inputs into the concrete type selected by Name so a
// decoded document re-encodes with the same key order.
func (d *NodeData) UnmarshalJSON(data []byte) error {
	type plain NodeData
	var raw struct {
		plain
		Inputs json.RawMessage `json:"inputs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = NodeData(raw.plain)
	if len(raw.Inputs) == 0 {
		return nil
	}

	var inputs any
	switch d.Name {
	case StartName:
		inputs = &StartInputs{}
	case RouterName:
		inputs = &RouterInputs{}
	case AgentName:
		inputs = &AgentInputs{}
	default:
		inputs = &map[string]any{}
	}
	if err := json.Unmarshal(raw.Inputs, inputs); err != nil {
		return fmt.Errorf("failed to decode inputs of node %s: %w", d.ID, err)
	}
	if m, ok := inputs.(*map[string]any); ok {
		d.Inputs = *m
	} else {
		d.Inputs = inputs
	}
	return nil
}

// InputParam declares one configurable input of a node. Only the fields a
// given parameter uses are set.
type InputParam struct {
	Label               string       `json:"label"`
	Name                string       `json:"name"`
	Type                string       `json:"type"`
	LoadMethod          string       `json:"loadMethod,omitempty"`
	LoadConfig          bool         `json:"loadConfig,omitempty"`
	Optional            bool         `json:"optional,omitempty"`
	AcceptVariable      bool         `json:"acceptVariable,omitempty"`
	GenerateInstruction bool         `json:"generateInstruction,omitempty"`
	Rows                int          `json:"rows,omitempty"`
	Placeholder         string       `json:"placeholder,omitempty"`
	Options             []Option     `json:"options,omitempty"`
	Array               []InputParam `json:"array,omitempty"`
	Datagrid            []GridColumn `json:"datagrid,omitempty"`
	Default             any          `json:"default,omitempty"`
	ID                  string       `json:"id,omitempty"`
	Display             bool         `json:"display,omitempty"`
}

type Option struct {
	Label string `json:"label"`
	Name  string `json:"name"`
}

type GridColumn struct {
	Field        string   `json:"field"`
	HeaderName   string   `json:"headerName"`
	Type         string   `json:"type,omitempty"`
	ValueOptions []string `json:"valueOptions,omitempty"`
	Editable     bool     `json:"editable,omitempty"`
}

// OutputAnchor is a connectable output handle. Router anchors use their
// numeric index as label and name.
type OutputAnchor struct {
	ID          string `json:"id"`
	Label       any    `json:"label"`
	Name        any    `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type Edge struct {
	Source       string   `json:"source"`
	SourceHandle string   `json:"sourceHandle"`
	Target       string   `json:"target"`
	TargetHandle string   `json:"targetHandle"`
	Data         EdgeData `json:"data"`
	Type         string   `json:"type"`
	ID           string   `json:"id"`
}

type EdgeData struct {
	SourceColor  string `json:"sourceColor"`
	TargetColor  string `json:"targetColor"`
	EdgeLabel    string `json:"edgeLabel"`
	IsHumanInput bool   `json:"isHumanInput"`
}

// StartInputs are the concrete values of the start node.
type StartInputs struct {
	FormTitle       string             `json:"formTitle"`
	FormDescription string             `json:"formDescription"`
	FormInputTypes  []models.FormField `json:"formInputTypes"`
}

type RouterModelConfig struct {
	ModelName   string  `json:"modelName"`
	Temperature float64 `json:"temperature"`
	Streaming   bool    `json:"streaming"`
	AgentModel  string  `json:"agentModel"`
}

type ScenarioInput struct {
	Scenario string `json:"scenario"`
}

// RouterInputs are the concrete values of the intent router.
type RouterInputs struct {
	Model        string            `json:"conditionAgentModel"`
	ModelConfig  RouterModelConfig `json:"conditionAgentModelConfig"`
	Instructions string            `json:"conditionAgentInstructions"`
	Input        string            `json:"conditionAgentInput"`
	Scenarios    []ScenarioInput   `json:"conditionAgentScenarios"`
}

// AgentModelConfig is the chat model configuration of an agent. Sampling
// parameters other than temperature are left as empty strings, which the
// platform treats as unset.
type AgentModelConfig struct {
	Cache             string  `json:"cache"`
	ModelName         string  `json:"modelName"`
	Temperature       float64 `json:"temperature"`
	Streaming         bool    `json:"streaming"`
	MaxTokens         string  `json:"maxTokens"`
	TopP              string  `json:"topP"`
	FrequencyPenalty  string  `json:"frequencyPenalty"`
	PresencePenalty   string  `json:"presencePenalty"`
	Timeout           string  `json:"timeout"`
	StrictToolCalling string  `json:"strictToolCalling"`
	StopSequence      string  `json:"stopSequence"`
	BasePath          string  `json:"basepath"`
	ProxyURL          string  `json:"proxyUrl"`
	BaseOptions       string  `json:"baseOptions"`
	AllowImageUploads string  `json:"allowImageUploads"`
	ImageResolution   string  `json:"imageResolution"`
	Reasoning         string  `json:"reasoning"`
	ReasoningEffort   string  `json:"reasoningEffort"`
	ReasoningSummary  string  `json:"reasoningSummary"`
	AgentModel        string  `json:"agentModel"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AgentInputs are the concrete values of an agent node.
// MemoryWindowSize is omitted from the wire when nil.
type AgentInputs struct {
	Model                   string              `json:"agentModel"`
	ModelConfig             AgentModelConfig    `json:"agentModelConfig"`
	Messages                []Message           `json:"agentMessages"`
	ToolsBuiltInOpenAI      string              `json:"agentToolsBuiltInOpenAI"`
	Tools                   []models.ToolConfig `json:"agentTools"`
	KnowledgeDocumentStores string              `json:"agentKnowledgeDocumentStores"`
	KnowledgeVSEmbeddings   string              `json:"agentKnowledgeVSEmbeddings"`
	EnableMemory            bool                `json:"agentEnableMemory"`
	MemoryType              string              `json:"agentMemoryType"`
	MemoryWindowSize        *int                `json:"agentMemoryWindowSize,omitempty"`
	UserMessage             string              `json:"agentUserMessage"`
	ReturnResponseAs        string              `json:"agentReturnResponseAs"`
	UpdateState             string              `json:"agentUpdateState"`
}

// IsAgent reports whether n is handled by the platform's agent runtime.
func (n Node) IsAgent() bool {
	return n.Data.Name == AgentName
}

// AgentInputs returns the agent inputs of n, if n is an agent node.
func (n Node) AgentInputs() (*AgentInputs, bool) {
	in, ok := n.Data.Inputs.(*AgentInputs)
	return in, ok
}

// RouterInputs returns the router inputs of n, if n is the router.
func (n Node) RouterInputs() (*RouterInputs, bool) {
	in, ok := n.Data.Inputs.(*RouterInputs)
	return in, ok
}

// StartInputs returns the start form inputs of n, if n is the start node.
func (n Node) StartInputs() (*StartInputs, bool) {
	in, ok := n.Data.Inputs.(*StartInputs)
	return in, ok
}

// Node returns the node with the given id.
func (d *Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesFrom returns the edges leaving the node with the given id, in order.
func (d *Document) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}
