package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

// Assemble builds the full document from a catalog: start node, router, then
// agents by ascending id, followed by the edges.
func Assemble(c *models.Catalog) *Document {
	agents := slices.Clone(c.Agents)
	slices.SortStableFunc(agents, func(a, b models.AgentSpec) int {
		return a.ID - b.ID
	})

	nodes := make([]Node, 0, len(agents)+2)
	nodes = append(nodes, StartNode(c.Form))
	nodes = append(nodes, RouterNode(c.Policy, c.Scenarios))
	for _, a := range agents {
		nodes = append(nodes, AgentNode(a, c.Tools))
	}

	return &Document{
		Nodes: nodes,
		Edges: Edges(c.Scenarios),
	}
}

// Encode serializes doc with two-space indentation. HTML is not escaped so
// persona markup stays readable in the file.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a workflow document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse workflow JSON: %w", err)
	}
	return &doc, nil
}
