package flow

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

// Expectation holds the structural counts a document is checked against.
type Expectation struct {
	Nodes         int
	Edges         int
	Agents        int
	ToolsPerAgent int
}

// DefaultExpectation matches the built-in catalog: start, router, eight
// agents, nine edges, two tools per agent.
var DefaultExpectation = Expectation{Nodes: 10, Edges: 9, Agents: 8, ToolsPerAgent: 2}

// Expect derives the expected counts from a catalog.
func Expect(c *models.Catalog) Expectation {
	return Expectation{
		Nodes:         len(c.Agents) + 2,
		Edges:         len(c.Scenarios) + 1,
		Agents:        len(c.Agents),
		ToolsPerAgent: len(c.Tools),
	}
}

type Check struct {
	Got  int
	Want int
}

func (c Check) OK() bool { return c.Got == c.Want }

// Validation is the outcome of the structural checks. Tools counts the agent
// nodes carrying exactly ToolsPerAgent tools.
type Validation struct {
	Nodes         Check
	Edges         Check
	Agents        Check
	Tools         Check
	ToolsPerAgent int
}

// Passed reports whether every check matched.
func (v Validation) Passed() bool {
	return v.Nodes.OK() && v.Edges.OK() && v.Agents.OK() && v.Tools.OK()
}

// Validate recomputes the structural counts of an in-memory document.
func Validate(doc *Document, exp Expectation) Validation {
	agents, withTools := 0, 0
	for _, n := range doc.Nodes {
		if !n.IsAgent() {
			continue
		}
		agents++
		if in, ok := n.AgentInputs(); ok && len(in.Tools) == exp.ToolsPerAgent {
			withTools++
		}
	}

	return Validation{
		Nodes:         Check{Got: len(doc.Nodes), Want: exp.Nodes},
		Edges:         Check{Got: len(doc.Edges), Want: exp.Edges},
		Agents:        Check{Got: agents, Want: exp.Agents},
		Tools:         Check{Got: withTools, Want: exp.Agents},
		ToolsPerAgent: exp.ToolsPerAgent,
	}
}

// ValidateJSON runs the same checks against a serialized document without
// decoding it, so files exported by the platform can be checked as-is.
func ValidateJSON(data []byte, exp Expectation) (Validation, error) {
	if !gjson.ValidBytes(data) {
		return Validation{}, errors.New("workflow file is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Validation{}, errors.New("workflow file must contain a JSON object")
	}

	agents := root.Get(`nodes.#(data.name=="` + AgentName + `")#`).Array()
	withTools := 0
	for _, a := range agents {
		if int(a.Get("data.inputs.agentTools.#").Int()) == exp.ToolsPerAgent {
			withTools++
		}
	}

	return Validation{
		Nodes:         Check{Got: int(root.Get("nodes.#").Int()), Want: exp.Nodes},
		Edges:         Check{Got: int(root.Get("edges.#").Int()), Want: exp.Edges},
		Agents:        Check{Got: len(agents), Want: exp.Agents},
		Tools:         Check{Got: withTools, Want: exp.Agents},
		ToolsPerAgent: exp.ToolsPerAgent,
	}, nil
}
