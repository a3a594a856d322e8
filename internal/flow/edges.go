package flow

import (
	"strconv"
	"strings"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

// EdgeID is the platform's composite edge identity.
func EdgeID(source, sourceHandle, target, targetHandle string) string {
	return strings.Join([]string{source, sourceHandle, target, targetHandle}, "-")
}

func newEdge(source, sourceHandle, target string, data EdgeData) Edge {
	return Edge{
		Source:       source,
		SourceHandle: sourceHandle,
		Target:       target,
		TargetHandle: target,
		Data:         data,
		Type:         NodeType,
		ID:           EdgeID(source, sourceHandle, target, target),
	}
}

// Edges wires the start node to the router, then router output i to the
// agent named by scenarios[i].
func Edges(scenarios []models.Scenario) []Edge {
	edges := make([]Edge, 0, len(scenarios)+1)
	edges = append(edges, newEdge(StartID, StartHandle, RouterID, EdgeData{
		SourceColor: startColor,
		TargetColor: routerColor,
	}))

	for i, s := range scenarios {
		edges = append(edges, newEdge(RouterID, RouterHandle(i), AgentID(s.AgentID), EdgeData{
			SourceColor: routerColor,
			TargetColor: agentColor,
			EdgeLabel:   strconv.Itoa(i),
		}))
	}

	return edges
}
