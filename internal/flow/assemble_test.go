package flow

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

func defaultDocument(t *testing.T) *Document {
	t.Helper()
	return Assemble(catalog.Default())
}

func agentNode(t *testing.T, doc *Document, id int) *AgentInputs {
	t.Helper()
	n, ok := doc.Node(AgentID(id))
	require.True(t, ok, "agent %d missing", id)
	in, ok := n.AgentInputs()
	require.True(t, ok, "agent %d has no agent inputs", id)
	return in
}

func TestAssemble_Counts(t *testing.T) {
	doc := defaultDocument(t)

	assert.Len(t, doc.Nodes, 10)
	assert.Len(t, doc.Edges, 9)

	agents := 0
	for _, n := range doc.Nodes {
		if n.IsAgent() {
			agents++
			in, ok := n.AgentInputs()
			require.True(t, ok)
			assert.Len(t, in.Tools, 2, "node %s", n.ID)
		}
	}
	assert.Equal(t, 8, agents)
}

func TestAssemble_NodeOrder(t *testing.T) {
	doc := defaultDocument(t)

	want := []string{StartID, RouterID}
	for i := 1; i <= 8; i++ {
		want = append(want, AgentID(i))
	}

	var got []string
	for _, n := range doc.Nodes {
		got = append(got, n.ID)
	}
	assert.Equal(t, want, got)
}

func TestAssemble_SortsAgentsByID(t *testing.T) {
	c := catalog.Default()
	c.Agents[0], c.Agents[7] = c.Agents[7], c.Agents[0]

	doc := Assemble(c)
	assert.Equal(t, AgentID(1), doc.Nodes[2].ID)
	assert.Equal(t, AgentID(8), doc.Nodes[9].ID)
}

func TestAssemble_PlatformNames(t *testing.T) {
	doc := defaultDocument(t)

	assert.Equal(t, "startAgentflow", doc.Nodes[0].Data.Name)
	assert.Equal(t, "conditionAgentAgentflow", doc.Nodes[1].Data.Name)
	for _, n := range doc.Nodes[2:] {
		assert.Equal(t, "agentAgentflow", n.Data.Name)
		assert.Equal(t, "Agent", n.Data.Type)
	}
	for _, n := range doc.Nodes {
		assert.Equal(t, "agentFlow", n.Type)
		assert.Equal(t, n.Position, n.PositionAbsolute)
	}
}

func TestRouter_HandlesMatchEdges(t *testing.T) {
	doc := defaultDocument(t)
	router, ok := doc.Node(RouterID)
	require.True(t, ok)

	seen := map[int]bool{}
	for i, anchor := range router.Data.OutputAnchors {
		assert.Equal(t, i, anchor.Label)
		assert.Equal(t, i, anchor.Name)
		assert.Equal(t, "number", anchor.Type)
		assert.Equal(t, RouterHandle(i), anchor.ID)
		seen[i] = true
	}
	assert.Len(t, seen, 8)

	routed := doc.EdgesFrom(RouterID)
	require.Len(t, routed, 8)
	for i, e := range routed {
		assert.Equal(t, RouterHandle(i), e.SourceHandle)
		assert.Equal(t, AgentID(i+1), e.Target)
		assert.Equal(t, e.Target, e.TargetHandle)
	}
}

func TestEdges_StartToRouter(t *testing.T) {
	edges := Edges(catalog.Default().Scenarios)

	first := edges[0]
	assert.Equal(t, StartID, first.Source)
	assert.Equal(t, "startAgentflow_0-output-startAgentflow-StartAgent", first.SourceHandle)
	assert.Equal(t, RouterID, first.Target)
	assert.Equal(t, "", first.Data.EdgeLabel)
	assert.Equal(t,
		"startAgentflow_0-startAgentflow_0-output-startAgentflow-StartAgent-conditionAgentAgentflow_0-conditionAgentAgentflow_0",
		first.ID)

	assert.Equal(t,
		"conditionAgentAgentflow_0-conditionAgentAgentflow_0-output-3-agentAgentflow_4-agentAgentflow_4",
		edges[4].ID)
	assert.Equal(t, "3", edges[4].Data.EdgeLabel)
}

func TestEdges_FollowScenarioTargets(t *testing.T) {
	scenarios := []models.Scenario{
		{Key: "b", AgentID: 2},
		{Key: "a", AgentID: 1},
	}

	edges := Edges(scenarios)
	require.Len(t, edges, 3)
	assert.Equal(t, AgentID(2), edges[1].Target)
	assert.Equal(t, RouterHandle(0), edges[1].SourceHandle)
	assert.Equal(t, AgentID(1), edges[2].Target)
	assert.Equal(t, RouterHandle(1), edges[2].SourceHandle)
}

func TestAgentNode_WindowedMemory(t *testing.T) {
	in := agentNode(t, defaultDocument(t), 1)

	assert.Equal(t, 0.3, in.ModelConfig.Temperature)
	assert.True(t, in.EnableMemory)
	assert.Equal(t, "windowSize", in.MemoryType)
	require.NotNil(t, in.MemoryWindowSize)
	assert.Equal(t, 10, *in.MemoryWindowSize)
}

func TestAgentNode_SummaryMemoryOmitsWindow(t *testing.T) {
	doc := defaultDocument(t)
	in := agentNode(t, doc, 5)

	assert.Equal(t, "conversationSummary", in.MemoryType)
	assert.Nil(t, in.MemoryWindowSize)

	n, _ := doc.Node(AgentID(5))
	raw, err := json.Marshal(n.Data.Inputs)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "agentMemoryWindowSize")
	assert.Contains(t, string(raw), `"agentMemoryType":"conversationSummary"`)
}

func TestAgentNode_WindowPresentIffDeclared(t *testing.T) {
	c := catalog.Default()
	doc := Assemble(c)

	for _, spec := range c.Agents {
		in := agentNode(t, doc, spec.ID)
		if spec.MemoryWindow == nil {
			assert.Nil(t, in.MemoryWindowSize, "agent %d", spec.ID)
			continue
		}
		require.NotNil(t, in.MemoryWindowSize, "agent %d", spec.ID)
		assert.Equal(t, *spec.MemoryWindow, *in.MemoryWindowSize, "agent %d", spec.ID)
	}
}

func TestAgentNode_ModelAndPersona(t *testing.T) {
	spec := catalog.Default().Agents[2]
	n := AgentNode(spec, catalog.StandardTools())
	in, ok := n.AgentInputs()
	require.True(t, ok)

	assert.Equal(t, "agentAgentflow_3", n.ID)
	assert.Equal(t, "chatOpenAI", in.Model)
	assert.Equal(t, "gpt-4o-mini", in.ModelConfig.ModelName)
	assert.Equal(t, "", in.ModelConfig.TopP)
	assert.Equal(t, "", in.ModelConfig.MaxTokens)
	assert.Equal(t, []Message{{Role: "system", Content: spec.Persona}}, in.Messages)
	assert.Equal(t, "agentAgentflow_3-output-agentAgentflow-Agent|AgentExecutor", n.Data.OutputAnchors[0].ID)
}

func TestAgentNode_SharedToolsVerbatim(t *testing.T) {
	doc := defaultDocument(t)
	want := catalog.StandardTools()

	for i := 1; i <= 8; i++ {
		in := agentNode(t, doc, i)
		if diff := cmp.Diff(want, in.Tools); diff != "" {
			t.Errorf("agent %d tools mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestStartNode_Form(t *testing.T) {
	n := StartNode(catalog.Default().Form)
	in, ok := n.StartInputs()
	require.True(t, ok)

	assert.Equal(t, StartID, n.ID)
	require.Len(t, in.FormInputTypes, 1)
	assert.Equal(t, models.FormField{
		Type:  "string",
		Name:  "query",
		Label: "What would you like to know about your issue log?",
	}, in.FormInputTypes[0])
	assert.Equal(t, "SmartSheets Issue Monitor", in.FormTitle)
}

func TestRouterNode_Inputs(t *testing.T) {
	c := catalog.Default()
	n := RouterNode(c.Policy, c.Scenarios)
	in, ok := n.RouterInputs()
	require.True(t, ok)

	assert.Equal(t, "{{question}}", in.Input)
	assert.Equal(t, 0.2, in.ModelConfig.Temperature)
	require.Len(t, in.Scenarios, 8)
	assert.Equal(t, "User needs to fetch latest SmartSheets data", in.Scenarios[0].Scenario)
	assert.Contains(t, in.Instructions, `- "fetch", "refresh", "get data", "pull SmartSheets" → Data Fetcher (Scenario 0)`)
	assert.Contains(t, in.Instructions, `- "trends", "patterns", "week over week", "predictive" → Trend Analyzer (Scenario 7)`)
	assert.True(t, strings.HasSuffix(in.Instructions, "default to Report Generator (comprehensive overview)."))
}

func TestEncode_Idempotent(t *testing.T) {
	first, err := Encode(defaultDocument(t))
	require.NoError(t, err)
	second, err := Encode(defaultDocument(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncode_RoundTrip(t *testing.T) {
	original, err := Encode(defaultDocument(t))
	require.NoError(t, err)

	doc, err := Decode(original)
	require.NoError(t, err)
	again, err := Encode(doc)
	require.NoError(t, err)

	if diff := cmp.Diff(string(original), string(again)); diff != "" {
		t.Errorf("round trip changed the document (-want +got):\n%s", diff)
	}
}

func TestEncode_Layout(t *testing.T) {
	data, err := Encode(defaultDocument(t))
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "{\n  \"nodes\": [\n    {\n      \"id\": \"startAgentflow_0\","))
	assert.Contains(t, out, "<p><em>You are an expert SmartSheets API integration agent.</em>")
	assert.Contains(t, out, `"agentMemoryWindowSize": 10,`)
	assert.Contains(t, out, `"inputAnchors": [],`)
	assert.Contains(t, out, `"outputs": {},`)
	assert.Contains(t, out, `"label": 0,`)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"nodes": [`))
	assert.Error(t, err)
}

func TestDecode_UnknownNodeKeepsInputs(t *testing.T) {
	doc, err := Decode([]byte(`{"nodes":[{"id":"x","data":{"name":"llmAgentflow","inputs":{"a":"b"}}}],"edges":[]}`))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, map[string]any{"a": "b"}, doc.Nodes[0].Data.Inputs)
}
