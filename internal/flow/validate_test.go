package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
)

func TestExpect_DefaultCatalog(t *testing.T) {
	assert.Equal(t, DefaultExpectation, Expect(catalog.Default()))
}

func TestValidate_DefaultDocumentPasses(t *testing.T) {
	v := Validate(defaultDocument(t), DefaultExpectation)

	assert.True(t, v.Passed())
	assert.Equal(t, Check{Got: 10, Want: 10}, v.Nodes)
	assert.Equal(t, Check{Got: 9, Want: 9}, v.Edges)
	assert.Equal(t, Check{Got: 8, Want: 8}, v.Agents)
	assert.Equal(t, Check{Got: 8, Want: 8}, v.Tools)
	assert.Equal(t, 2, v.ToolsPerAgent)
}

func TestValidate_ReportsDrift(t *testing.T) {
	doc := defaultDocument(t)
	doc.Edges = doc.Edges[:len(doc.Edges)-1]
	in, ok := doc.Nodes[4].AgentInputs()
	require.True(t, ok)
	in.Tools = in.Tools[:1]

	v := Validate(doc, DefaultExpectation)

	assert.False(t, v.Passed())
	assert.True(t, v.Nodes.OK())
	assert.Equal(t, Check{Got: 8, Want: 9}, v.Edges)
	assert.True(t, v.Agents.OK())
	assert.Equal(t, Check{Got: 7, Want: 8}, v.Tools)
}

func TestValidateJSON_AgreesWithValidate(t *testing.T) {
	doc := defaultDocument(t)
	data, err := Encode(doc)
	require.NoError(t, err)

	fromJSON, err := ValidateJSON(data, DefaultExpectation)
	require.NoError(t, err)
	assert.Equal(t, Validate(doc, DefaultExpectation), fromJSON)
}

func TestValidateJSON_MissingSections(t *testing.T) {
	v, err := ValidateJSON([]byte(`{"nodes": []}`), DefaultExpectation)
	require.NoError(t, err)

	assert.False(t, v.Passed())
	assert.Equal(t, 0, v.Nodes.Got)
	assert.Equal(t, 0, v.Edges.Got)
	assert.Equal(t, 0, v.Agents.Got)
}

func TestValidateJSON_CountsToolsPerAgent(t *testing.T) {
	data := []byte(`{
		"nodes": [
			{"data": {"name": "agentAgentflow", "inputs": {"agentTools": [{}, {}]}}},
			{"data": {"name": "agentAgentflow", "inputs": {"agentTools": [{}]}}},
			{"data": {"name": "agentAgentflow", "inputs": {}}},
			{"data": {"name": "startAgentflow"}}
		],
		"edges": []
	}`)

	v, err := ValidateJSON(data, DefaultExpectation)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Nodes.Got)
	assert.Equal(t, 3, v.Agents.Got)
	assert.Equal(t, 1, v.Tools.Got)
}

func TestValidateJSON_Invalid(t *testing.T) {
	_, err := ValidateJSON([]byte(`{"nodes": [`), DefaultExpectation)
	assert.Error(t, err)

	_, err = ValidateJSON([]byte(`[1, 2]`), DefaultExpectation)
	assert.Error(t, err)
}
