package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

func intPtr(n int) *int { return &n }

func TestValidate_BuiltinCatalog(t *testing.T) {
	assert.NoError(t, Validate(catalog.Default()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *models.Catalog)
		wantErr string
	}{
		{
			name:    "no agents",
			mutate:  func(c *models.Catalog) { c.Agents = nil },
			wantErr: "at least one agent",
		},
		{
			name:    "zero id",
			mutate:  func(c *models.Catalog) { c.Agents[0].ID = 0 },
			wantErr: "must be positive",
		},
		{
			name:    "duplicate id",
			mutate:  func(c *models.Catalog) { c.Agents[1].ID = 1 },
			wantErr: "duplicate agent id 1",
		},
		{
			name:    "missing label",
			mutate:  func(c *models.Catalog) { c.Agents[2].Label = "" },
			wantErr: "agent 3 must have a label",
		},
		{
			name:    "missing persona",
			mutate:  func(c *models.Catalog) { c.Agents[2].Persona = "" },
			wantErr: "agent 3 must have a persona",
		},
		{
			name:    "temperature too high",
			mutate:  func(c *models.Catalog) { c.Agents[0].Temperature = 2.5 },
			wantErr: "out of range",
		},
		{
			name:    "unknown memory",
			mutate:  func(c *models.Catalog) { c.Agents[0].Memory = "windowed" },
			wantErr: `unknown memory strategy "windowed"`,
		},
		{
			name: "window strategy without size",
			mutate: func(c *models.Catalog) {
				c.Agents[0].MemoryWindow = nil
			},
			wantErr: "needs a positive memory_window",
		},
		{
			name: "window strategy with zero size",
			mutate: func(c *models.Catalog) {
				c.Agents[0].MemoryWindow = intPtr(0)
			},
			wantErr: "needs a positive memory_window",
		},
		{
			name: "size without window strategy",
			mutate: func(c *models.Catalog) {
				c.Agents[1].MemoryWindow = intPtr(5)
			},
			wantErr: "sets memory_window but uses allMessages",
		},
		{
			name:    "no scenarios",
			mutate:  func(c *models.Catalog) { c.Scenarios = nil },
			wantErr: "at least one scenario",
		},
		{
			name:    "empty scenario key",
			mutate:  func(c *models.Catalog) { c.Scenarios[3].Key = "" },
			wantErr: "scenario 3 must have a key",
		},
		{
			name:    "duplicate scenario key",
			mutate:  func(c *models.Catalog) { c.Scenarios[1].Key = "fetch" },
			wantErr: `duplicate scenario key "fetch"`,
		},
		{
			name:    "scenario targets unknown agent",
			mutate:  func(c *models.Catalog) { c.Scenarios[7].AgentID = 42 },
			wantErr: "targets unknown agent 42",
		},
		{
			name:    "form field without name",
			mutate:  func(c *models.Catalog) { c.Form.Field.Name = "" },
			wantErr: "form field must have a name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := catalog.Default()
			tt.mutate(c)

			err := Validate(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ScenariosMayShareAnAgent(t *testing.T) {
	c := catalog.Default()
	c.Scenarios[7].AgentID = 1

	assert.NoError(t, Validate(c))
}
