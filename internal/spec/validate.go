package spec

import (
	"errors"
	"fmt"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

// ErrInvalidCatalog is wrapped by every error Validate returns.
var ErrInvalidCatalog = errors.New("invalid catalog")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

// Validate checks that a catalog can be assembled into a document.
func Validate(c *models.Catalog) error {
	if len(c.Agents) == 0 {
		return invalid("catalog must define at least one agent")
	}

	ids := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.ID <= 0 {
			return invalid("agent id %d must be positive", a.ID)
		}
		if ids[a.ID] {
			return invalid("duplicate agent id %d", a.ID)
		}
		ids[a.ID] = true

		if a.Label == "" {
			return invalid("agent %d must have a label", a.ID)
		}
		if a.Persona == "" {
			return invalid("agent %d must have a persona", a.ID)
		}
		if a.Temperature < 0 || a.Temperature > 2 {
			return invalid("agent %d temperature %v out of range [0, 2]", a.ID, a.Temperature)
		}
		if !a.Memory.Valid() {
			return invalid("agent %d has unknown memory strategy %q", a.ID, a.Memory)
		}
		if a.Memory == models.MemoryWindowSize {
			if !a.HasWindow() || *a.MemoryWindow <= 0 {
				return invalid("agent %d uses %s and needs a positive memory_window", a.ID, a.Memory)
			}
		} else if a.HasWindow() {
			return invalid("agent %d sets memory_window but uses %s", a.ID, a.Memory)
		}
	}

	if len(c.Scenarios) == 0 {
		return invalid("catalog must define at least one scenario")
	}

	keys := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Key == "" {
			return invalid("scenario %d must have a key", i)
		}
		if keys[s.Key] {
			return invalid("duplicate scenario key %q", s.Key)
		}
		keys[s.Key] = true

		if !ids[s.AgentID] {
			return invalid("scenario %q targets unknown agent %d", s.Key, s.AgentID)
		}
	}

	if c.Form.Field.Name == "" {
		return invalid("start form field must have a name")
	}

	return nil
}
