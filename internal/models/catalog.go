package models

// Scenario is one routing choice of the intent router. AgentID names the
// agent the scenario's output handle is wired to.
type Scenario struct {
	Key         string `yaml:"key"`
	AgentID     int    `yaml:"agent"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Triggers    string `yaml:"triggers"`
}

type FormField struct {
	Type  string `json:"type" yaml:"type"`
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// StartForm describes the form shown by the start node.
type StartForm struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Placeholder string    `yaml:"placeholder"`
	Field       FormField `yaml:"field"`
}

// RouterPolicy frames the keyword mapping the router is instructed with.
type RouterPolicy struct {
	Preamble string `yaml:"preamble"`
	Footer   string `yaml:"footer"`
}

// Catalog is the full set of tables a workflow document is built from.
type Catalog struct {
	Name      string
	Source    string
	Form      StartForm
	Policy    RouterPolicy
	Agents    []AgentSpec
	Scenarios []Scenario
	Tools     []ToolConfig
}

// Agent returns the agent with the given id.
func (c *Catalog) Agent(id int) (AgentSpec, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return AgentSpec{}, false
}

// CatalogPatch replaces whole sections of a catalog. Nil or empty sections
// keep the base catalog's tables.
type CatalogPatch struct {
	Name      string
	Form      *StartForm
	Policy    *RouterPolicy
	Agents    []AgentSpec
	Scenarios []Scenario
}

// Apply returns a copy of base with the patch's sections swapped in.
func (p *CatalogPatch) Apply(base *Catalog) *Catalog {
	out := *base
	if p.Name != "" {
		out.Name = p.Name
	}
	if p.Form != nil {
		out.Form = *p.Form
	}
	if p.Policy != nil {
		out.Policy = *p.Policy
	}
	if len(p.Agents) > 0 {
		out.Agents = p.Agents
	}
	if len(p.Scenarios) > 0 {
		out.Scenarios = p.Scenarios
	}
	return &out
}
