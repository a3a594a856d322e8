package spec

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/lua"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

var extensions = []string{".yaml", ".yml", ".hcl", ".lua"}

// catalogFile is the YAML layout of a catalog override.
type catalogFile struct {
	Name      string               `yaml:"name"`
	Form      *models.StartForm    `yaml:"form"`
	Policy    *models.RouterPolicy `yaml:"policy"`
	Agents    []models.AgentSpec   `yaml:"agents"`
	Scenarios []models.Scenario    `yaml:"scenarios"`
}

// hclCatalogFile is the HCL layout of a catalog override.
type hclCatalogFile struct {
	Name      *string        `hcl:"name,optional"`
	Form      *hclForm       `hcl:"form,block"`
	Policy    *hclPolicy     `hcl:"policy,block"`
	Agents    []*hclAgent    `hcl:"agent,block"`
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclForm struct {
	Title       string        `hcl:"title"`
	Description string        `hcl:"description"`
	Placeholder *string       `hcl:"placeholder,optional"`
	Field       *hclFormField `hcl:"field,block"`
}

type hclFormField struct {
	Type  string `hcl:"type"`
	Name  string `hcl:"name"`
	Label string `hcl:"label"`
}

type hclPolicy struct {
	Preamble string  `hcl:"preamble"`
	Footer   *string `hcl:"footer,optional"`
}

type hclAgent struct {
	ID           int              `hcl:"id"`
	Label        string           `hcl:"label"`
	Position     *models.Position `hcl:"position,block"`
	Persona      string           `hcl:"persona"`
	Temperature  float64          `hcl:"temperature"`
	Memory       string           `hcl:"memory"`
	MemoryWindow *int             `hcl:"memory_window,optional"`
}

type hclScenario struct {
	Key         string `hcl:"key,label"`
	AgentID     int    `hcl:"agent"`
	Title       string `hcl:"title"`
	Description string `hcl:"description"`
	Triggers    string `hcl:"triggers"`
}

// Parse reads a catalog override file. The format follows the extension.
func Parse(path string, logger *slog.Logger) (*models.CatalogPatch, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return parseYAML(path)
	case ".hcl":
		return parseHCL(path)
	case ".lua":
		return lua.NewRuntime(logger).LoadCatalog(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

func parseYAML(path string) (*models.CatalogPatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	return &models.CatalogPatch{
		Name:      file.Name,
		Form:      file.Form,
		Policy:    file.Policy,
		Agents:    file.Agents,
		Scenarios: file.Scenarios,
	}, nil
}

func parseHCL(path string) (*models.CatalogPatch, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var file hclCatalogFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	patch := &models.CatalogPatch{}
	if file.Name != nil {
		patch.Name = *file.Name
	}

	if f := file.Form; f != nil {
		form := models.StartForm{
			Title:       f.Title,
			Description: f.Description,
		}
		if f.Placeholder != nil {
			form.Placeholder = *f.Placeholder
		}
		if f.Field != nil {
			form.Field = models.FormField{Type: f.Field.Type, Name: f.Field.Name, Label: f.Field.Label}
		}
		patch.Form = &form
	}

	if p := file.Policy; p != nil {
		patch.Policy = &models.RouterPolicy{Preamble: p.Preamble}
		if p.Footer != nil {
			patch.Policy.Footer = *p.Footer
		}
	}

	for _, a := range file.Agents {
		spec := models.AgentSpec{
			ID:           a.ID,
			Label:        a.Label,
			Persona:      a.Persona,
			Temperature:  a.Temperature,
			Memory:       models.MemoryStrategy(a.Memory),
			MemoryWindow: a.MemoryWindow,
		}
		if a.Position != nil {
			spec.Position = *a.Position
		}
		patch.Agents = append(patch.Agents, spec)
	}

	for _, s := range file.Scenarios {
		patch.Scenarios = append(patch.Scenarios, models.Scenario{
			Key:         s.Key,
			AgentID:     s.AgentID,
			Title:       s.Title,
			Description: s.Description,
			Triggers:    s.Triggers,
		})
	}

	return patch, nil
}

// Load parses the override at path, applies it over the built-in catalog
// and validates the result.
func Load(path string, logger *slog.Logger) (*models.Catalog, error) {
	patch, err := Parse(path, logger)
	if err != nil {
		return nil, err
	}

	c := patch.Apply(catalog.Default())
	c.Source = path

	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find resolves a catalog reference. An existing file path is used as is,
// otherwise name is looked up in dirs in order.
func Find(name string, dirs []string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}

	for _, dir := range dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("catalog %q not found", name)
}

// List returns catalog names mapped to their file paths. Earlier dirs win
// when the same name appears more than once.
func List(dirs []string) (map[string]string, error) {
	found := make(map[string]string)

	for _, dir := range dirs {
		if err := listDir(dir, found); err != nil {
			// Skip directories that don't exist
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
	}

	return found, nil
}

func listDir(dir string, found map[string]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if !supported(ext) {
			continue
		}

		key := strings.TrimSuffix(name, ext)
		if _, ok := found[key]; ok {
			continue
		}
		found[key] = filepath.Join(dir, name)
	}

	return nil
}

func supported(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
