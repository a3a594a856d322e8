// Package generator drives one generation: load the catalog, assemble and
// write the document, then validate what landed on disk and record it.
package generator

import (
	"fmt"
	"log/slog"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/artifact"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/flow"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/spec"
)

// Recorder keeps the history of generations. *storage.Storage satisfies it.
type Recorder interface {
	CreateGeneration(g *models.Generation) (int64, error)
	LatestByOutput(path string) (*models.Generation, error)
}

type Generator struct {
	recorder Recorder
	logger   *slog.Logger
}

// New creates a generator. A nil recorder disables history.
func New(recorder Recorder, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		recorder: recorder,
		logger:   logger,
	}
}

type Options struct {
	// Output is the path the document is written to.
	Output string
	// Catalog is a catalog name or file path. Empty selects the built-in catalog.
	Catalog string
	// CatalogDirs are searched when Catalog is a name.
	CatalogDirs []string
}

type Result struct {
	Catalog    *models.Catalog
	Document   *flow.Document
	Output     string
	Digest     string
	Validation flow.Validation
	// Previous is the last recorded generation for the same output, if any.
	Previous *models.Generation
	// Recorded is nil when history is disabled or recording failed.
	Recorded *models.Generation
}

// Unchanged reports whether the document is identical to the previous
// generation written to the same path.
func (r *Result) Unchanged() bool {
	return r.Previous != nil && r.Previous.Digest == r.Digest
}

// Run performs one generation. Errors are returned only when the catalog
// cannot be loaded or the document cannot be written; a failed validation
// is reported through the result.
func (g *Generator) Run(opts Options) (*Result, error) {
	c, err := g.loadCatalog(opts)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("catalog loaded", "source", c.Source, "agents", len(c.Agents), "scenarios", len(c.Scenarios))

	doc := flow.Assemble(c)
	data, err := flow.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}

	if err := artifact.Write(opts.Output, data); err != nil {
		return nil, err
	}
	g.logger.Info("workflow written", "path", opts.Output, "bytes", len(data))

	written, err := artifact.Read(opts.Output)
	if err != nil {
		return nil, err
	}
	validation, err := flow.ValidateJSON(written, flow.Expect(c))
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", opts.Output, err)
	}
	if !validation.Passed() {
		g.logger.Warn("workflow validation failed", "path", opts.Output)
	}

	result := &Result{
		Catalog:    c,
		Document:   doc,
		Output:     opts.Output,
		Digest:     artifact.Digest(written),
		Validation: validation,
	}

	g.record(result)
	return result, nil
}

func (g *Generator) loadCatalog(opts Options) (*models.Catalog, error) {
	if opts.Catalog == "" {
		return catalog.Default(), nil
	}

	path, err := spec.Find(opts.Catalog, opts.CatalogDirs)
	if err != nil {
		return nil, err
	}
	return spec.Load(path, g.logger)
}

// record stores the generation. History is best effort and never fails a run.
func (g *Generator) record(r *Result) {
	if g.recorder == nil {
		return
	}

	prev, err := g.recorder.LatestByOutput(r.Output)
	if err != nil {
		g.logger.Warn("failed to read generation history", "error", err)
	}
	r.Previous = prev

	gen := &models.Generation{
		OutputPath:    r.Output,
		CatalogSource: r.Catalog.Source,
		Digest:        r.Digest,
		NodeCount:     r.Validation.Nodes.Got,
		EdgeCount:     r.Validation.Edges.Got,
		AgentCount:    r.Validation.Agents.Got,
		Passed:        r.Validation.Passed(),
	}
	if _, err := g.recorder.CreateGeneration(gen); err != nil {
		g.logger.Warn("failed to record generation", "error", err)
		return
	}
	r.Recorded = gen
}
