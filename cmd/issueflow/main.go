package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/artifact"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/catalog"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/config"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/flow"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/generator"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/report"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/spec"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/storage"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "issueflow",
		Short:        "SmartSheets Issue Monitor workflow generator",
		Long:         "issueflow writes the SmartSheets Issue Monitor agentflow for Flowise: a start form, an intent router and eight specialist agents.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runGenerate,
	}
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newAgentsCommand())
	rootCmd.AddCommand(newCatalogsCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newBrowseCommand())

	return rootCmd
}

// newLogger creates a text logger on w at the configured level.
func newLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, newLogger(cfg.LogLevel, os.Stderr), nil
}

// openStore opens the history database. History is optional, so failures
// are logged and a nil store is returned.
func openStore(cfg *config.Config, logger *slog.Logger) *storage.Storage {
	if err := cfg.EnsureDataDir(); err != nil {
		logger.Warn("failed to create data directory", "path", cfg.DataDir, "error", err)
		return nil
	}
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		logger.Warn("failed to open history database", "path", cfg.DBPath, "error", err)
		return nil
	}
	return store
}

func loadCatalog(name string, cfg *config.Config, logger *slog.Logger) (*models.Catalog, error) {
	if name == "" {
		return catalog.Default(), nil
	}
	path, err := spec.Find(name, cfg.CatalogDirs())
	if err != nil {
		return nil, err
	}
	return spec.Load(path, logger)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output path (default: $ISSUEFLOW_OUTPUT or ~/"+config.DefaultOutput+")")
	cmd.Flags().StringP("catalog", "c", "", "Catalog name or file overriding the built-in tables")
	cmd.Flags().Bool("no-record", false, "Don't record the generation in history")
}

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the workflow document and print the validation report",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	addGenerateFlags(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	catalogName, _ := cmd.Flags().GetString("catalog")
	noRecord, _ := cmd.Flags().GetBool("no-record")

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if out == "" {
		out = cfg.OutputPath
	}

	var recorder generator.Recorder
	if !noRecord {
		if store := openStore(cfg, logger); store != nil {
			defer store.Close()
			recorder = store
		}
	}

	result, err := generator.New(recorder, logger).Run(generator.Options{
		Output:      out,
		Catalog:     catalogName,
		CatalogDirs: cfg.CatalogDirs(),
	})
	if err != nil {
		return err
	}

	report.Print(cmd.OutOrStdout(), report.Summary{
		Output:     result.Output,
		Nodes:      len(result.Document.Nodes),
		Edges:      len(result.Document.Edges),
		Validation: result.Validation,
		Previous:   result.Previous,
		Recorded:   result.Recorded,
		Unchanged:  result.Unchanged(),
	})
	return nil
}

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate an existing workflow document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogName, _ := cmd.Flags().GetString("catalog")

			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			exp := flow.DefaultExpectation
			if catalogName != "" {
				c, err := loadCatalog(catalogName, cfg, logger)
				if err != nil {
					return err
				}
				exp = flow.Expect(c)
			}

			data, err := artifact.Read(args[0])
			if err != nil {
				return err
			}

			v, err := flow.ValidateJSON(data, exp)
			if err != nil {
				return fmt.Errorf("failed to validate %s: %w", args[0], err)
			}

			report.PrintCheck(cmd.OutOrStdout(), args[0], v)
			return nil
		},
	}

	cmd.Flags().StringP("catalog", "c", "", "Derive expected counts from this catalog")
	return cmd
}

func newAgentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List the agents and scenarios of the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogName, _ := cmd.Flags().GetString("catalog")

			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			c, err := loadCatalog(catalogName, cfg, logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Catalog: %s (%s)\n\n", c.Name, c.Source)
			for _, a := range c.Agents {
				memory := string(a.Memory)
				if a.HasWindow() {
					memory = fmt.Sprintf("%s(%d)", a.Memory, *a.MemoryWindow)
				}
				fmt.Fprintf(w, "%d. %-24s temp=%-4g %s\n", a.ID, a.Label, a.Temperature, memory)
			}

			fmt.Fprintln(w, "\nScenarios:")
			for i, s := range c.Scenarios {
				fmt.Fprintf(w, "  [%d] %-12s → %s\n", i, s.Key, flow.AgentID(s.AgentID))
			}
			return nil
		},
	}

	cmd.Flags().StringP("catalog", "c", "", "Catalog name or file")
	return cmd
}

func newCatalogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List available catalog overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			found, err := spec.List(cfg.CatalogDirs())
			if err != nil {
				return fmt.Errorf("failed to list catalogs: %w", err)
			}

			names := make([]string, 0, len(found))
			for name := range found {
				names = append(names, name)
			}
			sort.Strings(names)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-20s %s\n", catalog.Name, "(builtin)")
			for _, name := range names {
				fmt.Fprintf(w, "%-20s %s\n", name, found[name])
			}
			return nil
		},
	}
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			cfg, _, err := setup()
			if err != nil {
				return err
			}

			if err := cfg.EnsureDataDir(); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			store, err := storage.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			gens, err := store.ListGenerations(limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(gens) == 0 {
				fmt.Fprintln(w, "No generations recorded yet.")
				return nil
			}

			for _, g := range gens {
				status := "passed"
				if !g.Passed {
					status = "failed"
				}
				digest := g.Digest
				if len(digest) > 12 {
					digest = digest[:12]
				}
				fmt.Fprintf(w, "#%d %s [%s] %s %d nodes/%d edges %s → %s\n",
					g.ID, storage.FormatTimeAgo(g.CreatedAt), status, digest,
					g.NodeCount, g.EdgeCount, g.CatalogSource, g.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Number of generations to show")
	return cmd
}

func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse a workflow document interactively",
		Long:  "Browse a generated workflow file, or the document the active catalog would produce when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogName, _ := cmd.Flags().GetString("catalog")

			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			var doc *flow.Document
			title := ""
			if len(args) == 1 {
				data, err := artifact.Read(args[0])
				if err != nil {
					return err
				}
				if doc, err = flow.Decode(data); err != nil {
					return err
				}
				title = args[0]
			} else {
				c, err := loadCatalog(catalogName, cfg, logger)
				if err != nil {
					return err
				}
				doc = flow.Assemble(c)
				title = c.Name
			}

			var history tui.HistoryLister
			if store := openStore(cfg, logger); store != nil {
				defer store.Close()
				history = store
			}

			app := tui.NewApp(doc, title, history)
			p := tea.NewProgram(app, tea.WithAltScreen())

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringP("catalog", "c", "", "Catalog name or file (when no file is given)")
	return cmd
}
