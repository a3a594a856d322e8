// Package report prints the human-readable summary of a generation.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/flow"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

const (
	pass = "✅"
	fail = "❌"
)

// Summary is everything the generation report shows.
type Summary struct {
	Output     string
	Nodes      int
	Edges      int
	Validation flow.Validation
	Previous   *models.Generation
	Recorded   *models.Generation
	Unchanged  bool
}

type styles struct {
	ok    lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
	label lipgloss.Style
}

// newStyles binds styles to w so colors are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("46")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("196")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("243")),
		label: r.NewStyle().Bold(true),
	}
}

func (s styles) mark(ok bool) string {
	if ok {
		return s.ok.Render(pass)
	}
	return s.bad.Render(fail)
}

// Print writes the generation report.
func Print(w io.Writer, sum Summary) {
	st := newStyles(w)

	fmt.Fprintf(w, "%s Generated workflow with %d nodes and %d edges\n", st.mark(true), sum.Nodes, sum.Edges)
	fmt.Fprintf(w, "%s File: %s\n", st.mark(true), filepath.Base(sum.Output))

	printValidation(w, st, sum.Validation)

	switch {
	case sum.Recorded == nil:
	case sum.Previous == nil:
		fmt.Fprintf(w, "\n%s\n", st.dim.Render(fmt.Sprintf("Recorded as generation #%d (first for this path)", sum.Recorded.ID)))
	case sum.Unchanged:
		fmt.Fprintf(w, "\n%s\n", st.dim.Render(fmt.Sprintf("Recorded as generation #%d, unchanged since #%d", sum.Recorded.ID, sum.Previous.ID)))
	default:
		fmt.Fprintf(w, "\n%s\n", st.dim.Render(fmt.Sprintf("Recorded as generation #%d, changed since #%d", sum.Recorded.ID, sum.Previous.ID)))
	}
}

// PrintCheck writes the validation block for an existing document.
func PrintCheck(w io.Writer, path string, v flow.Validation) {
	st := newStyles(w)
	fmt.Fprintf(w, "%s %s\n", st.label.Render("File:"), path)
	printValidation(w, st, v)
}

func printValidation(w io.Writer, st styles, v flow.Validation) {
	fmt.Fprintf(w, "\n📊 %s\n", st.label.Render("Validation:"))
	row := func(name string, c flow.Check) {
		fmt.Fprintf(w, "   %s: %d (expected: %d) %s\n", name, c.Got, c.Want, st.mark(c.OK()))
	}
	row("Nodes", v.Nodes)
	row("Edges", v.Edges)
	row("Agents", v.Agents)
	fmt.Fprintf(w, "   Standard Tools: %d/%d agents %s\n", v.Tools.Got, v.Tools.Want, st.mark(v.Tools.OK()))
}
