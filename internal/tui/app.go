package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/flow"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/storage"
)

type View int

const (
	ViewNodeList View = iota
	ViewNodeDetail
	ViewEdges
	ViewHistory
)

// HistoryLister provides recorded generations. *storage.Storage satisfies it.
type HistoryLister interface {
	ListGenerations(limit int) ([]*models.Generation, error)
}

type App struct {
	doc     *flow.Document
	title   string
	history HistoryLister

	view        View
	selectedIdx int
	edgeIdx     int
	detail      viewport.Model
	generations []*models.Generation

	width  int
	height int
	err    error
}

// NewApp creates a viewer for doc. history may be nil.
func NewApp(doc *flow.Document, title string, history HistoryLister) *App {
	return &App{
		doc:     doc,
		title:   title,
		history: history,
		view:    ViewNodeList,
		detail:  viewport.New(80, 20),
		width:   80,
		height:  24,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.detail.Width = msg.Width
		a.detail.Height = max(msg.Height-4, 1)
		return a, nil

	case historyLoadedMsg:
		a.generations = msg.generations
		a.err = msg.err
		if a.err == nil {
			a.view = ViewHistory
		}
		return a, nil
	}

	if a.view == ViewNodeDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewNodeList:
		return a.handleNodeListKey(msg)
	case ViewNodeDetail:
		return a.handleNodeDetailKey(msg)
	case ViewEdges:
		return a.handleEdgesKey(msg)
	case ViewHistory:
		return a.handleHistoryKey(msg)
	}
	return a, nil
}

func (a *App) handleNodeListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}

	case "down", "j":
		if a.selectedIdx < len(a.doc.Nodes)-1 {
			a.selectedIdx++
		}

	case "enter":
		if a.selectedIdx < len(a.doc.Nodes) {
			a.detail.SetContent(a.nodeDetail(a.doc.Nodes[a.selectedIdx]))
			a.detail.GotoTop()
			a.view = ViewNodeDetail
		}

	case "e":
		a.edgeIdx = 0
		a.view = ViewEdges

	case "h":
		if a.history != nil {
			return a, a.loadHistory
		}
	}

	return a, nil
}

func (a *App) handleNodeDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.view = ViewNodeList
		return a, nil

	case "ctrl+c":
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.detail, cmd = a.detail.Update(msg)
	return a, cmd
}

func (a *App) handleEdgesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.view = ViewNodeList

	case "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.edgeIdx > 0 {
			a.edgeIdx--
		}

	case "down", "j":
		if a.edgeIdx < len(a.doc.Edges)-1 {
			a.edgeIdx++
		}
	}

	return a, nil
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.view = ViewNodeList

	case "ctrl+c":
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) View() string {
	switch a.view {
	case ViewNodeList:
		return a.viewNodeList()
	case ViewNodeDetail:
		return a.viewNodeDetail()
	case ViewEdges:
		return a.viewEdges()
	case ViewHistory:
		return a.viewHistory()
	}
	return ""
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func (a *App) viewNodeList() string {
	s := titleStyle.Render(a.title) + "\n\n"

	if a.err != nil {
		s += fmt.Sprintf("Error: %v\n", a.err)
	}

	s += fmt.Sprintf("Nodes (%d)  Edges (%d)\n", len(a.doc.Nodes), len(a.doc.Edges))
	s += "───────────────────\n"

	for i, n := range a.doc.Nodes {
		line := formatNodeLine(n)
		if i == a.selectedIdx {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}

	help := "[enter] view  [e] edges  [q] quit"
	if a.history != nil {
		help = "[enter] view  [e] edges  [h] history  [q] quit"
	}
	s += "\n" + helpStyle.Render(help)

	return s
}

func formatNodeLine(n flow.Node) string {
	return fmt.Sprintf("%-28s %-26s %s", n.ID, n.Data.Label, dimStyle.Render(n.Data.Name))
}

func (a *App) viewNodeDetail() string {
	return a.detail.View() + "\n\n" + helpStyle.Render("[↑/↓] scroll  [esc] back  [ctrl+c] quit")
}

var htmlTags = strings.NewReplacer("<p>", "", "</p>", "", "<em>", "", "</em>", "", "<strong>", "", "</strong>", "")

func (a *App) nodeDetail(n flow.Node) string {
	wrap := lipgloss.NewStyle().Width(max(a.width-2, 20))

	s := titleStyle.Render(n.Data.Label) + "  " + dimStyle.Render(n.ID) + "\n"
	s += labelStyle.Render("Type: ") + fmt.Sprintf("%s v%g", n.Data.Name, n.Data.Version) + "\n"
	s += wrap.Render(dimStyle.Render(n.Data.Description)) + "\n\n"

	if in, ok := n.AgentInputs(); ok {
		s += labelStyle.Render("Model: ") + fmt.Sprintf("%s (%s)", in.ModelConfig.ModelName, in.Model) + "\n"
		s += labelStyle.Render("Temperature: ") + fmt.Sprintf("%g", in.ModelConfig.Temperature) + "\n"
		memory := in.MemoryType
		if in.MemoryWindowSize != nil {
			memory += fmt.Sprintf(" (window %d)", *in.MemoryWindowSize)
		}
		s += labelStyle.Render("Memory: ") + memory + "\n"
		s += labelStyle.Render("Tools:") + "\n"
		for _, t := range in.Tools {
			s += "  • " + t.Tool + "\n"
		}
		for _, m := range in.Messages {
			s += "\n" + labelStyle.Render(m.Role+":") + "\n"
			s += wrap.Render(htmlTags.Replace(m.Content)) + "\n"
		}
	}

	if in, ok := n.RouterInputs(); ok {
		s += labelStyle.Render("Model: ") + fmt.Sprintf("%s (%s)", in.ModelConfig.ModelName, in.Model) + "\n"
		s += labelStyle.Render("Temperature: ") + fmt.Sprintf("%g", in.ModelConfig.Temperature) + "\n"
		s += labelStyle.Render("Scenarios:") + "\n"
		for i, sc := range in.Scenarios {
			s += wrap.Render(fmt.Sprintf("  %d. %s", i, sc.Scenario)) + "\n"
		}
		s += "\n" + labelStyle.Render("Instructions:") + "\n"
		s += wrap.Render(in.Instructions) + "\n"
	}

	if in, ok := n.StartInputs(); ok {
		s += labelStyle.Render("Form: ") + in.FormTitle + "\n"
		s += wrap.Render(in.FormDescription) + "\n"
		for _, f := range in.FormInputTypes {
			s += fmt.Sprintf("  • %s (%s): %s\n", f.Name, f.Type, f.Label)
		}
	}

	s += "\n" + labelStyle.Render("Outgoing:") + "\n"
	out := a.doc.EdgesFrom(n.ID)
	if len(out) == 0 {
		s += "  (none)\n"
	}
	for _, e := range out {
		s += fmt.Sprintf("  → %s", e.Target)
		if e.Data.EdgeLabel != "" {
			s += dimStyle.Render(" [" + e.Data.EdgeLabel + "]")
		}
		s += "\n"
	}

	s += labelStyle.Render("Incoming:") + "\n"
	incoming := 0
	for _, e := range a.doc.Edges {
		if e.Target == n.ID {
			s += fmt.Sprintf("  ← %s\n", e.Source)
			incoming++
		}
	}
	if incoming == 0 {
		s += "  (none)\n"
	}

	return s
}

func (a *App) viewEdges() string {
	s := titleStyle.Render("Edges") + "\n\n"

	if len(a.doc.Edges) == 0 {
		s += "(no edges)\n"
	}

	for i, e := range a.doc.Edges {
		line := fmt.Sprintf("%-28s → %-20s", e.Source, e.Target)
		if e.Data.EdgeLabel != "" {
			line += " [" + e.Data.EdgeLabel + "]"
		}
		if i == a.edgeIdx {
			line = selectedStyle.Render("▶ "+line) + "\n  " + dimStyle.Render(e.ID)
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}

	s += "\n" + helpStyle.Render("[↑/↓] select  [esc] back  [ctrl+c] quit")

	return s
}

func (a *App) viewHistory() string {
	s := titleStyle.Render("History") + "\n\n"

	if len(a.generations) == 0 {
		s += "No generations recorded yet.\n"
	}

	for _, g := range a.generations {
		mark := passStyle.Render("✓")
		if !g.Passed {
			mark = failStyle.Render("✗")
		}
		s += fmt.Sprintf("  #%-3d %-9s %s  %s  %d/%d  %s\n",
			g.ID, storage.FormatTimeAgo(g.CreatedAt), mark, shortDigest(g.Digest),
			g.NodeCount, g.EdgeCount, dimStyle.Render(g.OutputPath))
	}

	s += "\n" + helpStyle.Render("[esc] back  [ctrl+c] quit")

	return s
}

func shortDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}

// Messages

type historyLoadedMsg struct {
	generations []*models.Generation
	err         error
}

// Commands

func (a *App) loadHistory() tea.Msg {
	gens, err := a.history.ListGenerations(20)
	return historyLoadedMsg{generations: gens, err: err}
}
