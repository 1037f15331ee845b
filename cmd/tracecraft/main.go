package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plokm5151/tracecraft/pkg/analysis"
	"github.com/plokm5151/tracecraft/pkg/config"
	"github.com/plokm5151/tracecraft/pkg/layout"
	"github.com/plokm5151/tracecraft/pkg/logging"
	"github.com/plokm5151/tracecraft/pkg/metrics"
	"github.com/plokm5151/tracecraft/pkg/scene"
	"github.com/plokm5151/tracecraft/pkg/viewport"
	"github.com/plokm5151/tracecraft/pkg/workspace"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8700")).
			MarginLeft(1)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FAF")).
			Padding(0, 1)

	sidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#AFAFFF"))

	canvasStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF8700"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF87")).
			MarginLeft(1)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true).
			MarginLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)
)

const sidebarWidth = 26

type keyMap struct {
	Open  key.Binding
	Run   key.Binding
	Clear key.Binding
	In    key.Binding
	Out   key.Binding
	Fit   key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open workspace"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run analysis"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	In: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	Out: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	Fit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "pan up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "pan down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "pan left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "pan right"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Run, k.Clear, k.Fit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Run, k.Clear},
		{k.In, k.Out, k.Fit},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Quit},
	}
}

// completionMsg wraps a runner completion for the update loop.
type completionMsg analysis.Completion

// mascotTickMsg drives the decorative sprite animation.
type mascotTickMsg time.Time

type model struct {
	cfg     config.Config
	logger  logging.Logger
	runner  *analysis.Runner
	vp      *viewport.Viewport
	keys    keyMap
	help    help.Model
	picker  textinput.Model
	picking bool

	workspaceDir string
	files        []string

	width  int
	height int

	status    string
	statusErr bool
	running   bool
}

func initialModel(cfg config.Config, logger logging.Logger, reg *metrics.Registry) model {
	vp := viewport.New(viewport.Config{
		Engine: layout.NewGridLayout(
			cfg.Layout.Columns,
			cfg.Layout.SpacingX,
			cfg.Layout.SpacingY,
		),
		Logger:    logger,
		Metrics:   reg,
		ZoomStep:  cfg.View.ZoomStep,
		FitMargin: cfg.View.FitMargin,
	})
	if cfg.Mascot {
		vp.AddSprite(scene.NewSprite('§', time.Now().UnixNano()))
	}

	runner := analysis.NewRunner(analysis.Config{
		BackendPath: cfg.Backend.Path,
		Logger:      logger,
		Metrics:     reg,
	})

	ti := textinput.New()
	ti.Placeholder = "/path/to/rust/project"
	ti.CharLimit = 512
	ti.Width = 60

	return model{
		cfg:    cfg,
		logger: logger,
		runner: runner,
		vp:     vp,
		keys:   keys,
		help:   help.New(),
		picker: ti,
		status: "Ready",
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForCompletion(m.runner)}
	if m.cfg.Mascot {
		cmds = append(cmds, mascotTick())
	}
	return tea.Batch(cmds...)
}

// waitForCompletion blocks on the runner's event channel and republishes
// the completion into the bubbletea loop. Re-armed after every completion
// so each run delivers exactly one message.
func waitForCompletion(r *analysis.Runner) tea.Cmd {
	return func() tea.Msg {
		return completionMsg(<-r.Events())
	}
}

func mascotTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return mascotTickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.vp.SetSize(m.canvasWidth(), m.canvasHeight())
		return m, nil

	case mascotTickMsg:
		m.vp.TickSprites()
		return m, mascotTick()

	case completionMsg:
		m.applyCompletion(analysis.Completion(msg))
		return m, waitForCompletion(m.runner)

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.picking = false
		m.picker.Blur()
		m.selectWorkspace(strings.TrimSpace(m.picker.Value()))
		return m, nil
	case "esc":
		m.picking = false
		m.picker.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.runner.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Open):
		m.picking = true
		m.picker.SetValue(m.workspaceDir)
		m.picker.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Run):
		m.runAnalysis()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.vp.Handle(viewport.ClearMsg{})
		m.setStatus("Results cleared", false)
		return m, nil

	case key.Matches(msg, m.keys.In):
		m.vp.ZoomIn()
	case key.Matches(msg, m.keys.Out):
		m.vp.ZoomOut()
	case key.Matches(msg, m.keys.Fit):
		m.vp.Fit()
	case key.Matches(msg, m.keys.Up):
		m.vp.PanCells(0, -2)
	case key.Matches(msg, m.keys.Down):
		m.vp.PanCells(0, 2)
	case key.Matches(msg, m.keys.Left):
		m.vp.PanCells(-4, 0)
	case key.Matches(msg, m.keys.Right):
		m.vp.PanCells(4, 0)
	}
	return m, nil
}

func (m *model) selectWorkspace(dir string) {
	if dir == "" {
		return
	}

	files, err := workspace.ListSources(dir)
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot read %s: %v", dir, err), true)
		return
	}

	m.workspaceDir = dir
	m.files = files
	m.setStatus(fmt.Sprintf("Loaded: %s (%d .rs files)", dir, len(files)), false)
}

func (m *model) runAnalysis() {
	if m.workspaceDir == "" {
		m.setStatus("Select a Rust project folder first", true)
		return
	}
	if !workspace.HasManifest(m.workspaceDir) {
		m.setStatus("No Cargo.toml found in "+m.workspaceDir, true)
		return
	}
	if m.running {
		return
	}

	err := m.runner.Start(context.Background(), analysis.Request{
		Workspace:    m.workspaceDir,
		ArtifactPath: m.cfg.Backend.Artifact,
		Engine:       m.cfg.Backend.Engine,
	})
	if err != nil {
		if errors.Is(err, analysis.ErrBackendNotFound) {
			m.vp.Handle(viewport.ShowMessageMsg{
				Text: "Backend not found.\nPlease ensure '" + analysis.DefaultBackendName + "' is built.",
			})
			m.setStatus("Error: Backend not found", true)
			return
		}
		m.vp.Handle(viewport.ShowMessageMsg{
			Text: "Failed to start analysis:\n" + err.Error(),
		})
		m.setStatus("Failed to start analysis", true)
		return
	}

	m.running = true
	m.setStatus("Running analysis...", false)
}

// applyCompletion maps a terminal run outcome onto the viewport and status
// line. The run trigger is re-enabled here, exactly once per run.
func (m *model) applyCompletion(c analysis.Completion) {
	m.running = false

	var pf *analysis.ProcessFailure
	switch {
	case c.Err == nil:
		m.vp.Handle(viewport.LoadMsg{Path: c.ArtifactPath})
		m.setStatus("Analysis complete!", false)
	case errors.Is(c.Err, analysis.ErrNoArtifact):
		m.vp.Handle(viewport.ShowMessageMsg{
			Text: "Analysis completed but no output generated.",
		})
		m.setStatus("No output generated", true)
	case errors.As(c.Err, &pf):
		m.vp.Handle(viewport.ShowMessageMsg{
			Text: "Analysis failed:\n" + pf.Stderr,
		})
		m.setStatus("Analysis failed", true)
	default:
		m.vp.Handle(viewport.ShowMessageMsg{
			Text: "Analysis failed:\n" + c.Err.Error(),
		})
		m.setStatus("Analysis failed", true)
	}
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m model) canvasWidth() int {
	w := m.width - sidebarWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) canvasHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Tracecraft — Rust Call-Graph Viewer"))
	s.WriteString("\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		canvasStyle.Render(m.vp.Render()),
	)
	s.WriteString(body)
	s.WriteString("\n")

	if m.picking {
		s.WriteString(" Workspace: " + m.picker.View())
	} else if m.statusErr {
		s.WriteString(statusErrStyle.Render(m.status))
	} else {
		s.WriteString(statusStyle.Render(m.status))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderSidebar() string {
	var s strings.Builder
	s.WriteString(sidebarTitleStyle.Render("Sources"))
	s.WriteString("\n")

	if m.workspaceDir == "" {
		s.WriteString("(no workspace)")
	} else if len(m.files) == 0 {
		s.WriteString("(no .rs files)")
	} else {
		max := m.canvasHeight() - 2
		for i, name := range m.files {
			if i >= max {
				s.WriteString(fmt.Sprintf("… %d more", len(m.files)-max))
				break
			}
			s.WriteString(name)
			s.WriteString("\n")
		}
	}

	return sidebarStyle.
		Width(sidebarWidth).
		Height(m.canvasHeight()).
		Render(s.String())
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.DefaultLogger()
	reg := metrics.DefaultRegistry()

	p := tea.NewProgram(initialModel(cfg, logger, reg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
