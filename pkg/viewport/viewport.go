// Package viewport owns the interactive view of the call graph: pan, zoom,
// fit-to-view, and the placeholder/graph display states. It is the sole
// consumer of the Load / ShowMessage / Clear messages emitted by the
// application around the process orchestrator.
package viewport

import (
	"time"

	"github.com/plokm5151/tracecraft/pkg/dot"
	"github.com/plokm5151/tracecraft/pkg/graph"
	"github.com/plokm5151/tracecraft/pkg/layout"
	"github.com/plokm5151/tracecraft/pkg/logging"
	"github.com/plokm5151/tracecraft/pkg/metrics"
	"github.com/plokm5151/tracecraft/pkg/scene"
)

// State is the viewport display state. Placeholder and Graph are mutually
// exclusive and transition only via Load, ShowMessage, and Clear.
type State int

const (
	// StatePlaceholder shows a message and no content
	StatePlaceholder State = iota
	// StateGraph shows at least one laid-out node
	StateGraph
)

// String returns the string representation of a viewport state
func (s State) String() string {
	switch s {
	case StatePlaceholder:
		return "placeholder"
	case StateGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// Placeholder messages.
const (
	WelcomeMessage    = "Select a workspace and run the analysis\nto visualize the call graph"
	EmptyGraphMessage = "No nodes found in the call graph"
	openFailedPrefix  = "Failed to open output file:\n"
)

// View parameters.
const (
	// DefaultZoomStep is the per-wheel-notch scale factor
	DefaultZoomStep = 1.1
	// DefaultFitMargin is the extra zoom-out applied after fit-to-view
	DefaultFitMargin = 0.9
	// fitPadding is the symmetric world-space padding around the content box
	fitPadding = 50.0
	// cellAspect compensates for terminal cells being about twice as tall
	// as they are wide
	cellAspect = 0.5
)

// ViewState is the current scale factor and view center. It is reset by
// fit-to-view after a successful load and otherwise preserved across
// interactions until the next load.
type ViewState struct {
	Scale  float64
	Center graph.Position
}

// Config configures a Viewport.
type Config struct {
	Engine    layout.Engine
	Logger    logging.Logger
	Metrics   *metrics.Registry
	ZoomStep  float64
	FitMargin float64
}

// Viewport renders either a placeholder message or the laid-out graph onto
// a cell canvas, applying the current view transform.
type Viewport struct {
	engine    layout.Engine
	logger    logging.Logger
	metrics   *metrics.Registry
	zoomStep  float64
	fitMargin float64

	g       *graph.Graph
	items   []scene.Item
	state   State
	message string
	view    ViewState

	width  int
	height int

	// Decorative layer: drawn on top, never touched by Load/Clear.
	sprites []*scene.Sprite
}

// New creates a viewport in the placeholder state showing the welcome
// message. Zero config fields fall back to defaults.
func New(cfg Config) *Viewport {
	if cfg.Engine == nil {
		cfg.Engine = layout.NewGridLayout(0, 0, 0)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger{}
	}
	if cfg.ZoomStep <= 1 {
		cfg.ZoomStep = DefaultZoomStep
	}
	if cfg.FitMargin <= 0 || cfg.FitMargin > 1 {
		cfg.FitMargin = DefaultFitMargin
	}

	return &Viewport{
		engine:    cfg.Engine,
		logger:    cfg.Logger.With(logging.Component("viewport")),
		metrics:   cfg.Metrics,
		zoomStep:  cfg.ZoomStep,
		fitMargin: cfg.FitMargin,
		g:         graph.New(),
		state:     StatePlaceholder,
		message:   WelcomeMessage,
		view:      ViewState{Scale: 1},
		width:     80,
		height:    24,
	}
}

// State returns the current display state.
func (v *Viewport) State() State { return v.state }

// Message returns the current placeholder message ("" in graph state).
func (v *Viewport) Message() string { return v.message }

// Graph exposes the model for inspection; callers must not mutate it.
func (v *Viewport) Graph() *graph.Graph { return v.g }

// View returns the current view state.
func (v *Viewport) View() ViewState { return v.view }

// SetSize updates the render size in cells. The view transform is kept;
// content is not refitted on resize.
func (v *Viewport) SetSize(width, height int) {
	if width > 0 {
		v.width = width
	}
	if height > 0 {
		v.height = height
	}
}

// Handle dispatches one viewport message.
func (v *Viewport) Handle(msg Msg) {
	switch m := msg.(type) {
	case LoadMsg:
		v.Load(m.Path)
	case ShowMessageMsg:
		v.ShowMessage(m.Text)
	case ClearMsg:
		v.Clear()
	}
}

// Load runs the full synchronous pipeline: clear, parse, populate, layout,
// fit. Every failure lands in the placeholder state; the returned error is
// non-nil only for an unreadable artifact. An empty parse result is a valid
// outcome that shows the empty-graph placeholder.
func (v *Viewport) Load(path string) error {
	start := time.Now()
	v.g.Clear()
	v.items = nil

	doc, err := dot.ParseFile(path)
	if err != nil {
		v.setPlaceholder(openFailedPrefix + path)
		v.logger.Error("artifact load failed", logging.Artifact(path), logging.Error(err))
		if v.metrics != nil {
			v.metrics.RecordArtifactLoad("io_error", time.Since(start))
		}
		return err
	}

	v.g.Populate(doc)

	if v.g.Len() == 0 {
		v.setPlaceholder(EmptyGraphMessage)
		v.logger.Warn("artifact contained no nodes", logging.Artifact(path))
		if v.metrics != nil {
			v.metrics.RecordArtifactLoad("empty", time.Since(start))
			v.metrics.UpdateGraphSize(0, 0)
		}
		return nil
	}

	v.engine.Apply(v.g)
	v.items = scene.Build(v.g)
	v.state = StateGraph
	v.message = ""
	v.fit()
	v.boundSprites()

	v.logger.Info("artifact loaded",
		logging.Artifact(path),
		logging.NodeCount(v.g.Len()),
		logging.EdgeCount(v.g.EdgeCount()),
		logging.Latency(time.Since(start)),
	)
	if v.metrics != nil {
		v.metrics.RecordArtifactLoad("loaded", time.Since(start))
		v.metrics.UpdateGraphSize(v.g.Len(), v.g.EdgeCount())
	}
	return nil
}

// ShowMessage drops any graph content and shows text in the placeholder.
func (v *Viewport) ShowMessage(text string) {
	v.setPlaceholder(text)
}

// Clear drops any graph content and returns to the welcome placeholder.
// The decorative layer is untouched.
func (v *Viewport) Clear() {
	v.setPlaceholder(WelcomeMessage)
	if v.metrics != nil {
		v.metrics.UpdateGraphSize(0, 0)
	}
}

func (v *Viewport) setPlaceholder(text string) {
	v.g.Clear()
	v.items = nil
	v.state = StatePlaceholder
	v.message = text
}

// ZoomIn scales the view by one zoom step. No upper bound is enforced.
func (v *Viewport) ZoomIn() {
	v.view.Scale *= v.zoomStep
}

// ZoomOut scales the view down by one zoom step. No lower bound is enforced.
func (v *Viewport) ZoomOut() {
	v.view.Scale /= v.zoomStep
}

// PanCells translates the view by a cell delta. Node positions and the
// graph model are never touched by panning.
func (v *Viewport) PanCells(dx, dy int) {
	if v.view.Scale == 0 {
		return
	}
	v.view.Center.X += float64(dx) / v.view.Scale
	v.view.Center.Y += float64(dy) / (v.view.Scale * cellAspect)
}

// Fit reframes the content bounding box. Exposed for the refit key.
func (v *Viewport) Fit() {
	if v.state == StateGraph {
		v.fit()
	}
}

// fit frames the content box with symmetric padding, applies an
// aspect-preserving scale, then one extra fixed zoom-out for margin.
func (v *Viewport) fit() {
	min, max, ok := layout.BoundingBox(v.g)
	if !ok {
		return
	}

	bw := max.X - min.X + 2*fitPadding
	bh := max.Y - min.Y + 2*fitPadding

	scaleX := float64(v.width) / bw
	scaleY := float64(v.height) / cellAspect / bh
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	v.view.Scale = scale * v.fitMargin
	v.view.Center = graph.Position{
		X: (min.X + max.X) / 2,
		Y: (min.Y + max.Y) / 2,
	}
}

// AddSprite attaches a decorative sprite drawn above all graph content.
func (v *Viewport) AddSprite(s *scene.Sprite) {
	v.sprites = append(v.sprites, s)
	v.boundSprites()
}

// TickSprites advances the decorative layer one animation step.
func (v *Viewport) TickSprites() {
	for _, s := range v.sprites {
		s.Step()
	}
}

func (v *Viewport) boundSprites() {
	if len(v.sprites) == 0 {
		return
	}
	bounds := scene.Rect{
		Min: graph.Position{X: -300, Y: -200},
		Max: graph.Position{X: 300, Y: 200},
	}
	if min, max, ok := layout.BoundingBox(v.g); ok {
		bounds = scene.Rect{Min: min, Max: max}
	}
	for _, s := range v.sprites {
		s.SetBounds(bounds)
	}
}

// Render draws the current state to a fresh canvas and returns its text.
func (v *Viewport) Render() string {
	c := scene.NewCanvas(v.width, v.height)

	sx := v.view.Scale
	sy := v.view.Scale * cellAspect
	c.SetTransform(sx, sy,
		float64(v.width)/2-v.view.Center.X*sx,
		float64(v.height)/2-v.view.Center.Y*sy,
	)

	if v.state == StatePlaceholder {
		scene.PlaceholderText{Text: v.message}.Draw(c)
	} else {
		for _, item := range v.items {
			item.Draw(c)
		}
	}

	for _, s := range v.sprites {
		s.Draw(c)
	}

	return c.String()
}
