package viewport

// Msg is the closed set of messages the viewport consumes. The application
// translates orchestrator outcomes into exactly these three; the viewport
// has no other control surface.
type Msg interface {
	viewportMsg()
}

// LoadMsg asks the viewport to load the artifact at Path.
type LoadMsg struct {
	Path string
}

// ShowMessageMsg asks the viewport to display Text in the placeholder.
type ShowMessageMsg struct {
	Text string
}

// ClearMsg asks the viewport to drop all content.
type ClearMsg struct{}

func (LoadMsg) viewportMsg()        {}
func (ShowMessageMsg) viewportMsg() {}
func (ClearMsg) viewportMsg()       {}
