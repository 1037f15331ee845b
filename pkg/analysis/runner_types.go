package analysis

import (
	"os/exec"
	"sync"
	"time"

	"github.com/plokm5151/tracecraft/pkg/logging"
	"github.com/plokm5151/tracecraft/pkg/metrics"
)

// DefaultBackendName is the analysis binary looked up when no explicit
// backend path is configured.
const DefaultBackendName = "tracecraft-engine"

// DefaultEngine selects the backend's default analysis mode.
const DefaultEngine = "syn"

// State tracks where the runner is in a run's lifecycle. Terminal states
// are transient: the runner settles back to idle as part of delivering the
// completion, so a new run can start as soon as the event is out.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request describes one analysis invocation. Workspace is the project
// directory; its Cargo.toml is passed to the backend. ArtifactPath is where
// the backend must write the call-graph artifact.
type Request struct {
	Workspace    string
	ArtifactPath string
	Engine       string
}

// Completion is delivered on the events channel when a run reaches a
// terminal state. Err is nil only when the backend exited zero and the
// artifact exists at ArtifactPath; otherwise it is *ProcessFailure or
// ErrNoArtifact.
type Completion struct {
	RunID        string
	ExitCode     int
	Stderr       string
	ArtifactPath string
	Duration     time.Duration
	Err          error
}

// Config configures a Runner.
type Config struct {
	// BackendPath overrides backend discovery with an explicit binary path.
	BackendPath string
	// BackendName is the binary looked up next to the executable and under
	// ./target/release when BackendPath is empty. Defaults to
	// DefaultBackendName.
	BackendName string
	Logger      logging.Logger
	Metrics     *metrics.Registry
}

// Runner drives the external analysis backend: at most one child process at
// a time, completion delivered asynchronously on Events. All mutation goes
// through the mutex; the wait goroutine owns the running process.
type Runner struct {
	mu          sync.Mutex
	state       State
	cmd         *exec.Cmd
	done        chan struct{}
	backendPath string
	backendName string
	logger      logging.Logger
	metrics     *metrics.Registry
	events      chan Completion
	// generation counts runs; a wait goroutine only finishes the handoff
	// to idle if no newer run has started in the meantime.
	generation int64
}
