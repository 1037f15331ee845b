// Package analysis drives the external call-graph backend. A Runner spawns
// the backend binary for a workspace, captures its stderr, and reports the
// outcome as a Completion on an events channel rather than inline, so the
// caller (the TUI event loop) stays responsive while a run is in flight.
//
// One run at a time: Start rejects with ErrAlreadyRunning while a child
// process is alive. The backend contract is exit 0 plus an artifact file on
// success, non-zero plus a human-readable diagnostic on standard error on
// failure. Standard output is never inspected.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/plokm5151/tracecraft/pkg/logging"
)

// NewRunner creates a runner. Zero-value config fields fall back to
// defaults; a nil logger becomes a no-op logger.
func NewRunner(cfg Config) *Runner {
	name := cfg.BackendName
	if name == "" {
		name = DefaultBackendName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Runner{
		state:       StateIdle,
		backendPath: cfg.BackendPath,
		backendName: name,
		logger:      logger,
		metrics:     cfg.Metrics,
		events:      make(chan Completion, 1),
	}
}

// Events returns the channel on which completions are delivered, one per
// run. The channel is buffered so the wait goroutine never blocks on a slow
// consumer of a single run.
func (r *Runner) Events() <-chan Completion {
	return r.events
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Running reports whether a child process is currently alive.
func (r *Runner) Running() bool {
	return r.State() == StateRunning
}

// ResolveBackend locates the backend binary: the configured path if set,
// else a binary named after the backend next to the running executable,
// else ./target/release/<name>. Returns ErrBackendNotFound when none of
// those exists; no process is spawned in that case.
func (r *Runner) ResolveBackend() (string, error) {
	if r.backendPath != "" {
		if _, err := os.Stat(r.backendPath); err == nil {
			return r.backendPath, nil
		}
		return "", fmt.Errorf("configured backend %s: %w", r.backendPath, ErrBackendNotFound)
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), r.backendName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	candidate := filepath.Join("target", "release", r.backendName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("%s: %w", r.backendName, ErrBackendNotFound)
}

// Start launches one analysis run. It returns ErrAlreadyRunning while a
// previous run is still alive and ErrBackendNotFound when no backend binary
// can be located. On success the call returns immediately; the outcome
// arrives later as a Completion on Events.
func (r *Runner) Start(ctx context.Context, req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRunning {
		return ErrAlreadyRunning
	}

	backend, err := r.ResolveBackend()
	if err != nil {
		return err
	}

	engine := req.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	args := []string{
		"--workspace", filepath.Join(req.Workspace, "Cargo.toml"),
		"--output", req.ArtifactPath,
		"--engine", engine,
	}

	runID := uuid.NewString()
	stderr := &bytes.Buffer{}

	cmd := exec.CommandContext(ctx, backend, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if r.metrics != nil {
			r.metrics.RecordAnalysisRun("spawn_error", 0)
		}
		return &SpawnError{Backend: backend, Cause: err}
	}

	r.cmd = cmd
	r.state = StateRunning
	r.done = make(chan struct{})
	r.generation++
	gen := r.generation

	r.logger.Info("analysis started",
		logging.RunID(runID),
		logging.Workspace(req.Workspace),
		logging.Artifact(req.ArtifactPath),
		logging.Engine(engine),
	)

	go r.wait(gen, runID, cmd, stderr, req, time.Now())
	return nil
}

// wait blocks on the child process, classifies the outcome, and delivers
// exactly one Completion. The runner returns to idle only if this run is
// still the latest one: a consumer may receive the completion and start a
// new run before this goroutine gets to its final transition, and that new
// run's Running state must not be overwritten.
func (r *Runner) wait(gen int64, runID string, cmd *exec.Cmd, stderr *bytes.Buffer, req Request, started time.Time) {
	waitErr := cmd.Wait()
	duration := time.Since(started)

	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	completion := Completion{
		RunID:        runID,
		ExitCode:     exitCode,
		Stderr:       stderr.String(),
		ArtifactPath: req.ArtifactPath,
		Duration:     duration,
	}

	status := "succeeded"
	switch {
	case exitCode != 0:
		completion.Err = &ProcessFailure{ExitCode: exitCode, Stderr: completion.Stderr}
		status = "failed"
	case waitErr != nil:
		completion.Err = &ProcessFailure{ExitCode: exitCode, Stderr: completion.Stderr}
		status = "failed"
	default:
		if _, err := os.Stat(req.ArtifactPath); err != nil {
			completion.Err = ErrNoArtifact
			status = "no_artifact"
		}
	}

	r.mu.Lock()
	if completion.Err == nil {
		r.state = StateSucceeded
	} else {
		r.state = StateFailed
	}
	r.cmd = nil
	done := r.done
	r.done = nil
	r.mu.Unlock()

	if completion.Err == nil {
		r.logger.Info("analysis completed",
			logging.RunID(runID),
			logging.ExitCode(exitCode),
			logging.Latency(duration),
		)
	} else {
		r.logger.Warn("analysis failed",
			logging.RunID(runID),
			logging.ExitCode(exitCode),
			logging.Error(completion.Err),
			logging.Latency(duration),
		)
	}
	if r.metrics != nil {
		r.metrics.RecordAnalysisRun(status, duration)
	}

	r.events <- completion

	r.mu.Lock()
	if r.generation == gen {
		r.state = StateIdle
	}
	r.mu.Unlock()
	close(done)
}

// Shutdown force-kills a still-running backend and waits for its wait
// goroutine to finish. Safe to call when idle.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	cmd := r.cmd
	done := r.done
	r.mu.Unlock()

	if cmd == nil {
		return
	}
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if done != nil {
		<-done
	}
}
