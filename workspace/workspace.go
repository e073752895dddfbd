// Package workspace provides the disposable scratch area one conversion run
// owns. Nothing placed here survives the invocation.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is an exclusively-owned temporary directory plus a run ID used
// to correlate log lines.
type Workspace struct {
	id     string
	dir    string
	logger *slog.Logger
}

// New creates the temp directory for one run.
func New(logger *slog.Logger) (*Workspace, error) {
	id := uuid.NewString()
	dir, err := os.MkdirTemp("", "voicemail-"+id[:8]+"-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	if logger != nil {
		logger.Debug("workspace created", "run", id, "dir", dir)
	}
	return &Workspace{id: id, dir: dir, logger: logger}, nil
}

// ID returns the run correlation ID.
func (w *Workspace) ID() string { return w.id }

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Stage writes a named intermediate artifact into the workspace, used for
// debug inspection of decoded and transcoded audio.
func (w *Workspace) Stage(name string, data []byte) error {
	if err := os.WriteFile(w.Path(name), data, 0o600); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}

// Close removes the workspace. Safe to call on every exit path.
func (w *Workspace) Close() error {
	err := os.RemoveAll(w.dir)
	if w.logger != nil {
		if err != nil {
			w.logger.Warn("workspace cleanup failed", "run", w.id, "dir", w.dir, "err", err)
		} else {
			w.logger.Debug("workspace removed", "run", w.id, "dir", w.dir)
		}
	}
	return err
}
