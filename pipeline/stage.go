package pipeline

import (
	"context"
	"os"

	"github.com/grailbio/base/errors"
)

// CheckpointState tells whether a stage's checkpoint artifact exists.
type CheckpointState int

const (
	// NotStarted means no artifact exists; the stage must run.
	NotStarted CheckpointState = iota
	// Completed means the artifact exists and the stage is skipped.  Only
	// existence is checked, never content.
	Completed
)

// Checkpoint is the durable trace of a stage.  Artifact is set only in the
// Completed state; keeping the path alongside the state leaves room for
// content validation later without changing the controller.
type Checkpoint struct {
	State    CheckpointState
	Artifact string
}

// Stage is one unit of pipeline work, executed at most once per run.
type Stage struct {
	Name string
	// Artifact is the stage's checkpoint path.  Empty marks a stage that is
	// never checkpointed and runs on every invocation.
	Artifact string
	// Run invokes the stage's engine and blocks until it exits.
	Run func(ctx context.Context) error
}

// Checkpoint reports the stage's completion state from the filesystem.  A
// stat failure other than non-existence is a fatal filesystem error.
func (s *Stage) Checkpoint() (Checkpoint, error) {
	if s.Artifact == "" {
		return Checkpoint{State: NotStarted}, nil
	}
	if _, err := os.Stat(s.Artifact); err != nil {
		if os.IsNotExist(err) {
			return Checkpoint{State: NotStarted}, nil
		}
		return Checkpoint{}, errors.E(err, "stat checkpoint artifact:", s.Artifact)
	}
	return Checkpoint{State: Completed, Artifact: s.Artifact}, nil
}
