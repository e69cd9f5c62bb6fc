package pipeline

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// StageResult records what the controller did with one stage.
type StageResult struct {
	Stage    string
	Skipped  bool
	Artifact string
}

// Controller runs stages strictly in order, one engine at a time.  It is not
// safe to run two controllers against the same working directory: the
// checkpoint existence checks would race.
type Controller struct {
	// Workdir, when set, is closed after all stages complete without error.
	Workdir *Workdir
}

// Run executes stages in order.  A stage whose checkpoint artifact already
// exists is skipped without side effects.  The first failure halts the
// remaining stages and, because the working directory session is only closed
// on full success, preserves all artifacts produced so far.  The returned
// results cover the stages reached, including the failed one's predecessors.
func (c *Controller) Run(ctx context.Context, stages []Stage) ([]StageResult, error) {
	results := make([]StageResult, 0, len(stages))
	for i := range stages {
		stage := &stages[i]
		cp, err := stage.Checkpoint()
		if err != nil {
			return results, err
		}
		if cp.State == Completed {
			log.Printf("stage %s: artifact %s present, skipping", stage.Name, cp.Artifact)
			results = append(results, StageResult{Stage: stage.Name, Skipped: true, Artifact: cp.Artifact})
			continue
		}
		log.Printf("stage %s: running", stage.Name)
		if err := stage.Run(ctx); err != nil {
			return results, errors.E(err, "stage failed:", stage.Name)
		}
		results = append(results, StageResult{Stage: stage.Name, Artifact: stage.Artifact})
	}
	if c.Workdir != nil {
		if err := c.Workdir.Close(); err != nil {
			return results, err
		}
	}
	return results, nil
}
