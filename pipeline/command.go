package pipeline

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Command runs one external engine: parameters in, exit status out.  The
// engine's own concurrency (thread-count flags and the like) is passed
// through in Args and not managed here.
type Command struct {
	Path string
	Args []string
	// Stdout and Stderr default to the parent process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the engine and blocks until it exits.  A non-zero exit status
// is an error; the caller must not treat the stage as complete.
func (c *Command) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	log.Debug.Printf("exec: %s %s", c.Path, strings.Join(c.Args, " "))
	if err := cmd.Run(); err != nil {
		return errors.E(err, "engine failed:", c.Path)
	}
	return nil
}
