package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Workdir is the pipeline's scratch directory session.  The owned flag is
// fixed at creation and consulted only at teardown; there is no ambient
// notion of "is this a temp dir".
type Workdir struct {
	path  string
	owned bool
}

// OpenWorkdir opens the scratch directory.  With an empty requested path the
// session derives one from the current directory and the process id, creates
// it, and owns it; Close will remove it.  A caller-supplied path is used
// as-is, created if absent, and never owned: it survives Close even when
// this call created it.
func OpenWorkdir(requested string) (*Workdir, error) {
	path, owned := requested, false
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.E(err, "resolve current directory")
		}
		path = filepath.Join(cwd, fmt.Sprintf("ecc-tmp-%d", os.Getpid()))
		owned = true
	}
	if err := os.MkdirAll(path, 0775); err != nil {
		return nil, errors.E(err, "create working directory:", path)
	}
	return &Workdir{path: path, owned: owned}, nil
}

// Path returns the directory path.
func (w *Workdir) Path() string { return w.path }

// Owned reports whether Close will remove the directory.
func (w *Workdir) Owned() bool { return w.owned }

// Join returns elems joined under the directory.
func (w *Workdir) Join(elems ...string) string {
	return filepath.Join(append([]string{w.path}, elems...)...)
}

// Close removes the directory and its contents iff the session owns it.
// Callers invoke Close only after a fully successful run, so a failed
// pipeline always leaves its artifacts in place for inspection.
func (w *Workdir) Close() error {
	if !w.owned {
		return nil
	}
	log.Debug.Printf("removing working directory %s", w.path)
	if err := os.RemoveAll(w.path); err != nil {
		return errors.E(err, "remove working directory:", w.path)
	}
	return nil
}
