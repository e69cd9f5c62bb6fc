// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package pipeline sequences the external engines of the eccDNA caller.
//
// A pipeline is an ordered list of stages.  Each stage names an optional
// checkpoint artifact: a file whose existence on disk means the stage already
// completed in an earlier run.  The controller skips such stages without
// inspecting the artifact's content, runs every other stage to completion,
// and halts on the first failure.  Stages without an artifact (insert-size
// estimation, the final merge) run on every invocation; their cost is a
// single file scan or a fast merge, which is cheaper than the bookkeeping a
// checkpoint would need.
//
// The working directory holding the artifacts is removed after a fully
// successful run only when the controller itself derived its path.  A failed
// run always leaves the directory behind for postmortem inspection.
package pipeline
