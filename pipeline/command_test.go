package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSuccess(t *testing.T) {
	stdout := bytes.NewBuffer(nil)
	c := &Command{Path: "sh", Args: []string{"-c", "echo engine-ok"}, Stdout: stdout}
	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, "engine-ok\n", stdout.String())
}

func TestCommandNonZeroExit(t *testing.T) {
	c := &Command{Path: "sh", Args: []string{"-c", "exit 3"}}
	assert.Error(t, c.Run(context.Background()))
}

func TestCommandMissingBinary(t *testing.T) {
	c := &Command{Path: "/nonexistent/ecc-engine"}
	assert.Error(t, c.Run(context.Background()))
}
