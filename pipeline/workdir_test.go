package pipeline

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestWorkdirImplicit(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	defer func() {
		require.NoError(t, os.Chdir(oldwd))
	}()

	w, err := OpenWorkdir("")
	require.NoError(t, err)
	expect.True(t, w.Owned())
	expect.EQ(t, filepath.Base(w.Path()), fmt.Sprintf("ecc-tmp-%d", os.Getpid()))

	// Contents go too.
	require.NoError(t, ioutil.WriteFile(w.Join("peaks.bed"), []byte("chr1\t0\t1\n"), 0644))
	require.NoError(t, w.Close())
	_, err = os.Stat(w.Path())
	expect.True(t, os.IsNotExist(err))
}

func TestWorkdirCallerSupplied(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	// Created on demand, but never owned and never removed.
	path := filepath.Join(tempDir, "scratch")
	w, err := OpenWorkdir(path)
	require.NoError(t, err)
	expect.False(t, w.Owned())
	require.NoError(t, w.Close())
	_, err = os.Stat(path)
	expect.NoError(t, err)

	// Reopening an existing directory is fine.
	w2, err := OpenWorkdir(path)
	require.NoError(t, err)
	expect.False(t, w2.Owned())
}

func TestWorkdirJoin(t *testing.T) {
	w := &Workdir{path: "/scratch/run1"}
	expect.EQ(t, w.Join("ecctemp.txt"), "/scratch/run1/ecctemp.txt")
}
