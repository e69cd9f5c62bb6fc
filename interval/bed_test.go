package interval

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bedText = `# candidate intervals
track name=peaks
chr1	100	300
chr1	250	400
chr1	500	600

chr2	0	50
`

var bedEntries = []Entry{
	{"chr1", 100, 300},
	{"chr1", 250, 400},
	{"chr1", 500, 600},
	{"chr2", 0, 50},
}

func TestReadBED(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "peaks.bed")
	require.NoError(t, ioutil.WriteFile(path, []byte(bedText), 0644))

	entries, err := ReadBED(path)
	require.NoError(t, err)
	assert.Equal(t, bedEntries, entries)
}

func TestReadBEDGzip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "peaks.bed.gz")
	out, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write([]byte(bedText))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, out.Close())

	entries, err := ReadBED(path)
	require.NoError(t, err)
	assert.Equal(t, bedEntries, entries)
}

func TestReadBEDMalformed(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	tests := []string{
		"chr1\t100\n",       // too few columns
		"chr1\tx\t300\n",    // bad start
		"chr1\t100\ty\n",    // bad end
		"chr1\t300\t100\n",  // end before start
	}
	for _, text := range tests {
		path := filepath.Join(tempDir, "bad.bed")
		require.NoError(t, ioutil.WriteFile(path, []byte(text), 0644))
		_, err := ReadBED(path)
		expect.True(t, err != nil, "input: %q", text)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(bedEntries)
	// chr1 [100,400) and [500,600), chr2 [0,50).
	assert.Equal(t, Summary{N: 4, Merged: 3, Bases: 300 + 100 + 50}, summary)

	assert.Equal(t, Summary{}, Summarize(nil))

	// Order independence.
	shuffled := []Entry{bedEntries[2], bedEntries[0], bedEntries[3], bedEntries[1]}
	assert.Equal(t, summary, Summarize(shuffled))
}
