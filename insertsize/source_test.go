// Copyright 2019 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package insertsize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBAMSource(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	chr1, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1})
	require.NoError(t, err)

	co := []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 4)}
	names := []string{"frag1", "frag1", "frag2"}
	path := filepath.Join(tempDir, "in.bam")
	out, err := os.Create(path)
	require.NoError(t, err)
	bw, err := bam.NewWriter(out, header, 1)
	require.NoError(t, err)
	for i, name := range names {
		rec, err := sam.NewRecord(name, chr1, chr1, 10+i, 100+i, 300, 60, co,
			[]byte("ACGT"), []byte{30, 30, 30, 30}, nil)
		require.NoError(t, err)
		require.NoError(t, bw.Write(rec))
	}
	require.NoError(t, bw.Close())
	require.NoError(t, out.Close())

	src, err := NewBAMSource(vcontext.Background(), path)
	require.NoError(t, err)
	var got []string
	for src.Scan() {
		got = append(got, src.Record().Name)
	}
	require.NoError(t, src.Err())
	assert.Equal(t, names, got)
	require.NoError(t, src.Close())
}

func TestBAMSourceMissingFile(t *testing.T) {
	_, err := NewBAMSource(vcontext.Background(), "/nonexistent/no.bam")
	assert.Error(t, err)
}
