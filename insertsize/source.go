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
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// RecordSource is a sequential, one-pass reader over an alignment stream.
//
// Scan advances to the next record, returning false at end of stream or on
// error; Record is valid only after a Scan that returned true; Err reports
// the first error encountered, nil at a clean end of stream.
type RecordSource interface {
	Scan() bool
	Record() *sam.Record
	Err() error
}

// BAMSource reads records from a BAM file in file order.  It implements
// RecordSource; no index is required or consulted.
type BAMSource struct {
	ctx context.Context
	in  file.File
	br  *bam.Reader
	rec *sam.Record
	err error
}

// NewBAMSource opens a BAM file for sequential reading.
func NewBAMSource(ctx context.Context, path string) (*BAMSource, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "insertsize: open %s", path)
	}
	br, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		_ = in.Close(ctx)
		return nil, errors.Wrapf(err, "insertsize: read BAM header of %s", path)
	}
	return &BAMSource{ctx: ctx, in: in, br: br}, nil
}

// Scan implements RecordSource.
func (s *BAMSource) Scan() bool {
	if s.err != nil {
		return false
	}
	rec, err := s.br.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = err
		return false
	}
	s.rec = rec
	return true
}

// Record implements RecordSource.
func (s *BAMSource) Record() *sam.Record { return s.rec }

// Err implements RecordSource.
func (s *BAMSource) Err() error { return s.err }

// Close releases the underlying reader and file handle.
func (s *BAMSource) Close() error {
	err := s.br.Close()
	if e := s.in.Close(s.ctx); e != nil && err == nil {
		err = e
	}
	return err
}
