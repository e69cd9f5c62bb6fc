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
	"math"

	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// Defaults used by the bio-ecc realign subcommand.  A MAPQ-60 cutoff limits
// the sample to uniquely placed pairs; 100k pairs is far more than needed for
// a stable mean/std but still a small fraction of a WGS run.
const (
	DefaultSampleSize = 100000
	DefaultMapqCutoff = 60
)

// ErrEmptySample is returned by Estimate when the stream contains no
// qualifying read pair.  Callers must treat it as fatal rather than
// substituting a default: a made-up mean would silently corrupt every
// downstream realignment.
var ErrEmptySample = errors.New("insertsize: no qualifying read pairs in stream")

// Stats summarizes the accepted template lengths.
type Stats struct {
	Mean float64
	// Std is the population standard deviation (divide by N, not N-1).
	Std   float64
	Count int
}

// IsSoftClipped returns true iff any CIGAR operation is a soft clip.
func IsSoftClipped(cigar sam.Cigar) bool {
	for _, op := range cigar {
		if op.Type() == sam.CigarSoftClipped {
			return true
		}
	}
	return false
}

// IsHardClipped returns true iff any CIGAR operation is a hard clip.
func IsHardClipped(cigar sam.Cigar) bool {
	for _, op := range cigar {
		if op.Type() == sam.CigarHardClipped {
			return true
		}
	}
	return false
}

// wellFormed rejects records whose CIGAR could not be parsed.  A mapped
// record always carries at least one operation, so an empty CIGAR on a
// mapped record marks a malformed row; such records are skipped, they are
// not an error and do not count toward the sample.
func wellFormed(r *sam.Record) bool {
	return r.Flags&sam.Unmapped != 0 || len(r.Cigar) > 0
}

// acceptPair applies the acceptance filter to a name-matched (R1, R2) pair.
// All conditions are required:
//
//   1. both MAPQ >= mapqCutoff
//   2. R1 flagged properly paired
//   3. neither mate hard clipped
//   4. neither mate soft clipped
//   5. FR orientation: R1 forward, R2 reverse
//   6. R1 template length strictly positive
func acceptPair(first, second *sam.Record, mapqCutoff int) bool {
	if int(first.MapQ) < mapqCutoff || int(second.MapQ) < mapqCutoff {
		return false
	}
	if first.Flags&sam.ProperPair == 0 {
		return false
	}
	if IsHardClipped(first.Cigar) || IsHardClipped(second.Cigar) {
		return false
	}
	if IsSoftClipped(first.Cigar) || IsSoftClipped(second.Cigar) {
		return false
	}
	if first.Flags&sam.Reverse != 0 || second.Flags&sam.Reverse == 0 {
		return false
	}
	return first.TempLen > 0
}

// Estimate scans src once, in stream order, and returns the mean and
// population standard deviation of the template lengths of up to sampleSize
// accepted pairs.  src must be name sorted so that the two mates of a
// template are adjacent or near-adjacent; under that invariant a single
// buffered R1 record suffices for pairing.  An R1 record always overwrites
// the buffer, so an R1 whose mate never follows is dropped silently; with
// unsorted input the estimator remains lossy, never wrong.
//
// Scanning stops at sampleSize accepted pairs or at end of stream, whichever
// comes first.  An exhausted stream with zero accepted pairs yields
// ErrEmptySample.
func Estimate(src RecordSource, sampleSize, mapqCutoff int) (Stats, error) {
	if sampleSize <= 0 {
		return Stats{}, errors.Errorf("insertsize: sample size must be positive, got %d", sampleSize)
	}
	if mapqCutoff < 0 {
		return Stats{}, errors.Errorf("insertsize: MAPQ cutoff must be non-negative, got %d", mapqCutoff)
	}
	var (
		first  *sam.Record
		sample = make([]float64, 0, sampleSize)
	)
	for len(sample) < sampleSize && src.Scan() {
		rec := src.Record()
		if rec.Flags&sam.Read1 != 0 {
			first = rec
			continue
		}
		if rec.Flags&sam.Read2 == 0 {
			continue
		}
		if first == nil || first.Name != rec.Name {
			continue
		}
		if !wellFormed(first) || !wellFormed(rec) {
			continue
		}
		if acceptPair(first, rec, mapqCutoff) {
			sample = append(sample, float64(first.TempLen))
		}
	}
	if err := src.Err(); err != nil {
		return Stats{}, errors.Wrap(err, "insertsize: reading alignment stream")
	}
	if len(sample) == 0 {
		return Stats{}, ErrEmptySample
	}
	stats := summarize(sample)
	log.Debug.Printf("insertsize: %d pairs sampled, mean %.2f std %.2f", stats.Count, stats.Mean, stats.Std)
	return stats, nil
}

func summarize(sample []float64) Stats {
	var sum float64
	for _, v := range sample {
		sum += v
	}
	mean := sum / float64(len(sample))
	var ss float64
	for _, v := range sample {
		d := v - mean
		ss += d * d
	}
	return Stats{
		Mean:  mean,
		Std:   math.Sqrt(ss / float64(len(sample))),
		Count: len(sample),
	}
}
