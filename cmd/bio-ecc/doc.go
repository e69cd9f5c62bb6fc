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

/*
bio-ecc detects extrachromosomal circular DNA (eccDNA) evidence from
paired-end sequencing alignments by driving a fixed sequence of external
engines.

The realign subcommand runs the full pipeline: candidate-interval calling,
insert-size estimation, probabilistic realignment of soft-clipped reads,
per-base coverage, and a final merge into the report written at -output.
Every engine artifact lands in a working directory; artifacts double as
checkpoints, so an interrupted run restarted against the same -dir resumes
after the last completed stage.

The extract subcommand drives only the candidate-read extraction engine,
which classifies discordant and clipped reads out of a name-sorted BAM.

Sample usage:

bio-ecc realign \
    -sbam sorted.bam \
    -qbam candidates.qname.bam \
    -fasta hg38.fa \
    -output circles.bed \
    -dir /scratch/run1

bio-ecc extract -i sample.qname.bam -o candidates.bam
*/
package main
