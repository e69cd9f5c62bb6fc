package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/ecc/insertsize"
	"github.com/grailbio/ecc/interval"
	"github.com/grailbio/ecc/pipeline"
	"v.io/x/lib/cmdline"
)

// Names of the working-directory artifacts.  peaks.bed and ecctemp.txt also
// serve as the checkpoints of their stages.
const (
	peaksFile      = "peaks.bed"
	realignTmpFile = "ecctemp.txt"
	coverageFile   = "coverage.tsv"
)

type realignFlags struct {
	// Inputs and outputs.
	sortedBAM *string
	queryBAM  *string
	fasta     *string
	output    *string
	dir       *string

	// Insert-size estimation.
	sampleSize *int
	insertMapq *int

	// Realignment engine tuning, passed through opaquely.
	stdMultiplier *float64
	realignMapq   *int
	intervalProb  *float64
	editFraction  *float64
	minSoftClip   *int
	maxAlignments *int
	gapOpen       *int
	gapExtend     *int
	probCutoff    *float64

	// Merge engine reporting thresholds, passed through opaquely.
	alleleFrequency *float64
	discordants     *int
	splitReads      *int
	splitQuality    *int
	mergeFraction   *float64
	extension       *int
	bases           *int
	covRatio        *float64

	skipCoverage *bool
	threads      *int

	// External engine binaries.
	intervalsBin *string
	realignBin   *string
	coverageBin  *string
	mergeBin     *string
}

func newCmdRealign() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "realign",
		Short: "Run the eccDNA realignment pipeline",
		Long: `
Runs the full detection pipeline: candidate-interval calling, insert-size
estimation, realignment, coverage, and the final merge.  Stages with an
existing artifact in the working directory are skipped, so a failed run can
be restarted against the same -dir and resumes where it stopped.`,
	}
	f := realignFlags{
		sortedBAM: cmd.Flags.String("sbam", "", "Coordinate-sorted input BAM (required)"),
		queryBAM:  cmd.Flags.String("qbam", "", "Query-name-sorted candidate-read BAM (required)"),
		fasta:     cmd.Flags.String("fasta", "", "Reference genome FASTA (required)"),
		output:    cmd.Flags.String("output", "", "Final report output path (required)"),
		dir:       cmd.Flags.String("dir", "", "Working directory for stage artifacts. Defaults to ecc-tmp-<pid> under the current directory, which is removed after a fully successful run; a caller-supplied directory is never removed"),

		sampleSize: cmd.Flags.Int("sample-size", insertsize.DefaultSampleSize, "Number of read pairs sampled for insert-size estimation"),
		insertMapq: cmd.Flags.Int("insert-mapq", insertsize.DefaultMapqCutoff, "Minimum MAPQ of both mates of a pair sampled for insert-size estimation"),

		stdMultiplier: cmd.Flags.Float64("std-multiplier", 4, "Standard-deviation multiplier bounding the realignment search region"),
		realignMapq:   cmd.Flags.Int("mapq", 20, "Minimum MAPQ for a read to seed realignment"),
		intervalProb:  cmd.Flags.Float64("interval-probability", 0.01, "Minimum probability for a candidate interval to be realigned against"),
		editFraction:  cmd.Flags.Float64("edit-distance-fraction", 0.05, "Maximum edit distance of a realignment, as a fraction of read length"),
		minSoftClip:   cmd.Flags.Int("min-softclip", 8, "Minimum soft-clip length for a read to be realigned"),
		maxAlignments: cmd.Flags.Int("max-alignments", 10, "Maximum number of candidate alignments considered per read"),
		gapOpen:       cmd.Flags.Int("gap-open", 5, "Gap-open penalty of the realignment scoring"),
		gapExtend:     cmd.Flags.Int("gap-extend", 1, "Gap-extend penalty of the realignment scoring"),
		probCutoff:    cmd.Flags.Float64("prob-cutoff", 0.99, "Minimum posterior probability for a realignment to be reported"),

		alleleFrequency: cmd.Flags.Float64("af", 0.1, "Minimum circle allele frequency reported by the merge"),
		discordants:     cmd.Flags.Int("discordants", 3, "Minimum discordant read count reported by the merge"),
		splitReads:      cmd.Flags.Int("split-reads", 0, "Minimum split read count reported by the merge"),
		splitQuality:    cmd.Flags.Int("split-quality", 0, "Minimum split-read mapping quality considered by the merge"),
		mergeFraction:   cmd.Flags.Float64("merge-fraction", 0.99, "Reciprocal overlap fraction at which the merge unions two circles"),
		extension:       cmd.Flags.Int("extension", 100, "Bases the merge extends a circle breakpoint by when recovering coverage"),
		bases:           cmd.Flags.Int("bases", 200, "Bases at each circle edge over which the merge computes coverage statistics"),
		covRatio:        cmd.Flags.Float64("cov-ratio", 0.0, "Minimum inside/outside coverage ratio reported by the merge"),

		skipCoverage: cmd.Flags.Bool("no-coverage", false, "Skip the coverage stage; the merge then reports without coverage columns"),
		threads:      cmd.Flags.Int("threads", runtime.NumCPU(), "Thread count passed through to the engines"),

		intervalsBin: cmd.Flags.String("intervals-bin", "ecc-intervals", "Interval-calling engine binary"),
		realignBin:   cmd.Flags.String("realign-bin", "ecc-realign", "Realignment engine binary"),
		coverageBin:  cmd.Flags.String("coverage-bin", "ecc-coverage", "Coverage engine binary"),
		mergeBin:     cmd.Flags.String("merge-bin", "ecc-merge", "Merge engine binary"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("realign takes no positional arguments, got %v", argv)
		}
		return realign(&f)
	})
	return cmd
}

// realign validates flags, opens the working directory session, and hands
// the stage list to the controller.  Flag validation happens before the
// session opens, so an argument error never leaves a directory behind.
func realign(f *realignFlags) error {
	for _, req := range []struct{ flag, value string }{
		{"-sbam", *f.sortedBAM},
		{"-qbam", *f.queryBAM},
		{"-fasta", *f.fasta},
		{"-output", *f.output},
	} {
		if req.value == "" {
			return fmt.Errorf("missing required flag %s", req.flag)
		}
	}
	workdir, err := pipeline.OpenWorkdir(*f.dir)
	if err != nil {
		return err
	}
	controller := &pipeline.Controller{Workdir: workdir}
	_, err = controller.Run(vcontext.Background(), realignStages(f, workdir))
	return err
}

// realignStages builds the fixed stage sequence.  The insert-size result is
// held only in the est variable the stage closures share; it is never
// written to disk.
func realignStages(f *realignFlags, workdir *pipeline.Workdir) []pipeline.Stage {
	var (
		peaks      = workdir.Join(peaksFile)
		realignTmp = workdir.Join(realignTmpFile)
		coverage   = workdir.Join(coverageFile)
		est        insertsize.Stats
	)
	stages := []pipeline.Stage{
		{
			Name:     "candidate-intervals",
			Artifact: peaks,
			Run: func(ctx context.Context) error {
				cmd := &pipeline.Command{Path: *f.intervalsBin, Args: intervalArgs(f, peaks)}
				if err := cmd.Run(ctx); err != nil {
					return err
				}
				logIntervalSummary(peaks)
				return nil
			},
		},
		{
			Name: "insert-size-estimate",
			Run: func(ctx context.Context) error {
				src, err := insertsize.NewBAMSource(ctx, *f.queryBAM)
				if err != nil {
					return err
				}
				stats, err := insertsize.Estimate(src, *f.sampleSize, *f.insertMapq)
				if cerr := src.Close(); cerr != nil && err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				est = stats
				log.Printf("insert size: mean %.2f std %.2f over %d pairs", est.Mean, est.Std, est.Count)
				return nil
			},
		},
		{
			Name:     "realign",
			Artifact: realignTmp,
			Run: func(ctx context.Context) error {
				cmd := &pipeline.Command{Path: *f.realignBin, Args: realignArgs(f, peaks, realignTmp, est)}
				return cmd.Run(ctx)
			},
		},
	}
	if !*f.skipCoverage {
		stages = append(stages, pipeline.Stage{
			Name:     "coverage",
			Artifact: coverage,
			Run: func(ctx context.Context) error {
				cmd := &pipeline.Command{Path: *f.coverageBin, Args: coverageArgs(f, coverage)}
				return cmd.Run(ctx)
			},
		})
	}
	stages = append(stages, pipeline.Stage{
		Name: "merge",
		Run: func(ctx context.Context) error {
			cmd := &pipeline.Command{Path: *f.mergeBin, Args: mergeArgs(f, realignTmp, coverage)}
			return cmd.Run(ctx)
		},
	})
	return stages
}

func intervalArgs(f *realignFlags, peaks string) []string {
	return []string{
		"-i", *f.sortedBAM,
		"-fasta", *f.fasta,
		"-o", peaks,
		"-threads", strconv.Itoa(*f.threads),
	}
}

func realignArgs(f *realignFlags, peaks, out string, est insertsize.Stats) []string {
	return []string{
		"-i", *f.queryBAM,
		"-bed", peaks,
		"-fasta", *f.fasta,
		"-o", out,
		"-mean", ftoa(est.Mean),
		"-std", ftoa(est.Std),
		"-std-multiplier", ftoa(*f.stdMultiplier),
		"-mapq", strconv.Itoa(*f.realignMapq),
		"-interval-probability", ftoa(*f.intervalProb),
		"-edit-distance-fraction", ftoa(*f.editFraction),
		"-min-softclip", strconv.Itoa(*f.minSoftClip),
		"-max-alignments", strconv.Itoa(*f.maxAlignments),
		"-gap-open", strconv.Itoa(*f.gapOpen),
		"-gap-extend", strconv.Itoa(*f.gapExtend),
		"-prob-cutoff", ftoa(*f.probCutoff),
		"-threads", strconv.Itoa(*f.threads),
	}
}

func coverageArgs(f *realignFlags, out string) []string {
	return []string{
		"-i", *f.sortedBAM,
		"-o", out,
		"-threads", strconv.Itoa(*f.threads),
	}
}

func mergeArgs(f *realignFlags, realignTmp, coverage string) []string {
	args := []string{
		"-i", realignTmp,
		"-fasta", *f.fasta,
		"-o", *f.output,
		"-af", ftoa(*f.alleleFrequency),
		"-discordants", strconv.Itoa(*f.discordants),
		"-split-reads", strconv.Itoa(*f.splitReads),
		"-split-quality", strconv.Itoa(*f.splitQuality),
		"-merge-fraction", ftoa(*f.mergeFraction),
		"-extension", strconv.Itoa(*f.extension),
		"-bases", strconv.Itoa(*f.bases),
		"-cov-ratio", ftoa(*f.covRatio),
	}
	if *f.skipCoverage {
		return append(args, "-no-coverage")
	}
	return append(args, "-coverage", coverage)
}

// logIntervalSummary reports the size of the candidate set.  Best effort: a
// peaks file the summary cannot parse is still a valid checkpoint.
func logIntervalSummary(peaks string) {
	entries, err := interval.ReadBED(peaks)
	if err != nil {
		log.Printf("candidate intervals: cannot summarize %s: %v", peaks, err)
		return
	}
	s := interval.Summarize(entries)
	log.Printf("candidate intervals: %d raw, %d merged spanning %d bases", s.N, s.Merged, s.Bases)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
