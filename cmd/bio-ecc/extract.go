package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/ecc/pipeline"
	"v.io/x/lib/cmdline"
)

type extractFlags struct {
	input       *string
	output      *string
	mapq        *int
	minSoftClip *int
	threads     *int
	extractBin  *string
}

func newCmdExtract() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "extract",
		Short: "Extract candidate eccDNA reads from a name-sorted BAM",
		Long: `
Drives only the read-classification engine, which writes discordant and
clipped reads to a candidate BAM suitable as the -qbam input of realign.
No working directory or checkpointing is involved.`,
	}
	f := extractFlags{
		input:       cmd.Flags.String("i", "", "Query-name-sorted input BAM (required)"),
		output:      cmd.Flags.String("o", "", "Candidate-read output BAM (required)"),
		mapq:        cmd.Flags.Int("mapq", 10, "Minimum MAPQ for a read to be classified"),
		minSoftClip: cmd.Flags.Int("min-softclip", 8, "Minimum soft-clip length for a read to be extracted"),
		threads:     cmd.Flags.Int("threads", runtime.NumCPU(), "Thread count passed through to the engine"),
		extractBin:  cmd.Flags.String("extract-bin", "ecc-extract", "Read-classification engine binary"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("extract takes no positional arguments, got %v", argv)
		}
		return extract(&f)
	})
	return cmd
}

func extract(f *extractFlags) error {
	if *f.input == "" || *f.output == "" {
		return fmt.Errorf("extract requires both -i and -o")
	}
	cmd := &pipeline.Command{Path: *f.extractBin, Args: extractArgs(f)}
	return cmd.Run(vcontext.Background())
}

func extractArgs(f *extractFlags) []string {
	return []string{
		"-i", *f.input,
		"-o", *f.output,
		"-mapq", strconv.Itoa(*f.mapq),
		"-min-softclip", strconv.Itoa(*f.minSoftClip),
		"-threads", strconv.Itoa(*f.threads),
	}
}
