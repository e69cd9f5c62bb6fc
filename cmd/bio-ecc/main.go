package main

import (
	"log"

	"v.io/x/lib/cmdline"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-ecc",
			Short:    "Detect circular DNA evidence from sequencing alignments",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdRealign(),
				newCmdExtract(),
			},
		})
}
