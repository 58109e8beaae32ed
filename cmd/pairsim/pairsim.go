// 25 Mar 2025

// Compute the percent identity of protein pairs by global alignment.
// The input csv must already have the sequences in it. fetchseqs
// puts them there.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/seqident/pkg/align"
	. "github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/pairsim"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] -i in.csv -o out.csv")
	flag.PrintDefaults()
	return ExitUsageError
}

// main
func main() {
	var flags pairsim.CmdFlag
	var infile, outfile string
	flag.StringVar(&infile, "i", "", "input csv with pairs and sequences, default stdin")
	flag.StringVar(&outfile, "o", "", "output csv, default stdout")
	flag.StringVar(&flags.MatFile, "m", "", "substitution matrix file, default built-in blosum62")
	flag.IntVar(&flags.NWorkers, "p", 1, "number of parallel workers")
	flag.IntVar(&flags.Open, "open", align.DfltOpen, "gap opening penalty")
	flag.IntVar(&flags.Ext, "ext", align.DfltExt, "gap extension penalty")
	flag.BoolVar(&flags.Quiet, "q", false, "no progress bar or chatter")

	flag.Parse()
	if flag.NArg() != 0 {
		os.Exit(usage())
	}

	if err := pairsim.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
