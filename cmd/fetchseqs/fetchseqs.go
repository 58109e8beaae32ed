// 25 Mar 2025

// Fill in the sequences for a csv of protein pairs, from uniprot or
// from a local fasta file. Missing names are marked NOT_FOUND, never
// dropped, so the pair list keeps its shape.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	. "github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/fetchseqs"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] -i pairs.csv -o with_seqs.csv")
	flag.PrintDefaults()
	return ExitUsageError
}

// main
func main() {
	var flags fetchseqs.CmdFlag
	var infile, outfile string
	flag.StringVar(&infile, "i", "", "input csv with pair names, default stdin")
	flag.StringVar(&outfile, "o", "", "output csv with sequences, default stdout")
	flag.StringVar(&flags.FastaFile, "fasta", "", "look names up in this fasta file instead of uniprot")
	flag.StringVar(&flags.BaseURL, "url", "", "alternative uniprot server")
	flag.DurationVar(&flags.Delay, "delay", 200*time.Millisecond, "pause between uniprot requests")
	flag.BoolVar(&flags.Quiet, "q", false, "no progress bar or chatter")

	flag.Parse()
	if flag.NArg() != 0 {
		os.Exit(usage())
	}

	if err := fetchseqs.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
