// 26 Mar 2025

// Draw a histogram of the percent identity column of a results csv.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/identhist"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] -i results.csv -o hist.png")
	flag.PrintDefaults()
	return ExitUsageError
}

// main
func main() {
	var flags identhist.CmdFlag
	var infile, outfile string
	flag.StringVar(&infile, "i", "", "results csv, default stdin")
	flag.StringVar(&outfile, "o", "hist.png", "output png file")
	flag.IntVar(&flags.NBins, "b", 20, "number of bins")
	flag.IntVar(&flags.Width, "w", 640, "image width in pixels")
	flag.IntVar(&flags.Height, "h", 420, "image height in pixels")
	flag.StringVar(&flags.Title, "t", "", "plot title")

	flag.Parse()
	if flag.NArg() != 0 || outfile == "" {
		os.Exit(usage())
	}

	if err := identhist.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
