// 26 Mar 2025

// Package identhist is the guts of the identhist command. Read a
// results csv, pull out the identity column, draw the histogram.
package identhist

import (
	"os"

	"github.com/andrew-torda/seqident/pkg/csvio"
	"github.com/andrew-torda/seqident/pkg/hist"
)

// CmdFlag is literally command line flags after parsing.
type CmdFlag struct {
	NBins  int
	Width  int
	Height int
	Title  string
}

// Mymain reads infile and writes the png to outfile.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	res, err := csvio.ReadResults(infile)
	if err != nil {
		return err
	}
	idents := make([]float64, len(res))
	for i, r := range res {
		idents[i] = r.PctIdent
	}

	fp, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer fp.Close()
	opt := &hist.Opt{
		NBins: flags.NBins, Width: flags.Width, Height: flags.Height,
		Title: flags.Title,
	}
	return hist.Plot(fp, idents, opt)
}
