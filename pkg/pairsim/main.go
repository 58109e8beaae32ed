// 25 Mar 2025

// Package pairsim is the guts of the pairsim command. Read a csv of
// protein pairs with sequences, align every pair, write the csv back
// out with the percent identity column added.
package pairsim

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/andrew-torda/seqident/pkg/align"
	"github.com/andrew-torda/seqident/pkg/csvio"
	"github.com/andrew-torda/seqident/pkg/pairs"
	"github.com/andrew-torda/seqident/pkg/submat"
)

// CmdFlag is literally command line flags after parsing.
type CmdFlag struct {
	MatFile  string // substitution matrix file, "" means built-in blosum62
	NWorkers int    // parallel alignment workers
	Open     int    // gap opening penalty
	Ext      int    // gap extension penalty
	Quiet    bool   // no progress bar, no chatter
}

// getMatrix picks the scoring matrix.
func getMatrix(fname string) (*submat.Submat, error) {
	if fname == "" {
		return submat.Blosum62(), nil
	}
	return submat.ReadFile(fname)
}

// Mymain does the work and leaves exit codes to the caller.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	sm, err := getMatrix(flags.MatFile)
	if err != nil {
		return err
	}
	recs, cols, err := csvio.ReadPairs(infile)
	if err != nil {
		return err
	}
	if !cols.HasSeqs {
		return fmt.Errorf("%s has no sequence columns. Run fetchseqs on it first", infile)
	}
	if !flags.Quiet {
		fmt.Fprintln(os.Stderr, "aligning", humanize.Comma(int64(len(recs))), "pairs on",
			flags.NWorkers, "workers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opt := &pairs.Opt{NWorkers: flags.NWorkers, Quiet: flags.Quiet}
	var pbar *mpb.Progress
	if !flags.Quiet {
		pbar = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar := pbar.AddBar(int64(len(recs)),
			mpb.PrependDecorators(
				decor.Name("aligning: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
		opt.Progress = bar.Increment
	}

	res, err := pairs.RunBatch(ctx, recs, sm,
		align.Pnlty{Open: flags.Open, Ext: flags.Ext}, opt)
	if pbar != nil && err == nil {
		pbar.Wait()
	}
	if err != nil {
		return err
	}

	if err := csvio.WriteResults(outfile, res); err != nil {
		return err
	}
	if !flags.Quiet {
		fmt.Fprintln(os.Stderr, "wrote", humanize.Comma(int64(len(res))), "records to", outfile)
	}
	return nil
}
