// 25 Mar 2025

// Package fetchseqs is the guts of the fetchseqs command. It takes a
// csv of protein pairs, collects the distinct names, looks every
// name up once, either at uniprot or in a local fasta file, and
// writes the csv back out with the sequences filled in. Names that
// cannot be resolved get the NOT_FOUND marker, so the next step
// knows to skip them.
package fetchseqs

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/csvio"
	"github.com/andrew-torda/seqident/pkg/fastadb"
	"github.com/andrew-torda/seqident/pkg/pairs"
	"github.com/andrew-torda/seqident/pkg/uniprot"
)

// CmdFlag is literally command line flags after parsing.
type CmdFlag struct {
	FastaFile string        // local fasta database; "" means ask uniprot
	BaseURL   string        // uniprot server, mainly for testing
	Delay     time.Duration // pause between uniprot requests
	Quiet     bool
}

// fromUniprot builds the name to sequence map over the network.
func fromUniprot(ctx context.Context, flags *CmdFlag, names []string) (uniprot.Map, error) {
	c := uniprot.New()
	if flags.BaseURL != "" {
		c.BaseURL = flags.BaseURL
	}
	if flags.Delay > 0 {
		c.Delay = flags.Delay
	}

	var progress func()
	var pbar *mpb.Progress
	if !flags.Quiet {
		pbar = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar := pbar.AddBar(int64(len(names)),
			mpb.PrependDecorators(
				decor.Name("fetching: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
		progress = bar.Increment
	}
	m, err := c.FetchMap(ctx, names, progress)
	if pbar != nil && err == nil {
		pbar.Wait()
	}
	return m, err
}

// Mymain does the work and leaves exit codes to the caller.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	recs, _, err := csvio.ReadPairs(infile)
	if err != nil {
		return err
	}
	names := pairs.Names(recs)
	if !flags.Quiet {
		fmt.Fprintln(os.Stderr, humanize.Comma(int64(len(recs))), "pairs,",
			humanize.Comma(int64(len(names))), "distinct names")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var prov pairs.Provider
	if flags.FastaFile != "" {
		db, err := fastadb.Open(flags.FastaFile)
		if err != nil {
			return err
		}
		defer db.Close()
		prov = db
	} else {
		m, err := fromUniprot(ctx, flags, names)
		if err != nil {
			return err
		}
		prov = m
	}

	pairs.Attach(recs, prov)

	nMiss := 0
	for _, r := range recs {
		if r.SeqA == common.NotFound || r.SeqB == common.NotFound {
			nMiss++
		}
	}
	if nMiss > 0 && !flags.Quiet {
		fmt.Fprintln(os.Stderr, nMiss, "pairs have at least one missing sequence")
	}
	return csvio.WriteSeqs(outfile, recs)
}
