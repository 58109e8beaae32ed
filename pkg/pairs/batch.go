// The parallel part. Records are independent, so this is a plain
// fan-out over worker goroutines. Each job carries its index and the
// workers write into a slice sized beforehand, so nothing needs a
// lock and the output order is the input order whatever the order of
// completion.

package pairs

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/andrew-torda/seqident/pkg/align"
	"github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/submat"
)

// Opt collects the knobs for a batch run.
type Opt struct {
	NWorkers int    // goroutines doing alignments, 1 if < 1
	Progress func() // called after each record; must be safe to call concurrently
	Quiet    bool   // no per-record complaints on stderr
}

// A record with no name in either column means the input is
// structurally broken, so we refuse the whole batch before doing any
// work. Everything after this point is per-record and non-fatal.
func checkRecs(recs []Pair) error {
	for i, r := range recs {
		if r.NameA == "" || r.NameB == "" {
			return fmt.Errorf("record %d: missing protein identifier", i)
		}
	}
	return nil
}

// one computes the result for a single record. The kernel is pure,
// but if it panics on some pathological input, we eat the panic here
// and hand back NaN rather than losing the batch.
func one(rec Pair, al *align.Aligner, quiet bool) (res Result) {
	res = Result{Pair: rec, PctIdent: math.NaN()}
	defer func() {
		if r := recover(); r != nil {
			if !quiet {
				fmt.Fprintln(os.Stderr, "alignment of", rec.NameA, rec.NameB, "failed:", r)
			}
			res.PctIdent = math.NaN()
		}
	}()

	if rec.SeqA == common.NotFound || rec.SeqB == common.NotFound {
		return res
	}
	if rec.SeqA == "" || rec.SeqB == "" {
		return res
	}
	st, err := al.Stats([]byte(rec.SeqA), []byte(rec.SeqB))
	if err != nil {
		if !quiet {
			fmt.Fprintln(os.Stderr, "alignment of", rec.NameA, rec.NameB, "failed:", err)
		}
		return res
	}
	res.PctIdent = st.PctIdent()
	return res
}

// RunBatch computes percent identity for every record. The output
// has exactly one result per input record, in input order. Per
// record failures become NaN and never stop the batch. A cancelled
// context stops the dispatch of new records, lets running ones
// finish, and returns ctx.Err() along with whatever was computed.
//
// The substitution matrix and penalties are shared read-only; each
// worker owns its aligner and its workspace. One worker gives the
// same bytes as many, since records do not see each other.
func RunBatch(ctx context.Context, recs []Pair, sm *submat.Submat,
	pnlty align.Pnlty, opt *Opt) ([]Result, error) {
	if opt == nil {
		opt = &Opt{}
	}
	nw := opt.NWorkers
	if nw < 1 {
		nw = 1
	}
	if err := checkRecs(recs); err != nil {
		return nil, err
	}

	results := make([]Result, len(recs))
	for i := range recs { // so a cancelled run still returns
		results[i] = Result{Pair: recs[i], PctIdent: math.NaN()}
	}
	jobs := make(chan int)
	done := make(chan struct{}, nw)

	for w := 0; w < nw; w++ {
		go func() {
			al := align.New(sm, pnlty)
			for ndx := range jobs {
				results[ndx] = one(recs[ndx], al, opt.Quiet)
				if opt.Progress != nil {
					opt.Progress()
				}
			}
			done <- struct{}{}
		}()
	}

feed:
	for i := range recs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	for w := 0; w < nw; w++ {
		<-done
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
