// 22 Mar 2025

// Package csvio reads and writes the csv files around a batch run.
// The column names are the ones the transcription factor pair lists
// arrive with, so files move between this program and the original
// pipeline without renaming anything. Input files may be gzipped.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/jgbaldwinbrown/csvh"

	"github.com/andrew-torda/seqident/pkg/pairs"
)

// The columns we know about.
const (
	ColNameA = "hTF1"
	ColNameB = "hTF2"
	ColSeqA  = "Sequence_hTF1"
	ColSeqB  = "Sequence_hTF2"
	ColSim   = "similarity"
	ColPcnt  = "Similarity_PercentIdentity"
	ColSimO  = "Similarity" // the pass-through column on output
)

// Cols says which optional columns the input actually had.
type Cols struct {
	HasSeqs bool
	HasSim  bool
}

// header maps column names to their position.
func header(rec []string) map[string]int {
	m := make(map[string]int, len(rec))
	for i, c := range rec {
		m[c] = i
	}
	return m
}

// parseSim is forgiving. An empty or broken similarity field becomes
// NaN rather than killing the run, since we never compute with it.
func parseSim(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ReadPairs reads a pair list. The name columns must be there. The
// sequence and similarity columns are taken if present. fname may be
// "" or "-" for stdin, and a .gz file works too.
func ReadPairs(fname string) ([]pairs.Pair, Cols, error) {
	var cols Cols
	var rdr io.ReadCloser
	if fname == "" || fname == "-" {
		rdr = os.Stdin
	} else {
		var err error
		if rdr, err = csvh.OpenMaybeGz(fname); err != nil {
			return nil, cols, err
		}
	}
	defer rdr.Close()

	cr := csv.NewReader(rdr)
	first, err := cr.Read()
	if err != nil {
		return nil, cols, fmt.Errorf("reading header of %s: %w", fname, err)
	}
	h := header(first)
	ia, aok := h[ColNameA]
	ib, bok := h[ColNameB]
	if !aok || !bok {
		return nil, cols, fmt.Errorf("%s: need columns %q and %q, got %v",
			fname, ColNameA, ColNameB, first)
	}
	isa, saok := h[ColSeqA]
	isb, sbok := h[ColSeqB]
	cols.HasSeqs = saok && sbok
	isim, simok := h[ColSim]
	cols.HasSim = simok

	var recs []pairs.Pair
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cols, fmt.Errorf("reading %s: %w", fname, err)
		}
		p := pairs.Pair{NameA: row[ia], NameB: row[ib], Similarity: math.NaN()}
		if cols.HasSeqs {
			p.SeqA, p.SeqB = row[isa], row[isb]
		}
		if cols.HasSim {
			p.Similarity = parseSim(row[isim])
		}
		recs = append(recs, p)
	}
	return recs, cols, nil
}

// openOut gives a writer for a name, with "" or "-" meaning stdout.
func openOut(fname string) (io.WriteCloser, error) {
	if fname == "" || fname == "-" {
		return os.Stdout, nil
	}
	return os.Create(fname)
}

// fmtFloat writes NaN literally. Leaving the field empty would be
// ambiguous. NaN in the identity column is a documented answer.
func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteSeqs writes the pair list with its sequences filled in, in
// the layout the similarity step expects to read back.
func WriteSeqs(fname string, recs []pairs.Pair) error {
	fp, err := openOut(fname)
	if err != nil {
		return err
	}
	if fp != os.Stdout {
		defer fp.Close()
	}
	cw := csv.NewWriter(fp)
	if err := cw.Write([]string{ColNameA, ColSeqA, ColNameB, ColSeqB, ColSim}); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{r.NameA, r.SeqA, r.NameB, r.SeqB, fmtFloat(r.Similarity)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResults writes the final table, one row per input pair, same
// order.
func WriteResults(fname string, res []pairs.Result) error {
	fp, err := openOut(fname)
	if err != nil {
		return err
	}
	if fp != os.Stdout {
		defer fp.Close()
	}
	cw := csv.NewWriter(fp)
	hdr := []string{ColNameA, ColNameB, ColSeqA, ColSeqB, ColPcnt, ColSimO}
	if err := cw.Write(hdr); err != nil {
		return err
	}
	for _, r := range res {
		row := []string{r.NameA, r.NameB, r.SeqA, r.SeqB,
			fmtFloat(r.PctIdent), fmtFloat(r.Similarity)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadResults reads back a results file, mainly for the histogram
// tool. Rows whose identity field does not parse come back as NaN.
func ReadResults(fname string) ([]pairs.Result, error) {
	var rdr io.ReadCloser
	if fname == "" || fname == "-" {
		rdr = os.Stdin
	} else {
		var err error
		if rdr, err = csvh.OpenMaybeGz(fname); err != nil {
			return nil, err
		}
	}
	defer rdr.Close()

	cr := csv.NewReader(rdr)
	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", fname, err)
	}
	h := header(first)
	ipc, ok := h[ColPcnt]
	if !ok {
		return nil, fmt.Errorf("%s: no %q column", fname, ColPcnt)
	}
	ia, aok := h[ColNameA]
	ib, bok := h[ColNameB]
	var res []pairs.Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fname, err)
		}
		r := pairs.Result{PctIdent: parseSim(row[ipc])}
		if aok {
			r.NameA = row[ia]
		}
		if bok {
			r.NameB = row[ib]
		}
		res = append(res, r)
	}
	return res, nil
}
