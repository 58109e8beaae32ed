package csvio_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/csvio"
	"github.com/andrew-torda/seqident/pkg/pairs"
)

const pairsNoSeqs = `hTF1,hTF2,similarity
TP53,MYC,0.42
MYC,MAX,
`

const pairsWithSeqs = `hTF1,Sequence_hTF1,hTF2,Sequence_hTF2,similarity
TP53,MKV,MYC,MKA,0.42
`

func rdTest(t *testing.T, s string) ([]pairs.Pair, csvio.Cols) {
	t.Helper()
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(fname) })
	recs, cols, err := csvio.ReadPairs(fname)
	if err != nil {
		t.Fatal(err)
	}
	return recs, cols
}

func TestReadPairs(t *testing.T) {
	recs, cols := rdTest(t, pairsNoSeqs)
	if cols.HasSeqs || !cols.HasSim {
		t.Fatal("column detection wrong:", cols)
	}
	if len(recs) != 2 {
		t.Fatal("expected 2 records, got", len(recs))
	}
	if recs[0].NameA != "TP53" || recs[0].NameB != "MYC" || recs[0].Similarity != 0.42 {
		t.Fatal("first record mangled:", recs[0])
	}
	if !math.IsNaN(recs[1].Similarity) { // empty field
		t.Fatal("empty similarity should be NaN, got", recs[1].Similarity)
	}
}

func TestReadPairsSeqs(t *testing.T) {
	recs, cols := rdTest(t, pairsWithSeqs)
	if !cols.HasSeqs {
		t.Fatal("sequence columns not seen")
	}
	if recs[0].SeqA != "MKV" || recs[0].SeqB != "MKA" {
		t.Fatal("sequences mangled:", recs[0])
	}
}

func TestReadPairsBadHeader(t *testing.T) {
	fname, err := common.WrtTemp("wrong,columns\na,b\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	if _, _, err := csvio.ReadPairs(fname); err == nil {
		t.Fatal("expected an error when the name columns are missing")
	}
}

func TestRoundTrip(t *testing.T) {
	res := []pairs.Result{
		{Pair: pairs.Pair{NameA: "TP53", NameB: "MYC", SeqA: "MKV", SeqB: "MKA",
			Similarity: 0.42}, PctIdent: 200.0 / 3.0},
		{Pair: pairs.Pair{NameA: "MYC", NameB: "MAX", SeqA: common.NotFound,
			SeqB: "MKV", Similarity: math.NaN()}, PctIdent: math.NaN()},
	}
	fname := filepath.Join(t.TempDir(), "out.csv")
	if err := csvio.WriteResults(fname, res); err != nil {
		t.Fatal(err)
	}
	back, err := csvio.ReadResults(fname)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 {
		t.Fatal("expected 2 rows back, got", len(back))
	}
	if back[0].NameA != "TP53" || math.Abs(back[0].PctIdent-200.0/3.0) > 1e-9 {
		t.Fatal("first row mangled:", back[0])
	}
	if !math.IsNaN(back[1].PctIdent) { // NaN must survive the file
		t.Fatal("NaN did not round trip:", back[1].PctIdent)
	}
}

func TestWriteSeqsReadBack(t *testing.T) {
	recs := []pairs.Pair{
		{NameA: "TP53", NameB: "MYC", SeqA: "MKV", SeqB: "MKA", Similarity: 0.42},
	}
	fname := filepath.Join(t.TempDir(), "seqs.csv")
	if err := csvio.WriteSeqs(fname, recs); err != nil {
		t.Fatal(err)
	}
	back, cols, err := csvio.ReadPairs(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !cols.HasSeqs || !cols.HasSim {
		t.Fatal("written file lost columns:", cols)
	}
	if back[0] != recs[0] {
		t.Fatal("record did not round trip:", back[0])
	}
}
