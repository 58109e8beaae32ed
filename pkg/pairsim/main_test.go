package pairsim_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/seqident/pkg/common"
	"github.com/andrew-torda/seqident/pkg/csvio"
	"github.com/andrew-torda/seqident/pkg/pairsim"
)

const inCsv = `hTF1,Sequence_hTF1,hTF2,Sequence_hTF2,similarity
TP53,MKV,MYC,MKV,0.9
MYC,NOT_FOUND,MAX,MKV,0.1
MAX,MKV,TP53,MKA,0.5
`

func TestMymain(t *testing.T) {
	infile, err := common.WrtTemp(inCsv)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(infile)
	outfile := filepath.Join(t.TempDir(), "out.csv")

	flags := pairsim.CmdFlag{NWorkers: 2, Open: 10, Ext: 1, Quiet: true}
	if err := pairsim.Mymain(&flags, infile, outfile); err != nil {
		t.Fatal(err)
	}

	res, err := csvio.ReadResults(outfile)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatal("expected 3 rows, got", len(res))
	}
	if res[0].NameA != "TP53" || res[0].PctIdent != 100 {
		t.Fatal("first row wrong:", res[0])
	}
	if !math.IsNaN(res[1].PctIdent) {
		t.Fatal("NOT_FOUND row should give NaN, got", res[1].PctIdent)
	}
	if math.Abs(res[2].PctIdent-200.0/3.0) > 1e-9 {
		t.Fatal("third row wrong:", res[2].PctIdent)
	}
}

func TestMymainNoSeqs(t *testing.T) {
	infile, err := common.WrtTemp("hTF1,hTF2\nTP53,MYC\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(infile)
	flags := pairsim.CmdFlag{NWorkers: 1, Open: 10, Ext: 1, Quiet: true}
	err = pairsim.Mymain(&flags, infile, filepath.Join(t.TempDir(), "out.csv"))
	if err == nil {
		t.Fatal("a file without sequences should be refused")
	}
}

func TestMymainBadMatrix(t *testing.T) {
	infile, err := common.WrtTemp(inCsv)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(infile)
	flags := pairsim.CmdFlag{MatFile: "/no/such/matrix", Quiet: true}
	if err := pairsim.Mymain(&flags, infile, "out.csv"); err == nil {
		t.Fatal("a missing matrix file should be an error")
	}
}
