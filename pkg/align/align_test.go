package align_test

import (
	"math"
	"strings"
	"testing"

	"github.com/andrew-torda/seqident/pkg/align"
	"github.com/andrew-torda/seqident/pkg/submat"
)

// A matrix where a match is worth 1 and a mismatch -1 makes the gap
// arithmetic easy to do on paper.
const matchMat = `   A  C  G  T
A  1 -1 -1 -1
C -1  1 -1 -1
G -1 -1  1 -1
T -1 -1 -1  1`

func matchSubmat(t *testing.T) *submat.Submat {
	t.Helper()
	sm, err := submat.Read(strings.NewReader(matchMat))
	if err != nil {
		t.Fatal(err)
	}
	return sm
}

func TestIdenticalSeqs(t *testing.T) {
	al := align.New(submat.Blosum62(), align.Pnlty{Open: align.DfltOpen, Ext: align.DfltExt})
	st, err := al.Stats([]byte("MKV"), []byte("MKV"))
	if err != nil {
		t.Fatal(err)
	}
	want := align.Stats{Score: 14, Len: 3, Matches: 3, Gaps: 0}
	if st != want {
		t.Fatal("MKV vs MKV got", st, "want", want)
	}
	if st.PctIdent() != 100 {
		t.Fatal("identical sequences should be 100 %, got", st.PctIdent())
	}
}

func TestOneMismatch(t *testing.T) {
	al := align.New(submat.Blosum62(), align.Pnlty{Open: align.DfltOpen, Ext: align.DfltExt})
	st, err := al.Stats([]byte("MKV"), []byte("MKA"))
	if err != nil {
		t.Fatal(err)
	}
	if st.Score != 10 || st.Len != 3 || st.Matches != 2 {
		t.Fatal("MKV vs MKA got", st)
	}
	pct := st.PctIdent()
	if math.Abs(pct-200.0/3.0) > 1e-9 {
		t.Fatal("expected 66.67 %, got", pct)
	}
}

func TestGaps(t *testing.T) {
	al := align.New(matchSubmat(t), align.Pnlty{Open: 5, Ext: 1})
	var gapcases = []struct {
		s, t string
		want align.Stats
	}{
		{"ACGT", "AGT", align.Stats{Score: -2, Len: 4, Matches: 3, Gaps: 1}},
		{"ACGTACGT", "ACGT", align.Stats{Score: -4, Len: 8, Matches: 4, Gaps: 4}},
	}
	for _, x := range gapcases {
		st, err := al.Stats([]byte(x.s), []byte(x.t))
		if err != nil {
			t.Fatal(err)
		}
		if st != x.want {
			t.Fatal(x.s, "vs", x.t, "got", st, "want", x.want)
		}
	}
}

// A gap of k columns must cost Open + (k-1) * Ext, not k * Ext, so a
// repeated sequence against a single copy keeps one long gap.
func TestAffineGapRun(t *testing.T) {
	al := align.New(submat.Blosum62(), align.Pnlty{Open: 10, Ext: 1})
	st, err := al.Stats([]byte("MKVMKV"), []byte("MKV"))
	if err != nil {
		t.Fatal(err)
	}
	want := align.Stats{Score: 2, Len: 6, Matches: 3, Gaps: 3}
	if st != want {
		t.Fatal("MKVMKV vs MKV got", st, "want", want)
	}
	if st.PctIdent() != 50 {
		t.Fatal("expected 50 %, got", st.PctIdent())
	}
}

func TestScoreSymmetric(t *testing.T) {
	al := align.New(submat.Blosum62(), align.Pnlty{Open: align.DfltOpen, Ext: align.DfltExt})
	seqs := []string{"MKVLWAALLVTFLAGCQA", "MKV", "ACDEFGHIKLMNPQRSTVWY", "WWWW"}
	for i := range seqs {
		for j := i + 1; j < len(seqs); j++ {
			a, err := al.Stats([]byte(seqs[i]), []byte(seqs[j]))
			if err != nil {
				t.Fatal(err)
			}
			b, err := al.Stats([]byte(seqs[j]), []byte(seqs[i]))
			if err != nil {
				t.Fatal(err)
			}
			// Len and Matches may differ between co-optimal
			// alignments of the swapped pair. The score may not.
			if a.Score != b.Score {
				t.Fatal("asymmetry aligning", seqs[i], "and", seqs[j], a, b)
			}
		}
	}
}

func TestEmptySeq(t *testing.T) {
	al := align.New(submat.Blosum62(), align.Pnlty{Open: align.DfltOpen, Ext: align.DfltExt})
	if _, err := al.Stats(nil, []byte("MKV")); err == nil {
		t.Fatal("expected an error from an empty first sequence")
	}
	if _, err := al.Stats([]byte("MKV"), []byte("")); err == nil {
		t.Fatal("expected an error from an empty second sequence")
	}
}

// The same aligner has to give the same answers when its buffers have
// been stretched and shrunk by earlier calls.
func TestAlignerReuse(t *testing.T) {
	al := align.New(submat.Blosum62(), align.Pnlty{Open: align.DfltOpen, Ext: align.DfltExt})
	first, err := al.Stats([]byte("MKV"), []byte("MKV"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err = al.Stats([]byte("ACDEFGHIKLMNPQRSTVWYACDEFGHIKLMNPQRSTVWY"),
		[]byte("ACDEFGHIKLMNPQRSTVWY")); err != nil {
		t.Fatal(err)
	}
	again, err := al.Stats([]byte("MKV"), []byte("MKV"))
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Fatal("aligner not re-usable: first", first, "again", again)
	}
}

func TestPctIdentEmpty(t *testing.T) {
	var st align.Stats
	if !math.IsNaN(st.PctIdent()) {
		t.Fatal("zero columns should give NaN, got", st.PctIdent())
	}
}
