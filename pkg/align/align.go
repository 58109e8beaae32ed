// 16 Mar 2025

// Package align computes global (end to end) pairwise alignments of
// protein sequences with affine gap penalties, following Gotoh,
// O. J. Mol. Biol. (1982) 162, 705-708. We do not keep the aligned
// strings. What comes back is the optimal score and the statistics
// of the optimal path: number of columns and number of identities,
// which is what you need for percent identity.
//
// When several moves give the same score, we take the diagonal
// first, then the gap in the second sequence, then the gap in the
// first. That choice can change the identity count between
// co-optimal alignments, so it is fixed here and not left to chance.
//
// An Aligner carries its temporary storage, so it can be re-used
// over many alignments and the storage goes away when the aligner
// does. One aligner must not be shared between goroutines.
package align

import (
	"errors"
	"math"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/seqident/pkg/submat"
)

// Pnlty has the gap opening and extension penalties. Both are
// positive. A gap of k columns costs Open + (k-1) * Ext.
type Pnlty struct {
	Open int
	Ext  int
}

// Default penalties, the values everybody uses with blosum62.
const (
	DfltOpen = 10
	DfltExt  = 1
)

// Stats is what an alignment gives us. Len counts every column of
// the alignment, gap columns included, so Len >= max(len(s), len(t)).
type Stats struct {
	Score   int // optimal global alignment score
	Len     int // columns in the alignment
	Matches int // columns with identical residues
	Gaps    int // columns with a gap in either sequence
}

// PctIdent is 100 * matches / columns, or NaN for an alignment with
// no columns. NaN is the documented could-not-be-computed marker,
// distinct from a real 0 %.
func (st Stats) PctIdent() float64 {
	if st.Len == 0 {
		return math.NaN()
	}
	return 100 * float64(st.Matches) / float64(st.Len)
}

// ErrEmptySeq is returned when either input sequence has no
// residues. Callers usually turn it into a NaN identity.
var ErrEmptySeq = errors.New("empty sequence")

// Aligner is the reusable workspace. hprev and hcur are rolled rows
// of best scores, p the rolled row of gap-in-t scores. dir keeps one
// packed byte per cell for the traceback.
type Aligner struct {
	sm    *submat.Submat
	pnlty Pnlty
	dir   matrix.BMatrix2d
	hprev []int
	hcur  []int
	p     []int
}

// Direction bytes. The low two bits say where the best score came
// from. The next two say whether the vertical / horizontal gap
// states were extended rather than opened.
const (
	fromDiag byte = iota // substitution
	fromP                // gap in t, consuming s
	fromQ                // gap in s, consuming t
	fromMask byte = 3
	pExtBit  byte = 1 << 2
	qExtBit  byte = 1 << 3
)

const negInf = math.MinInt32

// New gives an aligner for one scoring scheme. The substitution
// matrix is only read, never written, so many aligners can share it.
func New(sm *submat.Submat, pnlty Pnlty) *Aligner {
	return &Aligner{sm: sm, pnlty: pnlty}
}

// grow makes sure our rolled rows have at least n elements.
func (al *Aligner) grow(n int) {
	if cap(al.hprev) < n {
		al.hprev = make([]int, n)
		al.hcur = make([]int, n)
		al.p = make([]int, n)
	}
	al.hprev = al.hprev[:n]
	al.hcur = al.hcur[:n]
	al.p = al.p[:n]
}

// Stats aligns s and t end to end and accumulates the path
// statistics. It costs O(len(s) * len(t)) time and space. The space
// is owned by the aligner and recycled on the next call.
func (al *Aligner) Stats(s, t []byte) (Stats, error) {
	if len(s) == 0 || len(t) == 0 {
		return Stats{}, ErrEmptySeq
	}
	nrow, ncol := len(s)+1, len(t)+1
	open, ext := al.pnlty.Open, al.pnlty.Ext
	al.grow(ncol)
	al.dir.Resize(nrow, ncol)
	dir := al.dir.Mat

	hprev, hcur, p := al.hprev, al.hcur, al.p

	hprev[0] = 0
	dir[0][0] = 0
	for j := 1; j < ncol; j++ { // first row is all one gap in s
		hprev[j] = -open - (j-1)*ext
		p[j] = negInf
		d := fromQ
		if j > 1 {
			d |= qExtBit
		}
		dir[0][j] = d
	}

	for i := 1; i < nrow; i++ {
		hcur[0] = -open - (i-1)*ext
		d := fromP
		if i > 1 {
			d |= pExtBit
		}
		dir[i][0] = d
		q := negInf
		for j := 1; j < ncol; j++ {
			d = fromDiag

			pOpen, pExt := hprev[j]-open, p[j]-ext
			if pExt > pOpen { // on a tie we open, giving
				p[j] = pExt //   shorter gaps on traceback
				d |= pExtBit
			} else {
				p[j] = pOpen
			}

			qOpen, qExt := hcur[j-1]-open, q-ext
			if qExt > qOpen {
				q = qExt
				d |= qExtBit
			} else {
				q = qOpen
			}

			best := hprev[j-1] + al.sm.Score(s[i-1], t[j-1])
			if p[j] > best {
				best = p[j]
				d = d&^fromMask | fromP
			}
			if q > best {
				best = q
				d = d&^fromMask | fromQ
			}
			hcur[j] = best
			dir[i][j] = d
		}
		hprev, hcur = hcur, hprev
	}
	al.hprev, al.hcur = hprev, hcur // keep the swapped slices

	st := Stats{Score: hprev[ncol-1]}
	al.walkBack(s, t, &st)
	return st, nil
}

// walkBack follows the stored directions from the bottom right
// corner, counting columns, identities and gaps. We never build the
// aligned strings.
func (al *Aligner) walkBack(s, t []byte, st *Stats) {
	dir := al.dir.Mat
	i, j := len(s), len(t)
	state := fromDiag // meaning: currently in the H matrix
	for i > 0 || j > 0 {
		d := dir[i][j]
		switch state {
		case fromDiag:
			switch d & fromMask {
			case fromP:
				state = fromP
				continue
			case fromQ:
				state = fromQ
				continue
			}
			st.Len++
			if s[i-1] == t[j-1] {
				st.Matches++
			}
			i--
			j--
		case fromP: // column with a gap in t
			st.Len++
			st.Gaps++
			if d&pExtBit == 0 {
				state = fromDiag
			}
			i--
		case fromQ: // column with a gap in s
			st.Len++
			st.Gaps++
			if d&qExtBit == 0 {
				state = fromDiag
			}
			j--
		}
	}
}
