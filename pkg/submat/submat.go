// 15 Mar 2025
// Read and hold a protein substitution matrix.
// Scores are signed integers, as in the matrix files, not floats.
// A matrix is immutable once built, so one copy can be shared by
// any number of goroutines.

package submat

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Submat maps a pair of residue symbols to a score. cmap takes an
// ascii character to a row/column index. Symbols that do not occur
// in the matrix are scored through the wildcard entry.
type Submat struct {
	scores []int8 // n x n, row major
	cmap   [128]int8
	n      int
	wild   int8 // index used for symbols not in the alphabet
}

const notset int8 = -1

// String prints out a substitution matrix. Useful during debugging.
func (submat *Submat) String() (s string) {
	cmap := submat.cmap[:]
	s = "Mapping\n"
	n := 10
	for i := range cmap {
		if cmap[i] != notset {
			s = s + fmt.Sprintf("%4s%4d", string(rune(i)), cmap[i])
			n--
			if n == 0 {
				n = 10
				s = s + "\n"
			}
		}
	}
	s += "\nThe matrix\n"
	s += fmt.Sprintf("%4s", " ")
	for c := '*'; c <= 'Z'; c++ {
		if cmap[c] != notset {
			s += fmt.Sprintf("%4s", string(c))
		}
	}
	s += "\n"
	for c := '*'; c <= 'Z'; c++ {
		if cmap[c] == notset {
			continue
		}
		s += fmt.Sprintf("%4s", string(c))
		for d := '*'; d <= 'Z'; d++ {
			if cmap[d] != notset {
				s += fmt.Sprintf("%4d", submat.Score(byte(c), byte(d)))
			}
		}
		s += "\n"
	}
	return s
}

// CmmtScanner is a wrapper around bufio.Scanner that will ignore anything
// after a comment character and remove leading and trailing white space.
type CmmtScanner struct {
	bufio.Scanner
	cmmt byte // Comment character
}

// NewCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes leading spaces
//   - removes anything after a comment character
func NewCmmtScanner(r io.Reader, cmmt byte) *CmmtScanner {
	s := bufio.NewScanner(r)
	return &CmmtScanner{*s, cmmt}
}

// CBytes presents exactly the same interface as scanner.Bytes, but
// has to do a bit more work.
// Before returning, we remove anything after the comment symbol and
// strip leading and trailing white space.
// If this leaves us with an empty string, we call Scan again.
// Like the Bytes function, this works directly in the i/o buffer
// and does not allocate any memory. If you like the string it returns,
// you have to save it somewhere.
func (s *CmmtScanner) CBytes() []byte {
	ok := true
	for b := s.Bytes(); ok; ok, b = s.Scan(), s.Bytes() {
		for i := 0; i < len(b); i++ {
			if b[i] == s.cmmt {
				b = b[:i]
				break
			}
		}
		b = bytes.TrimSpace(b)
		if len(b) > 0 {
			return b
		}
	}
	return nil
}

// The first non-comment line of a substitution matrix file contains
// the list of allowed characters. Each field has to be one character
// long.
func alfbtLine(inline []byte, submat *Submat) (nAlfbt int, err error) {
	cmap := submat.cmap[:]
	for i := range submat.cmap {
		cmap[i] = notset
	}
	f := bytes.Fields(inline)
	nAlfbt = len(f)
	if nAlfbt == 0 {
		return 0, errors.New("alfbtLine: no alphabet line found")
	}
	for _, c := range f {
		if len(c) != 1 {
			return 0, errors.New("alfbtLine: expected a single character, got " + string(c))
		}
		if c[0] >= 128 {
			return 0, errors.New("alfbtLine: saw a non-ascii character in " + string(inline))
		}
	}
	for i, c := range f {
		cmap[c[0]] = int8(i)
	}
	for i, c := range f { // If not set, set both upper and lower case
		l := (bytes.ToLower(c))[0] // This is safe, since we have checked
		u := (bytes.ToUpper(c))[0] // that c is one byte long
		if cmap[l] == notset {
			cmap[l] = int8(i)
		}
		if cmap[u] == notset {
			cmap[u] = int8(i)
		}
	}

	return nAlfbt, nil
}

// setWild picks the index symbols outside the alphabet will score
// through. 'X' is the conventional any-residue entry, '*' the
// minimum-score entry. One of the two is present in every matrix we
// have met, but if neither is there, we fall back to index 0.
func (submat *Submat) setWild() {
	switch {
	case submat.cmap['X'] != notset:
		submat.wild = submat.cmap['X']
	case submat.cmap['*'] != notset:
		submat.wild = submat.cmap['*']
	default:
		submat.wild = 0
	}
}

// Read reads a substitution matrix in the usual ncbi text format from
// an io.Reader. Rows may appear in any order. We force symmetry by
// mirroring each entry as we store it, so the last row read wins if a
// file is inconsistent.
func Read(rdr io.Reader) (*Submat, error) {
	var nAlfbt int
	var err error
	submat := new(Submat)
	scnr := NewCmmtScanner(rdr, '#')
	scnr.Scan()
	if nAlfbt, err = alfbtLine(scnr.CBytes(), submat); err != nil {
		return submat, err
	}
	submat.n = nAlfbt
	submat.scores = make([]int8, nAlfbt*nAlfbt)
	const s = "substitution matrix: wrong number of items on line:\n"
	nc := 0
	for scnr.Scan() {
		line := scnr.CBytes()
		if len(line) == 0 {
			break
		}
		fields := bytes.Fields(line)
		if len(fields) != nAlfbt+1 {
			return submat, errors.New(s + string(line))
		}
		if fields[0][0] >= 128 {
			return submat, errors.New("substitution matrix: invalid character on line " + string(line))
		}
		i := submat.cmap[fields[0][0]]
		if i == notset {
			return submat, errors.New("substitution matrix: row character not in alphabet: " + string(line))
		}
		for j := 0; j < nAlfbt; j++ {
			x, e := strconv.Atoi(string(fields[j+1]))
			if e != nil {
				return submat, fmt.Errorf("substitution matrix: %w", e)
			}
			if x < -128 || x > 127 {
				return submat, fmt.Errorf("substitution matrix: score %d out of range", x)
			}
			submat.scores[int(i)*nAlfbt+j] = int8(x)
			submat.scores[j*nAlfbt+int(i)] = int8(x)
		}
		nc++
	}
	if err = scnr.Err(); err != nil {
		return submat, fmt.Errorf("substitution matrix: %w", err)
	}
	if nc != nAlfbt {
		return submat, fmt.Errorf("substitution matrix: %d rows for %d symbols", nc, nAlfbt)
	}
	submat.setWild()
	return submat, nil
}

// ReadFile reads a substitution matrix from a named file.
func ReadFile(fname string) (*Submat, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	submat, err := Read(fp)
	if err != nil {
		err = fmt.Errorf("reading %s: %w", fname, err)
	}
	return submat, err
}

// ndx maps a symbol to its matrix index, sending anything outside
// the alphabet to the wildcard entry.
func (submat *Submat) ndx(c byte) int {
	if c >= 128 || submat.cmap[c] == notset {
		return int(submat.wild)
	}
	return int(submat.cmap[c])
}

// Score returns the similarity score of bytes a and b, given
// a specific scoring matrix.
func (submat *Submat) Score(a, b byte) int {
	return int(submat.scores[submat.ndx(a)*submat.n+submat.ndx(b)])
}

// NSym returns the number of symbols in the matrix alphabet.
func (submat *Submat) NSym() int { return submat.n }
