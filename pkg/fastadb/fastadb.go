// 20 Mar 2025

// Package fastadb serves protein sequences by name from a fasta
// file. The file is mapped read-only and indexed once, so opening a
// big database costs one pass over the bytes and lookups afterwards
// cost a map access plus copying out one sequence. It is the offline
// alternative to asking a web server for every name.
package fastadb

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

const cmmtChar = '>'

// span marks the region of the mapped file holding one sequence,
// newlines and all.
type span struct {
	beg, end int
}

// DB is an open, indexed fasta file. Safe for concurrent lookups
// once Open has returned, since nothing is written after indexing.
type DB struct {
	fp  *os.File
	mm  mmap.MMap
	ndx map[string]span
}

// name takes a header line (without the '>') and returns the record
// name, which we take to be the first white-space delimited word.
func name(hdr []byte) string {
	if f := bytes.Fields(hdr); len(f) > 0 {
		return string(f[0])
	}
	return ""
}

// index walks the mapped bytes and notes where each sequence lives.
// Duplicate names keep the first occurrence.
func index(mm []byte) (map[string]span, error) {
	ndx := make(map[string]span)
	i := bytes.IndexByte(mm, cmmtChar)
	if i == -1 {
		return nil, fmt.Errorf("no fasta records found")
	}
	for i != -1 {
		eol := bytes.IndexByte(mm[i:], '\n')
		if eol == -1 { // header with no sequence at end of file
			break
		}
		hdr := mm[i+1 : i+eol]
		beg := i + eol + 1
		next := bytes.IndexByte(mm[beg:], cmmtChar)
		end := len(mm)
		if next != -1 {
			end = beg + next
		}
		if n := name(hdr); n != "" {
			if _, dup := ndx[n]; !dup {
				ndx[n] = span{beg, end}
			}
		}
		if next == -1 {
			break
		}
		i = beg + next
	}
	return ndx, nil
}

// Open maps fname and builds the name index.
func Open(fname string) (*DB, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	ndx, err := index(mm)
	if err != nil {
		mm.Unmap()
		fp.Close()
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return &DB{fp: fp, mm: mm, ndx: ndx}, nil
}

// NSeq returns the number of indexed sequences.
func (db *DB) NSeq() int { return len(db.ndx) }

// Seq returns the sequence for a name, with white space squeezed
// out. The copy is deliberate. Callers must not be handed slices of
// the mapping, which dies with the DB.
func (db *DB) Seq(name string) (string, bool) {
	sp, ok := db.ndx[name]
	if !ok {
		return "", false
	}
	raw := db.mm[sp.beg:sp.end]
	out := make([]byte, 0, len(raw))
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		default:
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return "", false
	}
	return string(out), true
}

// Close unmaps the file. Lookups after Close will crash, which is
// what you deserve.
func (db *DB) Close() error {
	err := db.mm.Unmap()
	if e := db.fp.Close(); err == nil {
		err = e
	}
	return err
}
