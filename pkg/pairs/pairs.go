// 18 Mar 2025

// Package pairs takes a list of named sequence pairs and works out
// the percent identity for each one. The list comes from outside,
// usually a csv file, and each record drags an externally supplied
// similarity number along with it. We never look at that number. It
// goes out exactly as it came in.
package pairs

import (
	"sort"

	"github.com/andrew-torda/seqident/pkg/common"
)

// Pair is one input record. The names must be set. Either sequence
// may be empty or the common.NotFound marker if retrieval failed
// upstream.
type Pair struct {
	NameA, NameB string
	SeqA, SeqB   string
	Similarity   float64 // opaque, passed through untouched
}

// Result is a Pair with the computed percent identity attached.
// PctIdent is NaN when it could not be computed, which is not the
// same thing as zero.
type Result struct {
	Pair
	PctIdent float64
}

// Provider hands out a sequence for a protein name. ok is false when
// the name is unknown.
type Provider interface {
	Seq(name string) (seq string, ok bool)
}

// Names collects the distinct names over both columns, sorted. Fetch
// each name once, however often it appears in the pair list.
func Names(recs []Pair) []string {
	seen := make(map[string]bool, 2*len(recs))
	for _, r := range recs {
		seen[r.NameA] = true
		seen[r.NameB] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Attach fills in the sequences on each record from a provider,
// putting the NotFound marker where the provider has nothing. This
// is the join between the name columns and a sequence source.
func Attach(recs []Pair, prov Provider) {
	for i := range recs {
		if s, ok := prov.Seq(recs[i].NameA); ok {
			recs[i].SeqA = s
		} else {
			recs[i].SeqA = common.NotFound
		}
		if s, ok := prov.Seq(recs[i].NameB); ok {
			recs[i].SeqB = s
		} else {
			recs[i].SeqB = common.NotFound
		}
	}
}
