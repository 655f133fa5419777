// Package dendrogram converts a SLINK pointer representation (π, λ)
// into an ordered sequence of binary merges: component D of the
// clustering core, and the non-obvious half of it, since a naive
// "which cluster currently contains point X" lookup is quadratic and
// the reference implementation's version of that lookup is subtly
// broken for chains longer than two (spec.md section 9).
//
// Build uses union-find with path compression to track cluster
// identity, which spec.md mandates as the correctness fix for property
// P4: the representative of a component is always resolvable in
// amortized-near-constant time, so "which cluster contains point X" is
// never stale the way the source's linear `value.first == X` scan can be.
package dendrogram

import (
	"sort"
	"strconv"

	"github.com/aharden/slink/internal/points"
	"github.com/aharden/slink/internal/slink"
	"github.com/aharden/slink/internal/slinkerr"
)

// Endpoint names one side of a Merge: either an original leaf point or
// a previously emitted merge (by its 0-based position in the sequence).
type Endpoint struct {
	IsLeaf       bool
	LeafIndex    int // valid when IsLeaf
	ClusterIndex int // valid when !IsLeaf: index into the slice Build returns
}

// Merge is one node of the dendrogram: the combination of Left and
// Right at the given Height, carrying the display bookkeeping
// (spec.md 4.D) both emitters need.
type Merge struct {
	Left, Right            Endpoint
	LeftID, RightID        string // "P<i>" or "C<k>", for the labelled emitter
	LeftLabel, RightLabel  string
	Label                  string
	Height                 float64
	LeftSize, RightSize    int // sizes of Left and Right individually
	Size                   int // LeftSize + RightSize
}

// DefaultLabelStart is the reference implementation's starting display
// character. spec.md section 9 flags the source's hardcoded '1' (with a
// "TODO: 'A'" the source never acted on) as an Open Question; this
// package treats the starting character as a parameter instead of
// silently "fixing" it.
const DefaultLabelStart = '1'

// Build converts a completed SLINK result into an ordered merge
// sequence. It assumes (π, λ) satisfies invariants I1-I4 of spec.md
// section 3 (SlinkCore guarantees this); violating them is a programmer
// error. Build checks only that the lengths of π and λ match the point
// set and that exactly one root exists, and reports a failure of either
// check as slinkerr.Internal; other invariant violations are not detected.
func Build(set points.Set, res slink.Result, labelStart rune) ([]Merge, error) {
	n := set.Len()
	if len(res.Pi) != n || len(res.Lambda) != n {
		return nil, slinkerr.New(slinkerr.Internal, "pointer representation length does not match point set")
	}
	if n == 0 {
		return nil, nil
	}

	type triple struct {
		i, p  int
		h     float64
		order int
	}
	triples := make([]triple, 0, n-1)
	for i := 0; i < n; i++ {
		if res.Pi[i] == i {
			continue // the root; λ[root] = +∞, excluded per spec.md 4.D step 1
		}
		triples = append(triples, triple{i: i, p: res.Pi[i], h: res.Lambda[i], order: i})
	}
	if len(triples) != n-1 {
		return nil, slinkerr.New(slinkerr.Internal, "pointer representation does not have exactly one root")
	}

	sort.SliceStable(triples, func(a, b int) bool {
		if triples[a].h != triples[b].h {
			return triples[a].h < triples[b].h
		}
		return triples[a].order < triples[b].order
	})

	uf := newUnionFind(n)
	type clusterInfo struct {
		id, label    string
		endpoint     Endpoint
		size         int
	}
	clusterOf := make(map[int]clusterInfo, n)
	for i := 0; i < n; i++ {
		clusterOf[i] = clusterInfo{
			id:       "P" + strconv.Itoa(i),
			label:    SingletonLabel(labelStart, i),
			endpoint: Endpoint{IsLeaf: true, LeafIndex: i},
			size:     1,
		}
	}

	merges := make([]Merge, 0, n-1)
	for k, t := range triples {
		ri, rp := uf.find(t.i), uf.find(t.p)
		ci, okI := clusterOf[ri]
		cp, okP := clusterOf[rp]
		if !okI || !okP {
			return nil, slinkerr.New(slinkerr.Internal, "missing cluster identity during dendrogram reconstruction")
		}

		merges = append(merges, Merge{
			Left:       ci.endpoint,
			Right:      cp.endpoint,
			LeftID:     ci.id,
			RightID:    cp.id,
			LeftLabel:  ci.label,
			RightLabel: cp.label,
			Label:      ci.label + cp.label,
			Height:     t.h,
			LeftSize:   ci.size,
			RightSize:  cp.size,
			Size:       ci.size + cp.size,
		})

		newRoot := uf.union(ri, rp)
		delete(clusterOf, ri)
		delete(clusterOf, rp)
		clusterOf[newRoot] = clusterInfo{
			id:       "C" + strconv.Itoa(k),
			label:    ci.label + cp.label,
			endpoint: Endpoint{IsLeaf: false, ClusterIndex: k},
			size:     ci.size + cp.size,
		}
	}

	return merges, nil
}

// SingletonLabel assigns point i a display label as a contiguous
// character sequence starting at start, matching the reference
// implementation's `char letter = '1'; ... letter++` scheme.
func SingletonLabel(start rune, i int) string {
	return string(rune(int(start) + i))
}

