// Package points holds the point data model clustered by the slink
// package: a fixed-dimension coordinate type and the ordered, immutable
// sequence of them that defines SLINK insertion order.
package points

// Point is a tuple of K real-valued coordinates. The reference dataset
// uses K=2, but nothing in this package or in internal/slink assumes it.
type Point []float64

// Dim returns the number of coordinates in p.
func (p Point) Dim() int { return len(p) }

// Set is an ordered, immutable sequence of Points. Index order is the
// SLINK insertion order: reordering a Set changes the dendrogram SLINK
// produces from it (though not the set of merges up to relabelling, per
// property P5 of the clustering core).
type Set struct {
	pts []Point
	dim int
}

// NewSet builds a Set from pts. All points must share the same
// dimension; NewSet returns false if pts is empty or dimensions disagree.
func NewSet(pts []Point) (Set, bool) {
	if len(pts) == 0 {
		return Set{}, false
	}
	dim := len(pts[0])
	if dim == 0 {
		return Set{}, false
	}
	for _, p := range pts {
		if len(p) != dim {
			return Set{}, false
		}
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return Set{pts: cp, dim: dim}, true
}

// Len returns the number of points, N.
func (s Set) Len() int { return len(s.pts) }

// Dim returns the shared coordinate dimension K.
func (s Set) Dim() int { return s.dim }

// At returns the point at index i.
func (s Set) At(i int) Point { return s.pts[i] }
