// Package emit renders a dendrogram.Merge sequence into the two
// textual forms spec.md section 6 defines: a generic labelled form and
// a Mathematica Cluster[...] form. Both are pure functions of the merge
// sequence and the point coordinates; neither performs clustering
// logic, matching spec.md 4.E.
package emit

import (
	"fmt"
	"io"

	"github.com/aharden/slink/internal/dendrogram"
	"github.com/aharden/slink/internal/points"
)

// Labelled writes the labelled textual form:
//
//	P0: "L0" x0 y0
//	P1: "L1" x1 y1
//	…
//	C0: "Lab" leftId rightId height
//	C1: …
//
// Only the first two coordinates of each point are printed, matching
// the reference output format in spec.md section 6; points with higher
// dimension still cluster correctly (internal/slink has no 2-D
// assumption) but the labelled form only ever shows x and y.
func Labelled(w io.Writer, set points.Set, merges []dendrogram.Merge, labelStart rune) error {
	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		x, y := p[0], coordOrZero(p, 1)
		label := dendrogram.SingletonLabel(labelStart, i)
		if _, err := fmt.Fprintf(w, "P%d: %q %v %v\n", i, label, x, y); err != nil {
			return err
		}
	}
	for k, m := range merges {
		if _, err := fmt.Fprintf(w, "C%d: %q %s %s %v\n", k, m.Label, m.LeftID, m.RightID, m.Height); err != nil {
			return err
		}
	}
	return nil
}

func coordOrZero(p points.Point, i int) float64 {
	if i < len(p) {
		return p[i]
	}
	return 0
}
