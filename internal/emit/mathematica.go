package emit

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aharden/slink/internal/dendrogram"
)

// Mathematica writes the Mathematica Cluster[...] form:
//
//	c0 = Cluster[<left>, <right>, <height>, <leftSize>, <rightSize>]
//	c1 = Cluster[...]
//	DendrogramPlot[c<N-2>, LeafLabels ->(#&)]
//
// <left>/<right> are either a prior c<k> identifier (dendrogram.Endpoint
// with IsLeaf == false) or an original point index (IsLeaf == true).
// Because dendrogram.Build already resolves cluster identity through
// union-find, this function never needs the source's fragile
// "representative == X" scan (spec.md section 9) — it just reads
// Endpoint off each Merge.
func Mathematica(w io.Writer, merges []dendrogram.Merge) error {
	if len(merges) == 0 {
		return nil
	}
	for k, m := range merges {
		left := endpointRef(m.Left)
		right := endpointRef(m.Right)
		if _, err := fmt.Fprintf(w, "c%d = Cluster[%s, %s, %v, %d, %d]\n",
			k, left, right, m.Height, m.LeftSize, m.RightSize); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "DendrogramPlot[c%d, LeafLabels ->(#&)]\n", len(merges)-1)
	return err
}

func endpointRef(e dendrogram.Endpoint) string {
	if e.IsLeaf {
		return strconv.Itoa(e.LeafIndex)
	}
	return "c" + strconv.Itoa(e.ClusterIndex)
}
