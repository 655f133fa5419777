package emit

import (
	"bytes"
	"testing"

	"github.com/aharden/slink/internal/dendrogram"
	"github.com/aharden/slink/internal/metric"
	"github.com/aharden/slink/internal/points"
	"github.com/aharden/slink/internal/slink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCollinear(t *testing.T) (points.Set, []dendrogram.Merge) {
	t.Helper()
	set, ok := points.NewSet([]points.Point{{0, 0}, {1, 0}, {3, 0}})
	require.True(t, ok)
	res, err := slink.Cluster(set, metric.Euclidean{})
	require.NoError(t, err)
	merges, err := dendrogram.Build(set, res, dendrogram.DefaultLabelStart)
	require.NoError(t, err)
	return set, merges
}

// Scenario 6 — Mathematica emission shape.
func TestMathematicaScenario6Shape(t *testing.T) {
	_, merges := threeCollinear(t)

	var buf bytes.Buffer
	require.NoError(t, Mathematica(&buf, merges))

	want := "c0 = Cluster[0, 1, 1, 1, 1]\n" +
		"c1 = Cluster[c0, 2, 2, 2, 1]\n" +
		"DendrogramPlot[c1, LeafLabels ->(#&)]\n"
	assert.Equal(t, want, buf.String())
}

func TestLabelledShape(t *testing.T) {
	set, merges := threeCollinear(t)

	var buf bytes.Buffer
	require.NoError(t, Labelled(&buf, set, merges, dendrogram.DefaultLabelStart))

	want := "P0: \"1\" 0 0\n" +
		"P1: \"2\" 1 0\n" +
		"P2: \"3\" 3 0\n" +
		"C0: \"12\" P0 P1 1\n" +
		"C1: \"123\" C0 P2 2\n"
	assert.Equal(t, want, buf.String())
}

// (P6) Idempotence of emission.
func TestEmissionIsIdempotent(t *testing.T) {
	set, merges := threeCollinear(t)

	var a, b bytes.Buffer
	require.NoError(t, Labelled(&a, set, merges, dendrogram.DefaultLabelStart))
	require.NoError(t, Labelled(&b, set, merges, dendrogram.DefaultLabelStart))
	assert.Equal(t, a.String(), b.String())

	a.Reset()
	b.Reset()
	require.NoError(t, Mathematica(&a, merges))
	require.NoError(t, Mathematica(&b, merges))
	assert.Equal(t, a.String(), b.String())
}

func TestMathematicaEmptyMergesWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Mathematica(&buf, nil))
	assert.Empty(t, buf.String())
}
