package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
)

func rect(layer geom.Layer, x0, y0, x1, y1 int) geom.Polygon {
	return geom.Polygon{
		Layer: layer,
		Points: []geom.Point{
			{X: x0, Y: y0},
			{X: x0, Y: y1},
			{X: x1, Y: y1},
			{X: x1, Y: y0},
		},
	}
}

func TestVerticalEdgesOrientation(t *testing.T) {
	t.Parallel()

	p := rect(geom.Diffusion, 0, 0, 10, 10)
	edges := geom.VerticalEdges([]geom.Polygon{p})

	require := assert.New(t)
	require.Len(edges, 2)
	require.Equal(0, edges[0].X)
	require.True(edges[0].Opening(), "left edge of a CCW rectangle opens")
	require.Equal(10, edges[1].X)
	require.False(edges[1].Opening(), "right edge of a CCW rectangle closes")
}

func TestVerticalEdgesStableOnTies(t *testing.T) {
	t.Parallel()

	a := rect(geom.Diffusion, 5, 0, 15, 10)
	b := rect(geom.Polysilicon, 5, -5, 25, 15)
	edges := geom.VerticalEdges([]geom.Polygon{a, b})

	assert.Equal(t, geom.Diffusion, edges[0].Layer)
	assert.Equal(t, geom.Polysilicon, edges[1].Layer)
}

func TestMergeIntervals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", nil, nil},
		{"single", []int{1, 2}, []int{1, 2}},
		{"touching collapses", []int{1, 5, 5, 9}, []int{1, 9}},
		{"disjoint kept", []int{1, 5, 7, 9}, []int{1, 5, 7, 9}},
		{"double touch", []int{1, 5, 5, 9, 9, 12}, []int{1, 12}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, geom.MergeIntervals(tc.in))
		})
	}
}

func TestSortBoundaryPolygon(t *testing.T) {
	t.Parallel()

	p := geom.SortBoundaryPolygon(geom.Diffusion, 0, 0, 10, 20)
	assert.Equal(t, []geom.Point{{0, 0}, {0, 20}, {10, 20}, {10, 0}}, p.Points)
}

func TestLayerOther(t *testing.T) {
	t.Parallel()

	assert.Equal(t, geom.Diffusion, geom.Polysilicon.Other())
	assert.Equal(t, geom.Polysilicon, geom.Diffusion.Other())
}
