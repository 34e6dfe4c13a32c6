package geom

import "sort"

// VerticesX flattens polys to the multiset of X coordinates of every
// vertex. Duplicates are kept; the segment tree build step dedupes.
func VerticesX(polys []Polygon) []int {
	var xs []int

	for _, p := range polys {
		for _, pt := range p.Points {
			xs = append(xs, pt.X)
		}
	}

	return xs
}

// VerticesY flattens polys to the multiset of Y coordinates of every
// vertex, seeding the segment tree's Y partition.
func VerticesY(polys []Polygon) []int {
	var ys []int

	for _, p := range polys {
		for _, pt := range p.Points {
			ys = append(ys, pt.Y)
		}
	}

	return ys
}

// VerticalEdges walks each polygon's consecutive vertex pairs (closing the
// loop) and emits the axis-aligned vertical ones, sorted ascending by X.
// Edges that share an X retain their original relative order (sort.SliceStable),
// since the sweep relies on that for consistent opening/closing handling
// when several edges land on the same sweep column.
func VerticalEdges(polys []Polygon) []VEdge {
	var edges []VEdge

	for _, p := range polys {
		n := len(p.Points)
		for i := range n {
			a := p.Points[i]
			b := p.Points[(i+1)%n]

			if a.X == b.X && a.Y != b.Y {
				edges = append(edges, VEdge{Layer: p.Layer, X: a.X, Y0: a.Y, Y1: b.Y})
			}
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].X < edges[j].X
	})

	return edges
}
