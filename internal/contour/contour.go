// Package contour closes the sweep engine's vertical edge output back into
// rectilinear polygons. It derives the missing horizontal edges, builds a
// point-keyed adjacency map, and walks it to extract closed loops.
//
// The adjacency map is backed by an arena (internal/arena) of edge-records
// addressed by handle, with a doubly linked overlay threaded through the
// same records so the next unvisited starting vertex is always found in
// O(1) and a visited vertex is spliced out in O(1).
package contour

import (
	"context"
	"fmt"
	"sort"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/arena"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/observability"
)

type taggedPoint struct {
	pt     geom.Point
	source bool
}

// deriveHorizontalEdges pairs up the endpoints of edges, sorted by (y, x),
// into the horizontal segments that connect them along the polygon
// boundary. A point from a vertical edge's Y0 field is a "source" endpoint
// (a vertical edge already departs from it); its Y1 field is a "sink"
// endpoint (a vertical edge already arrives there). Every vertex has
// exactly one outgoing edge, so the horizontal edge within a pair must run
// from the sink-tagged point to the source-tagged one.
//
// A pair at the same X collapses to a zero-length edge and is dropped: it
// arises when two vertical edges on the same column cancel out entirely
// (e.g. identical rectangles on both layers leave no actual boundary
// there), and keeping it would wire a point's successor back to itself.
func deriveHorizontalEdges(edges []geom.VEdge, layer geom.Layer) []geom.HEdge {
	pts := make([]taggedPoint, 0, len(edges)*2)

	for _, e := range edges {
		pts = append(pts, taggedPoint{pt: geom.Point{X: e.X, Y: e.Y0}, source: true})
		pts = append(pts, taggedPoint{pt: geom.Point{X: e.X, Y: e.Y1}, source: false})
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].pt.Y != pts[j].pt.Y {
			return pts[i].pt.Y < pts[j].pt.Y
		}

		return pts[i].pt.X < pts[j].pt.X
	})

	hedges := make([]geom.HEdge, 0, len(pts)/2)

	for i := 0; i+1 < len(pts); i += 2 {
		a, b := pts[i], pts[i+1]

		from, to := a, b
		if a.source {
			from, to = b, a
		}

		if from.pt.X == to.pt.X {
			continue
		}

		h := geom.HEdge{Layer: layer, Y: a.pt.Y, X0: from.pt.X, X1: to.pt.X}

		hedges = append(hedges, h)
	}

	return hedges
}

type entry struct {
	point, successor geom.Point
	prev, next       arena.Handle
}

// reconstructor owns the adjacency map and its linked overlay for one
// polygon-extraction pass. It is destructively consumed by extract.
type reconstructor struct {
	nodes      *arena.Arena[entry]
	index      map[geom.Point]arena.Handle
	head, tail arena.Handle
}

func newReconstructor(pairs map[geom.Point]geom.Point) *reconstructor {
	r := &reconstructor{
		nodes: arena.New[entry](),
		index: make(map[geom.Point]arena.Handle, len(pairs)),
	}

	// Link the overlay in (x, y) order rather than map order, so extraction
	// starts each loop at a fixed vertex and the output is byte-stable.
	keys := make([]geom.Point, 0, len(pairs))
	for pt := range pairs {
		keys = append(keys, pt)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}

		return keys[i].Y < keys[j].Y
	})

	for _, pt := range keys {
		h := r.nodes.Alloc()
		e := r.nodes.Get(h)
		e.point = pt
		e.successor = pairs[pt]
		r.index[pt] = h
		r.linkTail(h)
	}

	return r
}

func (r *reconstructor) linkTail(h arena.Handle) {
	e := r.nodes.Get(h)
	e.prev = r.tail
	e.next = arena.Nil

	if r.tail != arena.Nil {
		r.nodes.Get(r.tail).next = h
	} else {
		r.head = h
	}

	r.tail = h
}

func (r *reconstructor) unlink(h arena.Handle) {
	e := r.nodes.Get(h)

	if e.prev != arena.Nil {
		r.nodes.Get(e.prev).next = e.next
	} else {
		r.head = e.next
	}

	if e.next != arena.Nil {
		r.nodes.Get(e.next).prev = e.prev
	} else {
		r.tail = e.prev
	}
}

// extract consumes the adjacency map, emitting one polygon per closed loop
// found by following successor links from each remaining list head. Loops
// with fewer than three vertices or zero enclosed area are degenerate — a
// coincident open/close pair on the same column with no actual
// boundary between them — and are dropped rather than emitted.
func (r *reconstructor) extract(layer geom.Layer) []geom.Polygon {
	var polys []geom.Polygon

	for r.head != arena.Nil {
		start := r.nodes.Get(r.head).point

		var pts []geom.Point

		cur := r.head

		for {
			e := r.nodes.Get(cur)
			pts = append(pts, e.point)

			next := e.successor

			r.unlink(cur)
			delete(r.index, e.point)

			if next == start {
				break
			}

			nh, ok := r.index[next]
			if !ok {
				panic(fmt.Sprintf("contour: dangling successor %v (no outgoing edge from that point)", next))
			}

			cur = nh
		}

		if len(pts) < 3 || signedArea2(pts) == 0 {
			continue
		}

		polys = append(polys, geom.Polygon{Layer: layer, Points: pts})
	}

	return polys
}

// signedArea2 returns twice the shoelace-formula signed area of pts.
func signedArea2(pts []geom.Point) int {
	area := 0

	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}

	return area
}

// Reconstruct closes edges (all belonging to one output layer) back into
// polygons, tagging each with layer. metrics may be nil.
func Reconstruct(ctx context.Context, edges []geom.VEdge, layer geom.Layer, metrics *observability.Metrics) []geom.Polygon {
	if len(edges) == 0 {
		return nil
	}

	hedges := deriveHorizontalEdges(edges, layer)

	pairs := make(map[geom.Point]geom.Point, len(edges)+len(hedges))

	for _, e := range edges {
		pairs[geom.Point{X: e.X, Y: e.Y0}] = geom.Point{X: e.X, Y: e.Y1}
	}

	for _, h := range hedges {
		pairs[geom.Point{X: h.X0, Y: h.Y}] = geom.Point{X: h.X1, Y: h.Y}
	}

	polys := newReconstructor(pairs).extract(layer)

	metrics.PolygonsEmitted(ctx, len(polys))

	return polys
}
