// Package sweep implements the plane-sweep that turns per-layer polygon
// sets into the two output edge sets (layer intersection and pure
// diffusion) the contour reconstructor closes back into polygons.
package sweep

import (
	"context"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/observability"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/segtree"
)

// Result holds the two output vertical-edge sets the sweep produces:
// Intersection (tagged polysilicon) and PureDiffusion (tagged diffusion).
type Result struct {
	Intersection []geom.VEdge
	PureDiffusion []geom.VEdge
}

// Run builds a segment tree over every polygon vertex's Y coordinate, then
// sweeps the vertical edges of polys in ascending X order, maintaining the
// tree's per-layer coverage and emitting intersection and pure-diffusion
// edges at each column. metrics may be nil.
func Run(ctx context.Context, polys []geom.Polygon, metrics *observability.Metrics) Result {
	ys := geom.VerticesY(polys)
	tree := segtree.Build(ys, metrics)

	edges := geom.VerticalEdges(polys)

	var res Result

	for _, e := range edges {
		metrics.EdgeSwept(ctx)

		lo, hi := e.Lo(), e.Hi()
		nlayer := e.Layer.Other()

		if e.Opening() {
			tree.InsertSegment(ctx, lo, hi, e.Layer)

			nodes := tree.FindNodes(lo, hi)
			emitMerged(&res.Intersection, geom.Polysilicon, e.X, tree.Intersection(nodes, nlayer), true)
			emitMerged(&res.PureDiffusion, geom.Diffusion, e.X, tree.PureDiffusion(nodes, nlayer), pureDiffusionOpening(e.Layer))

			continue
		}

		nodes := tree.FindNodes(lo, hi)
		emitMerged(&res.Intersection, geom.Polysilicon, e.X, tree.Intersection(nodes, nlayer), false)
		emitMerged(&res.PureDiffusion, geom.Diffusion, e.X, tree.PureDiffusion(nodes, nlayer), pureDiffusionClosing(e.Layer))

		tree.RemoveSegment(ctx, lo, hi, e.Layer)
	}

	return res
}

// pureDiffusionOpening reports whether a pure-diffusion edge emitted for an
// opening sweep edge on layer should itself open. Diffusion sweep edges
// emit with the sweep edge's own orientation; polysilicon sweep edges flip
// it, since an opening poly edge subtracts from (closes) the active
// diffusion region and vice versa.
func pureDiffusionOpening(layer geom.Layer) bool {
	return layer == geom.Diffusion
}

// pureDiffusionClosing is the closing-edge counterpart of
// pureDiffusionOpening: the emitted edge opens when layer is polysilicon.
func pureDiffusionClosing(layer geom.Layer) bool {
	return layer == geom.Polysilicon
}

// emitMerged merges the flat start/end sequence from a content query and
// appends one output VEdge per resulting pair at column x. opening selects
// which endpoint is Y0 vs Y1, reproducing the orientation rule for whichever
// output set is being built.
func emitMerged(out *[]geom.VEdge, layer geom.Layer, x int, flat []int, opening bool) {
	merged := geom.MergeIntervals(flat)
	if len(merged)%2 != 0 {
		panic("sweep: content query returned interval boundaries that do not alternate start/end")
	}

	for i := 0; i+1 < len(merged); i += 2 {
		a, b := merged[i], merged[i+1]

		e := geom.VEdge{Layer: layer, X: x}
		if opening {
			e.Y0, e.Y1 = a, b
		} else {
			e.Y0, e.Y1 = b, a
		}

		*out = append(*out, e)
	}
}
