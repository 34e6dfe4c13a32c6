// Package segtree implements the augmented Y-axis segment tree the sweep
// engine queries at every vertical edge. Nodes live in an arena.Arena
// (internal/arena), addressed by handle rather than pointer.
//
// Each node carries two independent tri-state Status values, one per layer
// (polysilicon, diffusion). A Full status is lazy: it tombstones both
// children to Empty rather than eagerly pushing the mark down, and a later
// partial update re-expands them node by node as updateNode recomputes
// ancestors bottom-up.
package segtree

import (
	"context"
	"sort"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/arena"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/observability"
)

// Status is a node's coverage state for one layer.
type Status int8

const (
	Empty Status = iota
	Partial
	Full
)

// String renders a Status for diagnostics.
func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "invalid"
	}
}

const (
	poly = 0
	diff = 1
)

func layerIndex(l geom.Layer) int {
	if l == geom.Polysilicon {
		return poly
	}

	return diff
}

type node struct {
	segB, segM, segE int
	left, right       arena.Handle
	status            [2]Status
}

// Tree is an augmented segment tree over a fixed, pre-sorted set of Y
// coordinates. It is built once per sweep column set and then mutated in
// place as the sweep crosses opening and closing edges.
type Tree struct {
	nodes   *arena.Arena[node]
	root    arena.Handle
	metrics *observability.Metrics
}

// Build constructs a tree over ys, which it dedupes and sorts ascending
// first. A tree built from fewer than two distinct coordinates is empty:
// every operation on it is a no-op, matching the case where the sweep has no
// vertical extent to track. metrics may be nil.
func Build(ys []int, metrics *observability.Metrics) *Tree {
	t := &Tree{
		nodes:   arena.New[node](),
		metrics: metrics,
	}

	ys = dedupeSorted(ys)

	if len(ys) < 2 {
		return t
	}

	t.root = t.build(ys)

	return t
}

// dedupeSorted returns the sorted, duplicate-free contents of ys without
// mutating the caller's slice.
func dedupeSorted(ys []int) []int {
	if len(ys) == 0 {
		return ys
	}

	sorted := make([]int, len(ys))
	copy(sorted, ys)
	sort.Ints(sorted)

	out := sorted[:1]

	for _, y := range sorted[1:] {
		if y != out[len(out)-1] {
			out = append(out, y)
		}
	}

	return out
}

func (t *Tree) build(ys []int) arena.Handle {
	k := len(ys)

	h := t.nodes.Alloc()
	n := t.nodes.Get(h)
	n.segB = ys[0]
	n.segE = ys[k-1]

	if k == 2 {
		n.segM = n.segB
		n.left, n.right = arena.Nil, arena.Nil

		return h
	}

	m := (k - 1) / 2
	n.segM = ys[m]

	left := t.build(ys[:m+1])
	right := t.build(ys[m:])

	// Building the children may have reallocated the arena's backing
	// slice, so n must be re-fetched rather than reused here.
	n = t.nodes.Get(h)
	n.left = left
	n.right = right

	return h
}

// Empty reports whether the tree covers fewer than two Y coordinates.
func (t *Tree) Empty() bool {
	return t.root == arena.Nil
}

// InsertSegment marks [sb, se] as Full on layer: each node whose range is
// wholly contained is set Full and its children are tombstoned, then every
// ancestor on the path from the leaves back to the root is recomputed.
func (t *Tree) InsertSegment(ctx context.Context, sb, se int, layer geom.Layer) {
	if t.Empty() {
		return
	}

	t.insert(ctx, t.root, sb, se, layerIndex(layer))
}

func (t *Tree) insert(ctx context.Context, h arena.Handle, sb, se int, li int) {
	t.metrics.NodeVisited(ctx)

	n := t.nodes.Get(h)

	if sb <= n.segB && n.segE <= se {
		n.status[li] = Full

		if n.left != arena.Nil {
			t.nodes.Get(n.left).status[li] = Empty
			t.nodes.Get(n.right).status[li] = Empty
		}

		return
	}

	if n.left == arena.Nil {
		return
	}

	segM, left, right := n.segM, n.left, n.right

	if sb < segM {
		t.insert(ctx, left, sb, se, li)
	}

	if se > segM {
		t.insert(ctx, right, sb, se, li)
	}

	t.updateNode(h, li)
}

// RemoveSegment clears [sb, se] on layer. Where a remove range only touches
// one child of a node that was previously tombstoned Full, the untouched
// sibling first has the parent's lazy Full materialized into it, so that the
// subsequent updateNode recomputes the parent from true child state rather
// than from a stale tombstone.
func (t *Tree) RemoveSegment(ctx context.Context, sb, se int, layer geom.Layer) {
	if t.Empty() {
		return
	}

	t.remove(ctx, t.root, sb, se, layerIndex(layer))
}

func (t *Tree) remove(ctx context.Context, h arena.Handle, sb, se int, li int) {
	t.metrics.NodeVisited(ctx)

	n := t.nodes.Get(h)

	if sb <= n.segB && n.segE <= se {
		n.status[li] = Empty

		return
	}

	if n.left == arena.Nil {
		return
	}

	segM, left, right, prevStatus := n.segM, n.left, n.right, n.status[li]

	visitedLeft, visitedRight := false, false

	if sb < segM {
		t.remove(ctx, left, sb, se, li)

		visitedLeft = true
	}

	if se > segM {
		t.remove(ctx, right, sb, se, li)

		visitedRight = true
	}

	if visitedLeft != visitedRight && prevStatus != Partial {
		if visitedLeft {
			t.nodes.Get(right).status[li] = Full
		} else {
			t.nodes.Get(left).status[li] = Full
		}
	}

	t.updateNode(h, li)
}

func (t *Tree) updateNode(h arena.Handle, li int) {
	n := t.nodes.Get(h)
	if n.left == arena.Nil {
		return
	}

	l := t.nodes.Get(n.left)
	r := t.nodes.Get(n.right)

	switch {
	case l.status[li] == Full && r.status[li] == Full:
		n.status[li] = Full
		l.status[li] = Empty
		r.status[li] = Empty
	case l.status[li] == Empty && r.status[li] == Empty:
		n.status[li] = Empty
	default:
		n.status[li] = Partial
	}
}

// FrontierNode is one canonical node returned by FindNodes, tagged with the
// effective (inheritance-resolved) status of each layer at that point in the
// tree: if an ancestor on the path to this node was tombstoned Full for a
// layer, this node's status for that layer reads Full regardless of its own
// locally stored (and otherwise stale) value.
type FrontierNode struct {
	handle             arena.Handle
	polyStat, diffStat Status
}

// Status returns the effective status of layer at this frontier node.
func (f FrontierNode) Status(layer geom.Layer) Status {
	if layer == geom.Polysilicon {
		return f.polyStat
	}

	return f.diffStat
}

// FindNodes returns the deepest set of canonical nodes whose ranges
// together exactly tile [sb, se], each carrying its inheritance-resolved
// status for both layers.
func (t *Tree) FindNodes(sb, se int) []FrontierNode {
	if t.Empty() {
		return nil
	}

	var out []FrontierNode

	t.findNodes(t.root, sb, se, Empty, Empty, &out)

	return out
}

func (t *Tree) findNodes(h arena.Handle, sb, se int, inheritPoly, inheritDiff Status, out *[]FrontierNode) {
	n := t.nodes.Get(h)

	effPoly, effDiff := n.status[poly], n.status[diff]
	if inheritPoly == Full {
		effPoly = Full
	}

	if inheritDiff == Full {
		effDiff = Full
	}

	if (sb <= n.segB && n.segE <= se) || n.left == arena.Nil {
		*out = append(*out, FrontierNode{handle: h, polyStat: effPoly, diffStat: effDiff})

		return
	}

	segM, left, right := n.segM, n.left, n.right

	if sb < segM {
		t.findNodes(left, sb, se, effPoly, effDiff, out)
	}

	if se > segM {
		t.findNodes(right, sb, se, effPoly, effDiff, out)
	}
}

// Intersection returns the flat start/end Y sequence, across nodes, where
// other is Full (recursing into Partial subranges beneath each node).
// Pass geom.Polysilicon when the sweep is on a diffusion edge and vice
// versa: it answers "where does the other layer already cover this span".
func (t *Tree) Intersection(nodes []FrontierNode, other geom.Layer) []int {
	var out []int

	li := layerIndex(other)

	for _, fn := range nodes {
		t.collect(fn.handle, li, fn.Status(other), Full, &out)
	}

	return out
}

// PureDiffusion returns the flat start/end Y sequence where diffusion holds
// without polysilicon overlap. other is the layer opposite the sweep edge's:
// with other=Diffusion (a polysilicon edge) it collects spans where
// diffusion is Full; with other=Polysilicon (a diffusion edge) it collects
// spans where polysilicon is Empty. The sweep engine combines the results
// from edges of both layers to assemble the pure-diffusion boundary.
func (t *Tree) PureDiffusion(nodes []FrontierNode, other geom.Layer) []int {
	var out []int

	li := layerIndex(other)

	target := Full
	if other == geom.Polysilicon {
		target = Empty
	}

	for _, fn := range nodes {
		t.collect(fn.handle, li, fn.Status(other), target, &out)
	}

	return out
}

func (t *Tree) collect(h arena.Handle, li int, inherited Status, target Status, out *[]int) {
	n := t.nodes.Get(h)

	eff := n.status[li]
	if inherited == Full {
		eff = Full
	}

	switch {
	case eff == target:
		*out = append(*out, n.segB, n.segE)
	case eff == Partial && n.left != arena.Nil:
		t.collect(n.left, li, Empty, target, out)
		t.collect(n.right, li, Empty, target, out)
	}
}
