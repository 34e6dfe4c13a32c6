package segtree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/segtree"
)

func TestBuildEmptyBelowTwoPoints(t *testing.T) {
	t.Parallel()

	assert.True(t, segtree.Build(nil, nil).Empty())
	assert.True(t, segtree.Build([]int{5}, nil).Empty())
	assert.False(t, segtree.Build([]int{5, 10}, nil).Empty())
}

func TestInsertFullCoverageTombstonesChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15, 20}, nil)

	tr.InsertSegment(ctx, 0, 20, geom.Diffusion)

	nodes := tr.FindNodes(0, 20)
	require.Len(t, nodes, 1)
	assert.Equal(t, segtree.Full, nodes[0].Status(geom.Diffusion))
	assert.Equal(t, segtree.Empty, nodes[0].Status(geom.Polysilicon))
}

func TestInsertPartialCoverageYieldsPartialAncestors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15, 20}, nil)

	tr.InsertSegment(ctx, 0, 10, geom.Diffusion)

	diffFull := tr.PureDiffusion(tr.FindNodes(0, 20), geom.Diffusion)
	assert.Equal(t, []int{0, 10}, geom.MergeIntervals(diffFull))
}

func TestInsertThenRemoveRestoresEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10}, nil)

	tr.InsertSegment(ctx, 0, 10, geom.Diffusion)
	tr.RemoveSegment(ctx, 0, 10, geom.Diffusion)

	nodes := tr.FindNodes(0, 10)
	require.Len(t, nodes, 1)
	assert.Equal(t, segtree.Empty, nodes[0].Status(geom.Diffusion))
}

func TestRemovePartialMaterializesSiblingFull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15}, nil)

	// Full coverage over the whole range tombstones children to empty.
	tr.InsertSegment(ctx, 0, 15, geom.Polysilicon)

	// Removing only the left half must materialize the untouched right
	// child back to full before recomputing, rather than leaving it at its
	// stale tombstoned empty value.
	tr.RemoveSegment(ctx, 0, 5, geom.Polysilicon)

	pureLeft := geom.MergeIntervals(tr.PureDiffusion(tr.FindNodes(0, 15), geom.Polysilicon))
	// Polysilicon empty ranges are where pure-diffusion-by-poly-absence holds;
	// after removing [0,5], that subrange is empty while [5,15] remains full.
	assert.Equal(t, []int{0, 5}, pureLeft)
}

func TestIntersectionFindsOverlapOfBothLayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15, 20}, nil)

	tr.InsertSegment(ctx, 0, 15, geom.Diffusion)
	tr.InsertSegment(ctx, 5, 20, geom.Polysilicon)

	// Mirrors the sweep engine's own usage: query the frontier over the
	// just-inserted diffusion edge's own range, then intersect against the
	// other layer.
	overlap := geom.MergeIntervals(tr.Intersection(tr.FindNodes(0, 15), geom.Polysilicon))
	assert.Equal(t, []int{5, 15}, overlap)
}

func TestFindNodesInheritsFullAlongPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15}, nil)

	tr.InsertSegment(ctx, 0, 15, geom.Diffusion)

	nodes := tr.FindNodes(0, 5)
	require.Len(t, nodes, 1)
	// The leaf covering [0,5] was tombstoned to empty by the full mark at
	// the root; FindNodes must report the inherited effective value, not
	// the stale local one.
	assert.Equal(t, segtree.Full, nodes[0].Status(geom.Diffusion))
}

func TestSnapshotRoundTrips(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15, 20}, nil)
	tr.InsertSegment(ctx, 0, 10, geom.Diffusion)

	data, err := tr.Snapshot(1 << 16)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := segtree.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.NotZero(t, decoded.Root)
	assert.Len(t, decoded.SegB, len(decoded.SegE))
}

func TestSnapshotBelowThresholdStoresRaw(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15, 20}, nil)
	tr.InsertSegment(ctx, 0, 10, geom.Diffusion)

	data, err := tr.Snapshot(1 << 16)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte(0), data[0], "a tree well under the hibernation threshold must be stored raw")

	decoded, err := segtree.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.NotZero(t, decoded.Root)
}

func TestSnapshotAboveThresholdCompresses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := segtree.Build([]int{0, 5, 10, 15, 20}, nil)
	tr.InsertSegment(ctx, 0, 10, geom.Diffusion)

	data, err := tr.Snapshot(0)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte(1), data[0], "a tree over the hibernation threshold must be lz4-compressed")

	decoded, err := segtree.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.NotZero(t, decoded.Root)
}
