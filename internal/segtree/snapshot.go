package segtree

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/arena"
)

// snapshot field layout, in the order written to the deinterleaved buffer.
const snapshotFieldCount = 7

// Decoded is a read-only view of a tree snapshot, used by internal/viz to
// render the initial segment tree without reconstructing a mutable Tree.
type Decoded struct {
	Root                                              uint32
	SegB, SegM, SegE, Left, Right, PolyStat, DiffStat []int32
}

// snapshotFormat tags the byte stream Snapshot produces so DecodeSnapshot
// knows whether the payload that follows is lz4-compressed.
type snapshotFormat byte

const (
	snapshotFormatRaw        snapshotFormat = 0
	snapshotFormatCompressed snapshotFormat = 1
)

// Snapshot serializes the tree's current node storage into a byte stream.
// Each node field is first deinterleaved into its own contiguous buffer,
// since same-field runs compress far better than interleaved node structs.
// Trees with more than hibernationThreshold nodes are lz4-compressed, since
// that is where the deinterleaving pays for its own overhead; smaller trees
// are stored raw to skip the compressor entirely.
func (t *Tree) Snapshot(hibernationThreshold int) ([]byte, error) {
	n := t.nodes.Len() + 1 // +1 for the reserved nil-handle slot at index 0

	buffers := make([][]int32, snapshotFieldCount)
	for i := range buffers {
		buffers[i] = make([]int32, n)
	}

	for h := 0; h < n; h++ {
		nd := t.nodes.Get(arena.Handle(h))
		buffers[0][h] = int32(nd.segB)
		buffers[1][h] = int32(nd.segM)
		buffers[2][h] = int32(nd.segE)
		buffers[3][h] = int32(nd.left)
		buffers[4][h] = int32(nd.right)
		buffers[5][h] = int32(nd.status[poly])
		buffers[6][h] = int32(nd.status[diff])
	}

	var raw bytes.Buffer

	if err := binary.Write(&raw, binary.LittleEndian, uint32(n)); err != nil {
		return nil, fmt.Errorf("write snapshot header: %w", err)
	}

	if err := binary.Write(&raw, binary.LittleEndian, uint32(t.root)); err != nil {
		return nil, fmt.Errorf("write snapshot root: %w", err)
	}

	for _, buf := range buffers {
		if err := binary.Write(&raw, binary.LittleEndian, buf); err != nil {
			return nil, fmt.Errorf("write snapshot buffer: %w", err)
		}
	}

	if t.nodes.Len() <= hibernationThreshold {
		out := make([]byte, 0, raw.Len()+1)
		out = append(out, byte(snapshotFormatRaw))
		out = append(out, raw.Bytes()...)

		return out, nil
	}

	compressed := bytes.Buffer{}
	compressed.WriteByte(byte(snapshotFormatCompressed))

	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close snapshot compressor: %w", err)
	}

	return compressed.Bytes(), nil
}

// DecodeSnapshot reverses Snapshot.
func DecodeSnapshot(data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode snapshot: empty input")
	}

	var raw bytes.Buffer

	switch snapshotFormat(data[0]) {
	case snapshotFormatRaw:
		raw.Write(data[1:])
	case snapshotFormatCompressed:
		zr := lz4.NewReader(bytes.NewReader(data[1:]))
		if _, err := raw.ReadFrom(zr); err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode snapshot: unknown format marker %d", data[0])
	}

	r := bytes.NewReader(raw.Bytes())

	var n, root uint32

	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	if err := binary.Read(r, binary.LittleEndian, &root); err != nil {
		return nil, fmt.Errorf("read snapshot root: %w", err)
	}

	d := &Decoded{Root: root}

	fields := []*[]int32{&d.SegB, &d.SegM, &d.SegE, &d.Left, &d.Right, &d.PolyStat, &d.DiffStat}

	for _, f := range fields {
		*f = make([]int32, n)
		if err := binary.Read(r, binary.LittleEndian, *f); err != nil {
			return nil, fmt.Errorf("read snapshot buffer: %w", err)
		}
	}

	return d, nil
}

// Leaf is one leaf node's Y range and initial per-layer status.
type Leaf struct {
	SegB, SegE             int
	PolyStatus, DiffStatus Status
}

// Leaves returns every leaf node (Left == arena.Nil) in handle order,
// skipping the reserved nil-handle slot at index 0.
func (d *Decoded) Leaves() []Leaf {
	var out []Leaf

	for h := 1; h < len(d.Left); h++ {
		if d.Left[h] != int32(arena.Nil) {
			continue
		}

		out = append(out, Leaf{
			SegB:       int(d.SegB[h]),
			SegE:       int(d.SegE[h]),
			PolyStatus: Status(d.PolyStat[h]),
			DiffStatus: Status(d.DiffStat[h]),
		})
	}

	return out
}

// LeafCount reports how many leaf nodes the snapshot contains.
func (d *Decoded) LeafCount() int {
	return len(d.Leaves())
}
