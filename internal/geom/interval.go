package geom

// MergeIntervals consumes a sequence that alternates start, end, start,
// end, ... and collapses adjacent equal boundaries: if the previous end
// equals the next start, both vanish. This is deliberately NOT general
// interval union — it exploits that the segment tree's content queries
// already return a pre-ordered sequence whose boundaries coincide only at
// exact touch points. Runs in O(n).
func MergeIntervals(flat []int) []int {
	if len(flat) == 0 {
		return nil
	}

	merged := make([]int, 0, len(flat))

	for _, v := range flat {
		if n := len(merged); n > 0 && merged[n-1] == v {
			merged = merged[:n-1]

			continue
		}

		merged = append(merged, v)
	}

	return merged
}

// SortBoundaryPolygon normalizes a four-corner rectangle to the
// counter-clockwise, left-bottom-start point order used throughout this
// package.
func SortBoundaryPolygon(layer Layer, xMin, yMin, xMax, yMax int) Polygon {
	return Polygon{
		Layer: layer,
		Points: []Point{
			{X: xMin, Y: yMin},
			{X: xMin, Y: yMax},
			{X: xMax, Y: yMax},
			{X: xMax, Y: yMin},
		},
	}
}
