// Package viz renders the initial segment-tree partition captured right
// after Build (before any insert/remove) to a self-contained HTML file,
// using go-echarts. It is a diagnostic aid, outside the core arithmetic:
// useful for visually checking the Y-coordinate partition the sweep is
// about to run over.
package viz

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/segtree"
)

// DumpInitialTree decodes snapshot (as produced by Tree.Snapshot
// immediately after Build) and renders one bar chart to w, with one series
// per layer showing each leaf segment's initial status and the segment
// boundaries as the X-axis labels.
func DumpInitialTree(w io.Writer, snapshot []byte) error {
	decoded, err := segtree.DecodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("decode segment-tree snapshot: %w", err)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Segment Tree — Initial Partition",
			Subtitle: fmt.Sprintf("%d leaf segments", decoded.LeafCount()),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Y range"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "status"}),
	)

	labels, poly, diff := leafSeries(decoded)

	bar.SetXAxis(labels)
	bar.AddSeries("polysilicon", poly)
	bar.AddSeries("diffusion", diff)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render segment-tree chart: %w", err)
	}

	return nil
}

func leafSeries(decoded *segtree.Decoded) (labels []string, poly, diff []opts.BarData) {
	leaves := decoded.Leaves()

	labels = make([]string, len(leaves))
	poly = make([]opts.BarData, len(leaves))
	diff = make([]opts.BarData, len(leaves))

	for i, leaf := range leaves {
		labels[i] = strconv.Itoa(leaf.SegB) + "-" + strconv.Itoa(leaf.SegE)
		poly[i] = opts.BarData{Value: int(leaf.PolyStatus)}
		diff[i] = opts.BarData{Value: int(leaf.DiffStatus)}
	}

	return labels, poly, diff
}
