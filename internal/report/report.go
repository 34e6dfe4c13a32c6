// Package report renders the post-run summary the CLI prints after a
// successful pass: per-layer polygon/edge/vertex counts and the elapsed
// wall time, as a go-pretty table plus a humanized duration.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
)

// LayerCounts holds the shape counts for one output layer.
type LayerCounts struct {
	Layer    geom.Layer
	Polygons int
	Edges    int
	Vertices int
}

// countLayer tallies polys into a LayerCounts. All polys must share Layer.
func countLayer(layer geom.Layer, polys []geom.Polygon) LayerCounts {
	c := LayerCounts{Layer: layer, Polygons: len(polys)}

	for _, p := range polys {
		c.Vertices += len(p.Points)
		c.Edges += len(p.Points)
	}

	return c
}

// Summary writes a go-pretty table of per-layer counts for the intersection
// and pure-diffusion outputs, followed by the elapsed wall time rendered
// with humanize.RelTime.
func Summary(w io.Writer, inter, pdiff []geom.Polygon, elapsed time.Duration) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Output", "Layer", "Polygons", "Edges", "Vertices"})

	interCounts := countLayer(geom.Polysilicon, inter)
	pdiffCounts := countLayer(geom.Diffusion, pdiff)

	tbl.AppendRow(table.Row{"intersection", interCounts.Layer, interCounts.Polygons, interCounts.Edges, interCounts.Vertices})
	tbl.AppendRow(table.Row{"pure-diffusion", pdiffCounts.Layer, pdiffCounts.Polygons, pdiffCounts.Edges, pdiffCounts.Vertices})

	total := interCounts.Polygons + pdiffCounts.Polygons
	tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("Total: %d", total), "", ""})

	tbl.Render()

	fmt.Fprintf(w, "elapsed: %s (%s)\n",
		humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""), elapsed)
}
