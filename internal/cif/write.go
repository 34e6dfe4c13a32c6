package cif

import (
	"bufio"
	"fmt"
	"io"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
)

// Write emits the fixed CIF output grammar: a header, one symbol
// definition holding every polygon from inter followed by pdiff, a layer
// line whenever the layer changes, then the closing DF and E.
func Write(w io.Writer, inter, pdiff []geom.Polygon) error {
	bw := bufio.NewWriter(w)

	if _, err := io.WriteString(bw, "4 1000;\n"); err != nil {
		return fmt.Errorf("write CIF header: %w", err)
	}

	if _, err := io.WriteString(bw, "DS 1;\n"); err != nil {
		return fmt.Errorf("write CIF symbol header: %w", err)
	}

	var lastLayer geom.Layer

	first := true

	for _, set := range [][]geom.Polygon{inter, pdiff} {
		for _, p := range set {
			if first || p.Layer != lastLayer {
				if _, err := fmt.Fprintf(bw, "L %s;\n", p.Layer); err != nil {
					return fmt.Errorf("write CIF layer line: %w", err)
				}

				lastLayer = p.Layer
				first = false
			}

			if err := writePolygon(bw, p); err != nil {
				return fmt.Errorf("write CIF polygon: %w", err)
			}
		}
	}

	if _, err := io.WriteString(bw, "DF;\nE\n"); err != nil {
		return fmt.Errorf("write CIF footer: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush CIF output: %w", err)
	}

	return nil
}

func writePolygon(w *bufio.Writer, p geom.Polygon) error {
	if _, err := io.WriteString(w, "P"); err != nil {
		return err
	}

	for _, pt := range p.Points {
		if _, err := fmt.Fprintf(w, " %d %d", pt.X, pt.Y); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, ";\n")

	return err
}
