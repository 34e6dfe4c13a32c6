package cif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
)

// Parse interprets the lexed command stream, producing the polygons it
// describes. L sets the current layer; P emits a polygon on it (or, inside
// a DS...DF block, captures the symbol's first P as a reusable shape); C
// instantiates a captured symbol with an optional translation and axis
// mirrors. Every other command is ignored. Parsing stops at the first E.
func Parse(cmds []Command) ([]geom.Polygon, error) {
	var (
		polys        []geom.Polygon
		currentLayer geom.Layer
		symbols      = map[int]geom.Polygon{}
		inSymbol     bool
		symbolNum    int
		symbolSet    bool
	)

	for _, cmd := range cmds {
		switch cmd.Op {
		case "L":
			if len(cmd.Fields) > 0 {
				currentLayer = geom.Layer(cmd.Fields[0])
			}

		case "DS":
			inSymbol = true
			symbolSet = false
			symbolNum, _ = strconv.Atoi(firstField(cmd.Fields))

		case "DF":
			if inSymbol && !symbolSet {
				return nil, fmt.Errorf("%w: DS %d has no valid P", ErrMalformedCIF, symbolNum)
			}

			inSymbol = false

		case "P":
			pts, err := parseRectPoints(cmd.Fields)
			if err != nil {
				return nil, err
			}

			if inSymbol {
				if !symbolSet {
					symbols[symbolNum] = geom.Polygon{Layer: currentLayer, Points: pts}
					symbolSet = true
				}

				continue
			}

			polys = append(polys, geom.Polygon{Layer: currentLayer, Points: pts})

		case "C":
			poly, ok := instantiate(symbols, cmd.Fields)
			if ok {
				polys = append(polys, poly)
			}

		case "E":
			return polys, nil
		}
	}

	return polys, nil
}

func firstField(fields []string) string {
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

func parseRectPoints(fields []string) ([]geom.Point, error) {
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: P command has an odd coordinate count", ErrMalformedCIF)
	}

	if len(fields) < 6 {
		return nil, fmt.Errorf("%w: P command needs at least 6 coordinates", ErrMalformedCIF)
	}

	pts := make([]geom.Point, len(fields)/2)

	for i := range pts {
		x, xerr := strconv.Atoi(fields[2*i])
		y, yerr := strconv.Atoi(fields[2*i+1])

		if xerr != nil || yerr != nil {
			return nil, fmt.Errorf("%w: non-integer coordinate in P command", ErrMalformedCIF)
		}

		pts[i] = geom.Point{X: x, Y: y}
	}

	return pts, nil
}

// instantiate expands symbol fields[0] (a C command's symbol number) with
// the optional "T dx dy", "MX", "MY" modifiers that follow, in whatever
// order they appear. Mirrors apply to each coordinate before translation.
// An unknown symbol number is tolerated (CIF ignores malformed C targets
// rather than erroring).
func instantiate(symbols map[int]geom.Polygon, fields []string) (geom.Polygon, bool) {
	if len(fields) == 0 {
		return geom.Polygon{}, false
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return geom.Polygon{}, false
	}

	sym, ok := symbols[n]
	if !ok {
		return geom.Polygon{}, false
	}

	var dx, dy int

	var mirrorX, mirrorY bool

	rest := fields[1:]
	for i := 0; i < len(rest); i++ {
		switch strings.ToUpper(rest[i]) {
		case "T":
			if i+2 < len(rest) {
				dx, _ = strconv.Atoi(rest[i+1])
				dy, _ = strconv.Atoi(rest[i+2])
				i += 2
			}
		case "MX":
			mirrorX = true
		case "MY":
			mirrorY = true
		}
	}

	pts := make([]geom.Point, len(sym.Points))

	for i, p := range sym.Points {
		x, y := p.X, p.Y
		if mirrorX {
			x = -x
		}

		if mirrorY {
			y = -y
		}

		pts[i] = geom.Point{X: x + dx, Y: y + dy}
	}

	return geom.Polygon{Layer: sym.Layer, Points: pts}, true
}
