// Command layerArithmetics computes, from a CIF layout file, the polygons
// where the polysilicon and diffusion layers overlap (the transistor
// gates) and the diffusion area that remains outside any gate (pure
// diffusion), writing both back out as CIF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/cif"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/config"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/contour"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/geom"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/observability"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/report"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/segtree"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/sweep"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/viz"
)

// Sentinel errors mapped to distinct exit codes by main.
var (
	ErrInputUnavailable  = errors.New("input file unavailable")
	ErrOutputUnavailable = errors.New("output file unavailable")
	ErrUsage             = errors.New("usage error")
)

const (
	exitOK = iota
	exitUsage
	exitInputUnavailable
	exitOutputUnavailable
	exitMalformedCIF
	exitInternal
)

type flags struct {
	input      string
	interOut   string
	pdiffOut   string
	psOut      string
	configPath string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fl, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		fmt.Fprintln(stdout, err)

		return exitUsage
	}

	cfg, err := config.Load(fl.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitUsage
	}

	providers, err := observability.Init(*cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitInternal
	}

	defer providers.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(providers.Meter)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitInternal
	}

	start := time.Now()

	exitCode := execute(fl, *cfg, providers, metrics, stdout, stderr, start)

	return exitCode
}

func execute(
	fl flags,
	cfg config.Config,
	providers observability.Providers,
	metrics *observability.Metrics,
	stdout, stderr io.Writer,
	start time.Time,
) int {
	ctx := context.Background()

	polys, err := loadInput(fl.input)
	if err != nil {
		providers.Logger.Error("load input", "error", err)
		fmt.Fprintln(stderr, err)

		return classifyExit(err)
	}

	inter, pdiff := computeLayers(ctx, polys, metrics)

	if fl.interOut != "" {
		if err := writeOutput(fl.interOut, inter, nil); err != nil {
			providers.Logger.Error("write intersection output", "error", err)
			fmt.Fprintln(stderr, err)

			return classifyExit(err)
		}
	}

	if fl.pdiffOut != "" {
		if err := writeOutput(fl.pdiffOut, nil, pdiff); err != nil {
			providers.Logger.Error("write pure-diffusion output", "error", err)
			fmt.Fprintln(stderr, err)

			return classifyExit(err)
		}
	}

	if fl.psOut != "" {
		if err := dumpSnapshot(fl.psOut, polys, cfg.Engine.HibernationThresholdNodes, metrics); err != nil {
			providers.Logger.Error("write segment-tree visualization", "error", err)
			fmt.Fprintln(stderr, err)

			return classifyExit(err)
		}
	}

	report.Summary(stdout, inter, pdiff, time.Since(start))

	return exitOK
}

func parseFlags(args []string, stdout io.Writer) (flags, error) {
	fs := flag.NewFlagSet("layerArithmetics", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var fl flags

	fs.StringVar(&fl.input, "input", "", "CIF input file (required)")
	fs.StringVar(&fl.interOut, "inter", "", "CIF output file for the layer intersection")
	fs.StringVar(&fl.pdiffOut, "pdiff", "", "CIF output file for pure diffusion")
	fs.StringVar(&fl.psOut, "ps", "", "HTML file to visualize the initial segment-tree partition")
	fs.StringVar(&fl.configPath, "config", "", "optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}

	if fl.input == "" {
		return flags{}, fmt.Errorf("%w: -input is required", ErrUsage)
	}

	if fl.interOut == "" && fl.pdiffOut == "" {
		return flags{}, fmt.Errorf("%w: at least one of -inter or -pdiff is required", ErrUsage)
	}

	return fl, nil
}

func loadInput(path string) ([]geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInputUnavailable, path, err)
	}
	defer f.Close()

	cmds, err := cif.Lex(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInputUnavailable, path, err)
	}

	polys, err := cif.Parse(cmds)
	if err != nil {
		return nil, err
	}

	return polys, nil
}

func computeLayers(ctx context.Context, polys []geom.Polygon, metrics *observability.Metrics) (inter, pdiff []geom.Polygon) {
	res := sweep.Run(ctx, polys, metrics)

	inter = contour.Reconstruct(ctx, res.Intersection, geom.Polysilicon, metrics)
	pdiff = contour.Reconstruct(ctx, res.PureDiffusion, geom.Diffusion, metrics)

	return inter, pdiff
}

func writeOutput(path string, inter, pdiff []geom.Polygon) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrOutputUnavailable, path, err)
	}
	defer f.Close()

	if err := cif.Write(f, inter, pdiff); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrOutputUnavailable, path, err)
	}

	return nil
}

func dumpSnapshot(path string, polys []geom.Polygon, hibernationThreshold int, metrics *observability.Metrics) error {
	tree := segtree.Build(geom.VerticesY(polys), metrics)

	snapshot, err := tree.Snapshot(hibernationThreshold)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutputUnavailable, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrOutputUnavailable, path, err)
	}
	defer f.Close()

	if err := viz.DumpInitialTree(f, snapshot); err != nil {
		return fmt.Errorf("%w: %s", ErrOutputUnavailable, err)
	}

	return nil
}

func classifyExit(err error) int {
	switch {
	case errors.Is(err, ErrInputUnavailable):
		return exitInputUnavailable
	case errors.Is(err, ErrOutputUnavailable):
		return exitOutputUnavailable
	case errors.Is(err, cif.ErrMalformedCIF):
		return exitMalformedCIF
	case errors.Is(err, ErrUsage):
		return exitUsage
	default:
		return exitInternal
	}
}
