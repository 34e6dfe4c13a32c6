// Package observability provides the engine's structured logging and
// in-process metrics, scoped to what a single-shot, single-threaded CLI run
// can exercise: no tracing, no OTLP export, just a meter wired to the
// Prometheus exporter and a slog.Logger.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics records sweep/segment-tree activity counters. A nil *Metrics is
// legal everywhere it is accepted and silently skips recording.
type Metrics struct {
	nodesVisited  metric.Int64Counter
	edgesSwept    metric.Int64Counter
	polysEmitted  metric.Int64Counter
}

// NewMetrics creates a Metrics bound to the given meter. Pass
// noop.NewMeterProvider().Meter("") (via Init with metrics disabled) to get
// a Metrics whose instruments record nothing but never panic.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	nodesVisited, err := meter.Int64Counter(
		"layerarith.segtree.nodes_visited",
		metric.WithDescription("segment tree nodes visited during insert/remove"),
	)
	if err != nil {
		return nil, fmt.Errorf("create nodes_visited counter: %w", err)
	}

	edgesSwept, err := meter.Int64Counter(
		"layerarith.sweep.edges_processed",
		metric.WithDescription("vertical edges processed by the sweep engine"),
	)
	if err != nil {
		return nil, fmt.Errorf("create edges_processed counter: %w", err)
	}

	polysEmitted, err := meter.Int64Counter(
		"layerarith.contour.polygons_emitted",
		metric.WithDescription("closed polygons emitted by the contour reconstructor"),
	)
	if err != nil {
		return nil, fmt.Errorf("create polygons_emitted counter: %w", err)
	}

	return &Metrics{
		nodesVisited: nodesVisited,
		edgesSwept:   edgesSwept,
		polysEmitted: polysEmitted,
	}, nil
}

// NodeVisited records one segment-tree node visit. Nil-safe.
func (m *Metrics) NodeVisited(ctx context.Context) {
	if m == nil {
		return
	}

	m.nodesVisited.Add(ctx, 1)
}

// EdgeSwept records one vertical edge processed by the sweep engine. Nil-safe.
func (m *Metrics) EdgeSwept(ctx context.Context) {
	if m == nil {
		return
	}

	m.edgesSwept.Add(ctx, 1)
}

// PolygonsEmitted records n closed polygons emitted. Nil-safe.
func (m *Metrics) PolygonsEmitted(ctx context.Context, n int) {
	if m == nil {
		return
	}

	m.polysEmitted.Add(ctx, int64(n))
}
