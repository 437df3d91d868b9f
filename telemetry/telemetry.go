// Package telemetry records how long the phases of a run take.
//
// A Collector travels in the context so the parser, the writer and the
// loader can time their work without taking extra arguments. When no
// collector is installed every call is a no-op.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "parser.parse")
//	timer.Count(63, "records")
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/sie/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	timerKey
)

// Collector hands out timers and prints what they measured.
type Collector interface {
	Start(name string) Timer

	// Report writes the measured phases to w. Styles may be nil for plain
	// text.
	Report(w io.Writer, styles *output.Styles)
}

// Timer measures one phase.
type Timer interface {
	End()

	// Child starts a phase nested under this one.
	Child(name string) Timer

	// Count attaches the amount of work done, such as the number of records
	// read, to the phase.
	Count(n int, unit string)
}

// WithCollector returns a copy of ctx carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector in ctx, or a no-op collector.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noop{}
}

// WithRootTimer returns a copy of ctx in which StartTimer nests under timer.
func WithRootTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, timerKey, timer)
}

// StartTimer starts a phase under the root timer of ctx, or directly on its
// collector when there is no root timer.
func StartTimer(ctx context.Context, name string) Timer {
	if timer, ok := ctx.Value(timerKey).(Timer); ok {
		return timer.Child(name)
	}
	return FromContext(ctx).Start(name)
}
