// Copyright 2026 The Nuru Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package otelobs adapts nuru's Recorder interface to OpenTelemetry tracing and
// metrics, the way rivaas-dev-rivaas's tracing and metrics packages wrap the same SDKs
// around HTTP request handling. Nothing in the core nuru package imports this package;
// an embedding application opts in by calling NewRecorder and passing the result to
// nuru.WithRecorder.
package otelobs

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nuru-cli/nuru"
)

// Recorder emits one span per Match/Complete call and increments a result-partitioned
// counter, mirroring rivaas-dev-rivaas/tracing's span-per-request model applied to a
// single in-process routing decision instead of an HTTP round trip.
type Recorder struct {
	tracer      trace.Tracer
	matchCount  metric.Int64Counter
	matchMillis metric.Float64Histogram
}

// NewRecorder builds a Recorder that creates spans via tracer and records counts and
// durations via meter. Either may be a no-op implementation (e.g. from
// go.opentelemetry.io/otel's global no-op provider) if the embedding application has not
// wired a real SDK yet.
func NewRecorder(tracer trace.Tracer, meter metric.Meter) (*Recorder, error) {
	count, err := meter.Int64Counter("nuru.match.count",
		metric.WithDescription("number of argv match attempts, partitioned by result"))
	if err != nil {
		return nil, err
	}
	millis, err := meter.Float64Histogram("nuru.match.duration_ms",
		metric.WithDescription("wall-clock duration of a single match attempt, in milliseconds"))
	if err != nil {
		return nil, err
	}
	return &Recorder{tracer: tracer, matchCount: count, matchMillis: millis}, nil
}

func (r *Recorder) OnLex(nuru.LexEvent)         {}
func (r *Recorder) OnParse(nuru.ParseEvent)     {}
func (r *Recorder) OnCompile(nuru.CompileEvent) {}

func (r *Recorder) OnMatch(e nuru.MatchEvent) {
	ctx := context.Background()
	_, span := r.tracer.Start(ctx, "nuru.match")
	defer span.End()

	pattern := ""
	if e.Endpoint != nil {
		pattern = e.Endpoint.Pattern
	}
	span.SetAttributes(
		attribute.String("endpoint.pattern", pattern),
		attribute.String("match.result", "hit"),
	)
	span.SetStatus(codes.Ok, "")

	r.matchCount.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "hit")))
	r.matchMillis.Record(ctx, float64(e.Elapsed)/1e6, metric.WithAttributes(attribute.String("result", "hit")))
}

func (r *Recorder) OnNoMatch(e nuru.NoMatchEvent) {
	ctx := context.Background()
	_, span := r.tracer.Start(ctx, "nuru.match")
	defer span.End()

	pattern := ""
	if e.Endpoint != nil {
		pattern = e.Endpoint.Pattern
	}
	span.SetAttributes(
		attribute.String("endpoint.pattern", pattern),
		attribute.String("match.result", "miss"),
		attribute.String("match.rejection_kind", e.Reason.Kind.String()),
		attribute.Int("match.failing_token_index", e.FailingTokenIndex),
	)
	span.AddEvent(e.Reason.Message)

	r.matchCount.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "miss")))
}

func (r *Recorder) OnComplete(e nuru.CompleteEvent) {
	ctx := context.Background()
	_, span := r.tracer.Start(ctx, "nuru.complete")
	defer span.End()
	span.SetAttributes(
		attribute.Int("complete.candidate_count", e.Candidates),
		attribute.Int("complete.line_length", len(e.Line)),
	)
}
