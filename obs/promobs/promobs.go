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

// Package promobs adapts nuru's Recorder interface to Prometheus metrics, mirroring
// rivaas-dev-rivaas/metrics's use of client_golang CounterVec/HistogramVec registered
// against a caller-supplied registry.
package promobs

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nuru-cli/nuru"
)

// Recorder tracks match outcome counts and durations as Prometheus vectors partitioned
// by result ("hit"/"miss"). Durations are observed for hits only: NoMatchEvent carries
// no elapsed time.
type Recorder struct {
	matchTotal    *prometheus.CounterVec
	matchDuration *prometheus.HistogramVec
}

// NewRecorder registers nuru_match_total and nuru_match_duration_seconds against reg and
// returns a Recorder that updates them. Registering against the caller's own
// *prometheus.Registry (rather than the global default) matches the teacher's
// per-component registry convention, so embedding multiple nuru Apps in one process
// does not collide on metric names.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nuru_match_total",
		Help: "Total number of argv match attempts, partitioned by result.",
	}, []string{"result"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nuru_match_duration_seconds",
		Help:    "Duration of a single match attempt, in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	if err := reg.Register(total); err != nil {
		return nil, err
	}
	if err := reg.Register(duration); err != nil {
		return nil, err
	}

	return &Recorder{matchTotal: total, matchDuration: duration}, nil
}

func (r *Recorder) OnLex(nuru.LexEvent)         {}
func (r *Recorder) OnParse(nuru.ParseEvent)     {}
func (r *Recorder) OnCompile(nuru.CompileEvent) {}

func (r *Recorder) OnMatch(e nuru.MatchEvent) {
	r.matchTotal.WithLabelValues("hit").Inc()
	r.matchDuration.WithLabelValues("hit").Observe(float64(e.Elapsed) / 1e9)
}

func (r *Recorder) OnNoMatch(e nuru.NoMatchEvent) {
	r.matchTotal.WithLabelValues("miss").Inc()
}

func (r *Recorder) OnComplete(nuru.CompleteEvent) {}
