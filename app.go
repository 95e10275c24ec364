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

package nuru

import (
	"context"
	"time"
)

// EndpointInfo is the read-only projection of a registered Endpoint surfaced by
// Describe, for a host's help-rendering layer (spec §6, surface 6).
type EndpointInfo struct {
	Pattern     string
	Description string
	MessageType MessageType
	Order       int
}

// App wires the lexer, parser, compiler, endpoint collection, matcher, and completion
// engine together behind the six-surface CLI contract from spec §6. It follows the
// teacher's Router: build once with functional options, register endpoints, Build()
// freezes the collection, then Match/Complete/Describe are safe for concurrent use.
type App struct {
	registry   *TypeConverterRegistry
	endpoints  *EndpointCollection
	matcher    *Matcher
	completion *CompletionEngine
	reporter   *ErrorReporter
	recorder   Recorder

	debug    bool
	debugSet bool
	built    bool
}

// New constructs an App. Patterns cannot be registered against a shared
// TypeConverterRegistry passed via WithRegistry after this call without also passing
// WithRegistry — New always starts from a fresh built-in registry otherwise.
func New(opts ...AppOption) *App {
	a := &App{
		registry:  NewTypeConverterRegistry(),
		endpoints: &EndpointCollection{},
		reporter:  NewErrorReporter(),
		recorder:  defaultRecorder,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register compiles pattern and adds a new Endpoint bound to handler (spec §6,
// surfaces 1–2: registration plus the fluent Endpoint setters for order/description/
// message-type). It returns the Endpoint so the caller can chain WithOrder,
// WithDescription, WithMessageType. Register must not be called after Build.
func (a *App) Register(pattern string, handler Handler) (*Endpoint, error) {
	if a.built {
		return nil, ErrAlreadyBuilt
	}
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	toks, err := Tokenize(pattern)
	a.recorder.OnLex(LexEvent{Pattern: pattern, TokenCount: len(toks)})
	if err != nil {
		a.recorder.OnParse(ParseEvent{Pattern: pattern, Err: err})
		return nil, err
	}

	syntax, err := ParsePattern(pattern)
	a.recorder.OnParse(ParseEvent{Pattern: pattern, Err: err})
	if err != nil {
		return nil, err
	}

	cr, err := CompileRoute(syntax, a.registry.Has)
	a.recorder.OnCompile(CompileEvent{Pattern: pattern, Err: err, Specificity: specificityOrZero(cr)})
	if err != nil {
		return nil, err
	}

	if err := validateNoDuplicateOptions(cr); err != nil {
		return nil, err
	}

	ep := &Endpoint{
		Pattern:  pattern,
		Compiled: cr,
		Handler:  HandlerOf(handler),
	}
	a.endpoints.Add(ep)
	return ep, nil
}

// MustRegister is Register but panics on error, for static registration lists executed
// at program startup where an invalid pattern is a build-time bug, not a runtime
// condition to recover from.
func (a *App) MustRegister(pattern string, handler Handler) *Endpoint {
	ep, err := a.Register(pattern, handler)
	if err != nil {
		panic(err)
	}
	return ep
}

// Build freezes endpoint registration, sorts the collection into Matcher search order,
// and resolves the NURU_DEBUG toggle unless WithDebug already overrode it (spec §6,
// surface 3). Build must be called exactly once, after every Register call and before
// any Match or Complete call.
func (a *App) Build() error {
	if a.built {
		return ErrAlreadyBuilt
	}
	if a.endpoints.Len() == 0 {
		return ErrNoEndpoints
	}

	if !a.debugSet {
		a.debug = debugFromEnv()
	}

	a.endpoints.Sort()
	a.matcher = NewMatcher(a.registry)
	if a.debug {
		// Extra per-rejection volume on top of the single aggregated NoMatchEvent that
		// Match always emits via recordNoMatch, matching SPEC_FULL.md §4.L: one
		// OnNoMatch event per rejected endpoint, in addition to the aggregated report.
		a.matcher.onReject = func(ep *Endpoint, reason RejectionReason) {
			a.recorder.OnNoMatch(NoMatchEvent{
				Endpoint:          ep,
				Reason:            reason,
				FailingTokenIndex: reason.FailingTokenIndex,
			})
		}
	}
	a.completion = NewCompletionEngine(a.registry)
	a.built = true
	return nil
}

// Match runs argv against the built endpoint collection and returns the winning Binding,
// or a NoMatch carrying every rejection (spec §6, surface 4, matching half). It requires
// Build to have already run.
func (a *App) Match(argv []string) (*Binding, *NoMatch) {
	if !a.built {
		return nil, &NoMatch{Argv: argv, Rejections: []RejectionReason{{Message: ErrNotBuilt.Error()}}}
	}
	start := time.Now()
	binding, nm := a.matcher.Match(a.endpoints.All(), argv)
	if nm == nil {
		a.recorder.OnMatch(MatchEvent{Argv: argv, Endpoint: binding.Endpoint, Elapsed: time.Since(start).Nanoseconds()})
		return binding, nil
	}
	a.recordNoMatch(nm)
	return nil, nm
}

// recordNoMatch always emits one aggregated NoMatchEvent carrying the nearest-miss
// rejection (SPEC_FULL.md §4.L: the baseline path still reports the single aggregated
// report regardless of NURU_DEBUG). The per-rejection volume on top of that is gated
// behind the debug flag via the Matcher.onReject hook wired in Build.
func (a *App) recordNoMatch(nm *NoMatch) {
	rep := a.reporter.Report(nm)
	event := NoMatchEvent{Argv: nm.Argv}
	if rep.Nearest != nil {
		event.Endpoint = rep.Nearest.Endpoint
		event.Reason = *rep.Nearest
		event.FailingTokenIndex = rep.Nearest.FailingTokenIndex
	}
	a.recorder.OnNoMatch(event)
}

// Dispatch invokes the handler bound to binding.Endpoint with ctx and binding (spec §6,
// surface 4, dispatch half). Any error the handler returns propagates to the caller
// wrapped in HandlerError; a panic in the handler is not recovered. The core never
// interprets the error, matching spec §1's
// "handler invocation mechanism itself" exclusion beyond "call one handler with bound
// arguments".
func (a *App) Dispatch(ctx context.Context, binding *Binding) error {
	fn := asHandler(binding.Endpoint.Handler)
	if err := fn(ctx, binding); err != nil {
		return &HandlerError{Endpoint: binding.Endpoint, Cause: err}
	}
	return nil
}

// MatchAndDispatch combines Match and Dispatch, returning the NoMatch unchanged (wrapped
// as an error) when nothing binds. This is the single call a thin host main() needs for
// the whole pattern→match→dispatch pipeline (spec §6, surface 4 as originally phrased).
func (a *App) MatchAndDispatch(ctx context.Context, argv []string) error {
	binding, nm := a.Match(argv)
	if nm != nil {
		return nm
	}
	return a.Dispatch(ctx, binding)
}

// Complete returns shell-completion candidates for line (spec §6, surface 5). It
// requires Build to have already run.
func (a *App) Complete(line string) []Candidate {
	if !a.built {
		return nil
	}
	input := ParseInput(line)
	candidates := a.completion.Complete(a.endpoints.All(), input)
	a.recorder.OnComplete(CompleteEvent{Line: line, Candidates: len(candidates)})
	return candidates
}

// Describe returns every registered endpoint's public metadata in Matcher search order
// (spec §6, surface 6). It requires Build to have already run, since order is only
// meaningful once frozen.
func (a *App) Describe() []EndpointInfo {
	if !a.built {
		return nil
	}
	all := a.endpoints.All()
	out := make([]EndpointInfo, len(all))
	for i, ep := range all {
		out[i] = EndpointInfo{
			Pattern:     ep.Pattern,
			Description: ep.Description,
			MessageType: ep.MessageType,
			Order:       ep.Order,
		}
	}
	return out
}

// Report renders a NoMatch through the App's ErrorReporter, the convenience a host main
// calls when MatchAndDispatch returns a *NoMatch.
func (a *App) Report(nm *NoMatch) *Report {
	return a.reporter.Report(nm)
}

func specificityOrZero(cr *CompiledRoute) int {
	if cr == nil {
		return 0
	}
	return cr.Specificity
}

// validateNoDuplicateOptions rejects a pattern that declares the same option (by long or
// short name) more than once, since the matcher's occurrence map is keyed by canonical
// name and a duplicate declaration can never be told apart at bind time.
func validateNoDuplicateOptions(cr *CompiledRoute) error {
	seenLong := map[string]bool{}
	seenShort := map[byte]bool{}
	for _, om := range cr.OptionMatchers {
		if om.LongName != "" {
			if seenLong[om.LongName] {
				return ErrDuplicateOption
			}
			seenLong[om.LongName] = true
		}
		if om.ShortName != 0 {
			if seenShort[om.ShortName] {
				return ErrDuplicateOption
			}
			seenShort[om.ShortName] = true
		}
	}
	return nil
}
