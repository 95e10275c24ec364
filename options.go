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

// AppOption configures an App at construction time, following the teacher's functional
// options pattern (router.Option over *Router).
type AppOption func(*App)

// WithRecorder sets the Recorder the App's lexer, parser, compiler, matcher, and
// completion engine report structured events to. Unset, the App uses a no-op recorder.
//
// Example wiring an OpenTelemetry backend:
//
//	rec, err := otelobs.NewRecorder(tracer, meter)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app := nuru.New(nuru.WithRecorder(rec))
func WithRecorder(r Recorder) AppOption {
	return func(a *App) {
		a.recorder = r
	}
}

// WithDebug overrides the NURU_DEBUG environment toggle, primarily so tests can force
// verbose tracing without mutating process environment.
func WithDebug(enabled bool) AppOption {
	return func(a *App) {
		a.debug = enabled
		a.debugSet = true
	}
}

// WithTypeConverter registers a custom type-tag converter on the App's registry before
// any patterns are compiled, so `{v:tag}` parameters can resolve it at Register time.
func WithTypeConverter(tag string, fn ConverterFunc) AppOption {
	return func(a *App) {
		a.registry.Register(tag, fn)
	}
}

// WithRegistry replaces the App's default TypeConverterRegistry entirely, for callers
// who built one independently (e.g. to share it across multiple Apps).
func WithRegistry(registry *TypeConverterRegistry) AppOption {
	return func(a *App) {
		a.registry = registry
	}
}
