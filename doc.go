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

// Package nuru provides a command-line pattern-routing framework for Go.
//
// An application declares a set of route patterns — small string expressions such as
// "deploy {env} --replicas {n:int}" or "git checkout -- {*files}" — and binds each to a
// handler. At run time nuru parses the pattern set once, then for every invocation
// matches the end-user's argument vector against the patterns, picks the single most
// specific successful match, extracts and converts typed parameters, and dispatches the
// bound handler. It also serves shell completions for partial input lines.
//
// # Pattern syntax
//
// A pattern is a whitespace-separated sequence of segments:
//
//   - a bare identifier is a literal, matched exactly: "deploy"
//   - "{name}" is a required positional parameter
//   - "{name:type}" is a typed positional parameter, converted through a registered
//     type-tag converter ("int", "long", "double", "bool", "string", or a custom tag)
//   - "{name?}" is an optional positional parameter; optional parameters must all come
//     after the required ones
//   - "{*name}" is a catch-all parameter absorbing every remaining positional token; it
//     must be the final positional segment (only options may follow it)
//   - "--long" or "-s" declares an option; "--long,-s" declares both forms for the same
//     option. A bare option is a boolean flag. "--long {value}" declares an option with
//     an attached parameter
//   - a bare "--" is the end-of-options marker: every token after it is positional, even
//     one that looks like an option
//
// # Specificity
//
// When more than one registered pattern could match the same argv, the single most
// specific one wins: a literal segment outweighs a typed parameter, which outweighs an
// untyped parameter, which outweighs an option with an attached value, which outweighs
// an optional parameter or bare option, which outweighs a catch-all. A user-settable
// Order (higher first) is compared before specificity, so a higher Order wins even over
// a more specific route; among routes with equal Order and specificity, registration
// order decides.
//
// # Quick start
//
//	app := nuru.New()
//	app.MustRegister("deploy {env} --replicas {n:int}",
//	    func(ctx context.Context, b *nuru.Binding) error {
//	        n, _ := b.Get("n")
//	        fmt.Printf("deploying %s with %d replicas\n", b.String("env"), n)
//	        return nil
//	    },
//	)
//	if err := app.Build(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.MatchAndDispatch(context.Background(), os.Args[1:]); err != nil {
//	    var nm *nuru.NoMatch
//	    if errors.As(err, &nm) {
//	        fmt.Fprintln(os.Stderr, app.Report(nm).Message)
//	        os.Exit(1)
//	    }
//	    log.Fatal(err)
//	}
//
// # Observability
//
// nuru performs no I/O of its own. Structured events from every pipeline stage are
// offered to an optional Recorder (set with WithRecorder); subpackages obs/otelobs and
// obs/promobs adapt that interface to OpenTelemetry and Prometheus respectively, neither
// of which the core package imports.
package nuru
