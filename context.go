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

import "context"

// Handler is the reflection-free dispatch target bound to an Endpoint at registration.
// ctx carries whatever the host needs to thread through — a REPL's live session state,
// a cancellation deadline, request-scoped values — without the core knowing anything
// about its shape (spec §9's "static current REPL context" open question is resolved
// exactly this way: an explicit context argument, not a package-level global).
type Handler func(ctx context.Context, b *Binding) error

// HandlerOf adapts fn into the HandlerID stored on an Endpoint. Register calls it on the
// Handler it is given; callers of Register pass the Handler itself.
func HandlerOf(fn Handler) HandlerID {
	return fn
}

// asHandler recovers the Handler stored in a HandlerID. It panics if id was never
// produced by HandlerOf — a programming error caught long before a real invocation,
// since every Register call in this package funnels through HandlerOf.
func asHandler(id HandlerID) Handler {
	fn, ok := id.(Handler)
	if !ok {
		panic("nuru: endpoint HandlerID does not hold a nuru.Handler; did you bypass HandlerOf?")
	}
	return fn
}
