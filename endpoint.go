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

import "sort"

// HandlerID identifies a registered handler without the core needing to know its
// invocation mechanism (spec §1: "the core only guarantees it calls one handler with
// bound arguments"). Embedding applications may use an index into their own dispatch
// table, a generated thunk ID, or a closure's address — whatever fits.
type HandlerID any

// Endpoint pairs a compiled route with its handler reference. Endpoints are created
// during registration, sealed (their sort position frozen) when the App is built, and
// read-only thereafter — following the teacher's deferred-registration Route builder.
type Endpoint struct {
	Pattern     string
	Compiled    *CompiledRoute
	Handler     HandlerID
	Order       int
	Description string
	MessageType MessageType

	index int // insertion index, set by the EndpointCollection at Add time
}

// Repeats marks longName's OptionMatcher on this endpoint as allowed to occur more
// than once in argv, accumulating its values into an ordered list. It returns false if
// the endpoint declares no option under that long name.
func (e *Endpoint) Repeats(longName string) bool {
	return e.Compiled.MarkRepeated(longName)
}

// WithOrder overrides the default order (0), which Sort compares before specificity,
// following the teacher's fluent-setter convention. It returns the receiver for chaining.
func (e *Endpoint) WithOrder(order int) *Endpoint {
	e.Order = order
	return e
}

// WithDescription sets the endpoint's description, surfaced through Describe() for
// help rendering.
func (e *Endpoint) WithDescription(desc string) *Endpoint {
	e.Description = desc
	return e
}

// WithMessageType sets the pass-through message-type label (spec §3): the matcher
// never predicates behavior on it.
func (e *Endpoint) WithMessageType(t MessageType) *Endpoint {
	e.MessageType = t
	return e
}

// EndpointCollection is an append-only list of endpoints during registration. Sort is
// called exactly once when the App is built; afterward the collection is read-only and
// its iteration order is the Matcher's search order. It is not safe for concurrent
// writes; reads are safe after the build freeze (spec §4.D, §5).
type EndpointCollection struct {
	endpoints []*Endpoint
	sorted    bool
}

// Add appends ep to the collection, assigning it the next insertion index. Add panics
// if called after Sort, since registration-after-freeze is a programming error the
// caller should catch long before it reaches production.
func (c *EndpointCollection) Add(ep *Endpoint) {
	if c.sorted {
		panic("nuru: cannot register an endpoint after the collection has been sorted")
	}
	ep.index = len(c.endpoints)
	c.endpoints = append(c.endpoints, ep)
}

// Len returns the number of registered endpoints.
func (c *EndpointCollection) Len() int {
	return len(c.endpoints)
}

// Sort freezes the collection's order as (order desc, specificity desc, insertion-index
// asc) — spec §3's EndpointCollection contract — and must be called exactly once.
// Calling it again is a no-op re-sort over the same stable key, which is harmless but
// unnecessary.
func (c *EndpointCollection) Sort() {
	sort.SliceStable(c.endpoints, func(i, j int) bool {
		a, b := c.endpoints[i], c.endpoints[j]
		if a.Order != b.Order {
			return a.Order > b.Order
		}
		if a.Compiled.Specificity != b.Compiled.Specificity {
			return a.Compiled.Specificity > b.Compiled.Specificity
		}
		return a.index < b.index
	})
	c.sorted = true
}

// All returns the endpoints in Matcher search order. It must only be called after Sort.
func (c *EndpointCollection) All() []*Endpoint {
	return c.endpoints
}
