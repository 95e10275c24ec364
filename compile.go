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

import "fmt"

// Specificity weights. Only the relative ordering listed in spec §4.C is contractual;
// this concrete scale is the one the spec itself offers as satisfying that ordering.
const (
	weightLiteral       = 100
	weightTypedRequired = 30
	weightRequiredParam = 20
	weightOptionWithArg = 15
	weightOptionalParam = 10
	weightBareOption    = 10
	weightCatchAll      = 1
)

// MessageType is pass-through metadata a help/confirmation layer may use. The matcher
// never reads it.
type MessageType int

const (
	Query MessageType = iota
	Command
	IdempotentCommand
)

func (t MessageType) String() string {
	switch t {
	case Query:
		return "Query"
	case Command:
		return "Command"
	case IdempotentCommand:
		return "IdempotentCommand"
	default:
		return "Unknown"
	}
}

// RouteMatcher is the sealed runtime counterpart of SegmentSyntax, produced by
// compiling an AST segment.
type RouteMatcher interface {
	routeMatcher()
}

// LiteralMatcher requires an argv token to equal Value exactly (ordinal, case-sensitive).
type LiteralMatcher struct {
	Value string
}

func (LiteralMatcher) routeMatcher() {}

// ParameterMatcher consumes one positional argv token (or, if CatchAll, every
// remaining positional token) and converts it via the named TypeTag.
type ParameterMatcher struct {
	Name     string
	TypeTag  string
	Optional bool
	CatchAll bool
}

func (ParameterMatcher) routeMatcher() {}

// OptionMatcher recognizes a `--long`/`-short` occurrence, optionally consuming an
// attached parameter value, optionally allowed to repeat.
type OptionMatcher struct {
	LongName  string
	ShortName byte
	Attached  *ParameterMatcher
	Repeated  bool
}

func (OptionMatcher) routeMatcher() {}

// CompiledRoute is the ordered sequence of RouteMatchers compiled from one
// PatternSyntax, along with the cached projections the Matcher and Completion Engine
// consult on every call.
type CompiledRoute struct {
	Pattern     string
	Matchers    []RouteMatcher
	Specificity int

	// Cached views, consistent with Matchers at all times after compilation.
	PositionalMatchers []RouteMatcher // ParameterMatcher/LiteralMatcher in pattern order
	OptionMatchers     []*OptionMatcher
	RepeatedOptions    map[string]bool // by long name, for options declared repeated

	CatchAllParameterName string // empty if no catch-all
	HasEndOfOptions       bool
}

// CompileError reports a structural AST invariant violation caught at compile time
// (beyond what the parser already rejects — e.g. an unknown type-tag is raised as
// UnknownTypeError, not CompileError, since it requires the registry).
type CompileError struct {
	Pattern string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("nuru: compile error in pattern %q: %s", e.Pattern, e.Message)
}

// CompileRoute walks ast emitting matchers in pattern order and computing Specificity.
// typeTags is the set of type-tags known to the registry at compile time; an unknown
// tag referenced by a parameter is a hard failure (UnknownTypeError), never silently
// treated as "string".
func CompileRoute(ast *PatternSyntax, knownTypeTag func(tag string) bool) (*CompiledRoute, error) {
	cr := &CompiledRoute{
		Pattern:         ast.Source,
		RepeatedOptions: map[string]bool{},
	}

	for _, seg := range ast.Segments {
		switch s := seg.(type) {
		case LiteralSyntax:
			m := LiteralMatcher{Value: s.Text}
			cr.Matchers = append(cr.Matchers, m)
			cr.PositionalMatchers = append(cr.PositionalMatchers, m)
			cr.Specificity += weightLiteral

		case ParameterSyntax:
			if s.TypeTag != "" && knownTypeTag != nil && !knownTypeTag(s.TypeTag) {
				return nil, &UnknownTypeError{Pattern: ast.Source, TypeTag: s.TypeTag}
			}
			m := ParameterMatcher{
				Name:     s.Name,
				TypeTag:  s.TypeTag,
				Optional: s.Optional,
				CatchAll: s.CatchAll,
			}
			cr.Matchers = append(cr.Matchers, m)
			cr.PositionalMatchers = append(cr.PositionalMatchers, m)

			switch {
			case s.CatchAll:
				cr.Specificity += weightCatchAll
				cr.CatchAllParameterName = s.Name
			case s.Optional:
				cr.Specificity += weightOptionalParam
			case s.TypeTag != "":
				cr.Specificity += weightTypedRequired
			default:
				cr.Specificity += weightRequiredParam
			}

		case OptionSyntax:
			if s.Attached != nil && s.Attached.TypeTag != "" && knownTypeTag != nil && !knownTypeTag(s.Attached.TypeTag) {
				return nil, &UnknownTypeError{Pattern: ast.Source, TypeTag: s.Attached.TypeTag}
			}
			om := &OptionMatcher{LongName: s.LongName, ShortName: s.ShortName}
			if s.Attached != nil {
				om.Attached = &ParameterMatcher{
					Name:     s.Attached.Name,
					TypeTag:  s.Attached.TypeTag,
					Optional: s.Attached.Optional,
				}
				cr.Specificity += weightOptionWithArg
			} else {
				cr.Specificity += weightBareOption
			}
			cr.Matchers = append(cr.Matchers, om)
			cr.OptionMatchers = append(cr.OptionMatchers, om)

		case EndOfOptionsSyntax:
			cr.Matchers = append(cr.Matchers, nil) // placeholder kept out of the typed variant set
			cr.HasEndOfOptions = true
		}
	}

	// Drop the EndOfOptions placeholder: the matcher treats end-of-options purely as
	// an argv-side toggle, not something a route matcher binds against.
	if cr.HasEndOfOptions {
		filtered := cr.Matchers[:0:0]
		for _, m := range cr.Matchers {
			if m != nil {
				filtered = append(filtered, m)
			}
		}
		cr.Matchers = filtered
	}

	return cr, nil
}

// MarkRepeated flags longName's OptionMatcher as allowed to occur more than once. This
// is exposed separately from CompileRoute because "repeated" is an attribute the
// embedding application opts an option into after registration (see Endpoint.Repeats),
// not something derivable from the pattern string alone.
func (cr *CompiledRoute) MarkRepeated(longName string) bool {
	for _, om := range cr.OptionMatchers {
		if om.LongName == longName {
			om.Repeated = true
			cr.RepeatedOptions[longName] = true
			return true
		}
	}
	return false
}
