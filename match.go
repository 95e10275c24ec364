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
	"fmt"
	"strings"
)

// RejectionKind categorizes why one endpoint's TryBind failed.
type RejectionKind int

const (
	ReasonLiteralMismatch RejectionKind = iota
	ReasonUnknownOption
	ReasonMissingOption
	ReasonDuplicateOption
	ReasonMissingParameter
	ReasonConvertFailure
	ReasonSurplusTokens
)

func (k RejectionKind) String() string {
	switch k {
	case ReasonLiteralMismatch:
		return "literal mismatch"
	case ReasonUnknownOption:
		return "unknown option"
	case ReasonMissingOption:
		return "missing required option"
	case ReasonDuplicateOption:
		return "option repeated without being declared repeatable"
	case ReasonMissingParameter:
		return "missing required parameter"
	case ReasonConvertFailure:
		return "conversion failure"
	case ReasonSurplusTokens:
		return "surplus tokens"
	default:
		return "rejected"
	}
}

// RejectionReason explains why one Endpoint's TryBind rejected argv.
type RejectionReason struct {
	Endpoint          *Endpoint
	Kind              RejectionKind
	Message           string
	FailingTokenIndex int // index into argv of the first failing token, -1 if not applicable
	PrefixMatched     int // number of leading argv tokens successfully consumed before failing
	Cause             error
}

// NoMatch is returned when no endpoint binds argv. It carries every endpoint's
// rejection reason so the Error Reporter can pick the nearest miss.
type NoMatch struct {
	Argv       []string
	Rejections []RejectionReason
}

func (n *NoMatch) Error() string {
	return fmt.Sprintf("nuru: no route matched %q (%d candidates rejected)", strings.Join(n.Argv, " "), len(n.Rejections))
}

// Binding is the result of a successful match: the selected endpoint plus every named
// value the pattern declared. Values are one of: a converted scalar, a raw string
// ("string"-tagged or untyped parameters), []string (a catch-all parameter or an
// untyped/string-typed repeated option's accumulated values), []any (a typed repeated
// option's accumulated, per-occurrence converted values), or bool (a bare option's
// presence flag). Absent optional parameters and absent option values are represented
// by the key simply not being present in Values (distinguishable from an empty string);
// bare options always have an entry, false when the option was not given, per the
// Handler contract.
type Binding struct {
	Endpoint *Endpoint
	Values   map[string]any
}

// Get returns the bound value for name and whether it was present.
func (b *Binding) Get(name string) (any, bool) {
	v, ok := b.Values[name]
	return v, ok
}

// String returns the bound value for name as a string, or "" if absent or not a string.
func (b *Binding) String(name string) string {
	if v, ok := b.Values[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Bool returns the bound value for name as a bool (bare-option presence), or false.
func (b *Binding) Bool(name string) bool {
	if v, ok := b.Values[name]; ok {
		if v, ok := v.(bool); ok {
			return v
		}
	}
	return false
}

// StringSlice returns the bound value for name as []string (catch-all or repeated
// option), or nil.
func (b *Binding) StringSlice(name string) []string {
	if v, ok := b.Values[name]; ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

// Matcher implements spec §4.F: given an ordered endpoint list and an argv, find the
// first endpoint whose TryBind succeeds.
type Matcher struct {
	registry *TypeConverterRegistry
	onReject func(ep *Endpoint, reason RejectionReason) // set when NURU_DEBUG is enabled
}

// NewMatcher constructs a Matcher that converts typed parameters through registry.
func NewMatcher(registry *TypeConverterRegistry) *Matcher {
	return &Matcher{registry: registry}
}

// Match iterates endpoints in D's sorted order and returns the first endpoint whose
// TryBind succeeds, or a NoMatch carrying every rejection.
func (m *Matcher) Match(endpoints []*Endpoint, argv []string) (*Binding, *NoMatch) {
	var rejections []RejectionReason
	for _, ep := range endpoints {
		binding, reason := m.tryBind(ep, argv)
		if reason == nil {
			return binding, nil
		}
		if m.onReject != nil {
			m.onReject(ep, *reason)
		}
		rejections = append(rejections, *reason)
	}
	return nil, &NoMatch{Argv: argv, Rejections: rejections}
}

// optionOccurrence records one recognized option token.
type optionOccurrence struct {
	matcher    *OptionMatcher
	value      string // only meaningful if matcher.Attached != nil
	valueIndex int    // index into argv of the token that supplied value
}

// tryBind implements the five-step algorithm from spec §4.F for a single endpoint.
func (m *Matcher) tryBind(ep *Endpoint, argv []string) (*Binding, *RejectionReason) {
	cr := ep.Compiled

	var positionals []string
	positionalTokenIndex := map[int]int{} // index within positionals -> index within argv
	occurrences := map[string][]optionOccurrence{}

	endOfOptions := false
	i := 0
	for i < len(argv) {
		tok := argv[i]

		if !endOfOptions && tok == "--" {
			endOfOptions = true
			i++
			continue
		}

		if !endOfOptions && looksLikeOption(tok) {
			om, attachedVal, hasAttached, longForm := classifyOption(cr, tok)
			if om == nil {
				if cr.CatchAllParameterName != "" {
					positionalTokenIndex[len(positionals)] = i
					positionals = append(positionals, tok)
					i++
					continue
				}
				return nil, &RejectionReason{
					Endpoint: ep, Kind: ReasonUnknownOption, FailingTokenIndex: i,
					PrefixMatched: i,
					Message:       fmt.Sprintf("unrecognized option %q", tok),
				}
			}

			canon := canonicalOptionName(om)

			if om.Attached == nil {
				if hasAttached {
					return nil, &RejectionReason{
						Endpoint: ep, Kind: ReasonUnknownOption, FailingTokenIndex: i,
						PrefixMatched: i,
						Message:       fmt.Sprintf("option %q takes no value", tok),
					}
				}
				occurrences[canon] = append(occurrences[canon], optionOccurrence{matcher: om})
				i++
				continue
			}

			var val string
			valIdx := i
			if hasAttached {
				val = attachedVal
				i++
			} else if longForm {
				if i+1 >= len(argv) {
					return nil, &RejectionReason{
						Endpoint: ep, Kind: ReasonMissingParameter, FailingTokenIndex: i,
						PrefixMatched: i,
						Message:       fmt.Sprintf("option %q expects a value", tok),
					}
				}
				val = argv[i+1]
				valIdx = i + 1
				i += 2
			} else {
				if i+1 >= len(argv) {
					return nil, &RejectionReason{
						Endpoint: ep, Kind: ReasonMissingParameter, FailingTokenIndex: i,
						PrefixMatched: i,
						Message:       fmt.Sprintf("option %q expects a value", tok),
					}
				}
				val = argv[i+1]
				valIdx = i + 1
				i += 2
			}
			occurrences[canon] = append(occurrences[canon], optionOccurrence{matcher: om, value: val, valueIndex: valIdx})
			continue
		}

		positionalTokenIndex[len(positionals)] = i
		positionals = append(positionals, tok)
		i++
	}

	// Step 2: enforce option occurrence constraints.
	for _, om := range cr.OptionMatchers {
		canon := canonicalOptionName(om)
		occ := occurrences[canon]
		bareBoolean := om.Attached == nil
		optionalAttached := om.Attached != nil && om.Attached.Optional
		required := !bareBoolean && !optionalAttached

		if !om.Repeated && len(occ) > 1 {
			return nil, &RejectionReason{
				Endpoint: ep, Kind: ReasonDuplicateOption, FailingTokenIndex: -1,
				Message: fmt.Sprintf("option %q given more than once but is not repeatable", optionDisplayName(om)),
			}
		}
		if len(occ) == 0 && required {
			return nil, &RejectionReason{
				Endpoint: ep, Kind: ReasonMissingOption, FailingTokenIndex: -1,
				Message: fmt.Sprintf("missing required option %q", optionDisplayName(om)),
			}
		}
	}

	// Step 3: bind positionals against PositionalMatchers in order.
	values := map[string]any{}
	pi := 0
	for _, rm := range cr.PositionalMatchers {
		switch pm := rm.(type) {
		case LiteralMatcher:
			if pi >= len(positionals) {
				return nil, &RejectionReason{
					Endpoint: ep, Kind: ReasonMissingParameter, FailingTokenIndex: -1,
					PrefixMatched: len(argv), Message: fmt.Sprintf("missing literal %q", pm.Value),
				}
			}
			if positionals[pi] != pm.Value {
				return nil, &RejectionReason{
					Endpoint: ep, Kind: ReasonLiteralMismatch,
					FailingTokenIndex: positionalTokenIndex[pi],
					PrefixMatched:     positionalTokenIndex[pi],
					Message:           fmt.Sprintf("expected %q, found %q", pm.Value, positionals[pi]),
				}
			}
			pi++

		case ParameterMatcher:
			if pm.CatchAll {
				tail := append([]string(nil), positionals[pi:]...)
				values[pm.Name] = tail
				pi = len(positionals)
				continue
			}

			if pi >= len(positionals) {
				if pm.Optional {
					continue
				}
				return nil, &RejectionReason{
					Endpoint: ep, Kind: ReasonMissingParameter, FailingTokenIndex: -1,
					PrefixMatched: len(argv), Message: fmt.Sprintf("missing required parameter %q", pm.Name),
				}
			}

			raw := positionals[pi]
			if pm.TypeTag != "" && pm.TypeTag != "string" {
				converted, err := m.registry.Convert(pm.Name, pm.TypeTag, raw)
				if err != nil {
					return nil, &RejectionReason{
						Endpoint: ep, Kind: ReasonConvertFailure,
						FailingTokenIndex: positionalTokenIndex[pi],
						PrefixMatched:     positionalTokenIndex[pi],
						Message:           err.Error(),
						Cause:             err,
					}
				}
				values[pm.Name] = converted
			} else {
				values[pm.Name] = raw
			}
			pi++
		}
	}

	// Step 4: reject on surplus.
	if pi < len(positionals) && cr.CatchAllParameterName == "" {
		return nil, &RejectionReason{
			Endpoint: ep, Kind: ReasonSurplusTokens,
			FailingTokenIndex: positionalTokenIndex[pi],
			PrefixMatched:     positionalTokenIndex[pi],
			Message:           fmt.Sprintf("unexpected argument %q", positionals[pi]),
		}
	}

	// Step 5: fold in options.
	for _, om := range cr.OptionMatchers {
		canon := canonicalOptionName(om)
		occ := occurrences[canon]
		name := optionBindingName(om)

		if om.Attached == nil {
			values[name] = len(occ) > 0
			continue
		}

		if om.Repeated {
			var vals []string
			for _, o := range occ {
				vals = append(vals, o.value)
			}
			if vals != nil {
				converted, failAt, err := convertOptionValues(m.registry, om.Attached, vals)
				if err != nil {
					return nil, &RejectionReason{
						Endpoint: ep, Kind: ReasonConvertFailure,
						Message: err.Error(), Cause: err,
						FailingTokenIndex: occ[failAt].valueIndex,
						PrefixMatched:     occ[failAt].valueIndex,
					}
				}
				values[om.Attached.Name] = converted
			}
			continue
		}

		if len(occ) == 1 {
			raw := occ[0].value
			if om.Attached.TypeTag != "" && om.Attached.TypeTag != "string" {
				converted, err := m.registry.Convert(om.Attached.Name, om.Attached.TypeTag, raw)
				if err != nil {
					return nil, &RejectionReason{
						Endpoint: ep, Kind: ReasonConvertFailure,
						Message: err.Error(), Cause: err,
						FailingTokenIndex: occ[0].valueIndex,
						PrefixMatched:     occ[0].valueIndex,
					}
				}
				values[om.Attached.Name] = converted
			} else {
				values[om.Attached.Name] = raw
			}
		}
	}

	return &Binding{Endpoint: ep, Values: values}, nil
}

// convertOptionValues converts a repeated option's accumulated raw values in order
// (SPEC_FULL.md §4.F/§7: "each subject to the same conversion rules as a non-repeated
// option of that type"), mirroring the non-repeated path above. Untyped and
// "string"-tagged parameters are returned unconverted as []string; any other type tag
// is converted per occurrence through registry and returned as []any, failing the
// whole option on the first occurrence that does not convert and reporting that
// occurrence's position within vals.
func convertOptionValues(registry *TypeConverterRegistry, pm *ParameterMatcher, vals []string) (any, int, error) {
	if pm.TypeTag == "" || pm.TypeTag == "string" {
		return vals, -1, nil
	}
	out := make([]any, len(vals))
	for i, raw := range vals {
		converted, err := registry.Convert(pm.Name, pm.TypeTag, raw)
		if err != nil {
			return nil, i, err
		}
		out[i] = converted
	}
	return out, -1, nil
}

// looksLikeOption reports whether tok has the shape of an option occurrence (starts
// with a dash, but is not the bare end-of-options "--").
func looksLikeOption(tok string) bool {
	return len(tok) > 1 && tok[0] == '-' && tok != "--"
}

// classifyOption finds the OptionMatcher tok refers to, if any, splitting a
// "--name=value" token before dispatch regardless of whether the option declares an
// attached parameter (this module's resolution of the open question in spec §9).
func classifyOption(cr *CompiledRoute, tok string) (om *OptionMatcher, value string, hasValue bool, isLong bool) {
	if strings.HasPrefix(tok, "--") {
		rest := tok[2:]
		name := rest
		if idx := strings.IndexByte(rest, '='); idx >= 0 {
			name = rest[:idx]
			value = rest[idx+1:]
			hasValue = true
		}
		for _, m := range cr.OptionMatchers {
			if m.LongName == name {
				return m, value, hasValue, true
			}
		}
		return nil, "", false, true
	}

	// single leading dash: no clustering, so only a single-character name can match.
	shortName := tok[1:]
	if len(shortName) == 1 {
		for _, m := range cr.OptionMatchers {
			if m.ShortName == shortName[0] {
				return m, "", false, false
			}
		}
	}
	return nil, "", false, false
}

func canonicalOptionName(om *OptionMatcher) string {
	if om.LongName != "" {
		return "--" + om.LongName
	}
	return string(rune(om.ShortName))
}

func optionDisplayName(om *OptionMatcher) string {
	if om.LongName != "" {
		return "--" + om.LongName
	}
	return "-" + string(rune(om.ShortName))
}

// optionBindingName is the key a bare option's boolean presence flag is stored under.
func optionBindingName(om *OptionMatcher) string {
	if om.LongName != "" {
		return om.LongName
	}
	return string(rune(om.ShortName))
}
