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

import "strings"

// CandidateKind classifies a completion Candidate for display purposes.
type CandidateKind int

const (
	CandidateLiteral CandidateKind = iota
	CandidateOption
	CandidateValue
)

// Candidate is one suggestion the Completion Engine offers for the next token.
type Candidate struct {
	Text        string
	Description string
	Kind        CandidateKind
}

// CompletionEngine implements spec §4.G: given a ParsedInput and the sorted endpoint
// list, produce an ordered, de-duplicated candidate set for the next token.
type CompletionEngine struct {
	registry *TypeConverterRegistry
}

// NewCompletionEngine constructs a CompletionEngine that consults registry for
// enumerable type domains (e.g. bool's true/false).
func NewCompletionEngine(registry *TypeConverterRegistry) *CompletionEngine {
	return &CompletionEngine{registry: registry}
}

// Complete returns candidates for the next token given input and endpoints (already
// sorted by the EndpointCollection).
func (c *CompletionEngine) Complete(endpoints []*Endpoint, input ParsedInput) []Candidate {
	partial := ""
	if input.PartialWord != nil {
		partial = *input.PartialWord
	}

	seen := map[string]bool{}
	var out []Candidate

	add := func(cand Candidate) {
		if seen[cand.Text] {
			return
		}
		if !strings.HasPrefix(cand.Text, partial) {
			return
		}
		// Single-dash short options are only offered once the user has actually
		// started typing a dash, to avoid flooding plain-word completion with flags.
		if cand.Kind == CandidateOption && strings.HasPrefix(cand.Text, "-") && !strings.HasPrefix(cand.Text, "--") {
			if !strings.HasPrefix(partial, "-") {
				return
			}
		}
		seen[cand.Text] = true
		out = append(out, cand)
	}

	for _, ep := range endpoints {
		if !c.endpointConsistentWithPrefix(ep, input.CompletedWords) {
			continue
		}
		i := positionalIndexFor(ep.Compiled, input.CompletedWords)

		if slot, ok := positionalSlotAt(ep.Compiled, i); ok {
			switch m := slot.(type) {
			case LiteralMatcher:
				add(Candidate{Text: m.Value, Kind: CandidateLiteral, Description: ep.Description})
			case ParameterMatcher:
				if vals, ok := c.registry.EnumValues(m.TypeTag); ok {
					for _, v := range vals {
						add(Candidate{Text: v, Kind: CandidateValue})
					}
				}
			}
		}

		consumed := map[*OptionMatcher]bool{}
		for _, word := range input.CompletedWords {
			if word == "--" {
				break
			}
			if !looksLikeOption(word) {
				continue
			}
			if om := findOptionByToken(ep.Compiled, word); om != nil {
				consumed[om] = true
			}
		}

		for _, om := range ep.Compiled.OptionMatchers {
			if consumed[om] && !om.Repeated {
				continue // already given and not repeatable
			}
			if om.LongName != "" {
				add(Candidate{Text: "--" + om.LongName, Kind: CandidateOption, Description: optionDescription(om)})
			}
			if om.ShortName != 0 {
				add(Candidate{Text: "-" + string(rune(om.ShortName)), Kind: CandidateOption, Description: optionDescription(om)})
			}
		}
	}

	return out
}

// endpointConsistentWithPrefix reports whether completed has already been bound, in
// order, against ep's positional matchers (literals must equal exactly; parameters
// always accept any prior word). Options interleaved in completed are ignored here —
// before a "--" word, a word starting with '-' never satisfies a positional slot, and
// neither does the separate value word of an option that takes one, so both are
// skipped when walking positions, matching the matcher's own option/positional
// partition.
func (c *CompletionEngine) endpointConsistentWithPrefix(ep *Endpoint, completed []string) bool {
	positionals := ep.Compiled.PositionalMatchers
	pi := 0
	endOfOptions := false
	for i := 0; i < len(completed); i++ {
		word := completed[i]
		if !endOfOptions && word == "--" {
			endOfOptions = true
			continue
		}
		if !endOfOptions && looksLikeOption(word) {
			om, _, hasAttached, _ := classifyOption(ep.Compiled, word)
			if om == nil && ep.Compiled.CatchAllParameterName == "" {
				return false
			}
			if om != nil && om.Attached != nil && !hasAttached {
				i++ // the next word is this option's value, not a positional
			}
			continue
		}
		if pi >= len(positionals) {
			if ep.Compiled.CatchAllParameterName != "" {
				continue
			}
			return false
		}
		switch m := positionals[pi].(type) {
		case LiteralMatcher:
			if m.Value != word {
				return false
			}
		case ParameterMatcher:
			if m.CatchAll {
				continue // catch-all absorbs everything from here on
			}
		}
		pi++
	}
	return true
}

// positionalIndexFor counts how many positional slots completed has already filled,
// mirroring tryBind's token walk (match.go) so that an option token — and, when it
// takes an attached value supplied as a separate word, the value token right after it —
// is skipped rather than counted as a positional. Callers must already know completed
// is consistent with cr (endpointConsistentWithPrefix), so an unrecognized option token
// here only occurs when a catch-all is absorbing it, matching tryBind's own fallback.
func positionalIndexFor(cr *CompiledRoute, completed []string) int {
	idx := 0
	endOfOptions := false
	for i := 0; i < len(completed); i++ {
		word := completed[i]
		if !endOfOptions && word == "--" {
			endOfOptions = true
			continue
		}
		if !endOfOptions && looksLikeOption(word) {
			om, _, hasAttached, _ := classifyOption(cr, word)
			if om == nil {
				idx++ // absorbed by a catch-all positional
				continue
			}
			if om.Attached != nil && !hasAttached {
				i++ // the next word is this option's value, not a positional
			}
			continue
		}
		idx++
	}
	return idx
}

// positionalSlotAt returns the i-th not-yet-consumed positional matcher, where i comes
// from positionalIndexFor.
func positionalSlotAt(cr *CompiledRoute, i int) (RouteMatcher, bool) {
	if i < 0 {
		return nil, false
	}
	if i < len(cr.PositionalMatchers) {
		return cr.PositionalMatchers[i], true
	}
	if cr.CatchAllParameterName != "" && len(cr.PositionalMatchers) > 0 {
		if last, ok := cr.PositionalMatchers[len(cr.PositionalMatchers)-1].(ParameterMatcher); ok && last.CatchAll {
			return last, true
		}
	}
	return nil, false
}

func findOptionByToken(cr *CompiledRoute, tok string) *OptionMatcher {
	om, _, _, _ := classifyOption(cr, tok)
	return om
}

func optionDescription(om *OptionMatcher) string {
	return ""
}
