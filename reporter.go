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

// Report is a rendered NoMatch explanation: the single nearest-miss rejection plus a
// caret-pointer snippet of argv, in the style the parser uses for pattern syntax errors.
type Report struct {
	Argv      []string
	Nearest   *RejectionReason
	Message   string
	Snippet   string
	Ambiguous bool // true if multiple rejections tied for nearest
}

// ErrorReporter turns a NoMatch into a single human-facing Report by picking whichever
// rejection matched the longest argv prefix before failing (spec §4.I/§8: "the reporter
// surfaces the rejection with the greatest PrefixMatched as the most likely intended
// route").
type ErrorReporter struct{}

// NewErrorReporter returns an ErrorReporter. It carries no state: reporting is a pure
// function of a NoMatch value.
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// Report selects the nearest-miss rejection from nm and renders it with a caret
// pointing at the failing argv token.
func (r *ErrorReporter) Report(nm *NoMatch) *Report {
	if nm == nil || len(nm.Rejections) == 0 {
		return &Report{Argv: nm.argvOrNil(), Message: "no route matched and no candidates were registered"}
	}

	best := nm.Rejections[0]
	ambiguous := false
	for _, rej := range nm.Rejections[1:] {
		if rej.PrefixMatched > best.PrefixMatched {
			best = rej
			ambiguous = false
		} else if rej.PrefixMatched == best.PrefixMatched && rej.Endpoint.Pattern != best.Endpoint.Pattern {
			ambiguous = true
		}
	}

	rep := &Report{
		Argv:      nm.Argv,
		Nearest:   &best,
		Message:   fmt.Sprintf("%s (closest candidate: %q)", best.Message, best.Endpoint.Pattern),
		Ambiguous: ambiguous,
	}
	rep.Snippet = renderCaretLine(nm.Argv, best.FailingTokenIndex)
	return rep
}

// argvOrNil guards against a nil NoMatch reaching Report's Sprintf path.
func (nm *NoMatch) argvOrNil() []string {
	if nm == nil {
		return nil
	}
	return nm.Argv
}

// renderCaretLine draws a two-line snippet: the joined argv tokens, and a caret under
// the token at failIndex. failIndex < 0 means no single token is at fault (e.g. a
// missing required option or parameter at end of input), in which case the caret points
// past the last token.
func renderCaretLine(argv []string, failIndex int) string {
	if len(argv) == 0 {
		return "  --> (empty argv)\n   | \n   | ^"
	}

	var line strings.Builder
	offsets := make([]int, len(argv))
	col := 0
	for i, tok := range argv {
		offsets[i] = col
		line.WriteString(tok)
		col += len(tok)
		if i != len(argv)-1 {
			line.WriteString(" ")
			col++
		}
	}

	caretCol := col
	if failIndex >= 0 && failIndex < len(offsets) {
		caretCol = offsets[failIndex]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  --> argv:%d\n", caretCol+1)
	b.WriteString("   | " + line.String() + "\n")
	b.WriteString("   | " + strings.Repeat(" ", caretCol) + "^")
	return b.String()
}
