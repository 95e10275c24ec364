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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioStatusDeployExec exercises the R1/R2/R3 table from the concrete-scenario
// list: a bare literal, an untyped parameter plus an option with a typed attached
// value, a convert failure on that value, and a catch-all tail.
func TestScenarioStatusDeployExec(t *testing.T) {
	app := New()
	noop := func(ctx context.Context, b *Binding) error { return nil }
	_, err := app.Register("status", noop)
	require.NoError(t, err)
	_, err = app.Register("deploy {env} --replicas {n:int}", noop)
	require.NoError(t, err)
	_, err = app.Register("exec {*cmd}", noop)
	require.NoError(t, err)
	require.NoError(t, app.Build())

	binding, nm := app.Match([]string{"status"})
	require.Nil(t, nm)
	assert.Equal(t, "status", binding.Endpoint.Pattern)
	assert.Empty(t, binding.Values)

	binding, nm = app.Match([]string{"deploy", "prod", "--replicas", "3"})
	require.Nil(t, nm)
	assert.Equal(t, "prod", binding.String("env"))
	n, _ := binding.Get("n")
	assert.Equal(t, 3, n)

	_, nm = app.Match([]string{"deploy", "prod", "--replicas", "x"})
	require.NotNil(t, nm)
	found := false
	for _, rej := range nm.Rejections {
		if rej.Kind == ReasonConvertFailure {
			found = true
		}
	}
	assert.True(t, found)

	// spec.md's illustrative argv ["run","a","-b"] omits R3's required leading literal
	// "exec"; see DESIGN.md's "Spec scenario note" for why the tested argv includes it.
	binding, nm = app.Match([]string{"exec", "run", "a", "-b"})
	require.Nil(t, nm)
	assert.Equal(t, []string{"run", "a", "-b"}, binding.StringSlice("cmd"))
}

// TestScenarioEndOfOptionsSuppressesOptionInterpretation covers invariant 6.
func TestScenarioEndOfOptionsSuppressesOptionInterpretation(t *testing.T) {
	app := New()
	_, err := app.Register("git checkout -- {file}", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.NoError(t, app.Build())

	binding, nm := app.Match([]string{"git", "checkout", "--", "-f"})
	require.Nil(t, nm)
	assert.Equal(t, "-f", binding.String("file"))
}

// TestScenarioLiteralBeatsParameter covers invariant 2/specificity ordering end to end.
func TestScenarioLiteralBeatsParameter(t *testing.T) {
	app := New()
	noop := func(ctx context.Context, b *Binding) error { return nil }
	_, err := app.Register("build", noop)
	require.NoError(t, err)
	_, err = app.Register("{cmd}", noop)
	require.NoError(t, err)
	require.NoError(t, app.Build())

	binding, nm := app.Match([]string{"build"})
	require.Nil(t, nm)
	assert.Equal(t, "build", binding.Endpoint.Pattern)
}

// TestScenarioOptionOrderIndependence covers invariant 3 (determinism) together with the
// spec's explicit "both orderings produce the same binding" example.
func TestScenarioOptionOrderIndependence(t *testing.T) {
	app := New()
	_, err := app.Register("serve --port {p:int} --verbose,-v", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.NoError(t, app.Build())

	a, nmA := app.Match([]string{"serve", "--port", "80", "-v"})
	b, nmB := app.Match([]string{"serve", "-v", "--port", "80"})
	require.Nil(t, nmA)
	require.Nil(t, nmB)
	assert.Equal(t, a.Values, b.Values)
}

// TestScenarioCompletionPrefixing covers invariant 7 at a surface level: candidates for
// "d" narrow to endpoints whose first positional segment starts with "d".
func TestScenarioCompletionPrefixing(t *testing.T) {
	app := New()
	noop := func(ctx context.Context, b *Binding) error { return nil }
	_, err := app.Register("deploy {env}", noop)
	require.NoError(t, err)
	_, err = app.Register("destroy {env}", noop)
	require.NoError(t, err)
	_, err = app.Register("status", noop)
	require.NoError(t, err)
	require.NoError(t, app.Build())

	cands := app.Complete("d")
	texts := candidateTexts(cands)
	assert.Equal(t, []string{"deploy", "destroy"}, texts)
}

// TestScenarioRepeatedOptionAccumulates mirrors the spec's tag/--label table row.
func TestScenarioRepeatedOptionAccumulates(t *testing.T) {
	app := New()
	ep, err := app.Register("tag --label {l}", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.True(t, ep.Repeats("label"))
	require.NoError(t, app.Build())

	binding, nm := app.Match([]string{"tag", "--label", "a", "--label", "b"})
	require.Nil(t, nm)
	assert.Equal(t, []string{"a", "b"}, binding.StringSlice("l"))
}
