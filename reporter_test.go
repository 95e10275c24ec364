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

func TestErrorReporterPicksNearestMiss(t *testing.T) {
	app := New()
	noop := func(ctx context.Context, b *Binding) error { return nil }
	_, err := app.Register("deploy {env} --replicas {n:int}", noop)
	require.NoError(t, err)
	_, err = app.Register("rollback {env}", noop)
	require.NoError(t, err)
	require.NoError(t, app.Build())

	_, nm := app.Match([]string{"deploy", "staging", "--replicas", "nope"})
	require.NotNil(t, nm)

	rep := app.Report(nm)
	require.NotNil(t, rep.Nearest)
	assert.Equal(t, "deploy {env} --replicas {n:int}", rep.Nearest.Endpoint.Pattern)
	assert.Contains(t, rep.Message, "deploy {env} --replicas {n:int}")
	assert.Contains(t, rep.Snippet, "^")
}

func TestErrorReporterEmptyNoMatch(t *testing.T) {
	r := NewErrorReporter()
	rep := r.Report(&NoMatch{Argv: []string{"x"}})
	assert.Nil(t, rep.Nearest)
	assert.NotEmpty(t, rep.Message)
}
