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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppRegisterBuildMatchDispatch(t *testing.T) {
	app := New()

	var gotEnv string
	_, err := app.Register("deploy {env}", func(ctx context.Context, b *Binding) error {
		gotEnv = b.String("env")
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, app.Build())

	err = app.MatchAndDispatch(context.Background(), []string{"deploy", "staging"})
	require.NoError(t, err)
	assert.Equal(t, "staging", gotEnv)
}

func TestAppCannotRegisterAfterBuild(t *testing.T) {
	app := New()
	_, err := app.Register("status", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.NoError(t, app.Build())

	_, err = app.Register("other", func(ctx context.Context, b *Binding) error { return nil })
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestAppBuildRequiresAtLeastOneEndpoint(t *testing.T) {
	app := New()
	err := app.Build()
	assert.ErrorIs(t, err, ErrNoEndpoints)
}

func TestAppHandlerErrorWraps(t *testing.T) {
	app := New()
	boom := errors.New("boom")
	_, err := app.Register("status", func(ctx context.Context, b *Binding) error { return boom })
	require.NoError(t, err)
	require.NoError(t, app.Build())

	err = app.MatchAndDispatch(context.Background(), []string{"status"})
	require.Error(t, err)
	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, herr, boom)
}

func TestAppDescribeReflectsSortOrder(t *testing.T) {
	app := New()
	noop := func(ctx context.Context, b *Binding) error { return nil }
	_, err := app.Register("deploy {env}", noop)
	require.NoError(t, err)
	_, err = app.Register("deploy production", noop)
	require.NoError(t, err)
	require.NoError(t, app.Build())

	infos := app.Describe()
	require.Len(t, infos, 2)
	assert.Equal(t, "deploy production", infos[0].Pattern)
	assert.Equal(t, "deploy {env}", infos[1].Pattern)
}

func TestAppWithDebugOverridesEnv(t *testing.T) {
	app := New(WithDebug(true))
	var events []NoMatchEvent
	app2 := New(WithDebug(true), WithRecorder(NewRecorderFuncs(RecorderFuncs{
		NoMatch: func(e NoMatchEvent) { events = append(events, e) },
	})))
	_, err := app.Register("status", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.NoError(t, app.Build())

	_, err = app2.Register("status", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.NoError(t, app2.Build())

	_, nm := app2.Match([]string{"unknown"})
	require.NotNil(t, nm)
	// One endpoint rejected: the debug flag adds a per-rejection event on top of the
	// single aggregated nearest-miss event Match always emits.
	assert.Len(t, events, 2)
}

func TestAppEmitsAggregatedNoMatchEventWithoutDebug(t *testing.T) {
	var events []NoMatchEvent
	app := New(WithDebug(false), WithRecorder(NewRecorderFuncs(RecorderFuncs{
		NoMatch: func(e NoMatchEvent) { events = append(events, e) },
	})))
	_, err := app.Register("status", func(ctx context.Context, b *Binding) error { return nil })
	require.NoError(t, err)
	require.NoError(t, app.Build())

	_, nm := app.Match([]string{"unknown"})
	require.NotNil(t, nm)
	require.Len(t, events, 1)
	assert.Equal(t, "status", events[0].Endpoint.Pattern)
}

func TestAppRejectsDuplicateOptionDeclaration(t *testing.T) {
	app := New()
	_, err := app.Register("build --verbose,-v --quiet,-v", func(ctx context.Context, b *Binding) error { return nil })
	require.Error(t, err)
}
