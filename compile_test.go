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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string, known func(string) bool) *CompiledRoute {
	t.Helper()
	ast, err := ParsePattern(pattern)
	require.NoError(t, err)
	cr, err := CompileRoute(ast, known)
	require.NoError(t, err)
	return cr
}

func TestCompileRouteSpecificityOrdering(t *testing.T) {
	knownAll := func(string) bool { return true }

	literalOnly := mustCompile(t, "status", knownAll)
	typedParam := mustCompile(t, "{n:int}", knownAll)
	untypedParam := mustCompile(t, "{name}", knownAll)
	optionWithArg := mustCompile(t, "--replicas {n:int}", knownAll)
	optionalParam := mustCompile(t, "{name?}", knownAll)
	bareOption := mustCompile(t, "--verbose", knownAll)
	catchAll := mustCompile(t, "{*cmd}", knownAll)

	assert.Greater(t, literalOnly.Specificity, typedParam.Specificity)
	assert.Greater(t, typedParam.Specificity, untypedParam.Specificity)
	assert.Greater(t, untypedParam.Specificity, optionWithArg.Specificity)
	assert.Greater(t, optionWithArg.Specificity, optionalParam.Specificity)
	assert.Equal(t, optionalParam.Specificity, bareOption.Specificity)
	assert.Greater(t, bareOption.Specificity, catchAll.Specificity)
}

func TestCompileRouteUnknownTypeTag(t *testing.T) {
	ast, err := ParsePattern("deploy {n:frobnicate}")
	require.NoError(t, err)

	_, err = CompileRoute(ast, func(tag string) bool { return tag == "int" })
	require.Error(t, err)
	var uerr *UnknownTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "frobnicate", uerr.TypeTag)
}

func TestCompileRouteMarkRepeated(t *testing.T) {
	cr := mustCompile(t, "build --tag {t}", func(string) bool { return true })
	require.True(t, cr.MarkRepeated("tag"))
	assert.True(t, cr.RepeatedOptions["tag"])
	assert.False(t, cr.MarkRepeated("nonexistent"))
}

func TestCompileRouteCatchAllName(t *testing.T) {
	cr := mustCompile(t, "git checkout -- {*files}", func(string) bool { return true })
	assert.Equal(t, "files", cr.CatchAllParameterName)
	assert.True(t, cr.HasEndOfOptions)
	for _, m := range cr.Matchers {
		assert.NotNil(t, m)
	}
}
