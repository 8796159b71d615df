// Copyright 2026 EngFlow Inc. All rights reserved.
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

package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-tools/rapify/pkg/resolver"
)

func preprocessText(t *testing.T, source string, res resolver.Resolver) string {
	t.Helper()
	if res == nil {
		res = resolver.Memory{}
	}
	tokens, err := Preprocess(source, "test.cpp", "", res)
	require.NoError(t, err)
	return renderText(tokens)
}

func TestMacroTableMonotonicity(t *testing.T) {
	out := preprocessText(t, "#define X 1\n#undef X\nX\n", nil)
	assert.Contains(t, out, "X")
	assert.NotContains(t, out, "1")
}

func TestIfdefUndefinedTableUnchanged(t *testing.T) {
	out := preprocessText(t, "#ifdef X\n#define Y 2\ny = 1;\n#endif\nY\n", nil)
	assert.NotContains(t, out, "y")
	assert.NotContains(t, out, "2")
	assert.Contains(t, out, "Y")
}

func TestIfStackBalance(t *testing.T) {
	_, err := Preprocess("#ifdef X\ny = 1;\n", "test.cpp", "", resolver.Memory{})
	require.Error(t, err)
	ppErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "UnterminatedIf", ppErr.Kind)
}

func TestMismatchedEndifErrors(t *testing.T) {
	_, err := Preprocess("#endif\n", "test.cpp", "", resolver.Memory{})
	require.Error(t, err)
}

func TestExpansionIdempotenceSelfReferential(t *testing.T) {
	out := preprocessText(t, "#define A A\nA\n", nil)
	assert.Equal(t, "A\n", out)
}

func TestFunctionLikeMacro(t *testing.T) {
	out := preprocessText(t, "#define SQ(x) (x)*(x)\nvalue = SQ(3);\n", nil)
	assert.Contains(t, out, "value = (3)*(3);")
}

func TestConditionalWithElse(t *testing.T) {
	out := preprocessText(t, "#define A\n#ifdef A\nx = 1;\n#else\nx = 2;\n#endif\n", nil)
	assert.Contains(t, out, "x = 1;")
	assert.NotContains(t, out, "x = 2;")
}

func TestConditionalWithoutDefine(t *testing.T) {
	out := preprocessText(t, "#ifdef A\nx = 1;\n#else\nx = 2;\n#endif\n", nil)
	assert.Contains(t, out, "x = 2;")
	assert.NotContains(t, out, "x = 1;")
}

func TestNestedConditionalWhilePassing(t *testing.T) {
	out := preprocessText(t, "#ifdef MISSING\n#ifdef A\nx = 1;\n#endif\ny = 2;\n#endif\nz = 3;\n", nil)
	assert.NotContains(t, out, "x = 1;")
	assert.NotContains(t, out, "y = 2;")
	assert.Contains(t, out, "z = 3;")
}

func TestIncludeResolution(t *testing.T) {
	res := resolver.Memory{"inner.hpp": "y = 5;"}
	out := preprocessText(t, `#include "inner.hpp"`+"\n", res)
	assert.Contains(t, out, "y = 5;")
}

func TestIncludeSharesMacroTable(t *testing.T) {
	res := resolver.Memory{"defs.hpp": "#define GREETING 1\n"}
	out := preprocessText(t, `#include "defs.hpp"`+"\nGREETING\n", res)
	assert.Contains(t, out, "1")
}

func TestStringifyArgument(t *testing.T) {
	out := preprocessText(t, "#define STR(x) #x\nvalue = STR(hello);\n", nil)
	assert.Contains(t, out, `"hello"`)
}

func TestArgCountMismatch(t *testing.T) {
	_, err := Preprocess("#define ADD(a,b) a+b\nADD(1);\n", "test.cpp", "", resolver.Memory{})
	require.Error(t, err)
	ppErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "ArgCountMismatch", ppErr.Kind)
	assert.Equal(t, 2, ppErr.Expected)
	assert.Equal(t, 1, ppErr.Actual)
}

func TestUnknownDirectiveWhilePassingIsSilent(t *testing.T) {
	out := preprocessText(t, "#ifdef MISSING\n#bogus thing\n#endif\nz = 1;\n", nil)
	assert.Contains(t, out, "z = 1;")
}

func TestPositionRoundTrip(t *testing.T) {
	source := "class Foo { x = 1; };\n"
	tokens, err := Preprocess(source, "test.cpp", "", resolver.Memory{})
	require.NoError(t, err)
	assert.Equal(t, source, renderText(tokens))
}
