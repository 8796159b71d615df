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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-tools/rapify/internal/ast"
	"github.com/arma-tools/rapify/internal/render"
)

func parse(t *testing.T, text string) ast.Config {
	t.Helper()
	node, err := Parse(render.Result{Text: text, LineMap: render.LineMap{}}, "test.cpp")
	require.NoError(t, err)
	cfg, ok := node.Statement.(ast.Config)
	require.True(t, ok)
	return cfg
}

func TestParseTrivialScalar(t *testing.T) {
	cfg := parse(t, "value = 123;\n")
	require.Len(t, cfg.Children, 1)
	prop, ok := cfg.Children[0].Statement.(ast.Property)
	require.True(t, ok)
	assert.Equal(t, "value", prop.Ident.Statement.(ast.Ident).Value)
	assert.Equal(t, int64(123), prop.Value.Statement.(ast.Integer).Value)
	assert.False(t, prop.Expand)
}

func TestParseHexInteger(t *testing.T) {
	cfg := parse(t, "value = 0x10;\n")
	prop := cfg.Children[0].Statement.(ast.Property)
	assert.Equal(t, int64(16), prop.Value.Statement.(ast.Integer).Value)
}

func TestParseNegativeFloat(t *testing.T) {
	cfg := parse(t, "value = -1.5;\n")
	prop := cfg.Children[0].Statement.(ast.Property)
	assert.Equal(t, -1.5, prop.Value.Statement.(ast.Float).Value)
}

func TestParseClassWithInheritance(t *testing.T) {
	cfg := parse(t, "class Base { x = 1; };\nclass Derived : Base { y = 2; };\n")
	require.Len(t, cfg.Children, 2)

	base := cfg.Children[0].Statement.(ast.Class)
	assert.Equal(t, "Base", base.Ident.Statement.(ast.Ident).Value)
	assert.Nil(t, base.Extends)

	derived := cfg.Children[1].Statement.(ast.Class)
	assert.Equal(t, "Derived", derived.Ident.Statement.(ast.Ident).Value)
	require.NotNil(t, derived.Extends)
	assert.Equal(t, "Base", derived.Extends.Statement.(ast.Ident).Value)
}

func TestParseClassDef(t *testing.T) {
	cfg := parse(t, "class Forward;\n")
	def := cfg.Children[0].Statement.(ast.ClassDef)
	assert.Equal(t, "Forward", def.Ident.Statement.(ast.Ident).Value)
}

func TestParseClassDelete(t *testing.T) {
	cfg := parse(t, "delete Foo;\n")
	del := cfg.Children[0].Statement.(ast.ClassDelete)
	assert.Equal(t, "Foo", del.Ident.Statement.(ast.Ident).Value)
}

func TestParsePropExpand(t *testing.T) {
	cfg := parse(t, `items[] += {"a", "b"};` + "\n")
	prop := cfg.Children[0].Statement.(ast.Property)
	assert.True(t, prop.Expand)
	arr := prop.Value.Statement.(ast.Array)
	require.Len(t, arr.Elems, 2)
	assert.Equal(t, `"a"`, arr.Elems[0].Statement.(ast.Str).Value)
}

func TestParseArrayOfValues(t *testing.T) {
	cfg := parse(t, "values[] = {1, 2.5, \"x\", true, ident};\n")
	prop := cfg.Children[0].Statement.(ast.Property)
	arr := prop.Value.Statement.(ast.Array)
	require.Len(t, arr.Elems, 5)
	assert.Equal(t, int64(1), arr.Elems[0].Statement.(ast.Integer).Value)
	assert.Equal(t, 2.5, arr.Elems[1].Statement.(ast.Float).Value)
	assert.Equal(t, `"x"`, arr.Elems[2].Statement.(ast.Str).Value)
	assert.Equal(t, true, arr.Elems[3].Statement.(ast.Bool).Value)
	assert.Equal(t, "ident", arr.Elems[4].Statement.(ast.Ident).Value)
}

func TestParseCommentsAreSkipped(t *testing.T) {
	cfg := parse(t, "// comment\nvalue = 1; /* trailing */\n")
	require.Len(t, cfg.Children, 1)
}

func TestParseFunctionLikeMacroResultRejected(t *testing.T) {
	_, err := Parse(render.Result{Text: "value = (3)*(3);\n", LineMap: render.LineMap{}}, "test.cpp")
	require.Error(t, err)
}

func TestParseErrorIncludesPosition(t *testing.T) {
	_, err := Parse(render.Result{Text: "value = ;\n", LineMap: render.LineMap{}}, "test.cpp")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.NotEmpty(t, perr.Message)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 9, perr.Col)
}
