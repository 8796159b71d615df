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

package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-tools/rapify/internal/ast"
	"github.com/arma-tools/rapify/internal/parser"
	"github.com/arma-tools/rapify/internal/render"
)

func simplify(t *testing.T, text string) Config {
	t.Helper()
	node, err := parser.Parse(render.Result{Text: text, LineMap: render.LineMap{}}, "test.cpp")
	require.NoError(t, err)
	cfg, err := Simplify(node, "test.cpp")
	require.NoError(t, err)
	return cfg
}

func TestSimplifyTrivialScalar(t *testing.T) {
	cfg := simplify(t, "value = 123;\n")
	require.Len(t, cfg.Body, 1)
	val, ok := cfg.Body[0].(Value)
	require.True(t, ok)
	assert.Equal(t, "value", val.Name)
	assert.Equal(t, Int{Value: 123}, val.Value)
}

func TestSimplifyBoolCoercesToInt(t *testing.T) {
	cfg := simplify(t, "value = true;\n")
	val := cfg.Body[0].(Value)
	assert.Equal(t, Int{Value: 1}, val.Value)
}

func TestSimplifyIdentCoercesToStr(t *testing.T) {
	cfg := simplify(t, "value = SomeIdent;\n")
	val := cfg.Body[0].(Value)
	assert.Equal(t, Str{Value: "SomeIdent"}, val.Value)
}

func TestSimplifyStringUnquotesAndUnescapes(t *testing.T) {
	cfg := simplify(t, `value = "a\nb\"c";` + "\n")
	val := cfg.Body[0].(Value)
	assert.Equal(t, Str{Value: "a\nb\"c"}, val.Value)
}

func TestSimplifyClassWithInheritance(t *testing.T) {
	cfg := simplify(t, "class Base { x = 1; };\nclass Derived : Base { y = 2; };\n")
	require.Len(t, cfg.Body, 2)

	base, ok := cfg.Body[0].(Class)
	require.True(t, ok)
	assert.Equal(t, "Base", base.Name)
	assert.Equal(t, "", base.Parent)
	require.Len(t, base.Body, 1)
	assert.Equal(t, Value{Name: "x", Value: Int{Value: 1}}, base.Body[0])

	derived, ok := cfg.Body[1].(Class)
	require.True(t, ok)
	assert.Equal(t, "Derived", derived.Name)
	assert.Equal(t, "Base", derived.Parent)
}

func TestSimplifyClassDefAndDelete(t *testing.T) {
	cfg := simplify(t, "class Forward;\ndelete Gone;\n")
	require.Len(t, cfg.Body, 2)
	assert.Equal(t, ExternClass{Name: "Forward"}, cfg.Body[0])
	assert.Equal(t, DeleteClass{Name: "Gone"}, cfg.Body[1])
}

func TestSimplifyNameUniquenessLastWins(t *testing.T) {
	cfg := simplify(t, "value = 1;\nother = 9;\nvalue = 2;\n")
	require.Len(t, cfg.Body, 2, "value's second assignment overwrites in place, it does not append")
	assert.Equal(t, Value{Name: "value", Value: Int{Value: 2}}, cfg.Body[0])
	assert.Equal(t, Value{Name: "other", Value: Int{Value: 9}}, cfg.Body[1])
}

func TestSimplifyArrayExpansionOnFreshName(t *testing.T) {
	cfg := simplify(t, "items[] += {1,2};\n")
	require.Len(t, cfg.Body, 1)
	val := cfg.Body[0].(Value)
	assert.Equal(t, "items", val.Name)
	arr, ok := val.Value.(Array)
	require.True(t, ok)
	assert.True(t, arr.Expand)
	assert.Equal(t, []Rapified{Int{Value: 1}, Int{Value: 2}}, arr.Values)
}

func TestSimplifyNestedArray(t *testing.T) {
	cfg := simplify(t, `value = {1, "two", {3, 4}};` + "\n")
	val := cfg.Body[0].(Value)
	arr := val.Value.(Array)
	require.Len(t, arr.Values, 3)
	assert.Equal(t, Int{Value: 1}, arr.Values[0])
	assert.Equal(t, Str{Value: "two"}, arr.Values[1])
	inner, ok := arr.Values[2].(Array)
	require.True(t, ok)
	assert.Equal(t, []Rapified{Int{Value: 3}, Int{Value: 4}}, inner.Values)
}

func TestSimplifyRejectsNonArrayExpand(t *testing.T) {
	node, err := parser.Parse(render.Result{Text: "value[] += 1;\n"}, "test.cpp")
	require.NoError(t, err)
	_, err = Simplify(node, "test.cpp")
	require.Error(t, err)
}

func TestSimplifyRejectsNonConfigRoot(t *testing.T) {
	_, err := Simplify(ast.Node{Statement: ast.Integer{Value: 1}}, "test.cpp")
	require.Error(t, err)
}
