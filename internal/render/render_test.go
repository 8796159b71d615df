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

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-tools/rapify/internal/lexer"
)

func TestRenderFlattensText(t *testing.T) {
	source := "x = 1;\n"
	tokens, err := lexer.Tokenize(source, "test.cpp")
	require.NoError(t, err)

	result := Render(tokens)
	assert.Equal(t, source, result.Text)
}

func TestRenderLineMapOrigin(t *testing.T) {
	tokens, err := lexer.Tokenize("value = 1;\n", "test.cpp")
	require.NoError(t, err)

	result := Render(tokens)
	path, line, col, ok := result.LineMap.Origin(1, 1)
	require.True(t, ok)
	assert.Equal(t, "test.cpp", path)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func TestRenderLineMapSplicedOrigin(t *testing.T) {
	// A token spliced in from an include keeps its own origin path even
	// though it renders on the including file's line.
	included, err := lexer.Tokenize("y", "inner.hpp")
	require.NoError(t, err)
	main, err := lexer.Tokenize("x = ", "main.cpp")
	require.NoError(t, err)

	result := Render(append(main, included...))
	path, _, _, ok := result.LineMap.Origin(1, len("x = ")+1)
	require.True(t, ok)
	assert.Equal(t, "inner.hpp", path)
}
