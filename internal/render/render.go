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

// Package render flattens an expanded token stream into the text string the
// parser consumes and a LineMap back-referencing every rendered (line, col)
// span to the original file, line, and column it came from — which may
// differ from the rendered position once macro expansion and #include
// splicing have moved tokens around.
package render

import (
	"strings"

	"github.com/arma-tools/rapify/internal/token"
)

// Entry is one token's placement on a rendered line.
type Entry struct {
	Col         int
	Length      int
	OriginPath  string
	OriginStart token.Cursor
	OriginEnd   token.Cursor
	Token       token.Token
}

// LineMap maps a 1-based rendered line number to the entries placed on it,
// in left-to-right order. Newline tokens end a line and are not themselves
// recorded as entries.
type LineMap map[int][]Entry

// Result is the renderer's output: the flattened text and its LineMap.
type Result struct {
	Text    string
	LineMap LineMap
}

// Render concatenates every token's text and builds the LineMap alongside
// it in the same left-to-right pass.
func Render(tokens []token.Token) Result {
	var b strings.Builder
	lineMap := make(LineMap)

	line, col := 1, 1
	for _, tok := range tokens {
		b.WriteString(tok.Text)
		if tok.Type == token.Newline {
			line++
			col = 1
			continue
		}
		lineMap[line] = append(lineMap[line], Entry{
			Col:         col,
			Length:      len(tok.Text),
			OriginPath:  tok.Pos.Path,
			OriginStart: tok.Pos.Start,
			OriginEnd:   tok.Pos.End,
			Token:       tok,
		})
		col += len(tok.Text)
	}

	return Result{Text: b.String(), LineMap: lineMap}
}

// Origin maps a rendered (line, col) back to the (path, line, col) it was
// produced from, for back-mapping parse errors through macro expansion and
// include splicing. ok is false if no entry on line covers col.
func (lm LineMap) Origin(line, col int) (path string, originLine, originCol int, ok bool) {
	for _, e := range lm[line] {
		if col >= e.Col && col < e.Col+e.Length {
			offset := col - e.Col
			return e.OriginPath, e.OriginStart.Line, e.OriginStart.Column + offset, true
		}
	}
	return "", 0, 0, false
}
