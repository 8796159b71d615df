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

// Package token defines the lexical vocabulary shared by the lexer,
// preprocessor, renderer, and parser stages of the config compiler.
package token

import "fmt"

// Type classifies a Token. Unlike a C/C++ lexer, whitespace and newlines are
// first-class token types: the preprocessor's directive recognition and
// macro-body capture both depend on seeing them.
type Type int

const (
	Word Type = iota
	DoubleQuote
	SingleQuote
	Directive // '#'
	Join      // '##'
	Escape    // '\'
	LeftParenthesis
	RightParenthesis
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Semicolon
	Assignment
	PlusAssignment
	Colon
	Whitespace
	Newline
	Keyword
	Symbol // catch-all for a single character with no other meaning
	EOF
)

func (t Type) String() string {
	switch t {
	case Word:
		return "Word"
	case DoubleQuote:
		return "DoubleQuote"
	case SingleQuote:
		return "SingleQuote"
	case Directive:
		return "Directive"
	case Join:
		return "Join"
	case Escape:
		return "Escape"
	case LeftParenthesis:
		return "LeftParenthesis"
	case RightParenthesis:
		return "RightParenthesis"
	case LeftBrace:
		return "LeftBrace"
	case RightBrace:
		return "RightBrace"
	case LeftBracket:
		return "LeftBracket"
	case RightBracket:
		return "RightBracket"
	case Comma:
		return "Comma"
	case Semicolon:
		return "Semicolon"
	case Assignment:
		return "Assignment"
	case PlusAssignment:
		return "PlusAssignment"
	case Colon:
		return "Colon"
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case Keyword:
		return "Keyword"
	case Symbol:
		return "Symbol"
	case EOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// WhitespaceKind distinguishes the two whitespace characters the tokenizer
// preserves as Whitespace tokens; other whitespace run members collapse into
// the same token but the kind reflects the first character of the run.
type WhitespaceKind int

const (
	Space WhitespaceKind = iota
	Tab
)

// KeywordKind enumerates the reserved words recognized by the tokenizer.
// Keywords are lexed as Word-shaped identifiers by the grammar but tagged
// here so the parser doesn't need its own keyword table.
type KeywordKind int

const (
	Class KeywordKind = iota
	Delete
	Enum
)

var keywords = map[string]KeywordKind{
	"class":  Class,
	"delete": Delete,
	"enum":   Enum,
}

// LookupKeyword reports whether text names a reserved word.
func LookupKeyword(text string) (KeywordKind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// Cursor is a position in source text. Line and Column are 1-based; Offset
// is the 0-based byte offset from the start of the file.
type Cursor struct {
	Offset int
	Line   int
	Column int
}

// Start is the initial cursor position for a freshly opened file.
var Start = Cursor{Offset: 0, Line: 1, Column: 1}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// Advanced returns a new Cursor advanced past text, which must immediately
// follow c in the same source. Newlines in text increment the line number
// and reset the column; every other rune increments the column by one. The
// offset advances by the byte length of text, newlines included.
func (c Cursor) Advanced(text string) Cursor {
	for _, r := range text {
		if r == '\n' {
			c.Line++
			c.Column = 1
		} else {
			c.Column++
		}
	}
	c.Offset += len(text)
	return c
}

// Pos is the span of source a Token occupies, together with the path of the
// file it originated from — needed because macro expansion and includes
// splice tokens from foreign buffers into a single stream.
type Pos struct {
	Path  string
	Start Cursor
	End   Cursor
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%s", p.Path, p.Start)
}

// Token is one lexeme of the input, tagged by Type with span metadata.
// Text holds the verbatim source text for every variant, including
// single-character ones, so renderers can reconstruct the original bytes by
// concatenating Text over a token stream.
type Token struct {
	Type       Type
	Text       string
	Whitespace WhitespaceKind
	Keyword    KeywordKind
	Pos        Pos
}

// String renders the token back to source text, the inverse of tokenizing.
func (t Token) String() string {
	return t.Text
}

// IsWhitespaceOrComment reports whether t should be skipped by grammar rules
// that operate "modulo whitespace". Only Whitespace tokens qualify, since the
// tokenizer emits no comment tokens. The preprocessor and the parser do not
// call it: both test token types or skip trivia themselves.
func (t Token) IsWhitespaceOrComment() bool {
	return t.Type == Whitespace
}
