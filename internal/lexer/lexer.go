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

// Package lexer breaks preprocessor source into the flat Token stream the
// preprocessor expands. It deliberately does not distinguish numeric or
// string literal shape — quotes, digits, and operators are tokenized as
// their individual characters (or, for words, as runs of word characters)
// and the parser stage re-lexes the rendered text with full grammar
// knowledge. This keeps macro stringification (`#arg`) and token-join
// (`##`) operating on whole lexemes without the tokenizer needing to know
// anything about the value grammar.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arma-tools/rapify/internal/token"
)

// Error reports a tokenizer failure, always carrying the offending position.
type Error struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// Tokenize scans source in a single left-to-right pass and returns the flat
// token sequence, tagging each token with its byte offset and (line,column)
// span within path. Carriage returns are stripped before scanning, per the
// source syntax's UTF-8-with-stripped-CR convention.
func Tokenize(source string, path string) ([]token.Token, error) {
	source = strings.ReplaceAll(source, "\r", "")

	var tokens []token.Token
	cursor := token.Start
	data := source

	emit := func(typ token.Type, text string) {
		start := cursor
		end := cursor.Advanced(text)
		tokens = append(tokens, token.Token{
			Type: typ,
			Text: text,
			Pos:  token.Pos{Path: path, Start: start, End: end},
		})
		cursor = end
		data = data[len(text):]
	}
	emitKeywordOrWord := func(text string) {
		if kw, ok := token.LookupKeyword(text); ok {
			start := cursor
			end := cursor.Advanced(text)
			tokens = append(tokens, token.Token{
				Type:    token.Keyword,
				Text:    text,
				Keyword: kw,
				Pos:     token.Pos{Path: path, Start: start, End: end},
			})
			cursor = end
			data = data[len(text):]
			return
		}
		emit(token.Word, text)
	}
	emitWhitespace := func(run string) {
		kind := token.Space
		if run[0] == '\t' {
			kind = token.Tab
		}
		start := cursor
		end := cursor.Advanced(run)
		tokens = append(tokens, token.Token{
			Type:       token.Whitespace,
			Text:       run,
			Whitespace: kind,
			Pos:        token.Pos{Path: path, Start: start, End: end},
		})
		cursor = end
		data = data[len(run):]
	}

	for len(data) > 0 {
		b := data[0]
		switch {
		case b == '\n':
			emit(token.Newline, "\n")
		case b == ' ' || b == '\t':
			n := 0
			for n < len(data) && (data[n] == ' ' || data[n] == '\t') {
				n++
			}
			emitWhitespace(data[:n])
		case b == '\\':
			emit(token.Escape, "\\")
		case b == '"':
			emit(token.DoubleQuote, "\"")
		case b == '\'':
			emit(token.SingleQuote, "'")
		case b == '#':
			if len(data) > 1 && data[1] == '#' {
				emit(token.Join, "##")
			} else {
				emit(token.Directive, "#")
			}
		case b == '(':
			emit(token.LeftParenthesis, "(")
		case b == ')':
			emit(token.RightParenthesis, ")")
		case b == '{':
			emit(token.LeftBrace, "{")
		case b == '}':
			emit(token.RightBrace, "}")
		case b == '[':
			emit(token.LeftBracket, "[")
		case b == ']':
			emit(token.RightBracket, "]")
		case b == ',':
			emit(token.Comma, ",")
		case b == ';':
			emit(token.Semicolon, ";")
		case b == ':':
			emit(token.Colon, ":")
		case b == '+' && len(data) > 1 && data[1] == '=':
			emit(token.PlusAssignment, "+=")
		case b == '=':
			emit(token.Assignment, "=")
		case isWordChar(b):
			n := 0
			for n < len(data) && isWordChar(data[n]) {
				n++
			}
			emitKeywordOrWord(data[:n])
		default:
			_, size := utf8.DecodeRuneInString(data)
			emit(token.Symbol, data[:size])
		}
	}

	return tokens, nil
}
