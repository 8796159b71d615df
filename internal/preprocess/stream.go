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

import "github.com/arma-tools/rapify/internal/token"

// stream is a one-token-lookahead cursor over a token slice, the Go
// counterpart of the original implementation's Peekable<IntoIter<TokenPos>>.
// It backs both the file-level token stream and, recursively, a macro
// body's own token slice during expansion.
type stream struct {
	tokens []token.Token
	pos    int
}

func newStream(tokens []token.Token) *stream {
	return &stream{tokens: tokens}
}

func (s *stream) Peek() (token.Token, bool) {
	if s.pos >= len(s.tokens) {
		return token.Token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *stream) Next() (token.Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.pos++
	}
	return tok, ok
}

// skipWhitespace advances past any run of Whitespace tokens.
func skipWhitespace(s *stream) {
	for {
		tok, ok := s.Peek()
		if !ok || tok.Type != token.Whitespace {
			return
		}
		s.Next()
	}
}

// readLine collects tokens up to (and consuming, but not including) the
// next Newline, after first skipping leading whitespace. A backslash
// immediately preceding a newline is a line continuation: the backslash and
// the newline are both dropped, and whitespace at the start of the
// continued line is skipped up to the next non-whitespace token. Content
// inside a double-quoted span is copied verbatim, escape sequences
// included, until the closing quote.
func readLine(s *stream) []token.Token {
	var ret []token.Token
	skipWhitespace(s)

	quoted := false
	for {
		tok, ok := s.Next()
		if !ok {
			return ret
		}
		if quoted {
			if tok.Type == token.DoubleQuote {
				quoted = false
			}
			ret = append(ret, tok)
			continue
		}
		switch tok.Type {
		case token.Newline:
			return ret
		case token.Escape:
			if peek, pok := s.Peek(); pok && peek.Type == token.Newline {
				s.Next()
				skipWhitespace(s)
				continue
			}
			ret = append(ret, tok)
		case token.DoubleQuote:
			ret = append(ret, tok)
			quoted = true
		default:
			ret = append(ret, tok)
		}
	}
}

// readArgs collects a function-like macro's call arguments, splitting on
// top-level commas and tracking parenthesis depth so nested calls in an
// argument aren't mistaken for argument boundaries. The caller must have
// already peeked a LeftParenthesis; readArgs consumes it.
func readArgs(s *stream) [][]token.Token {
	var ret [][]token.Token

	next, ok := s.Next()
	if ok && next.Type == token.LeftParenthesis {
		next, ok = s.Next()
	}

	var arg []token.Token
	level := 0
	for ok {
		switch next.Type {
		case token.LeftParenthesis:
			level++
			arg = append(arg, next)
		case token.RightParenthesis:
			if level == 0 {
				if len(arg) > 0 {
					ret = append(ret, arg)
				}
				return ret
			}
			level--
			arg = append(arg, next)
		case token.Comma:
			if level == 0 {
				if len(arg) > 0 {
					ret = append(ret, arg)
					arg = nil
				}
			} else {
				arg = append(arg, next)
			}
		default:
			arg = append(arg, next)
		}
		next, ok = s.Next()
	}
	return ret
}

func renderText(tokens []token.Token) string {
	var out string
	for _, t := range tokens {
		out += t.Text
	}
	return out
}

func renderTextSeqs(seqs [][]token.Token) []string {
	out := make([]string, len(seqs))
	for i, seq := range seqs {
		out[i] = renderText(seq)
	}
	return out
}
