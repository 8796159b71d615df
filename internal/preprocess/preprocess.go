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

// Package preprocess implements the macro-expanding, conditional-compiling,
// include-splicing middle stage of the config compiler. It streams the
// tokenizer's output once, with one token of lookahead, and produces a
// fully realized expanded token sequence — there is no suspended iterator
// state once Preprocess returns, per the pipeline's single-threaded,
// no-stage-suspends resource model.
package preprocess

import (
	"log"

	"github.com/arma-tools/rapify/internal/lexer"
	"github.com/arma-tools/rapify/internal/token"
	"github.com/arma-tools/rapify/pkg/resolver"
)

// maxExpansionDepth bounds macro-expansion recursion. Self-referential
// object-like macros (#define A A) terminate by hitting this cap and
// falling back to the unexpanded token, rather than by any cycle detection.
const maxExpansionDepth = 1024

// Preprocess tokenizes source and expands it: macros are substituted,
// conditional blocks are resolved, and #include targets are recursively
// resolved, tokenized, and spliced in place. The returned sequence shares
// no state with source — every stage after this one only ever sees owned
// data.
func Preprocess(source, path, root string, res resolver.Resolver) ([]token.Token, error) {
	return PreprocessWithDefines(source, path, root, res, nil)
}

// PreprocessWithDefines behaves like Preprocess but seeds the macro table
// with a set of object-like macros before expansion begins — the CLI's
// "-define NAME[=VALUE]" flags (§2 ambient stack) use this to predefine
// macros the same way a compiler's "-D" flag does, without requiring the
// source to contain a matching "#define".
func PreprocessWithDefines(source, path, root string, res resolver.Resolver, defines map[string]string) ([]token.Token, error) {
	tokens, err := lexer.Tokenize(source, path)
	if err != nil {
		return nil, err
	}
	table := NewTable()
	for name, value := range defines {
		body, err := lexer.Tokenize(value, path)
		if err != nil {
			return nil, err
		}
		table.Define(name, &Define{Body: body})
	}
	return preprocessTokens(tokens, root, path, res, table, 0)
}

// preprocessTokens is the recursive engine: it's called once for the root
// file, once more per #include target, and once per function-like macro
// call argument. Includes share the caller's table so that macros defined
// in an include remain visible afterward.
func preprocessTokens(tokens []token.Token, root, fromPath string, res resolver.Resolver, table *Table, depth int) ([]token.Token, error) {
	s := newStream(tokens)
	ifstack := IfStack{}
	newLine := true
	var ret []token.Token

	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		reading := ifstack.Reading()

		switch {
		case tok.Type == token.Directive && newLine:
			skipWhitespace(s)
			nameTok, ok2 := s.Next()
			if !ok2 || nameTok.Type != token.Word {
				ret = append(ret, tok)
				if ok2 {
					ret = append(ret, nameTok)
				}
				newLine = false
				continue
			}
			if err := handleDirective(nameTok, s, &ifstack, table, root, fromPath, res, &ret, reading, depth); err != nil {
				return nil, err
			}
		case tok.Type == token.Word && reading:
			expanded, err := expandWord(tok, s, table, root, fromPath, res, depth)
			if err != nil {
				return nil, err
			}
			ret = append(ret, expanded...)
			newLine = false
		case tok.Type == token.Newline && reading:
			newLine = true
			ret = append(ret, tok)
		case tok.Type == token.Whitespace && reading:
			ret = append(ret, tok)
		case reading:
			newLine = false
			ret = append(ret, tok)
		default:
			// Passing: everything but a line-leading directive is
			// dropped silently, and newLine is left untouched so a
			// later '#' still recognizes itself as line-leading.
		}
	}

	if !ifstack.Balanced() {
		pos := token.Pos{Path: fromPath}
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		return nil, errUnterminatedIf(pos)
	}
	return ret, nil
}

// handleDirective dispatches on the directive name following a line-leading
// '#'. reading reflects the enclosing scope's status before this directive
// is applied (captured by the caller, since pushing/flipping/popping the
// if-stack here must not affect that evaluation).
func handleDirective(nameTok token.Token, s *stream, ifstack *IfStack, table *Table, root, fromPath string, res resolver.Resolver, ret *[]token.Token, reading bool, depth int) error {
	name := nameTok.Text

	switch {
	case name == "define" && reading:
		return handleDefine(nameTok, s, table)
	case name == "undef" && reading:
		skipWhitespace(s)
		tok, ok := s.Next()
		if !ok || tok.Type != token.Word {
			return errUndefineWithoutName(nameTok.Pos)
		}
		table.Undef(tok.Text)
		return nil
	case name == "ifdef" && reading:
		skipWhitespace(s)
		tok, ok := s.Next()
		if !ok || tok.Type != token.Word {
			return errUnexpectedToken(nameTok.Pos, "#ifdef requires a macro name")
		}
		if table.Has(tok.Text) {
			ifstack.Push(ReadingIf)
		} else {
			ifstack.Push(PassingIf)
		}
		return nil
	case name == "ifndef" && reading:
		skipWhitespace(s)
		tok, ok := s.Next()
		if !ok || tok.Type != token.Word {
			return errUnexpectedToken(nameTok.Pos, "#ifndef requires a macro name")
		}
		if table.Has(tok.Text) {
			ifstack.Push(PassingIf)
		} else {
			ifstack.Push(ReadingIf)
		}
		return nil
	case (name == "ifdef" || name == "ifndef") && !reading:
		ifstack.Push(PassingChild)
		return nil
	case name == "else":
		ifstack.Flip()
		return nil
	case name == "endif":
		if !ifstack.Pop() {
			return errUnterminatedIf(nameTok.Pos)
		}
		return nil
	case name == "include" && reading:
		return handleInclude(nameTok, s, table, root, fromPath, res, ret, depth)
	case !reading:
		readLine(s)
		return nil
	default:
		log.Printf("%s: unknown directive %q", nameTok.Pos, name)
		readLine(s)
		return nil
	}
}

func handleDefine(nameTok token.Token, s *stream, table *Table) error {
	skipWhitespace(s)
	tok, ok := s.Next()
	if !ok || tok.Type != token.Word {
		return errDefineWithoutName(nameTok.Pos)
	}
	name := tok.Text

	var params []string
	call := false
	if peek, pok := s.Peek(); pok && peek.Type == token.LeftParenthesis {
		call = true
		for _, arg := range readArgs(s) {
			p := ""
			if len(arg) > 0 && arg[0].Type == token.Word {
				p = arg[0].Text
			}
			params = append(params, p)
		}
	}
	body := readLine(s)
	table.Define(name, &Define{Params: params, Body: body, Call: call})
	return nil
}

func handleInclude(nameTok token.Token, s *stream, table *Table, root, fromPath string, res resolver.Resolver, ret *[]token.Token, depth int) error {
	line := readLine(s)
	file := trimQuotes(renderText(line))

	resolved, err := res.Resolve(root, fromPath, file)
	if err != nil {
		return errIncludeResolveFailed(nameTok.Pos, file)
	}

	incTokens, err := lexer.Tokenize(resolved.Data, resolved.Path)
	if err != nil {
		return err
	}
	expanded, err := preprocessTokens(incTokens, root, resolved.Path, res, table, depth+1)
	if err != nil {
		return err
	}
	*ret = append(*ret, expanded...)
	return nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// expandWord substitutes a Word token if it names a macro visible in table.
// For a function-like macro it reads call arguments from s (the stream the
// word was found in — either the file-level stream or a macro body being
// expanded) and recursively preprocesses each before binding.
func expandWord(tok token.Token, s *stream, table *Table, root, fromPath string, res resolver.Resolver, depth int) ([]token.Token, error) {
	d, ok := table.Lookup(tok.Text)
	if !ok {
		return []token.Token{tok}, nil
	}
	if depth >= maxExpansionDepth {
		return []token.Token{tok}, nil
	}

	var bound [][]token.Token
	if d.Call {
		peek, pok := s.Peek()
		if !pok || peek.Type != token.LeftParenthesis {
			// Referenced without call syntax: passes through unexpanded.
			return []token.Token{tok}, nil
		}
		raw := readArgs(s)
		bound = make([][]token.Token, len(raw))
		for i, a := range raw {
			expanded, err := preprocessTokens(a, root, fromPath, res, table, depth+1)
			if err != nil {
				return nil, err
			}
			bound[i] = expanded
		}
		if len(bound) != len(d.Params) {
			return nil, errArgCountMismatch(tok.Pos, len(d.Params), len(bound), renderTextSeqs(bound))
		}
	}

	return expandBody(d, bound, table, root, fromPath, res, depth)
}

// expandBody expands a macro's body, given any already-preprocessed call
// arguments bound positionally in bound. A '#' immediately preceding a word
// stringifies that word's own expansion (wraps it in double quotes); a
// Join ('##') token is simply dropped — token adjacency alone performs the
// concatenation once the renderer flattens the stream.
func expandBody(d *Define, bound [][]token.Token, table *Table, root, fromPath string, res resolver.Resolver, depth int) ([]token.Token, error) {
	child := table.Child()
	for i, param := range d.Params {
		if i < len(bound) {
			child.Define(param, &Define{Body: bound[i]})
		}
	}

	body := newStream(d.Body)
	var out []token.Token
	for {
		tok, ok := body.Next()
		if !ok {
			break
		}
		switch tok.Type {
		case token.Directive:
			peek, pok := body.Peek()
			if !pok || peek.Type != token.Word {
				out = append(out, tok)
				continue
			}
			wordTok, _ := body.Next()
			expanded, err := expandWord(wordTok, body, child, root, fromPath, res, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, token.Token{Type: token.DoubleQuote, Text: `"`, Pos: tok.Pos})
			out = append(out, expanded...)
			out = append(out, token.Token{Type: token.DoubleQuote, Text: `"`, Pos: tok.Pos})
		case token.Join:
			// dropped
		case token.Word:
			expanded, err := expandWord(tok, body, child, root, fromPath, res, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		default:
			out = append(out, tok)
		}
	}
	return out, nil
}
