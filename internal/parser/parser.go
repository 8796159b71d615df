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

// Package parser implements the recursive-descent parser described by the
// PEG grammar in §4.4: it consumes the renderer's flattened text (not the
// token stream the preprocessor produced, which no longer distinguishes
// string/integer/float shape) and builds the ast.Node tree the simplifier
// folds.
package parser

import (
	"fmt"

	"github.com/arma-tools/rapify/internal/ast"
	"github.com/arma-tools/rapify/internal/diagnostics"
	"github.com/arma-tools/rapify/internal/render"
)

// Error is a parse failure, carrying both the rendered position and — once
// back-mapped through the LineMap — the original source position the text
// came from before macro expansion and #include splicing moved it.
type Error struct {
	Context    string
	Line, Col  int
	OriginPath string
	OriginLine int
	OriginCol  int
	Message    string
}

func (e *Error) Error() string {
	if e.OriginPath != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.OriginPath, e.OriginLine, e.OriginCol, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// parser walks the lexeme stream with one lexeme of lookahead.
type parser struct {
	s       *scanner
	lineMap render.LineMap
	path    string
	buf     *lexeme
}

// Parse parses a renderer Result into a Config node. path identifies the
// file being parsed, for diagnostics; it need not match any single origin
// path in lineMap once #include has spliced multiple files together.
func Parse(result render.Result, path string) (ast.Node, error) {
	p := &parser{s: newScanner(result.Text), lineMap: result.LineMap, path: path}
	node, err := p.parseConfig()
	if err != nil {
		dumpPath, dumpErr := diagnostics.DumpParseFailure(path, result.Text)
		perr := p.wrapError(err)
		if dumpErr == nil {
			perr.Message = fmt.Sprintf("%s (rendered input dumped to %s)", perr.Message, dumpPath)
		}
		return ast.Node{}, perr
	}
	if err := p.expectEOF(); err != nil {
		return ast.Node{}, p.wrapError(err)
	}
	return node, nil
}

// wrapError back-maps a bare *Error's rendered position through the
// LineMap to recover the original file/line/col it was produced from.
func (p *parser) wrapError(err error) *Error {
	e, ok := err.(*Error)
	if !ok {
		return &Error{Message: err.Error()}
	}
	if path, line, col, ok := p.lineMap.Origin(e.Line, e.Col); ok {
		e.OriginPath = path
		e.OriginLine = line
		e.OriginCol = col
	} else {
		e.OriginPath = p.path
		e.OriginLine = e.Line
		e.OriginCol = e.Col
	}
	return e
}

func (p *parser) peek() (lexeme, error) {
	if p.buf == nil {
		lx, err := p.s.next()
		if err != nil {
			return lexeme{}, err
		}
		p.buf = &lx
	}
	return *p.buf, nil
}

func (p *parser) next() (lexeme, error) {
	lx, err := p.peek()
	if err != nil {
		return lexeme{}, err
	}
	p.buf = nil
	return lx, nil
}

func (p *parser) expectPunct(text string) error {
	lx, err := p.next()
	if err != nil {
		return err
	}
	if lx.kind != kindPunct || lx.text != text {
		return &Error{Line: lx.line, Col: lx.col, Message: fmt.Sprintf("expected %q, found %q", text, lx.text)}
	}
	return nil
}

func (p *parser) expectIdent() (lexeme, error) {
	lx, err := p.next()
	if err != nil {
		return lexeme{}, err
	}
	if lx.kind != kindIdent {
		return lexeme{}, &Error{Line: lx.line, Col: lx.col, Message: fmt.Sprintf("expected identifier, found %q", lx.text)}
	}
	return lx, nil
}

func (p *parser) expectEOF() error {
	lx, err := p.peek()
	if err != nil {
		return err
	}
	if lx.kind != kindEOF {
		return &Error{Line: lx.line, Col: lx.col, Message: fmt.Sprintf("expected end of input, found %q", lx.text)}
	}
	return nil
}

func identNode(lx lexeme) ast.Node {
	return ast.Node{Line: lx.text, Statement: ast.Ident{Value: lx.text}}
}

// parseConfig parses "config = (class | classdef | classdelete | prop |
// propexpand)*" until EOF.
func (p *parser) parseConfig() (ast.Node, error) {
	var children []ast.Node
	for {
		lx, err := p.peek()
		if err != nil {
			return ast.Node{}, err
		}
		if lx.kind == kindEOF {
			break
		}
		child, err := p.parseStatement()
		if err != nil {
			return ast.Node{}, err
		}
		children = append(children, child)
	}
	return ast.Node{Statement: ast.Config{Children: children}}, nil
}

// parseStatement dispatches between the "class"/"delete"/prop productions
// that may start a config entry.
func (p *parser) parseStatement() (ast.Node, error) {
	lx, err := p.peek()
	if err != nil {
		return ast.Node{}, err
	}

	switch {
	case lx.kind == kindIdent && lx.text == "class":
		return p.parseClass()
	case lx.kind == kindIdent && lx.text == "delete":
		return p.parseClassDelete()
	case lx.kind == kindIdent:
		return p.parseProperty()
	default:
		return ast.Node{}, &Error{Line: lx.line, Col: lx.col, Message: fmt.Sprintf("unexpected token %q", lx.text)}
	}
}

// parseClass covers "class", "classext" and "classdef": the grammar's
// three related productions collapse into one parse once extends and the
// body are treated as optional, since all three share the "class ident"
// prefix.
func (p *parser) parseClass() (ast.Node, error) {
	if _, err := p.next(); err != nil { // "class"
		return ast.Node{}, err
	}
	identLx, err := p.expectIdent()
	if err != nil {
		return ast.Node{}, err
	}
	ident := identNode(identLx)

	lx, err := p.peek()
	if err != nil {
		return ast.Node{}, err
	}

	// classdef = "class" ident ";"
	if lx.kind == kindPunct && lx.text == ";" {
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		return ast.Node{Statement: ast.ClassDef{Ident: ident}}, nil
	}

	var extends *ast.Node
	if lx.kind == kindPunct && lx.text == ":" {
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		extLx, err := p.expectIdent()
		if err != nil {
			return ast.Node{}, err
		}
		n := identNode(extLx)
		extends = &n
	}

	if err := p.expectPunct("{"); err != nil {
		return ast.Node{}, err
	}
	var props []ast.Node
	for {
		lx, err := p.peek()
		if err != nil {
			return ast.Node{}, err
		}
		if lx.kind == kindPunct && lx.text == "}" {
			break
		}
		prop, err := p.parseStatement()
		if err != nil {
			return ast.Node{}, err
		}
		props = append(props, prop)
	}
	if err := p.expectPunct("}"); err != nil {
		return ast.Node{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return ast.Node{}, err
	}

	return ast.Node{Statement: ast.Class{Ident: ident, Extends: extends, Props: props}}, nil
}

// parseClassDelete parses "delete" ident ";".
func (p *parser) parseClassDelete() (ast.Node, error) {
	if _, err := p.next(); err != nil { // "delete"
		return ast.Node{}, err
	}
	identLx, err := p.expectIdent()
	if err != nil {
		return ast.Node{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return ast.Node{}, err
	}
	return ast.Node{Statement: ast.ClassDelete{Ident: identNode(identLx)}}, nil
}

// parseProperty parses both "prop" and "propexpand": the "[]" marker is
// consumed regardless, and only the presence of a following "+=" decides
// which of the two productions this is.
func (p *parser) parseProperty() (ast.Node, error) {
	identLx, err := p.expectIdent()
	if err != nil {
		return ast.Node{}, err
	}
	ident := identNode(identLx)

	hasBrackets := false
	if lx, err := p.peek(); err != nil {
		return ast.Node{}, err
	} else if lx.kind == kindPunct && lx.text == "[" {
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		if err := p.expectPunct("]"); err != nil {
			return ast.Node{}, err
		}
		hasBrackets = true
	}

	lx, err := p.next()
	if err != nil {
		return ast.Node{}, err
	}
	expand := false
	switch {
	case lx.kind == kindPunct && lx.text == "=":
		expand = false
	case lx.kind == kindPunct && lx.text == "+" :
		if err := p.expectPunct("="); err != nil {
			return ast.Node{}, err
		}
		expand = true
	default:
		return ast.Node{}, &Error{Line: lx.line, Col: lx.col, Message: fmt.Sprintf("expected '=' or '+=', found %q", lx.text)}
	}
	if expand && !hasBrackets {
		return ast.Node{}, &Error{Line: lx.line, Col: lx.col, Message: "propexpand requires '[]' before '+='"}
	}

	value, err := p.parseValue()
	if err != nil {
		return ast.Node{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return ast.Node{}, err
	}

	return ast.Node{Statement: ast.Property{Ident: ident, Value: value, Expand: expand}}, nil
}

// parseValue parses "value = array | string | float | integer | bool |
// ident".
func (p *parser) parseValue() (ast.Node, error) {
	lx, err := p.peek()
	if err != nil {
		return ast.Node{}, err
	}

	switch {
	case lx.kind == kindPunct && lx.text == "{":
		return p.parseArray()
	case lx.kind == kindString:
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		return ast.Node{Line: lx.text, Statement: ast.Str{Value: lx.text}}, nil
	case lx.kind == kindFloat:
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		v, perr := parseFloat(lx.text)
		if perr != nil {
			return ast.Node{}, &Error{Line: lx.line, Col: lx.col, Message: perr.Error()}
		}
		return ast.Node{Line: lx.text, Statement: ast.Float{Value: v}}, nil
	case lx.kind == kindInteger:
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		v, perr := parseInteger(lx.text)
		if perr != nil {
			return ast.Node{}, &Error{Line: lx.line, Col: lx.col, Message: perr.Error()}
		}
		return ast.Node{Line: lx.text, Statement: ast.Integer{Value: v}}, nil
	case lx.kind == kindBool:
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		return ast.Node{Line: lx.text, Statement: ast.Bool{Value: lx.text == "true"}}, nil
	case lx.kind == kindIdent:
		if _, err := p.next(); err != nil {
			return ast.Node{}, err
		}
		// An identifier value may itself carry a trailing "[]", used by
		// array-of-arrays and nested-variable references.
		if peek, err := p.peek(); err == nil && peek.kind == kindPunct && peek.text == "[" {
			if _, err := p.next(); err != nil {
				return ast.Node{}, err
			}
			if err := p.expectPunct("]"); err != nil {
				return ast.Node{}, err
			}
			return ast.Node{Line: lx.text, Statement: ast.IdentArray{Value: lx.text}}, nil
		}
		return ast.Node{Line: lx.text, Statement: ast.Ident{Value: lx.text}}, nil
	default:
		return ast.Node{}, &Error{Line: lx.line, Col: lx.col, Message: fmt.Sprintf("unexpected token %q in value position", lx.text)}
	}
}

// parseArray parses "array = '{' (value (',' value)*)? '}'".
func (p *parser) parseArray() (ast.Node, error) {
	if err := p.expectPunct("{"); err != nil {
		return ast.Node{}, err
	}

	var elems []ast.Node
	lx, err := p.peek()
	if err != nil {
		return ast.Node{}, err
	}
	if !(lx.kind == kindPunct && lx.text == "}") {
		for {
			v, err := p.parseValue()
			if err != nil {
				return ast.Node{}, err
			}
			elems = append(elems, v)

			lx, err := p.peek()
			if err != nil {
				return ast.Node{}, err
			}
			if lx.kind == kindPunct && lx.text == "," {
				if _, err := p.next(); err != nil {
					return ast.Node{}, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return ast.Node{}, err
	}
	return ast.Node{Statement: ast.Array{Elems: elems}}, nil
}
