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
	"fmt"
	"strings"

	"github.com/arma-tools/rapify/internal/ast"
)

// Error reports a failure folding the AST into resolved form — an
// unrecognized statement shape or a value the rapifier's closed Rapified
// set has no encoding for.
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Simplify folds a parsed root Config node into the flat, serializable
// Config the rapifier writes, per §4.5: inheritance chains are recorded as
// a parent name rather than merged (the binary format looks the same
// either way — a class entry carries its own name and parent, never its
// ancestors' properties), deletions and forward declarations become their
// own entry kinds, and every property value is coerced to Rapified.
func Simplify(root ast.Node, path string) (Config, error) {
	cfg, ok := root.Statement.(ast.Config)
	if !ok {
		return Config{}, &Error{Path: path, Message: fmt.Sprintf("expected a root Config, found %T", root.Statement)}
	}
	body, err := simplifyBody(cfg.Children, path)
	if err != nil {
		return Config{}, err
	}
	return Config{Body: body}, nil
}

// simplifyBody folds one class scope's children into an ordered Entry
// list. A later Property with a name already bound to a Value in this same
// scope replaces that Value's payload in place — the invariant in §8
// ("the retained value is the last in source order") — rather than
// appending a duplicate, so declaration-order position is preserved for
// the *first* assignment while its value reflects the *last*.
func simplifyBody(children []ast.Node, path string) ([]Entry, error) {
	var out []Entry
	valueAt := map[string]int{}

	for _, child := range children {
		switch st := child.Statement.(type) {
		case ast.Class:
			name, err := identText(st.Ident, path)
			if err != nil {
				return nil, err
			}
			var parent string
			if st.Extends != nil {
				parent, err = identText(*st.Extends, path)
				if err != nil {
					return nil, err
				}
			}
			body, err := simplifyBody(st.Props, path)
			if err != nil {
				return nil, err
			}
			out = append(out, Class{Name: name, Parent: parent, Body: body})

		case ast.ClassDef:
			name, err := identText(st.Ident, path)
			if err != nil {
				return nil, err
			}
			out = append(out, ExternClass{Name: name})

		case ast.ClassDelete:
			name, err := identText(st.Ident, path)
			if err != nil {
				return nil, err
			}
			out = append(out, DeleteClass{Name: name})

		case ast.Property:
			name, err := identText(st.Ident, path)
			if err != nil {
				return nil, err
			}
			val, err := simplifyValue(st.Value, path)
			if err != nil {
				return nil, err
			}
			if st.Expand {
				arr, ok := val.(Array)
				if !ok {
					return nil, &Error{Path: path, Message: fmt.Sprintf("property %q: %q requires an array value", name, "+=")}
				}
				// §9 Open Question resolution: "+=" with no prior value
				// in scope creates a fresh array rather than erroring,
				// matching push-to-empty semantics.
				arr.Expand = true
				val = arr
			}
			if idx, exists := valueAt[name]; exists {
				out[idx] = Value{Name: name, Value: val}
			} else {
				valueAt[name] = len(out)
				out = append(out, Value{Name: name, Value: val})
			}

		default:
			return nil, &Error{Path: path, Message: fmt.Sprintf("unexpected statement %T in class body", st)}
		}
	}
	return out, nil
}

func identText(n ast.Node, path string) (string, error) {
	id, ok := n.Statement.(ast.Ident)
	if !ok {
		return "", &Error{Path: path, Message: fmt.Sprintf("expected an identifier, found %T", n.Statement)}
	}
	return id.Value, nil
}

// simplifyValue coerces one parsed value node to the Rapified set per
// §4.5's simplify_value table. Ident and IdentArray both collapse to Str —
// the game engine's convention for unquoted identifiers used as values —
// and this coercion must be preserved exactly (§9).
func simplifyValue(n ast.Node, path string) (Rapified, error) {
	switch v := n.Statement.(type) {
	case ast.Integer:
		return Int{Value: v.Value}, nil
	case ast.Float:
		return Float{Value: v.Value}, nil
	case ast.Str:
		return Str{Value: unquote(v.Value)}, nil
	case ast.Bool:
		if v.Value {
			return Int{Value: 1}, nil
		}
		return Int{Value: 0}, nil
	case ast.Ident:
		return Str{Value: v.Value}, nil
	case ast.IdentArray:
		return Str{Value: v.Value}, nil
	case ast.Array:
		vals := make([]Rapified, len(v.Elems))
		for i, e := range v.Elems {
			val, err := simplifyValue(e, path)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return Array{Values: vals}, nil
	default:
		return nil, &Error{Path: path, Message: fmt.Sprintf("cannot simplify value of type %T", v)}
	}
}

// unquote strips a Str node's surrounding double quotes (kept through the
// parser for diagnostics) and unescapes \n \t \" \\, per §4.5.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
