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

// Define is one macro-table entry: an object-like or function-like macro
// body. Params is nil for object-like macros; for function-like macros it
// holds the formal parameter names in declaration order. Call is true iff
// the macro was declared with a parenthesized parameter list.
//
// This splits the original implementation's single Define struct (reused
// both for table entries and for ad-hoc call-site argument binding) into a
// table entry here and a plain slice of bound argument token sequences
// passed alongside it — see expandBody's bound parameter in preprocess.go.
type Define struct {
	Params []string
	Body   []token.Token
	Call   bool
}

// Table is the macro table. It supports parent-chained lookup so that
// function-like macro expansion can bind parameter names in a child scope
// without copying the entire outer table: a parameter shadows any
// same-named outer macro for the extent of expanding that macro's body.
type Table struct {
	parent  *Table
	defines map[string]*Define
}

// NewTable returns an empty, top-level macro table, owned by the top-level
// preprocess call per §5's single-owner-passed-by-reference rule.
func NewTable() *Table {
	return &Table{defines: make(map[string]*Define)}
}

// Child returns a new scope chained to t, used to bind a function-like
// macro's parameters for the duration of expanding its body.
func (t *Table) Child() *Table {
	return &Table{parent: t, defines: make(map[string]*Define)}
}

// Define installs or replaces a macro in this table's own scope.
func (t *Table) Define(name string, d *Define) {
	t.defines[name] = d
}

// Undef removes a macro from this table's own scope.
func (t *Table) Undef(name string) {
	delete(t.defines, name)
}

// Lookup finds a macro by name, checking this scope and then each parent in
// turn, so a Child's parameter bindings shadow outer macros of the same
// name.
func (t *Table) Lookup(name string) (*Define, bool) {
	for s := t; s != nil; s = s.parent {
		if d, ok := s.defines[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Has reports whether name is defined anywhere in the scope chain.
func (t *Table) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}
