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

// Package simplify folds a parsed ast.Node tree into the flat Entry form
// the rapifier serializes: inheritance is resolved to a parent name,
// "+="-expansion is reduced to a marker bit, and every value literal is
// coerced to the small Rapified value set the binary format knows how to
// write.
package simplify

// Rapified is the small, closed value set the rapifier can encode.
type Rapified interface {
	isRapified()
}

// Str is a rapified string value, already unquoted and unescaped.
type Str struct{ Value string }

// Int is a rapified integer value.
type Int struct{ Value int64 }

// Float is a rapified floating-point value.
type Float struct{ Value float64 }

// Array is a rapified array of values. Expand marks an array produced by
// a "+=" property, which the rapifier writes as the array-expansion entry
// kind rather than a plain array.
type Array struct {
	Values []Rapified
	Expand bool
}

func (Str) isRapified()   {}
func (Int) isRapified()   {}
func (Float) isRapified() {}
func (Array) isRapified() {}

// Entry is one member of a simplified class body.
type Entry interface {
	isEntry()
}

// Class is a resolved nested class, with Parent set to its extends target
// if any.
type Class struct {
	Name   string
	Parent string
	Body   []Entry
}

// Value is a resolved scalar or array property.
type Value struct {
	Name  string
	Value Rapified
}

// ExternClass is a forward declaration ("class Name;").
type ExternClass struct {
	Name string
}

// DeleteClass is a deletion directive ("delete Name;").
type DeleteClass struct {
	Name string
}

func (Class) isEntry()       {}
func (Value) isEntry()       {}
func (ExternClass) isEntry() {}
func (DeleteClass) isEntry() {}

// Config is the simplified root: a class body with no name or parent.
type Config struct {
	Body []Entry
}
