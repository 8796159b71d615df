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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatementVariantsAreDistinct exercises the tagged-union shape itself:
// every concrete Statement must be assignable to the interface, and a type
// switch must be able to recover which one it is without any payload
// bleeding across variants.
func TestStatementVariantsAreDistinct(t *testing.T) {
	variants := []Statement{
		Config{},
		Class{},
		ClassDef{},
		ClassDelete{},
		Property{},
		Array{},
		Float{Value: 1.5},
		Integer{Value: 1},
		Str{Value: `"s"`},
		Bool{Value: true},
		Ident{Value: "x"},
		IdentArray{Value: "x"},
		Gone{},
	}

	seen := map[string]bool{}
	for _, v := range variants {
		switch s := v.(type) {
		case Float:
			assert.Equal(t, 1.5, s.Value)
			seen["Float"] = true
		case Integer:
			assert.Equal(t, int64(1), s.Value)
			seen["Integer"] = true
		case Bool:
			assert.True(t, s.Value)
			seen["Bool"] = true
		default:
			seen[typeName(v)] = true
		}
	}
	assert.True(t, seen["Float"])
	assert.True(t, seen["Integer"])
	assert.True(t, seen["Bool"])
	assert.Len(t, seen, len(variants))
}

func typeName(v Statement) string {
	switch v.(type) {
	case Config:
		return "Config"
	case Class:
		return "Class"
	case ClassDef:
		return "ClassDef"
	case ClassDelete:
		return "ClassDelete"
	case Property:
		return "Property"
	case Array:
		return "Array"
	case Str:
		return "Str"
	case Ident:
		return "Ident"
	case IdentArray:
		return "IdentArray"
	case Gone:
		return "Gone"
	default:
		return "unknown"
	}
}

func TestNodeCarriesLineText(t *testing.T) {
	n := Node{Line: "value = 1;", Statement: Integer{Value: 1}}
	assert.Equal(t, "value = 1;", n.Line)
	assert.Equal(t, int64(1), n.Statement.(Integer).Value)
}
