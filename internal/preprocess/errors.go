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

import (
	"fmt"

	"github.com/arma-tools/rapify/internal/token"
)

// Error is the flat PreprocessError taxonomy of §7: DefineWithoutName,
// UndefineWithoutName, ArgCountMismatch, IncludeResolveFailed,
// UnterminatedIf, and UnexpectedToken, each carrying the offending Pos.
type Error struct {
	Kind string
	Pos  token.Pos

	Expected int
	Actual   int
	Args     []string

	Path string

	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case "ArgCountMismatch":
		return fmt.Sprintf("%s: argument count mismatch: expected %d, got %d %v", e.Pos, e.Expected, e.Actual, e.Args)
	case "IncludeResolveFailed":
		return fmt.Sprintf("%s: could not resolve include %q", e.Pos, e.Path)
	default:
		if e.Message != "" {
			return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
	}
}

func errDefineWithoutName(pos token.Pos) error {
	return &Error{Kind: "DefineWithoutName", Pos: pos}
}

func errUndefineWithoutName(pos token.Pos) error {
	return &Error{Kind: "UndefineWithoutName", Pos: pos}
}

func errArgCountMismatch(pos token.Pos, expected, actual int, args []string) error {
	return &Error{Kind: "ArgCountMismatch", Pos: pos, Expected: expected, Actual: actual, Args: args}
}

func errIncludeResolveFailed(pos token.Pos, path string) error {
	return &Error{Kind: "IncludeResolveFailed", Pos: pos, Path: path}
}

func errUnterminatedIf(pos token.Pos) error {
	return &Error{Kind: "UnterminatedIf", Pos: pos}
}

func errUnexpectedToken(pos token.Pos, message string) error {
	return &Error{Kind: "UnexpectedToken", Pos: pos, Message: message}
}
