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

package resolver

import (
	"fmt"
	"path"
	"strings"
)

// Memory is a fixed-content Resolver for tests: a flat map from a rooted
// path (no leading '\') to file contents. It implements the same
// join-then-lookup semantics as FS without touching a real file system.
type Memory map[string]string

// Resolve implements Resolver.
func (m Memory) Resolve(root, fromPath, includePath string) (Resolved, error) {
	var full string
	if strings.HasPrefix(includePath, `\`) {
		full = path.Join(root, strings.TrimPrefix(includePath, `\`))
	} else {
		full = path.Join(path.Dir(fromPath), includePath)
	}

	data, ok := m[full]
	if !ok {
		return Resolved{}, &Error{
			Root: root, FromPath: fromPath, IncludePath: includePath,
			Reason: fmt.Errorf("no content registered for %q", full),
		}
	}
	return Resolved{Path: full, Data: data}, nil
}
