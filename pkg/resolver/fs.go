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
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS resolves #include targets against the real file system.
type FS struct{}

// Resolve implements Resolver. A leading '\' roots includePath at root;
// otherwise it is resolved relative to the directory containing fromPath.
func (FS) Resolve(root, fromPath, includePath string) (Resolved, error) {
	var full string
	if strings.HasPrefix(includePath, `\`) {
		full = filepath.Join(root, strings.TrimPrefix(includePath, `\`))
	} else {
		full = filepath.Join(filepath.Dir(fromPath), includePath)
	}

	data, err := readFile(full)
	if err != nil {
		return Resolved{}, &Error{Root: root, FromPath: fromPath, IncludePath: includePath, Reason: err}
	}
	return Resolved{Path: full, Data: data}, nil
}

// readFile opens, reads, and closes full before returning — the resolver
// owns the file handle for the duration of the call, per §5's "opens files;
// they must be closed before returning the buffer" resource rule.
func readFile(full string) (string, error) {
	f, err := os.Open(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
