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

// Package diagnostics holds the out-of-band debugging aid described in §6:
// on parse failure the renderer's output is dumped to a temporary file so
// the rendered (post-macro-expansion) text that actually failed to parse
// can be inspected directly, rather than reconstructed from the original
// sources.
package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a rendered buffer that failed to parse and returns where it
// was persisted. The default Sink writes to os.TempDir(); §6 notes that
// overriding it is an open question left unimplemented in the original, so
// DumpParseFailure always uses the default for now — see DESIGN.md.
type Sink func(sourcePath, text string) (string, error)

// DefaultSink writes text to a file under os.TempDir() named after
// sourcePath's base name, and returns that path.
func DefaultSink(sourcePath, text string) (string, error) {
	name := fmt.Sprintf("rapify-parsefail-%s-*.txt", filepath.Base(sourcePath))
	f, err := os.CreateTemp("", name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// DumpParseFailure persists the rendered text that failed to parse using
// DefaultSink, returning the path it was written to.
func DumpParseFailure(sourcePath, text string) (string, error) {
	return DefaultSink(sourcePath, text)
}
