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

package main

import (
	"strings"
)

// rapifyExtensions are the file extensions the source-rapifying build step recognizes, per
// hemtt's rapify.rs: the three file kinds the engine actually loads as
// rapified binaries. A path containing ".ht." is a pre-processed-only
// intermediate, never the thing to rapify.
var rapifyExtensions = []string{".cpp", ".rvmat", ".ext"}

// canRapify reports whether path names a file this tool should compile.
func canRapify(path string) bool {
	if strings.Contains(path, ".ht.") {
		return false
	}
	for _, ext := range rapifyExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// outputPathFor derives the binary output path for a source path: the
// source's own extension is dropped and replaced with ".bin"
// ("config.cpp" -> "config.bin"), matching rapify.rs's rename rule — §6
// doesn't specify an output naming scheme, so the CLI needs one of its own.
func outputPathFor(path string) string {
	for _, ext := range rapifyExtensions {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext) + ".bin"
		}
	}
	return path + ".bin"
}
