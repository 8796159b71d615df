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
	"os"

	"gopkg.in/yaml.v3"
)

// manifest is the front-end's own project-level configuration — the thin,
// single-compiler-facing analogue of the project-level build driver's
// config, which §1 places out of scope. It names predefined macros, the
// include-resolution root, and where rapified output is written; it does
// not carry a task graph, gitignore rules, or deprecation policy.
type manifest struct {
	Root    string            `yaml:"root"`
	Output  string            `yaml:"output"`
	Defines map[string]string `yaml:"defines"`
}

// loadManifest reads and parses a YAML manifest file; a path that cannot be
// read is returned as an error. The CLI only calls loadManifest when a
// -manifest path was given, and without one applies no manifest at all.
func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Defines == nil {
		m.Defines = map[string]string{}
	}
	return &m, nil
}
