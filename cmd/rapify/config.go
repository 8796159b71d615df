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

// compilerConfig is attached once per CLI invocation from flags and an
// optional manifest, then cloned for each root file so that a future
// per-file override (e.g. a directive embedded in one config source) can
// diverge without mutating the shared base — the same "attach once, clone
// per unit" shape as language/cpp's cppConfig.
type compilerConfig struct {
	root    string
	outDir  string
	defines map[string]string
}

func newCompilerConfig() *compilerConfig {
	return &compilerConfig{defines: map[string]string{}}
}

func (c *compilerConfig) clone() *compilerConfig {
	cp := *c
	cp.defines = make(map[string]string, len(c.defines))
	for k, v := range c.defines {
		cp.defines[k] = v
	}
	return &cp
}

// applyManifest merges a loaded manifest's settings into c. Flag-supplied
// values (already present in c before this call) are never overwritten —
// flags win over the manifest, matching the conventional CLI-overrides-file
// precedence.
func (c *compilerConfig) applyManifest(m *manifest) {
	if c.root == "" {
		c.root = m.Root
	}
	if c.outDir == "" {
		c.outDir = m.Output
	}
	for k, v := range m.Defines {
		if _, ok := c.defines[k]; !ok {
			c.defines[k] = v
		}
	}
}
