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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResolveRelative(t *testing.T) {
	m := Memory{
		"addons/main/inner.hpp": "y = 5;",
	}
	resolved, err := m.Resolve("", "addons/main/config.cpp", "inner.hpp")
	require.NoError(t, err)
	assert.Equal(t, "y = 5;", resolved.Data)
	assert.Equal(t, "addons/main/inner.hpp", resolved.Path)
}

func TestMemoryResolveRooted(t *testing.T) {
	m := Memory{
		"shared/common.hpp": "z = 1;",
	}
	resolved, err := m.Resolve("shared", "addons/main/config.cpp", `\common.hpp`)
	require.NoError(t, err)
	assert.Equal(t, "z = 1;", resolved.Data)
}

func TestMemoryResolveMissing(t *testing.T) {
	m := Memory{}
	_, err := m.Resolve("", "a/b.cpp", "missing.hpp")
	require.Error(t, err)
}

func TestFSResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "addons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "addons", "inner.hpp"), []byte("y = 5;"), 0o644))

	var fs FS
	resolved, err := fs.Resolve(dir, filepath.Join(dir, "addons", "config.cpp"), "inner.hpp")
	require.NoError(t, err)
	assert.Equal(t, "y = 5;", resolved.Data)
}

func TestExpandRoots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "config.cpp"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "config.cpp"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "notes.txt"), []byte(""), 0o644))

	matches, err := ExpandRoots(dir, []string{"**/config.cpp"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
