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

// Package compile wires the full pipeline described in §2 into a single
// entry point: preprocess, render, parse, simplify, rapify. It is the one
// public surface cmd/rapify and any future embedder call — everything it
// touches beyond this file lives under internal/, mirroring gazelle_cc's
// own split between a small pkg/ surface and a large internal/ core.
package compile

import (
	"fmt"

	"github.com/arma-tools/rapify/internal/parser"
	"github.com/arma-tools/rapify/internal/preprocess"
	"github.com/arma-tools/rapify/internal/rapify"
	"github.com/arma-tools/rapify/internal/render"
	"github.com/arma-tools/rapify/internal/simplify"
	"github.com/arma-tools/rapify/pkg/resolver"
)

// Source names a single root configuration file to compile: its text, the
// path used for diagnostics and relative #include resolution, and the
// include-resolution root (§4.7).
type Source struct {
	Text string
	Path string
	Root string
}

// Options carries the knobs a caller has available at this layer: a
// Resolver for #include targets and a set of predefined object-like
// macros, the programmatic equivalent of the CLI's "-define" flags.
type Options struct {
	Resolver resolver.Resolver
	Defines  map[string]string
}

// ToBinary runs the full pipeline over src and returns the rapified binary
// bytes (§4.6). Each stage fails fast: the first error from any stage is
// returned immediately and no later stage runs, per §7's propagation rule.
func ToBinary(src Source, opts Options) ([]byte, error) {
	cfg, err := ToResolved(src, opts)
	if err != nil {
		return nil, err
	}
	data, err := rapify.Write(cfg)
	if err != nil {
		return nil, fmt.Errorf("rapify: %w", err)
	}
	return data, nil
}

// ToResolved runs preprocess, render, parse, and simplify, stopping short
// of the binary encoding — useful for callers (and tests) that want to
// inspect the resolved configuration tree directly.
func ToResolved(src Source, opts Options) (simplify.Config, error) {
	res := opts.Resolver
	if res == nil {
		res = resolver.FS{}
	}

	expanded, err := preprocess.PreprocessWithDefines(src.Text, src.Path, src.Root, res, opts.Defines)
	if err != nil {
		return simplify.Config{}, fmt.Errorf("preprocess: %w", err)
	}

	rendered := render.Render(expanded)

	node, err := parser.Parse(rendered, src.Path)
	if err != nil {
		return simplify.Config{}, fmt.Errorf("parse: %w", err)
	}

	cfg, err := simplify.Simplify(node, src.Path)
	if err != nil {
		return simplify.Config{}, fmt.Errorf("simplify: %w", err)
	}
	return cfg, nil
}
