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

// Command rapify drives the three-stage config compiler (§2) end to end:
// preprocess, parse, simplify, and write the rapified binary for one or
// more configuration source files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arma-tools/rapify/pkg/compile"
	"github.com/arma-tools/rapify/pkg/resolver"
)

// defineFlag collects repeated "-define NAME[=VALUE]" flags into a map, the
// CLI analogue of a compiler's "-D" flag.
type defineFlag map[string]string

func (d defineFlag) String() string {
	var parts []string
	for k, v := range d {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (d defineFlag) Set(s string) error {
	name, value, _ := strings.Cut(s, "=")
	if name == "" {
		return fmt.Errorf("-define requires a macro name, got %q", s)
	}
	d[name] = value
	return nil
}

func main() {
	manifestPath := flag.String("manifest", "", "path to a YAML project manifest naming roots, output, and predefined macros")
	root := flag.String("root", "", "include-resolution root (overrides the manifest's root)")
	outDir := flag.String("out", "", "directory rapified output is written under (overrides the manifest's output); default: next to each source")
	input := flag.String("input", "", "doublestar glob (relative to -root) selecting multiple source files to compile in one invocation")
	defines := make(defineFlag)
	flag.Var(defines, "define", "predefine a macro as NAME[=VALUE]; may be repeated")
	flag.Parse()

	conf := newCompilerConfig()
	conf.root = *root
	conf.outDir = *outDir
	for k, v := range defines {
		conf.defines[k] = v
	}

	if *manifestPath != "" {
		m, err := loadManifest(*manifestPath)
		if err != nil {
			log.Fatalf("rapify: reading manifest %s: %v", *manifestPath, err)
		}
		conf.applyManifest(m)
	}

	var sources []string
	switch {
	case *input != "":
		if conf.root == "" {
			log.Fatalf("rapify: -input requires -root (or a manifest root) to resolve against")
		}
		matches, err := resolver.ExpandRoots(conf.root, []string{*input})
		if err != nil {
			log.Fatalf("rapify: expanding -input %q: %v", *input, err)
		}
		sources = matches
	case flag.NArg() == 1:
		sources = []string{flag.Arg(0)}
	default:
		flag.Usage()
		log.Fatalf("rapify: requires exactly one source path argument, or -input")
	}

	failed := false
	for _, src := range sources {
		if !canRapify(src) {
			log.Printf("rapify: skipping %s: not a rapifiable source", src)
			continue
		}
		if err := compileOne(src, conf); err != nil {
			log.Printf("rapify: %s: %v", src, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// compileOne runs the full pipeline — preprocess, render, parse, simplify,
// rapify — for a single root source file and writes the resulting binary.
func compileOne(src string, conf *compilerConfig) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	root := conf.root
	if root == "" {
		root = filepath.Dir(src)
	}

	binary, err := compile.ToBinary(
		compile.Source{Text: string(data), Path: src, Root: root},
		compile.Options{Resolver: resolver.FS{}, Defines: conf.defines},
	)
	if err != nil {
		return err
	}

	out := outputPathFor(src)
	if conf.outDir != "" {
		out = filepath.Join(conf.outDir, filepath.Base(out))
		if err := os.MkdirAll(conf.outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", conf.outDir, err)
		}
	}

	if err := os.WriteFile(out, binary, 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", out, err)
	}
	log.Printf("rapify: %s -> %s", src, out)
	return nil
}
