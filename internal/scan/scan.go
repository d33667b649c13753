// Package scan builds a module-import graph from a Go source tree.
// Each package directory becomes a dotted module rooted at the base
// element of the module path (module github.com/acme/app, package
// internal/store → app.internal.store); imports that stay inside the
// module become graph edges.
package scan

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stratalint/stratalint/internal/depgraph"
)

// Build scans the Go module rooted at root and returns its import graph.
func Build(root string) (*depgraph.Graph, error) {
	modPath, err := ModulePath(root)
	if err != nil {
		return nil, err
	}
	rootName := path.Base(modPath)

	dg := depgraph.New()
	fset := token.NewFileSet()

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(d.Name()) {
			return nil
		}

		file, err := parser.ParseFile(fset, p, nil, parser.ImportsOnly)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}

		rel, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return err
		}
		module := dottedModule(rootName, filepath.ToSlash(rel))
		dg.AddModule(module)

		for _, spec := range file.Imports {
			imported, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			if target, ok := internalImport(modPath, rootName, imported); ok {
				dg.AddImport(module, target)
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return dg, nil
}

// ModulePath reads the module path from go.mod under root.
func ModulePath(root string) (string, error) {
	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read module path: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mod, ok := strings.CutPrefix(line, "module "); ok {
			return strings.TrimSpace(mod), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read module path: %w", err)
	}
	return "", fmt.Errorf("no module directive in %s", filepath.Join(root, "go.mod"))
}

// dottedModule converts a slash-relative package dir to a dotted module
// name under the root module.
func dottedModule(rootName, rel string) string {
	if rel == "." || rel == "" {
		return rootName
	}
	return rootName + "." + strings.ReplaceAll(rel, "/", ".")
}

// internalImport maps an import path back to a dotted module name if it
// lives inside the scanned module.
func internalImport(modPath, rootName, imported string) (string, bool) {
	if imported == modPath {
		return rootName, true
	}
	rest, ok := strings.CutPrefix(imported, modPath+"/")
	if !ok {
		return "", false
	}
	return rootName + "." + strings.ReplaceAll(rest, "/", "."), true
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return name == "vendor" || name == "testdata"
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}
