// Package arch_test checks the structure of beacon's internal packages:
// the import layering, documentation of exported API, package-level state,
// interface placement and file sizes.
package arch_test

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/papapumpkin/beacon/internal/"

// sourceFile is one parsed .go file of an internal package.
type sourceFile struct {
	rel   string // path relative to the repository root
	fset  *token.FileSet
	file  *ast.File
	lines int
	test  bool
}

// internalDir returns the internal/ directory of the module containing the
// working directory.
func internalDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "internal")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above the working directory")
		}
		dir = parent
	}
}

// internalPackages lists the package directories under internal/ that hold
// Go source, excluding this one.
func internalPackages(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(internalDir(t))
	if err != nil {
		t.Fatal(err)
	}
	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "arch_test" {
			continue
		}
		matches, _ := filepath.Glob(filepath.Join(internalDir(t), e.Name(), "*.go"))
		if len(matches) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	sort.Strings(pkgs)
	return pkgs
}

// loadPackage parses every .go file of an internal package. Generated files
// are skipped.
func loadPackage(t *testing.T, pkg string) []sourceFile {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(internalDir(t), pkg, "*.go"))
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(paths)

	var files []sourceFile
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Contains(firstLine(src), []byte("Code generated")) {
			continue
		}
		fset := token.NewFileSet()
		f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parsing %s: %v", path, err)
		}
		files = append(files, sourceFile{
			rel:   filepath.Join("internal", pkg, filepath.Base(path)),
			fset:  fset,
			file:  f,
			lines: bytes.Count(src, []byte{'\n'}) + boolInt(len(src) > 0 && src[len(src)-1] != '\n'),
			test:  strings.HasSuffix(path, "_test.go"),
		})
	}
	return files
}

// sources drops test files.
func sources(files []sourceFile) []sourceFile {
	var out []sourceFile
	for _, f := range files {
		if !f.test {
			out = append(out, f)
		}
	}
	return out
}

func firstLine(src []byte) []byte {
	line, _, _ := bytes.Cut(src, []byte{'\n'})
	return line
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
