package arch_test

import (
	"go/ast"
	"go/token"
	"strings"
	"testing"
)

// docExemptions lists exported symbols allowed to go undocumented.
var docExemptions = map[string][]string{
	// Build states of the documented State type; the names say it all.
	"tui": {"StateBuilding", "StateDone", "StateFailed"},
}

// TestExportedSymbolsHaveGoDoc requires a doc comment starting with the
// symbol's name on every exported declaration. Members of a grouped const or
// var block may lean on the block comment or an inline comment instead.
func TestExportedSymbolsHaveGoDoc(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			exempt := make(map[string]bool)
			for _, name := range docExemptions[pkg] {
				exempt[name] = true
			}
			for _, f := range sources(loadPackage(t, pkg)) {
				for _, miss := range undocumented(f.file) {
					if !exempt[miss.Name] {
						t.Errorf("%s:%d: exported %s has no GoDoc comment",
							f.rel, f.fset.Position(miss.Pos()).Line, miss.Name)
					}
				}
			}
		})
	}
}

// undocumented returns the names of exported declarations in f that lack a
// doc comment.
func undocumented(f *ast.File) []*ast.Ident {
	var missing []*ast.Ident
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if !d.Name.IsExported() || (d.Recv != nil && !exportedReceiver(d.Recv.List[0].Type)) {
				continue
			}
			if !startsWith(d.Doc, d.Name.Name) {
				missing = append(missing, d.Name)
			}
		case *ast.GenDecl:
			grouped := len(d.Specs) > 1 && d.Tok != token.TYPE
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if s.Name.IsExported() && !startsWith(s.Doc, s.Name.Name) && !startsWith(d.Doc, s.Name.Name) {
						missing = append(missing, s.Name)
					}
				case *ast.ValueSpec:
					for _, name := range s.Names {
						if !name.IsExported() {
							continue
						}
						if grouped && (hasText(d.Doc) || hasText(s.Comment) || startsWith(s.Doc, name.Name)) {
							continue
						}
						if !grouped && (startsWith(s.Doc, name.Name) || startsWith(d.Doc, name.Name)) {
							continue
						}
						missing = append(missing, name)
					}
				}
			}
		}
	}
	return missing
}

func startsWith(doc *ast.CommentGroup, name string) bool {
	return doc != nil && strings.HasPrefix(strings.TrimSpace(doc.Text()), name)
}

func hasText(c *ast.CommentGroup) bool {
	return c != nil && strings.TrimSpace(c.Text()) != ""
}

// exportedReceiver reports whether a method receiver names an exported type,
// looking through pointers and type parameters.
func exportedReceiver(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.IsExported()
	case *ast.StarExpr:
		return exportedReceiver(e.X)
	case *ast.IndexExpr:
		return exportedReceiver(e.X)
	case *ast.IndexListExpr:
		return exportedReceiver(e.X)
	}
	return false
}
