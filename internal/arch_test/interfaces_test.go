package arch_test

import (
	"go/ast"
	"testing"
)

// allowedColocations lists interfaces that may live beside a type whose
// method names cover them.
var allowedColocations = map[string][]string{
	// Chain.Run and Mission.Run drive whole loops; they are consumers of
	// JobRunner, not implementations.
	"filter":  {"JobRunner"},
	"mission": {"JobRunner"},
	// Builder fields take these; the package ships the cargo defaults and
	// func adapters next to them.
	"report": {"Styler", "Classifier"},
}

// TestInterfacePlacement keeps interfaces with their consumers: an interface
// declared in the same package as a type that has all of its methods is
// flagged.
func TestInterfacePlacement(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			allowed := make(map[string]bool)
			for _, name := range allowedColocations[pkg] {
				allowed[name] = true
			}

			ifaces := make(map[string][]string)
			methods := make(map[string]map[string]bool)
			for _, f := range sources(loadPackage(t, pkg)) {
				ast.Inspect(f.file, func(n ast.Node) bool {
					switch n := n.(type) {
					case *ast.TypeSpec:
						if it, ok := n.Type.(*ast.InterfaceType); ok {
							for _, m := range it.Methods.List {
								for _, name := range m.Names {
									ifaces[n.Name.Name] = append(ifaces[n.Name.Name], name.Name)
								}
							}
						}
					case *ast.FuncDecl:
						if recv := receiverName(n); recv != "" {
							if methods[recv] == nil {
								methods[recv] = make(map[string]bool)
							}
							methods[recv][n.Name.Name] = true
						}
						return false
					}
					return true
				})
			}

			for iface, want := range ifaces {
				if len(want) == 0 || allowed[iface] {
					continue
				}
				for typ, have := range methods {
					if coversAll(have, want) {
						t.Errorf("interface %s is declared beside %s, which implements it; move it to its consumer",
							iface, typ)
					}
				}
			}
		})
	}
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func coversAll(have map[string]bool, want []string) bool {
	for _, m := range want {
		if !have[m] {
			return false
		}
	}
	return true
}
