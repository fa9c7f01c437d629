package arch_test

import "testing"

const (
	maxFilesPerPackage = 20
	maxLinesPerFile    = 400
)

// TestPackageSize keeps packages small enough to read in one sitting: no
// more than maxFilesPerPackage source files, and no file (tests included)
// over maxLinesPerFile lines.
func TestPackageSize(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			files := loadPackage(t, pkg)
			if n := len(sources(files)); n > maxFilesPerPackage {
				t.Errorf("%s has %d source files (limit %d); split the package", pkg, n, maxFilesPerPackage)
			}
			for _, f := range files {
				if f.lines > maxLinesPerFile {
					t.Errorf("%s has %d lines (limit %d); split the file", f.rel, f.lines, maxLinesPerFile)
				}
			}
		})
	}
}
