package report

import (
	"regexp"
	"strings"

	"github.com/papapumpkin/beacon/internal/tline"
)

// Styler resolves terminal styling of a raw line.
type Styler interface {
	Style(raw string) tline.TLine
}

// StylerFunc adapts a plain function to the Styler interface.
type StylerFunc func(raw string) tline.TLine

// Style calls f(raw).
func (f StylerFunc) Style(raw string) tline.TLine { return f(raw) }

// Classifier assigns a LineType to a styled line. Implementations must be
// deterministic.
type Classifier interface {
	Classify(line tline.TLine) LineType
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(line tline.TLine) LineType

// Classify calls f(line).
func (f ClassifierFunc) Classify(line tline.TLine) LineType { return f(line) }

// titleRe matches rustc/cargo diagnostic headers: "warning: ...",
// "error[E0308]: ...", "warning[unused]: ...".
var titleRe = regexp.MustCompile(`^(warning|error)(\[[^\]]*\])?: `)

// warningSumRe matches the warning-level summaries cargo and rustc print
// after the diagnostics: "`demo` (lib) generated 3 warnings", "2 warnings
// emitted" and "build failed, waiting for other jobs to finish...".
var warningSumRe = regexp.MustCompile("^warning: (`[^`]+` \\([^)]*\\) generated \\d+ warnings?|\\d+ warnings? emitted|build failed)")

var errorSumPrefixes = []string{"error: aborting due to", "error: could not compile"}

// CargoClassifier recognizes the headers cargo and rustc print at the start
// of each diagnostic and their trailing summary lines.
type CargoClassifier struct{}

// Classify implements Classifier.
func (CargoClassifier) Classify(line tline.TLine) LineType {
	text := line.Text()
	m := titleRe.FindStringSubmatch(text)
	if m == nil {
		return Continuation
	}
	switch m[1] {
	case "warning":
		if warningSumRe.MatchString(text) {
			return Title(KindSum)
		}
		return Title(KindWarning)
	default:
		for _, prefix := range errorSumPrefixes {
			if strings.HasPrefix(text, prefix) {
				return Title(KindSum)
			}
		}
		return Title(KindError)
	}
}

// isLocation reports whether a line points at a source location, as in
// "  --> src/main.rs:3:9".
func isLocation(line tline.TLine) bool {
	return strings.HasPrefix(strings.TrimSpace(line.Text()), "--> ")
}
