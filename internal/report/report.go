// Package report turns the standard error of a build command into an ordered
// list of diagnostic items. Lines are classified one by one, grouped into
// items that each start with a warning or error title, and laid out with all
// errors before all warnings. Summary sections are recognized and dropped.
package report

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"github.com/papapumpkin/beacon/internal/tline"
)

// ErrDecode is returned when a captured line is not valid UTF-8 text.
var ErrDecode = errors.New("report: line is not valid UTF-8")

// Report is the usable content of a build command's stderr.
type Report struct {
	Lines []Line `json:"lines"`
	Stats Stats  `json:"stats"`

	reversed bool
}

// Builder assembles reports using its collaborators. The zero value is not
// usable; call NewBuilder for the cargo defaults.
type Builder struct {
	Styler     Styler
	Classifier Classifier
	Stats      StatsFunc
}

// NewBuilder returns a Builder for cargo/rustc output.
func NewBuilder() *Builder {
	return &Builder{
		Styler:     StylerFunc(tline.FromTTY),
		Classifier: CargoClassifier{},
		Stats:      ComputeStats,
	}
}

// FromBytes builds a report from captured stderr using the cargo defaults.
func FromBytes(stderr []byte) (*Report, error) {
	return NewBuilder().FromBytes(stderr)
}

// FromErrLines builds a report from stderr lines using the cargo defaults.
func FromErrLines(lines []string) (*Report, error) {
	return NewBuilder().FromErrLines(lines)
}

// FromReader reads r to the end and builds a report from it.
func FromReader(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("report: read: %w", err)
	}
	return NewBuilder().FromBytes(data)
}

// FromBytes splits stderr into lines and builds a report from them. A line
// ending in "\r\n" loses both characters; a trailing newline does not produce
// an empty last line.
func (b *Builder) FromBytes(stderr []byte) (*Report, error) {
	var lines []string
	for n := 1; len(stderr) > 0; n++ {
		raw, rest, _ := bytes.Cut(stderr, []byte{'\n'})
		stderr = rest
		raw = bytes.TrimSuffix(raw, []byte{'\r'})
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("line %d: %w", n, ErrDecode)
		}
		lines = append(lines, string(raw))
	}
	return b.FromErrLines(lines)
}

// FromErrLines classifies each line and assembles the report.
//
// Lines before the first title and lines of a summary section are read but
// dropped. Error items come first, then warning items, each group keeping
// encounter order. Item indices start at 1 and grow at every title.
func (b *Builder) FromErrLines(errLines []string) (*Report, error) {
	var (
		warnings []Line
		errs     []Line
		cur      = KindNone
	)
	for n, raw := range errLines {
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("line %d: %w", n+1, ErrDecode)
		}
		content := b.Styler.Style(raw)
		lineType := b.Classifier.Classify(content)
		if lineType.Title {
			// A summary title ends the current item and discards
			// everything up to the next warning or error title.
			cur = lineType.Kind
			if cur == KindSum {
				cur = KindNone
			}
		}
		line := Line{Type: lineType, Content: content}
		switch cur {
		case KindWarning:
			warnings = append(warnings, line)
		case KindError:
			errs = append(errs, line)
		}
	}

	lines := append(errs, warnings...)
	itemIdx := 0
	for i := range lines {
		if lines[i].Type.Title {
			itemIdx++
		}
		lines[i].ItemIdx = itemIdx
	}

	// Stats are computed last so dropped lines never count.
	return &Report{
		Lines: lines,
		Stats: b.Stats(lines),
	}, nil
}

// Reverse reorders the lines so items appear in descending index order while
// the lines of each item keep their order. Calling it again restores the
// ascending order the report was built with.
func (r *Report) Reverse() {
	desc := !r.reversed
	slices.SortStableFunc(r.Lines, func(a, b Line) int {
		if desc {
			return cmp.Compare(b.ItemIdx, a.ItemIdx)
		}
		return cmp.Compare(a.ItemIdx, b.ItemIdx)
	})
	r.reversed = desc
}

// Reversed reports whether items are currently in descending order.
func (r *Report) Reversed() bool {
	return r.reversed
}

// HasErrors reports whether the report holds at least one error item.
func (r *Report) HasErrors() bool {
	return r.Stats.Errors > 0
}

// Items returns the lines grouped into contiguous runs sharing an item index.
func (r *Report) Items() [][]Line {
	var items [][]Line
	start := 0
	for i := 1; i <= len(r.Lines); i++ {
		if i == len(r.Lines) || r.Lines[i].ItemIdx != r.Lines[start].ItemIdx {
			items = append(items, r.Lines[start:i])
			start = i
		}
	}
	return items
}

// TrimBlank returns item without its trailing blank lines. Cargo ends every
// diagnostic with one, which renderers replace with their own separator.
func TrimBlank(item []Line) []Line {
	end := len(item)
	for end > 0 && item[end-1].Content.IsBlank() {
		end--
	}
	return item[:end]
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}
