// Package tline splits a raw terminal line into runs of text that share the
// same SGR (Select Graphic Rendition) style, so the line can be classified on
// its plain text and later re-rendered with its original colors.
package tline

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	csi   = "\x1b["
	reset = "\x1b[0m"
)

// TString is a run of text drawn with a single style. CSI holds the
// concatenated SGR sequences active for the run; it is empty for unstyled text.
type TString struct {
	CSI string `json:"csi,omitempty"`
	Raw string `json:"raw"`
}

// Bold reports whether the run's style leaves bold enabled. Parameters of
// extended colors (38, 48, 58) are not read as attributes.
func (s TString) Bold() bool {
	p := new(ansi.Parser)
	p.SetParamsSize(len(s.CSI) + 1)
	p.SetDataSize(1)

	var bold bool
	for rest := s.CSI; rest != ""; {
		seq, _, n, st := ansi.DecodeSequence(rest, ansi.NormalState, p)
		if st != ansi.NormalState || n == 0 {
			break
		}
		rest = rest[n:]
		if isSGR(seq) {
			bold = sgrBold(p.Params(), bold)
		}
	}
	return bold
}

// sgrBold applies one SGR parameter list to the bold state.
func sgrBold(params ansi.Params, bold bool) bool {
	if len(params) == 0 {
		return false
	}
	for i := 0; i < len(params); i++ {
		switch params[i].Param(0) {
		case 0, 22:
			bold = false
		case 1:
			bold = true
		case 38, 48, 58:
			if params[i].HasMore() {
				// Colon form: sub-parameters belong to this attribute.
				for i < len(params) && params[i].HasMore() {
					i++
				}
				continue
			}
			if i+1 < len(params) {
				switch params[i+1].Param(0) {
				case 5:
					i += 2
				case 2:
					i += 4
				}
			}
		}
	}
	return bold
}

// isSGR reports whether seq is a CSI ... m sequence without a private prefix.
func isSGR(seq string) bool {
	return strings.HasPrefix(seq, csi) &&
		seq[len(seq)-1] == 'm' &&
		!strings.ContainsAny(seq[:len(seq)-1], "<=>?")
}

// TLine is one line of terminal output with its styling resolved.
type TLine struct {
	Strings []TString `json:"strings"`
}

// FromTTY parses a raw line as printed to a terminal. SGR sequences become
// run styles and a reset clears the style. Every other escape sequence (CSI,
// OSC such as hyperlinks and titles, or a bare ESC) is dropped whole, as are
// control characters other than tab. FromTTY never fails: a truncated
// trailing sequence is discarded.
func FromTTY(raw string) TLine {
	var (
		line  TLine
		style string
		text  strings.Builder
	)
	flush := func() {
		if text.Len() == 0 {
			return
		}
		line.Strings = append(line.Strings, TString{CSI: style, Raw: text.String()})
		text.Reset()
	}

	for rest := raw; rest != ""; {
		seq, _, n, st := ansi.DecodeSequence(rest, ansi.NormalState, nil)
		if st != ansi.NormalState {
			break
		}
		if n == 0 {
			n = 1
			seq = rest[:1]
		}
		rest = rest[n:]

		switch {
		case isSGR(seq):
			flush()
			if isReset(seq) {
				style = ""
			} else {
				style += seq
			}
		case seq[0] == ansi.ESC || isControl(seq):
		default:
			text.WriteString(seq)
		}
	}
	flush()
	return line
}

func isReset(seq string) bool {
	params := seq[len(csi) : len(seq)-1]
	return params == "" || params == "0"
}

func isControl(seq string) bool {
	if len(seq) != 1 {
		return false
	}
	c := seq[0]
	return (c < ' ' && c != '\t') || c == ansi.DEL
}

// Text returns the line with all escape sequences removed.
func (l TLine) Text() string {
	var b strings.Builder
	for _, s := range l.Strings {
		b.WriteString(s.Raw)
	}
	return b.String()
}

// Styled re-renders the line with its original SGR sequences, ending with a
// reset when any style was applied.
func (l TLine) Styled() string {
	var (
		b      strings.Builder
		styled bool
	)
	for _, s := range l.Strings {
		if styled {
			b.WriteString(reset)
			styled = false
		}
		if s.CSI != "" {
			b.WriteString(s.CSI)
			styled = true
		}
		b.WriteString(s.Raw)
	}
	if styled {
		b.WriteString(reset)
	}
	return b.String()
}

// IsBlank reports whether the line holds only whitespace.
func (l TLine) IsBlank() bool {
	return strings.TrimSpace(l.Text()) == ""
}
